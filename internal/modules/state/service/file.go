package service

import (
	"context"
	"os"
	"path/filepath"

	"alert_bot/internal/models"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

// File хранит состояние стратегии в JSON файле.
type File struct {
	path string
}

func NewFile(dir, strategy string) *File {
	return &File{path: filepath.Join(dir, FileName(strategy))}
}

func (f *File) Path() string { return f.path }

// Load: нет файла — пустое состояние.
func (f *File) Load(_ context.Context) (models.StrategyState, error) {
	b, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return models.StrategyState{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read state %s", f.path)
	}

	st := models.StrategyState{}
	if len(b) == 0 {
		return st, nil
	}
	if err := sonic.Unmarshal(b, &st); err != nil {
		return nil, errors.Wrapf(err, "decode state %s", f.path)
	}
	return st, nil
}

// Save пишет во временный файл рядом и переименовывает.
func (f *File) Save(_ context.Context, st models.StrategyState) error {
	b, err := sonic.ConfigStd.MarshalIndent(st, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode state")
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "create temp state file")
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "write temp state file")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "sync temp state file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close temp state file")
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return errors.Wrapf(err, "replace state %s", f.path)
	}
	return nil
}
