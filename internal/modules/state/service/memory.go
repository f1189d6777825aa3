package service

import (
	"context"
	"sync"

	"alert_bot/internal/models"
)

// Memory — Store в памяти, для тестов и dry run.
type Memory struct {
	mu    sync.RWMutex
	data  models.StrategyState
	saves int
}

func NewMemory(initial models.StrategyState) *Memory {
	if initial == nil {
		initial = models.StrategyState{}
	}
	return &Memory{data: initial.Clone()}
}

func (m *Memory) Load(_ context.Context) (models.StrategyState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.Clone(), nil
}

func (m *Memory) Save(_ context.Context, st models.StrategyState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = st.Clone()
	m.saves++
	return nil
}

// Saves — сколько раз вызывали Save.
func (m *Memory) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}
