package service

import (
	"fmt"
	"strings"
)

type Variant int

const (
	EMA50EMAExit Variant = iota + 1
	EMA100EMAExit
	EMA50MACDExit
)

var variantNames = map[Variant]string{
	EMA50EMAExit:  "EMA50+EMAexit",
	EMA100EMAExit: "EMA100+EMAexit",
	EMA50MACDExit: "EMA50+MACDexit",
}

func (v Variant) String() string {
	if n, ok := variantNames[v]; ok {
		return n
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// Variants — все поддерживаемые стратегии в фиксированном порядке.
func Variants() []Variant {
	return []Variant{EMA50EMAExit, EMA100EMAExit, EMA50MACDExit}
}

// ParseVariant принимает имя стратегии; регистр не важен.
func ParseVariant(name string) (Variant, error) {
	s := strings.TrimSpace(name)
	for _, v := range Variants() {
		if strings.EqualFold(variantNames[v], s) {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unknown strategy %q", name)
}

func NewStrategy(v Variant) (*Strategy, error) {
	if _, ok := variantNames[v]; !ok {
		return nil, fmt.Errorf("unknown strategy variant %d", int(v))
	}
	return &Strategy{variant: v}, nil
}

// NewEngine собирает стратегию по имени из конфига.
func NewEngine(name string) (Engine, error) {
	v, err := ParseVariant(name)
	if err != nil {
		return nil, err
	}
	return NewStrategy(v)
}
