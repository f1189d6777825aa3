package models

import "time"

// PriceBar — закрытая дневная свеча, нужна только цена и время закрытия.
type PriceBar struct {
	CloseTime time.Time
	Close     float64
}

// Closes возвращает цены закрытия в том же порядке.
func Closes(bars []PriceBar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}
