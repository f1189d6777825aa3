package service

import "math"

const (
	MACDFast   = 12
	MACDSlow   = 26
	MACDSignal = 9
)

// MACD возвращает линию MACD (fast-slow) и сигнальную линию.
// Сигнальная EMA строится по определённому хвосту MACD (первые slow-1
// значений — NaN) и выравнивается обратно по индексам close.
func MACD(close []float64, fast, slow, signal int) (macd, sig []float64) {
	ef := EMA(close, fast)
	es := EMA(close, slow)

	macd = make([]float64, len(close))
	for i := range close {
		macd[i] = ef[i] - es[i]
	}

	sig = make([]float64, len(close))
	start := -1
	for i := range sig {
		sig[i] = math.NaN()
		if start < 0 && !math.IsNaN(macd[i]) {
			start = i
		}
	}
	if start < 0 {
		return macd, sig
	}
	copy(sig[start:], EMA(macd[start:], signal))
	return macd, sig
}

// MACDCrossUnder: macd[-2] >= sig[-2] и macd[-1] < sig[-1].
func MACDCrossUnder(close []float64) bool {
	macd, sig := MACD(close, MACDFast, MACDSlow, MACDSignal)
	return CrossDown(macd, sig)
}
