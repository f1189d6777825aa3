package service

import "math"

// EMA считает экспоненциальную среднюю по всей истории.
// Первые length-1 значений — NaN, в length-1 лежит SMA первых length цен.
func EMA(series []float64, length int) []float64 {
	out := make([]float64, len(series))
	if length <= 1 {
		copy(out, series)
		return out
	}
	for i := range out {
		out[i] = math.NaN()
	}
	if len(series) < length {
		return out
	}

	alpha := 2.0 / (float64(length) + 1)

	sum := 0.0
	for _, v := range series[:length] {
		sum += v
	}
	prev := sum / float64(length)
	out[length-1] = prev

	for i := length; i < len(series); i++ {
		prev = alpha*series[i] + (1-alpha)*prev
		out[i] = prev
	}
	return out
}

// last возвращает значения на [-2] и [-1]. ok=false если ряд короче двух точек.
func last(series []float64) (prev, cur float64, ok bool) {
	n := len(series)
	if n < 2 {
		return 0, 0, false
	}
	return series[n-2], series[n-1], true
}

// CrossUp: на прошлом баре a <= b, на текущем a > b.
func CrossUp(a, b []float64) bool {
	a1, a0, ok := last(a)
	if !ok {
		return false
	}
	b1, b0, ok := last(b)
	if !ok {
		return false
	}
	return a1 <= b1 && a0 > b0
}

// CrossDown: на прошлом баре a >= b, на текущем a < b.
func CrossDown(a, b []float64) bool {
	a1, a0, ok := last(a)
	if !ok {
		return false
	}
	b1, b0, ok := last(b)
	if !ok {
		return false
	}
	return a1 >= b1 && a0 < b0
}
