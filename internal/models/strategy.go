package models

import "time"

// Side как у сигнала: "BUY"/"SELL" или пустая строка.
type Side string

const (
	SideNone Side = ""
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Signal — результат оценки стратегии на последнем закрытом баре.
type Signal struct {
	Side  Side
	When  time.Time // время закрытия бара, UTC
	Price float64
}

// SymbolAlert — новый (не отправленный ранее) сигнал по символу.
type SymbolAlert struct {
	Symbol string
	Signal Signal
}
