package service

import (
	"alert_bot/internal/models"
)

// MinBars — меньше баров: стратегия воздерживается (не ошибка).
const MinBars = 200

type Engine interface {
	// ok==true когда на последнем закрытом баре есть сигнал
	Evaluate(bars []models.PriceBar) (sig models.Signal, ok bool)
	Name() string
}

// Strategy — одна из трёх фиксированных стратегий, выбирается на старте процесса.
type Strategy struct {
	variant Variant
}

func (s *Strategy) Name() string { return s.variant.String() }

func (s *Strategy) Evaluate(bars []models.PriceBar) (models.Signal, bool) {
	if len(bars) < MinBars {
		return models.Signal{Side: models.SideNone}, false
	}

	entry, exit := s.crosses(models.Closes(bars))

	lastBar := bars[len(bars)-1]
	sig := models.Signal{
		When:  lastBar.CloseTime.UTC(),
		Price: lastBar.Close,
	}
	switch {
	case entry:
		sig.Side = models.SideBuy
	case exit:
		sig.Side = models.SideSell
	default:
		return models.Signal{Side: models.SideNone}, false
	}
	return sig, true
}

// crosses считает вход и выход независимо; приоритет входа решает Evaluate.
func (s *Strategy) crosses(close []float64) (entry, exit bool) {
	ema50 := EMA(close, 50)

	switch s.variant {
	case EMA50EMAExit:
		entry = CrossUp(close, ema50)
		exit = CrossDown(close, ema50)
	case EMA100EMAExit:
		// вход по EMA100, выход по EMA50
		entry = CrossUp(close, EMA(close, 100))
		exit = CrossDown(close, ema50)
	case EMA50MACDExit:
		entry = CrossUp(close, ema50)
		exit = MACDCrossUnder(close)
	}
	return entry, exit
}
