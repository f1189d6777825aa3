package runner

import (
	"alert_bot/internal/models"
)

// WhenLayout — время бара в сообщениях и в отпечатках, точность до минуты.
const WhenLayout = "2006-01-02 15:04 UTC"

// Fingerprint — идентификатор конкретного сигнала: время закрытия бара + сторона.
// Цена не участвует.
func Fingerprint(sig models.Signal) string {
	return sig.When.UTC().Format(WhenLayout) + "_" + string(sig.Side)
}

// IsNovel сравнивает сигнал с сохранённым отпечатком по символу.
// prior не меняется; при новизне возвращается копия с новым отпечатком.
func IsNovel(symbol string, sig models.Signal, prior models.StrategyState) (bool, models.StrategyState) {
	fp := Fingerprint(sig)
	if prev, ok := prior[symbol]; ok && prev.LastFingerprint == fp {
		return false, prior
	}
	next := prior.Clone()
	next[symbol] = models.SymbolState{LastFingerprint: fp}
	return true, next
}
