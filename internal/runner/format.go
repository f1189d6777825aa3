package runner

import (
	"fmt"
	"html"
	"strings"
	"time"

	"alert_bot/internal/models"

	"github.com/shopspring/decimal"
)

// FormatMessage собирает одно сообщение на весь запуск (Telegram HTML).
func FormatMessage(strategy, interval string, now time.Time, alerts []models.SymbolAlert) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📣 <b>%s</b> | TF %s | %s",
		html.EscapeString(strategy), interval, now.UTC().Format(WhenLayout))

	for _, a := range alerts {
		fmt.Fprintf(&b, "\n%s: <b>%s</b> @ %s (%s)",
			a.Symbol,
			a.Signal.Side,
			formatPrice(a.Signal.Price),
			a.Signal.When.UTC().Format(WhenLayout),
		)
	}
	return b.String()
}

// formatPrice округляет точное двоичное значение, как %.4f:
// 2.00005 хранится как 2.0000499… и печатается 2.0000.
func formatPrice(p float64) string {
	return decimal.NewFromFloatWithExponent(p, -4).StringFixed(4)
}
