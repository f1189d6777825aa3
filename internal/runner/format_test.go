package runner

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"alert_bot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMessage(t *testing.T) {
	now := time.Date(2024, 3, 11, 0, 5, 30, 0, time.UTC)
	alerts := []models.SymbolAlert{
		{Symbol: "ADAUSDT", Signal: models.Signal{Side: models.SideBuy, When: barClose, Price: 0.123456}},
		{Symbol: "BTCUSDT", Signal: models.Signal{Side: models.SideSell, When: barClose, Price: 67000}},
	}

	msg := FormatMessage("EMA50+EMAexit", "1D", now, alerts)
	lines := strings.Split(msg, "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "📣 <b>EMA50+EMAexit</b> | TF 1D | 2024-03-11 00:05 UTC", lines[0])
	assert.Equal(t, "ADAUSDT: <b>BUY</b> @ 0.1235 (2024-03-10 23:59 UTC)", lines[1])
	assert.Equal(t, "BTCUSDT: <b>SELL</b> @ 67000.0000 (2024-03-10 23:59 UTC)", lines[2])
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "1.0000", formatPrice(1))
	assert.Equal(t, "0.0001", formatPrice(0.00005))
	assert.Equal(t, "0.0000", formatPrice(0.00001234))
	assert.Equal(t, "12345.6789", formatPrice(12345.67891))
	// округление по двоичному значению, а не по кратчайшей десятичной записи
	assert.Equal(t, "2.0000", formatPrice(2.00005))
	assert.Equal(t, "0.0001", formatPrice(0.00015))
	assert.Equal(t, fmt.Sprintf("%.4f", 2.00005), formatPrice(2.00005))
	assert.Equal(t, "-1.2500", formatPrice(-1.25))
}
