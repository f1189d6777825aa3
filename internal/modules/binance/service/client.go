package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"alert_bot/internal/models"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

type Config struct {
	BaseURL    string
	QuoteAsset string
	Interval   string
	Limit      int
	Timeout    time.Duration
}

// Client — REST клиент Binance Spot: список пар и дневные свечи.
type Client struct {
	cfg  Config
	http *http.Client

	now func() time.Time
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		now:  time.Now,
	}
}

// Symbols — торгуемые пары к QuoteAsset без плечевых токенов и стейблов, отсортированы.
func (c *Client) Symbols(ctx context.Context) ([]string, error) {
	body, err := c.get(ctx, "/api/v3/exchangeInfo", nil)
	if err != nil {
		return nil, errors.Wrap(err, "exchangeInfo")
	}

	var info exchangeInfoResp
	if err := sonic.Unmarshal(body, &info); err != nil {
		return nil, errors.Wrap(err, "exchangeInfo decode")
	}
	if len(info.Symbols) == 0 {
		return nil, errors.New("exchangeInfo: empty symbol list")
	}

	res := make([]string, 0, len(info.Symbols))
	for _, s := range info.Symbols {
		if s.Status != "TRADING" || s.QuoteAsset != c.cfg.QuoteAsset {
			continue
		}
		if denied(s.Symbol) {
			continue
		}
		res = append(res, s.Symbol)
	}
	sort.Strings(res)
	return res, nil
}

func denied(sym string) bool {
	for _, suf := range deniedSuffixes {
		if strings.HasSuffix(sym, suf) {
			return true
		}
	}
	for _, sub := range deniedSubstrings {
		if strings.Contains(sym, sub) {
			return true
		}
	}
	return false
}

// Klines — закрытия и время закрытия свечей по символу, в хронологическом порядке.
// Только закрытые свечи: последняя строка Binance — текущая, ещё формирующаяся.
func (c *Client) Klines(ctx context.Context, symbol string) ([]models.PriceBar, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", c.cfg.Interval)
	q.Set("limit", strconv.Itoa(c.cfg.Limit))

	body, err := c.get(ctx, "/api/v3/klines", q)
	if err != nil {
		return nil, errors.Wrapf(err, "klines %s", symbol)
	}

	var rows [][]interface{}
	if err := sonic.Unmarshal(body, &rows); err != nil {
		return nil, errors.Wrapf(err, "klines %s decode", symbol)
	}

	bars := make([]models.PriceBar, 0, len(rows))
	for i, row := range rows {
		bar, err := parseKline(row)
		if err != nil {
			return nil, errors.Wrapf(err, "klines %s row %d", symbol, i)
		}
		if len(bars) > 0 && !bar.CloseTime.After(bars[len(bars)-1].CloseTime) {
			return nil, errors.Errorf("klines %s row %d: close time not increasing", symbol, i)
		}
		bars = append(bars, bar)
	}

	now := c.now()
	for len(bars) > 0 && bars[len(bars)-1].CloseTime.After(now) {
		bars = bars[:len(bars)-1]
	}
	return bars, nil
}

func parseKline(row []interface{}) (models.PriceBar, error) {
	if len(row) <= klineCloseTimeIdx {
		return models.PriceBar{}, fmt.Errorf("short row: %d fields", len(row))
	}

	var closePx float64
	switch v := row[klineCloseIdx].(type) {
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return models.PriceBar{}, fmt.Errorf("close parse: %w", err)
		}
		closePx = f
	case float64:
		closePx = v
	default:
		return models.PriceBar{}, fmt.Errorf("close: unexpected type %T", v)
	}

	ms, ok := row[klineCloseTimeIdx].(float64)
	if !ok {
		return models.PriceBar{}, fmt.Errorf("close time: unexpected type %T", row[klineCloseTimeIdx])
	}

	return models.PriceBar{
		CloseTime: time.UnixMilli(int64(ms)).UTC(),
		Close:     closePx,
	}, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	u := strings.TrimRight(c.cfg.BaseURL, "/") + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
