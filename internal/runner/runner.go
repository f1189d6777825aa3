package runner

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"alert_bot/internal/metrics"
	"alert_bot/internal/models"
	"alert_bot/internal/notify"
	strategy "alert_bot/internal/modules/strategy/service"
	state "alert_bot/internal/modules/state/service"
	"alert_bot/pkg/logger"

	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
)

var (
	// ErrUniverse — не удалось получить список символов, запуск прерван.
	ErrUniverse = errors.New("symbol universe unavailable")
	// ErrDelivery — уведомление не доставлено, состояние не сохранено.
	ErrDelivery = errors.New("notification delivery failed")
)

// причины пропуска символа для метрик
const (
	skipFetch   = "fetch"
	skipHistory = "history"
	skipPanic   = "panic"
)

type Universe interface {
	Symbols(ctx context.Context) ([]string, error)
}

type MarketData interface {
	Klines(ctx context.Context, symbol string) ([]models.PriceBar, error)
}

type Options struct {
	Interval       string // метка таймфрейма в заголовке, "1D"
	Workers        int
	PushgatewayURL string
	MetricsJob     string
}

// Report — итог одного прохода.
type Report struct {
	RunID     string
	Symbols   int
	Evaluated int
	Skipped   int
	Signals   int
	Alerts    []models.SymbolAlert
	Delivered bool
}

type evalResult struct {
	symbol string
	sig    models.Signal
	ok     bool
	err    error
}

type Runner struct {
	universe Universe
	market   MarketData
	engine   strategy.Engine
	n        notify.Notifier
	store    state.Store
	opts     Options

	now func() time.Time
}

func New(
	universe Universe,
	market MarketData,
	engine strategy.Engine,
	n notify.Notifier,
	store state.Store,
	opts Options,
) *Runner {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Interval == "" {
		opts.Interval = "1D"
	}
	return &Runner{
		universe: universe,
		market:   market,
		engine:   engine,
		n:        n,
		store:    store,
		opts:     opts,
		now:      time.Now,
	}
}

// Run — один полный проход по всем символам:
// загрузка состояния, оценка, дедуп, одно сообщение, сохранение состояния.
func (r *Runner) Run(ctx context.Context) (rep Report, err error) {
	rep.RunID = uuid.NewString()
	started := r.now()
	rec := metrics.New(r.engine.Name())

	span, ctx := opentracing.StartSpanFromContext(ctx, "runner.Run")
	span.SetTag("run_id", rep.RunID)
	span.SetTag("strategy", r.engine.Name())
	defer func() {
		if err != nil {
			ext.Error.Set(span, true)
			span.LogKV("error", err.Error())
		}
		span.Finish()

		rec.Finish(started, err == nil)
		if perr := rec.Push(context.Background(), r.opts.PushgatewayURL, r.opts.MetricsJob); perr != nil {
			logger.Warn("[RUNNER] metrics push: %v", perr)
		}
	}()

	logger.Info("[RUNNER] ▶️ run %s strategy=%s", rep.RunID, r.engine.Name())

	prior, err := r.store.Load(ctx)
	if err != nil {
		return rep, fmt.Errorf("load state: %w", err)
	}

	symbols, err := r.universe.Symbols(ctx)
	if err != nil {
		return rep, fmt.Errorf("%w: %w", ErrUniverse, err)
	}
	rep.Symbols = len(symbols)
	rec.SymbolsTotal.Set(float64(len(symbols)))
	logger.Info("[RUNNER] universe: %d symbols", len(symbols))

	results := r.evaluateAll(ctx, symbols, rec)
	// прерванный проход не считается успешным: ошибки символов тут не per-symbol
	if err := ctx.Err(); err != nil {
		return rep, fmt.Errorf("run aborted: %w", err)
	}

	// единая точка синхронизации: дедуп и сбор алертов после всех символов
	next := prior
	for _, res := range results {
		switch {
		case res.err != nil:
			rep.Skipped++
			continue
		case !res.ok:
			rep.Evaluated++
			continue
		}
		rep.Evaluated++
		rep.Signals++

		var novel bool
		novel, next = IsNovel(res.symbol, res.sig, next)
		if !novel {
			logger.Debug("[DEDUP] %s %s already sent", res.symbol, Fingerprint(res.sig))
			continue
		}
		rep.Alerts = append(rep.Alerts, models.SymbolAlert{Symbol: res.symbol, Signal: res.sig})
	}

	sort.Slice(rep.Alerts, func(i, j int) bool { return rep.Alerts[i].Symbol < rep.Alerts[j].Symbol })
	rec.AlertsTotal.Add(float64(len(rep.Alerts)))

	logger.Info("[RUNNER] evaluated=%d skipped=%d signals=%d alerts=%d",
		rep.Evaluated, rep.Skipped, rep.Signals, len(rep.Alerts))

	if len(rep.Alerts) == 0 {
		return rep, nil
	}

	msg := FormatMessage(r.engine.Name(), r.opts.Interval, r.now(), rep.Alerts)
	if err := r.n.Send(ctx, msg); err != nil {
		// состояние не пишем, иначе алерт потеряется молча
		return rep, fmt.Errorf("%w: %w", ErrDelivery, err)
	}
	rep.Delivered = true

	if err := r.store.Save(ctx, next); err != nil {
		return rep, fmt.Errorf("save state: %w", err)
	}
	logger.Info("[RUNNER] ✅ sent %d alerts, state saved", len(rep.Alerts))
	return rep, nil
}

// evaluateAll оценивает символы параллельно; порядок результатов = порядок symbols.
func (r *Runner) evaluateAll(ctx context.Context, symbols []string, rec *metrics.Recorder) []evalResult {
	results := make([]evalResult, len(symbols))
	sem := make(chan struct{}, r.opts.Workers)

	var wg sync.WaitGroup
	for i, sym := range symbols {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[i] = r.evaluate(ctx, sym, rec)
		}()
	}
	wg.Wait()
	return results
}

func (r *Runner) evaluate(ctx context.Context, symbol string, rec *metrics.Recorder) (res evalResult) {
	res.symbol = symbol

	span, ctx := opentracing.StartSpanFromContext(ctx, "runner.evaluate")
	span.SetTag("symbol", symbol)
	defer span.Finish()

	defer func() {
		if p := recover(); p != nil {
			res = evalResult{symbol: symbol, err: fmt.Errorf("panic: %v", p)}
			rec.Skipped(skipPanic)
			logger.Error("[SKIP] %s — panic: %v", symbol, p)
		}
	}()

	bars, err := r.market.Klines(ctx, symbol)
	if err != nil {
		rec.Skipped(skipFetch)
		ext.Error.Set(span, true)
		logger.Warn("[SKIP] %s — %v", symbol, err)
		return evalResult{symbol: symbol, err: err}
	}
	if len(bars) < strategy.MinBars {
		rec.Skipped(skipHistory)
		logger.Debug("[SKIP] %s — %d bars, need %d", symbol, len(bars), strategy.MinBars)
		rec.EvaluatedTotal.Inc()
		return res
	}

	rec.EvaluatedTotal.Inc()
	sig, ok := r.engine.Evaluate(bars)
	if ok {
		rec.Signal(string(sig.Side))
		span.SetTag("side", string(sig.Side))
		logger.Info("[SIGNAL] %s %s @ %.4f (%s)", symbol, sig.Side, sig.Price, sig.When.Format(WhenLayout))
	}
	res.sig, res.ok = sig, ok
	return res
}
