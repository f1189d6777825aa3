package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Recorder — метрики одного запуска. Свой registry, чтобы не зависеть от глобального.
type Recorder struct {
	reg *prometheus.Registry

	SymbolsTotal   prometheus.Gauge
	EvaluatedTotal prometheus.Counter
	SkippedTotal   *prometheus.CounterVec
	SignalsTotal   *prometheus.CounterVec
	AlertsTotal    prometheus.Counter
	RunDuration    prometheus.Gauge
	LastSuccess    prometheus.Gauge
}

func New(strategy string) *Recorder {
	labels := prometheus.Labels{"strategy": strategy}
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		SymbolsTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "alertbot_symbols", Help: "Symbols in the universe for the run", ConstLabels: labels,
		}),
		EvaluatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "alertbot_symbols_evaluated_total", Help: "Symbols evaluated by the strategy", ConstLabels: labels,
		}),
		SkippedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "alertbot_symbols_skipped_total", Help: "Symbols skipped", ConstLabels: labels,
		}, []string{"reason"}),
		SignalsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "alertbot_signals_total", Help: "Signals computed on the last bar", ConstLabels: labels,
		}, []string{"side"}),
		AlertsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "alertbot_alerts_total", Help: "New signals sent", ConstLabels: labels,
		}),
		RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "alertbot_run_duration_seconds", Help: "Duration of the last run", ConstLabels: labels,
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "alertbot_last_success_unixtime", Help: "Last successful run", ConstLabels: labels,
		}),
	}
	r.reg.MustRegister(
		r.SymbolsTotal, r.EvaluatedTotal, r.SkippedTotal,
		r.SignalsTotal, r.AlertsTotal, r.RunDuration, r.LastSuccess,
	)
	return r
}

func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

func (r *Recorder) Skipped(reason string) { r.SkippedTotal.WithLabelValues(reason).Inc() }
func (r *Recorder) Signal(side string)    { r.SignalsTotal.WithLabelValues(side).Inc() }

func (r *Recorder) Finish(started time.Time, ok bool) {
	r.RunDuration.Set(time.Since(started).Seconds())
	if ok {
		r.LastSuccess.SetToCurrentTime()
	}
}

// Push отправляет метрики в Pushgateway. Пустой url — ничего не делает.
func (r *Recorder) Push(ctx context.Context, url, job string) error {
	if url == "" {
		return nil
	}
	return push.New(url, job).Gatherer(r.reg).PushContext(ctx)
}
