package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCounters(t *testing.T) {
	r := New("EMA50+EMAexit")

	r.EvaluatedTotal.Inc()
	r.EvaluatedTotal.Inc()
	r.Skipped("fetch")
	r.Signal("BUY")
	r.Signal("BUY")
	r.Signal("SELL")
	r.AlertsTotal.Add(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.EvaluatedTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.SkippedTotal.WithLabelValues("fetch")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.SignalsTotal.WithLabelValues("BUY")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.SignalsTotal.WithLabelValues("SELL")))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.AlertsTotal))

	n, err := testutil.GatherAndCount(r.Registry(), "alertbot_signals_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestFinish(t *testing.T) {
	r := New("x")
	r.Finish(time.Now().Add(-time.Second), false)
	assert.Zero(t, testutil.ToFloat64(r.LastSuccess))
	assert.GreaterOrEqual(t, testutil.ToFloat64(r.RunDuration), 1.0)

	r.Finish(time.Now(), true)
	assert.Positive(t, testutil.ToFloat64(r.LastSuccess))
}

func TestPushEmptyURL(t *testing.T) {
	assert.NoError(t, New("x").Push(context.Background(), "", "job"))
}

func TestPush(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.True(t, strings.HasPrefix(r.URL.Path, "/metrics/job/alert_bot"), r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	r := New("x")
	r.AlertsTotal.Inc()
	require.NoError(t, r.Push(context.Background(), srv.URL, "alert_bot"))
	assert.Equal(t, int32(1), calls.Load())
}

func TestPushError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	assert.Error(t, New("x").Push(context.Background(), srv.URL, "alert_bot"))
}
