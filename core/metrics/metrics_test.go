package metrics_test

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"anime-tracker/core/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveProvider(t *testing.T) {
	m := metrics.New()
	m.ObserveProvider("jikan", metrics.OutcomeOK, 10*time.Millisecond)
	m.ObserveProvider("jikan", metrics.OutcomeOK, 10*time.Millisecond)
	m.ObserveProvider("tmdb", metrics.OutcomeError, time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ProviderCalls().WithLabelValues("jikan", metrics.OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProviderCalls().WithLabelValues("tmdb", metrics.OutcomeError)))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.ObserveProvider("jikan", metrics.OutcomeOK, time.Millisecond)
		m.ObserveReconcile("series", "create")
	})
}

func TestHandler(t *testing.T) {
	m := metrics.New()
	m.ObserveReconcile("movie", "create")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `anime_tracker_reconciliations_total{kind="movie",mode="create"} 1`)
}
