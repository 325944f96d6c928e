package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Counters(t *testing.T) {
	r := New()

	r.FetchSucceeded()
	r.FetchFailed()
	r.FetchFailed()
	r.EmptyWindow()
	r.MalformedRecord("time_location")
	r.Candidates(7)
	r.Mutation("create", 2)
	r.Mutation("delete", 0)
	r.CleanupDeleted(4)
	r.Delivery("abandoned")

	assert.Equal(t, 1.0, testutil.ToFloat64(r.fetches.WithLabelValues("ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.fetches.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.emptyWindows))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.malformedRecords.WithLabelValues("time_location")))
	assert.Equal(t, 7.0, testutil.ToFloat64(r.candidates))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.mutations.WithLabelValues("create")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.mutations.WithLabelValues("delete")))
	assert.Equal(t, 4.0, testutil.ToFloat64(r.cleanupDeleted))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.deliveries.WithLabelValues("abandoned")))
}

func TestRecorder_PassDuration(t *testing.T) {
	r := New()
	r.PassDuration(0.2)
	r.PassDuration(1.5)

	families, err := r.Registry().Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() != "theaterwecker_reconcile_pass_duration_seconds" {
			continue
		}
		h := mf.GetMetric()[0].GetHistogram()
		assert.Equal(t, uint64(2), h.GetSampleCount())
		assert.InDelta(t, 1.7, h.GetSampleSum(), 1e-9)
		return
	}
	t.Fatal("pass duration histogram not registered")
}

func TestRecorder_NilSafe(t *testing.T) {
	var r *Recorder

	assert.NotPanics(t, func() {
		r.FetchSucceeded()
		r.FetchFailed()
		r.EmptyWindow()
		r.MalformedRecord("title")
		r.Candidates(1)
		r.Mutation("create", 1)
		r.PassDuration(1)
		r.CleanupDeleted(1)
		r.Delivery("delivered")
	})
	assert.Nil(t, r.Registry())
}

func TestRecorder_Handler(t *testing.T) {
	r := New()
	r.Mutation("create", 3)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `theaterwecker_reconcile_mutations_total{action="create"} 3`)
}
