package metrics

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordImport(t *testing.T) {
	r := NewRegistry()
	r.RecordImport("csv", 3, nil)
	r.RecordImport("xlsx", 0, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(r.ImportsTotal.WithLabelValues("csv", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.ImportsTotal.WithLabelValues("xlsx", "error")))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.ImportedAssets))
}

func TestRecordStage(t *testing.T) {
	r := NewRegistry()
	r.RecordStage("next", 2)
	r.RecordStage("jump", 6)

	assert.Equal(t, 6.0, testutil.ToFloat64(r.CurrentStage))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.StageTransitions.WithLabelValues("jump")))
}

func TestHandlerServesMetrics(t *testing.T) {
	r := NewRegistry()
	r.RecordExport("json")

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), `otgrc_exports_total{format="json"} 1`)
}
