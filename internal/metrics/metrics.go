// Package metrics — счётчики prometheus для событий оценки.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	registry *prometheus.Registry

	ImportsTotal      *prometheus.CounterVec
	ImportedAssets    prometheus.Counter
	SavesTotal        *prometheus.CounterVec
	StageTransitions  *prometheus.CounterVec
	CurrentStage      prometheus.Gauge
	ExportsTotal      *prometheus.CounterVec
	ThreatsAboveLimit prometheus.Gauge
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Registry{
		registry: reg,
		ImportsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "otgrc_imports_total",
			Help: "Asset inventory imports by format and result",
		}, []string{"format", "result"}),
		ImportedAssets: f.NewCounter(prometheus.CounterOpts{
			Name: "otgrc_imported_assets_total",
			Help: "Assets merged into the assessment by imports",
		}),
		SavesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "otgrc_saves_total",
			Help: "Writes to the key-value store by record and result",
		}, []string{"record", "result"}),
		StageTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "otgrc_stage_transitions_total",
			Help: "Stage navigation events by kind (next, prev, jump)",
		}, []string{"kind"}),
		CurrentStage: f.NewGauge(prometheus.GaugeOpts{
			Name: "otgrc_current_stage",
			Help: "Current ZCR stage (1-7)",
		}),
		ExportsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "otgrc_exports_total",
			Help: "Assessment exports by format",
		}, []string{"format"}),
		ThreatsAboveLimit: f.NewGauge(prometheus.GaugeOpts{
			Name: "otgrc_threats_above_tolerable",
			Help: "Threat scenarios whose residual risk exceeds the tolerable threshold",
		}),
	}
}

func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (r *Registry) RecordImport(format string, assets int, err error) {
	r.ImportsTotal.WithLabelValues(format, result(err)).Inc()
	if err == nil {
		r.ImportedAssets.Add(float64(assets))
	}
}

func (r *Registry) RecordSave(record string, err error) {
	r.SavesTotal.WithLabelValues(record, result(err)).Inc()
}

func (r *Registry) RecordStage(kind string, stage int) {
	r.StageTransitions.WithLabelValues(kind).Inc()
	r.CurrentStage.Set(float64(stage))
}

func (r *Registry) RecordExport(format string) {
	r.ExportsTotal.WithLabelValues(format).Inc()
}
