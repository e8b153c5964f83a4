package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	runDuration         *prom.HistogramVec
	runOutcome          *prom.CounterVec
	templatesProcessed  prom.Counter
	missingTranslations *prom.GaugeVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		runDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "gosetta",
			Name:      "run_duration_seconds",
			Help:      "Duration of generate/translate runs",
			Buckets:   prom.DefBuckets,
		}, []string{"operation"}),
		runOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "gosetta",
			Name:      "run_outcomes_total",
			Help:      "Run outcomes by final status",
		}, []string{"operation", "outcome"}),
		templatesProcessed: prom.NewCounter(prom.CounterOpts{
			Namespace: "gosetta",
			Name:      "templates_processed_total",
			Help:      "Templates processed across all runs",
		}),
		missingTranslations: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: "gosetta",
			Name:      "missing_translations",
			Help:      "Catalog entries without a translated value, per language",
		}, []string{"language"}),
	}
	reg.MustRegister(pr.runDuration, pr.runOutcome, pr.templatesProcessed, pr.missingTranslations)
	return pr
}

func (pr *PrometheusRecorder) ObserveRunDuration(operation string, d time.Duration) {
	pr.runDuration.WithLabelValues(operation).Observe(d.Seconds())
}

func (pr *PrometheusRecorder) IncRunOutcome(operation, outcome string) {
	pr.runOutcome.WithLabelValues(operation, outcome).Inc()
}

func (pr *PrometheusRecorder) AddTemplatesProcessed(n int) {
	pr.templatesProcessed.Add(float64(n))
}

func (pr *PrometheusRecorder) SetMissingTranslations(language string, n int) {
	pr.missingTranslations.WithLabelValues(language).Set(float64(n))
}
