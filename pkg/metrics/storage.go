package metrics

import "github.com/prometheus/client_golang/prometheus"

// StorageMetrics tracks document persistence health and substrate usage.
type StorageMetrics struct {
	usageMB      prometheus.Gauge
	usagePercent prometheus.Gauge
	saveTotal    prometheus.Counter
	saveFailures prometheus.Counter
	submissions  prometheus.Counter
}

// NewStorageMetrics registers the storage metrics on the provided registerer.
func NewStorageMetrics(reg prometheus.Registerer) *StorageMetrics {
	if reg == nil {
		return &StorageMetrics{}
	}
	usageMB := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "storage_usage_mb",
		Help:      "Estimated substrate usage in megabytes.",
	})
	usagePercent := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "storage_usage_percent",
		Help:      "Estimated substrate usage as a percentage of the configured maximum.",
	})
	saveTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "document_saves_total",
		Help:      "Document writes attempted against the substrate.",
	})
	saveFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "document_save_failures_total",
		Help:      "Document writes rejected by the substrate.",
	})
	submissions := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkout_submissions_total",
		Help:      "Influencer checkout submissions accepted.",
	})
	reg.MustRegister(usageMB, usagePercent, saveTotal, saveFailures, submissions)
	return &StorageMetrics{
		usageMB:      usageMB,
		usagePercent: usagePercent,
		saveTotal:    saveTotal,
		saveFailures: saveFailures,
		submissions:  submissions,
	}
}

// SetUsage records the latest usage estimate.
func (s *StorageMetrics) SetUsage(mb, percent float64) {
	if s == nil || s.usageMB == nil {
		return
	}
	s.usageMB.Set(mb)
	s.usagePercent.Set(percent)
}

// IncSave counts an attempted document write.
func (s *StorageMetrics) IncSave() {
	if s == nil || s.saveTotal == nil {
		return
	}
	s.saveTotal.Inc()
}

// IncSaveFailure counts a rejected document write.
func (s *StorageMetrics) IncSaveFailure() {
	if s == nil || s.saveFailures == nil {
		return
	}
	s.saveFailures.Inc()
}

// IncSubmission counts an accepted checkout submission.
func (s *StorageMetrics) IncSubmission() {
	if s == nil || s.submissions == nil {
		return
	}
	s.submissions.Inc()
}
