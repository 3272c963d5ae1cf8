package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application collectors.
	Registry = prometheus.NewRegistry()

	passesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "megasena",
			Subsystem: "reconcile",
			Name:      "passes_total",
			Help:      "Total number of reconciliation passes.",
		},
		[]string{"trigger", "result"},
	)

	passDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "megasena",
			Subsystem: "reconcile",
			Name:      "pass_duration_seconds",
			Help:      "Duration of reconciliation passes.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~40s
		},
	)

	drawsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "megasena",
			Subsystem: "reconcile",
			Name:      "draws_total",
			Help:      "Needed draws by how they settled.",
		},
		[]string{"status"},
	)

	outcomesMerged = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "megasena",
			Subsystem: "reconcile",
			Name:      "outcomes_merged_total",
			Help:      "Outcomes newly stored on bets.",
		},
	)

	drawLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "megasena",
			Subsystem: "cache",
			Name:      "draw_lookups_total",
			Help:      "Draw lookups that missed memory, by result.",
		},
		[]string{"result"},
	)

	providerFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "megasena",
			Subsystem: "provider",
			Name:      "fetches_total",
			Help:      "Requests made to the draw result provider, by result.",
		},
		[]string{"result"},
	)

	schedulerTriggers = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "megasena",
			Subsystem: "scheduler",
			Name:      "triggers_total",
			Help:      "Pass triggers by decision (run, queued, dropped).",
		},
		[]string{"trigger", "decision"},
	)
)

func init() {
	Registry.MustRegister(
		passesTotal,
		passDuration,
		drawsTotal,
		outcomesMerged,
		drawLookups,
		providerFetches,
		schedulerTriggers,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// ObservePass records a finished reconciliation pass.
func ObservePass(trigger string, complete bool, d time.Duration) {
	if trigger == "" {
		trigger = "unknown"
	}
	result := "complete"
	if !complete {
		result = "partial"
	}
	passesTotal.WithLabelValues(trigger, result).Inc()
	passDuration.Observe(d.Seconds())
}

// ObserveDraws records how the needed draws of a pass settled.
func ObserveDraws(resolved, pending, failed, deferred, skipped int) {
	drawsTotal.WithLabelValues("resolved").Add(float64(resolved))
	drawsTotal.WithLabelValues("pending").Add(float64(pending))
	drawsTotal.WithLabelValues("failed").Add(float64(failed))
	drawsTotal.WithLabelValues("deferred").Add(float64(deferred))
	drawsTotal.WithLabelValues("skipped").Add(float64(skipped))
}

// ObserveOutcomesMerged records newly stored outcomes.
func ObserveOutcomesMerged(n int) {
	outcomesMerged.Add(float64(n))
}

// ObserveDrawLookup records a cache miss and how it was served.
func ObserveDrawLookup(result string) {
	drawLookups.WithLabelValues(result).Inc()
}

// ObserveProviderFetch records one provider request by result
// (ok, not_yet_available, error).
func ObserveProviderFetch(result string) {
	providerFetches.WithLabelValues(result).Inc()
}

// ObserveTrigger records a scheduler decision.
func ObserveTrigger(trigger, decision string) {
	schedulerTriggers.WithLabelValues(trigger, decision).Inc()
}
