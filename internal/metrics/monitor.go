package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const PartwatchNamespace = "partwatch"

var (
	PollCyclesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name:      "poll_cycles_total",
		Namespace: PartwatchNamespace,
		Help:      "The total number of successful metadata poll cycles.",
	})

	PollFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name:      "poll_failures_total",
			Namespace: PartwatchNamespace,
			Help:      "The total number of failed metadata poll cycles.",
		},
		[]string{"reason"},
	)

	PollLatencySeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:      "poll_latency_seconds",
		Namespace: PartwatchNamespace,
		Buckets:   prometheus.DefBuckets,
		Help:      "The latency of metadata poll cycles in seconds.",
	})

	ReconfigurationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name:      "reconfigurations_total",
		Namespace: PartwatchNamespace,
		Help:      "The total number of topology changes that requested task reconfiguration.",
	})

	TopicPartitions = promauto.NewGauge(prometheus.GaugeOpts{
		Name:      "topic_partitions",
		Namespace: PartwatchNamespace,
		Help:      "The number of topic partitions in the current snapshot.",
	})
)
