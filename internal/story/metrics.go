package story

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	storyRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dnd_story_requests_total",
			Help: "Total number of narrative generation requests.",
		},
		[]string{"backend", "model", "kind", "status"}, // kind: start|continue
	)
	storyRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dnd_story_request_duration_seconds",
			Help:    "Histogram of narrative generation request durations.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "model"},
	)
	storyRepairsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dnd_story_repairs_total",
			Help: "Story responses that needed a field dropped or defaulted.",
		},
		[]string{"repair"},
	)
	illustrationRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dnd_illustration_requests_total",
			Help: "Total number of illustration requests.",
		},
		[]string{"backend", "status"}, // status: success|empty|error
	)
)
