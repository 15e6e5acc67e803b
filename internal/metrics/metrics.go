package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trackitnow_http_requests_total",
			Help: "Total number of HTTP requests by route and status class",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trackitnow_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	MessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "trackitnow_messages_sent_total",
			Help: "Total number of direct messages sent",
		},
	)

	FriendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trackitnow_friend_requests_total",
			Help: "Friend request outcomes (sent, duplicate, accepted, declined)",
		},
		[]string{"outcome"},
	)

	TasksCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "trackitnow_tasks_completed_total",
			Help: "Total number of task status transitions into done",
		},
	)

	BadgesAwarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trackitnow_badges_awarded_total",
			Help: "Badges awarded by type",
		},
		[]string{"badge"},
	)
)
