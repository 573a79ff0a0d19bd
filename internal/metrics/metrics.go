package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals
var (
	MessagesReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "skyflip",
		Name:      "feed_messages_total",
		Help:      "Inbound feed messages by envelope type.",
	}, []string{"type"})

	MessagesDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "skyflip",
		Name:      "feed_messages_dropped_total",
		Help:      "Feed messages dropped at the dispatcher boundary.",
	}, []string{"reason"})

	ActionsExecuted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "skyflip",
		Name:      "actions_total",
		Help:      "Executed in-world actions by category and outcome.",
	}, []string{"category", "outcome"})

	GateContention = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "skyflip",
		Name:      "gate_contention_total",
		Help:      "Requeues caused by a busy category gate.",
	}, []string{"category"})

	NotificationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "skyflip",
		Name:      "notification_failures_total",
		Help:      "Webhook deliveries that failed.",
	})
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeError   = "error"
)
