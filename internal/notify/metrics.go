package notify

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sweepsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "foresight_notification_sweeps_total",
		Help: "Number of completed due-date sweep passes.",
	})

	notificationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foresight_notifications_created_total",
		Help: "Notifications written, labelled by kind.",
	}, []string{"kind"})
)
