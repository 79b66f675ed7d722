package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var insightRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "foresight_insight_requests_total",
	Help: "Served insight computations, labelled by kind.",
}, []string{"kind"})
