package alerts

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var analysesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "analyses_total",
		Help: "Total number of content analyses by resulting severity and cache outcome",
	},
	[]string{"severity", "cached"},
)
