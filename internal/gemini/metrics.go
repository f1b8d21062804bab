package gemini

import "github.com/prometheus/client_golang/prometheus"

var inferenceCalls = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "genrelay",
		Subsystem: "inference",
		Name:      "calls_total",
		Help:      "Total number of Gemini inference calls",
	},
	[]string{"modality", "outcome"},
)

func init() {
	prometheus.MustRegister(inferenceCalls)
}
