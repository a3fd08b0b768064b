package collect

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	modeSorted            = "sorted_map"
	modeSortedConcurrent  = "sorted_map_concurrent"
	modeGrouped           = "grouped"
	modeGroupedConcurrent = "grouped_concurrent"
)

var (
	operationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "collectors_operations_total",
		Help: "The total number of collection operations started",
	}, []string{"collector"})

	elementsTotal = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "collectors_elements_total",
		Help: "The total number of sequence elements folded",
	}, []string{"collector"})

	failuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "collectors_failures_total",
		Help: "The total number of collection operations that failed",
	}, []string{"collector"})
)
