package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_store_mutations_total",
			Help: "Applied store mutations by action",
		},
		[]string{"action"},
	)

	persistWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_store_persist_writes_total",
			Help: "Snapshot writes to client storage by key and result",
		},
		[]string{"key", "result"},
	)

	rehydrateTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_store_rehydrate_total",
			Help: "Store rehydrations at startup by key and outcome (restored, empty, corrupt, error)",
		},
		[]string{"key", "outcome"},
	)
)
