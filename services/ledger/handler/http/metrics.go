package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	commitOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledger",
		Name:      "commit_outcomes_total",
		Help:      "Commit requests by outcome classification.",
	}, []string{"outcome"})

	balanceOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledger",
		Name:      "balance_operations_total",
		Help:      "Balance operations by type and result.",
	}, []string{"operation", "result"})
)
