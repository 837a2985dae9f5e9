package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SalesCommitted counts sales that made it through the full commit protocol.
var SalesCommitted = promauto.NewCounter(prometheus.CounterOpts{
	Name: "pos_sales_committed_total",
	Help: "Number of sales committed to the ledger.",
})

// SalesRejected counts commits rejected before any durable write, by reason.
var SalesRejected = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "pos_sales_rejected_total",
	Help: "Number of sale commits rejected, partitioned by reason.",
}, []string{"reason"})

// CommitRollbacks counts persistence failures that required compensating the
// in-memory stock decrements.
var CommitRollbacks = promauto.NewCounter(prometheus.CounterOpts{
	Name: "pos_commit_rollbacks_total",
	Help: "Number of commits rolled back after a persistence failure.",
})
