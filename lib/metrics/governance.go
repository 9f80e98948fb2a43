package metrics

import (
	"strconv"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type GovernanceMetrics struct {
	ProposalsTotal metrics.Counter
	VotesTotal     metrics.Counter
	FinalizedTotal metrics.Counter
	RejectedTotal  metrics.Counter
}

func (g *GovernanceMetrics) AddProposal() {
	g.ProposalsTotal.Add(1)
}

func (g *GovernanceMetrics) AddVote(choice bool) {
	g.VotesTotal.With(GovernanceChoice, strconv.FormatBool(choice)).Add(1)
}

func (g *GovernanceMetrics) AddFinalized(passed bool) {
	outcome := "failed"
	if passed {
		outcome = "passed"
	}
	g.FinalizedTotal.With(GovernanceOutcome, outcome).Add(1)
}

// AddRejected counts the operation rejected by the ledger with the error
// code.
func (g *GovernanceMetrics) AddRejected(operation string, code uint) {
	g.RejectedTotal.With(
		GovernanceOperation, operation,
		GovernanceCode, strconv.FormatUint(uint64(code), 10),
	).Add(1)
}

func PromGovernanceMetrics() *GovernanceMetrics {
	return &GovernanceMetrics{
		ProposalsTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: GovernanceSubsystem,
			Name:      "proposals_total",
			Help:      "Total number of created proposals.",
		}, []string{}),
		VotesTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: GovernanceSubsystem,
			Name:      "votes_total",
			Help:      "Total number of submitted votes.",
		}, []string{GovernanceChoice}),
		FinalizedTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: GovernanceSubsystem,
			Name:      "finalized_total",
			Help:      "Total number of finalized proposals.",
		}, []string{GovernanceOutcome}),
		RejectedTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: GovernanceSubsystem,
			Name:      "rejected_total",
			Help:      "Total number of rejected operations.",
		}, []string{GovernanceOperation, GovernanceCode}),
	}
}

func NopGovernanceMetrics() *GovernanceMetrics {
	return &GovernanceMetrics{
		ProposalsTotal: discard.NewCounter(),
		VotesTotal:     discard.NewCounter(),
		FinalizedTotal: discard.NewCounter(),
		RejectedTotal:  discard.NewCounter(),
	}
}
