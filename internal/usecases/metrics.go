package usecases

import "github.com/prometheus/client_golang/prometheus"

var (
	submissionsReceived = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "directory_submissions_received_total",
		Help: "Submissions accepted into the moderation queue.",
	})
	moderationDecisions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "directory_moderation_decisions_total",
		Help: "Moderation outcomes by decision.",
	}, []string{"decision"})
	claimDecisions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "directory_claim_decisions_total",
		Help: "Ownership claim events by outcome.",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(submissionsReceived, moderationDecisions, claimDecisions)
}
