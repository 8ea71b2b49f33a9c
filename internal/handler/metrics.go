package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "studio_registrations_total",
		Help: "Total number of successful user registrations.",
	})

	refreshesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "studio_token_refreshes_total",
		Help: "Total number of successful token refreshes.",
	})

	tokenVerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studio_token_verifications_total",
			Help: "Total number of token verification attempts by status.",
		},
		[]string{"status"},
	)

	generationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studio_generations_total",
			Help: "Total number of generation operations by kind and status.",
		},
		[]string{"kind", "status"},
	)

	projectSavesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "studio_project_saves_total",
		Help: "Total number of successful project saves.",
	})
)
