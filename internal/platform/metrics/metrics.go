package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petmatch_http_requests_total",
			Help: "Total de requests HTTP por ruta y status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "petmatch_http_request_duration_seconds",
			Help:    "Latencia de requests HTTP",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Recomendaciones
	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "petmatch_recommendation_duration_seconds",
			Help:    "Tiempo de cálculo de recomendaciones (sin cache)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	RecommendationCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "petmatch_recommendation_candidates",
			Help:    "Tamaño del pool de candidatos por request",
			Buckets: []float64{0, 10, 50, 100, 250, 500, 1000, 5000},
		},
	)

	RecommendationDisqualified = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "petmatch_recommendation_disqualified_total",
			Help: "Candidatos descartados por reglas duras",
		},
	)

	RecommendationScoringFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "petmatch_recommendation_scoring_failures_total",
			Help: "Candidatos omitidos por fallo al calcular su score",
		},
	)

	RecommendationCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petmatch_recommendation_cache_total",
			Help: "Resultados de lookup en cache de recomendaciones",
		},
		[]string{"result"}, // hit, miss, stale, skipped, error
	)
)
