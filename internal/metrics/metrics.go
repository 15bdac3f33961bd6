// Package metrics holds the prometheus collectors for the API and the
// journaling, streak and footprint services.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Nidhi-Chauhan111/Eco-App/internal/models"
)

type Metrics struct {
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	AuthRejections      *prometheus.CounterVec
	RateLimited         prometheus.Counter

	StreakEvents          *prometheus.CounterVec
	AchievementsAwarded   *prometheus.CounterVec
	JournalEntries        *prometheus.CounterVec
	ClassifierFailures    prometheus.Counter
	FactorFallbacks       *prometheus.CounterVec
	FootprintCalculations prometheus.Counter
	StreakConflicts       prometheus.Counter
}

// New creates the collectors and registers them on reg. Pass
// prometheus.DefaultRegisterer in main and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),
		AuthRejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_rejections_total",
				Help: "Total number of unauthorized requests",
			},
			[]string{"reason"},
		),
		RateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "http_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		}),
		StreakEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ecoapp_streak_events_total",
				Help: "Streak transitions by event type",
			},
			[]string{"event_type"},
		),
		AchievementsAwarded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ecoapp_achievements_awarded_total",
				Help: "Achievements awarded by type",
			},
			[]string{"achievement_type"},
		),
		JournalEntries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ecoapp_journal_entries_total",
				Help: "Processed journal entries by sentiment",
			},
			[]string{"sentiment"},
		),
		ClassifierFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ecoapp_classifier_failures_total",
			Help: "Journal entries stored with the empty analysis after a classifier error",
		}),
		FactorFallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ecoapp_emission_factor_fallbacks_total",
				Help: "Emission factor lookups that used the built-in default",
			},
			[]string{"category", "key"},
		),
		FootprintCalculations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ecoapp_footprint_calculations_total",
			Help: "Completed footprint calculations",
		}),
		StreakConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ecoapp_streak_version_conflicts_total",
			Help: "Optimistic concurrency conflicts on streak state",
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.HTTPRequests, m.HTTPRequestDuration, m.AuthRejections, m.RateLimited,
			m.StreakEvents, m.AchievementsAwarded, m.JournalEntries, m.ClassifierFailures,
			m.FactorFallbacks, m.FootprintCalculations, m.StreakConflicts,
		)
	}
	return m
}

// The helpers below accept a nil receiver so services run without metrics.

func (m *Metrics) StreakEvent(t models.StreakEventType) {
	if m == nil {
		return
	}
	m.StreakEvents.WithLabelValues(string(t)).Inc()
}

func (m *Metrics) AchievementAwarded(t models.AchievementType) {
	if m == nil {
		return
	}
	m.AchievementsAwarded.WithLabelValues(string(t)).Inc()
}

func (m *Metrics) JournalEntry(a models.Analysis) {
	if m == nil {
		return
	}
	label := a.Sentiment
	if a.MixedEmotions {
		label = models.SentimentMixed
	}
	m.JournalEntries.WithLabelValues(string(label)).Inc()
}

func (m *Metrics) ClassifierFailed() {
	if m == nil {
		return
	}
	m.ClassifierFailures.Inc()
}

func (m *Metrics) FactorFallback(category, key string) {
	if m == nil {
		return
	}
	m.FactorFallbacks.WithLabelValues(category, key).Inc()
}

func (m *Metrics) FootprintCalculated() {
	if m == nil {
		return
	}
	m.FootprintCalculations.Inc()
}

func (m *Metrics) StreakConflict() {
	if m == nil {
		return
	}
	m.StreakConflicts.Inc()
}
