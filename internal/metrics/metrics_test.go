package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nidhi-Chauhan111/Eco-App/internal/models"
)

func value(t *testing.T, c prometheus.Collector) float64 {
	t.Helper()
	ch := make(chan prometheus.Metric, 1)
	c.Collect(ch)
	close(ch)

	var total float64
	for m := range ch {
		var out dto.Metric
		require.NoError(t, m.Write(&out))
		total += out.GetCounter().GetValue()
	}
	return total
}

func TestHelpers(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.StreakEvent(models.EventContinued)
	m.StreakEvent(models.EventContinued)
	m.AchievementAwarded(models.AchievementWeekWarrior)
	m.JournalEntry(models.Analysis{Sentiment: models.SentimentPositive, MixedEmotions: true})
	m.ClassifierFailed()
	m.FactorFallback("food", "Beef")
	m.FootprintCalculated()
	m.StreakConflict()

	assert.Equal(t, 2.0, value(t, m.StreakEvents.WithLabelValues("continued")))
	assert.Equal(t, 1.0, value(t, m.AchievementsAwarded.WithLabelValues("week_warrior")))
	assert.Equal(t, 1.0, value(t, m.JournalEntries.WithLabelValues("Mixed")))
	assert.Equal(t, 0.0, value(t, m.JournalEntries.WithLabelValues("Positive")))
	assert.Equal(t, 1.0, value(t, m.ClassifierFailures))
	assert.Equal(t, 1.0, value(t, m.FactorFallbacks.WithLabelValues("food", "Beef")))
	assert.Equal(t, 1.0, value(t, m.FootprintCalculations))
	assert.Equal(t, 1.0, value(t, m.StreakConflicts))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.StreakEvent(models.EventStarted)
		m.AchievementAwarded(models.AchievementFirstEntry)
		m.JournalEntry(models.Analysis{})
		m.ClassifierFailed()
		m.FactorFallback("energy", "x")
		m.FootprintCalculated()
		m.StreakConflict()
	})
}

func TestNewRegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
