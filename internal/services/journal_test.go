package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nidhi-Chauhan111/Eco-App/internal/achievement"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/apperror"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/inspiration"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/models"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/sentiment"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/streak"
)

const proudBike = "I felt so proud riding my bike to work instead of driving"

func newJournalService(f *fixture) *JournalService {
	analyzer := sentiment.NewAnalyzer(sentiment.NewLexiconClassifier(), sentiment.DefaultConfig())
	return NewJournalService(f.db, analyzer, inspiration.NewTemplateGenerator(), f.streaks, nil)
}

func TestProcessEntry(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	js := newJournalService(f)
	uid := f.user(t, "alice")

	res, err := js.ProcessEntry(ctx, uid, proudBike, nil)
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Nil(t, res.Error)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, "2025-03-03", res.EntryDate)

	require.NotNil(t, res.Analysis)
	assert.Equal(t, models.SentimentPositive, res.Analysis.Sentiment)
	assert.Equal(t, []string{"transport"}, res.Analysis.EcoTags)
	assert.Equal(t,
		"That pride you feel? It's well-deserved! 🏆 Every eco-action counts! 🌍 Your sustainable transport choices make a real difference! 🚲",
		res.Inspiration)

	require.NotNil(t, res.Streak)
	assert.Equal(t, 1, res.Streak.CurrentStreak)
	assert.Equal(t, models.EventStarted, res.Streak.StreakEvent)
	require.Len(t, res.Streak.NewAchievements, 1)
	assert.Equal(t, models.AchievementFirstEntry, res.Streak.NewAchievements[0].AchievementType)
	require.NotNil(t, res.Streak.NextMilestone)
	assert.Equal(t, models.AchievementWeekWarrior, res.Streak.NextMilestone.Type)
	assert.Equal(t, 3, res.Streak.FreezesRemaining)

	entry, err := js.Entry(ctx, uid, res.EntryID)
	require.NoError(t, err)
	assert.Equal(t, proudBike, entry.Content)
	assert.Equal(t, res.Inspiration, entry.Inspiration)
	assert.Equal(t, models.EventStarted, entry.StreakEvent)
	assert.Equal(t, models.SentimentPositive, entry.Analysis.Sentiment)
}

type lockCheckingGenerator struct {
	locks    *userLocks
	userID   string
	calls    int
	lockFree bool
}

func (g *lockCheckingGenerator) Generate(_ context.Context, _ models.Analysis, uc inspiration.Context) string {
	g.calls++
	done := make(chan struct{})
	go func() {
		unlock := g.locks.lock(g.userID)
		unlock()
		close(done)
	}()
	select {
	case <-done:
		g.lockFree = true
	case <-time.After(time.Second):
	}
	return fmt.Sprintf("streak of %d", uc.CurrentStreak)
}

func TestProcessEntryGeneratesInspirationOutsideLock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uid := f.user(t, "alice")

	gen := &lockCheckingGenerator{locks: f.streaks.locks, userID: uid}
	analyzer := sentiment.NewAnalyzer(sentiment.NewLexiconClassifier(), sentiment.DefaultConfig())
	js := NewJournalService(f.db, analyzer, gen, f.streaks, nil)

	res, err := js.ProcessEntry(ctx, uid, proudBike, nil)
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, 1, gen.calls)
	assert.True(t, gen.lockFree, "inspiration must be generated after the streak lock is released")
	assert.Equal(t, "streak of 1", res.Inspiration)

	entry, err := js.Entry(ctx, uid, res.EntryID)
	require.NoError(t, err)
	assert.Equal(t, "streak of 1", entry.Inspiration)
}

func TestProcessEntryValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	js := newJournalService(f)
	uid := f.user(t, "alice")
	tomorrow := f.clock.Now().AddDate(0, 0, 1)

	tests := []struct {
		name    string
		content string
		date    *time.Time
	}{
		{"empty", "   ", nil},
		{"too long", strings.Repeat("a", maxContentLength+1), nil},
		{"future", "planted a tree", &tomorrow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := js.ProcessEntry(ctx, uid, tt.content, tt.date)
			require.NoError(t, err)
			assert.False(t, res.Success)
			require.NotNil(t, res.Error)
			assert.Equal(t, apperror.KindValidation, res.Error.Kind)
		})
	}

	entries, err := js.Entries(ctx, uid, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestProcessEntryPastDate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	js := newJournalService(f)
	uid := f.user(t, "alice")

	_, err := js.ProcessEntry(ctx, uid, "walked to the shop", nil)
	require.NoError(t, err)

	past := f.clock.Now().AddDate(0, 0, -2)
	res, err := js.ProcessEntry(ctx, uid, "forgot to log this", &past)
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, models.EventPastEntry, res.Streak.StreakEvent)
	assert.Equal(t, 1, res.Streak.CurrentStreak)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, apperror.KindOutOfOrderEntry, res.Warnings[0].Kind)

	entries, err := js.Entries(ctx, uid, 10, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	js := newJournalService(f)
	uid := f.user(t, "alice")

	_, err := js.ProcessEntry(ctx, uid, proudBike, nil)
	require.NoError(t, err)
	f.clock.Advance(1)
	_, err = js.ProcessEntry(ctx, uid, "I feel guilty about the plastic waste today", nil)
	require.NoError(t, err)

	d, err := js.Dashboard(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, uid, d.UserID)
	assert.Equal(t, 2, d.StreakStatus.CurrentStreak)
	assert.Equal(t, 2, d.RecentEntries.Count)
	assert.Len(t, d.RecentEntries.Entries, 2)
	assert.Equal(t, 2, d.RecentEntries.Summary.TotalEntries)
	assert.ElementsMatch(t, []string{"transport", "waste"}, d.RecentEntries.Summary.CommonEcoTags)
	assert.Equal(t, 2, d.Analytics.TotalEvents)

	assert.Equal(t, []string{
		"🔥 You're building momentum! Try to reach your first week.",
		"📅 Try setting a daily reminder to improve consistency.",
		"🎯 Only 5 days to earn 'Week Warrior'!",
	}, d.Recommendations)
}

func TestInspirationForMood(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	js := newJournalService(f)
	uid := f.user(t, "alice")

	got, err := js.InspirationForMood(ctx, uid, " Happy ")
	require.NoError(t, err)
	assert.Equal(t, "happy", got.Mood)
	assert.Equal(t, "You're doing amazing! 🌟 Every step towards sustainability matters! 🌱", got.Inspiration)
	assert.Len(t, got.Suggestions, 3)

	got, err = js.InspirationForMood(ctx, uid, "guilty")
	require.NoError(t, err)
	assert.Equal(t, "Every eco-champion has tough days. What matters is that you keep caring! 🌍💚", got.Inspiration)

	_, err = js.InspirationForMood(ctx, uid, "")
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestSummarizeEntries(t *testing.T) {
	entry := func(label models.SentimentLabel, mixed bool, tags []string, emotions ...string) models.JournalEntry {
		var top []models.EmotionScore
		for _, e := range emotions {
			top = append(top, models.EmotionScore{Label: e, Score: 0.5})
		}
		return models.JournalEntry{Analysis: models.Analysis{
			Sentiment: label, MixedEmotions: mixed, EcoTags: tags, TopEmotions: top,
		}}
	}

	empty := summarizeEntries(nil)
	assert.Equal(t, "None", empty.DominantSentiment)
	assert.Empty(t, empty.CommonEcoTags)
	assert.NotNil(t, empty.RecentEmotions)

	s := summarizeEntries([]models.JournalEntry{
		entry(models.SentimentPositive, false, []string{"energy", "food"}, "joy", "pride", "optimism"),
		entry(models.SentimentNegative, true, []string{"food"}, "guilt", "joy"),
		entry(models.SentimentNegative, false, []string{"water", "energy", "transport"}, "guilt"),
	})
	assert.Equal(t, 3, s.TotalEntries)
	assert.Equal(t, 1, s.SentimentDistribution[models.SentimentPositive])
	assert.Equal(t, 1, s.SentimentDistribution[models.SentimentNegative])
	assert.Equal(t, 1, s.SentimentDistribution[models.SentimentMixed])
	assert.Equal(t, "Positive", s.DominantSentiment)
	assert.Equal(t, []string{"energy", "food", "water"}, s.CommonEcoTags)
	assert.Equal(t, []string{"joy", "guilt", "pride"}, s.RecentEmotions)
}

func TestDashboardRecommendations(t *testing.T) {
	status := func(current int, atRisk bool, next *achievement.Milestone) *StreakStatus {
		return &StreakStatus{
			Status:        streak.Status{CurrentStreak: current, StreakAtRisk: atRisk},
			NextMilestone: next,
		}
	}
	analytics := func(rate float64) *streak.Analytics { return &streak.Analytics{ConsistencyRate: rate} }

	tests := []struct {
		name      string
		status    *StreakStatus
		analytics *streak.Analytics
		want      []string
	}{
		{
			"new user",
			status(0, false, &achievement.Milestone{Name: "First Step", DaysRemaining: 1}),
			analytics(0),
			[]string{
				"🌱 Start your eco-journey today! Even small actions count.",
				"📅 Try setting a daily reminder to improve consistency.",
			},
		},
		{
			"consistent and at risk",
			status(12, true, &achievement.Milestone{Name: "Month Champion", DaysRemaining: 18}),
			analytics(95),
			[]string{
				"💪 Great progress! Aim for the 30-day milestone.",
				"🏆 Excellent consistency! You're an eco-champion!",
				"⏰ Your streak is at risk! Make an entry today to keep it alive.",
			},
		},
		{
			"long streak",
			status(400, false, nil),
			analytics(80),
			[]string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dashboardRecommendations(tt.status, tt.analytics))
		})
	}
}
