package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Nidhi-Chauhan111/Eco-App/internal/achievement"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/apperror"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/database"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/inspiration"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/logger"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/metrics"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/models"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/sentiment"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/streak"
)

const (
	maxContentLength  = 10000
	dashboardEntries  = 10
	dashboardPreviews = 5
	dashboardDays     = 30
)

// EntryStreak is the streak block of a processed entry.
type EntryStreak struct {
	CurrentStreak    int                    `json:"current_streak"`
	LongestStreak    int                    `json:"longest_streak"`
	TotalEntries     int                    `json:"total_entries"`
	StreakEvent      models.StreakEventType `json:"streak_event"`
	NewAchievements  []AwardedAchievement   `json:"new_achievements"`
	NextMilestone    *achievement.Milestone `json:"next_milestone"`
	FreezesRemaining int                    `json:"freezes_remaining"`
}

// ProcessResult is returned for every submitted entry. Validation problems
// are reported with Success false and Error set, never as a Go error.
type ProcessResult struct {
	Success     bool              `json:"success"`
	EntryID     string            `json:"entry_id,omitempty"`
	EntryDate   string            `json:"entry_date,omitempty"`
	Analysis    *models.Analysis  `json:"analysis,omitempty"`
	Inspiration string            `json:"inspiration,omitempty"`
	Streak      *EntryStreak      `json:"streak,omitempty"`
	Warnings    []*apperror.Error `json:"warnings,omitempty"`
	Error       *apperror.Error   `json:"error,omitempty"`
	ProcessedAt time.Time         `json:"processed_at"`
}

type EntrySummary struct {
	TotalEntries          int                           `json:"total_entries"`
	SentimentDistribution map[models.SentimentLabel]int `json:"sentiment_distribution"`
	DominantSentiment     string                        `json:"dominant_sentiment"`
	CommonEcoTags         []string                      `json:"common_eco_tags"`
	RecentEmotions        []string                      `json:"recent_emotions"`
}

type RecentEntries struct {
	Count   int                   `json:"count"`
	Entries []models.JournalEntry `json:"entries"`
	Summary EntrySummary          `json:"summary"`
}

type Dashboard struct {
	UserID          string            `json:"user_id"`
	StreakStatus    *StreakStatus     `json:"streak_status"`
	RecentEntries   RecentEntries     `json:"recent_entries"`
	Analytics       *streak.Analytics `json:"analytics"`
	Recommendations []string          `json:"recommendations"`
	GeneratedAt     time.Time         `json:"generated_at"`
}

type MoodInspiration struct {
	Mood        string   `json:"mood"`
	Inspiration string   `json:"inspiration"`
	Suggestions []string `json:"suggestions"`
}

type JournalService struct {
	db        *database.DB
	analyzer  *sentiment.Analyzer
	generator inspiration.Generator
	streaks   *StreakService
	metrics   *metrics.Metrics
	logger    *logger.Log
}

func NewJournalService(db *database.DB, analyzer *sentiment.Analyzer, generator inspiration.Generator, streaks *StreakService, m *metrics.Metrics) *JournalService {
	return &JournalService{
		db:        db,
		analyzer:  analyzer,
		generator: generator,
		streaks:   streaks,
		metrics:   m,
		logger:    logger.Component("journal"),
	}
}

// ProcessEntry analyses content, advances the streak, awards achievements,
// writes an inspiration message and stores the entry. entryDate defaults to
// today in the streak service's zone.
func (s *JournalService) ProcessEntry(ctx context.Context, userID, content string, entryDate *time.Time) (*ProcessResult, error) {
	today := s.streaks.Today()

	if verr := validateEntry(content, entryDate, today); verr != nil {
		return &ProcessResult{Error: verr, ProcessedAt: time.Now().UTC()}, nil
	}

	date := today
	if entryDate != nil {
		date = *entryDate
	}

	log := s.logger.With("user_id", userID)
	log.Debug("processing journal entry")

	result := &ProcessResult{}
	var stored *models.JournalEntry

	analysis, err := s.analyzer.Analyze(ctx, content)
	if err != nil {
		s.metrics.ClassifierFailed()
		log.WithError(err).Warn("storing entry with empty analysis")
	}

	plan, err := s.streaks.RecordEntry(ctx, userID, date, func(ctx context.Context, plan *EntryPlan) (*models.JournalEntry, error) {
		stored = &models.JournalEntry{
			UserID:    userID,
			Content:   content,
			EntryDate: plan.EntryDate,
			Analysis:  analysis,
			CreatedAt: time.Now().UTC(),
		}
		return stored, nil
	})
	if err != nil {
		log.WithError(err).Error("failed to process journal entry")
		return nil, err
	}

	// Runs after commit, outside the user's streak lock.
	names := make([]string, len(plan.NewAchievements))
	for i, a := range plan.NewAchievements {
		names[i] = a.Name
	}
	result.Inspiration = s.generator.Generate(ctx, analysis, inspiration.Context{
		CurrentStreak:   plan.State.CurrentStreak,
		TotalEntries:    plan.State.TotalEntries,
		StreakEvent:     plan.Event.EventType,
		NewAchievements: names,
	})
	if err := database.SetJournalInspiration(ctx, s.db, userID, stored.ID, result.Inspiration); err != nil {
		log.WithError(err).Warn("failed to store inspiration")
		result.Warnings = append(result.Warnings, apperror.Wrap(apperror.KindPersistenceUnavailable, err,
			"entry saved without its inspiration message"))
	}

	s.metrics.JournalEntry(analysis)

	result.Success = true
	result.EntryID = stored.ID
	result.EntryDate = plan.EntryDate.Format("2006-01-02")
	result.Analysis = &analysis
	result.Streak = &EntryStreak{
		CurrentStreak:    plan.State.CurrentStreak,
		LongestStreak:    plan.State.LongestStreak,
		TotalEntries:     plan.State.TotalEntries,
		StreakEvent:      plan.Event.EventType,
		NewAchievements:  nonNil(plan.NewAchievements),
		NextMilestone:    s.streaks.Catalog().NextMilestone(plan.State.CurrentStreak),
		FreezesRemaining: s.streaks.machine.FreezesRemaining(plan.State, today),
	}
	if plan.Event.EventType == models.EventPastEntry {
		result.Warnings = append(result.Warnings, apperror.Newf(apperror.KindOutOfOrderEntry,
			"entry dated %s is before your last entry; it was saved but does not change your streak", result.EntryDate))
	}
	result.ProcessedAt = time.Now().UTC()

	log.With("event", plan.Event.EventType).Info("journal entry processed")
	return result, nil
}

// ParseEntryDate reads a YYYY-MM-DD date in the streak service's zone.
func (s *JournalService) ParseEntryDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", raw, s.streaks.location)
	if err != nil {
		return nil, apperror.Validation("entry_date must be formatted YYYY-MM-DD")
	}
	return &t, nil
}

func validateEntry(content string, entryDate *time.Time, today time.Time) *apperror.Error {
	if strings.TrimSpace(content) == "" {
		return apperror.Validation("Journal entry content cannot be empty")
	}
	if utf8.RuneCountInString(content) > maxContentLength {
		return apperror.Validation("Journal entry is too long (max %d characters)", maxContentLength)
	}
	if entryDate != nil && streak.DaysBetween(today, entryDate.In(today.Location())) > 0 {
		return apperror.Validation("Entry date %s is in the future", entryDate.Format("2006-01-02"))
	}
	return nil
}

func nonNil(a []AwardedAchievement) []AwardedAchievement {
	if a == nil {
		return []AwardedAchievement{}
	}
	return a
}

func (s *JournalService) Entries(ctx context.Context, userID string, limit, offset int) ([]models.JournalEntry, error) {
	if limit <= 0 {
		limit = 20
	} else if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return database.ListJournalEntries(ctx, s.db, userID, limit, offset)
}

func (s *JournalService) Entry(ctx context.Context, userID, id string) (*models.JournalEntry, error) {
	return database.GetJournalEntry(ctx, s.db, userID, id)
}

func (s *JournalService) Dashboard(ctx context.Context, userID string) (*Dashboard, error) {
	status, err := s.streaks.Status(ctx, userID)
	if err != nil {
		return nil, err
	}
	entries, err := database.ListJournalEntries(ctx, s.db, userID, dashboardEntries, 0)
	if err != nil {
		return nil, err
	}
	analytics, err := s.streaks.Analytics(ctx, userID, dashboardDays)
	if err != nil {
		return nil, err
	}

	previews := entries
	if len(previews) > dashboardPreviews {
		previews = previews[:dashboardPreviews]
	}

	return &Dashboard{
		UserID:       userID,
		StreakStatus: status,
		RecentEntries: RecentEntries{
			Count:   len(entries),
			Entries: previews,
			Summary: summarizeEntries(entries),
		},
		Analytics:       analytics,
		Recommendations: dashboardRecommendations(status, analytics),
		GeneratedAt:     time.Now().UTC(),
	}, nil
}

var sentimentOrder = []models.SentimentLabel{
	models.SentimentPositive, models.SentimentNegative, models.SentimentNeutral, models.SentimentMixed,
}

func summarizeEntries(entries []models.JournalEntry) EntrySummary {
	summary := EntrySummary{
		TotalEntries:   len(entries),
		CommonEcoTags:  []string{},
		RecentEmotions: []string{},
	}
	if len(entries) == 0 {
		summary.DominantSentiment = "None"
		return summary
	}

	summary.SentimentDistribution = make(map[models.SentimentLabel]int, len(sentimentOrder))
	for _, l := range sentimentOrder {
		summary.SentimentDistribution[l] = 0
	}

	tags := newCounter()
	emotions := newCounter()
	for _, e := range entries {
		label := e.Analysis.Sentiment
		if label == "" {
			label = models.SentimentNeutral
		}
		if e.Analysis.MixedEmotions {
			label = models.SentimentMixed
		}
		summary.SentimentDistribution[label]++

		for _, t := range e.Analysis.EcoTags {
			tags.add(t)
		}
		for i, em := range e.Analysis.TopEmotions {
			if i == 2 {
				break
			}
			emotions.add(em.Label)
		}
	}

	dominant, best := sentimentOrder[0], -1
	for _, l := range sentimentOrder {
		if n := summary.SentimentDistribution[l]; n > best {
			dominant, best = l, n
		}
	}
	summary.DominantSentiment = string(dominant)
	summary.CommonEcoTags = tags.top(3)
	summary.RecentEmotions = emotions.top(5)
	return summary
}

// counter counts strings and ranks them by count, ties in first-seen order.
type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(s string) {
	if s == "" {
		return
	}
	if _, ok := c.counts[s]; !ok {
		c.order = append(c.order, s)
	}
	c.counts[s]++
}

func (c *counter) top(n int) []string {
	ranked := make([]string, len(c.order))
	copy(ranked, c.order)
	sort.SliceStable(ranked, func(i, j int) bool { return c.counts[ranked[i]] > c.counts[ranked[j]] })
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func dashboardRecommendations(status *StreakStatus, analytics *streak.Analytics) []string {
	recs := []string{}
	current := status.CurrentStreak

	switch {
	case current == 0:
		recs = append(recs, "🌱 Start your eco-journey today! Even small actions count.")
	case current < 7:
		recs = append(recs, "🔥 You're building momentum! Try to reach your first week.")
	case current < 30:
		recs = append(recs, "💪 Great progress! Aim for the 30-day milestone.")
	}

	switch {
	case analytics.ConsistencyRate < 70:
		recs = append(recs, "📅 Try setting a daily reminder to improve consistency.")
	case analytics.ConsistencyRate > 90:
		recs = append(recs, "🏆 Excellent consistency! You're an eco-champion!")
	}

	if status.StreakAtRisk {
		recs = append(recs, "⏰ Your streak is at risk! Make an entry today to keep it alive.")
	}

	if m := status.NextMilestone; current > 0 && m != nil && m.DaysRemaining <= 7 {
		recs = append(recs, fmt.Sprintf("🎯 Only %d days to earn '%s'!", m.DaysRemaining, m.Name))
	}
	return recs
}

// InspirationForMood returns an on-demand message and eco actions for mood.
func (s *JournalService) InspirationForMood(ctx context.Context, userID, mood string) (*MoodInspiration, error) {
	mood = strings.ToLower(strings.TrimSpace(mood))
	if mood == "" {
		return nil, apperror.Validation("mood is required")
	}

	status, err := s.streaks.Status(ctx, userID)
	if err != nil {
		return nil, err
	}

	msg := s.generator.Generate(ctx, inspiration.MoodAnalysis(mood), inspiration.Context{
		CurrentStreak: status.CurrentStreak,
		TotalEntries:  status.TotalEntries,
	})
	return &MoodInspiration{
		Mood:        mood,
		Inspiration: msg,
		Suggestions: inspiration.Suggestions(mood),
	}, nil
}
