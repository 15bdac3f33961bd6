package streak

import (
	"math"
	"sort"
	"time"

	"github.com/Nidhi-Chauhan111/Eco-App/internal/models"
)

const progressionLimit = 30

// Status is the user-facing view of a streak on a given day.
type Status struct {
	UserID             string     `json:"user_id"`
	CurrentStreak      int        `json:"current_streak"`
	LongestStreak      int        `json:"longest_streak"`
	TotalEntries       int        `json:"total_entries"`
	LastEntryDate      *time.Time `json:"last_entry_date"`
	StreakFrozen       bool       `json:"streak_frozen"`
	FreezeCount        int        `json:"freeze_count"`
	FreezesRemaining   int        `json:"freezes_remaining"`
	DaysSinceLastEntry *int       `json:"days_since_last_entry"`
	StreakAtRisk       bool       `json:"streak_at_risk"`
}

// Status summarises state as seen on today. A streak is at risk once a day
// has passed without an entry and no freeze is armed.
func (m *Machine) Status(state models.UserStreakState, today time.Time) Status {
	s := Status{
		UserID:           state.UserID,
		CurrentStreak:    state.CurrentStreak,
		LongestStreak:    state.LongestStreak,
		TotalEntries:     state.TotalEntries,
		LastEntryDate:    state.LastEntryDate,
		StreakFrozen:     state.StreakFrozen,
		FreezeCount:      state.FreezeCount,
		FreezesRemaining: m.FreezesRemaining(state, today),
	}
	if state.FreezePeriod != FreezePeriod(today) {
		s.FreezeCount = 0
	}
	if state.LastEntryDate != nil {
		days := DaysBetween(*state.LastEntryDate, today)
		s.DaysSinceLastEntry = &days
		s.StreakAtRisk = days >= 1 && !state.StreakFrozen
	}
	return s
}

type ProgressPoint struct {
	Date        string                 `json:"date"`
	StreakCount int                    `json:"streak_count"`
	EventType   models.StreakEventType `json:"event_type"`
}

// Analytics summarises streak events over a trailing window.
type Analytics struct {
	PeriodDays            int                            `json:"analysis_period_days"`
	TotalEvents           int                            `json:"total_events"`
	EventBreakdown        map[models.StreakEventType]int `json:"event_breakdown"`
	ConsistencyRate       float64                        `json:"consistency_rate"`
	StreakProgression     []ProgressPoint                `json:"streak_progression"`
	AverageStreakLength   float64                        `json:"average_streak_length"`
	LongestStreakInPeriod int                            `json:"longest_streak_in_period"`
}

// Analyze reports on events created within the last days days. The average
// streak length is taken over every event given, not only the window.
func Analyze(events []models.StreakEvent, now time.Time, days int) Analytics {
	sorted := make([]models.StreakEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CreatedAt.Before(sorted[j].CreatedAt) })

	cutoff := now.AddDate(0, 0, -days)
	a := Analytics{
		PeriodDays:        days,
		EventBreakdown:    make(map[models.StreakEventType]int),
		StreakProgression: []ProgressPoint{},
	}

	for _, e := range sorted {
		if e.CreatedAt.Before(cutoff) {
			continue
		}
		a.TotalEvents++
		a.EventBreakdown[e.EventType]++
		a.StreakProgression = append(a.StreakProgression, ProgressPoint{
			Date:        e.CreatedAt.Format("2006-01-02"),
			StreakCount: e.StreakCount,
			EventType:   e.EventType,
		})
		if e.StreakCount > a.LongestStreakInPeriod {
			a.LongestStreakInPeriod = e.StreakCount
		}
	}

	if a.TotalEvents > 0 {
		rate := float64(a.EventBreakdown[models.EventContinued]) / float64(a.TotalEvents) * 100
		a.ConsistencyRate = math.Round(rate*100) / 100
	}
	if n := len(a.StreakProgression); n > progressionLimit {
		a.StreakProgression = a.StreakProgression[n-progressionLimit:]
	}
	a.AverageStreakLength = averageStreakLength(sorted)
	return a
}

// averageStreakLength walks chronological events and averages the length of
// every run, including the one still in progress.
func averageStreakLength(events []models.StreakEvent) float64 {
	var runs []int
	current := 0
	for _, e := range events {
		switch e.EventType {
		case models.EventStarted:
			if current > 0 {
				runs = append(runs, current)
			}
			current = 1
		case models.EventContinued, models.EventUnfrozen:
			current = e.StreakCount
		case models.EventBroken:
			if current > 0 {
				runs = append(runs, current)
			}
			current = 1
		}
	}
	if current > 0 {
		runs = append(runs, current)
	}
	if len(runs) == 0 {
		return 0
	}
	total := 0
	for _, r := range runs {
		total += r
	}
	return math.Round(float64(total)/float64(len(runs))*100) / 100
}
