// Package streak implements the daily journaling streak state machine.
//
// Every function here is pure: callers load a UserStreakState, apply a
// transition and persist the returned state and event together.
package streak

import (
	"math"
	"time"

	"github.com/Nidhi-Chauhan111/Eco-App/internal/apperror"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/models"
)

const periodLayout = "2006-01"

// Config tunes the machine. ResetThresholdDays is the longest gap, in days,
// that an armed freeze forgives.
type Config struct {
	MaxFreezesPerPeriod int
	ResetThresholdDays  int
}

// DefaultConfig allows three freezes a month and forgives a two day gap.
func DefaultConfig() Config {
	return Config{MaxFreezesPerPeriod: 3, ResetThresholdDays: 2}
}

// Machine applies streak transitions under a fixed Config.
type Machine struct {
	cfg Config
}

// NewMachine clamps negative quotas to zero and thresholds below one day to one.
func NewMachine(cfg Config) *Machine {
	if cfg.MaxFreezesPerPeriod < 0 {
		cfg.MaxFreezesPerPeriod = 0
	}
	if cfg.ResetThresholdDays < 1 {
		cfg.ResetThresholdDays = 1
	}
	return &Machine{cfg: cfg}
}

func (m *Machine) Config() Config { return m.cfg }

// Day truncates t to its calendar date at UTC midnight. The date is read in
// t's own location, so callers convert to the user's zone first.
func Day(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween is the signed number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(math.Round(Day(b).Sub(Day(a)).Hours() / 24))
}

// FreezePeriod names the quota period containing t, formatted YYYY-MM.
func FreezePeriod(t time.Time) string {
	return t.Format(periodLayout)
}

// Transition applies a journal entry dated entryDate to state and returns the
// new state and the single event describing what happened.
func (m *Machine) Transition(state models.UserStreakState, entryDate, now time.Time) (models.UserStreakState, models.StreakEvent) {
	entry := Day(entryDate)
	prev := state.CurrentStreak
	next := state

	event := models.StreakEvent{
		UserID:         state.UserID,
		PreviousStreak: prev,
		CreatedAt:      now,
	}

	advance := func(streak int) {
		next.CurrentStreak = streak
		next.TotalEntries++
		next.LastEntryDate = &entry
		if streak > next.LongestStreak {
			next.LongestStreak = streak
		}
		next.UpdatedAt = now
	}

	if state.LastEntryDate == nil {
		advance(1)
		event.EventType = models.EventStarted
		event.Metadata = models.Metadata{"is_first_entry": true}
		event.StreakCount = next.CurrentStreak
		return next, event
	}

	gap := DaysBetween(*state.LastEntryDate, entry)

	switch {
	case gap < 0:
		event.EventType = models.EventPastEntry
		event.Metadata = models.Metadata{
			"days_difference": gap,
			"entry_date":      entry.Format("2006-01-02"),
		}
	case gap == 0:
		// Another entry the same day counts towards total entries only.
		next.TotalEntries++
		next.UpdatedAt = now
		event.EventType = models.EventSameDay
		event.Metadata = models.Metadata{"no_change": true}
	case gap == 1:
		advance(prev + 1)
		event.EventType = models.EventContinued
		event.Metadata = models.Metadata{"days_difference": gap}
	case state.StreakFrozen && gap <= m.cfg.ResetThresholdDays:
		advance(prev + 1)
		next.StreakFrozen = false
		event.EventType = models.EventUnfrozen
		event.Metadata = models.Metadata{"days_difference": gap, "was_frozen": true}
	default:
		advance(1)
		next.StreakFrozen = false
		event.EventType = models.EventBroken
		event.Metadata = models.Metadata{
			"days_difference": gap,
			"previous_streak": prev,
			"was_frozen":      state.StreakFrozen,
		}
	}

	event.StreakCount = next.CurrentStreak
	return next, event
}

// UseFreeze arms a freeze that forgives a single gap of up to the reset
// threshold. The count resets at the start of each calendar month.
func (m *Machine) UseFreeze(state models.UserStreakState, now time.Time) (models.UserStreakState, models.StreakEvent, error) {
	next := state
	period := FreezePeriod(now)
	if next.FreezePeriod != period {
		next.FreezePeriod = period
		next.FreezeCount = 0
	}

	if next.FreezeCount >= m.cfg.MaxFreezesPerPeriod {
		return state, models.StreakEvent{}, apperror.Newf(apperror.KindFreezeUnavailable,
			"maximum streak freezes (%d) used for %s", m.cfg.MaxFreezesPerPeriod, period)
	}

	next.StreakFrozen = true
	next.FreezeCount++
	next.UpdatedAt = now

	event := models.StreakEvent{
		UserID:         state.UserID,
		EventType:      models.EventFrozen,
		StreakCount:    state.CurrentStreak,
		PreviousStreak: state.CurrentStreak,
		Metadata:       models.Metadata{"freeze_count": next.FreezeCount},
		CreatedAt:      now,
	}
	return next, event, nil
}

// FreezesRemaining accounts for the monthly reset without mutating state.
func (m *Machine) FreezesRemaining(state models.UserStreakState, now time.Time) int {
	used := state.FreezeCount
	if state.FreezePeriod != FreezePeriod(now) {
		used = 0
	}
	if r := m.cfg.MaxFreezesPerPeriod - used; r > 0 {
		return r
	}
	return 0
}
