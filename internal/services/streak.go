package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Nidhi-Chauhan111/Eco-App/internal/achievement"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/apperror"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/database"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/logger"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/metrics"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/models"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/streak"
)

const maxCommitAttempts = 3

// AwardedAchievement is an earned achievement joined with its catalog entry.
type AwardedAchievement struct {
	models.Achievement
	Name        string `json:"name"`
	Description string `json:"description"`
	Badge       string `json:"badge"`
}

// EntryPlan is the effect a journal entry has on the streak, worked out
// before anything is written.
type EntryPlan struct {
	UserID          string
	EntryDate       time.Time
	Previous        models.UserStreakState
	State           models.UserStreakState
	Event           models.StreakEvent
	NewAchievements []AwardedAchievement
}

// AttachFunc builds the journal entry stored in the same transaction as the
// streak update. It may be called again when the commit is retried.
type AttachFunc func(ctx context.Context, plan *EntryPlan) (*models.JournalEntry, error)

type FreezeResult struct {
	Success          bool           `json:"success"`
	Message          string         `json:"message"`
	CurrentStreak    int            `json:"current_streak"`
	FreezeCount      int            `json:"freeze_count"`
	FreezesRemaining int            `json:"freezes_remaining"`
	Error            *apperror.Error `json:"error,omitempty"`
}

type StreakStatus struct {
	streak.Status
	NextMilestone *achievement.Milestone `json:"next_milestone"`
	Achievements  []AwardedAchievement   `json:"achievements"`
}

type StreakService struct {
	db       *database.DB
	machine  *streak.Machine
	catalog  *achievement.Catalog
	metrics  *metrics.Metrics
	notifier Notifier
	location *time.Location
	now      func() time.Time
	locks    *userLocks
	logger   *logger.Log
}

type StreakOption func(*StreakService)

func WithNotifier(n Notifier) StreakOption {
	return func(s *StreakService) {
		if n != nil {
			s.notifier = n
		}
	}
}

func WithMetrics(m *metrics.Metrics) StreakOption {
	return func(s *StreakService) { s.metrics = m }
}

// WithLocation sets the zone whose calendar defines a day.
func WithLocation(loc *time.Location) StreakOption {
	return func(s *StreakService) {
		if loc != nil {
			s.location = loc
		}
	}
}

func WithClock(now func() time.Time) StreakOption {
	return func(s *StreakService) {
		if now != nil {
			s.now = now
		}
	}
}

func NewStreakService(db *database.DB, machine *streak.Machine, catalog *achievement.Catalog, opts ...StreakOption) *StreakService {
	s := &StreakService{
		db:       db,
		machine:  machine,
		catalog:  catalog,
		notifier: noopNotifier{},
		location: time.UTC,
		now:      time.Now,
		locks:    newUserLocks(),
		logger:   logger.Component("streak"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *StreakService) Catalog() *achievement.Catalog { return s.catalog }

// Today is the current instant in the service's zone.
func (s *StreakService) Today() time.Time { return s.now().In(s.location) }

// RecordEntry applies an entry dated entryDate to the user's streak, awards
// achievements and, when attach is given, stores the journal entry it
// returns, all in one transaction. Concurrent writers are detected through
// the state version and the whole step is retried.
func (s *StreakService) RecordEntry(ctx context.Context, userID string, entryDate time.Time, attach AttachFunc) (*EntryPlan, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	var lastErr error
	for attempt := 1; attempt <= maxCommitAttempts; attempt++ {
		plan, err := s.plan(ctx, userID, entryDate)
		if err != nil {
			return nil, err
		}

		var entry *models.JournalEntry
		if attach != nil {
			if entry, err = attach(ctx, plan); err != nil {
				return nil, err
			}
		}

		err = s.commit(ctx, plan, entry)
		if err == nil {
			s.afterCommit(plan)
			return plan, nil
		}
		if !errors.Is(err, database.ErrVersionConflict) {
			return nil, err
		}

		lastErr = err
		s.metrics.StreakConflict()
		s.logger.With("user_id", userID).With("attempt", attempt).Warn("streak state changed concurrently, retrying")
	}
	return nil, apperror.Wrap(apperror.KindConflict, lastErr,
		fmt.Sprintf("streak update for entry gave up after %d attempts", maxCommitAttempts))
}

func (s *StreakService) plan(ctx context.Context, userID string, entryDate time.Time) (*EntryPlan, error) {
	state, _, err := database.GetStreakState(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	earned, err := database.ListAchievements(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	next, event := s.machine.Transition(state, entryDate.In(s.location), now)

	plan := &EntryPlan{
		UserID:    userID,
		EntryDate: streak.Day(entryDate.In(s.location)),
		Previous:  state,
		State:     next,
		Event:     event,
	}

	if event.EventType != models.EventPastEntry {
		for _, a := range s.catalog.Evaluate(userID, next.CurrentStreak, database.EarnedSet(earned), now) {
			plan.NewAchievements = append(plan.NewAchievements, s.award(a))
		}
	}
	return plan, nil
}

func (s *StreakService) commit(ctx context.Context, plan *EntryPlan, entry *models.JournalEntry) error {
	return s.db.WithTx(ctx, func(q database.Querier) error {
		if plan.Event.EventType != models.EventPastEntry {
			if err := database.SaveStreakState(ctx, q, &plan.State); err != nil {
				return err
			}
		}
		if err := database.InsertStreakEvent(ctx, q, &plan.Event); err != nil {
			return err
		}

		awarded := plan.NewAchievements[:0]
		for _, a := range plan.NewAchievements {
			inserted, err := database.InsertAchievement(ctx, q, &a.Achievement)
			if err != nil {
				return err
			}
			if inserted {
				awarded = append(awarded, a)
			}
		}
		plan.NewAchievements = awarded

		if entry != nil {
			entry.StreakEvent = plan.Event.EventType
			if err := database.InsertJournalEntry(ctx, q, entry); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *StreakService) afterCommit(plan *EntryPlan) {
	s.metrics.StreakEvent(plan.Event.EventType)
	log := s.logger.With("user_id", plan.UserID).With("event", plan.Event.EventType).With("streak", plan.State.CurrentStreak)
	log.Info("streak updated")

	for _, a := range plan.NewAchievements {
		s.metrics.AchievementAwarded(a.AchievementType)
		log.With("achievement", a.AchievementType).Info("achievement unlocked")
		s.notifier.Notify(plan.UserID, EventAchievementUnlocked, a)
	}
}

func (s *StreakService) award(a models.Achievement) AwardedAchievement {
	out := AwardedAchievement{Achievement: a}
	if d, ok := s.catalog.Lookup(a.AchievementType); ok {
		out.Name, out.Description, out.Badge = d.Name, d.Description, d.Badge
	}
	return out
}

// UseFreeze arms a streak freeze. An exhausted quota is reported in the
// result rather than as an error.
func (s *StreakService) UseFreeze(ctx context.Context, userID string) (*FreezeResult, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	var lastErr error
	for attempt := 1; attempt <= maxCommitAttempts; attempt++ {
		state, _, err := database.GetStreakState(ctx, s.db, userID)
		if err != nil {
			return nil, err
		}

		today := s.Today()
		next, event, err := s.machine.UseFreeze(state, today)
		if err != nil {
			var appErr *apperror.Error
			if !errors.As(err, &appErr) {
				return nil, err
			}
			return &FreezeResult{
				Success:          false,
				Message:          appErr.Message,
				CurrentStreak:    state.CurrentStreak,
				FreezeCount:      s.machine.Config().MaxFreezesPerPeriod - s.machine.FreezesRemaining(state, today),
				FreezesRemaining: 0,
				Error:            appErr,
			}, nil
		}
		event.CreatedAt = s.now().UTC()

		err = s.db.WithTx(ctx, func(q database.Querier) error {
			if err := database.SaveStreakState(ctx, q, &next); err != nil {
				return err
			}
			return database.InsertStreakEvent(ctx, q, &event)
		})
		if err == nil {
			s.metrics.StreakEvent(models.EventFrozen)
			s.logger.With("user_id", userID).With("freeze_count", next.FreezeCount).Info("streak frozen")
			return &FreezeResult{
				Success:          true,
				Message:          "Streak frozen successfully!",
				CurrentStreak:    next.CurrentStreak,
				FreezeCount:      next.FreezeCount,
				FreezesRemaining: s.machine.FreezesRemaining(next, today),
			}, nil
		}
		if !errors.Is(err, database.ErrVersionConflict) {
			return nil, err
		}
		lastErr = err
		s.metrics.StreakConflict()
	}
	return nil, apperror.Wrap(apperror.KindConflict, lastErr,
		fmt.Sprintf("streak freeze gave up after %d attempts", maxCommitAttempts))
}

func (s *StreakService) Status(ctx context.Context, userID string) (*StreakStatus, error) {
	state, _, err := database.GetStreakState(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	earned, err := database.ListAchievements(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	s.catalog.SortEarned(earned)

	awarded := make([]AwardedAchievement, 0, len(earned))
	for _, a := range earned {
		awarded = append(awarded, s.award(a))
	}

	return &StreakStatus{
		Status:        s.machine.Status(state, s.Today()),
		NextMilestone: s.catalog.NextMilestone(state.CurrentStreak),
		Achievements:  awarded,
	}, nil
}

// Analytics reports on the last days days of streak events.
func (s *StreakService) Analytics(ctx context.Context, userID string, days int) (*streak.Analytics, error) {
	if days <= 0 {
		return nil, apperror.Validation("days must be positive, got %d", days)
	}
	events, err := database.ListStreakEvents(ctx, s.db, userID, time.Time{})
	if err != nil {
		return nil, err
	}
	a := streak.Analyze(events, s.now().UTC(), days)
	return &a, nil
}

// Achievements lists the whole catalog with the user's earned state.
func (s *StreakService) Achievements(ctx context.Context, userID string) ([]models.UserAchievementView, error) {
	earned, err := database.ListAchievements(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	return s.catalog.WithStatus(earned), nil
}
