package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Nidhi-Chauhan111/Eco-App/internal/apperror"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/models"
)

// ErrVersionConflict means the streak row changed between read and write.
var ErrVersionConflict = apperror.New(apperror.KindConflict, "streak state was modified concurrently")

const streakColumns = `user_id, current_streak, longest_streak, total_entries, last_entry_date,
	streak_frozen, freeze_count, freeze_period, version, created_at, updated_at`

// GetStreakState loads a user's streak. found is false when the user has
// never journaled; the returned zero state is then ready to be transitioned.
func GetStreakState(ctx context.Context, q Querier, userID string) (state models.UserStreakState, found bool, err error) {
	query := q.Rebind(`SELECT ` + streakColumns + ` FROM user_streaks WHERE user_id = ?`)
	err = q.GetContext(ctx, &state, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserStreakState{UserID: userID}, false, nil
	}
	if err != nil {
		return models.UserStreakState{}, false, apperror.Persistence(err, "load streak state")
	}
	return state, true, nil
}

// SaveStreakState inserts a new row when state.Version is 0 and otherwise
// updates it only if the stored version still matches. On success the
// version is advanced in place.
func SaveStreakState(ctx context.Context, q Querier, state *models.UserStreakState) error {
	now := time.Now().UTC()
	if state.CreatedAt.IsZero() {
		state.CreatedAt = now
	}
	if state.UpdatedAt.IsZero() {
		state.UpdatedAt = now
	}

	var (
		res sql.Result
		err error
	)
	if state.Version == 0 {
		query := q.Rebind(`INSERT INTO user_streaks (` + streakColumns + `)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?)
			ON CONFLICT (user_id) DO NOTHING`)
		res, err = q.ExecContext(ctx, query,
			state.UserID, state.CurrentStreak, state.LongestStreak, state.TotalEntries, utcPtr(state.LastEntryDate),
			state.StreakFrozen, state.FreezeCount, state.FreezePeriod, state.CreatedAt.UTC(), state.UpdatedAt.UTC())
	} else {
		query := q.Rebind(`UPDATE user_streaks SET
				current_streak = ?, longest_streak = ?, total_entries = ?, last_entry_date = ?,
				streak_frozen = ?, freeze_count = ?, freeze_period = ?, version = version + 1, updated_at = ?
			WHERE user_id = ? AND version = ?`)
		res, err = q.ExecContext(ctx, query,
			state.CurrentStreak, state.LongestStreak, state.TotalEntries, utcPtr(state.LastEntryDate),
			state.StreakFrozen, state.FreezeCount, state.FreezePeriod, state.UpdatedAt.UTC(),
			state.UserID, state.Version)
	}
	if err != nil {
		return apperror.Persistence(err, "save streak state")
	}

	n, err := res.RowsAffected()
	if err != nil {
		return apperror.Persistence(err, "save streak state")
	}
	if n == 0 {
		return ErrVersionConflict
	}
	state.Version++
	return nil
}

func InsertStreakEvent(ctx context.Context, q Querier, e *models.StreakEvent) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	query := q.Rebind(`INSERT INTO streak_events (id, user_id, event_type, streak_count, previous_streak, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if _, err := q.ExecContext(ctx, query,
		e.ID, e.UserID, e.EventType, e.StreakCount, e.PreviousStreak, e.Metadata, e.CreatedAt.UTC()); err != nil {
		return apperror.Persistence(err, "append streak event")
	}
	return nil
}

// ListStreakEvents returns a user's events created at or after since, oldest first.
func ListStreakEvents(ctx context.Context, q Querier, userID string, since time.Time) ([]models.StreakEvent, error) {
	events := []models.StreakEvent{}
	query := q.Rebind(`SELECT id, user_id, event_type, streak_count, previous_streak, metadata, created_at
		FROM streak_events WHERE user_id = ? AND created_at >= ? ORDER BY created_at ASC`)
	if err := q.SelectContext(ctx, &events, query, userID, since.UTC()); err != nil {
		return nil, apperror.Persistence(err, "list streak events")
	}
	return events, nil
}

func utcPtr(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC()
}
