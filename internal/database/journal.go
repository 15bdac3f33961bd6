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

const journalColumns = `id, user_id, content, entry_date, analysis, inspiration, streak_event, created_at`

func InsertJournalEntry(ctx context.Context, q Querier, e *models.JournalEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	query := q.Rebind(`INSERT INTO journal_entries (` + journalColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if _, err := q.ExecContext(ctx, query,
		e.ID, e.UserID, e.Content, e.EntryDate.UTC(), e.Analysis, e.Inspiration, e.StreakEvent, e.CreatedAt.UTC()); err != nil {
		return apperror.Persistence(err, "insert journal entry")
	}
	return nil
}

// SetJournalInspiration fills in the inspiration written after the entry was stored.
func SetJournalInspiration(ctx context.Context, q Querier, userID, id, inspiration string) error {
	query := q.Rebind(`UPDATE journal_entries SET inspiration = ? WHERE user_id = ? AND id = ?`)
	res, err := q.ExecContext(ctx, query, inspiration, userID, id)
	if err != nil {
		return apperror.Persistence(err, "update journal inspiration")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperror.Newf(apperror.KindNotFound, "journal entry %s not found", id)
	}
	return nil
}

// ListJournalEntries pages through a user's entries, newest first.
func ListJournalEntries(ctx context.Context, q Querier, userID string, limit, offset int) ([]models.JournalEntry, error) {
	entries := []models.JournalEntry{}
	query := q.Rebind(`SELECT ` + journalColumns + ` FROM journal_entries
		WHERE user_id = ? ORDER BY created_at DESC LIMIT ? OFFSET ?`)
	if err := q.SelectContext(ctx, &entries, query, userID, limit, offset); err != nil {
		return nil, apperror.Persistence(err, "list journal entries")
	}
	return entries, nil
}

func GetJournalEntry(ctx context.Context, q Querier, userID, id string) (*models.JournalEntry, error) {
	var e models.JournalEntry
	query := q.Rebind(`SELECT ` + journalColumns + ` FROM journal_entries WHERE user_id = ? AND id = ?`)
	err := q.GetContext(ctx, &e, query, userID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.Newf(apperror.KindNotFound, "journal entry %s not found", id)
	}
	if err != nil {
		return nil, apperror.Persistence(err, "load journal entry")
	}
	return &e, nil
}
