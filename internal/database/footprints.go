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

const footprintColumns = `id, user_id, total_weekly_kg_co2, result, created_at`

func InsertFootprint(ctx context.Context, q Querier, r *models.FootprintRecord) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	query := q.Rebind(`INSERT INTO footprints (` + footprintColumns + `) VALUES (?, ?, ?, ?, ?)`)
	if _, err := q.ExecContext(ctx, query, r.ID, r.UserID, r.TotalWeeklyKgCO2, r.Result, r.CreatedAt.UTC()); err != nil {
		return apperror.Persistence(err, "insert footprint")
	}
	return nil
}

// LatestFootprint returns nil without error when the user has no calculations.
func LatestFootprint(ctx context.Context, q Querier, userID string) (*models.FootprintRecord, error) {
	var r models.FootprintRecord
	query := q.Rebind(`SELECT ` + footprintColumns + ` FROM footprints WHERE user_id = ? ORDER BY created_at DESC LIMIT 1`)
	err := q.GetContext(ctx, &r, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.Persistence(err, "load latest footprint")
	}
	return &r, nil
}

// ListFootprints returns up to limit records, newest first.
func ListFootprints(ctx context.Context, q Querier, userID string, limit int) ([]models.FootprintRecord, error) {
	out := []models.FootprintRecord{}
	query := q.Rebind(`SELECT ` + footprintColumns + ` FROM footprints WHERE user_id = ? ORDER BY created_at DESC LIMIT ?`)
	if err := q.SelectContext(ctx, &out, query, userID, limit); err != nil {
		return nil, apperror.Persistence(err, "list footprints")
	}
	return out, nil
}
