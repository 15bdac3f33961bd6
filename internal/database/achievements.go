package database

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Nidhi-Chauhan111/Eco-App/internal/apperror"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/models"
)

// InsertAchievement is idempotent: inserted is false when the user already
// holds an achievement of the same type.
func InsertAchievement(ctx context.Context, q Querier, a *models.Achievement) (inserted bool, err error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.EarnedAt.IsZero() {
		a.EarnedAt = time.Now()
	}
	query := q.Rebind(`INSERT INTO achievements (id, user_id, achievement_type, streak_count_when_earned, earned_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, achievement_type) DO NOTHING`)
	res, err := q.ExecContext(ctx, query, a.ID, a.UserID, a.AchievementType, a.StreakCountWhenEarned, a.EarnedAt.UTC())
	if err != nil {
		return false, apperror.Persistence(err, "insert achievement")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, apperror.Persistence(err, "insert achievement")
	}
	return n > 0, nil
}

// ListAchievements returns earned achievements in the order they were
// earned. Awards of the same moment come back ordered by type; callers that
// know the catalog reorder them with Catalog.SortEarned.
func ListAchievements(ctx context.Context, q Querier, userID string) ([]models.Achievement, error) {
	out := []models.Achievement{}
	query := q.Rebind(`SELECT id, user_id, achievement_type, streak_count_when_earned, earned_at
		FROM achievements WHERE user_id = ? ORDER BY earned_at ASC, streak_count_when_earned ASC, achievement_type ASC`)
	if err := q.SelectContext(ctx, &out, query, userID); err != nil {
		return nil, apperror.Persistence(err, "list achievements")
	}
	return out, nil
}

// EarnedSet is the already-earned input for achievement evaluation.
func EarnedSet(achievements []models.Achievement) map[models.AchievementType]bool {
	set := make(map[models.AchievementType]bool, len(achievements))
	for _, a := range achievements {
		set[a.AchievementType] = true
	}
	return set
}
