package models

import (
	"time"
)

type AchievementType string

const (
	AchievementFirstEntry      AchievementType = "first_entry"
	AchievementWeekWarrior     AchievementType = "week_warrior"
	AchievementMonthChampion   AchievementType = "month_champion"
	AchievementQuarterGuardian AchievementType = "quarter_guardian"
	AchievementYearLegend      AchievementType = "year_legend"
)

// Achievement is an earned achievement. At most one row exists per user and type.
type Achievement struct {
	ID                    string          `json:"id" db:"id"`
	UserID                string          `json:"user_id" db:"user_id"`
	AchievementType       AchievementType `json:"achievement_type" db:"achievement_type"`
	StreakCountWhenEarned int             `json:"streak_count_when_earned" db:"streak_count_when_earned"`
	EarnedAt              time.Time       `json:"earned_at" db:"earned_at"`
}

// UserAchievementView is a catalog entry joined with the user's earned state.
type UserAchievementView struct {
	Type           AchievementType `json:"type"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Badge          string          `json:"badge"`
	RequiredStreak int             `json:"required_streak"`
	Earned         bool            `json:"earned"`
	EarnedAt       *time.Time      `json:"earned_at,omitempty"`
}
