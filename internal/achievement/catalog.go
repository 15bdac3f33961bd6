// Package achievement awards streak milestones from an immutable catalog.
package achievement

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/Nidhi-Chauhan111/Eco-App/internal/models"
)

// Definition is one milestone: the badge awarded once a streak reaches RequiredStreak.
type Definition struct {
	Type           models.AchievementType `json:"type"`
	Name           string                 `json:"name"`
	Description    string                 `json:"description"`
	Badge          string                 `json:"badge"`
	RequiredStreak int                    `json:"required_streak"`
}

var defaultDefinitions = []Definition{
	{models.AchievementFirstEntry, "First Step", "Created your first eco-journal entry", "🌱", 1},
	{models.AchievementWeekWarrior, "Week Warrior", "Maintained streak for 7 days", "🔥", 7},
	{models.AchievementMonthChampion, "Month Champion", "Maintained streak for 30 days", "🏆", 30},
	{models.AchievementQuarterGuardian, "Quarter Guardian", "Maintained streak for 90 days", "🌿", 90},
	{models.AchievementYearLegend, "Year Legend", "Maintained streak for 365 days", "🌍", 365},
}

// Catalog is sorted ascending by RequiredStreak and never modified after construction.
type Catalog struct {
	defs []Definition
}

// NewCatalog rejects empty or duplicate types and non-positive thresholds.
func NewCatalog(defs ...Definition) (*Catalog, error) {
	seen := make(map[models.AchievementType]bool, len(defs))
	sorted := make([]Definition, 0, len(defs))
	for _, d := range defs {
		if d.Type == "" {
			return nil, fmt.Errorf("achievement type is required")
		}
		if seen[d.Type] {
			return nil, fmt.Errorf("duplicate achievement %q", d.Type)
		}
		if d.RequiredStreak < 1 {
			return nil, fmt.Errorf("achievement %q: required streak must be positive", d.Type)
		}
		seen[d.Type] = true
		sorted = append(sorted, d)
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].RequiredStreak < sorted[j].RequiredStreak })
	return &Catalog{defs: sorted}, nil
}

// DefaultCatalog builds the standard milestones. thresholds overrides the
// required streak per type; unknown keys are ignored.
func DefaultCatalog(thresholds map[string]int) (*Catalog, error) {
	defs := make([]Definition, len(defaultDefinitions))
	copy(defs, defaultDefinitions)
	for i, d := range defs {
		if v, ok := thresholds[string(d.Type)]; ok {
			defs[i].RequiredStreak = v
		}
	}
	return NewCatalog(defs...)
}

// Definitions returns a copy of the catalog in ascending order.
func (c *Catalog) Definitions() []Definition {
	out := make([]Definition, len(c.defs))
	copy(out, c.defs)
	return out
}

func (c *Catalog) Lookup(t models.AchievementType) (Definition, bool) {
	for _, d := range c.defs {
		if d.Type == t {
			return d, true
		}
	}
	return Definition{}, false
}

// Rank is t's position in the catalog; unknown types sort last.
func (c *Catalog) Rank(t models.AchievementType) int {
	for i, d := range c.defs {
		if d.Type == t {
			return i
		}
	}
	return len(c.defs)
}

// SortEarned orders achievements by when they were earned, breaking ties
// between awards of the same moment by catalog order.
func (c *Catalog) SortEarned(as []models.Achievement) {
	sort.SliceStable(as, func(i, j int) bool {
		if !as[i].EarnedAt.Equal(as[j].EarnedAt) {
			return as[i].EarnedAt.Before(as[j].EarnedAt)
		}
		return c.Rank(as[i].AchievementType) < c.Rank(as[j].AchievementType)
	})
}

// Evaluate returns achievements newly unlocked at currentStreak, skipping
// any type already earned. Output is ascending by required streak.
func (c *Catalog) Evaluate(userID string, currentStreak int, alreadyEarned map[models.AchievementType]bool, now time.Time) []models.Achievement {
	var out []models.Achievement
	for _, d := range c.defs {
		if currentStreak < d.RequiredStreak {
			break
		}
		if alreadyEarned[d.Type] {
			continue
		}
		out = append(out, models.Achievement{
			UserID:                userID,
			AchievementType:       d.Type,
			StreakCountWhenEarned: currentStreak,
			EarnedAt:              now,
		})
	}
	return out
}

// Milestone is progress towards the next unreached definition.
type Milestone struct {
	Type               models.AchievementType `json:"type"`
	Name               string                 `json:"name"`
	Badge              string                 `json:"badge"`
	RequiredStreak     int                    `json:"required_streak"`
	DaysRemaining      int                    `json:"days_remaining"`
	ProgressPercentage float64                `json:"progress_percentage"`
}

// NextMilestone is the first entry whose threshold exceeds currentStreak,
// or nil once everything is reached.
func (c *Catalog) NextMilestone(currentStreak int) *Milestone {
	for _, d := range c.defs {
		if currentStreak < d.RequiredStreak {
			pct := float64(currentStreak) / float64(d.RequiredStreak) * 100
			return &Milestone{
				Type:               d.Type,
				Name:               d.Name,
				Badge:              d.Badge,
				RequiredStreak:     d.RequiredStreak,
				DaysRemaining:      d.RequiredStreak - currentStreak,
				ProgressPercentage: math.Round(pct*10) / 10,
			}
		}
	}
	return nil
}

// WithStatus joins the catalog with a user's earned achievements.
func (c *Catalog) WithStatus(earned []models.Achievement) []models.UserAchievementView {
	byType := make(map[models.AchievementType]models.Achievement, len(earned))
	for _, a := range earned {
		byType[a.AchievementType] = a
	}
	views := make([]models.UserAchievementView, 0, len(c.defs))
	for _, d := range c.defs {
		v := models.UserAchievementView{
			Type:           d.Type,
			Name:           d.Name,
			Description:    d.Description,
			Badge:          d.Badge,
			RequiredStreak: d.RequiredStreak,
		}
		if a, ok := byType[d.Type]; ok {
			at := a.EarnedAt
			v.Earned = true
			v.EarnedAt = &at
		}
		views = append(views, v)
	}
	return views
}
