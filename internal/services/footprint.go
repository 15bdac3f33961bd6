package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Nidhi-Chauhan111/Eco-App/internal/apperror"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/database"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/emission"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/footprint"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/logger"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/metrics"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/models"
)

// FootprintCalculation is a stored footprint result.
type FootprintCalculation struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	footprint.Result
	Warnings []*apperror.Error `json:"warnings,omitempty"`
}

type FootprintHistoryPoint struct {
	ID               string    `json:"id"`
	TotalWeeklyKgCO2 float64   `json:"total_weekly_kg_co2"`
	CreatedAt        time.Time `json:"created_at"`
}

type FootprintService struct {
	db      *database.DB
	engine  *footprint.Engine
	metrics *metrics.Metrics
	now     func() time.Time
	logger  *logger.Log
}

func NewFootprintService(db *database.DB, engine *footprint.Engine, m *metrics.Metrics) *FootprintService {
	return &FootprintService{
		db:      db,
		engine:  engine,
		metrics: m,
		now:     time.Now,
		logger:  logger.Component("footprint"),
	}
}

// Factors exposes the emission factors behind every calculation.
func (s *FootprintService) Factors() map[emission.Category][]emission.Factor {
	return s.engine.Factors()
}

// Calculate validates in, compares against the user's previous calculation
// and stores the result.
func (s *FootprintService) Calculate(ctx context.Context, userID string, in footprint.Inputs) (*FootprintCalculation, error) {
	if in.Transportation == nil && in.Energy == nil && in.Food == nil && in.Waste == nil {
		return nil, apperror.Validation("at least one category is required")
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	prev, err := database.LatestFootprint(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	var previousWeekly *float64
	if prev != nil {
		previousWeekly = &prev.TotalWeeklyKgCO2
	}

	result := s.engine.Aggregate(in, previousWeekly)

	calc := &FootprintCalculation{Result: result}
	for _, f := range result.Fallbacks {
		s.metrics.FactorFallback(string(f.Category), f.Key)
		s.logger.With("category", f.Category).With("key", f.Key).With("value", f.Value).
			Warn("emission factor missing, using default")
		calc.Warnings = append(calc.Warnings, apperror.Newf(apperror.KindLookupFallbackUsed,
			"no %s factor for %q, used default %g", f.Category, f.Key, f.Value))
	}

	doc, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode footprint result: %w", err)
	}

	record := models.FootprintRecord{
		UserID:           userID,
		TotalWeeklyKgCO2: result.Summary.TotalWeeklyKgCO2,
		Result:           string(doc),
		CreatedAt:        s.now().UTC(),
	}
	if err := database.InsertFootprint(ctx, s.db, &record); err != nil {
		return nil, err
	}

	s.metrics.FootprintCalculated()
	s.logger.With("user_id", userID).With("weekly_kg_co2", result.Summary.TotalWeeklyKgCO2).Info("footprint calculated")

	calc.ID = record.ID
	calc.CreatedAt = record.CreatedAt
	return calc, nil
}

// Latest returns the user's most recent calculation.
func (s *FootprintService) Latest(ctx context.Context, userID string) (*FootprintCalculation, error) {
	record, err := database.LatestFootprint(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperror.New(apperror.KindNotFound, "no footprint calculated yet")
	}

	calc := &FootprintCalculation{ID: record.ID, CreatedAt: record.CreatedAt}
	if err := json.Unmarshal([]byte(record.Result), &calc.Result); err != nil {
		return nil, fmt.Errorf("failed to decode footprint result: %w", err)
	}
	return calc, nil
}

// History lists weekly totals, newest first.
func (s *FootprintService) History(ctx context.Context, userID string, limit int) ([]FootprintHistoryPoint, error) {
	if limit <= 0 {
		limit = 20
	} else if limit > 100 {
		limit = 100
	}
	records, err := database.ListFootprints(ctx, s.db, userID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]FootprintHistoryPoint, len(records))
	for i, r := range records {
		out[i] = FootprintHistoryPoint{ID: r.ID, TotalWeeklyKgCO2: r.TotalWeeklyKgCO2, CreatedAt: r.CreatedAt}
	}
	return out, nil
}
