package models

import (
	"time"
)

// FootprintRecord is a stored footprint calculation. Result holds the JSON document.
type FootprintRecord struct {
	ID               string    `json:"id" db:"id"`
	UserID           string    `json:"user_id" db:"user_id"`
	TotalWeeklyKgCO2 float64   `json:"total_weekly_kg_co2" db:"total_weekly_kg_co2"`
	Result           string    `json:"-" db:"result"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}
