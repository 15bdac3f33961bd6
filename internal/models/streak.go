package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// UserStreakState is the per-user streak record.
type UserStreakState struct {
	UserID        string     `json:"user_id" db:"user_id"`
	CurrentStreak int        `json:"current_streak" db:"current_streak"`
	LongestStreak int        `json:"longest_streak" db:"longest_streak"`
	TotalEntries  int        `json:"total_entries" db:"total_entries"`
	LastEntryDate *time.Time `json:"last_entry_date" db:"last_entry_date"`
	StreakFrozen  bool       `json:"streak_frozen" db:"streak_frozen"`
	FreezeCount   int        `json:"freeze_count" db:"freeze_count"`
	FreezePeriod  string     `json:"freeze_period" db:"freeze_period"` // YYYY-MM the count belongs to
	Version       int        `json:"-" db:"version"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

type StreakEventType string

const (
	EventStarted   StreakEventType = "started"
	EventSameDay   StreakEventType = "same_day"
	EventContinued StreakEventType = "continued"
	EventUnfrozen  StreakEventType = "unfrozen"
	EventBroken    StreakEventType = "broken"
	EventPastEntry StreakEventType = "past_entry"
	EventFrozen    StreakEventType = "frozen"
)

// Metadata is a JSON object column.
type Metadata map[string]interface{}

func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *Metadata) Scan(src interface{}) error {
	var b []byte
	switch v := src.(type) {
	case nil:
		*m = Metadata{}
		return nil
	case string:
		b = []byte(v)
	case []byte:
		b = v
	default:
		return errors.New("metadata: unsupported column type")
	}
	return json.Unmarshal(b, m)
}

// StreakEvent is an append-only audit record of a streak transition.
type StreakEvent struct {
	ID             string          `json:"id" db:"id"`
	UserID         string          `json:"user_id" db:"user_id"`
	EventType      StreakEventType `json:"event_type" db:"event_type"`
	StreakCount    int             `json:"streak_count" db:"streak_count"`
	PreviousStreak int             `json:"previous_streak" db:"previous_streak"`
	Metadata       Metadata        `json:"metadata" db:"metadata"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
}
