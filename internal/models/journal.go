package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "Positive"
	SentimentNegative SentimentLabel = "Negative"
	SentimentNeutral  SentimentLabel = "Neutral"
	SentimentMixed    SentimentLabel = "Mixed"
)

// EmotionScore is one classifier label with its probability.
type EmotionScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// EmotionBreakdown groups emotions by the sign of their weight.
type EmotionBreakdown struct {
	Positive []EmotionScore `json:"positive"`
	Negative []EmotionScore `json:"negative"`
	Neutral  []EmotionScore `json:"neutral"`
}

// Analysis is the sentiment document stored with every journal entry.
type Analysis struct {
	Sentiment      SentimentLabel   `json:"sentiment"`
	Score          float64          `json:"score"`
	Confidence     float64          `json:"confidence"`
	MixedEmotions  bool             `json:"mixed_emotions"`
	TopEmotions    []EmotionScore   `json:"top_emotions"`
	Breakdown      EmotionBreakdown `json:"emotion_breakdown"`
	AllEmotions    []EmotionScore   `json:"all_emotions"`
	EcoTags        []string         `json:"eco_tags"`
	EmotionSummary string           `json:"emotion_summary"`
}

func (a Analysis) Value() (driver.Value, error) {
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (a *Analysis) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*a = Analysis{}
		return nil
	case string:
		return json.Unmarshal([]byte(v), a)
	case []byte:
		return json.Unmarshal(v, a)
	default:
		return errors.New("analysis: unsupported column type")
	}
}

// JournalEntry is a persisted journal document.
type JournalEntry struct {
	ID          string          `json:"id" db:"id"`
	UserID      string          `json:"user_id" db:"user_id"`
	Content     string          `json:"content" db:"content"`
	EntryDate   time.Time       `json:"entry_date" db:"entry_date"`
	Analysis    Analysis        `json:"analysis" db:"analysis"`
	Inspiration string          `json:"inspiration" db:"inspiration"`
	StreakEvent StreakEventType `json:"streak_event" db:"streak_event"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}
