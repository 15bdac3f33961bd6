// Package inspiration writes the short encouragement returned with every
// journal entry.
package inspiration

import (
	"context"
	"strings"

	"github.com/Nidhi-Chauhan111/Eco-App/internal/models"
)

// Context is what the generator knows about the user beyond the entry itself.
type Context struct {
	CurrentStreak   int
	TotalEntries    int
	StreakEvent     models.StreakEventType
	NewAchievements []string
}

// Generator never fails; implementations fall back to templates.
type Generator interface {
	Generate(ctx context.Context, a models.Analysis, uc Context) string
}

// TemplateGenerator picks a fixed message by sentiment and top emotion.
type TemplateGenerator struct{}

func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{}
}

func (TemplateGenerator) Generate(_ context.Context, a models.Analysis, _ Context) string {
	switch {
	case a.MixedEmotions:
		return mixed(a)
	case a.Sentiment == models.SentimentPositive:
		return positive(a)
	case a.Sentiment == models.SentimentNegative:
		return negative(a)
	default:
		if len(a.EcoTags) > 0 {
			return neutralEcoTags
		}
		return neutralGeneral
	}
}

func mixed(a models.Analysis) string {
	pos, neg := a.Breakdown.Positive, a.Breakdown.Negative
	if len(pos) == 0 || len(neg) == 0 {
		return mixedDefault
	}
	if msg, ok := mixedTemplates[pos[0].Label+"_"+neg[0].Label]; ok {
		return msg
	}
	return mixedGeneral
}

func positive(a models.Analysis) string {
	top := "joy"
	if len(a.TopEmotions) > 0 {
		top = a.TopEmotions[0].Label
	}
	msg, ok := positiveTemplates[top]
	if !ok {
		msg = positiveGeneral
	}
	if len(a.EcoTags) > 0 {
		if praise, ok := ecoPraise[a.EcoTags[0]]; ok {
			msg += " " + praise
		}
	}
	return msg
}

func negative(a models.Analysis) string {
	top := "disappointment"
	if len(a.TopEmotions) > 0 {
		top = a.TopEmotions[0].Label
	}
	if msg, ok := negativeTemplates[top]; ok {
		return msg
	}
	return negativeGeneral
}

// MoodAnalysis builds the synthetic analysis used for on-demand mood
// inspiration: the mood itself is the top emotion at 0.8.
func MoodAnalysis(mood string) models.Analysis {
	mood = strings.ToLower(strings.TrimSpace(mood))
	label := models.SentimentNegative
	switch mood {
	case "neutral":
		label = models.SentimentNeutral
	case "happy", "excited", "proud":
		label = models.SentimentPositive
	}
	return models.Analysis{
		Sentiment:   label,
		TopEmotions: []models.EmotionScore{{Label: mood, Score: 0.8}},
		Breakdown: models.EmotionBreakdown{
			Positive: []models.EmotionScore{},
			Negative: []models.EmotionScore{},
			Neutral:  []models.EmotionScore{},
		},
		EcoTags: []string{},
	}
}

// Suggestions returns three eco actions suited to mood.
func Suggestions(mood string) []string {
	s, ok := moodSuggestions[strings.ToLower(strings.TrimSpace(mood))]
	if !ok {
		s = defaultSuggestions
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
