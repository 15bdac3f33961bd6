package inspiration

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Nidhi-Chauhan111/Eco-App/internal/models"
)

type fakeLLM struct {
	reply  string
	err    error
	prompt string
}

func (f *fakeLLM) GenerateResponse(_ context.Context, p string) (string, error) {
	f.prompt = p
	return f.reply, f.err
}
func (f *fakeLLM) IsModelAvailable(context.Context) error { return nil }

func scores(labels ...string) []models.EmotionScore {
	out := make([]models.EmotionScore, len(labels))
	for i, l := range labels {
		out[i] = models.EmotionScore{Label: l, Score: 0.5}
	}
	return out
}

func TestTemplateGenerator(t *testing.T) {
	tests := []struct {
		name string
		a    models.Analysis
		want string
	}{
		{
			name: "positive pride with transport",
			a:    models.Analysis{Sentiment: models.SentimentPositive, TopEmotions: scores("pride"), EcoTags: []string{"transport", "waste"}},
			want: "That pride you feel? It's well-deserved! 🏆 Every eco-action counts! 🌍 Your sustainable transport choices make a real difference! 🚲",
		},
		{
			name: "positive unknown emotion",
			a:    models.Analysis{Sentiment: models.SentimentPositive, TopEmotions: scores("love")},
			want: positiveGeneral,
		},
		{
			name: "positive without emotions defaults to joy",
			a:    models.Analysis{Sentiment: models.SentimentPositive, EcoTags: []string{"consumption"}},
			want: positiveTemplates["joy"],
		},
		{
			name: "negative guilt",
			a:    models.Analysis{Sentiment: models.SentimentNegative, TopEmotions: scores("guilt")},
			want: "Guilt shows you care deeply. Transform it into positive action tomorrow! 💪🌱",
		},
		{
			name: "negative default",
			a:    models.Analysis{Sentiment: models.SentimentNegative},
			want: negativeTemplates["disappointment"],
		},
		{
			name: "negative general",
			a:    models.Analysis{Sentiment: models.SentimentNegative, TopEmotions: scores("anger")},
			want: negativeGeneral,
		},
		{
			name: "mixed combo",
			a: models.Analysis{Sentiment: models.SentimentPositive, MixedEmotions: true, Breakdown: models.EmotionBreakdown{
				Positive: scores("pride"), Negative: scores("guilt"),
			}},
			want: mixedTemplates["pride_guilt"],
		},
		{
			name: "mixed general",
			a: models.Analysis{MixedEmotions: true, Breakdown: models.EmotionBreakdown{
				Positive: scores("love"), Negative: scores("fear"),
			}},
			want: "Complex feelings about our planet show deep caring. That's beautiful! 💚🌍",
		},
		{
			name: "mixed without breakdown",
			a:    models.Analysis{MixedEmotions: true},
			want: mixedDefault,
		},
		{
			name: "neutral with tags",
			a:    models.Analysis{Sentiment: models.SentimentNeutral, EcoTags: []string{"water"}},
			want: neutralEcoTags,
		},
		{
			name: "neutral",
			a:    models.Analysis{Sentiment: models.SentimentNeutral},
			want: neutralGeneral,
		},
	}
	g := NewTemplateGenerator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Generate(context.Background(), tt.a, Context{}))
		})
	}
}

func TestMoodAnalysis(t *testing.T) {
	assert.Equal(t, models.SentimentPositive, MoodAnalysis("Happy").Sentiment)
	assert.Equal(t, models.SentimentNeutral, MoodAnalysis("neutral").Sentiment)
	assert.Equal(t, models.SentimentNegative, MoodAnalysis("sad").Sentiment)

	a := MoodAnalysis("proud")
	assert.Equal(t, []models.EmotionScore{{Label: "proud", Score: 0.8}}, a.TopEmotions)

	g := NewTemplateGenerator()
	assert.Equal(t, positiveGeneral, g.Generate(context.Background(), MoodAnalysis("happy"), Context{}))
	assert.Equal(t, negativeGeneral, g.Generate(context.Background(), MoodAnalysis("sad"), Context{}))
}

func TestSuggestions(t *testing.T) {
	assert.Equal(t, "Perfect time to start a new eco-challenge!", Suggestions("Motivated")[0])
	assert.Equal(t, defaultSuggestions, Suggestions("bored"))

	s := Suggestions("sad")
	s[0] = "mutated"
	assert.NotEqual(t, "mutated", Suggestions("sad")[0])
}

func TestLLMGenerator(t *testing.T) {
	a := models.Analysis{Sentiment: models.SentimentPositive, TopEmotions: scores("joy"), EcoTags: []string{"energy"}}

	client := &fakeLLM{reply: `{"message": "  Seven days strong! 🌱 "}`}
	g := NewLLMGenerator(client, nil)
	got := g.Generate(context.Background(), a, Context{CurrentStreak: 7, NewAchievements: []string{"Week Warrior"}})
	assert.Equal(t, "Seven days strong! 🌱", got)
	assert.Contains(t, client.prompt, "energy")
	assert.Contains(t, client.prompt, "Week Warrior")
	assert.Contains(t, client.prompt, "7 days")
}

func TestLLMGeneratorFallsBack(t *testing.T) {
	a := models.Analysis{Sentiment: models.SentimentNeutral}
	want := neutralGeneral

	for name, client := range map[string]*fakeLLM{
		"error":   {err: errors.New("timeout")},
		"garbage": {reply: "no json here"},
		"empty":   {reply: `{"message": ""}`},
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, want, NewLLMGenerator(client, nil).Generate(context.Background(), a, Context{}))
		})
	}
}

func TestLLMGeneratorTruncates(t *testing.T) {
	long := strings.Repeat("🌱", maxMessageLen+10)
	g := NewLLMGenerator(&fakeLLM{reply: `prefix {"message": "` + long + `"} suffix`}, nil)
	got := g.Generate(context.Background(), models.Analysis{}, Context{})
	assert.Equal(t, maxMessageLen, len([]rune(got)))
}
