package inspiration

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Nidhi-Chauhan111/Eco-App/internal/llm"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/logger"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/models"
)

const maxMessageLen = 280

type llmMessage struct {
	Message string `json:"message"`
}

// LLMGenerator personalises the message with a language model and falls back
// to the templates whenever the model fails or replies with nothing usable.
type LLMGenerator struct {
	client   llm.LLM
	fallback Generator
	logger   *logger.Log
}

func NewLLMGenerator(client llm.LLM, fallback Generator) *LLMGenerator {
	if fallback == nil {
		fallback = NewTemplateGenerator()
	}
	return &LLMGenerator{
		client:   client,
		fallback: fallback,
		logger:   logger.Component("inspiration.llm"),
	}
}

func (g *LLMGenerator) Generate(ctx context.Context, a models.Analysis, uc Context) string {
	resp, err := g.client.GenerateResponse(ctx, prompt(a, uc))
	if err != nil {
		g.logger.WithError(err).Warn("llm inspiration failed, using template")
		return g.fallback.Generate(ctx, a, uc)
	}

	msg := extractMessage(resp)
	if msg == "" {
		g.logger.With("response", resp).Warn("llm inspiration unusable, using template")
		return g.fallback.Generate(ctx, a, uc)
	}
	if r := []rune(msg); len(r) > maxMessageLen {
		msg = string(r[:maxMessageLen])
	}
	return msg
}

func prompt(a models.Analysis, uc Context) string {
	emotions := make([]string, 0, len(a.TopEmotions))
	for _, e := range a.TopEmotions {
		emotions = append(emotions, e.Label)
	}

	var b strings.Builder
	b.WriteString("Write one short, warm encouragement (max two sentences, a couple of emojis) for someone keeping an environmental journal.\n\n")
	fmt.Fprintf(&b, "- Overall sentiment: %s\n", a.Sentiment)
	if a.MixedEmotions {
		b.WriteString("- They have mixed feelings\n")
	}
	if len(emotions) > 0 {
		fmt.Fprintf(&b, "- Strongest emotions: %s\n", strings.Join(emotions, ", "))
	}
	if len(a.EcoTags) > 0 {
		fmt.Fprintf(&b, "- Eco topics they wrote about: %s\n", strings.Join(a.EcoTags, ", "))
	}
	fmt.Fprintf(&b, "- Current journaling streak: %d days\n", uc.CurrentStreak)
	if len(uc.NewAchievements) > 0 {
		fmt.Fprintf(&b, "- They just earned: %s\n", strings.Join(uc.NewAchievements, ", "))
	}
	b.WriteString("\nRespond in this EXACT JSON format and nothing else: {\"message\": \"your encouragement\"}")
	return b.String()
}

func extractMessage(resp string) string {
	var m llmMessage
	if err := json.Unmarshal([]byte(resp), &m); err != nil {
		start := strings.Index(resp, "{")
		end := strings.LastIndex(resp, "}")
		if start == -1 || end <= start {
			return ""
		}
		if err := json.Unmarshal([]byte(resp[start:end+1]), &m); err != nil {
			return ""
		}
	}
	return strings.TrimSpace(m.Message)
}
