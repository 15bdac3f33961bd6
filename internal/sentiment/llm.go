package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/schollz/closestmatch"

	"github.com/Nidhi-Chauhan111/Eco-App/internal/llm"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/logger"
)

type llmReply struct {
	Emotions []Score `json:"emotions"`
}

// LLMClassifier asks a language model for go_emotions labels. Labels the
// model invents are snapped to the nearest known label or dropped.
type LLMClassifier struct {
	client  llm.LLM
	labels  map[string]bool
	matcher *closestmatch.ClosestMatch
	logger  *logger.Log
}

func NewLLMClassifier(client llm.LLM) *LLMClassifier {
	labels := Labels()
	known := make(map[string]bool, len(labels))
	for _, l := range labels {
		known[l] = true
	}
	return &LLMClassifier{
		client:  client,
		labels:  known,
		matcher: closestmatch.New(labels, []int{2}),
		logger:  logger.Component("sentiment.llm"),
	}
}

func (c *LLMClassifier) Classify(ctx context.Context, text string) ([]Score, error) {
	resp, err := c.client.GenerateResponse(ctx, classifyPrompt(text, c.labelList()))
	if err != nil {
		return nil, fmt.Errorf("llm classification: %w", err)
	}

	reply, err := parseReply(resp)
	if err != nil {
		c.logger.With("response", resp).Warn("could not parse emotion reply")
		return nil, err
	}

	merged := make(map[string]float64)
	for _, e := range reply.Emotions {
		label, ok := c.normalise(e.Label)
		if !ok {
			c.logger.With("label", e.Label).Debug("dropping unknown emotion label")
			continue
		}
		score := clamp01(e.Score)
		if score > merged[label] {
			merged[label] = score
		}
	}
	if len(merged) == 0 {
		return []Score{{Label: "neutral", Score: 1.0}}, nil
	}

	out := make([]Score, 0, len(merged))
	for l, s := range merged {
		out = append(out, Score{Label: l, Score: s})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Label < out[j].Label
	})
	return out, nil
}

func (c *LLMClassifier) normalise(label string) (string, bool) {
	l := strings.ToLower(strings.TrimSpace(label))
	if l == "" {
		return "", false
	}
	if c.labels[l] {
		return l, true
	}
	if m := c.matcher.Closest(l); m != "" {
		return m, true
	}
	return "", false
}

func (c *LLMClassifier) labelList() string {
	labels := make([]string, 0, len(c.labels))
	for l := range c.labels {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return strings.Join(labels, ", ")
}

func classifyPrompt(text, labels string) string {
	return fmt.Sprintf(`You are an emotion classifier for an environmental journaling app.

Score the journal entry below against these emotion labels: %s.

INSTRUCTIONS:
- Return up to 6 labels that are present, each with a probability between 0 and 1
- Use only the labels listed above
- You MUST respond in valid JSON only, in this EXACT structure: {"emotions": [{"label": "joy", "score": 0.8}]}
- Do NOT include any text before or after the JSON

Journal entry: %q`, labels, text)
}

// parseReply accepts bare JSON or JSON embedded in surrounding prose.
func parseReply(resp string) (*llmReply, error) {
	var reply llmReply
	if err := json.Unmarshal([]byte(resp), &reply); err == nil {
		return &reply, nil
	}

	start := strings.Index(resp, "{")
	end := strings.LastIndex(resp, "}")
	if start != -1 && end > start {
		if err := json.Unmarshal([]byte(resp[start:end+1]), &reply); err == nil {
			return &reply, nil
		}
	}
	return nil, fmt.Errorf("no valid JSON found in response")
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
