// Package sentiment turns journal text into a weighted sentiment analysis.
//
// A Classifier produces go_emotions style label scores; the Analyzer filters
// them by confidence, folds them into a single score in [-2, 2] and tags the
// text with the eco categories it mentions.
package sentiment

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Nidhi-Chauhan111/Eco-App/internal/logger"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/models"
)

type Score = models.EmotionScore

// Classifier scores text against emotion labels. Scores are probabilities in [0, 1].
type Classifier interface {
	Classify(ctx context.Context, text string) ([]Score, error)
}

type Config struct {
	ConfidenceThreshold float64
	PositiveThreshold   float64
	NegativeThreshold   float64
}

func DefaultConfig() Config {
	return Config{ConfidenceThreshold: 0.1, PositiveThreshold: 0.2, NegativeThreshold: -0.2}
}

type Analyzer struct {
	classifier Classifier
	cfg        Config
	logger     *logger.Log
}

func NewAnalyzer(classifier Classifier, cfg Config) *Analyzer {
	if cfg.PositiveThreshold < cfg.NegativeThreshold {
		cfg.PositiveThreshold, cfg.NegativeThreshold = cfg.NegativeThreshold, cfg.PositiveThreshold
	}
	return &Analyzer{
		classifier: classifier,
		cfg:        cfg,
		logger:     logger.Component("sentiment"),
	}
}

// Analyze never fails outright. A classifier error yields the empty analysis
// (eco tags are still extracted) and is returned alongside it so callers can
// log or count the degradation.
func (a *Analyzer) Analyze(ctx context.Context, text string) (models.Analysis, error) {
	if strings.TrimSpace(text) == "" {
		return Empty(), nil
	}

	raw, err := a.classifier.Classify(ctx, text)
	if err != nil {
		a.logger.WithError(err).Warn("emotion classification failed, using empty analysis")
		empty := Empty()
		empty.EcoTags = EcoTags(text)
		return empty, fmt.Errorf("classify: %w", err)
	}

	return a.fromScores(raw, EcoTags(text)), nil
}

func (a *Analyzer) fromScores(raw []Score, tags []string) models.Analysis {
	significant := make([]Score, 0, len(raw))
	for _, s := range raw {
		if s.Score >= a.cfg.ConfidenceThreshold {
			significant = append(significant, s)
		}
	}
	sortByScore(significant)

	score := weightedScore(significant)
	out := models.Analysis{
		Sentiment:   a.label(score),
		Score:       round3(score),
		Confidence:  round3(math.Abs(score)),
		Breakdown:   breakdown(significant),
		AllEmotions: significant,
		TopEmotions: top(significant, 3),
		EcoTags:     tags,
	}
	out.MixedEmotions = len(out.Breakdown.Positive) > 0 && len(out.Breakdown.Negative) > 0
	out.EmotionSummary = Summary(out)
	return out
}

func (a *Analyzer) label(score float64) models.SentimentLabel {
	switch {
	case score > a.cfg.PositiveThreshold:
		return models.SentimentPositive
	case score < a.cfg.NegativeThreshold:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

// Empty is the analysis stored when nothing could be classified.
func Empty() models.Analysis {
	return models.Analysis{
		Sentiment:   models.SentimentNeutral,
		TopEmotions: []Score{},
		AllEmotions: []Score{},
		Breakdown: models.EmotionBreakdown{
			Positive: []Score{},
			Negative: []Score{},
			Neutral:  []Score{},
		},
		EcoTags:        []string{},
		EmotionSummary: noEmotions,
	}
}

// weightedScore is sum(w*s) / sum(|w|*s) scaled by 2.
func weightedScore(scores []Score) float64 {
	var sum, total float64
	for _, s := range scores {
		w := Weight(s.Label)
		sum += w * s.Score
		total += math.Abs(w) * s.Score
	}
	if total == 0 {
		return 0
	}
	return sum / total * 2
}

func breakdown(scores []Score) models.EmotionBreakdown {
	b := models.EmotionBreakdown{Positive: []Score{}, Negative: []Score{}, Neutral: []Score{}}
	for _, s := range scores {
		r := Score{Label: s.Label, Score: round3(s.Score)}
		switch w := Weight(s.Label); {
		case w > 0:
			b.Positive = append(b.Positive, r)
		case w < 0:
			b.Negative = append(b.Negative, r)
		default:
			b.Neutral = append(b.Neutral, r)
		}
	}
	return b
}

// EcoTags reports each eco category with at least one keyword in text.
func EcoTags(text string) []string {
	lower := strings.ToLower(text)
	tags := []string{}
	for _, c := range ecoCategories {
		for _, k := range c.keywords {
			if strings.Contains(lower, k) {
				tags = append(tags, c.tag)
				break
			}
		}
	}
	return tags
}

const noEmotions = "No strong emotions detected"

// Summary renders a one-line human description of an analysis.
func Summary(a models.Analysis) string {
	if len(a.TopEmotions) == 0 {
		return noEmotions
	}
	if a.MixedEmotions {
		return fmt.Sprintf("Mixed feelings detected: %s and %s (%s overall)",
			joinLabels(top(a.Breakdown.Positive, 2)), joinLabels(top(a.Breakdown.Negative, 2)), a.Sentiment)
	}
	t := a.TopEmotions[0]
	return fmt.Sprintf("Primary emotion: %s (%d%% confidence, %s sentiment)",
		titleLabel(t.Label), int(t.Score*100), a.Sentiment)
}

func titleLabel(label string) string {
	words := strings.Fields(strings.ReplaceAll(label, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

func joinLabels(scores []Score) string {
	labels := make([]string, len(scores))
	for i, s := range scores {
		labels[i] = s.Label
	}
	return strings.Join(labels, ", ")
}

func sortByScore(scores []Score) {
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Score > scores[j].Score })
}

func top(scores []Score, n int) []Score {
	if len(scores) < n {
		n = len(scores)
	}
	out := make([]Score, n)
	copy(out, scores[:n])
	return out
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
