package sentiment

import (
	"context"
	"sort"
	"strings"
	"unicode"
)

// lexicon maps lower-case words to go_emotions labels.
var lexicon = map[string]string{
	"happy": "joy", "glad": "joy", "joy": "joy", "joyful": "joy", "delighted": "joy", "great": "joy", "wonderful": "joy",
	"proud": "pride", "pride": "pride", "accomplished": "pride",
	"hope": "optimism", "hopeful": "optimism", "optimistic": "optimism", "optimism": "optimism", "confident": "optimism",
	"excited": "excitement", "exciting": "excitement", "thrilled": "excitement", "motivated": "excitement",
	"love": "love", "loved": "love", "loving": "love",
	"relieved": "relief", "relief": "relief",
	"grateful": "gratitude", "thankful": "gratitude", "thanks": "gratitude", "gratitude": "gratitude",
	"admire": "admiration", "inspiring": "admiration", "inspired": "admiration",
	"good": "approval", "nice": "approval", "better": "approval",
	"care": "caring", "caring": "caring",
	"want": "desire", "wish": "desire",
	"fun": "amusement", "funny": "amusement", "laugh": "amusement",

	"guilty": "guilt", "guilt": "guilt",
	"sad": "sadness", "unhappy": "sadness", "depressed": "sadness", "down": "sadness",
	"angry": "anger", "mad": "anger", "furious": "anger",
	"afraid": "fear", "scared": "fear", "worried": "fear", "fear": "fear",
	"disappointed": "disappointment", "disappointing": "disappointment", "failed": "disappointment",
	"ashamed": "shame", "shame": "shame",
	"regret": "remorse", "sorry": "remorse",
	"frustrated": "frustration", "frustrating": "frustration",
	"annoyed": "annoyance", "annoying": "annoyance",
	"embarrassed": "embarrassment",
	"grief": "grief", "mourning": "grief",
	"nervous": "nervousness", "anxious": "nervousness",

	"surprised": "surprise", "wow": "surprise",
	"confused": "confusion", "unsure": "confusion",
	"curious": "curiosity", "wonder": "curiosity", "wondering": "curiosity",
	"realized": "realization", "noticed": "realization",
	"disapprove": "disapproval", "wrong": "disapproval",
}

// LexiconClassifier scores text by counting emotion words. It needs no model
// and is deterministic, which makes it the default for offline deployments.
type LexiconClassifier struct{}

func NewLexiconClassifier() *LexiconClassifier {
	return &LexiconClassifier{}
}

// Classify returns each matched label with its share of all matches, or
// neutral at 1.0 when no emotion word is present.
func (LexiconClassifier) Classify(ctx context.Context, text string) ([]Score, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})

	counts := make(map[string]int)
	total := 0
	for _, w := range words {
		if label, ok := lexicon[w]; ok {
			counts[label]++
			total++
		}
	}
	if total == 0 {
		return []Score{{Label: "neutral", Score: 1.0}}, nil
	}

	scores := make([]Score, 0, len(counts))
	for label, n := range counts {
		scores = append(scores, Score{Label: label, Score: float64(n) / float64(total)})
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].Label < scores[j].Label
	})
	return scores, nil
}
