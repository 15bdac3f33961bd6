// Package tts reads inspiration messages aloud.
package tts

import (
	"context"
	"strings"

	"github.com/Nidhi-Chauhan111/Eco-App/config"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/logger"
)

// Synthesizer turns text into MP3 audio. emotion tunes pace and pitch.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, emotion string) ([]byte, error)
	Name() string
}

// New returns the Google synthesizer when enabled, falling back to the
// dummy one when disabled or when the client cannot be created.
func New(ctx context.Context, cfg config.TtsConfig) Synthesizer {
	if !cfg.Enabled {
		return NewDummy()
	}
	g, err := NewGoogle(ctx, cfg)
	if err != nil {
		logger.Component("tts").WithError(err).Warn("text-to-speech disabled")
		return NewDummy()
	}
	return g
}

// languageCode extracts the locale from a voice name,
// "en-GB-Standard-D" -> "en-GB".
func languageCode(voice string) string {
	parts := strings.Split(voice, "-")
	if len(parts) >= 2 {
		return parts[0] + "-" + parts[1]
	}
	return "en-US"
}

func speakingRate(emotion string) float64 {
	switch strings.ToLower(emotion) {
	case "joy", "excitement", "amusement", "pride":
		return 1.1
	case "anger", "annoyance", "frustration":
		return 1.05
	case "sadness", "grief", "disappointment", "remorse":
		return 0.9
	case "calm", "relief", "gratitude", "caring":
		return 0.95
	default:
		return 1.0
	}
}

func pitch(emotion string) float64 {
	switch strings.ToLower(emotion) {
	case "joy", "excitement", "surprise":
		return 2.0
	case "pride", "optimism":
		return 1.0
	case "sadness", "grief", "remorse":
		return -2.0
	case "anger", "annoyance":
		return -1.0
	default:
		return 0.0
	}
}
