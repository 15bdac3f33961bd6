package tts

import (
	"context"
	"fmt"
	"strings"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"google.golang.org/api/option"

	"github.com/Nidhi-Chauhan111/Eco-App/config"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/logger"
)

const defaultVoice = "en-US-Chirp-HD-F"

type Google struct {
	client *texttospeech.Client
	voice  string
	logger *logger.Log
}

// NewGoogle uses cfg.CredentialsFile when set, otherwise application
// default credentials.
func NewGoogle(ctx context.Context, cfg config.TtsConfig) (*Google, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := texttospeech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google TTS client: %w", err)
	}

	voice := cfg.Voice
	if voice == "" {
		voice = defaultVoice
	}
	return &Google{client: client, voice: voice, logger: logger.Component("tts")}, nil
}

func (g *Google) request(text, emotion string) *texttospeechpb.SynthesizeSpeechRequest {
	return &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: languageCode(g.voice),
			Name:         g.voice,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding:   texttospeechpb.AudioEncoding_MP3,
			SpeakingRate:    speakingRate(emotion),
			Pitch:           pitch(emotion),
			SampleRateHertz: 22050,
		},
	}
}

func (g *Google) Synthesize(ctx context.Context, text, emotion string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	g.logger.With("voice", g.voice).With("emotion", emotion).Debug("synthesizing speech")

	resp, err := g.client.SynthesizeSpeech(ctx, g.request(text, emotion))
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize speech: %w", err)
	}
	if len(resp.AudioContent) == 0 {
		return nil, fmt.Errorf("empty audio content received from Google TTS")
	}
	return resp.AudioContent, nil
}

func (g *Google) Name() string { return "Google Cloud Text-to-Speech" }

func (g *Google) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
