package tts

import (
	"context"

	"github.com/Nidhi-Chauhan111/Eco-App/internal/apperror"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/logger"
)

// ErrUnavailable is returned when no speech backend is configured.
var ErrUnavailable = apperror.New(apperror.KindNotFound, "text-to-speech is not configured")

type Dummy struct{}

func NewDummy() *Dummy { return &Dummy{} }

func (Dummy) Synthesize(context.Context, string, string) ([]byte, error) {
	logger.Component("tts").Debug("no tts configured, ignoring request")
	return nil, ErrUnavailable
}

func (Dummy) Name() string { return "dummy" }
