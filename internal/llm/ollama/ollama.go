package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ollama/ollama/api"

	"github.com/Nidhi-Chauhan111/Eco-App/config"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/logger"
)

type Client struct {
	client *api.Client
	config *config.OllamaConfig
	logger *logger.Log
}

// NewClient talks to cfg.Host when set and falls back to OLLAMA_HOST otherwise.
func NewClient(cfg *config.OllamaConfig) (*Client, error) {
	client, err := newAPIClient(cfg.Host)
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}

	return &Client{
		client: client,
		config: cfg,
		logger: logger.Component("ollama"),
	}, nil
}

func newAPIClient(host string) (*api.Client, error) {
	if host == "" {
		return api.ClientFromEnvironment()
	}
	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host %q: %w", host, err)
	}
	return api.NewClient(u, http.DefaultClient), nil
}

func (c *Client) GenerateResponse(ctx context.Context, prompt string) (string, error) {
	stream := false
	req := &api.GenerateRequest{
		Model:  c.config.Model,
		Prompt: prompt,
		Stream: &stream,
		Format: []byte(`"json"`),
		Options: map[string]interface{}{
			"temperature": 0.4,
			"top_p":       0.9,
		},
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, time.Duration(c.config.Timeout)*time.Second)
	defer cancel()

	c.logger.With("model", c.config.Model).Debug("generating response")

	var response string
	err := c.client.Generate(timeoutCtx, req, func(g api.GenerateResponse) error {
		response += g.Response
		return nil
	})
	if err != nil {
		c.logger.WithError(err).Error("failed to generate response")
		return "", fmt.Errorf("ollama generation failed: %w", err)
	}

	return response, nil
}

func (c *Client) IsModelAvailable(ctx context.Context) error {
	list, err := c.client.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	names := make([]string, len(list.Models))
	for i, m := range list.Models {
		if m.Name == c.config.Model {
			return nil
		}
		names[i] = m.Name
	}

	return fmt.Errorf("model %s not found. Available models: %v", c.config.Model, names)
}
