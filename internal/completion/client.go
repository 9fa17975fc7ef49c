// Package completion is a client for an OpenAI-compatible chat completions endpoint
// that retries failed calls with linear backoff.
package completion

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/eduforge/internal/config"
)

// Completer turns a prompt into raw model text.
type Completer interface {
	Complete(ctx context.Context, prompt string, temperature float64, maxRetries int) (string, error)
}

// Client is a REST client wrapper for the completion endpoint.
type Client struct {
	cfg         *config.CompletionEnvConfig
	client      *resty.Client
	backoffBase time.Duration
}

// NewClient constructs a completion client. A missing API key is not an error here;
// it is reported by Complete so the service can start without credentials.
func NewClient(cfg *config.CompletionEnvConfig) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("completion env configuration cannot be nil")
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("completion base url cannot be empty")
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal).
		SetHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	backoff := cfg.BackoffBase
	if backoff <= 0 {
		backoff = time.Second
	}

	return &Client{
		cfg:         cfg,
		client:      client,
		backoffBase: backoff,
	}, nil
}

// Complete sends prompt to the model, retrying up to maxRetries times. Attempt n is
// followed by a wait of n × the backoff base before attempt n+1.
func (c *Client) Complete(ctx context.Context, prompt string, temperature float64, maxRetries int) (string, error) {
	if strings.TrimSpace(c.cfg.OpenrouterAPIKey) == "" {
		return "", ErrMissingCredential
	}
	if maxRetries < 1 {
		maxRetries = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		text, err := c.do(ctx, prompt, temperature)
		if err == nil {
			log.Debug().Int("attempt", attempt).Int("chars", len(text)).Msg("completion received")
			return text, nil
		}
		lastErr = err
		log.Warn().Err(err).Int("attempt", attempt).Int("max_retries", maxRetries).Msg("completion attempt failed")

		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		if attempt == maxRetries {
			break
		}
		if err := wait(ctx, c.backoffBase*time.Duration(attempt)); err != nil {
			return "", err
		}
	}

	if lastErr == nil {
		lastErr = ErrCompletion
	}
	log.Error().Err(lastErr).Int("attempts", maxRetries).Msg("completion retries exhausted")
	return "", &CompletionError{Attempts: maxRetries, Last: lastErr}
}

func (c *Client) do(ctx context.Context, prompt string, temperature float64) (string, error) {
	body := chatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemInstruction},
			{Role: "user", Content: prompt},
		},
		Temperature: temperature,
	}

	var out chatCompletionResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(c.cfg.OpenrouterAPIKey).
		SetBody(body).
		SetResult(&out).
		Post("/chat/completions")
	if err != nil {
		return "", &TransportError{Err: err}
	}
	if resp.IsError() {
		return "", &TransportError{StatusCode: resp.StatusCode(), Body: truncate(resp.String(), 512)}
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", &TransportError{StatusCode: resp.StatusCode(), Err: errEmptyContent}
	}
	return out.Choices[0].Message.Content, nil
}

func wait(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
