package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/eduforge/internal/config"
	"github.com/tensorplex-labs/eduforge/internal/content"
	"github.com/tensorplex-labs/eduforge/internal/generator"
)

// restRow is the table layout on the managed backend.
type restRow struct {
	ID           string               `json:"id"`
	TemplateType content.TemplateType `json:"template_type"`
	Request      generator.Request    `json:"request"`
	Content      json.RawMessage      `json:"content"`
	CreatedAt    time.Time            `json:"created_at"`
}

// Rest talks to a PostgREST style table API.
type Rest struct {
	httpClient *retryablehttp.Client
	baseURL    string
	table      string
	apiKey     string
}

func NewRest(cfg *config.StoreEnvConfig) (*Rest, error) {
	if cfg.RestURL == "" {
		return nil, fmt.Errorf("rest store url is required")
	}

	client := retryablehttp.NewClient()
	client.RetryMax = cfg.RestRetryMax
	client.HTTPClient.Timeout = 30 * time.Second
	client.RetryWaitMin = 500 * time.Millisecond
	client.RetryWaitMax = 5 * time.Second
	client.Logger = nil

	baseURL := strings.TrimRight(cfg.RestURL, "/")
	log.Info().
		Str("base_url", baseURL).
		Str("table", cfg.RestTable).
		Int("retry_max", client.RetryMax).
		Msg("rest content store initialized")

	return &Rest{
		httpClient: client,
		baseURL:    baseURL,
		table:      cfg.RestTable,
		apiKey:     cfg.RestAPIKey,
	}, nil
}

func (r *Rest) endpoint() string {
	return "/rest/v1/" + url.PathEscape(r.table)
}

func (r *Rest) doRequest(ctx context.Context, method, endpoint string, body any) ([]byte, error) {
	target := r.baseURL + endpoint

	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := sonic.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if r.apiKey != "" {
		req.Header.Set("apikey", r.apiKey)
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}
	if method == http.MethodPost {
		req.Header.Set("Prefer", "return=minimal")
	}

	log.Debug().Str("method", method).Str("url", target).Msg("making store request")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Str("method", method).Str("url", target).Msg("store request failed")
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		log.Error().
			Int("status_code", resp.StatusCode).
			Str("method", method).
			Str("url", target).
			Msg("store returned an error status")
		return nil, fmt.Errorf("store returned status %d: %s", resp.StatusCode, respBody)
	}
	return respBody, nil
}

func (r *Rest) Save(ctx context.Context, rec Record) error {
	row := restRow(rec)
	if _, err := r.doRequest(ctx, http.MethodPost, r.endpoint(), row); err != nil {
		return fmt.Errorf("failed to save record %s: %w", rec.ID, err)
	}
	return nil
}

func (r *Rest) Get(ctx context.Context, id string) (Record, error) {
	q := url.Values{}
	q.Set("id", "eq."+id)
	q.Set("select", "*")

	body, err := r.doRequest(ctx, http.MethodGet, r.endpoint()+"?"+q.Encode(), nil)
	if err != nil {
		return Record{}, fmt.Errorf("failed to get record %s: %w", id, err)
	}

	var rows []restRow
	if err := sonic.Unmarshal(body, &rows); err != nil {
		return Record{}, fmt.Errorf("failed to parse record %s: %w", id, err)
	}
	if len(rows) == 0 {
		return Record{}, ErrNotFound
	}
	return Record(rows[0]), nil
}

func (r *Rest) Close() error {
	r.httpClient.HTTPClient.CloseIdleConnections()
	return nil
}
