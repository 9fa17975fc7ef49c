// Package store persists generated content so it can be fetched again by id.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/eduforge/internal/config"
	"github.com/tensorplex-labs/eduforge/internal/content"
	"github.com/tensorplex-labs/eduforge/internal/generator"
)

var ErrNotFound = errors.New("content not found")

// Record is one generated activity together with the request that produced it.
type Record struct {
	ID           string               `json:"id"`
	TemplateType content.TemplateType `json:"templateType"`
	Request      generator.Request    `json:"request"`
	Content      json.RawMessage      `json:"content"`
	CreatedAt    time.Time            `json:"createdAt"`
}

type Store interface {
	Save(ctx context.Context, rec Record) error
	Get(ctx context.Context, id string) (Record, error)
	Close() error
}

// NewRecord assigns a fresh id and encodes c.
func NewRecord(req generator.Request, c content.Content) (Record, error) {
	raw, err := sonic.Marshal(c)
	if err != nil {
		return Record{}, fmt.Errorf("failed to encode content: %w", err)
	}
	return Record{
		ID:           uuid.NewString(),
		TemplateType: c.Template(),
		Request:      req,
		Content:      raw,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// New builds the backend named by cfg.Backend.
func New(cfg *config.AppConfig) (Store, error) {
	log.Info().Str("backend", cfg.Backend).Msg("initializing content store")

	switch cfg.Backend {
	case config.StoreBackendMemory, "":
		return NewMemory(cfg.TTL), nil
	case config.StoreBackendRedis:
		return NewRedis(&cfg.RedisEnvConfig, cfg.TTL)
	case config.StoreBackendRest:
		return NewRest(&cfg.StoreEnvConfig)
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
}
