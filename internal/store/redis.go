package store

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/klauspost/compress/zstd"
	"github.com/redis/rueidis"
	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/eduforge/internal/config"
)

const redisKeyPrefix = "eduforge:content:"

func redisKey(id string) string { return redisKeyPrefix + id }

// recordCodec encodes records as zstd compressed JSON. Encoder and decoder are
// safe for concurrent EncodeAll/DecodeAll calls.
type recordCodec struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

func newRecordCodec() (*recordCodec, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &recordCodec{enc: enc, dec: dec}, nil
}

func (c *recordCodec) encode(rec Record) ([]byte, error) {
	raw, err := sonic.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}
	return c.enc.EncodeAll(raw, make([]byte, 0, len(raw))), nil
}

func (c *recordCodec) decode(b []byte) (Record, error) {
	raw, err := c.dec.DecodeAll(b, nil)
	if err != nil {
		return Record{}, fmt.Errorf("failed to decompress record: %w", err)
	}
	var rec Record
	if err := sonic.Unmarshal(raw, &rec); err != nil {
		return Record{}, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return rec, nil
}

func (c *recordCodec) close() {
	_ = c.enc.Close()
	c.dec.Close()
}

// Redis stores records under eduforge:content:<id> with an optional expiry.
type Redis struct {
	client rueidis.Client
	codec  *recordCodec
	ttl    time.Duration
}

func NewRedis(cfg *config.RedisEnvConfig, ttl time.Duration) (*Redis, error) {
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress: []string{fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort)},
		Username:    cfg.RedisUsername,
		Password:    cfg.RedisPassword,
		SelectDB:    cfg.RedisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	codec, err := newRecordCodec()
	if err != nil {
		client.Close()
		return nil, err
	}

	log.Info().
		Str("host", cfg.RedisHost).
		Int("port", cfg.RedisPort).
		Int("db", cfg.RedisDB).
		Str("ttl", ttl.String()).
		Msg("redis content store initialized")

	return &Redis{client: client, codec: codec, ttl: ttl}, nil
}

func (r *Redis) Save(ctx context.Context, rec Record) error {
	b, err := r.codec.encode(rec)
	if err != nil {
		return err
	}

	value := rueidis.BinaryString(b)
	var cmd rueidis.Completed
	if r.ttl > 0 {
		cmd = r.client.B().Set().Key(redisKey(rec.ID)).Value(value).Ex(r.ttl).Build()
	} else {
		cmd = r.client.B().Set().Key(redisKey(rec.ID)).Value(value).Build()
	}
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("failed to save record %s: %w", rec.ID, err)
	}
	return nil
}

func (r *Redis) Get(ctx context.Context, id string) (Record, error) {
	resp := r.client.Do(ctx, r.client.B().Get().Key(redisKey(id)).Build())
	if err := resp.Error(); err != nil {
		if rueidis.IsRedisNil(err) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("failed to get record %s: %w", id, err)
	}

	b, err := resp.AsBytes()
	if err != nil {
		return Record{}, fmt.Errorf("failed to read record %s: %w", id, err)
	}
	return r.codec.decode(b)
}

func (r *Redis) Close() error {
	r.client.Close()
	r.codec.close()
	return nil
}
