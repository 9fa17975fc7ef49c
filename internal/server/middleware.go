package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog/log"
)

func acceptsZstd(c *fiber.Ctx) bool {
	return strings.Contains(strings.ToLower(c.Get(fiber.HeaderAcceptEncoding)), "zstd")
}

// ZstdMiddleware decompresses zstd request bodies and zstd-compresses responses
// for clients that accept it. Other encodings are left to the compress middleware.
func ZstdMiddleware() (fiber.Handler, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}

	return func(c *fiber.Ctx) error {
		if strings.EqualFold(c.Get(fiber.HeaderContentEncoding), "zstd") {
			if body := c.Request().Body(); len(body) > 0 {
				decompressed, err := dec.DecodeAll(body, nil)
				if err != nil {
					log.Err(err).Msg("failed to decompress request")
					return c.Status(fiber.StatusBadRequest).JSON(
						createResponse(map[string]interface{}{}, fmt.Errorf("failed to decompress zstd data: %w", err)))
				}
				c.Request().SetBody(decompressed)
				c.Request().Header.Del(fiber.HeaderContentEncoding)
			}
		}

		if err := c.Next(); err != nil {
			return err
		}

		if !acceptsZstd(c) {
			return nil
		}
		responseBody := c.Response().Body()
		if len(responseBody) == 0 {
			return nil
		}
		compressed := enc.EncodeAll(responseBody, nil)
		c.Response().SetBody(compressed)
		c.Set(fiber.HeaderContentEncoding, "zstd")
		c.Vary(fiber.HeaderAcceptEncoding)

		log.Debug().
			Int("original_size", len(responseBody)).
			Int("compressed_size", len(compressed)).
			Msg("response body compressed")
		return nil
	}, nil
}

// RequestLogger logs one line per request.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		event := log.Info()
		if status >= fiber.StatusInternalServerError {
			event = log.Error()
		} else if status >= fiber.StatusBadRequest {
			event = log.Warn()
		}
		event.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status_code", status).
			Dur("latency", time.Since(start)).
			Msg("request handled")
		return err
	}
}
