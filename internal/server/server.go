// Package server exposes content generation over HTTP.
package server

import (
	"context"
	"errors"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/eduforge/internal/config"
	"github.com/tensorplex-labs/eduforge/internal/content"
	"github.com/tensorplex-labs/eduforge/internal/generator"
	"github.com/tensorplex-labs/eduforge/internal/store"
)

var (
	errMissingFields = errors.New("subject and topic are required")
	errNoResult      = errors.New("no valid content could be generated")
)

// ContentGenerator is satisfied by *generator.Generator.
type ContentGenerator interface {
	Generate(ctx context.Context, t content.TemplateType, req generator.Request) (content.Content, error)
}

type Server struct {
	App    *fiber.App
	config *config.ServerEnvConfig
	gen    ContentGenerator
	store  store.Store
}

func NewServer(cfg *config.ServerEnvConfig, gen ContentGenerator, st store.Store) (*Server, error) {
	log.Info().
		Str("address", cfg.Address()).
		Int("body_limit", cfg.BodyLimit).
		Msg("server configuration loaded")

	app := fiber.New(fiber.Config{
		ErrorHandler:          fiberErrHandler,
		JSONEncoder:           sonic.Marshal,
		// Decoded strings outlive the request buffer once saved to the store.
		JSONDecoder:           sonic.ConfigStd.Unmarshal,
		BodyLimit:             cfg.BodyLimit,
		DisableStartupMessage: true,
	})

	zstdMiddleware, err := ZstdMiddleware()
	if err != nil {
		return nil, err
	}

	app.Use(recover.New())
	app.Use(RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
		Next:  acceptsZstd,
	}))
	app.Use(zstdMiddleware)

	s := &Server{App: app, config: cfg, gen: gen, store: st}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.App.Get("/health", s.health)

	api := s.App.Group("/api")
	api.Get("/templates", s.templates)
	api.Post("/generate/:templateType", s.generate)
	api.Get("/content/:id", s.getContent)
}

func fiberErrHandler(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	log.Error().
		Err(err).
		Int("status_code", code).
		Str("path", ctx.Path()).
		Str("method", ctx.Method()).
		Msg("fiber error handler triggered")

	return ctx.Status(code).JSON(createResponse(map[string]interface{}{}, err))
}

func fail(c *fiber.Ctx, code int, err error) error {
	return c.Status(code).JSON(createResponse(map[string]interface{}{}, err))
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(createResponse(HealthResponse{Status: "ok"}, nil))
}

func (s *Server) templates(c *fiber.Ctx) error {
	return c.JSON(createResponse(TemplatesResponse{Templates: content.Templates()}, nil))
}

func (s *Server) generate(c *fiber.Ctx) error {
	t := content.TemplateType(c.Params("templateType"))
	if !t.Valid() {
		return fail(c, fiber.StatusNotFound, generator.ErrUnknownTemplate)
	}

	var req generator.Request
	if err := c.BodyParser(&req); err != nil {
		log.Warn().Err(err).Str("template", string(t)).Msg("failed to parse request body")
		return fail(c, fiber.StatusBadRequest, err)
	}
	if strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Topic) == "" {
		return fail(c, fiber.StatusBadRequest, errMissingFields)
	}

	generated, err := s.gen.Generate(c.UserContext(), t, req)
	switch {
	case errors.Is(err, generator.ErrUnknownTemplate):
		return fail(c, fiber.StatusNotFound, err)
	case err != nil:
		log.Error().Err(err).Str("template", string(t)).Msg("generation failed")
		return fail(c, fiber.StatusBadGateway, err)
	case generated == nil:
		return fail(c, fiber.StatusUnprocessableEntity, errNoResult)
	}

	rec, err := store.NewRecord(req, generated)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err)
	}
	if err := s.store.Save(c.UserContext(), rec); err != nil {
		log.Error().Err(err).Str("id", rec.ID).Msg("failed to save generated content")
		return fail(c, fiber.StatusInternalServerError, err)
	}

	log.Info().Str("id", rec.ID).Str("template", string(t)).Msg("content generated and saved")
	return c.JSON(createResponse(GenerateResponse{
		ID:           rec.ID,
		TemplateType: t,
		Content:      generated,
	}, nil))
}

func (s *Server) getContent(c *fiber.Ctx) error {
	rec, err := s.store.Get(c.UserContext(), c.Params("id"))
	if errors.Is(err, store.ErrNotFound) {
		return fail(c, fiber.StatusNotFound, err)
	}
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(createResponse(rec, nil))
}

func (s *Server) Start() error {
	return s.App.Listen(s.config.Address())
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.App.ShutdownWithContext(ctx)
}
