package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/eduforge/internal/content"
	"github.com/tensorplex-labs/eduforge/internal/extract"
	"github.com/tensorplex-labs/eduforge/internal/jsonval"
	"github.com/tensorplex-labs/eduforge/internal/prompts"
)

// Strategy configures one content type for the shared generation loop.
type Strategy[T any] struct {
	Template    content.TemplateType
	Attempts    int
	Temperature float64
	// IsolateErrors keeps completion failures inside the attempt that hit them.
	// Without it they abort the whole generation.
	IsolateErrors bool
	Defaults      Request
	Prompt        func(prompts.Params) string
	// Key is the path to the member holding the content list, e.g. {"linesMode", "pairs"}.
	Key []string
	// Validate narrows the parsed document. root is the whole document and node
	// the value found at Key.
	Validate  func(root, node jsonval.Value) (T, error)
	Normalize func(T, Request) T
}

// run drives up to s.Attempts round trips of prompt, completion, extraction and
// validation. A nil result with a nil error means every attempt was rejected.
func run[T any](ctx context.Context, g *Generator, s Strategy[T], req Request) (*T, error) {
	req = req.withDefaults(s.Defaults)
	logger := log.With().Str("template", string(s.Template)).Logger()

	attempts := s.Attempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		out, err := runAttempt(ctx, g, s, req)
		if err == nil {
			logger.Info().Int("attempt", attempt).Msg("content generated")
			return &out, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if !s.IsolateErrors && !isAttemptFailure(err) {
			logger.Error().Err(err).Int("attempt", attempt).Msg("generation aborted")
			return nil, err
		}
		logger.Warn().Err(err).Int("attempt", attempt).Int("attempts", attempts).Msg("generation attempt rejected")
	}

	logger.Error().Int("attempts", attempts).Msg("no valid content after all attempts")
	return nil, nil
}

func runAttempt[T any](ctx context.Context, g *Generator, s Strategy[T], req Request) (T, error) {
	var zero T

	text, err := g.completer.Complete(ctx, s.Prompt(req.params()), s.Temperature, g.completionRetries)
	if err != nil {
		return zero, fmt.Errorf("complete: %w", err)
	}

	root, err := extract.Extract(text)
	if err != nil {
		return zero, err
	}

	node := root.Path(s.Key...)
	if node.IsNull() {
		return zero, invalid(s.Template, "missing %q", strings.Join(s.Key, "."))
	}

	out, err := s.Validate(root, node)
	if err != nil {
		return zero, err
	}
	if s.Normalize != nil {
		out = s.Normalize(out, req)
	}
	return out, nil
}

// isAttemptFailure reports errors caused by the completion text itself, which
// a fresh prompt may fix.
func isAttemptFailure(err error) bool {
	var verr *ValidationError
	return errors.Is(err, extract.ErrExtraction) || errors.As(err, &verr)
}

// screen narrows items and drops any whose required fields are empty or whose text
// mentions a forbidden term. It fails unless at least want items survive; extra
// survivors are returned and the normalizer truncates them to want.
func screen[E any](t content.TemplateType, items []jsonval.Value, want int, narrow func(jsonval.Value) (E, []string)) ([]E, error) {
	kept := make([]E, 0, len(items))
	dropped := 0
	for _, it := range items {
		el, fields := narrow(it)
		if hasEmpty(fields) || prompts.ContainsForbidden(fields...) {
			dropped++
			continue
		}
		kept = append(kept, el)
	}
	if len(kept) < want {
		return nil, invalid(t, "want %d usable entries, got %d (%d dropped)", want, len(kept), dropped)
	}
	return kept, nil
}

func hasEmpty(fields []string) bool {
	for _, f := range fields {
		if f == "" {
			return true
		}
	}
	return false
}

func titleOr(title, fallback string) string {
	if title == "" || prompts.ContainsForbidden(title) {
		return fallback
	}
	return title
}
