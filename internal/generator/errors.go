package generator

import (
	"errors"
	"fmt"

	"github.com/tensorplex-labs/eduforge/internal/content"
)

var ErrUnknownTemplate = errors.New("unknown template type")

// ValidationError means the model produced a document of the wrong shape. It
// only ever fails the current attempt.
type ValidationError struct {
	Template content.TemplateType
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s content: %s", e.Template, e.Reason)
}

func invalid(t content.TemplateType, format string, args ...any) error {
	return &ValidationError{Template: t, Reason: fmt.Sprintf(format, args...)}
}
