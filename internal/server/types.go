package server

import (
	"github.com/tensorplex-labs/eduforge/internal/content"
)

// StdResponse is the envelope every route answers with.
type StdResponse[T any] struct {
	Body  T       `json:"body"`
	Error *string `json:"error,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type TemplatesResponse struct {
	Templates []content.TemplateType `json:"templates"`
}

type GenerateResponse struct {
	ID           string               `json:"id"`
	TemplateType content.TemplateType `json:"templateType"`
	Content      content.Content      `json:"content"`
}

func createResponse[T any](body T, err error) StdResponse[T] {
	if err != nil {
		errMsg := err.Error()
		return StdResponse[T]{Body: body, Error: &errMsg}
	}
	return StdResponse[T]{Body: body}
}
