// Package generator turns generation requests into validated educational content.
//
// Each content type is a Strategy: a prompt, the path of the list it expects in the
// model's answer, a validator and a normalizer. All strategies share one loop that
// re-prompts until a candidate passes or the attempt budget runs out.
package generator

import (
	"context"
	"fmt"

	"github.com/tensorplex-labs/eduforge/internal/completion"
	"github.com/tensorplex-labs/eduforge/internal/content"
)

// Generator holds no per-call state and is safe for concurrent use.
type Generator struct {
	completer         completion.Completer
	completionRetries int
}

// New returns a Generator that gives every completion call completionRetries attempts.
func New(c completion.Completer, completionRetries int) *Generator {
	if completionRetries < 1 {
		completionRetries = 1
	}
	return &Generator{completer: c, completionRetries: completionRetries}
}

// Generate dispatches on the template type. A nil Content with a nil error means
// no valid content could be produced.
func (g *Generator) Generate(ctx context.Context, t content.TemplateType, req Request) (content.Content, error) {
	switch t {
	case content.TemplateQuiz:
		return asContent(g.Quiz(ctx, req))
	case content.TemplateTimeline:
		return asContent(g.Timeline(ctx, req))
	case content.TemplateMatchUp:
		return asContent(g.MatchUp(ctx, req))
	case content.TemplateFindTheMatch:
		return asContent(g.FindTheMatch(ctx, req))
	case content.TemplateGroupSort:
		return asContent(g.GroupSort(ctx, req))
	case content.TemplateOpenTheBox:
		return asContent(g.OpenTheBox(ctx, req))
	case content.TemplateAnagram:
		return asContent(g.Anagram(ctx, req))
	case content.TemplateMnemonic:
		return asContent(g.Mnemonic(ctx, req))
	case content.TemplateCoursePresentation:
		return asContent(g.CoursePresentation(ctx, req))
	case content.TemplateAccordionNotes:
		return asContent(g.AccordionNotes(ctx, req))
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, t)
}

func asContent[T content.Content](v *T, err error) (content.Content, error) {
	if v == nil {
		return nil, err
	}
	return *v, err
}
