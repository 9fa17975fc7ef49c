package generator

import (
	"context"

	"github.com/tensorplex-labs/eduforge/internal/content"
	"github.com/tensorplex-labs/eduforge/internal/jsonval"
	"github.com/tensorplex-labs/eduforge/internal/prompts"
)

const presentationSlides = 5

var coursePresentationStrategy = Strategy[content.CoursePresentationContent]{
	Template:      content.TemplateCoursePresentation,
	Attempts:      4,
	Temperature:   0.6,
	IsolateErrors: true,
	Defaults:      DefaultRequest,
	Prompt:        prompts.CoursePresentation,
	Key:           []string{"slides"},
	Validate:      validateCoursePresentation,
	Normalize:     normalizeCoursePresentation,
}

// CoursePresentation generates a five slide presentation. Slides mentioning a
// forbidden term are discarded, and the attempt fails if fewer than five remain.
func (g *Generator) CoursePresentation(ctx context.Context, req Request) (*content.CoursePresentationContent, error) {
	return run(ctx, g, coursePresentationStrategy, req)
}

func validateCoursePresentation(root, node jsonval.Value) (content.CoursePresentationContent, error) {
	slides, err := screen(content.TemplateCoursePresentation, node.Items(), presentationSlides, func(it jsonval.Value) (content.Slide, []string) {
		s := content.Slide{Title: it.Text("title"), Content: it.Text("content")}
		return s, []string{s.Title, s.Content}
	})
	if err != nil {
		return content.CoursePresentationContent{}, err
	}
	return content.CoursePresentationContent{Title: root.Text("title"), Slides: slides}, nil
}

func normalizeCoursePresentation(p content.CoursePresentationContent, req Request) content.CoursePresentationContent {
	p.TemplateType = content.TemplateCoursePresentation
	p.Title = titleOr(p.Title, req.Topic)
	p.Slides = p.Slides[:presentationSlides]
	return p
}
