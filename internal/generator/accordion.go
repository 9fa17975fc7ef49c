package generator

import (
	"context"

	"github.com/tensorplex-labs/eduforge/internal/content"
	"github.com/tensorplex-labs/eduforge/internal/jsonval"
	"github.com/tensorplex-labs/eduforge/internal/prompts"
)

const accordionSections = 5

var accordionNotesStrategy = Strategy[content.AccordionNotesContent]{
	Template:      content.TemplateAccordionNotes,
	Attempts:      4,
	Temperature:   0.6,
	IsolateErrors: true,
	Defaults:      DefaultRequest,
	Prompt:        prompts.AccordionNotes,
	Key:           []string{"sections"},
	Validate:      validateAccordionNotes,
	Normalize:     normalizeAccordionNotes,
}

// AccordionNotes generates five note sections, none of which mention a
// forbidden term.
func (g *Generator) AccordionNotes(ctx context.Context, req Request) (*content.AccordionNotesContent, error) {
	return run(ctx, g, accordionNotesStrategy, req)
}

func validateAccordionNotes(root, node jsonval.Value) (content.AccordionNotesContent, error) {
	sections, err := screen(content.TemplateAccordionNotes, node.Items(), accordionSections, func(it jsonval.Value) (content.NoteSection, []string) {
		s := content.NoteSection{Title: it.Text("title"), Content: it.Text("content")}
		return s, []string{s.Title, s.Content}
	})
	if err != nil {
		return content.AccordionNotesContent{}, err
	}
	return content.AccordionNotesContent{Title: root.Text("title"), Sections: sections}, nil
}

func normalizeAccordionNotes(a content.AccordionNotesContent, req Request) content.AccordionNotesContent {
	a.TemplateType = content.TemplateAccordionNotes
	a.Title = titleOr(a.Title, req.Topic)
	a.Sections = a.Sections[:accordionSections]
	return a
}
