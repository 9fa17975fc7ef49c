package generator

import (
	"context"

	"github.com/tensorplex-labs/eduforge/internal/content"
	"github.com/tensorplex-labs/eduforge/internal/jsonval"
	"github.com/tensorplex-labs/eduforge/internal/prompts"
)

const (
	timelineMinEvents = 5
	timelineMaxEvents = 8
)

var timelineStrategy = Strategy[content.Timeline]{
	Template:      content.TemplateTimeline,
	Attempts:      3,
	Temperature:   0.5,
	IsolateErrors: true,
	Defaults:      DefaultRequest,
	Prompt:        prompts.Timeline,
	Key:           []string{"events"},
	Validate:      validateTimeline,
	Normalize:     normalizeTimeline,
}

// Timeline generates a timeline of at most eight events in the order the model
// listed them. Events are not re-sorted by date.
func (g *Generator) Timeline(ctx context.Context, req Request) (*content.Timeline, error) {
	return run(ctx, g, timelineStrategy, req)
}

func validateTimeline(root, node jsonval.Value) (content.Timeline, error) {
	items := node.Items()
	if len(items) < timelineMinEvents {
		return content.Timeline{}, invalid(content.TemplateTimeline, "want at least %d events, got %d", timelineMinEvents, len(items))
	}

	events := make([]content.TimelineEvent, 0, len(items))
	for _, it := range items {
		events = append(events, content.TimelineEvent{
			Date:        it.Text("date"),
			Title:       it.Text("title"),
			Description: it.Text("description"),
		})
	}
	return content.Timeline{Title: root.Text("title"), Events: events}, nil
}

func normalizeTimeline(t content.Timeline, req Request) content.Timeline {
	t.TemplateType = content.TemplateTimeline
	t.Title = titleOr(t.Title, req.Topic)
	if len(t.Events) > timelineMaxEvents {
		t.Events = t.Events[:timelineMaxEvents]
	}
	return t
}
