package generator

import (
	"context"
	"regexp"
	"strings"

	"github.com/tensorplex-labs/eduforge/internal/content"
	"github.com/tensorplex-labs/eduforge/internal/jsonval"
	"github.com/tensorplex-labs/eduforge/internal/prompts"
)

const matchUpPairs = 5

var exampleClause = regexp.MustCompile(`(?i)ejemplo:`)

var matchUpStrategy = Strategy[content.MatchUp]{
	Template:      content.TemplateMatchUp,
	Attempts:      3,
	Temperature:   0.6,
	IsolateErrors: true,
	Defaults:      DefaultRequest,
	Prompt:        prompts.MatchUp,
	Key:           []string{"linesMode", "pairs"},
	Validate:      validateMatchUp,
	Normalize:     normalizeMatchUp,
}

// MatchUp generates exactly five term/definition pairs.
func (g *Generator) MatchUp(ctx context.Context, req Request) (*content.MatchUp, error) {
	return run(ctx, g, matchUpStrategy, req)
}

func validateMatchUp(root, node jsonval.Value) (content.MatchUp, error) {
	var pairs []content.MatchUpPair
	for _, it := range node.Items() {
		left, right := it.Text("left"), it.Text("right")
		if left == "" || right == "" {
			continue
		}
		pairs = append(pairs, content.MatchUpPair{Left: left, Right: right})
	}
	if len(pairs) < matchUpPairs {
		return content.MatchUp{}, invalid(content.TemplateMatchUp, "want at least %d pairs, got %d", matchUpPairs, len(pairs))
	}
	return content.MatchUp{Title: root.Text("title"), LinesMode: content.LinesMode{Pairs: pairs}}, nil
}

func normalizeMatchUp(m content.MatchUp, req Request) content.MatchUp {
	m.TemplateType = content.TemplateMatchUp
	m.Title = titleOr(m.Title, req.Topic)

	pairs := m.LinesMode.Pairs
	if len(pairs) > matchUpPairs {
		pairs = pairs[:matchUpPairs]
	}
	out := make([]content.MatchUpPair, len(pairs))
	for i, p := range pairs {
		out[i] = content.MatchUpPair{Left: p.Left, Right: stripSelfExample(p.Left, p.Right)}
	}
	m.LinesMode.Pairs = out
	return m
}

// stripSelfExample drops an "ejemplo:" clause from a definition that repeats the
// term it defines.
func stripSelfExample(left, right string) string {
	term := strings.ToLower(strings.TrimSpace(left))
	if term == "" || !strings.Contains(strings.ToLower(right), term) {
		return right
	}
	loc := exampleClause.FindStringIndex(right)
	if loc == nil {
		return right
	}
	return strings.TrimRight(right[:loc[0]], " \t\r\n,;:(")
}
