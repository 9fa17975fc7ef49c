package generator

import (
	"context"
	"strings"

	"github.com/tensorplex-labs/eduforge/internal/content"
	"github.com/tensorplex-labs/eduforge/internal/jsonval"
	"github.com/tensorplex-labs/eduforge/internal/prompts"
)

const findTheMatchPairs = 5

var findTheMatchStrategy = Strategy[content.FindTheMatch]{
	Template:    content.TemplateFindTheMatch,
	Attempts:    1,
	Temperature: 0.6,
	Defaults:    DefaultRequest,
	Prompt:      prompts.FindTheMatch,
	Key:         []string{"pairs"},
	Validate:    validateFindTheMatch,
	Normalize:   normalizeFindTheMatch,
}

// FindTheMatch generates five concept/affirmation pairs in which no concept and
// no affirmation repeats.
func (g *Generator) FindTheMatch(ctx context.Context, req Request) (*content.FindTheMatch, error) {
	return run(ctx, g, findTheMatchStrategy, req)
}

func validateFindTheMatch(root, node jsonval.Value) (content.FindTheMatch, error) {
	pairs := uniquePairs(node.Items())
	if len(pairs) < findTheMatchPairs {
		return content.FindTheMatch{}, invalid(content.TemplateFindTheMatch, "want %d unique pairs, got %d", findTheMatchPairs, len(pairs))
	}
	return content.FindTheMatch{Title: root.Text("title"), Pairs: pairs}, nil
}

// uniquePairs keeps pairs in encounter order, rejecting any pair whose concept or
// affirmation was already taken, compared case-insensitively.
func uniquePairs(items []jsonval.Value) []content.FindTheMatchPair {
	seenConcepts := make(map[string]struct{}, len(items))
	seenAffirmations := make(map[string]struct{}, len(items))

	var out []content.FindTheMatchPair
	for _, it := range items {
		concept, affirmation := it.Text("concept"), it.Text("affirmation")
		if concept == "" || affirmation == "" {
			continue
		}
		ck, ak := strings.ToLower(concept), strings.ToLower(affirmation)
		if _, dup := seenConcepts[ck]; dup {
			continue
		}
		if _, dup := seenAffirmations[ak]; dup {
			continue
		}
		seenConcepts[ck] = struct{}{}
		seenAffirmations[ak] = struct{}{}
		out = append(out, content.FindTheMatchPair{Concept: concept, Affirmation: affirmation})
	}
	return out
}

func normalizeFindTheMatch(f content.FindTheMatch, req Request) content.FindTheMatch {
	f.TemplateType = content.TemplateFindTheMatch
	f.Title = titleOr(f.Title, req.Topic)
	if len(f.Pairs) > findTheMatchPairs {
		f.Pairs = f.Pairs[:findTheMatchPairs]
	}
	return f
}
