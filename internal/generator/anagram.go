package generator

import (
	"context"

	"github.com/tensorplex-labs/eduforge/internal/content"
	"github.com/tensorplex-labs/eduforge/internal/jsonval"
	"github.com/tensorplex-labs/eduforge/internal/prompts"
)

const anagramMinWords = 5

var anagramStrategy = Strategy[content.AnagramContent]{
	Template:    content.TemplateAnagram,
	Attempts:    1,
	Temperature: 0.7,
	Defaults:    DefaultRequest,
	Prompt:      prompts.Anagram,
	Key:         []string{"words"},
	Validate:    validateAnagram,
	Normalize:   normalizeAnagram,
}

func (g *Generator) Anagram(ctx context.Context, req Request) (*content.AnagramContent, error) {
	return run(ctx, g, anagramStrategy, req)
}

func validateAnagram(root, node jsonval.Value) (content.AnagramContent, error) {
	var words []content.AnagramWord
	for _, it := range node.Items() {
		w := it.Text("word")
		if w == "" {
			continue
		}
		words = append(words, content.AnagramWord{Word: w, Hint: it.Text("hint")})
	}
	if len(words) < anagramMinWords {
		return content.AnagramContent{}, invalid(content.TemplateAnagram, "want at least %d words, got %d", anagramMinWords, len(words))
	}
	return content.AnagramContent{Title: root.Text("title"), Words: words}, nil
}

func normalizeAnagram(a content.AnagramContent, req Request) content.AnagramContent {
	a.TemplateType = content.TemplateAnagram
	a.Title = titleOr(a.Title, req.Topic)
	return a
}
