package generator

import (
	"context"

	"github.com/tensorplex-labs/eduforge/internal/content"
	"github.com/tensorplex-labs/eduforge/internal/jsonval"
	"github.com/tensorplex-labs/eduforge/internal/prompts"
)

const openTheBoxItems = 5

var openTheBoxStrategy = Strategy[content.OpenTheBox]{
	Template:    content.TemplateOpenTheBox,
	Attempts:    1,
	Temperature: 0.7,
	Defaults:    DefaultRequest,
	Prompt:      prompts.OpenTheBox,
	Key:         []string{"items"},
	Validate:    validateOpenTheBox,
	Normalize:   normalizeOpenTheBox,
}

// OpenTheBox generates exactly five boxes. Short answers are padded by repeating
// earlier boxes.
func (g *Generator) OpenTheBox(ctx context.Context, req Request) (*content.OpenTheBox, error) {
	return run(ctx, g, openTheBoxStrategy, req)
}

func validateOpenTheBox(root, node jsonval.Value) (content.OpenTheBox, error) {
	var items []content.BoxItem
	for _, it := range node.Items() {
		q, a := it.Text("question"), it.Text("answer")
		if q == "" || a == "" {
			continue
		}
		items = append(items, content.BoxItem{Question: q, Answer: a})
	}
	if len(items) == 0 {
		return content.OpenTheBox{}, invalid(content.TemplateOpenTheBox, "no usable boxes")
	}
	return content.OpenTheBox{Title: root.Text("title"), Items: items}, nil
}

func normalizeOpenTheBox(o content.OpenTheBox, req Request) content.OpenTheBox {
	o.TemplateType = content.TemplateOpenTheBox
	o.Title = titleOr(o.Title, req.Topic)

	src := o.Items
	items := make([]content.BoxItem, openTheBoxItems)
	for i := range items {
		items[i] = src[i%len(src)]
	}
	o.Items = items
	return o
}
