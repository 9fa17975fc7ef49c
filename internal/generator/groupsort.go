package generator

import (
	"context"

	"github.com/tensorplex-labs/eduforge/internal/content"
	"github.com/tensorplex-labs/eduforge/internal/jsonval"
	"github.com/tensorplex-labs/eduforge/internal/prompts"
)

const (
	groupSortGroups   = 2
	groupSortMaxItems = 6
)

var groupSortStrategy = Strategy[content.GroupSort]{
	Template:    content.TemplateGroupSort,
	Attempts:    1,
	Temperature: 0.6,
	Defaults:    DefaultRequest,
	Prompt:      prompts.GroupSort,
	Key:         []string{"groups"},
	Validate:    validateGroupSort,
	Normalize:   normalizeGroupSort,
}

// GroupSort generates two groups holding at most six items between them.
func (g *Generator) GroupSort(ctx context.Context, req Request) (*content.GroupSort, error) {
	return run(ctx, g, groupSortStrategy, req)
}

func validateGroupSort(root, node jsonval.Value) (content.GroupSort, error) {
	items := node.Items()
	if len(items) < groupSortGroups {
		return content.GroupSort{}, invalid(content.TemplateGroupSort, "want %d groups, got %d", groupSortGroups, len(items))
	}

	groups := make([]content.SortGroup, 0, len(items))
	for i, it := range items {
		name := it.Text("name")
		if name == "" && i < groupSortGroups {
			return content.GroupSort{}, invalid(content.TemplateGroupSort, "group %d has no name", i+1)
		}
		groups = append(groups, content.SortGroup{Name: name, Items: it.Get("items").Strings()})
	}
	return content.GroupSort{Title: root.Text("title"), Groups: groups}, nil
}

// normalizeGroupSort keeps the first two groups and fills them in order from a
// single budget of six items, so an oversized first group can leave the second
// one empty.
// TODO: decide with the activity designers whether the cap should be per group.
func normalizeGroupSort(gs content.GroupSort, req Request) content.GroupSort {
	gs.TemplateType = content.TemplateGroupSort
	gs.Title = titleOr(gs.Title, req.Topic)

	src := gs.Groups
	if len(src) > groupSortGroups {
		src = src[:groupSortGroups]
	}

	remaining := groupSortMaxItems
	groups := make([]content.SortGroup, 0, len(src))
	for _, g := range src {
		items := make([]string, 0, len(g.Items))
		for _, item := range g.Items {
			if remaining == 0 {
				break
			}
			items = append(items, item)
			remaining--
		}
		groups = append(groups, content.SortGroup{Name: g.Name, Items: items})
	}
	gs.Groups = groups
	return gs
}
