package generator

import (
	"context"

	"github.com/tensorplex-labs/eduforge/internal/content"
	"github.com/tensorplex-labs/eduforge/internal/jsonval"
	"github.com/tensorplex-labs/eduforge/internal/prompts"
)

const mnemonicItems = 4

var mnemonicStrategy = Strategy[content.MnemonicContent]{
	Template:      content.TemplateMnemonic,
	Attempts:      3,
	Temperature:   0.8,
	IsolateErrors: true,
	Defaults:      DefaultRequest,
	Prompt:        prompts.Mnemonic,
	Key:           []string{"items"},
	Validate:      validateMnemonic,
	Normalize:     normalizeMnemonic,
}

func (g *Generator) Mnemonic(ctx context.Context, req Request) (*content.MnemonicContent, error) {
	return run(ctx, g, mnemonicStrategy, req)
}

func validateMnemonic(root, node jsonval.Value) (content.MnemonicContent, error) {
	items, err := screen(content.TemplateMnemonic, node.Items(), mnemonicItems, func(it jsonval.Value) (content.MnemonicItem, []string) {
		m := content.MnemonicItem{
			Concept:     it.Text("concept"),
			Mnemonic:    it.Text("mnemonic"),
			Explanation: it.Text("explanation"),
		}
		return m, []string{m.Concept, m.Mnemonic, m.Explanation}
	})
	if err != nil {
		return content.MnemonicContent{}, err
	}
	return content.MnemonicContent{Title: root.Text("title"), Items: items}, nil
}

func normalizeMnemonic(m content.MnemonicContent, req Request) content.MnemonicContent {
	m.TemplateType = content.TemplateMnemonic
	m.Title = titleOr(m.Title, req.Topic)
	m.Items = m.Items[:mnemonicItems]
	return m
}
