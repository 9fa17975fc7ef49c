package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/eduforge/internal/completion"
	"github.com/tensorplex-labs/eduforge/internal/config"
	"github.com/tensorplex-labs/eduforge/internal/content"
	"github.com/tensorplex-labs/eduforge/internal/generator"
	"github.com/tensorplex-labs/eduforge/internal/utils/logger"
)

var (
	subject    = flag.String("subject", "", "subject the activity belongs to")
	topic      = flag.String("topic", "", "topic of the activity")
	level      = flag.String("level", "", "academic level (default Secundaria)")
	difficulty = flag.String("difficulty", "", "difficulty (default Intermedio)")
	template   = flag.String("template", "", "template type; skips the menu when set")
)

type generatedMsg struct {
	content content.Content
	err     error
}

type model struct {
	choices  []content.TemplateType
	cursor   int
	selected content.TemplateType
	running  bool
	done     bool

	gen *generator.Generator
	req generator.Request

	result content.Content
	err    error
}

func newModel(gen *generator.Generator, req generator.Request) *model {
	return &model{
		choices: content.Templates(),
		gen:     gen,
		req:     req,
	}
}

func (m *model) generate() tea.Msg {
	c, err := m.gen.Generate(context.Background(), m.selected, m.req)
	return generatedMsg{content: c, err: err}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		m.running, m.done = false, true
		m.result, m.err = msg.content, msg.err
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
		if m.running {
			return m, nil
		}

		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.choices)-1 {
				m.cursor++
			}
		case "enter":
			m.selected = m.choices[m.cursor]
			m.running = true
			return m, m.generate
		}
	}
	return m, nil
}

func (m *model) View() string {
	if m.running {
		return fmt.Sprintf("Generating %s for %q...\n", m.selected, m.req.Topic)
	}

	var b strings.Builder
	b.WriteString("Select a template:\n\n")
	for i, choice := range m.choices {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}
		fmt.Fprintf(&b, "%s %s\n", cursor, choice)
	}
	b.WriteString("\nPress q to quit.\n")
	return b.String()
}

func (m *model) Init() tea.Cmd {
	return nil
}

func printResult(c content.Content, err error) int {
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		return 1
	}
	if c == nil {
		fmt.Println("no result")
		return 1
	}
	out, err := sonic.ConfigStd.MarshalIndent(c, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode content: %v\n", err)
		return 1
	}
	fmt.Println(string(out))
	return 0
}

func main() {
	logger.Init()

	if strings.TrimSpace(*subject) == "" || strings.TrimSpace(*topic) == "" {
		fmt.Fprintln(os.Stderr, "usage: cli -subject <subject> -topic <topic> [-level L] [-difficulty D] [-template T]")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load environment configuration")
	}
	client, err := completion.NewClient(&cfg.CompletionEnvConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init completion client")
	}

	gen := generator.New(client, cfg.MaxRetries)
	req := generator.Request{Subject: *subject, Topic: *topic, Level: *level, Difficulty: *difficulty}

	if *template != "" {
		t := content.TemplateType(*template)
		if !t.Valid() {
			fmt.Fprintf(os.Stderr, "unknown template %q\n", t)
			os.Exit(2)
		}
		os.Exit(printResult(gen.Generate(context.Background(), t, req)))
	}

	m := newModel(gen, req)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
	if !m.done {
		return
	}
	os.Exit(printResult(m.result, m.err))
}
