package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tensorplex-labs/eduforge/internal/completion"
	"github.com/tensorplex-labs/eduforge/internal/content"
	"github.com/tensorplex-labs/eduforge/internal/jsonval"
)

type reply struct {
	text string
	err  error
}

// scripted replays replies in order and repeats the last one once they run out.
type scripted struct {
	mu      sync.Mutex
	replies []reply
	prompts []string
	temps   []float64
	retries []int
}

func (s *scripted) Complete(ctx context.Context, prompt string, temperature float64, maxRetries int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	i := len(s.prompts)
	s.prompts = append(s.prompts, prompt)
	s.temps = append(s.temps, temperature)
	s.retries = append(s.retries, maxRetries)
	if i >= len(s.replies) {
		i = len(s.replies) - 1
	}
	r := s.replies[i]
	return r.text, r.err
}

func (s *scripted) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prompts)
}

func texts(docs ...string) *scripted {
	s := &scripted{}
	for _, d := range docs {
		s.replies = append(s.replies, reply{text: d})
	}
	return s
}

func doc(t *testing.T, v map[string]any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func sections(n int, bodies ...string) []map[string]any {
	out := make([]map[string]any, n)
	for i := range out {
		body := fmt.Sprintf("Contenido de la sección %d", i+1)
		if i < len(bodies) && bodies[i] != "" {
			body = bodies[i]
		}
		out[i] = map[string]any{"title": fmt.Sprintf("Sección %d", i+1), "content": body}
	}
	return out
}

var req = Request{Subject: "Química", Topic: "La materia"}

func TestFindTheMatchDropsDuplicates(t *testing.T) {
	c := texts(doc(t, map[string]any{
		"title": "Partículas",
		"pairs": []map[string]any{
			{"concept": "Átomo", "affirmation": "Unidad básica de la materia"},
			{"concept": " átomo ", "affirmation": "Otra definición distinta"},
			{"concept": "Molécula", "affirmation": "Unidad básica de la materia"},
			{"concept": "Ion", "affirmation": "Átomo con carga eléctrica"},
			{"concept": "Electrón", "affirmation": "Partícula con carga negativa"},
			{"concept": "Protón", "affirmation": "Partícula con carga positiva"},
			{"concept": "Neutrón", "affirmation": "Partícula sin carga"},
			{"concept": "Núcleo", "affirmation": "Centro del átomo"},
		},
	}))

	out, err := New(c, 1).FindTheMatch(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, out)
	require.Len(t, out.Pairs, 5)

	assert.Equal(t, content.FindTheMatchPair{Concept: "Átomo", Affirmation: "Unidad básica de la materia"}, out.Pairs[0])
	assert.Equal(t, "Ion", out.Pairs[1].Concept)
	for _, p := range out.Pairs {
		assert.NotEqual(t, "Otra definición distinta", p.Affirmation)
		assert.NotEqual(t, "Molécula", p.Concept)
	}
	assert.Equal(t, content.TemplateFindTheMatch, out.TemplateType)
	assert.Equal(t, 1, c.calls())
}

func TestFindTheMatchTooFewUniquePairs(t *testing.T) {
	pairs := make([]map[string]any, 0, 6)
	for i := 0; i < 6; i++ {
		pairs = append(pairs, map[string]any{"concept": "Átomo", "affirmation": fmt.Sprintf("Definición %d", i)})
	}
	c := texts(doc(t, map[string]any{"pairs": pairs}))

	out, err := New(c, 1).FindTheMatch(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestGroupSortSharedCap(t *testing.T) {
	c := texts(doc(t, map[string]any{
		"title": "Clasifica",
		"groups": []map[string]any{
			{"name": "Metales", "items": []string{"Hierro", "Cobre", "Oro", "Plata", "Zinc", "Plomo", "Estaño", "Níquel"}},
			{"name": "No metales", "items": []string{"Oxígeno", "Carbono", "Azufre"}},
			{"name": "Gases nobles", "items": []string{"Neón"}},
		},
	}))

	out, err := New(c, 1).GroupSort(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, out)
	require.Len(t, out.Groups, 2)

	assert.Equal(t, []string{"Hierro", "Cobre", "Oro", "Plata", "Zinc", "Plomo"}, out.Groups[0].Items)
	assert.Equal(t, "No metales", out.Groups[1].Name)
	assert.NotNil(t, out.Groups[1].Items)
	assert.Empty(t, out.Groups[1].Items)
}

func TestGroupSortSplitsBudgetInOrder(t *testing.T) {
	c := texts(doc(t, map[string]any{
		"groups": []map[string]any{
			{"name": "A", "items": []string{"a1", "a2"}},
			{"name": "B", "items": []string{"b1", "b2", "b3", "b4", "b5"}},
		},
	}))

	out, err := New(c, 1).GroupSort(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, []string{"a1", "a2"}, out.Groups[0].Items)
	assert.Equal(t, []string{"b1", "b2", "b3", "b4"}, out.Groups[1].Items)
	assert.Equal(t, "La materia", out.Title)
}

func TestOpenTheBoxPadsByWraparound(t *testing.T) {
	c := texts(doc(t, map[string]any{
		"title": "Cajas",
		"items": []map[string]any{
			{"question": "¿Qué es un átomo?", "answer": "La unidad básica"},
			{"question": "¿Qué es un ion?", "answer": "Un átomo con carga"},
		},
	}))

	out, err := New(c, 1).OpenTheBox(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, out)
	require.Len(t, out.Items, 5)

	assert.Equal(t, out.Items[0], out.Items[2])
	assert.Equal(t, out.Items[1], out.Items[3])
	assert.Equal(t, out.Items[0], out.Items[4])
	assert.NotEqual(t, out.Items[0], out.Items[1])
}

func TestOpenTheBoxTruncates(t *testing.T) {
	items := make([]map[string]any, 7)
	for i := range items {
		items[i] = map[string]any{"question": fmt.Sprintf("P%d", i), "answer": fmt.Sprintf("R%d", i)}
	}
	c := texts(doc(t, map[string]any{"items": items}))

	out, err := New(c, 1).OpenTheBox(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, out)
	require.Len(t, out.Items, 5)
	assert.Equal(t, "P4", out.Items[4].Question)
}

func TestMatchUpStripsSelfExample(t *testing.T) {
	pairs := []map[string]any{
		{"left": "Fotosíntesis", "right": "Proceso por el cual se realiza la fotosíntesis, ejemplo: en las plantas"},
		{"left": "Clorofila", "right": "Pigmento verde. Ejemplo: hojas"},
	}
	for i := 0; i < 4; i++ {
		pairs = append(pairs, map[string]any{"left": fmt.Sprintf("Término %d", i), "right": fmt.Sprintf("Definición %d", i)})
	}
	c := texts(doc(t, map[string]any{"title": "Biología", "linesMode": map[string]any{"pairs": pairs}}))

	out, err := New(c, 1).MatchUp(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, out)
	require.Len(t, out.LinesMode.Pairs, 5)

	assert.Equal(t, "Proceso por el cual se realiza la fotosíntesis", out.LinesMode.Pairs[0].Right)
	assert.Equal(t, "Pigmento verde. Ejemplo: hojas", out.LinesMode.Pairs[1].Right)
}

func TestStripSelfExample(t *testing.T) {
	tests := []struct {
		left, right, want string
	}{
		{"Átomo", "El átomo es pequeño (ejemplo: hidrógeno)", "El átomo es pequeño"},
		{"Átomo", "Partícula pequeña, ejemplo: hidrógeno", "Partícula pequeña, ejemplo: hidrógeno"},
		{"Ion", "Un ion sin ejemplo", "Un ion sin ejemplo"},
		{"", "ejemplo: nada", "ejemplo: nada"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripSelfExample(tt.left, tt.right), tt.right)
	}
}

func TestAccordionNotesRetriesOnForbiddenTerm(t *testing.T) {
	tainted := doc(t, map[string]any{
		"title":    "Notas",
		"sections": sections(5, "", "", "Este formato resume la materia"),
	})
	clean := doc(t, map[string]any{"title": "Notas", "sections": sections(5)})
	c := texts(tainted, clean)

	out, err := New(c, 1).AccordionNotes(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, out)
	require.Len(t, out.Sections, 5)
	for _, s := range out.Sections {
		assert.NotContains(t, strings.ToLower(s.Content), "formato")
	}
	assert.Equal(t, 2, c.calls())
}

func TestAccordionNotesKeepsFiveOfSix(t *testing.T) {
	c := texts(doc(t, map[string]any{
		"sections": sections(6, "Usa sintaxis clara"),
	}))

	out, err := New(c, 1).AccordionNotes(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, out)
	require.Len(t, out.Sections, 5)
	assert.Equal(t, "Sección 2", out.Sections[0].Title)
}

func TestScreenReturnsAllSurvivors(t *testing.T) {
	items := make([]jsonval.Value, 0, 7)
	for i := 0; i < 6; i++ {
		items = append(items, jsonval.NewString(fmt.Sprintf("concepto %d", i)))
	}
	items = append(items, jsonval.NewString(""))
	narrow := func(v jsonval.Value) (string, []string) {
		s := v.AsText()
		return s, []string{s}
	}

	kept, err := screen(content.TemplateMnemonic, items, 4, narrow)
	require.NoError(t, err)
	assert.Len(t, kept, 6)
	assert.Equal(t, "concepto 5", kept[5])

	_, err = screen(content.TemplateMnemonic, items[3:], 4, narrow)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestMnemonicExactlyFour(t *testing.T) {
	items := make([]map[string]any, 6)
	for i := range items {
		items[i] = map[string]any{
			"concept":     fmt.Sprintf("Concepto %d", i),
			"mnemonic":    fmt.Sprintf("Regla %d", i),
			"explanation": fmt.Sprintf("Explicación %d", i),
		}
	}
	c := texts(doc(t, map[string]any{"title": "Trucos", "items": items}))

	out, err := New(c, 1).Mnemonic(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Len(t, out.Items, 4)
	assert.Equal(t, 0.8, c.temps[0])
}

func TestCoursePresentationExhaustsAttempts(t *testing.T) {
	c := texts(doc(t, map[string]any{"slides": sections(4)}))

	out, err := New(c, 1).CoursePresentation(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, out)
	assert.Equal(t, 4, c.calls())
}

func TestQuizNoResultAfterGarbage(t *testing.T) {
	c := texts("no tengo nada que decir")

	out, err := New(c, 2).Quiz(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, out)
	assert.Equal(t, 3, c.calls())
	assert.Equal(t, []int{2, 2, 2}, c.retries)
}

func TestQuizKeepsExtraQuestions(t *testing.T) {
	questions := make([]map[string]any, 7)
	for i := range questions {
		questions[i] = map[string]any{
			"prompt":       fmt.Sprintf("Pregunta %d", i),
			"options":      []string{"a", "b", "c", "d"},
			"correctIndex": 2,
			"explanation":  "Porque sí",
		}
	}
	c := texts("```json\n" + doc(t, map[string]any{"title": "Repaso", "questions": questions}) + "\n```")

	out, err := New(c, 1).Quiz(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Len(t, out.Questions, 7)
	assert.Equal(t, 2, out.Questions[0].CorrectIndex)
	assert.Equal(t, "Repaso", out.Title)
}

func TestMinimumCountGates(t *testing.T) {
	questions := func(n int) []map[string]any {
		out := make([]map[string]any, n)
		for i := range out {
			out[i] = map[string]any{"prompt": fmt.Sprintf("P%d", i), "options": []string{"a", "b", "c", "d"}, "correctIndex": 0}
		}
		return out
	}
	events := func(n int) []map[string]any {
		out := make([]map[string]any, n)
		for i := range out {
			out[i] = map[string]any{"date": fmt.Sprintf("%d", 1900+i), "title": fmt.Sprintf("Hito %d", i)}
		}
		return out
	}
	pairs := func(n int, emptyLeft int) []map[string]any {
		out := make([]map[string]any, n)
		for i := range out {
			left := fmt.Sprintf("Término %d", i)
			if i < emptyLeft {
				left = "  "
			}
			out[i] = map[string]any{"left": left, "right": fmt.Sprintf("Definición %d", i)}
		}
		return out
	}

	tests := []struct {
		name string
		doc  map[string]any
		gen  func(*Generator) (any, error)
	}{
		{
			name: "quiz with four questions",
			doc:  map[string]any{"questions": questions(4)},
			gen: func(g *Generator) (any, error) {
				out, err := g.Quiz(context.Background(), req)
				return out, err
			},
		},
		{
			name: "timeline with four events",
			doc:  map[string]any{"events": events(4)},
			gen: func(g *Generator) (any, error) {
				out, err := g.Timeline(context.Background(), req)
				return out, err
			},
		},
		{
			name: "matchUp with four pairs",
			doc:  map[string]any{"linesMode": map[string]any{"pairs": pairs(4, 0)}},
			gen: func(g *Generator) (any, error) {
				out, err := g.MatchUp(context.Background(), req)
				return out, err
			},
		},
		{
			name: "matchUp with six pairs, two without a term",
			doc:  map[string]any{"linesMode": map[string]any{"pairs": pairs(6, 2)}},
			gen: func(g *Generator) (any, error) {
				out, err := g.MatchUp(context.Background(), req)
				return out, err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := texts(doc(t, tt.doc))

			out, err := tt.gen(New(c, 1))
			require.NoError(t, err)
			assert.Nil(t, out)
			assert.Equal(t, 3, c.calls())
		})
	}
}

func TestTimelineTruncatesToEight(t *testing.T) {
	events := make([]map[string]any, 10)
	for i := range events {
		events[i] = map[string]any{"date": fmt.Sprintf("%d", 1900+i), "title": fmt.Sprintf("Hito %d", i), "description": "..."}
	}
	c := texts(doc(t, map[string]any{"events": events}))

	out, err := New(c, 1).Timeline(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, out)
	require.Len(t, out.Events, 8)
	assert.Equal(t, "1900", out.Events[0].Date)
	assert.Equal(t, "1907", out.Events[7].Date)
}

func TestAnagramMinimum(t *testing.T) {
	c := texts(doc(t, map[string]any{"words": []map[string]any{
		{"word": "átomo", "hint": "pequeño"},
		{"word": "ion"},
	}}))

	out, err := New(c, 1).Anagram(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestMissingKeyIsNoResult(t *testing.T) {
	c := texts(`{"title": "Sin lista"}`)

	out, err := New(c, 1).Anagram(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestIsolatedCompletionFailure(t *testing.T) {
	c := &scripted{replies: []reply{
		{err: &completion.CompletionError{Attempts: 1}},
		{text: doc(t, map[string]any{"sections": sections(5)})},
	}}

	out, err := New(c, 1).AccordionNotes(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, 2, c.calls())
}

func TestNonIsolatedCompletionFailurePropagates(t *testing.T) {
	c := &scripted{replies: []reply{{err: completion.ErrMissingCredential}}}

	out, err := New(c, 1).GroupSort(context.Background(), req)
	assert.Nil(t, out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, completion.ErrMissingCredential))
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := texts(`{}`)

	out, err := New(c, 1).Quiz(ctx, req)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, c.calls())
}

func TestDefaultsAndTitleFallback(t *testing.T) {
	c := texts(doc(t, map[string]any{
		"title": "Resumen en formato JSON",
		"words": []map[string]any{{"word": "a"}, {"word": "b"}, {"word": "c"}, {"word": "d"}, {"word": "e"}},
	}))

	out, err := New(c, 1).Anagram(context.Background(), Request{Subject: " Química ", Topic: " Enlaces "})
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "Enlaces", out.Title)

	require.Len(t, c.prompts, 1)
	assert.Contains(t, c.prompts[0], "Nivel académico: Secundaria")
	assert.Contains(t, c.prompts[0], "Dificultad: Intermedio")
	assert.Contains(t, c.prompts[0], "Tema: Enlaces\n")
}

func TestGenerateDispatch(t *testing.T) {
	c := texts(doc(t, map[string]any{"items": []map[string]any{{"question": "q", "answer": "a"}}}))
	g := New(c, 1)

	got, err := g.Generate(context.Background(), content.TemplateOpenTheBox, req)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, content.TemplateOpenTheBox, got.Template())

	_, err = g.Generate(context.Background(), content.TemplateType("crossword"), req)
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}

func TestGenerateNoResultIsNilInterface(t *testing.T) {
	g := New(texts("nada"), 1)

	got, err := g.Generate(context.Background(), content.TemplateAnagram, req)
	require.NoError(t, err)
	assert.True(t, got == nil)
}
