package extract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_RecoversWrappedObject(t *testing.T) {
	const obj = `{"title": "Célula", "nested": {"brace": "a } inside", "quote": "dijo \"hola\""}, "n": 3}`

	tests := []struct {
		name string
		in   string
	}{
		{name: "bare", in: obj},
		{name: "prose before and after", in: "Claro, aquí tienes el contenido:\n" + obj + "\nEspero que te sirva {de verdad}."},
		{name: "fenced with language", in: "```json\n" + obj + "\n```"},
		{name: "fenced without language", in: "```\n" + obj + "\n```"},
		{name: "fenced inside prose", in: "Resultado:\n```json\n" + obj + "\n```\nFin."},
		{name: "surrounding whitespace", in: "\n\n   " + obj + "   \n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Extract(tt.in)
			require.NoError(t, err)
			assert.Equal(t, "Célula", v.Text("title"))
			assert.Equal(t, "a } inside", v.Path("nested", "brace").AsText())
			assert.Equal(t, `dijo "hola"`, v.Path("nested", "quote").AsText())
			assert.Equal(t, "3", v.Text("n"))
		})
	}
}

func TestCandidate(t *testing.T) {
	assert.Equal(t, `{"a": {"b": "}"}}`, Candidate(`texto {"a": {"b": "}"}} más {"c": 1}`))
	assert.Equal(t, `{"a": "x\\"}`, Candidate(`{"a": "x\\"} sobra`))
	assert.Equal(t, "sin llaves", Candidate("```\nsin llaves\n```"))
	assert.Equal(t, `{"abierto": [1, 2`, Candidate(`{"abierto": [1, 2`))
}

func TestExtract_CosmeticRepair(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "trailing commas", in: `{"items": ["a", "b",], "title": "x",}`},
		{name: "trailing comma with newline", in: "{\"items\": [\"a\", \"b\",\n  ],\n \"title\": \"x\",\n}"},
		{name: "smart double quotes", in: `{“items”: [“a”, “b”], “title”: “x”}`},
		{name: "both defects", in: "Aquí: {“items”: [“a”, “b”,], “title”: “x”,}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Extract(tt.in)
			require.NoError(t, err)
			assert.Equal(t, []string{"a", "b"}, v.Get("items").Strings())
			assert.Equal(t, "x", v.Text("title"))
		})
	}
}

func TestExtract_SmartSingleQuotesInsideStrings(t *testing.T) {
	v, err := Extract(`{“title”: “el ‘mejor’ ejemplo”,}`)
	require.NoError(t, err)
	assert.Equal(t, "el 'mejor' ejemplo", v.Text("title"))
}

func TestExtract_EscapeRepair(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "escaped quotes", in: `{\"title\": \"Agua\"}`, want: "Agua"},
		{name: "escaped slashes", in: `{\"title\": \"H2O\/agua\"}`, want: "H2O/agua"},
		{name: "escaped newline between members", in: `{\"title\": \"Agua\",\n\"n\": 1}`, want: "Agua"},
		{name: "escaped tab and trailing comma", in: `{\"title\":\t\"Agua\",}`, want: "Agua"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Extract(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.Text("title"))
		})
	}
}

func TestExtract_Failure(t *testing.T) {
	for _, in := range []string{
		"",
		"no hay nada aquí",
		`{"title": "sin cerrar"`,
		`{"title" "falta dos puntos"}`,
	} {
		_, err := Extract(in)
		require.Error(t, err, in)
		assert.True(t, errors.Is(err, ErrExtraction), in)
	}
}
