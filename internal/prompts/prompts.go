// Package prompts renders the instructions sent to the model for each content type.
//
// Every prompt embeds the request fields, an exact example of the expected output
// shape and the list of words the generated text must never contain.
package prompts

import (
	"fmt"
	"strings"
)

// Params are the request fields a prompt is rendered from.
type Params struct {
	Subject    string
	Topic      string
	Level      string
	Difficulty string
}

// forbiddenTerms are words that would reveal to students that the activity was
// produced as structured data.
var forbiddenTerms = []string{
	"json",
	"rfc8259",
	"formato",
	"javascript",
	"comillas",
	"arrays",
	"claves",
	"sintaxis",
}

// ForbiddenTerms returns a copy of the denylist.
func ForbiddenTerms() []string {
	out := make([]string, len(forbiddenTerms))
	copy(out, forbiddenTerms)
	return out
}

// ContainsForbidden reports whether any of texts mentions a forbidden term,
// ignoring case.
func ContainsForbidden(texts ...string) bool {
	for _, t := range texts {
		lower := strings.ToLower(t)
		for _, term := range forbiddenTerms {
			if strings.Contains(lower, term) {
				return true
			}
		}
	}
	return false
}

func render(p Params, task, shape string, rules ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Eres un docente experto en %s que prepara actividades para estudiantes.\n", p.Subject)
	fmt.Fprintf(&b, "Tarea: %s\n", task)
	fmt.Fprintf(&b, "Tema: %s\n", p.Topic)
	fmt.Fprintf(&b, "Nivel académico: %s\n", p.Level)
	fmt.Fprintf(&b, "Dificultad: %s\n\n", p.Difficulty)

	b.WriteString("Reglas:\n")
	for _, r := range rules {
		fmt.Fprintf(&b, "- %s\n", r)
	}
	b.WriteString("- Escribe todo el contenido en español, con precisión y adecuado al nivel indicado.\n")
	fmt.Fprintf(&b, "- Nunca uses en el contenido estas palabras: %s.\n", strings.Join(forbiddenTerms, ", "))
	b.WriteString("- Responde solo con la estructura siguiente, sin explicaciones ni texto adicional.\n\n")

	b.WriteString("Estructura exacta de la respuesta:\n")
	b.WriteString(strings.TrimSpace(shape))
	b.WriteString("\n")
	return b.String()
}

func Quiz(p Params) string {
	return render(p,
		"crea un cuestionario de 5 preguntas de opción múltiple.",
		`{
  "title": "Título del cuestionario",
  "questions": [
    {
      "prompt": "Enunciado de la pregunta",
      "options": ["Opción A", "Opción B", "Opción C", "Opción D"],
      "correctIndex": 0,
      "explanation": "Por qué la opción correcta es la correcta"
    }
  ]
}`,
		"Incluye exactamente 5 preguntas.",
		"Cada pregunta tiene exactamente 4 opciones y una sola correcta.",
		"correctIndex es la posición (0 a 3) de la opción correcta.",
	)
}

func Timeline(p Params) string {
	return render(p,
		"crea una línea de tiempo con los hechos más relevantes del tema.",
		`{
  "title": "Título de la línea de tiempo",
  "events": [
    {
      "date": "1810",
      "title": "Nombre del hecho",
      "description": "Qué ocurrió y por qué importa"
    }
  ]
}`,
		"Incluye entre 5 y 8 hechos ordenados cronológicamente.",
		"Cada fecha debe ser concreta (año, o día y mes cuando se conozcan).",
	)
}

func MatchUp(p Params) string {
	return render(p,
		"crea una actividad de unir términos con sus definiciones.",
		`{
  "title": "Título de la actividad",
  "linesMode": {
    "pairs": [
      {
        "left": "Término",
        "right": "Definición breve del término"
      }
    ]
  }
}`,
		"Incluye exactamente 5 parejas.",
		"La definición no debe repetir el término que define.",
		"No añadas ejemplos dentro de las definiciones.",
	)
}

func FindTheMatch(p Params) string {
	return render(p,
		"crea una actividad para encontrar la afirmación que corresponde a cada concepto.",
		`{
  "title": "Título de la actividad",
  "pairs": [
    {
      "concept": "Concepto",
      "affirmation": "Afirmación verdadera que solo describe a este concepto"
    }
  ]
}`,
		"Incluye exactamente 5 parejas.",
		"Todos los conceptos deben ser distintos entre sí.",
		"Todas las afirmaciones deben ser distintas entre sí.",
	)
}

func GroupSort(p Params) string {
	return render(p,
		"crea una actividad de clasificar elementos en dos grupos.",
		`{
  "title": "Título de la actividad",
  "groups": [
    {
      "name": "Nombre del grupo 1",
      "items": ["Elemento", "Elemento", "Elemento"]
    },
    {
      "name": "Nombre del grupo 2",
      "items": ["Elemento", "Elemento", "Elemento"]
    }
  ]
}`,
		"Incluye exactamente 2 grupos.",
		"Incluye 3 elementos por grupo, 6 en total.",
		"Cada elemento pertenece claramente a un solo grupo.",
	)
}

func OpenTheBox(p Params) string {
	return render(p,
		"crea una actividad de cajas sorpresa, cada una con una pregunta y su respuesta.",
		`{
  "title": "Título de la actividad",
  "items": [
    {
      "question": "Pregunta breve",
      "answer": "Respuesta breve"
    }
  ]
}`,
		"Incluye exactamente 5 cajas.",
		"Las respuestas deben tener como máximo una oración.",
	)
}

func Anagram(p Params) string {
	return render(p,
		"elige palabras clave del tema para un juego de anagramas.",
		`{
  "title": "Título del juego",
  "words": [
    {
      "word": "PALABRA",
      "hint": "Pista que ayuda a adivinar la palabra"
    }
  ]
}`,
		"Incluye al menos 5 palabras.",
		"Cada palabra es una sola palabra, sin espacios.",
		"La pista no contiene la palabra.",
	)
}

func Mnemonic(p Params) string {
	return render(p,
		"crea reglas mnemotécnicas para recordar los conceptos principales del tema.",
		`{
  "title": "Título del conjunto",
  "items": [
    {
      "concept": "Concepto a recordar",
      "mnemonic": "Frase, acrónimo o rima para recordarlo",
      "explanation": "Cómo se usa la regla"
    }
  ]
}`,
		"Incluye exactamente 4 reglas.",
		"Cada regla debe ser fácil de memorizar y estar relacionada con su concepto.",
	)
}

func CoursePresentation(p Params) string {
	return render(p,
		"prepara una presentación de clase sobre el tema.",
		`{
  "title": "Título de la presentación",
  "slides": [
    {
      "title": "Título de la diapositiva",
      "content": "Texto explicativo de la diapositiva"
    }
  ]
}`,
		"Incluye exactamente 5 diapositivas.",
		"La primera diapositiva introduce el tema y la última lo resume.",
		"Cada diapositiva tiene entre 2 y 4 oraciones.",
	)
}

func AccordionNotes(p Params) string {
	return render(p,
		"redacta apuntes de estudio organizados en secciones desplegables.",
		`{
  "title": "Título de los apuntes",
  "sections": [
    {
      "title": "Título de la sección",
      "content": "Explicación de la sección"
    }
  ]
}`,
		"Incluye exactamente 5 secciones.",
		"Cada sección trata un aspecto distinto del tema.",
		"Cada sección tiene entre 3 y 6 oraciones.",
	)
}
