package generator

import (
	"strings"

	"github.com/tensorplex-labs/eduforge/internal/prompts"
)

// Request describes what to generate. Fields are free text.
type Request struct {
	Subject    string `json:"subject"`
	Topic      string `json:"topic"`
	Level      string `json:"level"`
	Difficulty string `json:"difficulty"`
}

// DefaultRequest holds the substitutions applied to empty level and difficulty fields.
var DefaultRequest = Request{
	Level:      "Secundaria",
	Difficulty: "Intermedio",
}

func (r Request) withDefaults(d Request) Request {
	out := Request{
		Subject:    strings.TrimSpace(r.Subject),
		Topic:      strings.TrimSpace(r.Topic),
		Level:      strings.TrimSpace(r.Level),
		Difficulty: strings.TrimSpace(r.Difficulty),
	}
	if out.Subject == "" {
		out.Subject = d.Subject
	}
	if out.Topic == "" {
		out.Topic = d.Topic
	}
	if out.Level == "" {
		out.Level = d.Level
	}
	if out.Difficulty == "" {
		out.Difficulty = d.Difficulty
	}
	return out
}

func (r Request) params() prompts.Params {
	return prompts.Params{
		Subject:    r.Subject,
		Topic:      r.Topic,
		Level:      r.Level,
		Difficulty: r.Difficulty,
	}
}
