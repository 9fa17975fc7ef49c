// Package extract recovers a JSON document embedded in free-form model output.
//
// Model output is wrapped in prose, fenced as a code block, or slightly malformed
// (trailing commas, typographic quotes, double-escaped strings). Extract isolates the
// first balanced object and retries parsing after progressively more invasive repairs.
package extract

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/eduforge/internal/jsonval"
)

// ErrExtraction is returned when no parseable document can be recovered.
var ErrExtraction = errors.New("no parseable json in completion")

var (
	leadingFence  = regexp.MustCompile("^```[A-Za-z0-9_-]*[ \t]*\r?\n?")
	trailingFence = regexp.MustCompile("\r?\n?[ \t]*```$")
	trailingComma = regexp.MustCompile(`,\s*([}\]])`)

	smartQuotes = strings.NewReplacer(
		"“", `"`, "”", `"`, "„", `"`, "‟", `"`,
		"‘", "'", "’", "'", "‚", "'", "‛", "'",
	)
	escapeUnifier = strings.NewReplacer(
		`\"`, `"`,
		`\/`, `/`,
		`\r\n`, " ",
		`\n`, " ",
		`\t`, " ",
	)
)

// Extract parses the first JSON object found in text.
func Extract(text string) (jsonval.Value, error) {
	candidate := Candidate(text)

	v, err := parse(candidate)
	if err == nil {
		return v, nil
	}
	firstErr := err

	repaired := repairCosmetic(candidate)
	if v, err = parse(repaired); err == nil {
		log.Debug().Msg("json recovered after cosmetic repair")
		return v, nil
	}

	repaired = repairEscapes(repaired)
	if v, err = parse(repaired); err == nil {
		log.Debug().Msg("json recovered after escape repair")
		return v, nil
	}

	return jsonval.Value{}, fmt.Errorf("%w: %v", ErrExtraction, firstErr)
}

// Candidate returns the substring Extract will try to parse: the first balanced
// {...} block, or the whole fence-stripped text when no block balances.
func Candidate(text string) string {
	s := stripFences(text)

	start := strings.IndexByte(s, '{')
	if start < 0 {
		return s
	}
	if end := matchingBrace(s, start); end >= 0 {
		return s[start : end+1]
	}
	return s
}

func stripFences(text string) string {
	s := strings.TrimSpace(text)
	s = leadingFence.ReplaceAllString(s, "")
	s = trailingFence.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// matchingBrace returns the index of the brace closing the one at start, treating
// quoted strings as opaque. It returns -1 when the text ends first.
func matchingBrace(s string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func repairCosmetic(s string) string {
	s = trailingComma.ReplaceAllString(s, "$1")
	return smartQuotes.Replace(s)
}

func repairEscapes(s string) string {
	return escapeUnifier.Replace(s)
}

func parse(s string) (jsonval.Value, error) {
	var out any
	if err := sonic.ConfigStd.UnmarshalFromString(s, &out); err != nil {
		return jsonval.Value{}, err
	}
	return jsonval.FromAny(out), nil
}
