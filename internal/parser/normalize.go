package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var multiSpaceRE = regexp.MustCompile(`\s+`)

// Normalise exposes the matcher's normalisation so frontends can index their
// vocabularies the same way resolved arguments come back.
func Normalise(raw string) string {
	return normaliseInput(raw)
}

func normaliseInput(raw string) string {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return ""
	}
	var b strings.Builder
	lastSpace := false
	for _, r := range raw {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '-' || r == '_' || r == '/' || r == '\'' {
			if !lastSpace {
				b.WriteByte(' ')
			}
			lastSpace = true
		}
	}
	return strings.TrimSpace(multiSpaceRE.ReplaceAllString(b.String(), " "))
}

func tokenise(normalised string) []string {
	if strings.TrimSpace(normalised) == "" {
		return nil
	}
	return strings.Fields(normalised)
}

// parseQuantityToken recognises the numeric shapes console commands take:
// bare signed integers (germ counts, step counts, kelvin deltas), a "k"
// suffix marking an explicit kelvin delta, and "all" for sweeps.
func parseQuantityToken(token string) *Quantity {
	token = strings.TrimSpace(strings.ToLower(token))
	if token == "" {
		return nil
	}
	if token == "all" {
		return &Quantity{Raw: token, N: -1, Unit: "all"}
	}
	if n, err := strconv.Atoi(token); err == nil {
		return &Quantity{Raw: token, N: n, Unit: "count"}
	}
	for _, suffix := range []string{"kelvin", "k"} {
		if strings.HasSuffix(token, suffix) {
			if v, err := strconv.Atoi(strings.TrimSuffix(token, suffix)); err == nil {
				return &Quantity{Raw: token, N: v, Unit: "kelvin"}
			}
		}
	}
	return nil
}

func isPronoun(token string) bool {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "it", "that", "them", "this", "those":
		return true
	default:
		return false
	}
}

// isStopWord reports filler tokens skipped while looking for a resolvable
// name, so "select the dust mite" and "go to the holding tank" both work.
func isStopWord(token string) bool {
	switch token {
	case "to", "the", "a", "an", "at", "on", "into", "up", "with":
		return true
	default:
		return false
	}
}

func mapUnit(token string) string {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "k", "kelvin":
		return "kelvin"
	case "c", "celsius", "centigrade":
		return "celsius"
	case "f", "fahrenheit":
		return "fahrenheit"
	default:
		return ""
	}
}
