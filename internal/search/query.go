package search

import (
	"strings"
	"unicode"
)

// MaxVariants caps how many ILIKE alternatives a single keyword turns into.
const MaxVariants = 6

type QueryContext struct {
	Original   string
	Normalized string
	Variants   []string
}

// NormalizeQuery lowercases, drops punctuation and collapses whitespace.
func NormalizeQuery(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	input = strings.ToLower(input)

	b := strings.Builder{}
	b.Grow(len(input))
	for _, r := range input {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '/':
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// ExpandQuery returns the normalized query followed by synonym variants. A
// leading phrase with synonyms is swapped out while the rest of the query is
// kept, so "backend jakarta" also yields "back end jakarta".
func ExpandQuery(normalized string) []string {
	normalized = strings.TrimSpace(normalized)
	if normalized == "" {
		return []string{}
	}

	out := make([]string, 0, MaxVariants)
	seen := make(map[string]struct{}, MaxVariants)
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	add(normalized)
	for _, syn := range GetSynonyms(normalized) {
		add(syn)
	}

	words := strings.Fields(normalized)
	tryPrefix := func(phrase string, rest []string) {
		restStr := strings.Join(rest, " ")
		for _, syn := range GetSynonyms(phrase) {
			add(syn + " " + restStr)
		}
	}
	if len(words) >= 2 {
		tryPrefix(words[0], words[1:])
	}
	if len(words) >= 3 {
		tryPrefix(words[0]+" "+words[1], words[2:])
	}

	if len(out) > MaxVariants {
		out = out[:MaxVariants]
	}
	return out
}

func ProcessQuery(input string) QueryContext {
	ctx := QueryContext{Original: input}
	ctx.Normalized = NormalizeQuery(input)
	ctx.Variants = ExpandQuery(ctx.Normalized)
	return ctx
}
