// Package normalize holds the small set of text-normalization primitives
// shared by intake (C1), the ingredient linker (C5), and the form resolver
// (C6): whitespace/unicode cleanup, punctuation folding, naive plural
// stripping, and tokenization against the meaning-carrying allow-list.
//
// NFC normalization and case folding are delegated to
// golang.org/x/text/unicode/norm and golang.org/x/text/cases, the same
// packages aretext's menu/fuzzy index (NFC) and state/search.go
// (case-insensitive search via cases.Lower) use for identical concerns;
// only the plural-stripping and culinary punctuation-folding logic below
// stays hand-rolled, since no pack repo carries a stemming library for that.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// CollapseWhitespace trims and collapses runs of Unicode whitespace into a
// single ASCII space (§4.1 "trim and collapse whitespace").
func CollapseWhitespace(s string) string {
	var b strings.Builder
	lastSpace := false
	for _, r := range strings.TrimSpace(s) {
		if unicode.IsSpace(r) {
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
			continue
		}
		lastSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// NFCFold applies Unicode NFC normalization (via golang.org/x/text/unicode/norm,
// the same table aretext's menu/fuzzy.Index and state.transformerForSearch use)
// and then maps compatibility punctuation (curly quotes, non-breaking spaces,
// fraction slash) to its ASCII equivalent so downstream regexes match
// consistently (§4.1 "NFC unicode normalization").
func NFCFold(s string) string {
	s = norm.NFC.String(s)
	replacer := strings.NewReplacer(
		" ", " ", // nbsp
		"‘", "'", "’", "'",
		"“", "\"", "”", "\"",
		"⁄", "/", // fraction slash
		"–", "-", "—", "-", // en/em dash
	)
	return replacer.Replace(s)
}

// lowerCaser is the same cases.Lower(language.Und) transform aretext's
// state.transformerForSearch uses for case-insensitive matching.
var lowerCaser = cases.Lower(language.Und)

// foldCase lowercases s via golang.org/x/text/cases instead of strings.ToLower,
// so multi-byte casing goes through the same Unicode case tables as NFCFold
// above rather than ASCII-only stdlib rules.
func foldCase(s string) string {
	out, _, err := transform.String(lowerCaser, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// FoldPunctuation lowercases s and strips punctuation that carries no
// matching signal, collapsing the result to single spaces (§4.5 "cand_norm
// ... punctuation folded").
func FoldPunctuation(s string) string {
	s = foldCase(s)
	var b strings.Builder
	lastSpace := true
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// Singularize applies a conservative plural-stripping heuristic (§4.5
// "plural forms normalized"). It only strips a trailing "es"/"s" when doing
// so looks safe, never touching short words or words already ending in
// "ss".
func Singularize(word string) string {
	w := word
	switch {
	case strings.HasSuffix(w, "ies") && len(w) > 4:
		return w[:len(w)-3] + "y"
	case strings.HasSuffix(w, "ses") && len(w) > 4:
		return w[:len(w)-2]
	case strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss") && len(w) > 3:
		return w[:len(w)-1]
	default:
		return w
	}
}

// Tokenize splits folded text on spaces into singularized tokens.
func Tokenize(folded string) []string {
	if folded == "" {
		return nil
	}
	parts := strings.Fields(folded)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, Singularize(p))
	}
	return out
}

// KeepMeaningTokens filters tokens down to the ones present in allowList
// (§4.5/§4.6 "meaning-carrying token"), preserving order and dropping
// duplicates.
func KeepMeaningTokens(tokens []string, allowList map[string]bool) []string {
	seen := make(map[string]bool, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if !allowList[t] || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// TokenSet turns a token slice into a set for Jaccard comparison.
func TokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// Jaccard computes |A∩B| / |A∪B| over two token sets; an empty union scores 0.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for k := range a {
		if _, ok := b[k]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
