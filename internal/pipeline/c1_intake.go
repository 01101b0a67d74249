// Package pipeline implements the row-level canonicalization stages C1
// through C9. Each stage is a pure function of its input plus the
// reference snapshot; none retains state across rows.
package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"canonpipe/internal/normalize"
	t "canonpipe/internal/types"
)

// IntakeResult is C1's output: either an accepted row or a rejection.
type IntakeResult struct {
	Accepted bool
	Record   t.CanonicalRecord
	Reject   Code
}

type Code = t.Code

var sectionHeaderColon = regexp.MustCompile(`:\s*$`)

// Intake runs §4.1: whitespace/unicode cleanup, required-field checks, the
// section-header heuristic, and idempotency-key computation. Dedup against
// already-seen keys is the caller's responsibility (seen is supplied so
// intake stays a pure function).
func Intake(row t.InputRow, seen map[string]bool) IntakeResult {
	text := cleanText(row.OriginalText)
	recipeID := strings.TrimSpace(row.RecipeID)

	if recipeID == "" || text == "" {
		return IntakeResult{Reject: t.CodeMissingRequiredField}
	}
	if row.IngredientLineNo < 1 {
		return IntakeResult{Reject: t.CodeTypeMismatch}
	}
	if isSectionHeader(text) {
		return IntakeResult{Reject: t.CodeSectionHeaderRow}
	}
	if unit := strings.TrimSpace(row.UnitOriginal); unit != "" && looksMalformed(unit) {
		return IntakeResult{Reject: t.CodeUnitInvalidFormat}
	}

	key := idempotencyKey(recipeID, row.IngredientLineNo, row.LineHash, text)
	if seen[key] {
		return IntakeResult{Accepted: false}
	}

	rec := t.CanonicalRecord{
		RecipeID:       recipeID,
		LineNumber:     row.IngredientLineNo,
		OriginalText:   text,
		IdempotencyKey: key,
	}
	return IntakeResult{Accepted: true, Record: rec}
}

func cleanText(s string) string {
	return normalize.CollapseWhitespace(normalize.NFCFold(s))
}

// isSectionHeader implements the §4.1 heuristic: a short bare noun phrase
// with no digits that either ends with ":" or is all caps.
func isSectionHeader(text string) bool {
	if text == "" {
		return false
	}
	if containsDigit(text) {
		return false
	}
	words := strings.Fields(text)
	if len(words) == 0 || len(words) > 5 {
		return false
	}
	if sectionHeaderColon.MatchString(text) {
		return true
	}
	return isAllCaps(text)
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func isAllCaps(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}

// looksMalformed flags structurally malformed unit tokens: mixed
// alphanumeric noise such as "g2x" or "1kg3".
func looksMalformed(unit string) bool {
	hasLetter, hasDigit := false, false
	for _, r := range unit {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

// idempotencyKey computes H(recipe_id, line_number, line_hash|original_text)
// per §3/§4.1/Glossary.
func idempotencyKey(recipeID string, lineNo int, lineHash, originalText string) string {
	disambiguator := strings.TrimSpace(lineHash)
	if disambiguator == "" {
		disambiguator = originalText
	}
	h := sha256.New()
	h.Write([]byte(recipeID))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(lineNo)))
	h.Write([]byte{0})
	h.Write([]byte(disambiguator))
	return hex.EncodeToString(h.Sum(nil))
}

// SequenceGaps implements the non-blocking SEQUENCE_GAP warning (§4.1):
// for a recipe's observed line numbers, report whether {1..max} has holes.
func SequenceGaps(lineNumbers []int) bool {
	if len(lineNumbers) == 0 {
		return false
	}
	max := lineNumbers[0]
	seen := make(map[int]bool, len(lineNumbers))
	for _, n := range lineNumbers {
		seen[n] = true
		if n > max {
			max = n
		}
	}
	for i := 1; i <= max; i++ {
		if !seen[i] {
			return true
		}
	}
	return false
}
