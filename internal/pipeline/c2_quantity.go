package pipeline

import (
	"regexp"
	"strconv"
	"strings"

	t "canonpipe/internal/types"
)

var (
	reThousands   = regexp.MustCompile(`(\d),(\d{3})`)
	reApproxWord  = regexp.MustCompile(`(?i)\b(about|approx|approximately|around|circa|c\.)\b`)
	reApproxMark  = regexp.MustCompile(`[~≈]`)
	reTrailPlus   = regexp.MustCompile(`\+\s*$`)
	reRangeSep    = regexp.MustCompile(`(?i)\s*(-|–|—|\bto\b)\s*`)
	reMixedSplit  = regexp.MustCompile(`^(\d+)[\s-](\d+/\d+)$`)
	reFraction    = regexp.MustCompile(`^(\d+)/(\d+)$`)
)

var unicodeFractions = map[rune]float64{
	'½': 1.0 / 2, '⅓': 1.0 / 3, '⅔': 2.0 / 3, '¼': 1.0 / 4, '¾': 3.0 / 4,
	'⅕': 1.0 / 5, '⅖': 2.0 / 5, '⅗': 3.0 / 5, '⅘': 4.0 / 5,
	'⅙': 1.0 / 6, '⅚': 5.0 / 6, '⅛': 1.0 / 8, '⅜': 3.0 / 8, '⅝': 5.0 / 8, '⅞': 7.0 / 8,
}

var textNumerals = map[string]float64{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"half": 0.5, "quarter": 0.25, "third": 1.0 / 3, "dozen": 12,
	"a": 1, "an": 1,
}

// Quantity runs §4.2: parses a free-text quantity string into the
// min/max/range/approx/precision sub-record. An empty string is valid and
// yields all nulls.
func Quantity(raw string) t.Quantity {
	s := strings.TrimSpace(raw)
	if s == "" {
		return t.Quantity{}
	}

	approx := reApproxMark.MatchString(s) || reApproxWord.MatchString(s) || reTrailPlus.MatchString(s)
	s = reApproxMark.ReplaceAllString(s, "")
	s = reApproxWord.ReplaceAllString(s, "")
	s = reTrailPlus.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)

	// "1-1/2" is a mixed number, not a range, even though "-" is also the
	// range separator; the mixed-number pattern (whole joined directly to a
	// fraction) takes precedence over range splitting.
	if reMixedSplit.MatchString(s) {
		val, precision, ok := parseScalar(s)
		if ok {
			min, max := val, val
			return t.Quantity{Min: &min, Max: &max, ApproxFlag: approx, PrecisionCode: precision}
		}
	}

	parts := splitRange(s)
	if len(parts) > 2 {
		return t.Quantity{
			ApproxFlag:    approx,
			PrecisionCode: t.PrecisionText,
			ParseWarnings: []t.Code{t.CodeMultipleRangeSeparators},
		}
	}
	if len(parts) == 2 {
		left, leftPrec, leftOK := parseScalar(parts[0])
		right, rightPrec, rightOK := parseScalar(parts[1])
		if !leftOK || !rightOK {
			return t.Quantity{
				ApproxFlag:    approx,
				PrecisionCode: t.PrecisionText,
				ParseWarnings: []t.Code{t.CodeQtyRangeSideInvalid},
			}
		}
		min, max := left, right
		if min > max {
			min, max = max, min
		}
		_ = leftPrec
		_ = rightPrec
		return t.Quantity{
			Min:           &min,
			Max:           &max,
			IsRange:       true,
			ApproxFlag:    approx,
			PrecisionCode: t.PrecisionRange,
		}
	}

	val, precision, ok := parseScalar(s)
	if !ok {
		return t.Quantity{
			ApproxFlag:    approx,
			PrecisionCode: t.PrecisionText,
			ParseWarnings: []t.Code{t.CodeNoNumericQuantity},
		}
	}
	min, max := val, val
	return t.Quantity{
		Min:           &min,
		Max:           &max,
		ApproxFlag:    approx,
		PrecisionCode: precision,
	}
}

// splitRange splits on "-", en/em dash, or case-insensitive "to" and drops
// empty sides, so a leading "-" yields a single part rather than a range.
func splitRange(s string) []string {
	if !reRangeSep.MatchString(s) {
		return []string{s}
	}
	raw := reRangeSep.Split(s, -1)
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseScalar parses one non-range token: integer, decimal, ASCII or
// Unicode fraction, mixed number, or a text numeral fallback.
func parseScalar(tok string) (float64, t.PrecisionCode, bool) {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return 0, "", false
	}

	if m := reMixedSplit.FindStringSubmatch(tok); m != nil {
		whole, err1 := strconv.ParseFloat(m[1], 64)
		frac, ok := parseFraction(m[2])
		if err1 == nil && ok {
			return whole + frac, t.PrecisionMixed, true
		}
	}

	if runes := []rune(tok); len(runes) >= 2 {
		last := runes[len(runes)-1]
		if f, ok := unicodeFractions[last]; ok {
			wholePart := strings.TrimSpace(string(runes[:len(runes)-1]))
			if wholePart == "" {
				return f, t.PrecisionFraction, true
			}
			if whole, err := strconv.ParseFloat(wholePart, 64); err == nil {
				return whole + f, t.PrecisionMixed, true
			}
		}
	}
	if f, ok := unicodeFractions[[]rune(tok)[0]]; ok && len([]rune(tok)) == 1 {
		return f, t.PrecisionFraction, true
	}

	if frac, ok := parseFraction(tok); ok {
		return frac, t.PrecisionFraction, true
	}

	cleaned := stripThousands(tok)
	if v, err := strconv.ParseFloat(cleaned, 64); err == nil {
		if strings.Contains(cleaned, ".") {
			return v, t.PrecisionDecimal, true
		}
		return v, t.PrecisionInteger, true
	}

	if v, ok := textNumerals[strings.ToLower(tok)]; ok {
		return v, t.PrecisionText, true
	}

	return 0, "", false
}

func parseFraction(tok string) (float64, bool) {
	m := reFraction.FindStringSubmatch(tok)
	if m == nil {
		return 0, false
	}
	num, err1 := strconv.ParseFloat(m[1], 64)
	den, err2 := strconv.ParseFloat(m[2], 64)
	if err1 != nil || err2 != nil || den == 0 {
		return 0, false
	}
	return num / den, true
}

// stripThousands removes a "," thousands separator only when it sits
// between a digit and at least three following digits (§4.2).
func stripThousands(s string) string {
	for reThousands.MatchString(s) {
		s = reThousands.ReplaceAllString(s, "$1$2")
	}
	return s
}
