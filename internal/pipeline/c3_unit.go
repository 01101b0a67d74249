package pipeline

import (
	"regexp"
	"strings"

	t "canonpipe/internal/types"
)

var reFluidOz = regexp.MustCompile(`(?i)^(fl\.?\s*oz\.?|fluid\s+ounces?)$`)

// Unit runs §4.3: lowercase/trim/strip-trailing-periods/collapse whitespace,
// detect fluid ounce before mass ounce, map through the synonym table, and
// classify dimension. An empty token with a present numeric quantity
// defaults to EA (count); an empty token with no quantity stays null.
func Unit(raw string, hasQuantity bool, synonyms map[string]t.UnitEnum) t.NormalizedUnit {
	token := normalizeUnitToken(raw)
	if token == "" {
		if hasQuantity {
			return t.NormalizedUnit{UnitEnum: t.UnitEA, OriginalDimension: t.DimCount}
		}
		return t.NormalizedUnit{}
	}

	if reFluidOz.MatchString(token) {
		return t.NormalizedUnit{UnitEnum: t.UnitFLOZ, OriginalDimension: t.DimVolume}
	}

	enum, ok := synonyms[token]
	if !ok {
		return t.NormalizedUnit{FlagNonstandardUnit: true}
	}
	return t.NormalizedUnit{UnitEnum: enum, OriginalDimension: dimensionOf(enum)}
}

func normalizeUnitToken(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.TrimRight(s, ".")
	s = strings.Join(strings.Fields(s), " ")
	return s
}

func dimensionOf(u t.UnitEnum) t.Dimension {
	switch u {
	case t.UnitMG, t.UnitG, t.UnitKG, t.UnitOZ, t.UnitLB:
		return t.DimMass
	case t.UnitTSP, t.UnitTBSP, t.UnitFLOZ, t.UnitCUP, t.UnitPINT, t.UnitQUART, t.UnitGALLON, t.UnitML, t.UnitL:
		return t.DimVolume
	case t.UnitEA, t.UnitEGG, t.UnitCLOVE, t.UnitSLICE, t.UnitPIECE:
		return t.DimCount
	case t.UnitToTaste, t.UnitPinch, t.UnitDash:
		return t.DimSpecial
	default:
		return t.DimNone
	}
}
