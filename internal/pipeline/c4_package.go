package pipeline

import (
	"regexp"
	"strconv"
	"strings"

	t "canonpipe/internal/types"
)

const sizeUnitGroup = `(fl\.?\s*oz\.?|oz|kg|g|ml|l)`

var (
	reMultiplierX     = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*[x×]\s*(\d+(?:\.\d+)?)\s*` + sizeUnitGroup + `\b`)
	reMultiplierParen = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*\([^()]*?(\d+(?:\.\d+)?)\s*` + sizeUnitGroup + `\b[^()]*?\)`)
	reSizeParen       = regexp.MustCompile(`(?i)\(\s*(\d+(?:\.\d+)?)\s*` + sizeUnitGroup + `\s*\)`)
	reSizeDash        = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*-\s*` + sizeUnitGroup + `\b`)
	reSizePlain       = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*` + sizeUnitGroup + `\b`)

	liquidIndicators = []string{"milk", "juice", "water", "cream", "oil", "broth", "stock", "liquid", "wine", "vinegar"}
)

// Package runs §4.4: extracts package multiplier and size metadata from
// package_size_raw concatenated with the original text. Never touches
// quantity or unit fields — this is metadata for downstream consumers.
func Package(packageSizeRaw, originalText string) t.Package {
	hay := strings.ToLower(strings.Join(strings.Fields(packageSizeRaw+" "+originalText), " "))
	pkg := t.Package{Multiplier: 1.0}

	if m := reMultiplierX.FindStringSubmatch(hay); m != nil {
		applyMultiplier(&pkg, m[1], m[2], m[3])
	} else if m := reMultiplierParen.FindStringSubmatch(hay); m != nil {
		applyMultiplier(&pkg, m[1], m[2], m[3])
	}

	if pkg.SizeValue == nil {
		if m := reSizeParen.FindStringSubmatch(hay); m != nil {
			applySize(&pkg, m[1], m[2])
		} else if m := reSizeDash.FindStringSubmatch(hay); m != nil {
			applySize(&pkg, m[1], m[2])
		} else if m := reSizePlain.FindStringSubmatch(hay); m != nil {
			applySize(&pkg, m[1], m[2])
		}
	}

	if pkg.Multiplier != 1.0 {
		pkg.ParseWarnings = append(pkg.ParseWarnings, t.CodeMultiplierFound)
	}
	if pkg.SizeValue == nil {
		pkg.ParseWarnings = append(pkg.ParseWarnings, t.CodeNoPackageSizeFound)
	}
	if isAmbiguousOzLiquid(pkg, hay) {
		pkg.ParseWarnings = append(pkg.ParseWarnings, t.CodeAmbiguousOzLiquid)
	}
	return pkg
}

func applyMultiplier(pkg *t.Package, multRaw, sizeRaw, unitRaw string) {
	mult, err := strconv.ParseFloat(multRaw, 64)
	if err != nil || mult <= 0 {
		return
	}
	pkg.Multiplier = mult
	applySize(pkg, sizeRaw, unitRaw)
}

func applySize(pkg *t.Package, sizeRaw, unitRaw string) {
	val, err := strconv.ParseFloat(sizeRaw, 64)
	if err != nil {
		return
	}
	unit := packageSizeUnit(unitRaw)
	if unit == "" {
		return
	}
	pkg.SizeValue = &val
	pkg.SizeUnit = unit
	siVal, siUnit := siMirror(val, unit)
	pkg.SizeSIValue = &siVal
	pkg.SizeSIUnit = siUnit
}

func packageSizeUnit(raw string) t.UnitEnum {
	normalized := strings.Join(strings.Fields(strings.ToLower(raw)), " ")
	normalized = strings.TrimSuffix(normalized, ".")
	switch {
	case strings.Contains(normalized, "fl"):
		return t.UnitFLOZ
	case normalized == "oz":
		return t.UnitOZ
	case normalized == "kg":
		return t.UnitKG
	case normalized == "g":
		return t.UnitG
	case normalized == "ml":
		return t.UnitML
	case normalized == "l":
		return t.UnitL
	default:
		return ""
	}
}

// siMirror converts a package size into its SI mirror (§4.4): OZ->g via
// 28.349523125, FLOZ->mL via 29.5735295625, KG->x1000 g, L->x1000 mL.
func siMirror(val float64, unit t.UnitEnum) (float64, string) {
	switch unit {
	case t.UnitOZ:
		return val * 28.349523125, "G"
	case t.UnitFLOZ:
		return val * 29.5735295625, "ML"
	case t.UnitKG:
		return val * 1000, "G"
	case t.UnitL:
		return val * 1000, "ML"
	case t.UnitG:
		return val, "G"
	case t.UnitML:
		return val, "ML"
	default:
		return 0, ""
	}
}

func isAmbiguousOzLiquid(pkg t.Package, hay string) bool {
	if pkg.SizeUnit != t.UnitOZ {
		return false
	}
	for _, word := range liquidIndicators {
		if strings.Contains(hay, word) {
			return true
		}
	}
	return false
}
