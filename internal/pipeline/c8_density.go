package pipeline

import (
	"sort"
	"strings"
	"time"

	"canonpipe/internal/refdata"
	t "canonpipe/internal/types"
)

// DensityBand is the configurable plausibility band for §4.8's sanity
// check (§A.1 CANON_DENSITY_BAND_MIN/MAX, §9 Open Question #1).
type DensityBand struct {
	Min float64
	Max float64
}

func (b DensityBand) orDefaults() DensityBand {
	out := b
	if out.Min <= 0 && out.Max <= 0 {
		out.Min, out.Max = 0.05, 2.0
	}
	return out
}

// DetectPackedHint scans modifier text for the "packed"/"loosely packed"
// hint (§4.8).
func DetectPackedHint(modifiersRaw string) t.PackedState {
	lower := strings.ToLower(modifiersRaw)
	switch {
	case strings.Contains(lower, "loosely packed") || strings.Contains(lower, "loosely"):
		return t.PackedStateLoose
	case strings.Contains(lower, "packed"):
		return t.PackedStatePacked
	default:
		return t.PackedStateNone
	}
}

// DensityBridge runs §4.8's five-tier cascade with early exit and
// deterministic in-tier ranking.
func DensityBridge(ingredientID, resolvedFormID string, packedHint t.PackedState, today time.Time, band DensityBand, snap *refdata.Snapshot) t.DensityResolution {
	band = band.orDefaults()

	path, candidates := findDensityTier(ingredientID, resolvedFormID, packedHint, today, snap)
	if len(candidates) == 0 {
		return t.DensityResolution{SelectionPath: t.H0NoDensity, Warnings: []t.Code{t.CodeNeedsDensityLookup}}
	}

	chosen := rankDensities(candidates)[0]
	out := t.DensityResolution{DensityID: chosen.ID, GPerML: chosen.GPerML, SelectionPath: path}

	if chosen.GPerML < band.Min || chosen.GPerML > band.Max {
		out.Warnings = append(out.Warnings, t.CodeSanityRangeEdge)
	}
	if packedHint != t.PackedStateNone && chosen.PackedState != t.PackedStateNone && chosen.PackedState != packedHint {
		out.Warnings = append(out.Warnings, t.CodePackedStateMismatch)
	}
	if chosen.TempC != nil {
		delta := *chosen.TempC - 20
		if delta < 0 {
			delta = -delta
		}
		if delta > 10 {
			out.Warnings = append(out.Warnings, t.CodeTempMismatch)
		}
	}
	return out
}

// BridgeInputsReady reports §3 invariant 2: a bridged canonical value may
// only be emitted when a positive density was found and it passed the
// range sanity check.
func BridgeInputsReady(d t.DensityResolution) bool {
	if d.GPerML <= 0 {
		return false
	}
	for _, w := range d.Warnings {
		if w == t.CodeSanityRangeEdge {
			return false
		}
	}
	return true
}

func findDensityTier(ingredientID, resolvedFormID string, packedHint t.PackedState, today time.Time, snap *refdata.Snapshot) (t.BridgeSelectionPath, []t.Density) {
	if resolvedFormID != "" && packedHint != t.PackedStateNone {
		if found := snap.DensitiesFind(today, func(d t.Density) bool {
			return d.IngredientID == ingredientID && d.FormID == resolvedFormID && d.PackedState == packedHint
		}); len(found) > 0 {
			return t.H1ExactFormPacked, found
		}
	}
	if resolvedFormID != "" {
		if found := snap.DensitiesFind(today, func(d t.Density) bool {
			return d.IngredientID == ingredientID && d.FormID == resolvedFormID
		}); len(found) > 0 {
			return t.H2ExactForm, found
		}
		if group, ok := snap.FormGroup(resolvedFormID); ok {
			if found := snap.DensitiesFind(today, func(d t.Density) bool {
				return d.IngredientID == ingredientID && group[d.FormID]
			}); len(found) > 0 {
				return t.H3FormGroup, found
			}
		}
	}
	if defaultFormID, ok := snap.FormDefaultFor(ingredientID); ok {
		if found := snap.DensitiesFind(today, func(d t.Density) bool {
			return d.IngredientID == ingredientID && d.FormID == defaultFormID
		}); len(found) > 0 {
			return t.H4DefaultForm, found
		}
	}
	if found := snap.DensitiesFind(today, func(d t.Density) bool {
		return d.IngredientID == ingredientID
	}); len(found) > 0 {
		return t.H5AnyForm, found
	}
	return t.H0NoDensity, nil
}

// rankDensities orders the final non-empty tier's candidates by (1) highest
// source_priority, (2) most recent effective_from, (3) highest
// quality_score, (4) lexicographic density_id — a fully deterministic
// tie-break (§4.8).
func rankDensities(candidates []t.Density) []t.Density {
	out := append([]t.Density(nil), candidates...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.SourcePriority != b.SourcePriority {
			return a.SourcePriority > b.SourcePriority
		}
		af, bf := effectiveFromOrZero(a), effectiveFromOrZero(b)
		if !af.Equal(bf) {
			return af.After(bf)
		}
		if a.QualityScore != b.QualityScore {
			return a.QualityScore > b.QualityScore
		}
		return a.ID < b.ID
	})
	return out
}

func effectiveFromOrZero(d t.Density) time.Time {
	if d.EffectiveFrom == nil {
		return time.Time{}
	}
	return *d.EffectiveFrom
}
