package pipeline

import (
	"math"

	t "canonpipe/internal/types"
)

const snapEpsilon = 1e-9

// Convert runs §4.9's final arithmetic. If canonical.BridgeRequired is set
// but bridgeInputsReady is false, no canonical numeric fields are written,
// preserving the earlier bridge_inputs_ready=false (§3 invariant 2).
func Convert(canonical t.Canonical, unit t.UnitEnum, qty t.Quantity, density t.DensityResolution, bridgeInputsReady bool, constants t.UnitConstants) t.Converted {
	if canonical.Unit == "" || qty.Min == nil || qty.Max == nil {
		return t.Converted{}
	}
	if canonical.BridgeRequired != t.BridgeNone && !bridgeInputsReady {
		return t.Converted{}
	}

	factor, path, ok := conversionFactor(canonical, unit, density, constants)
	if !ok {
		return t.Converted{Path: t.ConversionNone, Notes: []string{"INTERNAL_CONVERSION_ERROR"}}
	}

	min := snap(*qty.Min * factor)
	max := snap(*qty.Max * factor)
	mid := snap((min + max) / 2)
	return t.Converted{QtyMin: &min, QtyMax: &max, Qty: &mid, Path: path}
}

func conversionFactor(canonical t.Canonical, unit t.UnitEnum, density t.DensityResolution, constants t.UnitConstants) (float64, t.ConversionPath, bool) {
	switch {
	case canonical.Unit == t.CanonicalEA:
		return 1, t.ConversionCount, true
	case canonical.Unit == t.CanonicalG && canonical.BridgeRequired == t.BridgeNone:
		f, ok := constants.MassToG[unit]
		return f, t.ConversionMassToMass, ok
	case canonical.Unit == t.CanonicalML && canonical.BridgeRequired == t.BridgeNone:
		f, ok := constants.VolumeToML[unit]
		return f, t.ConversionVolToVol, ok
	case canonical.Unit == t.CanonicalG && canonical.BridgeRequired == t.BridgeVolToMass:
		f, ok := constants.VolumeToML[unit]
		if !ok || density.GPerML <= 0 {
			return 0, "", false
		}
		return f * density.GPerML, t.ConversionVolToMassDens, true
	case canonical.Unit == t.CanonicalML && canonical.BridgeRequired == t.BridgeMassToVol:
		f, ok := constants.MassToG[unit]
		if !ok || density.GPerML <= 0 {
			return 0, "", false
		}
		return f / density.GPerML, t.ConversionMassToVolDens, true
	default:
		return 0, "", false
	}
}

// snap rounds floating-point residue below 1e-9 to eliminate arithmetic
// noise, per §4.9 ("floating-point residue below 1e-9 is snapped").
func snap(v float64) float64 {
	rounded := math.Round(v)
	if math.Abs(v-rounded) < snapEpsilon {
		return rounded
	}
	return v
}
