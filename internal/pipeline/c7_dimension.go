package pipeline

import t "canonpipe/internal/types"

// Dimension runs §4.7's canonical dimension decision table. "auto" means
// preserve the original dimension; an auto form on a special-dimension row
// terminates before bridging (§9 Open Question #3).
func Dimension(originalDim t.Dimension, targetDim t.TargetDimension) t.Canonical {
	switch originalDim {
	case t.DimCount:
		return t.Canonical{Unit: t.CanonicalEA, DimensionSelected: t.DimCount, BridgeRequired: t.BridgeNone}
	case t.DimSpecial:
		return t.Canonical{DimensionSelected: t.DimSpecial, BridgeRequired: t.BridgeNone}
	case t.DimMass:
		switch effectiveTarget(originalDim, targetDim) {
		case t.TargetDimVolume:
			return t.Canonical{Unit: t.CanonicalML, DimensionSelected: t.DimMass, BridgeRequired: t.BridgeMassToVol}
		default:
			return t.Canonical{Unit: t.CanonicalG, DimensionSelected: t.DimMass, BridgeRequired: t.BridgeNone}
		}
	case t.DimVolume:
		switch effectiveTarget(originalDim, targetDim) {
		case t.TargetDimMass:
			return t.Canonical{Unit: t.CanonicalG, DimensionSelected: t.DimVolume, BridgeRequired: t.BridgeVolToMass}
		default:
			return t.Canonical{Unit: t.CanonicalML, DimensionSelected: t.DimVolume, BridgeRequired: t.BridgeNone}
		}
	default:
		return t.Canonical{}
	}
}

// effectiveTarget resolves "auto" to the original dimension's own natural
// target (§4.7 "auto means preserve original dimension").
func effectiveTarget(originalDim t.Dimension, targetDim t.TargetDimension) t.TargetDimension {
	if targetDim == t.TargetDimAuto || targetDim == "" {
		if originalDim == t.DimMass {
			return t.TargetDimMass
		}
		if originalDim == t.DimVolume {
			return t.TargetDimVolume
		}
		return t.TargetDimAuto
	}
	return targetDim
}
