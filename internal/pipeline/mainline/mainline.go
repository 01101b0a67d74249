// Package mainline threads one accepted row through C2...C9 in order,
// assembling the append-only CanonicalRecord. It never re-interprets a
// stage's output; it only calls stages in sequence and stops early on
// terminal conditions (§5 "pure per-row").
package mainline

import (
	"time"

	"canonpipe/internal/pipeline"
	"canonpipe/internal/refdata"
	t "canonpipe/internal/types"
)

// Config carries the tunables that flow from process configuration into
// the per-row stages (§A.1).
type Config struct {
	LinkThresholds pipeline.LinkThresholds
	DensityBand    pipeline.DensityBand
	Today          time.Time
}

// Run executes C2 through C9 for one accepted row, given the intake
// record produced by C1.
func Run(rec t.CanonicalRecord, row t.InputRow, snap *refdata.Snapshot, cfg Config) t.CanonicalRecord {
	rec.Quantity = pipeline.Quantity(row.QtyValueOriginal)
	for _, w := range rec.Quantity.ParseWarnings {
		rec.AddWarning(w)
	}

	hasQty := rec.Quantity.Min != nil
	rec.Unit = pipeline.Unit(row.UnitOriginal, hasQty, snap.Constants().Synonyms)

	rec.Package = pipeline.Package(row.PackageSizeRaw, row.OriginalText)
	for _, w := range rec.Package.ParseWarnings {
		rec.AddWarning(w)
	}

	rec.Link = pipeline.Link(row.OriginalText, snap, cfg.LinkThresholds)
	switch rec.Link.Method {
	case t.LinkReview:
		rec.AddWarning(t.CodeLowConfidence)
	case t.LinkUnresolved:
		rec.Fail(rec.Link.UnresolvedReason)
		return rec
	}

	ing, _ := snap.Ingredient(rec.Link.IngredientID)
	rec.Form = pipeline.Form(row.FormHintRaw, row.ModifiersRaw, row.OriginalText, ing, rec.Unit, snap)
	if rec.Form.UnresolvedReason != "" {
		rec.AddWarning(rec.Form.UnresolvedReason)
	}

	targetDim := t.TargetDimAuto
	if rec.Form.ResolvedFormID != "" {
		if f, ok := snap.FormGet(rec.Form.ResolvedFormID); ok {
			targetDim = f.TargetDimension
		}
	}
	rec.Canonical = pipeline.Dimension(rec.Unit.OriginalDimension, targetDim)

	if rec.Canonical.DimensionSelected == t.DimSpecial {
		// §4.7: terminate before bridging/conversion; no canonical numbers,
		// no failure code — this is a documented non-convertible dimension.
		return rec
	}

	bridgeReady := true
	if rec.Canonical.BridgeRequired != t.BridgeNone {
		packedHint := pipeline.DetectPackedHint(row.ModifiersRaw)
		rec.Density = pipeline.DensityBridge(rec.Link.IngredientID, rec.Form.ResolvedFormID, packedHint, cfg.Today, cfg.DensityBand, snap)
		for _, w := range rec.Density.Warnings {
			rec.AddWarning(w)
		}
		bridgeReady = pipeline.BridgeInputsReady(rec.Density)
		rec.Canonical.BridgeInputsReady = bridgeReady
		if !bridgeReady {
			if hasWarning(rec.Density.Warnings, t.CodeSanityRangeEdge) {
				rec.Fail(t.CodeSanityRangeEdge)
			} else {
				rec.Fail(t.CodeNeedsDensityLookup)
			}
			return rec
		}
	} else {
		rec.Canonical.BridgeInputsReady = true
	}

	rec.Converted = pipeline.Convert(rec.Canonical, rec.Unit.UnitEnum, rec.Quantity, rec.Density, bridgeReady, snap.Constants())
	if rec.Converted.Path == "" && rec.Converted.Notes != nil {
		rec.Fail(t.CodeInternalConversionError)
	}
	return rec
}

func hasWarning(codes []t.Code, target t.Code) bool {
	for _, c := range codes {
		if c == target {
			return true
		}
	}
	return false
}
