package types

import "time"

// Ingredient is a read-only reference entity (§3).
type Ingredient struct {
	ID            string
	PrimaryName   string
	Aliases       []string
	Category      string
	DefaultFormID string
	Flags         map[string]bool

	// FormTokenOverrides is the P1 per-ingredient token->form_id override
	// map (§4.6), taking precedence over the global token map.
	FormTokenOverrides map[string]string
}

// Form is a read-only reference entity (§3).
type Form struct {
	ID                   string
	Name                 string
	Group                string
	TargetDimension      TargetDimension
	DisplayRuleDefault   string
}

// Density is a read-only reference entity (§3).
type Density struct {
	ID              string
	IngredientID    string
	FormID          string
	GPerML          float64
	PackedState     PackedState
	TempC           *float64
	SourcePriority  int
	QualityScore    float64
	EffectiveFrom   *time.Time
	EffectiveTo     *time.Time
	IsActive        bool
}

// CoversDate reports whether d falls within the density's effective window.
// A nil bound is treated as open-ended on that side (§4.8 "active rows
// whose effective window covers today").
func (d Density) CoversDate(date time.Time) bool {
	if !d.IsActive {
		return false
	}
	if d.EffectiveFrom != nil && date.Before(*d.EffectiveFrom) {
		return false
	}
	if d.EffectiveTo != nil && date.After(*d.EffectiveTo) {
		return false
	}
	return true
}

// UnitConstants is the closed set of conversion tables and token lookups
// described in §3/§4.9.
type UnitConstants struct {
	MassToG    map[UnitEnum]float64
	VolumeToML map[UnitEnum]float64
	Synonyms   map[string]UnitEnum // lowercased raw token -> UnitEnum
	AllowList  map[string]bool     // meaning-carrying tokens for matching

	// GlobalFormTokens is the P2 token->form_id map (§4.6), tried after
	// per-ingredient overrides and before the unit-bias heuristic.
	GlobalFormTokens map[string]string
	// CategoryDefaultForm is the P5 category->form_id fallback (§4.6).
	CategoryDefaultForm map[string]string
	// VolumeUnitDryFormBias is the P3 unit-bias heuristic (§4.6): volume
	// units hinting at a ground/powder form for ingredients whose form set
	// supports it; the ingredient's category or dryness is not checked.
	VolumeUnitDryFormBias map[UnitEnum]string
}
