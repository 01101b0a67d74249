package types

// InputRow is one Stage-1 row (§3, §6). Optional pre-extracted fields are
// plain strings; absence is the empty string, not a separate bool, matching
// the upstream extractor's own shape.
type InputRow struct {
	RecipeID            string `json:"recipe_id"`
	IngredientLineNo     int    `json:"ingredient_line_number"`
	OriginalText         string `json:"ingredient_original_text"`
	QtyValueOriginal     string `json:"qty_value_original,omitempty"`
	UnitOriginal         string `json:"unit_original,omitempty"`
	PackageSizeRaw       string `json:"package_size_raw,omitempty"`
	FormHintRaw          string `json:"form_hint_raw,omitempty"`
	ModifiersRaw         string `json:"modifiers_raw,omitempty"`
	SizeDescriptorRaw    string `json:"size_descriptor_raw,omitempty"`
	LineHash             string `json:"line_hash,omitempty"`
}

// Quantity is the C2 output sub-record (§3, §4.2).
type Quantity struct {
	Min            *float64      `json:"qty_min"`
	Max            *float64      `json:"qty_max"`
	IsRange        bool          `json:"qty_is_range"`
	ApproxFlag     bool          `json:"qty_approx_flag"`
	PrecisionCode  PrecisionCode `json:"qty_precision_code"`
	ParseWarnings  []Code        `json:"qty_parse_warnings,omitempty"`
}

// NormalizedUnit is the C3 output sub-record (§3, §4.3).
type NormalizedUnit struct {
	UnitEnum            UnitEnum  `json:"unit_enum"`
	OriginalDimension   Dimension `json:"original_dimension"`
	FlagNonstandardUnit bool      `json:"flag_nonstandard_unit"`
}

// Package is the C4 output sub-record (§3, §4.4). Metadata only — never
// participates in canonical quantity arithmetic.
type Package struct {
	Multiplier      float64 `json:"package_multiplier"`
	SizeValue       *float64 `json:"package_size_value"`
	SizeUnit        UnitEnum `json:"package_size_unit,omitempty"`
	SizeSIValue     *float64 `json:"package_size_SI_value"`
	SizeSIUnit      string   `json:"package_size_SI_unit,omitempty"` // "G" | "ML" | ""
	ParseWarnings   []Code   `json:"package_parse_warnings,omitempty"`
}

// Link is the C5 output sub-record (§3, §4.5).
type Link struct {
	IngredientID       string     `json:"ingredient_id,omitempty"`
	IngredientName     string     `json:"ingredient_canonical_name,omitempty"`
	Confidence         float64    `json:"link_confidence"`
	Method             LinkMethod `json:"link_method"`
	Candidates         []LinkCandidate `json:"link_candidates,omitempty"`
	UnresolvedReason    Code       `json:"unresolved_reason,omitempty"`
}

// LinkCandidate is one review-tier candidate (§4.5 L3).
type LinkCandidate struct {
	IngredientID string  `json:"ingredient_id"`
	Name         string  `json:"name"`
	Score        float64 `json:"score"`
}

// FormResolution is the C6 output sub-record (§3, §4.6).
type FormResolution struct {
	ResolvedFormID  string     `json:"resolved_form_id,omitempty"`
	Source          FormSource `json:"form_source"`
	ConflictFlag    bool       `json:"form_conflict_flag"`
	UnresolvedReason Code      `json:"form_unresolved_reason,omitempty"`
}

// Canonical is the C7 output sub-record (§3, §4.7).
type Canonical struct {
	Unit               CanonicalUnit  `json:"canonical_unit"`
	DimensionSelected  Dimension      `json:"canonical_dimension_selected"`
	BridgeRequired     BridgeRequired `json:"bridge_required"`
	BridgeInputsReady  bool           `json:"bridge_inputs_ready"`
}

// DensityResolution is the C8 output sub-record (§3, §4.8).
type DensityResolution struct {
	DensityID       string              `json:"density_id,omitempty"`
	GPerML          float64             `json:"density_g_per_ml,omitempty"`
	SelectionPath   BridgeSelectionPath `json:"bridge_selection_path,omitempty"`
	Warnings        []Code              `json:"bridge_warning,omitempty"`
}

// Converted is the C9 output sub-record (§3, §4.9).
type Converted struct {
	QtyMin          *float64       `json:"canonical_qty_min"`
	QtyMax          *float64       `json:"canonical_qty_max"`
	Qty             *float64       `json:"canonical_qty"`
	Path            ConversionPath `json:"conversion_path,omitempty"`
	Notes           []string       `json:"conversion_notes,omitempty"`
}

// CanonicalRecord is the append-only output record of §3: identity and
// provenance fields plus one sub-record per pipeline stage. No stage ever
// mutates a field written by an earlier stage (invariant 6).
type CanonicalRecord struct {
	// Identity & provenance
	RecipeID       string `json:"recipe_id"`
	LineNumber     int    `json:"ingredient_line_number"`
	OriginalText   string `json:"ingredient_original_text"`
	IdempotencyKey string `json:"idempotency_key"`

	Quantity  Quantity       `json:"quantity"`
	Unit      NormalizedUnit `json:"unit"`
	Package   Package        `json:"package"`
	Link      Link           `json:"link"`
	Form      FormResolution `json:"form"`
	Canonical Canonical      `json:"canonical"`
	Density   DensityResolution `json:"density,omitempty"`
	Converted Converted      `json:"converted"`

	// Row-terminal classification. Empty means success.
	FailureCode Code `json:"failure_code,omitempty"`

	// Every non-fatal code observed anywhere in the row's lifecycle, in
	// the order it was raised, for the error stream and human report (§6).
	Warnings []Code `json:"warnings,omitempty"`
}

// AddWarning appends a code to the record's warning trail exactly once.
func (r *CanonicalRecord) AddWarning(c Code) {
	if c == "" {
		return
	}
	for _, w := range r.Warnings {
		if w == c {
			return
		}
	}
	r.Warnings = append(r.Warnings, c)
}

// Fail sets the row's terminal failure code and records it as a warning too,
// so the report's per-code grouping sees every classified row once.
func (r *CanonicalRecord) Fail(c Code) {
	r.FailureCode = c
	r.AddWarning(c)
}

// Succeeded reports whether the row reached C9 with canonical numbers, or
// terminated earlier (count/special rows with no numeric conversion still
// count as succeeded if FailureCode is unset).
func (r *CanonicalRecord) Succeeded() bool {
	return r.FailureCode == ""
}
