package types

// Code is a classified warning or failure identifier attached to a record
// or to the rejection/error log (§4, §7). Codes are data, not Go errors:
// a row carrying one continues through the pipeline unless the stage
// documentation says it terminates the row.
type Code string

const (
	// Intake (§4.1) — reject, no further processing.
	CodeMissingRequiredField Code = "MISSING_REQUIRED_FIELD"
	CodeTypeMismatch         Code = "TYPE_MISMATCH"
	CodeSectionHeaderRow     Code = "SECTION_HEADER_ROW"
	CodeUnitInvalidFormat    Code = "UNIT_INVALID_FORMAT"
	CodeSequenceGap          Code = "SEQUENCE_GAP" // non-blocking, per recipe

	// Quantity (§4.2) — warnings, pipeline continues with null quantity fields.
	CodeNoNumericQuantity       Code = "NO_NUMERIC_QUANTITY"
	CodeQtyRangeSideInvalid     Code = "QTY_RANGE_SIDE_INVALID"
	CodeMultipleRangeSeparators Code = "MULTIPLE_RANGE_SEPARATORS"

	// Package (§4.4) — informational.
	CodeNoPackageSizeFound  Code = "NO_PACKAGE_SIZE_FOUND"
	CodeMultiplierFound     Code = "MULTIPLIER_FOUND"
	CodeAmbiguousOzLiquid   Code = "AMBIGUOUS_OZ_LIQUID"

	// Linking (§4.5, §7) — unresolved terminates canonical numbers.
	CodeLowConfidence      Code = "LOW_CONFIDENCE"
	CodeNoMatch            Code = "NO_MATCH"
	CodeMultiIngredient    Code = "MULTI_INGREDIENT_LINE"

	// Form (§4.6).
	CodeNoFormMatch Code = "NO_FORM_MATCH"
	CodeFormConflict Code = "FORM_CONFLICT"

	// Density bridge (§4.8, §7).
	CodeNeedsDensityLookup  Code = "NEEDS_DENSITY_LOOKUP"
	CodeSanityRangeEdge     Code = "SANITY_RANGE_EDGE"
	CodePackedStateMismatch Code = "PACKED_STATE_MISMATCH"
	CodeTempMismatch        Code = "TEMP_MISMATCH"

	// Conversion (§4.9) — unreachable if invariants hold.
	CodeInternalConversionError Code = "INTERNAL_CONVERSION_ERROR"
)

// Remediation returns the suggested human-facing fix for a code, or "" if
// the code has no canned remediation (§6 "Error report").
func Remediation(c Code) string {
	switch c {
	case CodeNoMatch:
		return "add ingredient to master table"
	case CodeNeedsDensityLookup, CodeSanityRangeEdge:
		return "add density for (ingredient_id, form_id)"
	case CodeNoFormMatch:
		return "add a form token mapping or a default_form_id for this ingredient"
	case CodeLowConfidence:
		return "confirm or reject the top review candidates, or add an alias"
	case CodeMultiIngredient:
		return "split this line into one ingredient per row upstream (multi-ingredient lines are never guessed)"
	case CodeMissingRequiredField, CodeTypeMismatch:
		return "fix the Stage-1 row shape before re-ingesting"
	case CodeUnitInvalidFormat:
		return "check the raw unit token for stray characters"
	default:
		return ""
	}
}
