package types

// UnitEnum is the closed set of normalized unit tokens (§4.3).
type UnitEnum string

const (
	UnitNone UnitEnum = ""

	// Mass
	UnitMG UnitEnum = "MG"
	UnitG  UnitEnum = "G"
	UnitKG UnitEnum = "KG"
	UnitOZ UnitEnum = "OZ"
	UnitLB UnitEnum = "LB"

	// Volume
	UnitTSP    UnitEnum = "TSP"
	UnitTBSP   UnitEnum = "TBSP"
	UnitFLOZ   UnitEnum = "FLOZ"
	UnitCUP    UnitEnum = "CUP"
	UnitPINT   UnitEnum = "PINT"
	UnitQUART  UnitEnum = "QUART"
	UnitGALLON UnitEnum = "GALLON"
	UnitML     UnitEnum = "ML"
	UnitL      UnitEnum = "L"

	// Count
	UnitEA    UnitEnum = "EA"
	UnitEGG   UnitEnum = "EGG"
	UnitCLOVE UnitEnum = "CLOVE"
	UnitSLICE UnitEnum = "SLICE"
	UnitPIECE UnitEnum = "PIECE"

	// Special (no SI conversion)
	UnitToTaste UnitEnum = "TO_TASTE"
	UnitPinch   UnitEnum = "PINCH"
	UnitDash    UnitEnum = "DASH"
)

// Dimension classifies a UnitEnum's physical dimension (§4.3).
type Dimension string

const (
	DimNone    Dimension = ""
	DimMass    Dimension = "mass"
	DimVolume  Dimension = "volume"
	DimCount   Dimension = "count"
	DimSpecial Dimension = "special"
)

// PrecisionCode captures the lexical shape of a parsed quantity (§3, §4.2).
type PrecisionCode string

const (
	PrecisionNone     PrecisionCode = ""
	PrecisionInteger  PrecisionCode = "integer"
	PrecisionDecimal  PrecisionCode = "decimal"
	PrecisionFraction PrecisionCode = "fraction"
	PrecisionMixed    PrecisionCode = "mixed"
	PrecisionRange    PrecisionCode = "range"
	PrecisionText     PrecisionCode = "text"
)

// LinkMethod is the tier that produced an ingredient link (§4.5).
type LinkMethod string

const (
	LinkNone       LinkMethod = ""
	LinkExact      LinkMethod = "exact"
	LinkAlias      LinkMethod = "alias"
	LinkNormalized LinkMethod = "normalized"
	LinkFuzzy      LinkMethod = "fuzzy"
	LinkReview     LinkMethod = "review"
	LinkUnresolved LinkMethod = "unresolved"
)

// FormSource is the precedence tier that resolved a form (§4.6).
type FormSource string

const (
	FormSourceNone            FormSource = ""
	FormSourceAlias           FormSource = "alias"
	FormSourceExplicit        FormSource = "explicit"
	FormSourceUnitBias        FormSource = "unit_bias"
	FormSourceDefault         FormSource = "default"
	FormSourceCategoryDefault FormSource = "category_default"
)

// CanonicalUnit is the closed output unit enum (§6).
type CanonicalUnit string

const (
	CanonicalNone CanonicalUnit = ""
	CanonicalG    CanonicalUnit = "g"
	CanonicalML   CanonicalUnit = "mL"
	CanonicalEA   CanonicalUnit = "ea"
)

// BridgeRequired describes whether/which mass<->volume bridge a row needs (§4.7).
type BridgeRequired string

const (
	BridgeNone      BridgeRequired = "none"
	BridgeVolToMass BridgeRequired = "vol→mass"
	BridgeMassToVol BridgeRequired = "mass→vol"
)

// BridgeSelectionPath is the density-cascade tier that produced a density (§4.8).
type BridgeSelectionPath string

const (
	H0NoDensity       BridgeSelectionPath = "H0_NO_DENSITY"
	H1ExactFormPacked BridgeSelectionPath = "H1_EXACT_FORM_PACKED"
	H2ExactForm       BridgeSelectionPath = "H2_EXACT_FORM"
	H3FormGroup       BridgeSelectionPath = "H3_FORM_GROUP"
	H4DefaultForm     BridgeSelectionPath = "H4_DEFAULT_FORM"
	H5AnyForm         BridgeSelectionPath = "H5_ANY_FORM"
)

// ConversionPath is the closed enum of arithmetic routes C9 can take (§4.9, §6).
type ConversionPath string

const (
	ConversionNone           ConversionPath = ""
	ConversionCount          ConversionPath = "count"
	ConversionMassToMass     ConversionPath = "mass→mass"
	ConversionVolToVol       ConversionPath = "vol→vol"
	ConversionVolToMassDens  ConversionPath = "vol→mass via density"
	ConversionMassToVolDens  ConversionPath = "mass→vol via density"
)

// PackedState hints whether a granular ingredient was compressed when measured (§4.8).
type PackedState string

const (
	PackedStateNone    PackedState = ""
	PackedStatePacked  PackedState = "packed"
	PackedStateLoose   PackedState = "loosely_packed"
)

// TargetDimension is the Form reference entity's declared output dimension (§3).
type TargetDimension string

const (
	TargetDimAuto   TargetDimension = "auto"
	TargetDimMass   TargetDimension = "g"
	TargetDimVolume TargetDimension = "mL"
)
