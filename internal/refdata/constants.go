package refdata

import t "canonpipe/internal/types"

// DefaultConstants returns the closed MASS_TO_G / VOLUME_TO_ML tables, the
// unit synonym map, and the meaning-carrying token allow-list (§3
// "UnitConstants", §4.9). The exact decimals are part of the external
// contract and must never drift.
func DefaultConstants() t.UnitConstants {
	return t.UnitConstants{
		MassToG: map[t.UnitEnum]float64{
			t.UnitMG: 0.001,
			t.UnitG:  1,
			t.UnitKG: 1000,
			t.UnitOZ: 28.349523125,
			t.UnitLB: 453.59237,
		},
		VolumeToML: map[t.UnitEnum]float64{
			t.UnitTSP:    4.92892159375,
			t.UnitTBSP:   14.78676478125,
			t.UnitFLOZ:   29.5735295625,
			t.UnitCUP:    236.5882365,
			t.UnitPINT:   473.176473,
			t.UnitQUART:  946.352946,
			t.UnitGALLON: 3785.411784,
			t.UnitML:     1,
			t.UnitL:      1000,
		},
		Synonyms:              defaultSynonyms(),
		AllowList:             defaultAllowList(),
		GlobalFormTokens:      defaultGlobalFormTokens(),
		CategoryDefaultForm:   defaultCategoryDefaultForm(),
		VolumeUnitDryFormBias: defaultVolumeUnitDryFormBias(),
	}
}

// defaultGlobalFormTokens maps a meaning-carrying modifier token to a form
// id when no per-ingredient override claims it first (§4.6 P2). The map
// carries no precedence: when a line hits several forms, C6 takes them in
// the order their tokens appear in the line, first wins.
func defaultGlobalFormTokens() map[string]string {
	return map[string]string{
		"ground":   "FORM_POWDER",
		"powder":   "FORM_POWDER",
		"powdered": "FORM_POWDER",
		"whole":    "FORM_WHOLE",
		"chopped":  "FORM_CHOPPED",
		"diced":    "FORM_CHOPPED",
		"minced":   "FORM_CHOPPED",
		"sliced":   "FORM_SLICED",
		"grated":   "FORM_GRATED",
		"shredded": "FORM_GRATED",
		"crushed":  "FORM_CRUSHED",
		"flakes":   "FORM_FLAKES",
		"flaked":   "FORM_FLAKES",
	}
}

// defaultCategoryDefaultForm is the P5 category->form_id fallback.
func defaultCategoryDefaultForm() map[string]string {
	return map[string]string{
		"spice":     "FORM_POWDER",
		"grain":     "FORM_WHOLE",
		"dairy":     "FORM_WHOLE",
		"produce":   "FORM_WHOLE",
		"sweetener": "FORM_POWDER",
	}
}

// defaultVolumeUnitDryFormBias is the low-precedence P3 heuristic: a volume
// unit implies ground form when the ingredient's form set supports it. It is
// keyed by unit only; the ingredient's category or dryness is not checked.
func defaultVolumeUnitDryFormBias() map[t.UnitEnum]string {
	return map[t.UnitEnum]string{
		t.UnitTSP:  "FORM_POWDER",
		t.UnitTBSP: "FORM_POWDER",
		t.UnitCUP:  "FORM_POWDER",
	}
}

// defaultSynonyms maps lowercased, trailing-period-stripped raw unit tokens
// to the closed UnitEnum (§4.3). Fluid ounce variants are listed explicitly
// so C3 can detect them before falling back to mass ounce.
func defaultSynonyms() map[string]t.UnitEnum {
	m := map[string]t.UnitEnum{
		// mass
		"mg": t.UnitMG, "milligram": t.UnitMG, "milligrams": t.UnitMG,
		"g": t.UnitG, "gram": t.UnitG, "grams": t.UnitG, "gr": t.UnitG,
		"kg": t.UnitKG, "kilogram": t.UnitKG, "kilograms": t.UnitKG,
		"oz": t.UnitOZ, "ounce": t.UnitOZ, "ounces": t.UnitOZ,
		"lb": t.UnitLB, "lbs": t.UnitLB, "pound": t.UnitLB, "pounds": t.UnitLB,

		// fluid ounce must be matched before bare "oz" by the caller (§4.3)
		"fl oz": t.UnitFLOZ, "fl. oz.": t.UnitFLOZ, "floz": t.UnitFLOZ,
		"fluid ounce": t.UnitFLOZ, "fluid ounces": t.UnitFLOZ,

		// volume
		"tsp": t.UnitTSP, "teaspoon": t.UnitTSP, "teaspoons": t.UnitTSP,
		"tbsp": t.UnitTBSP, "tablespoon": t.UnitTBSP, "tablespoons": t.UnitTBSP, "tbs": t.UnitTBSP,
		"cup": t.UnitCUP, "cups": t.UnitCUP, "c": t.UnitCUP,
		"pint": t.UnitPINT, "pints": t.UnitPINT, "pt": t.UnitPINT,
		"quart": t.UnitQUART, "quarts": t.UnitQUART, "qt": t.UnitQUART,
		"gallon": t.UnitGALLON, "gallons": t.UnitGALLON, "gal": t.UnitGALLON,
		"ml": t.UnitML, "milliliter": t.UnitML, "milliliters": t.UnitML, "millilitre": t.UnitML, "millilitres": t.UnitML,
		"l": t.UnitL, "liter": t.UnitL, "liters": t.UnitL, "litre": t.UnitL, "litres": t.UnitL,

		// count
		"ea": t.UnitEA, "each": t.UnitEA,
		"egg": t.UnitEGG, "eggs": t.UnitEGG,
		"clove": t.UnitCLOVE, "cloves": t.UnitCLOVE,
		"slice": t.UnitSLICE, "slices": t.UnitSLICE,
		"piece": t.UnitPIECE, "pieces": t.UnitPIECE,

		// special
		"to taste": t.UnitToTaste, "totaste": t.UnitToTaste,
		"pinch": t.UnitPinch, "pinches": t.UnitPinch,
		"dash": t.UnitDash, "dashes": t.UnitDash,
	}
	return m
}

// defaultAllowList is the closed set of meaning-carrying tokens that survive
// filtering in C5/C6 (§4.5, §4.6 "meaning-carrying token"). Culinary noise
// and stopwords are excluded by omission, not by a separate blocklist.
func defaultAllowList() map[string]bool {
	words := []string{
		// physical forms
		"whole", "chopped", "diced", "minced", "sliced", "grated", "shredded",
		"ground", "powder", "powdered", "crushed", "cracked", "flakes", "flaked",
		"packed", "loosely", "fresh", "dried", "frozen", "raw", "cooked",
		"toasted", "roasted", "melted", "softened", "peeled", "seeded",
		"zested", "juiced", "chiffonade", "julienned", "cubed", "shaved",
		"thin", "thick", "fine", "coarse",

		// ingredient-head nouns commonly seen across recipe lines
		"flour", "sugar", "salt", "pepper", "butter", "oil", "milk", "cream",
		"water", "egg", "eggs", "cinnamon", "vanilla", "cocoa", "chocolate",
		"chia", "seeds", "beef", "chicken", "pork", "onion", "garlic",
		"tomato", "rice", "beans", "nuts", "honey", "syrup", "yeast",
		"baking", "soda", "powder", "cheese", "yogurt", "coconut", "maca",
		"root", "bread", "pasta",
	}
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}
