package pipeline

import (
	"canonpipe/internal/normalize"
	"canonpipe/internal/refdata"
	t "canonpipe/internal/types"
)

// Form runs §4.6's five-tier precedence cascade (P1..P5), a single pass per
// tier with early exit rather than five independent queries (§9).
func Form(formHintRaw, modifiersRaw, originalText string, ing *t.Ingredient, unit t.NormalizedUnit, snap *refdata.Snapshot) t.FormResolution {
	allow := snap.Constants().AllowList
	tokens := candidateFormTokens(formHintRaw, modifiersRaw, originalText, allow)
	if len(tokens) == 0 && ing == nil {
		return t.FormResolution{UnresolvedReason: t.CodeNoFormMatch}
	}

	// P1: per-ingredient override map.
	if ing != nil {
		for _, tok := range tokens {
			if formID, ok := ing.FormTokenOverrides[tok]; ok {
				return t.FormResolution{ResolvedFormID: formID, Source: t.FormSourceExplicit}
			}
		}
	}

	// P2: global token->form map. Collect every distinct match, dedupe in
	// token order (see matchGlobalForms), flag conflicts.
	global := snap.Constants().GlobalFormTokens
	if matched := matchGlobalForms(tokens, global); len(matched) > 0 {
		if len(matched) == 1 {
			return t.FormResolution{ResolvedFormID: matched[0], Source: t.FormSourceAlias}
		}
		return t.FormResolution{ResolvedFormID: matched[0], Source: t.FormSourceAlias, ConflictFlag: true}
	}

	// P3: unit-bias heuristic (low precedence).
	if bias := snap.Constants().VolumeUnitDryFormBias; bias != nil {
		if formID, ok := bias[unit.UnitEnum]; ok {
			if ing == nil || ingredientSupportsForm(ing, formID, snap) {
				return t.FormResolution{ResolvedFormID: formID, Source: t.FormSourceUnitBias}
			}
		}
	}

	// P4: ingredient default_form_id.
	if ing != nil && ing.DefaultFormID != "" {
		return t.FormResolution{ResolvedFormID: ing.DefaultFormID, Source: t.FormSourceDefault}
	}

	// P5: category default.
	if ing != nil {
		if formID, ok := snap.Constants().CategoryDefaultForm[ing.Category]; ok {
			return t.FormResolution{ResolvedFormID: formID, Source: t.FormSourceCategoryDefault}
		}
	}

	return t.FormResolution{UnresolvedReason: t.CodeNoFormMatch}
}

func candidateFormTokens(formHintRaw, modifiersRaw, originalText string, allow map[string]bool) []string {
	joined := formHintRaw + " " + modifiersRaw + " " + originalText
	folded := normalize.FoldPunctuation(joined)
	return normalize.KeepMeaningTokens(normalize.Tokenize(folded), allow)
}

// matchGlobalForms returns the distinct form ids hit by tokens, in the
// order tokens appear in the candidate phrase; the first occurrence of each
// form id wins, and the first entry has the highest precedence.
func matchGlobalForms(tokens []string, global map[string]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, tok := range tokens {
		formID, ok := global[tok]
		if !ok || seen[formID] {
			continue
		}
		seen[formID] = true
		out = append(out, formID)
	}
	return out
}

func ingredientSupportsForm(ing *t.Ingredient, formID string, snap *refdata.Snapshot) bool {
	if ing.DefaultFormID == formID {
		return true
	}
	if group, ok := snap.FormGroup(ing.DefaultFormID); ok {
		return group[formID]
	}
	return true
}
