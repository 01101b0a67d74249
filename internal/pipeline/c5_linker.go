package pipeline

import (
	"regexp"

	"canonpipe/internal/normalize"
	"canonpipe/internal/refdata"
	t "canonpipe/internal/types"
)

var (
	reLeadingQtyUnit  = regexp.MustCompile(`(?i)^[\s\d/.,½⅓⅔¼¾⅕⅖⅗⅘⅙⅚⅛⅜⅝⅞~≈+-]*\b[a-z .]*?\b(?:g|kg|mg|oz|lb|lbs|tsp|tbsp|cup|cups|pint|quart|gallon|ml|l|ea|each)?\b`)
	reMultiIngredient = regexp.MustCompile(`(?i)\b(or|and)\b|[/,]`)
)

const fuzzyTopK = 5
const fuzzyAcceptDefault = 0.92
const fuzzyReviewDefault = 0.80

// LinkThresholds carries the CANON_FUZZY_ACCEPT / CANON_FUZZY_REVIEW
// configuration into C5 (§A.1).
type LinkThresholds struct {
	Accept float64
	Review float64
}

func (th LinkThresholds) orDefaults() LinkThresholds {
	out := th
	if out.Accept <= 0 {
		out.Accept = fuzzyAcceptDefault
	}
	if out.Review <= 0 {
		out.Review = fuzzyReviewDefault
	}
	return out
}

// CandidatePhrase extracts the ingredient phrase from the original text by
// stripping a leading quantity/unit prefix (§4.5), returning cand_norm and
// its meaning-carrying token set. Package tokens elsewhere in the text, such
// as "(14 oz)", are not stripped.
func CandidatePhrase(originalText string, allowList map[string]bool) (candNorm string, tokens []string) {
	stripped := reLeadingQtyUnit.ReplaceAllString(originalText, "")
	folded := normalize.FoldPunctuation(stripped)
	allTokens := normalize.Tokenize(folded)
	kept := normalize.KeepMeaningTokens(allTokens, allowList)
	return folded, kept
}

// Link runs §4.5's four-tier match: exact primary, alias, normalized
// keep-tokens, then fuzzy Jaccard with deterministic tie-breaks.
func Link(originalText string, snap *refdata.Snapshot, th LinkThresholds) t.Link {
	th = th.orDefaults()
	allow := snap.Constants().AllowList
	candNorm, tokens := CandidatePhrase(originalText, allow)

	if ing, ok := snap.ByPrimary(candNorm); ok {
		return t.Link{IngredientID: ing.ID, IngredientName: ing.PrimaryName, Confidence: 1.00, Method: t.LinkExact}
	}
	if ing, ok := snap.ByAlias(candNorm); ok {
		return t.Link{IngredientID: ing.ID, IngredientName: ing.PrimaryName, Confidence: 0.99, Method: t.LinkAlias}
	}
	if ing, ok := snap.ByKeepTokens(tokens); ok {
		return t.Link{IngredientID: ing.ID, IngredientName: ing.PrimaryName, Confidence: 0.97, Method: t.LinkNormalized}
	}

	tokenSet := normalize.TokenSet(tokens)
	top := snap.FuzzyTopK(tokenSet, fuzzyTopK)
	if len(top) == 0 {
		return unresolved(originalText)
	}

	best := top[0]
	if best.Score >= th.Accept {
		return t.Link{
			IngredientID:   best.Ingredient.ID,
			IngredientName: best.Ingredient.PrimaryName,
			Confidence:     best.Score,
			Method:         t.LinkFuzzy,
		}
	}
	if best.Score >= th.Review {
		n := len(top)
		if n > 3 {
			n = 3
		}
		candidates := make([]t.LinkCandidate, 0, n)
		for _, c := range top[:n] {
			candidates = append(candidates, t.LinkCandidate{
				IngredientID: c.Ingredient.ID,
				Name:         c.Ingredient.PrimaryName,
				Score:        c.Score,
			})
		}
		return t.Link{
			Confidence: best.Score,
			Method:     t.LinkReview,
			Candidates: candidates,
		}
	}
	return unresolved(originalText)
}

func unresolved(originalText string) t.Link {
	if reMultiIngredient.MatchString(originalText) {
		return t.Link{Method: t.LinkUnresolved, UnresolvedReason: t.CodeMultiIngredient}
	}
	return t.Link{Method: t.LinkUnresolved, UnresolvedReason: t.CodeNoMatch}
}
