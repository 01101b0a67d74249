package refdata

import (
	"sort"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"canonpipe/internal/normalize"
	t "canonpipe/internal/types"
)

// Snapshot is the immutable, load-once reference repository snapshot of §5:
// "indices ... are built once, then queried concurrently without locks."
// Nothing on Snapshot is ever mutated after NewSnapshot returns.
type Snapshot struct {
	ingredients map[string]*t.Ingredient // by id
	forms       map[string]*t.Form       // by id
	densities   []t.Density
	constants   t.UnitConstants

	byPrimary    map[string]*t.Ingredient
	byAlias      map[string]*t.Ingredient
	byKeepTokens map[string]*t.Ingredient

	fuzzyIndex      []fuzzyEntry
	aliasWeightByID map[string]int
	formGroups      map[string]map[string]bool // group name -> set of form ids

	// jaccardCache memoizes Jaccard(candidate tokens, indexed tokens) across
	// rows that share a candidate phrase, the same read-through shape as the
	// teacher's internal/gateway/repository/project.PostgresStore.artifactCache.
	// It never needs a TTL because the snapshot it's scoped to is itself
	// immutable for the process lifetime (§5) — only size-bounded eviction
	// matters.
	jaccardCache *lru.Cache[string, []FuzzyCandidate]
}

type fuzzyEntry struct {
	ingredient  *t.Ingredient
	tokens      map[string]struct{}
	aliasWeight int
}

// FuzzyCandidate is one L3 fuzzy match result (§4.5).
type FuzzyCandidate struct {
	Ingredient *t.Ingredient
	Score      float64
}

// RawRefData is the flat shape refdata/store.go loads from a file snapshot
// or Postgres before NewSnapshot indexes it.
type RawRefData struct {
	Ingredients []t.Ingredient
	Forms       []t.Form
	Densities   []t.Density
	Constants   t.UnitConstants
}

// NewSnapshot builds every index described in §4.5/§4.6/§4.8 from raw
// reference rows. Called exactly once per process (or per hot-reload swap,
// §5), then shared read-only across worker goroutines.
func NewSnapshot(raw RawRefData, jaccardCacheSize int) *Snapshot {
	s := &Snapshot{
		ingredients:  make(map[string]*t.Ingredient, len(raw.Ingredients)),
		forms:        make(map[string]*t.Form, len(raw.Forms)),
		densities:    append([]t.Density(nil), raw.Densities...),
		constants:    raw.Constants,
		byPrimary:    make(map[string]*t.Ingredient, len(raw.Ingredients)),
		byAlias:      make(map[string]*t.Ingredient),
		byKeepTokens: make(map[string]*t.Ingredient, len(raw.Ingredients)),
		formGroups:   make(map[string]map[string]bool),
		aliasWeightByID: make(map[string]int, len(raw.Ingredients)),
	}
	if jaccardCacheSize <= 0 {
		jaccardCacheSize = 4096
	}
	// lru.New only errors for size<=0, which jaccardCacheSize can never be
	// at this point.
	s.jaccardCache, _ = lru.New[string, []FuzzyCandidate](jaccardCacheSize)

	for i := range raw.Ingredients {
		ing := raw.Ingredients[i]
		s.ingredients[ing.ID] = &raw.Ingredients[i]

		primNorm := normNameKey(ing.PrimaryName)
		if _, exists := s.byPrimary[primNorm]; !exists {
			s.byPrimary[primNorm] = &raw.Ingredients[i]
		}

		for _, alias := range ing.Aliases {
			aliasNorm := normNameKey(alias)
			if _, exists := s.byAlias[aliasNorm]; !exists {
				s.byAlias[aliasNorm] = &raw.Ingredients[i]
			}
		}

		keepKey := keepTokenKey(ing.PrimaryName, raw.Constants.AllowList)
		if keepKey != "" {
			if _, exists := s.byKeepTokens[keepKey]; !exists {
				s.byKeepTokens[keepKey] = &raw.Ingredients[i]
			}
		}

		tokens := normalize.TokenSet(normalize.KeepMeaningTokens(
			normalize.Tokenize(normalize.FoldPunctuation(ing.PrimaryName)),
			raw.Constants.AllowList,
		))
		s.fuzzyIndex = append(s.fuzzyIndex, fuzzyEntry{
			ingredient:  &raw.Ingredients[i],
			tokens:      tokens,
			aliasWeight: len(ing.Aliases),
		})
		s.aliasWeightByID[ing.ID] = len(ing.Aliases)
	}

	for i := range raw.Forms {
		f := raw.Forms[i]
		s.forms[f.ID] = &raw.Forms[i]
		if f.Group != "" {
			if s.formGroups[f.Group] == nil {
				s.formGroups[f.Group] = make(map[string]bool)
			}
			s.formGroups[f.Group][f.ID] = true
		}
	}

	// Deterministic density ordering: lexicographic by id, independent of
	// load order (§5 "Deterministic output requires ... total orderings").
	sort.Slice(s.densities, func(i, j int) bool { return s.densities[i].ID < s.densities[j].ID })

	return s
}

func normNameKey(s string) string {
	return normalize.FoldPunctuation(s)
}

func keepTokenKey(name string, allow map[string]bool) string {
	tokens := normalize.KeepMeaningTokens(normalize.Tokenize(normalize.FoldPunctuation(name)), allow)
	if len(tokens) == 0 {
		return ""
	}
	sorted := append([]string(nil), tokens...)
	sort.Strings(sorted)
	key := ""
	for i, tk := range sorted {
		if i > 0 {
			key += " "
		}
		key += tk
	}
	return key
}

// ByPrimary implements `ingredients.by_primary` (§6).
func (s *Snapshot) ByPrimary(nameNorm string) (*t.Ingredient, bool) {
	ing, ok := s.byPrimary[normNameKey(nameNorm)]
	return ing, ok
}

// ByAlias implements `ingredients.by_alias` (§6).
func (s *Snapshot) ByAlias(nameNorm string) (*t.Ingredient, bool) {
	ing, ok := s.byAlias[normNameKey(nameNorm)]
	return ing, ok
}

// ByKeepTokens implements `ingredients.by_keep_tokens` (§6).
func (s *Snapshot) ByKeepTokens(tokens []string) (*t.Ingredient, bool) {
	sorted := append([]string(nil), tokens...)
	sort.Strings(sorted)
	key := ""
	for i, tk := range sorted {
		if i > 0 {
			key += " "
		}
		key += tk
	}
	if key == "" {
		return nil, false
	}
	ing, ok := s.byKeepTokens[key]
	return ing, ok
}

// FuzzyTopK implements `ingredients.fuzzy_topk` (§6, §4.5 L3). Results are
// sorted by score descending, ties broken by (alias weight desc, ingredient
// id asc) exactly as §4.5/§9 require.
func (s *Snapshot) FuzzyTopK(candidateTokens map[string]struct{}, k int) []FuzzyCandidate {
	cacheKey := fuzzyCacheKey(candidateTokens)
	if cached, ok := s.jaccardCache.Get(cacheKey); ok {
		return cloneCandidates(cached, k)
	}

	all := make([]FuzzyCandidate, 0, len(s.fuzzyIndex))
	for _, entry := range s.fuzzyIndex {
		score := normalize.Jaccard(candidateTokens, entry.tokens)
		all = append(all, FuzzyCandidate{Ingredient: entry.ingredient, Score: score})
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Score != all[j].Score {
			return all[i].Score > all[j].Score
		}
		wi := s.aliasWeightByID[all[i].Ingredient.ID]
		wj := s.aliasWeightByID[all[j].Ingredient.ID]
		if wi != wj {
			return wi > wj
		}
		return all[i].Ingredient.ID < all[j].Ingredient.ID
	})
	s.jaccardCache.Add(cacheKey, all)
	return cloneCandidates(all, k)
}

func cloneCandidates(all []FuzzyCandidate, k int) []FuzzyCandidate {
	if k <= 0 || k > len(all) {
		k = len(all)
	}
	return append([]FuzzyCandidate(nil), all[:k]...)
}

func fuzzyCacheKey(tokens map[string]struct{}) string {
	sorted := make([]string, 0, len(tokens))
	for tk := range tokens {
		sorted = append(sorted, tk)
	}
	sort.Strings(sorted)
	key := ""
	for i, tk := range sorted {
		if i > 0 {
			key += "\x1f"
		}
		key += tk
	}
	return key
}

// FormGet implements `forms.get` (§6).
func (s *Snapshot) FormGet(formID string) (*t.Form, bool) {
	f, ok := s.forms[formID]
	return f, ok
}

// FormGroup implements `forms.group` (§6): the set of form ids sharing the
// given form's group, including the form itself.
func (s *Snapshot) FormGroup(formID string) (map[string]bool, bool) {
	f, ok := s.forms[formID]
	if !ok || f.Group == "" {
		return nil, false
	}
	group, ok := s.formGroups[f.Group]
	return group, ok
}

// FormDefaultFor implements `forms.default_for` (§6).
func (s *Snapshot) FormDefaultFor(ingredientID string) (string, bool) {
	ing, ok := s.ingredients[ingredientID]
	if !ok || ing.DefaultFormID == "" {
		return "", false
	}
	return ing.DefaultFormID, true
}

// Ingredient looks an ingredient up by id (used after a link is resolved).
func (s *Snapshot) Ingredient(id string) (*t.Ingredient, bool) {
	ing, ok := s.ingredients[id]
	return ing, ok
}

// Constants implements `constants.*` (§6).
func (s *Snapshot) Constants() t.UnitConstants { return s.constants }

// DensityPredicate filters the density index for one cascade tier (§4.8).
type DensityPredicate func(d t.Density) bool

// DensitiesFind implements `densities.find` (§6): iteration is deterministic
// by id because the backing slice was sorted once in NewSnapshot.
func (s *Snapshot) DensitiesFind(today time.Time, pred DensityPredicate) []t.Density {
	var out []t.Density
	for _, d := range s.densities {
		if !d.CoversDate(today) {
			continue
		}
		if pred != nil && !pred(d) {
			continue
		}
		out = append(out, d)
	}
	return out
}
