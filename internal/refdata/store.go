package refdata

import (
	"bufio"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	t "canonpipe/internal/types"
)

// Source describes where the reference repository's rows come from (§6
// "Reference repository contract"). Exactly one of Dir or PGDSN is set,
// mirroring the teacher's dual file/Postgres `projectstore.Store`.
type Source struct {
	Dir   string // directory holding ingredients.ndjson, forms.ndjson, densities.ndjson
	PGDSN string
}

// Load reads the ingredient, form, and density tables from the configured
// source and attaches the built-in DefaultConstants. It never
// mutates anything after returning — the caller indexes the result once via
// NewSnapshot per §5's "immutable after load" requirement.
func Load(src Source) (RawRefData, error) {
	if strings.TrimSpace(src.PGDSN) != "" {
		return loadPostgres(src.PGDSN)
	}
	if strings.TrimSpace(src.Dir) == "" {
		return RawRefData{}, fmt.Errorf("refdata: no source configured (set CANON_REFDATA_DIR or CANON_REFDATA_PG_DSN)")
	}
	return loadDir(src.Dir)
}

func loadDir(dir string) (RawRefData, error) {
	var raw RawRefData
	var err error

	if raw.Ingredients, err = readIngredientsNDJSON(filepath.Join(dir, "ingredients.ndjson")); err != nil {
		return RawRefData{}, fmt.Errorf("refdata: ingredients: %w", err)
	}
	if raw.Forms, err = readFormsNDJSON(filepath.Join(dir, "forms.ndjson")); err != nil {
		return RawRefData{}, fmt.Errorf("refdata: forms: %w", err)
	}
	if raw.Densities, err = readDensitiesNDJSON(filepath.Join(dir, "densities.ndjson")); err != nil {
		return RawRefData{}, fmt.Errorf("refdata: densities: %w", err)
	}
	raw.Constants = DefaultConstants()
	return raw, nil
}

// loadPostgres reads the same three tables from Postgres using
// database/sql over the pgx/v5 stdlib driver, the way
// internal/gateway/projectstore.Store.NewPostgres does.
func loadPostgres(dsn string) (RawRefData, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return RawRefData{}, fmt.Errorf("refdata: open postgres: %w", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return RawRefData{}, fmt.Errorf("refdata: ping postgres: %w", err)
	}

	var raw RawRefData
	raw.Constants = DefaultConstants()

	rows, err := db.Query(`SELECT ingredient_id, primary_name, aliases, category, default_form_id FROM ingredients`)
	if err != nil {
		return RawRefData{}, fmt.Errorf("refdata: query ingredients: %w", err)
	}
	for rows.Next() {
		var ing t.Ingredient
		var aliasesCSV string
		if err := rows.Scan(&ing.ID, &ing.PrimaryName, &aliasesCSV, &ing.Category, &ing.DefaultFormID); err != nil {
			rows.Close()
			return RawRefData{}, fmt.Errorf("refdata: scan ingredient: %w", err)
		}
		ing.Aliases = splitNonEmpty(aliasesCSV, ",")
		raw.Ingredients = append(raw.Ingredients, ing)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return RawRefData{}, err
	}

	formRows, err := db.Query(`SELECT form_id, name, form_group, target_dimension, display_rule_default FROM forms`)
	if err != nil {
		return RawRefData{}, fmt.Errorf("refdata: query forms: %w", err)
	}
	for formRows.Next() {
		var f t.Form
		var targetDim string
		if err := formRows.Scan(&f.ID, &f.Name, &f.Group, &targetDim, &f.DisplayRuleDefault); err != nil {
			formRows.Close()
			return RawRefData{}, fmt.Errorf("refdata: scan form: %w", err)
		}
		f.TargetDimension = t.TargetDimension(targetDim)
		raw.Forms = append(raw.Forms, f)
	}
	formRows.Close()
	if err := formRows.Err(); err != nil {
		return RawRefData{}, err
	}

	densRows, err := db.Query(`SELECT density_id, ingredient_id, form_id, g_per_ml, packed_state,
		temp_c, source_priority, quality_score, effective_from, effective_to, is_active FROM densities`)
	if err != nil {
		return RawRefData{}, fmt.Errorf("refdata: query densities: %w", err)
	}
	for densRows.Next() {
		var d t.Density
		var packed string
		var tempC sql.NullFloat64
		var from, to sql.NullTime
		if err := densRows.Scan(&d.ID, &d.IngredientID, &d.FormID, &d.GPerML, &packed,
			&tempC, &d.SourcePriority, &d.QualityScore, &from, &to, &d.IsActive); err != nil {
			densRows.Close()
			return RawRefData{}, fmt.Errorf("refdata: scan density: %w", err)
		}
		d.PackedState = t.PackedState(packed)
		if tempC.Valid {
			v := tempC.Float64
			d.TempC = &v
		}
		if from.Valid {
			v := from.Time
			d.EffectiveFrom = &v
		}
		if to.Valid {
			v := to.Time
			d.EffectiveTo = &v
		}
		raw.Densities = append(raw.Densities, d)
	}
	densRows.Close()
	if err := densRows.Err(); err != nil {
		return RawRefData{}, err
	}

	return raw, nil
}

func splitNonEmpty(s, sep string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

type ingredientRow struct {
	ID            string   `json:"id"`
	PrimaryName   string   `json:"primary_name"`
	Aliases       []string `json:"aliases"`
	Category      string   `json:"category"`
	DefaultFormID string   `json:"default_form_id"`
}

type formRow struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Group              string `json:"group"`
	TargetDimension    string `json:"target_dimension"`
	DisplayRuleDefault string `json:"display_rule_default"`
}

type densityRow struct {
	ID             string   `json:"id"`
	IngredientID   string   `json:"ingredient_id"`
	FormID         string   `json:"form_id"`
	GPerML         float64  `json:"g_per_ml"`
	PackedState    string   `json:"packed_state"`
	TempC          *float64 `json:"temp_c"`
	SourcePriority int      `json:"source_priority"`
	QualityScore   float64  `json:"quality_score"`
	EffectiveFrom  *string  `json:"effective_from"`
	EffectiveTo    *string  `json:"effective_to"`
	IsActive       bool     `json:"is_active"`
}

func readIngredientsNDJSON(path string) ([]t.Ingredient, error) {
	var out []t.Ingredient
	err := eachNDJSONLine(path, func(line []byte) error {
		var r ingredientRow
		if err := json.Unmarshal(line, &r); err != nil {
			return err
		}
		out = append(out, t.Ingredient{
			ID:            r.ID,
			PrimaryName:   r.PrimaryName,
			Aliases:       r.Aliases,
			Category:      r.Category,
			DefaultFormID: r.DefaultFormID,
		})
		return nil
	})
	return out, err
}

func readFormsNDJSON(path string) ([]t.Form, error) {
	var out []t.Form
	err := eachNDJSONLine(path, func(line []byte) error {
		var r formRow
		if err := json.Unmarshal(line, &r); err != nil {
			return err
		}
		out = append(out, t.Form{
			ID:                 r.ID,
			Name:               r.Name,
			Group:              r.Group,
			TargetDimension:    t.TargetDimension(r.TargetDimension),
			DisplayRuleDefault: r.DisplayRuleDefault,
		})
		return nil
	})
	return out, err
}

func readDensitiesNDJSON(path string) ([]t.Density, error) {
	var out []t.Density
	err := eachNDJSONLine(path, func(line []byte) error {
		var r densityRow
		if err := json.Unmarshal(line, &r); err != nil {
			return err
		}
		d := t.Density{
			ID:             r.ID,
			IngredientID:   r.IngredientID,
			FormID:         r.FormID,
			GPerML:         r.GPerML,
			PackedState:    t.PackedState(r.PackedState),
			TempC:          r.TempC,
			SourcePriority: r.SourcePriority,
			QualityScore:   r.QualityScore,
			IsActive:       r.IsActive,
		}
		if r.EffectiveFrom != nil {
			if tm, err := time.Parse(time.RFC3339, *r.EffectiveFrom); err == nil {
				d.EffectiveFrom = &tm
			}
		}
		if r.EffectiveTo != nil {
			if tm, err := time.Parse(time.RFC3339, *r.EffectiveTo); err == nil {
				d.EffectiveTo = &tm
			}
		}
		out = append(out, d)
		return nil
	})
	return out, err
}

func eachNDJSONLine(path string, fn func([]byte) error) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if err := fn([]byte(line)); err != nil {
			return err
		}
	}
	return sc.Err()
}
