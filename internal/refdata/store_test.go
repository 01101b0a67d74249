package refdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadDirReadsAllThreeTables(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ingredients.ndjson",
		`{"id":"ing_flour","primary_name":"flour","aliases":["plain flour"],"category":"grain","default_form_id":"FORM_WHOLE"}`+"\n")
	writeFile(t, dir, "forms.ndjson",
		`{"id":"FORM_WHOLE","name":"whole","group":"solid","target_dimension":"auto"}`+"\n")
	writeFile(t, dir, "densities.ndjson",
		`{"id":"den_1","ingredient_id":"ing_flour","form_id":"FORM_WHOLE","g_per_ml":0.53,"source_priority":1,"quality_score":0.9,"is_active":true,"effective_from":"2024-01-01T00:00:00Z"}`+"\n")

	raw, err := loadDir(dir)
	assert.NoError(t, err)
	assert.Len(t, raw.Ingredients, 1)
	assert.Equal(t, "ing_flour", raw.Ingredients[0].ID)
	assert.Equal(t, []string{"plain flour"}, raw.Ingredients[0].Aliases)
	assert.Len(t, raw.Forms, 1)
	assert.Equal(t, "FORM_WHOLE", raw.Forms[0].ID)
	assert.Len(t, raw.Densities, 1)
	assert.Equal(t, 0.53, raw.Densities[0].GPerML)
	assert.NotNil(t, raw.Densities[0].EffectiveFrom)
}

func TestLoadDirToleratesMissingFiles(t *testing.T) {
	dir := t.TempDir()
	raw, err := loadDir(dir)
	assert.NoError(t, err)
	assert.Empty(t, raw.Ingredients)
	assert.Empty(t, raw.Forms)
	assert.Empty(t, raw.Densities)
}

func TestLoadDirSkipsBlankLines(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ingredients.ndjson", "\n  \n"+`{"id":"ing_salt","primary_name":"salt"}`+"\n\n")
	writeFile(t, dir, "forms.ndjson", "")
	writeFile(t, dir, "densities.ndjson", "")

	raw, err := loadDir(dir)
	assert.NoError(t, err)
	assert.Len(t, raw.Ingredients, 1)
	assert.Equal(t, "ing_salt", raw.Ingredients[0].ID)
}

func TestLoadDirPropagatesMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ingredients.ndjson", "{not valid json\n")
	writeFile(t, dir, "forms.ndjson", "")
	writeFile(t, dir, "densities.ndjson", "")

	_, err := loadDir(dir)
	assert.Error(t, err)
}

func TestLoadRequiresDirOrDSN(t *testing.T) {
	_, err := Load(Source{})
	assert.Error(t, err)
}
