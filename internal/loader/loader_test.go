package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumipallolabs/corpusmap/internal/model"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadCSV(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "records.csv",
		"category,subcategory,value\n"+
			"Benin,News,100\n"+
			"Benin,Docs,50\n")

	records, err := LoadFile(path)
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, model.Record{Category: "Benin", Subcategory: "News", MetricValue: 100}, records[0])
}

func TestLoadCSVColumnVariants(t *testing.T) {
	dir := t.TempDir()

	// Header matching is case-insensitive and accepts metricValue
	path := writeFile(t, dir, "records.csv",
		"Subcategory,MetricValue,extra\n"+
			"News,100,ignored\n")

	records, err := LoadFile(path)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "News", records[0].Subcategory)
	assert.Equal(t, int64(100), records[0].MetricValue)
	assert.Empty(t, records[0].Category)
}

func TestLoadCSVBadValue(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "records.csv",
		"category,subcategory,value\n"+
			"Benin,News,not-a-number\n")

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestLoadCSVMissingColumns(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "records.csv", "a,b\n1,2\n")

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "records.json",
		`[{"category":"Togo","subcategory":"News","metricValue":120}]`)

	records, err := LoadFile(path)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, model.Record{Category: "Togo", Subcategory: "News", MetricValue: 120}, records[0])
}

func TestDiscoverFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.csv", "category,subcategory,value\n")
	writeFile(t, dir, "a.json", "[]")
	writeFile(t, dir, "taxonomy.yaml", "categories: []\n")

	require.NoError(t, os.Mkdir(filepath.Join(dir, ".hidden"), 0755))
	writeFile(t, filepath.Join(dir, ".hidden"), "c.csv", "category,subcategory,value\n")

	files, err := DiscoverFiles(dir)
	require.NoError(t, err)

	// Sorted by path, yaml and dot-dirs excluded
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(dir, "a.json"), files[0])
	assert.Equal(t, filepath.Join(dir, "b.csv"), files[1])
}

func TestLoadDirConcatenates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "one.csv",
		"category,subcategory,value\nBenin,News,100\n")
	writeFile(t, dir, "two.json",
		`[{"category":"Togo","subcategory":"Docs","metricValue":80}]`)

	records, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestLoadTaxonomy(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "taxonomy.yaml",
		"categories:\n  - Benin\n  - Togo\nmapping:\n  \"breaking news\": Togo\n")

	tax, err := LoadTaxonomy(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Benin", "Togo"}, tax.Categories)
	assert.Equal(t, "Togo", tax.Mapping["breaking news"])
}

func TestLoadTaxonomyMissing(t *testing.T) {
	tax, err := LoadTaxonomy("")
	require.NoError(t, err)
	assert.Empty(t, tax.Categories)

	tax, err = LoadTaxonomy(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Empty(t, tax.Categories)
}
