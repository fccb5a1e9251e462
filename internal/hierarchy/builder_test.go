package hierarchy

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumipallolabs/corpusmap/internal/model"
)

func TestBuildGroupsAndSorts(t *testing.T) {
	records := []model.Record{
		{Category: "Benin", Subcategory: "News", MetricValue: 100},
		{Category: "Benin", Subcategory: "Docs", MetricValue: 50},
		{Category: "Togo", Subcategory: "News", MetricValue: 120},
		{Category: "Togo", Subcategory: "Docs", MetricValue: 80},
	}

	root, err := Build(records, model.Taxonomy{}, Config{RootLabel: "All collections"})
	require.NoError(t, err)

	assert.Equal(t, "All collections", root.Name)
	assert.Equal(t, int64(350), root.TotalValue())

	// Togo (200) outweighs Benin (150), so it sorts first
	require.Len(t, root.Children, 2)
	assert.Equal(t, "Togo", root.Children[0].Name)
	assert.Equal(t, int64(200), root.Children[0].TotalValue())
	assert.Equal(t, "Benin", root.Children[1].Name)
	assert.Equal(t, int64(150), root.Children[1].TotalValue())

	// Subcategories sort largest-first within each category
	benin := root.Children[1]
	require.Len(t, benin.Children, 2)
	assert.Equal(t, "News", benin.Children[0].Name)
	assert.Equal(t, "Docs", benin.Children[1].Name)
}

func TestBuildAccumulatesDuplicateSubcategories(t *testing.T) {
	records := []model.Record{
		{Category: "Benin", Subcategory: "News", MetricValue: 60},
		{Category: "Benin", Subcategory: "News", MetricValue: 40},
	}

	root, err := Build(records, model.Taxonomy{}, Config{})
	require.NoError(t, err)

	benin := root.ChildByName("Benin")
	require.NotNil(t, benin)
	require.Len(t, benin.Children, 1)
	assert.Equal(t, int64(100), benin.Children[0].TotalValue())
}

func TestBuildTaxonomyMapping(t *testing.T) {
	tax := model.Taxonomy{
		Categories: []string{"Benin", "Togo"},
		Mapping:    map[string]string{"breaking news": "Togo"},
	}
	records := []model.Record{
		// Mapping overrides the record's own category
		{Category: "Benin", Subcategory: "breaking news", MetricValue: 10},
		// No category and no mapping lands in the fallback
		{Subcategory: "misc", MetricValue: 5},
	}

	root, err := Build(records, tax, Config{})
	require.NoError(t, err)

	assert.NotNil(t, root.ChildByName("Togo"))
	assert.NotNil(t, root.ChildByName(model.FallbackCategory))
	assert.Nil(t, root.ChildByName("Benin"))
}

func TestBuildThresholdDropsSmallCategories(t *testing.T) {
	records := []model.Record{
		{Category: "big", Subcategory: "a", MetricValue: 9990},
		{Category: "tiny", Subcategory: "b", MetricValue: 10},
	}

	// tiny holds 0.1% of 10000, below a 1% threshold
	root, err := Build(records, model.Taxonomy{}, Config{Threshold: 0.01})
	require.NoError(t, err)

	require.Len(t, root.Children, 1)
	assert.Equal(t, "big", root.Children[0].Name)

	// The root total reflects only what survived, keeping the sum invariant
	assert.Equal(t, int64(9990), root.TotalValue())
}

func TestBuildThresholdKeepsBoundary(t *testing.T) {
	records := []model.Record{
		{Category: "big", Subcategory: "a", MetricValue: 9900},
		{Category: "exact", Subcategory: "b", MetricValue: 100},
	}

	// exact sits precisely at 1% and must survive a 1% threshold
	root, err := Build(records, model.Taxonomy{}, Config{Threshold: 0.01})
	require.NoError(t, err)
	assert.NotNil(t, root.ChildByName("exact"))
}

func TestBuildZeroThresholdKeepsEverything(t *testing.T) {
	records := []model.Record{
		{Category: "big", Subcategory: "a", MetricValue: 1_000_000},
		{Category: "tiny", Subcategory: "b", MetricValue: 1},
	}

	root, err := Build(records, model.Taxonomy{}, Config{Threshold: 0})
	require.NoError(t, err)

	require.Len(t, root.Children, 2)
	assert.NotNil(t, root.ChildByName("tiny"))
	assert.Equal(t, int64(1_000_001), root.TotalValue())
}

func TestBuildSumInvariantRandomRecords(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	cats := []string{"Benin", "Togo", "Ghana", "Niger", "Mali"}
	subs := []string{"News", "Docs", "Web", "Books", "Speech"}

	for trial := 0; trial < 25; trial++ {
		n := 1 + rng.Intn(200)
		records := make([]model.Record, 0, n)
		var total int64
		for i := 0; i < n; i++ {
			v := int64(rng.Intn(10_000))
			records = append(records, model.Record{
				Category:    cats[rng.Intn(len(cats))],
				Subcategory: subs[rng.Intn(len(subs))],
				MetricValue: v,
			})
			total += v
		}

		root, err := Build(records, model.Taxonomy{}, Config{Threshold: 0})
		require.NoError(t, err)
		require.Equal(t, total, root.TotalValue())

		// Every branch carries exactly the sum of its children
		var catSum int64
		for _, cat := range root.Children {
			var subSum int64
			for _, sub := range cat.Children {
				require.True(t, sub.IsLeaf())
				subSum += sub.TotalValue()
			}
			require.Equal(t, subSum, cat.TotalValue(), "category %s", cat.Name)
			catSum += cat.TotalValue()
		}
		require.Equal(t, root.TotalValue(), catSum)

		// Siblings come out sorted largest-first
		for i := 1; i < len(root.Children); i++ {
			require.GreaterOrEqual(t,
				root.Children[i-1].TotalValue(), root.Children[i].TotalValue())
		}
	}
}

func TestBuildNoRecords(t *testing.T) {
	root, err := Build(nil, model.Taxonomy{}, Config{RootLabel: "All"})

	require.ErrorIs(t, err, ErrNoData)
	require.NotNil(t, root, "root must exist even with no data")
	assert.Empty(t, root.Children)
}

func TestBuildEverythingFiltered(t *testing.T) {
	records := []model.Record{
		{Category: "a", Subcategory: "x", MetricValue: 1},
		{Category: "b", Subcategory: "y", MetricValue: 1},
		{Category: "c", Subcategory: "z", MetricValue: 1},
	}

	// Each category holds a third of the total, all below 50%
	_, err := Build(records, model.Taxonomy{}, Config{Threshold: 0.5})
	assert.True(t, errors.Is(err, ErrNoData))
}

func TestBuildEqualValuesFollowTaxonomyOrder(t *testing.T) {
	tax := model.Taxonomy{Categories: []string{"Benin", "Togo", "Ghana"}}
	records := []model.Record{
		{Category: "Ghana", Subcategory: "x", MetricValue: 100},
		{Category: "Benin", Subcategory: "x", MetricValue: 100},
		{Category: "Togo", Subcategory: "x", MetricValue: 100},
	}

	root, err := Build(records, tax, Config{})
	require.NoError(t, err)

	require.Len(t, root.Children, 3)
	assert.Equal(t, "Benin", root.Children[0].Name)
	assert.Equal(t, "Togo", root.Children[1].Name)
	assert.Equal(t, "Ghana", root.Children[2].Name)
}
