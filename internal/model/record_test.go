package model

import "testing"

func TestCategoryOfMappingWins(t *testing.T) {
	tax := Taxonomy{
		Mapping: map[string]string{"news articles": "Benin"},
	}
	rec := Record{Category: "Togo", Subcategory: "news articles", MetricValue: 1}

	if cat := tax.CategoryOf(rec); cat != "Benin" {
		t.Errorf("expected mapping to win, got %s", cat)
	}
}

func TestCategoryOfFallsBackToRecord(t *testing.T) {
	tax := Taxonomy{}
	rec := Record{Category: "Togo", Subcategory: "news", MetricValue: 1}

	if cat := tax.CategoryOf(rec); cat != "Togo" {
		t.Errorf("expected record's own category, got %s", cat)
	}
}

func TestCategoryOfFallback(t *testing.T) {
	tax := Taxonomy{}
	rec := Record{Subcategory: "news", MetricValue: 1}

	if cat := tax.CategoryOf(rec); cat != FallbackCategory {
		t.Errorf("expected %q, got %s", FallbackCategory, cat)
	}
}

func TestRankOf(t *testing.T) {
	tax := Taxonomy{Categories: []string{"Benin", "Togo"}}

	if r := tax.RankOf("Togo"); r != 1 {
		t.Errorf("expected rank 1, got %d", r)
	}
	if r := tax.RankOf("Ghana"); r != 2 {
		t.Errorf("expected unknown categories ranked past all known, got %d", r)
	}
}
