package search_test

import (
	"io"
	"log/slog"
	"testing"

	"lexview/internal/filters"
	"lexview/internal/registry"
	"lexview/internal/search"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newFilters() *filters.Filters {
	return filters.New(discardLogger())
}

func titles(acts []registry.Act) []string {
	out := make([]string, len(acts))
	for i, a := range acts {
		out[i] = a.Title
	}
	return out
}

func TestFilterStatusInForce(t *testing.T) {
	acts := []registry.Act{
		{Title: "Act A", Status: "obowiązujący"},
		{Title: "Act B", Status: "uchylony"},
		{Title: "Act C", Status: "objęty tekstem jednolitym"},
		{Title: "Act D", Status: "ogłoszony"},
	}

	f := newFilters()
	f.SetStatus(filters.StatusInForce)

	got := titles(search.Filter(acts, f))
	want := []string{"Act A", "Act C"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("filtered = %v, want %v", got, want)
	}
}

func TestFilterStatusRepealed(t *testing.T) {
	acts := []registry.Act{
		{Title: "Act A", Status: "obowiązujący"},
		{Title: "Act B", Status: "uchylony"},
		{Title: "Act C", Status: "akt jednorazowy"},
		{Title: "Act D", Status: "wygaśnięcie"},
	}

	f := newFilters()
	f.SetStatus(filters.StatusRepealed)

	got := titles(search.Filter(acts, f))
	want := []string{"Act B", "Act C", "Act D"}
	if len(got) != 3 {
		t.Fatalf("filtered = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("filtered[%d] = %q, want %q (order must be preserved)", i, got[i], want[i])
		}
	}
}

func TestFilterStatusAllPassesEverything(t *testing.T) {
	acts := []registry.Act{
		{Title: "Act A", Status: "obowiązujący"},
		{Title: "Act B", Status: "uchylony"},
		{Title: "Act C"},
	}

	f := newFilters()

	if got := search.Filter(acts, f); len(got) != 3 {
		t.Errorf("filtered = %d acts, want all 3", len(got))
	}
}

func TestFilterMissingStatusNeverMatchesActiveFilter(t *testing.T) {
	acts := []registry.Act{
		{Title: "Act A"},
		{Title: "Act B", Status: "obowiązujący"},
	}

	f := newFilters()
	f.SetStatus(filters.StatusInForce)

	got := search.Filter(acts, f)
	if len(got) != 1 || got[0].Title != "Act B" {
		t.Errorf("filtered = %v, want only Act B", titles(got))
	}
}

func TestFilterSingleKeyword(t *testing.T) {
	acts := []registry.Act{
		{Title: "Ustawa o podatku dochodowym"},
		{Title: "Ustawa o lasach"},
		{Title: "Rozporządzenie w sprawie podatku VAT"},
	}

	f := newFilters()
	f.AddKeyword("podatku")

	got := titles(search.Filter(acts, f))
	if len(got) != 2 || got[0] != acts[0].Title || got[1] != acts[2].Title {
		t.Errorf("filtered = %v, want records 1 and 3", got)
	}
}

func TestFilterConjunctiveKeywords(t *testing.T) {
	acts := []registry.Act{
		{Title: "Duża ustawa o podatku"},
		{Title: "Mała ustawa"},
		{Title: "Podatek bez ustawy"},
	}

	f := newFilters()
	f.AddKeyword("ustawa")
	f.AddKeyword("podat")

	got := search.Filter(acts, f)
	if len(got) != 1 || got[0].Title != "Duża ustawa o podatku" {
		t.Errorf("filtered = %v, want only the first record", titles(got))
	}
}

func TestFilterKeywordMatchesCaseInsensitively(t *testing.T) {
	acts := []registry.Act{
		{Title: "Ustawa o podatku VAT"},
	}

	f := newFilters()
	f.AddKeyword("VAT")

	if got := search.Filter(acts, f); len(got) != 1 {
		t.Errorf("filtered = %v, want the VAT act", titles(got))
	}
}

func TestFilterCombinesStatusAndKeywords(t *testing.T) {
	acts := []registry.Act{
		{Title: "Ustawa o podatku", Status: "obowiązujący"},
		{Title: "Ustawa o podatku", Status: "uchylony"},
		{Title: "Ustawa o lasach", Status: "obowiązujący"},
	}

	f := newFilters()
	f.SetStatus(filters.StatusInForce)
	f.AddKeyword("podatku")

	got := search.Filter(acts, f)
	if len(got) != 1 || got[0].Status != "obowiązujący" || got[0].Title != "Ustawa o podatku" {
		t.Errorf("filtered = %v, want exactly the in-force tax act", got)
	}
}

func TestFilterEmptyInput(t *testing.T) {
	f := newFilters()
	f.SetStatus(filters.StatusRepealed)
	f.AddKeyword("vat")

	if got := search.Filter(nil, f); len(got) != 0 {
		t.Errorf("filtered = %v, want empty", got)
	}
}
