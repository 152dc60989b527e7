package item

import "testing"

func TestColumns_FixedOrderAndCount(t *testing.T) {
	it := Item{
		Title:     "Victory of Eagles",
		Year:      2008,
		Series:    "Temeraire",
		Authors:   []string{"Naomi Novik", "Someone Else"},
		Publisher: "Del Rey",
		Format:    "epub",
	}
	got := it.Columns()
	want := [ColumnCount]string{"Victory of Eagles", "2008", "Temeraire", "Naomi Novik, Someone Else", "Del Rey", "epub"}
	if got != want {
		t.Fatalf("Columns = %q, want %q", got, want)
	}

	empty := Item{}.Columns()
	if len(empty) != ColumnCount || empty[1] != "" {
		t.Fatalf("empty Columns = %q, want %d blank cells", empty, ColumnCount)
	}
}

func TestKey(t *testing.T) {
	if got := (Item{Source: "libgen", ID: " 42 "}).Key(); got != "libgen/42" {
		t.Fatalf("Key = %q, want libgen/42", got)
	}
	if got := (Item{Title: " Dune ", Year: 1965}).Key(); got != "dune|1965" {
		t.Fatalf("Key = %q, want dune|1965", got)
	}
}

func TestString(t *testing.T) {
	it := Item{Title: "Dune", Year: 1965, Authors: []string{"Frank Herbert"}, Format: "pdf", Mirrors: []string{"http://m/1"}}
	want := "Dune (1965) by Frank Herbert [pdf] http://m/1"
	if got := it.String(); got != want {
		t.Fatalf("String = %q, want %q", got, want)
	}
}

func TestFetchStatusString(t *testing.T) {
	tests := map[FetchStatus]string{
		StatusNone:     "none",
		StatusFetching: "fetching",
		StatusFetched:  "fetched",
		StatusFailed:   "failed",
	}
	for status, want := range tests {
		if got := status.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", status, got, want)
		}
	}
}
