package catalog

import (
	"testing"
)

func TestSearchQueryValues_OmitsEmptyFields(t *testing.T) {
	values := SearchQuery{}.Values()
	if len(values) != 0 {
		t.Fatalf("Values() = %v, want empty", values)
	}
}

func TestSearchQueryValues_RepeatsSetFields(t *testing.T) {
	zero := 0
	upper := 8
	values := SearchQuery{
		Breeds:        []string{"Beagle", " ", "Pug"},
		ZipCodes:      []string{"10001", "94105-1234"},
		AgeMin:        &zero,
		AgeMax:        &upper,
		Size:          50,
		From:          100,
		SortField:     "breed",
		SortDirection: "desc",
	}.Values()

	if got := values["breeds"]; len(got) != 2 || got[0] != "Beagle" || got[1] != "Pug" {
		t.Fatalf("breeds = %v, want [Beagle Pug]", got)
	}
	if got := values["zipCodes"]; len(got) != 2 {
		t.Fatalf("zipCodes = %v, want two entries", got)
	}
	if got := values.Get("ageMin"); got != "0" {
		t.Fatalf("ageMin = %q, want %q", got, "0")
	}
	if got := values.Get("ageMax"); got != "8" {
		t.Fatalf("ageMax = %q, want %q", got, "8")
	}
	if got := values.Get("size"); got != "50" {
		t.Fatalf("size = %q, want %q", got, "50")
	}
	if got := values.Get("from"); got != "100" {
		t.Fatalf("from = %q, want %q", got, "100")
	}
	if got := values.Get("sortField"); got != "breed" {
		t.Fatalf("sortField = %q, want %q", got, "breed")
	}
	if got := values.Get("sort"); got != "desc" {
		t.Fatalf("sort = %q, want %q", got, "desc")
	}
}

func TestSearchQueryValues_DirectionNeedsField(t *testing.T) {
	values := SearchQuery{SortDirection: "asc"}.Values()
	if values.Has("sort") {
		t.Fatalf("sort = %q, want omitted without sortField", values.Get("sort"))
	}
}

func TestCursorOffset(t *testing.T) {
	cases := []struct {
		name   string
		cursor string
		want   int
		wantOK bool
	}{
		{"empty", "", 0, false},
		{"path_and_query", "/dogs/search?size=25&from=25", 25, true},
		{"absolute", "https://example.com/dogs/search?from=100&breeds=Pug", 100, true},
		{"missing_from", "/dogs/search?size=25", 0, false},
		{"not_a_number", "/dogs/search?from=abc", 0, false},
		{"negative", "/dogs/search?from=-5", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := CursorOffset(tc.cursor)
			if got != tc.want || ok != tc.wantOK {
				t.Fatalf("CursorOffset(%q) = (%d, %v), want (%d, %v)", tc.cursor, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestOrderByIDs_FollowsRequestOrder(t *testing.T) {
	dogs := []Dog{{ID: "c"}, {ID: "a"}, {ID: "b"}}
	got := OrderByIDs(dogs, []string{"a", "b", "x", "c"})
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, want := range []string{"a", "b", "c"} {
		if got[i].ID != want {
			t.Fatalf("got[%d].ID = %q, want %q", i, got[i].ID, want)
		}
	}
}
