package ui

import "testing"

func TestTruncate(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"fits", "Beagle", 10, "Beagle"},
		{"trims", "  Beagle  ", 10, "Beagle"},
		{"ellipsis", "Labrador Retriever", 10, "Labrado..."},
		{"tiny", "Labrador", 2, "La"},
		{"no_limit", "Labrador", 0, "Labrador"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := truncate(tc.in, tc.limit); got != tc.want {
				t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
			}
		})
	}
}

func TestTruncateMiddle(t *testing.T) {
	if got := truncateMiddle("  ", 10); got != "" {
		t.Fatalf("truncateMiddle blank = %q, want empty", got)
	}
	if got := truncateMiddle("abcd", 2); got != "ab" {
		t.Fatalf("truncateMiddle limit<=3 = %q, want ab", got)
	}
	if got := truncateMiddle("https://example.com/dogs/1.jpg", 11); got != "https…1.jpg" {
		t.Fatalf("truncateMiddle = %q", got)
	}
}

func TestFitColumn(t *testing.T) {
	if got := fitColumn("Rex", 6); got != "Rex   " {
		t.Fatalf("fitColumn pad = %q", got)
	}
	if got := fitColumn("Bernese Mountain Dog", 8); got != "Berne..." {
		t.Fatalf("fitColumn truncate = %q", got)
	}
}

func TestTitleCase(t *testing.T) {
	if got := titleCase("sort_field"); got != "Sort Field" {
		t.Fatalf("titleCase = %q", got)
	}
	if got := titleCase("age"); got != "Age" {
		t.Fatalf("titleCase = %q", got)
	}
}

func TestFormatAge(t *testing.T) {
	if got := formatAge(1); got != "1 yr" {
		t.Fatalf("formatAge(1) = %q", got)
	}
	if got := formatAge(0); got != "0 yrs" {
		t.Fatalf("formatAge(0) = %q", got)
	}
}
