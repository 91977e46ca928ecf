package pagination

import "testing"

func TestNormalizeDefaults(t *testing.T) {
	got := Params{}.Normalize()
	if got.Page != FirstPage || got.PerPage != DefaultPerPage {
		t.Fatalf("unexpected defaults %+v", got)
	}
	if got := (Params{Page: 3, PerPage: 1000}).Normalize(); got.PerPage != MaxPerPage || got.Page != 3 {
		t.Fatalf("expected clamp, got %+v", got)
	}
}

func TestOffset(t *testing.T) {
	cases := []struct {
		params Params
		want   int
	}{
		{Params{}, 0},
		{Params{Page: 2}, 2},
		{Params{Page: 3, PerPage: 5}, 10},
	}
	for _, tc := range cases {
		if got := tc.params.Offset(); got != tc.want {
			t.Fatalf("offset(%+v) = %d want %d", tc.params, got, tc.want)
		}
	}
}

func TestNewPage(t *testing.T) {
	page := NewPage[string](Params{Page: 9}, 3, nil)
	if page.Results == nil || len(page.Results) != 0 {
		t.Fatalf("expected empty non-nil results, got %#v", page.Results)
	}
	if page.Page != 9 || page.Count != 3 {
		t.Fatalf("unexpected page beyond the last %+v", page)
	}

	first := NewPage(Params{}, 3, []string{"a", "b"})
	if first.Page != 1 || first.PerPage != DefaultPerPage || first.Count != 3 || len(first.Results) != 2 {
		t.Fatalf("unexpected first page %+v", first)
	}
}
