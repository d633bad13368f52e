package pagination

import (
	"net/http/httptest"
	"testing"
)

func TestNewClamps(t *testing.T) {
	tests := []struct {
		name        string
		page, per   int
		wantPage    int
		wantPerPage int
	}{
		{"defaults", 0, 0, DefaultPage, DefaultPerPage},
		{"negative page", -3, 10, DefaultPage, 10},
		{"per page capped", 1, 500, 1, MaxPerPage},
		{"normal", 4, 25, 4, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.page, tt.per)
			if p.Page != tt.wantPage || p.PerPage != tt.wantPerPage {
				t.Errorf("New(%d, %d) = %+v", tt.page, tt.per, p)
			}
		})
	}
}

func TestNavigation(t *testing.T) {
	p := New(2, 10)
	p.SetTotal(35)

	if p.TotalPages != 4 {
		t.Errorf("TotalPages = %d, want 4", p.TotalPages)
	}
	if p.Offset() != 10 {
		t.Errorf("Offset() = %d, want 10", p.Offset())
	}
	if !p.HasPrev() || !p.HasNext() {
		t.Error("page 2 of 4 should have prev and next")
	}
	if p.Prev() != 1 || p.Next() != 3 {
		t.Errorf("Prev()/Next() = %d/%d, want 1/3", p.Prev(), p.Next())
	}

	last := New(4, 10)
	last.SetTotal(35)
	if last.HasNext() {
		t.Error("last page should not have next")
	}
	if last.Next() != 4 {
		t.Errorf("Next() on last page = %d, want 4", last.Next())
	}
}

func TestFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/?page=3&per_page=15", nil)
	p := FromRequest(r)
	if p.Page != 3 || p.PerPage != 15 {
		t.Errorf("FromRequest() = %+v", p)
	}

	r = httptest.NewRequest("GET", "/?page=2&limit=5", nil)
	p = FromRequest(r)
	if p.Page != 2 || p.PerPage != 5 {
		t.Errorf("FromRequest() with limit = %+v", p)
	}

	r = httptest.NewRequest("GET", "/?page=bogus", nil)
	p = FromRequest(r)
	if p.Page != DefaultPage || p.PerPage != DefaultPerPage {
		t.Errorf("FromRequest() with bogus input = %+v", p)
	}
}
