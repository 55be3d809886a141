package listutil

import (
	"net/url"
	"testing"
)

func TestParsePageParams(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		wantPage    int
		wantPerPage int
	}{
		{"defaults", "", 1, DefaultPerPage},
		{"explicit", "page=3&per_page=50", 3, 50},
		{"zero page clamps", "page=0", 1, DefaultPerPage},
		{"negative page clamps", "page=-2", 1, DefaultPerPage},
		{"disallowed per_page falls back", "per_page=37", 1, DefaultPerPage},
		{"garbage ignored", "page=abc&per_page=xyz", 1, DefaultPerPage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, _ := url.ParseQuery(tt.query)
			p := ParsePageParams(q)
			if p.Page != tt.wantPage || p.PerPage != tt.wantPerPage {
				t.Errorf("got page=%d per_page=%d, want page=%d per_page=%d",
					p.Page, p.PerPage, tt.wantPage, tt.wantPerPage)
			}
		})
	}
}

func TestNewPageInfo(t *testing.T) {
	info := NewPageInfo(2, 10, 35)
	if info.TotalPages != 4 {
		t.Errorf("total pages = %d, want 4", info.TotalPages)
	}
	if info.Offset() != 10 {
		t.Errorf("offset = %d, want 10", info.Offset())
	}

	// Page beyond the end clamps to the last page
	info = NewPageInfo(9, 10, 35)
	if info.Page != 4 {
		t.Errorf("page = %d, want 4", info.Page)
	}

	// Empty result still reports one page
	info = NewPageInfo(1, 10, 0)
	if info.TotalPages != 1 {
		t.Errorf("total pages = %d, want 1", info.TotalPages)
	}
}

func TestPaginate(t *testing.T) {
	rows := make([]int, 0, 25)
	for i := 0; i < 25; i++ {
		rows = append(rows, i)
	}

	page, info := Paginate(rows, PageParams{Page: 2, PerPage: 10})
	if len(page) != 10 || page[0] != 10 {
		t.Errorf("page 2 = %v", page)
	}
	if info.Total != 25 || info.TotalPages != 3 {
		t.Errorf("info = %+v", info)
	}

	// Last partial page
	page, _ = Paginate(rows, PageParams{Page: 3, PerPage: 10})
	if len(page) != 5 || page[0] != 20 {
		t.Errorf("page 3 = %v", page)
	}

	// Empty input
	page, info = Paginate([]int{}, PageParams{Page: 1, PerPage: 10})
	if len(page) != 0 || info.Total != 0 {
		t.Errorf("empty = %v %+v", page, info)
	}
}
