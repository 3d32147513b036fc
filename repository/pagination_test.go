package repository

import "testing"

func TestPaginationOffset(t *testing.T) {
	cases := []struct {
		page, size, offset int
	}{
		{1, 20, 0},
		{2, 20, 20},
		{3, 7, 14},
		{10, 1, 9},
	}

	for _, tc := range cases {
		p := Pagination{Page: tc.page, Size: tc.size}
		if got := p.Offset(); got != tc.offset {
			t.Errorf("Offset(page=%d, size=%d) = %d, want %d", tc.page, tc.size, got, tc.offset)
		}
	}
}

func TestPaginationValidate(t *testing.T) {
	for _, p := range []Pagination{{0, 20}, {1, 0}, {-1, 5}, {2, -3}} {
		if err := p.Validate(); err == nil {
			t.Errorf("Validate(%+v) = nil, want error", p)
		}
	}
	if err := (Pagination{Page: 1, Size: 1}).Validate(); err != nil {
		t.Errorf("Validate({1,1}) = %v, want nil", err)
	}
}

func TestNewResultTotals(t *testing.T) {
	cases := []struct {
		total, size, pages int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{100, 7, 15},
	}

	for _, tc := range cases {
		res := NewResult([]int{}, tc.total, Pagination{Page: 1, Size: tc.size})
		if res.TotalPages != tc.pages {
			t.Errorf("TotalPages(total=%d, size=%d) = %d, want %d", tc.total, tc.size, res.TotalPages, tc.pages)
		}
	}
}

func TestNewResultEmptySet(t *testing.T) {
	res := NewResult[int](nil, 0, Pagination{Page: 1, Size: 10})
	if res.TotalPages != 0 {
		t.Fatalf("TotalPages = %d, want 0", res.TotalPages)
	}
	if res.Items == nil || len(res.Items) != 0 {
		t.Fatalf("Items = %v, want empty non-nil sequence", res.Items)
	}
}
