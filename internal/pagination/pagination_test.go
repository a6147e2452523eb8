package pagination

import "testing"

func TestDefaultsWithSize(t *testing.T) {
	tests := []struct {
		name     string
		in       PageRequest
		size     int
		wantPage int
		wantSize int
	}{
		{"empty_uses_default", PageRequest{}, 12, 1, 12},
		{"explicit_kept", PageRequest{Page: 3, PageSize: 5}, 12, 3, 5},
		{"negative_page", PageRequest{Page: -2, PageSize: 5}, 12, 1, 5},
		{"oversized_clamped", PageRequest{Page: 1, PageSize: 500}, 12, 1, MaxPageSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			p.DefaultsWithSize(tt.size)
			if p.Page != tt.wantPage || p.PageSize != tt.wantSize {
				t.Errorf("got page=%d size=%d, want page=%d size=%d", p.Page, p.PageSize, tt.wantPage, tt.wantSize)
			}
		})
	}
}

func TestNewPageResponse(t *testing.T) {
	resp := NewPageResponse[int](nil, 2, 10, 25)
	if resp.TotalPages != 3 {
		t.Errorf("expected 3 total pages, got %d", resp.TotalPages)
	}
	if resp.Data == nil {
		t.Error("expected empty slice, got nil")
	}
	if off := (&PageRequest{Page: 2, PageSize: 10}).Offset(); off != 10 {
		t.Errorf("expected offset 10, got %d", off)
	}
}
