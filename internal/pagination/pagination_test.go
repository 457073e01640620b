package pagination

import "testing"

func TestDefaults(t *testing.T) {
	tests := []struct {
		name         string
		in           PageRequest
		wantPage     int
		wantPageSize int
	}{
		{name: "zero_stays_zero", in: PageRequest{}, wantPage: 0, wantPageSize: 0},
		{name: "page_only", in: PageRequest{Page: 3}, wantPage: 3, wantPageSize: 20},
		{name: "size_only", in: PageRequest{PageSize: 5}, wantPage: 1, wantPageSize: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.in
			req.Defaults()
			if req.Page != tt.wantPage || req.PageSize != tt.wantPageSize {
				t.Errorf("got page=%d size=%d, want page=%d size=%d", req.Page, req.PageSize, tt.wantPage, tt.wantPageSize)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	req := PageRequest{Page: 3, PageSize: 10}
	if got := req.Offset(); got != 20 {
		t.Errorf("expected offset 20, got %d", got)
	}
}

func TestNewPageResponse(t *testing.T) {
	t.Run("paged", func(t *testing.T) {
		resp := NewPageResponse([]int{1, 2}, PageRequest{Page: 1, PageSize: 2}, 5)
		if resp.TotalPages != 3 {
			t.Errorf("expected 3 pages, got %d", resp.TotalPages)
		}
	})

	t.Run("unpaged", func(t *testing.T) {
		resp := NewPageResponse([]int{1, 2, 3}, PageRequest{}, 3)
		if resp.Page != 1 || resp.PageSize != 3 || resp.TotalPages != 1 {
			t.Errorf("unexpected metadata: %+v", resp)
		}
	})

	t.Run("nil_data", func(t *testing.T) {
		resp := NewPageResponse[int](nil, PageRequest{}, 0)
		if resp.Data == nil || len(resp.Data) != 0 {
			t.Errorf("expected empty non-nil slice, got %v", resp.Data)
		}
		if resp.TotalPages != 1 {
			t.Errorf("expected a single empty page, got %d", resp.TotalPages)
		}
	})
}

func TestMap(t *testing.T) {
	resp := NewPageResponse([]int{1, 2}, PageRequest{Page: 2, PageSize: 2}, 4)
	mapped := Map(resp, func(i int) string { return string(rune('a' + i)) })
	if mapped.Data[0] != "b" || mapped.Data[1] != "c" {
		t.Errorf("unexpected data: %v", mapped.Data)
	}
	if mapped.Page != 2 || mapped.TotalItems != 4 {
		t.Errorf("metadata not preserved: %+v", mapped)
	}
}
