package pagination_test

import (
	"math"
	"net/url"
	"strconv"
	"testing"

	"github.com/JaimeStill/promptbench/pkg/pagination"
)

var cfg = pagination.Config{DefaultPageSize: 10, MaxPageSize: 50}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name         string
		in           pagination.PageRequest
		wantPage     int
		wantPageSize int
	}{
		{"zero values", pagination.PageRequest{}, 1, 10},
		{"negative page", pagination.PageRequest{Page: -2, PageSize: 5}, 1, 5},
		{"clamped size", pagination.PageRequest{Page: 3, PageSize: 500}, 3, 50},
		{"page beyond offset range", pagination.PageRequest{Page: math.MaxInt, PageSize: 100}, math.MaxInt / 50, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.in
			req.Normalize(cfg)
			if req.Page != tt.wantPage || req.PageSize != tt.wantPageSize {
				t.Errorf("got page=%d size=%d, want page=%d size=%d",
					req.Page, req.PageSize, tt.wantPage, tt.wantPageSize)
			}
		})
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	req := pagination.PageRequestFromQuery(url.Values{
		"page":      {"2"},
		"page_size": {"abc"},
		"search":    {"  cat  "},
	}, cfg)

	if req.Page != 2 || req.PageSize != 10 {
		t.Errorf("got page=%d size=%d", req.Page, req.PageSize)
	}
	if req.Search == nil || *req.Search != "cat" {
		t.Errorf("search = %v", req.Search)
	}

	if blank := pagination.PageRequestFromQuery(url.Values{"search": {" "}}, cfg); blank.Search != nil {
		t.Error("blank search should be nil")
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	tests := []struct {
		name      string
		page      int
		size      int
		wantData  []int
		wantPages int
	}{
		{"first page", 1, 3, []int{1, 2, 3}, 3},
		{"last partial page", 3, 3, []int{7}, 3},
		{"past the end", 9, 3, []int{}, 3},
		{"single page", 1, 10, items, 1},
		{"max page", math.MaxInt, 3, []int{}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pagination.Paginate(items, pagination.PageRequest{Page: tt.page, PageSize: tt.size})

			if got.Total != len(items) || got.TotalPages != tt.wantPages {
				t.Errorf("total=%d pages=%d", got.Total, got.TotalPages)
			}
			if len(got.Data) != len(tt.wantData) {
				t.Fatalf("data = %v, want %v", got.Data, tt.wantData)
			}
			for i := range got.Data {
				if got.Data[i] != tt.wantData[i] {
					t.Errorf("data = %v, want %v", got.Data, tt.wantData)
					break
				}
			}
		})
	}
}

func TestPaginateHugePageFromQuery(t *testing.T) {
	req := pagination.PageRequestFromQuery(url.Values{
		"page":      {strconv.Itoa(math.MaxInt)},
		"page_size": {"100"},
	}, cfg)

	got := pagination.Paginate([]int{1, 2, 3}, req)
	if len(got.Data) != 0 || got.Total != 3 {
		t.Errorf("result = %+v", got)
	}
}

func TestEmptyResult(t *testing.T) {
	got := pagination.Paginate([]string{}, pagination.PageRequest{Page: 1, PageSize: 10})
	if got.Data == nil || got.TotalPages != 1 {
		t.Errorf("empty result = %+v", got)
	}
}

func TestConfigFinalize(t *testing.T) {
	t.Setenv("TEST_PAGE_SIZE", "25")

	c := pagination.Config{}
	if err := c.Finalize(&pagination.ConfigEnv{DefaultPageSize: "TEST_PAGE_SIZE"}); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if c.DefaultPageSize != 25 || c.MaxPageSize != 100 {
		t.Errorf("config = %+v", c)
	}

	bad := pagination.Config{DefaultPageSize: 200, MaxPageSize: 100}
	if err := bad.Finalize(nil); err == nil {
		t.Error("default above max should fail")
	}
}
