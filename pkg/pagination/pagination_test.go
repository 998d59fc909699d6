// Copyright (c) 2026 Pulse. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/pulse/pkg/pagination"
)

/*
TestFromRequestWithLimit checks page parsing under a fixed route page size.
*/
func TestFromRequestWithLimit(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		limit      int
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{"default_page", "/posts", 10, 1, 10, 0},
		{"explicit_page", "/posts?page=3", 10, 3, 10, 20},
		{"negative_page", "/posts?page=-1", 10, 1, 10, 0},
		{"garbage_page", "/posts?page=abc", 10, 1, 10, 0},
		{"client_limit_ignored", "/posts?page=2&limit=50", 5, 2, 5, 5},
		{"zero_limit_falls_back", "/posts", 0, 1, pagination.DefaultLimit, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", tt.url, nil)

			params := pagination.FromRequestWithLimit(request, tt.limit)

			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantLimit, params.Limit)
			assert.Equal(t, tt.wantOffset, params.Offset())
		})
	}
}

/*
TestNewMeta checks total page computation, including partial last pages.
*/
func TestNewMeta(t *testing.T) {
	tests := []struct {
		name           string
		total          int
		limit          int
		wantTotalPages int
	}{
		{"exact_pages", 20, 10, 2},
		{"partial_last_page", 12, 10, 2},
		{"single_item", 1, 10, 1},
		{"empty", 0, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := pagination.NewMeta(1, tt.limit, tt.total)
			assert.Equal(t, tt.wantTotalPages, meta.TotalPages)
			assert.Equal(t, tt.total, meta.Total)
		})
	}
}
