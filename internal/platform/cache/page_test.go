// Copyright (c) 2026 Pulse. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cache_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/pulse/internal/platform/cache"
)

/*
TestRequestKey checks that each page of a paginated listing gets its own key.
*/
func TestRequestKey(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"bare_path", "/api/v1/posts", "/api/v1/posts"},
		{"with_page", "/api/v1/posts?page=2", "/api/v1/posts?page=2"},
		{"query_order_preserved", "/api/v1/posts?page=2&limit=10", "/api/v1/posts?page=2&limit=10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", tt.url, nil)
			assert.Equal(t, tt.want, cache.RequestKey(request))
		})
	}
}
