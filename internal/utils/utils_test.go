package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserContext(t *testing.T) {
	t.Run("SetUserContext and GetUserIDFromContext", func(t *testing.T) {
		ctx := SetUserContext(context.Background(), 100, "user@example.com", RoleAdmin)

		id, ok := GetUserIDFromContext(ctx)
		assert.True(t, ok)
		assert.Equal(t, uint(100), id)
		assert.Equal(t, "user@example.com", GetUserEmailFromContext(ctx))
		assert.Equal(t, RoleAdmin, GetUserRoleFromContext(ctx))
		assert.True(t, IsAdmin(ctx))
	})

	t.Run("GetUserIDFromContext with empty context", func(t *testing.T) {
		_, ok := GetUserIDFromContext(context.Background())
		assert.False(t, ok)
		assert.False(t, IsAdmin(context.Background()))
	})
}

func TestSessionToken(t *testing.T) {
	assert.Empty(t, GetSessionTokenFromContext(context.Background()))

	ctx := WithSessionToken(context.Background(), "abc")
	assert.Equal(t, "abc", GetSessionTokenFromContext(ctx))
}

func TestIsInternalRequest(t *testing.T) {
	assert.False(t, IsInternalRequest(context.Background()))
	assert.True(t, IsInternalRequest(WithInternalRequest(context.Background())))
}

func TestToUint(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  uint
		expectErr bool
	}{
		{name: "Valid number", input: "123", expected: 123},
		{name: "Zero", input: "0", expected: 0},
		{name: "Negative number", input: "-1", expectErr: true},
		{name: "Non-numeric string", input: "abc", expectErr: true},
		{name: "Empty string", input: "", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ToUint(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Simple", input: "Product Name", expected: "product-name"},
		{name: "With Special Chars", input: "Product & Name!", expected: "product-name"},
		{name: "Multiple Spaces", input: "  Product   Name ", expected: "product-name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}

func TestPtrHelpers(t *testing.T) {
	assert.Equal(t, "test", PtrString(StrPtr("test")))
	assert.Equal(t, "", PtrString(nil))
}

func TestWriteJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSONError(w, "error message", http.StatusBadRequest)

	resp := w.Result()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "error message", body["error"])
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	t.Run("Valid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
		var p payload
		require.NoError(t, DecodeJSON(req, &p))
		assert.Equal(t, "x", p.Name)
	})

	t.Run("Empty", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
		var p payload
		assert.ErrorIs(t, DecodeJSON(req, &p), ErrEmptyBody)
	})

	t.Run("Malformed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
		var p payload
		err := DecodeJSON(req, &p)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid JSON body")
	})
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query       string
		page, limit int
	}{
		{"", 1, DefaultPageLimit},
		{"page=3&limit=20", 3, 20},
		{"page=-1&limit=0", 1, DefaultPageLimit},
		{"page=abc&limit=1000", 1, MaxPageLimit},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			page, limit := ParsePagination(req)
			assert.Equal(t, tt.page, page)
			assert.Equal(t, tt.limit, limit)
		})
	}
}

func TestTotalPagesAndOffset(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 0, TotalPages(5, 0))

	assert.Equal(t, 0, Offset(1, 10))
	assert.Equal(t, 20, Offset(3, 10))
	assert.Equal(t, 0, Offset(0, 10))
}
