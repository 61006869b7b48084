package pagination

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParams(t *testing.T) {
	tests := []struct {
		name      string
		rawPage   string
		rawLimit  string
		wantPage  int
		wantLimit int
	}{
		{name: "defaults", rawPage: "", rawLimit: "", wantPage: 1, wantLimit: 10},
		{name: "explicit", rawPage: "3", rawLimit: "25", wantPage: 3, wantLimit: 25},
		{name: "zero page falls back", rawPage: "0", rawLimit: "10", wantPage: 1, wantLimit: 10},
		{name: "negative page falls back", rawPage: "-2", rawLimit: "10", wantPage: 1, wantLimit: 10},
		{name: "non numeric falls back", rawPage: "abc", rawLimit: "xyz", wantPage: 1, wantLimit: 10},
		{name: "limit clamped to max", rawPage: "1", rawLimit: "500", wantPage: 1, wantLimit: 100},
		{name: "zero limit falls back", rawPage: "1", rawLimit: "0", wantPage: 1, wantLimit: 10},
		{name: "negative limit clamped to one", rawPage: "1", rawLimit: "-5", wantPage: 1, wantLimit: 1},
		{name: "whitespace tolerated", rawPage: " 2 ", rawLimit: " 5 ", wantPage: 2, wantLimit: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := ParseParams(tt.rawPage, tt.rawLimit)
			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantLimit, params.Limit)
		})
	}
}

func TestParamsOffset(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, Params{Page: 3, Limit: 10}.Offset())
	assert.Equal(t, 50, Params{Page: 2, Limit: 50}.Offset())
}

func TestSanitizeFilters(t *testing.T) {
	allowed := NewFieldSet("name", "active", "city", "stock", "price")

	raw := map[string]string{
		"name":    "  Boutique ",
		"active":  "true",
		"stock":   "42",
		"price":   "19.99",
		"city":    "",
		"id":      "abc",
		"_secret": "x",
		"role":    "admin",
	}

	got := SanitizeFilters(raw, allowed)

	assert.Equal(t, map[string]any{
		"name":   "Boutique",
		"active": true,
		"stock":  int64(42),
		"price":  19.99,
	}, got)
}

func TestSanitizeFilters_BooleanAndNumberCoercion(t *testing.T) {
	allowed := NewFieldSet("a", "b", "c", "d")

	got := SanitizeFilters(map[string]string{
		"a": "false",
		"b": "007",
		"c": "1e3",
		"d": "True",
	}, allowed)

	assert.Equal(t, false, got["a"])
	assert.Equal(t, int64(7), got["b"])
	assert.Equal(t, 1000.0, got["c"])
	// Only lowercase literals coerce, anything else stays a string.
	assert.Equal(t, "True", got["d"])
}

func TestMergeFilters_SanitizedWins(t *testing.T) {
	defaults := map[string]any{"active": true, "city": "Lyon"}
	sanitized := map[string]any{"active": false, "name": "Mode"}

	got := MergeFilters(defaults, sanitized)

	assert.Equal(t, map[string]any{
		"active": false,
		"city":   "Lyon",
		"name":   "Mode",
	}, got)
}

func TestNewPage(t *testing.T) {
	params := Params{Page: 2, Limit: 10}
	page := NewPage([]string{"a", "b"}, 25, params, map[string]any{"active": true})

	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 10, page.Limit)
	assert.Equal(t, int64(25), page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, map[string]any{"active": true}, page.Filters)
}

func TestNewPage_EmptyResult(t *testing.T) {
	page := NewPage[string](nil, 0, Params{Page: 1, Limit: 10}, nil)

	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.TotalPages)
	assert.NotNil(t, page.Filters)
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int
	}{
		{total: 0, limit: 10, want: 0},
		{total: 1, limit: 10, want: 1},
		{total: 10, limit: 10, want: 1},
		{total: 11, limit: 10, want: 2},
		{total: 100, limit: 100, want: 1},
		{total: 101, limit: 100, want: 2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, totalPages(tt.total, tt.limit), "total=%d limit=%d", tt.total, tt.limit)
	}
}

func TestPage_EnvelopeKeys(t *testing.T) {
	page := NewPage([]string{"a"}, 1, Params{Page: 1, Limit: 10}, map[string]any{"active": true})

	raw, err := json.Marshal(page)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	for _, key := range []string{"documents", "totalDocuments", "page", "limit", "totalPages", "filtre"} {
		assert.Contains(t, decoded, key)
	}
}
