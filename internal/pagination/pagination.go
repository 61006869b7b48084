// Package pagination implements the shared list envelope used by every
// collection endpoint: page and limit parsing with clamping, filter
// sanitization against a per-entity allow-list, and the response page
// with its total counters.
package pagination

import (
	"strconv"
	"strings"
)

const (
	// DefaultPage is used when the page parameter is missing or invalid.
	DefaultPage = 1

	// DefaultLimit is used when the limit parameter is missing or invalid.
	DefaultLimit = 10

	// MaxLimit caps the page size regardless of what the caller asks for.
	MaxLimit = 100
)

// Params holds normalized pagination inputs.
type Params struct {
	Page  int
	Limit int
}

// ParseParams normalizes raw page and limit query values. Non-numeric or
// zero values fall back to defaults; a numeric limit is then clamped to
// [1, MaxLimit], so a negative limit becomes 1 rather than the default.
func ParseParams(rawPage, rawLimit string) Params {
	page := DefaultPage
	if v, err := strconv.Atoi(strings.TrimSpace(rawPage)); err == nil && v >= 1 {
		page = v
	}

	limit := DefaultLimit
	if v, err := strconv.Atoi(strings.TrimSpace(rawLimit)); err == nil && v != 0 {
		limit = v
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{Page: page, Limit: limit}
}

// Offset returns the number of rows to skip for the current page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// FieldSet is the allow-list of filterable fields for one entity.
type FieldSet map[string]struct{}

// NewFieldSet builds a FieldSet from field names.
func NewFieldSet(fields ...string) FieldSet {
	set := make(FieldSet, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// Allows reports whether the field may be used as a filter.
func (s FieldSet) Allows(field string) bool {
	_, ok := s[field]
	return ok
}

// SanitizeFilters keeps only allow-listed keys and coerces string values
// into their typed form. Keys that are empty, underscore-prefixed, equal
// to "id", or not in the allow-list are dropped, as are empty values.
// "true" and "false" become booleans and numeric strings become numbers;
// anything else passes through as a string.
func SanitizeFilters(raw map[string]string, allowed FieldSet) map[string]any {
	out := make(map[string]any, len(raw))
	for key, value := range raw {
		key = strings.TrimSpace(key)
		if key == "" || key == "id" || strings.HasPrefix(key, "_") {
			continue
		}
		if !allowed.Allows(key) {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		out[key] = coerceValue(value)
	}
	return out
}

// coerceValue turns a query string into a bool, integer, float, or
// leaves it as a string. Integers are tried before floats so "3" stays
// an int64.
func coerceValue(value string) any {
	switch value {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	return value
}

// MergeFilters overlays sanitized caller filters on top of handler
// defaults. Caller values win on key collision.
func MergeFilters(defaults, sanitized map[string]any) map[string]any {
	merged := make(map[string]any, len(defaults)+len(sanitized))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range sanitized {
		merged[k] = v
	}
	return merged
}

// Page is the envelope returned by every paginated endpoint. The
// documents/totalDocuments/filtre key names are part of the public API.
type Page[T any] struct {
	Items      []T            `json:"documents"`
	Total      int64          `json:"totalDocuments"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"totalPages"`
	Filters    map[string]any `json:"filtre"`
}

// NewPage assembles the envelope, deriving totalPages from the total row
// count and the page size. An empty result still reports page and limit.
func NewPage[T any](items []T, total int64, params Params, filters map[string]any) Page[T] {
	if items == nil {
		items = []T{}
	}
	if filters == nil {
		filters = map[string]any{}
	}
	return Page[T]{
		Items:      items,
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: totalPages(total, params.Limit),
		Filters:    filters,
	}
}

func totalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return int(pages)
}
