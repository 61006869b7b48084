package handler

import (
	"github.com/labstack/echo/v4"

	"boutik/internal/pagination"
)

// query parameters consumed by pagination itself, never treated as filters.
const (
	queryParamPage  = "page"
	queryParamLimit = "limit"
	queryParamTerm  = "q"
)

// parseListQuery extracts pagination parameters and sanitized filters from
// the request query string, overlaid on the handler's default filters.
// Unknown or empty filter fields are dropped silently so a stray query
// parameter never breaks a listing.
func parseListQuery(c echo.Context, allowed pagination.FieldSet, defaults map[string]any) (pagination.Params, map[string]any) {
	params := pagination.ParseParams(c.QueryParam(queryParamPage), c.QueryParam(queryParamLimit))

	raw := make(map[string]string)
	for key, values := range c.QueryParams() {
		if key == queryParamPage || key == queryParamLimit || key == queryParamTerm {
			continue
		}
		if len(values) == 0 {
			continue
		}
		raw[key] = values[0]
	}

	return params, pagination.MergeFilters(defaults, pagination.SanitizeFilters(raw, allowed))
}
