package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"boutik/internal/pagination"
)

func newListTestContext(t *testing.T, target string) echo.Context {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec)
}

func TestParseListQuery_SeparatesPaginationFromFilters(t *testing.T) {
	allowed := pagination.NewFieldSet("name", "active")
	c := newListTestContext(t, "/shops/list?page=3&limit=25&name=Boutique&active=true")

	params, filters := parseListQuery(c, allowed, nil)

	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 25, params.Limit)
	assert.Equal(t, map[string]any{"name": "Boutique", "active": true}, filters)
}

func TestParseListQuery_DropsUnknownAndReservedKeys(t *testing.T) {
	allowed := pagination.NewFieldSet("name")
	c := newListTestContext(t, "/shops/list?page=1&limit=10&q=ignored&hack=1&name=A")

	_, filters := parseListQuery(c, allowed, nil)

	assert.Equal(t, map[string]any{"name": "A"}, filters)
}

func TestParseListQuery_CallerFiltersOverrideDefaults(t *testing.T) {
	allowed := pagination.NewFieldSet("name", "active")
	c := newListTestContext(t, "/shops/list?active=false")

	_, filters := parseListQuery(c, allowed, map[string]any{"active": true, "name": "Base"})

	assert.Equal(t, map[string]any{"active": false, "name": "Base"}, filters)
}

func TestParseListQuery_DefaultsWhenAbsent(t *testing.T) {
	c := newListTestContext(t, "/shops/list")

	params, filters := parseListQuery(c, pagination.NewFieldSet("name"), nil)

	assert.Equal(t, pagination.DefaultPage, params.Page)
	assert.Equal(t, pagination.DefaultLimit, params.Limit)
	assert.Empty(t, filters)
}
