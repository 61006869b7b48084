package model

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boutik/internal/domain/entity"
)

// A name that passes entity validation must also fit the column, or a
// valid create fails at insert time with an opaque database error.
func TestCategoryModel_NameColumnFitsValidatedNames(t *testing.T) {
	longest := &entity.Category{Name: strings.Repeat("a", 100)}
	require.NoError(t, longest.Validate())

	field, ok := reflect.TypeOf(CategoryModel{}).FieldByName("Name")
	require.True(t, ok)
	assert.Contains(t, field.Tag.Get("gorm"), "varchar(100)")
}
