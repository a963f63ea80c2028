package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogapi/apperrors"
)

func TestParseCategoryForm(t *testing.T) {
	form, err := ParseCategoryForm(map[string][]string{
		"name":        {" Chairs "},
		"description": {"all kinds"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Chairs", form.Name)
	assert.Equal(t, "all kinds", form.Description)
}

func TestParseCategoryFormRequiresName(t *testing.T) {
	_, err := ParseCategoryForm(map[string][]string{"description": {"x"}})

	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestParseCategoryUpdateOnlyProvidedFields(t *testing.T) {
	update, err := ParseCategoryUpdate(map[string][]string{"description": {"new text"}})
	require.NoError(t, err)

	set := update.SetFields()
	require.Len(t, set, 1)
	assert.Equal(t, "new text", set["description"])
}

func TestParseCategoryUpdateRejectsEmptyName(t *testing.T) {
	_, err := ParseCategoryUpdate(map[string][]string{"name": {""}})

	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
}
