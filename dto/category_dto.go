package dto

import (
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	"catalogapi/apperrors"
)

type CategoryForm struct {
	Name        string
	Description string
}

// CategoryUpdate — all fields optional.
type CategoryUpdate struct {
	Name        *string
	Description *string
}

func ParseCategoryForm(values map[string][]string) (*CategoryForm, error) {
	form := &CategoryForm{
		Name:        strings.TrimSpace(first(values, "name")),
		Description: first(values, "description"),
	}
	if form.Name == "" {
		return nil, apperrors.Validation("name is required")
	}
	return form, nil
}

func ParseCategoryUpdate(values map[string][]string) (*CategoryUpdate, error) {
	update := &CategoryUpdate{}
	if raw, ok := has(values, "name"); ok {
		name := strings.TrimSpace(raw)
		if name == "" {
			return nil, apperrors.Validation("name cannot be empty")
		}
		update.Name = &name
	}
	if raw, ok := has(values, "description"); ok {
		update.Description = &raw
	}
	return update, nil
}

func (u *CategoryUpdate) SetFields() bson.M {
	set := bson.M{}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	return set
}
