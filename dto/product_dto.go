package dto

import (
	"encoding/json"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	"catalogapi/apperrors"
)

// ProductForm is parsed from the multipart form values on create.
type ProductForm struct {
	Name        string
	Description string
	Price       float64
	Stock       int
}

// ProductUpdate carries only the fields present in the request.
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	Stock       *int
}

func ParseProductForm(values map[string][]string) (*ProductForm, error) {
	form := &ProductForm{
		Name:        strings.TrimSpace(first(values, "name")),
		Description: first(values, "description"),
	}
	if form.Name == "" {
		return nil, apperrors.Validation("name is required")
	}
	if raw := first(values, "price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, apperrors.Validation("invalid price %q", raw)
		}
		form.Price = price
	}
	if raw := first(values, "stock"); raw != "" {
		stock, err := strconv.Atoi(raw)
		if err != nil {
			return nil, apperrors.Validation("invalid stock %q", raw)
		}
		form.Stock = stock
	}
	return form, nil
}

func ParseProductUpdate(values map[string][]string) (*ProductUpdate, error) {
	update := &ProductUpdate{}
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
	if raw, ok := has(values, "price"); ok {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, apperrors.Validation("invalid price %q", raw)
		}
		update.Price = &price
	}
	if raw, ok := has(values, "stock"); ok {
		stock, err := strconv.Atoi(raw)
		if err != nil {
			return nil, apperrors.Validation("invalid stock %q", raw)
		}
		update.Stock = &stock
	}
	return update, nil
}

// SetFields returns the $set document for the provided fields only.
func (u *ProductUpdate) SetFields() bson.M {
	set := bson.M{}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.Price != nil {
		set["price"] = *u.Price
	}
	if u.Stock != nil {
		set["stock"] = *u.Stock
	}
	return set
}

// ParseCategoryIDs parses the "category" form field, a JSON object of the
// shape {"ids":["..."]}. Duplicates are dropped keeping first occurrence, so
// the persisted value is always a set.
func ParseCategoryIDs(raw string) ([]bson.ObjectID, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, apperrors.Validation("category is required")
	}
	var payload struct {
		IDs []string `json:"ids"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, apperrors.Validation("invalid category payload: %v", err)
	}
	seen := make(map[string]struct{}, len(payload.IDs))
	ids := make([]bson.ObjectID, 0, len(payload.IDs))
	for _, hex := range payload.IDs {
		if _, dup := seen[hex]; dup {
			continue
		}
		seen[hex] = struct{}{}
		id, err := bson.ObjectIDFromHex(hex)
		if err != nil {
			return nil, apperrors.Validation("invalid category id %q", hex)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func first(values map[string][]string, key string) string {
	if vs := values[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

func has(values map[string][]string, key string) (string, bool) {
	if vs, ok := values[key]; ok && len(vs) > 0 {
		return vs[0], true
	}
	return "", false
}
