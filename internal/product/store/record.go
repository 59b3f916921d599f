package store

import (
	"encoding/json"
	"errors"
	"fmt"
)

// MissingFieldError reports a persisted record without a required key.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %q", e.Field)
}

// TypeCoercionError reports a numeric field whose value could not be
// coerced to its numeric type.
type TypeCoercionError struct {
	Field string
	Value string
}

func (e *TypeCoercionError) Error() string {
	return fmt.Sprintf("field %q is not a number (got %s)", e.Field, e.Value)
}

// productRecord is the wire form of a Product. Pointer fields distinguish
// absent keys from zero values.
type productRecord struct {
	Code     *string  `json:"codigo"`
	Name     *string  `json:"nombre"`
	Category *string  `json:"categoria"`
	Price    *float64 `json:"precio"`
	Quantity *float64 `json:"cantidad"`
}

// decodeProduct converts one raw JSON record into a Product. Business
// validation does not happen here; records written by earlier runs are
// trusted. A fractional quantity truncates to int.
func decodeProduct(raw json.RawMessage) (Product, error) {
	var rec productRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && (typeErr.Field == "precio" || typeErr.Field == "cantidad") {
			return Product{}, &TypeCoercionError{Field: typeErr.Field, Value: typeErr.Value}
		}
		return Product{}, err
	}

	switch {
	case rec.Code == nil:
		return Product{}, &MissingFieldError{Field: "codigo"}
	case rec.Name == nil:
		return Product{}, &MissingFieldError{Field: "nombre"}
	case rec.Category == nil:
		return Product{}, &MissingFieldError{Field: "categoria"}
	case rec.Price == nil:
		return Product{}, &MissingFieldError{Field: "precio"}
	case rec.Quantity == nil:
		return Product{}, &MissingFieldError{Field: "cantidad"}
	}

	return Product{
		Code:     *rec.Code,
		Name:     *rec.Name,
		Category: *rec.Category,
		Price:    *rec.Price,
		Quantity: int(*rec.Quantity),
	}, nil
}
