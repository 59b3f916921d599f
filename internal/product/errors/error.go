// Package errors provides custom error types for inventory operations.
// Each business rule gets its own sentinel so callers can branch on the
// exact failure cause with errors.Is.
package errors

import "errors"

var ErrProductNotFound = errors.New("product not found")

var ErrEmptyCode = errors.New("product code must not be empty")
var ErrCodeExists = errors.New("product code already exists")
var ErrInvalidName = errors.New("product name must not be empty or consist only of digits")
var ErrEmptyCategory = errors.New("product category must not be empty")
var ErrInvalidPrice = errors.New("product price must be greater than zero")
var ErrInvalidQuantity = errors.New("product quantity must not be negative")

var ErrNoChanges = errors.New("no changes specified")
var ErrSaveFailed = errors.New("failed to save products")
