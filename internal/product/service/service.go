// Package service provides the implementation of inventory business logic.
package service

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"unicode"

	producterrors "github.com/dparodi/gestock/internal/product/errors"
	"github.com/dparodi/gestock/internal/product/store"
	"github.com/go-playground/validator/v10"
)

// InventoryService defines the methods for managing the product collection.
// It abstracts the underlying business logic and persistence orchestration.
type InventoryService interface {
	// Add validates and appends a new product, then persists the whole
	// collection. On save failure the append is rolled back.
	Add(code, name, category string, price float64, quantity int) (*store.Product, error)

	// Update changes the price and/or quantity of an existing product in
	// place. A nil argument leaves that field untouched; both nil is
	// ErrNoChanges. Returns ErrProductNotFound if the code is absent.
	Update(code string, price *float64, quantity *int) (*store.Product, error)

	// Delete removes a product by its code and persists the collection.
	// On save failure the product is re-appended at the end.
	Delete(code string) (*store.Product, error)

	// List returns a snapshot of the collection in insertion order.
	List() []store.Product

	// FindByCode retrieves a single product by its code.
	// Returns ErrProductNotFound if no product exists with the given code.
	FindByCode(code string) (*store.Product, error)

	// FindByName returns all products whose name contains the query,
	// case-insensitively, in insertion order. An empty or whitespace-only
	// query matches nothing.
	FindByName(query string) []store.Product
}

// service implements InventoryService. It exclusively owns the in-memory
// collection, loaded once from the store at construction time.
type service struct {
	store    store.ProductStore
	products []store.Product
	validate *validator.Validate
	logger   *slog.Logger
}

// NewService creates an InventoryService whose state is loaded from the
// provided store.
func NewService(st store.ProductStore, logger *slog.Logger) InventoryService {
	v := validator.New()
	_ = v.RegisterValidation("notonlydigits", notOnlyDigits)
	return &service{
		store:    st,
		products: st.Load(),
		validate: v,
		logger:   logger.With("component", "service"),
	}
}

// Add validates every field in rule order and persists the grown collection.
func (s *service) Add(code, name, category string, price float64, quantity int) (*store.Product, error) {
	if err := s.validateNew(code, name, category, price, quantity); err != nil {
		s.logger.Warn("Rejected new product", "code", code, "error", err)
		return nil, err
	}

	product := store.Product{
		Code:     code,
		Name:     name,
		Category: category,
		Price:    price,
		Quantity: quantity,
	}
	s.products = append(s.products, product)

	if err := s.store.Save(s.products); err != nil {
		// Roll back the append so memory and disk stay consistent.
		s.products = s.products[:len(s.products)-1]
		s.logger.Error("Rolled back add after save failure", "code", code, "error", err)
		return nil, fmt.Errorf("%w: %v", producterrors.ErrSaveFailed, err)
	}

	s.logger.Info("Product added", "code", product.Code, "name", product.Name)
	return &product, nil
}

// Update validates every supplied field before mutating anything, then
// applies the changes and persists. On save failure the in-memory change
// is kept: the collection stays ahead of the file until the next
// successful save. Add and Delete roll back; Update does not.
func (s *service) Update(code string, price *float64, quantity *int) (*store.Product, error) {
	idx := s.indexOf(code)
	if idx < 0 {
		return nil, producterrors.ErrProductNotFound
	}
	if price == nil && quantity == nil {
		return nil, producterrors.ErrNoChanges
	}

	if price != nil {
		if err := s.validate.Var(*price, "gt=0"); err != nil {
			return nil, producterrors.ErrInvalidPrice
		}
	}
	if quantity != nil {
		if err := s.validate.Var(*quantity, "gte=0"); err != nil {
			return nil, producterrors.ErrInvalidQuantity
		}
	}

	if price != nil {
		s.products[idx].Price = *price
	}
	if quantity != nil {
		s.products[idx].Quantity = *quantity
	}

	if err := s.store.Save(s.products); err != nil {
		s.logger.Error("Save failed after update, in-memory state kept", "code", code, "error", err)
		return nil, fmt.Errorf("%w: %v", producterrors.ErrSaveFailed, err)
	}

	updated := s.products[idx]
	s.logger.Info("Product updated", "code", updated.Code, "name", updated.Name)
	return &updated, nil
}

// Delete removes the product with the given code and persists the
// shrunken collection.
func (s *service) Delete(code string) (*store.Product, error) {
	idx := s.indexOf(code)
	if idx < 0 {
		return nil, producterrors.ErrProductNotFound
	}

	removed := s.products[idx]
	s.products = slices.Delete(s.products, idx, idx+1)

	if err := s.store.Save(s.products); err != nil {
		// Re-append at the end; the original position is not restored.
		s.products = append(s.products, removed)
		s.logger.Error("Rolled back delete after save failure", "code", code, "error", err)
		return nil, fmt.Errorf("%w: %v", producterrors.ErrSaveFailed, err)
	}

	s.logger.Info("Product deleted", "code", removed.Code, "name", removed.Name)
	return &removed, nil
}

// List returns a detached copy of the collection.
func (s *service) List() []store.Product {
	return slices.Clone(s.products)
}

// FindByCode scans the collection for the first product with the given code.
func (s *service) FindByCode(code string) (*store.Product, error) {
	idx := s.indexOf(code)
	if idx < 0 {
		return nil, producterrors.ErrProductNotFound
	}
	found := s.products[idx]
	return &found, nil
}

// FindByName collects every product whose name contains the query.
func (s *service) FindByName(query string) []store.Product {
	query = strings.ToLower(strings.TrimSpace(query))
	matches := make([]store.Product, 0)
	if query == "" {
		return matches
	}

	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), query) {
			matches = append(matches, p)
		}
	}
	return matches
}

// validateNew runs the field checks in rule order and reports the first
// violation.
func (s *service) validateNew(code, name, category string, price float64, quantity int) error {
	if err := s.validate.Var(strings.TrimSpace(code), "required"); err != nil {
		return producterrors.ErrEmptyCode
	}
	if s.indexOf(code) >= 0 {
		return producterrors.ErrCodeExists
	}
	if err := s.validate.Var(strings.TrimSpace(name), "required,notonlydigits"); err != nil {
		return producterrors.ErrInvalidName
	}
	if err := s.validate.Var(strings.TrimSpace(category), "required"); err != nil {
		return producterrors.ErrEmptyCategory
	}
	if err := s.validate.Var(price, "gt=0"); err != nil {
		return producterrors.ErrInvalidPrice
	}
	if err := s.validate.Var(quantity, "gte=0"); err != nil {
		return producterrors.ErrInvalidQuantity
	}
	return nil
}

// indexOf returns the position of the product with the given code, or -1.
func (s *service) indexOf(code string) int {
	return slices.IndexFunc(s.products, func(p store.Product) bool {
		return p.Code == code
	})
}

// notOnlyDigits rejects values composed entirely of digit characters.
func notOnlyDigits(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, r := range value {
		if !unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
