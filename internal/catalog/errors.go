package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidProduct = errors.New("invalid product")
	ErrDuplicateCode  = errors.New("product code already exists")
	ErrNotFound       = errors.New("product not found")
	ErrStore          = errors.New("product store failure")
)

// ValidationError names the first product field that failed a rule.
type ValidationError struct {
	Field string
	Rule  string
}

func (e *ValidationError) Error() string {
	if e.Rule == "required" {
		return fmt.Sprintf("%s: missing required field %q", ErrInvalidProduct, e.Field)
	}
	return fmt.Sprintf("%s: field %q failed %q", ErrInvalidProduct, e.Field, e.Rule)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidProduct }

// StoreError wraps a failure of the persistence collaborator.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStore, e.Op, e.Err)
}

func (e *StoreError) Unwrap() []error { return []error{ErrStore, e.Err} }
