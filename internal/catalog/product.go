package catalog

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Bundle is the plain serialized form of a Product.
// Field order matches the persisted JSON layout.
type Bundle struct {
	Title       string  `json:"title" validate:"required"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Description string  `json:"description" validate:"required"`
	Thumbnail   string  `json:"thumbnail" validate:"required"`
	Code        string  `json:"code" validate:"required"`
	Stock       int     `json:"stock" validate:"required,gt=0"`
	ID          string  `json:"id"`
}

// Product is an immutable catalog entry. Build one with NewProduct or
// ProductFromBundle; the zero value is not a valid product.
type Product struct {
	title       string
	price       float64
	description string
	thumbnail   string
	code        string
	stock       int
	id          string
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func NewProduct(title string, price float64, description, thumbnail, code string, stock int) (Product, error) {
	return ProductFromBundle(Bundle{
		Title:       title,
		Price:       price,
		Description: description,
		Thumbnail:   thumbnail,
		Code:        code,
		Stock:       stock,
	})
}

// ProductFromBundle validates b and assigns a fresh id. b.ID is ignored.
func ProductFromBundle(b Bundle) (Product, error) {
	if err := validateBundle(b); err != nil {
		return Product{}, err
	}
	return productOf(b, NewID()), nil
}

// restoreProduct rebuilds a persisted product, keeping its id when it is
// well formed.
func restoreProduct(b Bundle) (Product, bool, error) {
	if err := validateBundle(b); err != nil {
		return Product{}, false, err
	}
	if IsID(b.ID) {
		return productOf(b, b.ID), false, nil
	}
	return productOf(b, NewID()), true, nil
}

func productOf(b Bundle, id string) Product {
	return Product{
		title:       b.Title,
		price:       b.Price,
		description: b.Description,
		thumbnail:   b.Thumbnail,
		code:        b.Code,
		stock:       b.Stock,
		id:          id,
	}
}

func validateBundle(b Bundle) error {
	if err := validate.Struct(b); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return &ValidationError{Field: fieldErrs[0].Field(), Rule: fieldErrs[0].Tag()}
		}
		return err
	}
	if math.IsInf(b.Price, 0) {
		return &ValidationError{Field: "price", Rule: "finite"}
	}
	return nil
}

// valid reports an error for products that did not come from a constructor.
func (p Product) valid() error {
	if err := validateBundle(p.Bundle()); err != nil {
		return err
	}
	if !IsID(p.id) {
		return &ValidationError{Field: "id", Rule: "uuid4"}
	}
	return nil
}

func (p Product) Title() string       { return p.title }
func (p Product) Price() float64      { return p.price }
func (p Product) Description() string { return p.description }
func (p Product) Thumbnail() string   { return p.thumbnail }
func (p Product) Code() string        { return p.code }
func (p Product) Stock() int          { return p.stock }
func (p Product) ID() string          { return p.id }

func (p Product) Bundle() Bundle {
	return Bundle{
		Title:       p.title,
		Price:       p.price,
		Description: p.description,
		Thumbnail:   p.thumbnail,
		Code:        p.code,
		Stock:       p.stock,
		ID:          p.id,
	}
}

func (p Product) String() string {
	return fmt.Sprintf("Title: %s, Price: %v, Id: %s, Code: %s", p.title, p.price, p.id, p.code)
}
