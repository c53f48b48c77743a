package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"go.uber.org/zap"

	"ProductCatalog/pkg/kit"
)

type Deps struct {
	Log     *zap.Logger
	Metrics *kit.Metrics
}

// Catalog is an ordered, in-memory set of products with unique codes.
// It is not safe for concurrent use.
type Catalog struct {
	store    Store
	log      *zap.Logger
	metrics  *kit.Metrics
	products []Product
}

func New(store Store, deps Deps) *Catalog {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Catalog{
		store:    store,
		log:      log,
		metrics:  deps.Metrics,
		products: []Product{},
	}
}

func (c *Catalog) Len() int { return len(c.products) }

// List returns the products in insertion order.
func (c *Catalog) List() []Product {
	return slices.Clone(c.products)
}

// Bundles returns the serialized form of every product in catalog order.
func (c *Catalog) Bundles() []Bundle {
	out := make([]Bundle, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, p.Bundle())
	}
	return out
}

func (c *Catalog) Add(p Product) error {
	if err := p.valid(); err != nil {
		c.log.Warn("add rejected: invalid product", zap.Error(err))
		c.observe("add", err)
		return err
	}
	if c.indexByCode(p.code, -1) >= 0 {
		c.log.Warn("add rejected: duplicate code", zap.String("code", p.code))
		err := fmt.Errorf("%w: code=%s", ErrDuplicateCode, p.code)
		c.observe("add", err)
		return err
	}

	c.products = append(c.products, p)
	c.log.Debug("product added", zap.String("id", p.id), zap.String("code", p.code))
	c.observe("add", nil)
	return nil
}

func (c *Catalog) FindByID(id string) (Product, error) {
	i := c.indexByID(id)
	if i < 0 {
		c.log.Warn("product not found", zap.String("id", id))
		err := fmt.Errorf("%w: id=%s", ErrNotFound, id)
		c.observe("find", err)
		return Product{}, err
	}
	c.observe("find", nil)
	return c.products[i], nil
}

func (c *Catalog) FindByCode(code string) (Product, error) {
	i := c.indexByCode(code, -1)
	if i < 0 {
		err := fmt.Errorf("%w: code=%s", ErrNotFound, code)
		c.observe("find", err)
		return Product{}, err
	}
	c.observe("find", nil)
	return c.products[i], nil
}

func (c *Catalog) DeleteByID(id string) error {
	i := c.indexByID(id)
	if i < 0 {
		c.log.Warn("delete rejected: product not found", zap.String("id", id))
		err := fmt.Errorf("%w: id=%s", ErrNotFound, id)
		c.observe("delete", err)
		return err
	}

	c.products = slices.Delete(c.products, i, i+1)
	c.log.Info("product deleted", zap.String("id", id))
	c.observe("delete", nil)
	return nil
}

// UpdateByID replaces the product with id by one built from b. The id is
// kept, and the product's own code does not count as a duplicate.
func (c *Catalog) UpdateByID(id string, b Bundle) (Product, error) {
	i := c.indexByID(id)
	if i < 0 {
		c.log.Warn("update rejected: product not found", zap.String("id", id))
		err := fmt.Errorf("%w: id=%s", ErrNotFound, id)
		c.observe("update", err)
		return Product{}, err
	}
	if c.indexByCode(b.Code, i) >= 0 {
		c.log.Warn("update rejected: duplicate code", zap.String("id", id), zap.String("code", b.Code))
		err := fmt.Errorf("%w: code=%s", ErrDuplicateCode, b.Code)
		c.observe("update", err)
		return Product{}, err
	}

	p, err := ProductFromBundle(b)
	if err != nil {
		c.log.Warn("update rejected: invalid product", zap.String("id", id), zap.Error(err))
		c.observe("update", err)
		return Product{}, err
	}
	p.id = id

	c.products[i] = p
	c.log.Info("product updated", zap.String("id", id), zap.String("code", p.code))
	c.observe("update", nil)
	return p, nil
}

// Load replaces the catalog contents with the store's document. On any
// error the current contents are kept.
func (c *Catalog) Load(ctx context.Context) error {
	bundles, err := c.store.Read(ctx)
	if err != nil {
		c.log.Error("load failed", zap.Error(err))
		c.observe("load", err)
		return err
	}

	products := make([]Product, 0, len(bundles))
	codes := make(map[string]struct{}, len(bundles))
	ids := make(map[string]struct{}, len(bundles))

	for i, b := range bundles {
		p, regenerated, err := restoreProduct(b)
		if err != nil {
			err = fmt.Errorf("load product %d: %w", i, err)
			c.log.Error("load failed", zap.Error(err))
			c.observe("load", err)
			return err
		}
		if _, dup := codes[p.code]; dup {
			err = fmt.Errorf("load product %d: %w: code=%s", i, ErrDuplicateCode, p.code)
			c.log.Error("load failed", zap.Error(err))
			c.observe("load", err)
			return err
		}
		if _, dup := ids[p.id]; dup {
			p.id = NewID()
			regenerated = true
		}
		if regenerated {
			c.log.Warn("stored product had no usable id, assigned a new one",
				zap.Int("index", i), zap.String("code", p.code), zap.String("id", p.id))
		}

		codes[p.code] = struct{}{}
		ids[p.id] = struct{}{}
		products = append(products, p)
	}

	c.products = products
	c.log.Info("catalog loaded", zap.Int("products", len(products)))
	c.observe("load", nil)
	return nil
}

func (c *Catalog) Save(ctx context.Context) error {
	if err := c.store.Write(ctx, c.Bundles()); err != nil {
		c.log.Error("save failed", zap.Error(err))
		c.observe("save", err)
		return err
	}
	c.log.Info("catalog saved", zap.Int("products", len(c.products)))
	c.observe("save", nil)
	return nil
}

// PrintAll writes one display line per product.
func (c *Catalog) PrintAll(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "Products in catalog:"); err != nil {
		return err
	}
	for _, p := range c.products {
		if _, err := fmt.Fprintln(w, p.String()); err != nil {
			return err
		}
	}
	return nil
}

func (c *Catalog) indexByID(id string) int {
	return slices.IndexFunc(c.products, func(p Product) bool { return p.id == id })
}

// indexByCode ignores the element at skip; pass -1 to scan everything.
func (c *Catalog) indexByCode(code string, skip int) int {
	for i, p := range c.products {
		if i != skip && p.code == code {
			return i
		}
	}
	return -1
}

func (c *Catalog) observe(op string, err error) {
	c.metrics.Observe(op, resultOf(err))
	c.metrics.SetProducts(len(c.products))
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrDuplicateCode):
		return "duplicate"
	case errors.Is(err, ErrInvalidProduct):
		return "invalid"
	case errors.Is(err, ErrStore):
		return "store_error"
	default:
		return "error"
	}
}
