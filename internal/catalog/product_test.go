package catalog_test

import (
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"ProductCatalog/internal/catalog"
)

var uuidV4 = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func sampleBundle() catalog.Bundle {
	return catalog.Bundle{
		Title:       "producto prueba",
		Price:       200,
		Description: "Este es un producto prueba",
		Thumbnail:   "Sin imagen",
		Code:        "abc123",
		Stock:       25,
	}
}

func mustProduct(t *testing.T, b catalog.Bundle) catalog.Product {
	t.Helper()
	p, err := catalog.ProductFromBundle(b)
	require.NoError(t, err)
	return p
}

func TestNewProduct_AssignsDistinctIDs(t *testing.T) {
	p1, err := catalog.NewProduct("producto prueba", 200, "Este es un producto prueba", "Sin imagen", "abc123", 25)
	require.NoError(t, err)
	p2, err := catalog.NewProduct("producto prueba", 200, "Este es un producto prueba", "Sin imagen", "abc123", 25)
	require.NoError(t, err)

	require.NotEqual(t, p1.ID(), p2.ID())
	require.Regexp(t, uuidV4, p1.ID())
	require.Regexp(t, uuidV4, p2.ID())
	require.True(t, catalog.IsID(p1.ID()))
}

func TestNewProduct_Accessors(t *testing.T) {
	p, err := catalog.NewProduct("producto prueba", 200, "Este es un producto prueba", "Sin imagen", "abc123", 25)
	require.NoError(t, err)

	require.Equal(t, "producto prueba", p.Title())
	require.Equal(t, 200.0, p.Price())
	require.Equal(t, "Este es un producto prueba", p.Description())
	require.Equal(t, "Sin imagen", p.Thumbnail())
	require.Equal(t, "abc123", p.Code())
	require.Equal(t, 25, p.Stock())
}

func TestProductFromBundle_MatchesPositional(t *testing.T) {
	b := sampleBundle()
	fromBundle := mustProduct(t, b)
	positional, err := catalog.NewProduct(b.Title, b.Price, b.Description, b.Thumbnail, b.Code, b.Stock)
	require.NoError(t, err)

	got, want := fromBundle.Bundle(), positional.Bundle()
	got.ID, want.ID = "", ""
	require.Equal(t, want, got)
}

func TestProductFromBundle_IgnoresSuppliedID(t *testing.T) {
	b := sampleBundle()
	b.ID = "3d16f03e-08b4-4c08-9e1d-78bfbf7b0ac5"

	p := mustProduct(t, b)
	require.NotEqual(t, b.ID, p.ID())
	require.Regexp(t, uuidV4, p.ID())
}

func TestProductFromBundle_MissingField(t *testing.T) {
	cases := []struct {
		field  string
		mutate func(*catalog.Bundle)
	}{
		{"title", func(b *catalog.Bundle) { b.Title = "" }},
		{"price", func(b *catalog.Bundle) { b.Price = 0 }},
		{"description", func(b *catalog.Bundle) { b.Description = "" }},
		{"thumbnail", func(b *catalog.Bundle) { b.Thumbnail = "" }},
		{"code", func(b *catalog.Bundle) { b.Code = "" }},
		{"stock", func(b *catalog.Bundle) { b.Stock = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			b := sampleBundle()
			tc.mutate(&b)

			_, err := catalog.ProductFromBundle(b)
			require.ErrorIs(t, err, catalog.ErrInvalidProduct)

			var ve *catalog.ValidationError
			require.ErrorAs(t, err, &ve)
			require.Equal(t, tc.field, ve.Field)
			require.Equal(t, "required", ve.Rule)
			require.Contains(t, err.Error(), "missing required field")

			_, err = catalog.NewProduct(b.Title, b.Price, b.Description, b.Thumbnail, b.Code, b.Stock)
			require.ErrorAs(t, err, &ve)
			require.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestProductFromBundle_RejectsNegativeNumbers(t *testing.T) {
	b := sampleBundle()
	b.Price = -1
	_, err := catalog.ProductFromBundle(b)
	var ve *catalog.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "price", ve.Field)
	require.Equal(t, "gt", ve.Rule)

	b = sampleBundle()
	b.Stock = -5
	_, err = catalog.ProductFromBundle(b)
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "stock", ve.Field)
}

func TestProductFromBundle_ReportsFirstFieldInOrder(t *testing.T) {
	_, err := catalog.ProductFromBundle(catalog.Bundle{})
	var ve *catalog.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "title", ve.Field)
}

func TestProduct_BundleJSONFieldOrder(t *testing.T) {
	p := mustProduct(t, sampleBundle())

	raw, err := json.Marshal(p.Bundle())
	require.NoError(t, err)

	want := `{"title":"producto prueba","price":200,"description":"Este es un producto prueba",` +
		`"thumbnail":"Sin imagen","code":"abc123","stock":25,"id":"` + p.ID() + `"}`
	require.JSONEq(t, want, string(raw))
	require.Equal(t, want, string(raw))
}

func TestProduct_String(t *testing.T) {
	p := mustProduct(t, sampleBundle())
	s := p.String()

	require.False(t, strings.Contains(s, "\n"))
	require.Contains(t, s, "producto prueba")
	require.Contains(t, s, "200")
	require.Contains(t, s, p.ID())
	require.Contains(t, s, "abc123")
}

func TestIsID(t *testing.T) {
	require.True(t, catalog.IsID(catalog.NewID()))
	require.False(t, catalog.IsID(""))
	require.False(t, catalog.IsID("123456"))
	require.False(t, catalog.IsID("3D16F03E-08B4-4C08-9E1D-78BFBF7B0AC5"))
	require.False(t, catalog.IsID("3d16f03e-08b4-1c08-9e1d-78bfbf7b0ac5"))
	require.False(t, catalog.IsID("3d16f03e-08b4-4c08-7e1d-78bfbf7b0ac5"))
}
