//go:build integration
// +build integration

package integration

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"

	"ProductCatalog/internal/catalog"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("CATALOG_PG_DSN")
	if dsn == "" {
		t.Skip("CATALOG_PG_DSN not set")
	}

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestPostgresStore_CatalogRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := openDB(t)
	doc := fmt.Sprintf("it_%d", time.Now().UnixNano())
	store := catalog.NewPostgresStore(db, doc, nil)

	require.NoError(t, store.Ping(ctx))
	require.NoError(t, store.Migrate(ctx))
	t.Cleanup(func() {
		_, _ = db.Exec(`DELETE FROM catalog_documents WHERE name = $1`, doc)
	})

	empty, err := store.Read(ctx)
	require.NoError(t, err)
	require.Empty(t, empty)

	c := catalog.New(store, catalog.Deps{})
	for _, code := range []string{"abc123", "abc1234", "abc12345"} {
		p, err := catalog.NewProduct("producto "+code, 200, "Este es un producto prueba", "Sin imagen", code, 25)
		require.NoError(t, err)
		require.NoError(t, c.Add(p))
	}
	require.NoError(t, c.Save(ctx))

	reloaded := catalog.New(store, catalog.Deps{})
	require.NoError(t, reloaded.Load(ctx))
	require.Equal(t, c.Bundles(), reloaded.Bundles())
}
