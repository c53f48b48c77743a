package catalog

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second

	DefaultDocument = "products"
)

// PostgresStore keeps the encoded document in one row of catalog_documents.
type PostgresStore struct {
	db   *sql.DB
	name string
	log  *zap.Logger
}

func NewPostgresStore(db *sql.DB, name string, log *zap.Logger) *PostgresStore {
	if name == "" {
		name = DefaultDocument
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &PostgresStore{db: db, name: name, log: log}
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		if err := s.db.PingContext(ctx); err != nil {
			return &StoreError{Op: "ping", Err: err}
		}
		return nil
	})
}

// Migrate creates the documents table when it is missing.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS catalog_documents (
				name       TEXT PRIMARY KEY,
				payload    JSONB NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)
		`)
		if err != nil {
			return &StoreError{Op: "migrate", Err: err}
		}
		return nil
	})
}

func (s *PostgresStore) Read(ctx context.Context) ([]Bundle, error) {
	var payload string

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `
			SELECT payload
			FROM catalog_documents
			WHERE name = $1
		`, s.name).Scan(&payload)
	})

	if errors.Is(err, sql.ErrNoRows) {
		if err := s.bootstrap(ctx); err != nil {
			return nil, err
		}
		return []Bundle{}, nil
	}
	if err != nil {
		return nil, &StoreError{Op: "read", Err: err}
	}
	return decodeBundles([]byte(payload))
}

func (s *PostgresStore) bootstrap(ctx context.Context) error {
	empty, err := encodeBundles(nil)
	if err != nil {
		return err
	}

	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO catalog_documents (name, payload)
			VALUES ($1, $2)
			ON CONFLICT (name) DO NOTHING
		`, s.name, string(empty))
		if err != nil {
			return &StoreError{Op: "bootstrap", Err: err}
		}
		s.log.Warn("product document not found, created an empty one", zap.String("document", s.name))
		return nil
	})
}

func (s *PostgresStore) Write(ctx context.Context, bundles []Bundle) error {
	data, err := encodeBundles(bundles)
	if err != nil {
		return err
	}

	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO catalog_documents (name, payload, updated_at)
			VALUES ($1, $2, now())
			ON CONFLICT (name) DO UPDATE
			SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at
		`, s.name, string(data))
		if err != nil {
			return &StoreError{Op: "write", Err: err}
		}
		return nil
	})
}
