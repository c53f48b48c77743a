package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ProductCatalog/internal/catalog"
	"ProductCatalog/internal/config"
	"ProductCatalog/pkg/kit"
)

const service = "catalog"

type app struct {
	out    io.Writer
	errOut io.Writer

	log     *zap.Logger
	reg     *prometheus.Registry
	catalog *catalog.Catalog
	closers []func() error

	showMetrics bool
}

func newRootCmd(out, errOut io.Writer) (*cobra.Command, *app) {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "catalog",
		Short:         "Manage the product catalog",
		Long:          "catalog reads the persisted product list, applies one operation and writes it back.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.boot(cmd.Context())
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if a.showMetrics {
				return a.dumpMetrics()
			}
			return nil
		},
	}
	root.PersistentFlags().BoolVar(&a.showMetrics, "metrics", false, "print operation metrics to stderr when done")

	root.AddCommand(
		newListCmd(a),
		newGetCmd(a),
		newAddCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
	)
	return root, a
}

func (a *app) boot(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	a.log = kit.NewLogger(service, cfg.LogLevel)
	a.closers = append(a.closers, func() error { _ = a.log.Sync(); return nil })
	a.reg = prometheus.NewRegistry()

	store, err := a.openStore(ctx, cfg)
	if err != nil {
		return err
	}

	a.catalog = catalog.New(store, catalog.Deps{
		Log:     a.log,
		Metrics: kit.NewMetrics(a.reg),
	})
	return nil
}

func (a *app) openStore(ctx context.Context, cfg *config.Config) (catalog.Store, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return catalog.NewMemStore(), nil

	case config.StoreRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		a.closers = append(a.closers, rdb.Close)

		s := catalog.NewRedisStore(rdb, cfg.RedisKey, a.log)
		if err := s.Ping(ctx); err != nil {
			return nil, err
		}
		return s, nil

	case config.StorePostgres:
		db, err := sql.Open("pgx", cfg.PGDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		a.closers = append(a.closers, db.Close)

		s := catalog.NewPostgresStore(db, cfg.Document, a.log)
		if err := s.Ping(ctx); err != nil {
			return nil, err
		}
		if err := s.Migrate(ctx); err != nil {
			return nil, err
		}
		return s, nil

	default:
		return catalog.NewFileStore(cfg.File, a.log), nil
	}
}

func (a *app) dumpMetrics() error {
	families, err := a.reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(a.errOut, mf); err != nil {
			return err
		}
	}
	return nil
}

// close releases store connections in reverse order of acquisition.
func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && a.log != nil {
			a.log.Warn("close failed", zap.Error(err))
		}
	}
	a.closers = nil
}
