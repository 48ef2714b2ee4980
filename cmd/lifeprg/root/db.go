package root

import (
	"context"
	"database/sql"

	"github.com/wenci-bit/LifePRG-sub002/internal/catalog"
	"github.com/wenci-bit/LifePRG-sub002/internal/config"
	"github.com/wenci-bit/LifePRG-sub002/internal/engine"
	"github.com/wenci-bit/LifePRG-sub002/internal/storage"
)

func openDB(ctx context.Context) (*sql.DB, config.Config, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, config.Config{}, nil, err
	}

	path := cfg.DBPath
	if path == "" {
		path, err = storage.DefaultDBPath()
		if err != nil {
			return nil, config.Config{}, nil, err
		}
	}

	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, config.Config{}, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return db, cfg, cleanup, nil
}

func openService(ctx context.Context) (*engine.Service, *storage.ProgressStore, func(), error) {
	db, cfg, cleanup, err := openDB(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		cat, err = catalog.LoadFile(cfg.CatalogPath)
		if err != nil {
			cleanup()
			return nil, nil, nil, err
		}
	}

	store := storage.NewProgressStore(db)
	return engine.NewService(store, cat), store, cleanup, nil
}
