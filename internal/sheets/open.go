package sheets

import (
	"context"
	"fmt"

	"go-catat-jualan/internal/config"
	"go-catat-jualan/pkg/database"
)

// Open builds the row store selected by cfg.Backend. The returned close
// func is never nil.
func Open(ctx context.Context, cfg config.StoreConfig) (RowStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case config.BackendMemory:
		return NewMemoryStore(), noop, nil

	case config.BackendPostgres:
		db, err := database.ConnectDB(cfg.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, noop, err
		}
		store, err := NewPostgresStore(db)
		if err != nil {
			_ = sqlDB.Close()
			return nil, noop, err
		}
		return store, sqlDB.Close, nil

	case config.BackendSheets:
		store, err := NewGoogleStore(ctx, GoogleOptions{
			SpreadsheetID:   cfg.SpreadsheetID,
			CredentialsFile: cfg.CredentialsFile,
			CredentialsJSON: cfg.CredentialsJSON,
		})
		if err != nil {
			return nil, noop, err
		}
		return store, noop, nil
	}
	return nil, noop, fmt.Errorf("sheets: unknown STORE_BACKEND %q", cfg.Backend)
}
