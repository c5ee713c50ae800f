// Package storage opens the slot store selected by configuration.
package storage

import (
	"context"
	"fmt"

	"github.com/MrJamesThe3rd/zentracker/internal/config"
	"github.com/MrJamesThe3rd/zentracker/internal/database"
	"github.com/MrJamesThe3rd/zentracker/internal/kv"
	"github.com/MrJamesThe3rd/zentracker/internal/kv/mongostore"
	"github.com/MrJamesThe3rd/zentracker/internal/kv/sqlstore"
)

func Open(ctx context.Context, cfg *config.Config) (kv.Store, error) {
	switch cfg.Storage.Driver {
	case config.StorageSQLite:
		s, err := sqlstore.Open(database.DriverSQLite, cfg.Storage.Path)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}

		return s, nil
	case config.StoragePostgres:
		s, err := sqlstore.Open(database.DriverPostgres, cfg.ConnectionString())
		if err != nil {
			return nil, fmt.Errorf("opening postgres store: %w", err)
		}

		return s, nil
	case config.StorageMongo:
		s, err := mongostore.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return nil, fmt.Errorf("opening mongo store: %w", err)
		}

		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
