package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/cellar-club/tasting/internal/config"
	"github.com/cellar-club/tasting/internal/database"
	pkgredis "github.com/cellar-club/tasting/internal/pkg/redis"
	"github.com/cellar-club/tasting/internal/session"
	"github.com/cellar-club/tasting/internal/store"
	"github.com/cellar-club/tasting/internal/store/mongosheet"
	"github.com/cellar-club/tasting/internal/store/sqlsheet"
	"github.com/cellar-club/tasting/internal/store/xlsx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Backend is the record store for the configured driver together with
// whatever connection it owns.
type Backend struct {
	Store *store.Store
	db    *gorm.DB
}

// OpenBackend opens the sheet named by cfg.Store. It does not touch the schema.
func OpenBackend(ctx context.Context, cfg *config.AppConfig, logger *zap.Logger) (*Backend, error) {
	b := &Backend{}
	var sheet store.Sheet

	switch cfg.Store.Driver {
	case config.StoreDriverXLSX:
		s, err := xlsx.Open(cfg.WorkbookPath(), cfg.Store.Sheet)
		if err != nil {
			return nil, err
		}
		sheet = s
	case config.StoreDriverMySQL:
		db, err := database.Connect(cfg, true)
		if err != nil {
			return nil, err
		}
		s, err := sqlsheet.New(db, cfg.Store.Sheet)
		if err != nil {
			_ = database.Close(db)
			return nil, err
		}
		b.db = db
		sheet = s
	case config.StoreDriverMongo:
		s, err := mongosheet.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Store.Sheet)
		if err != nil {
			return nil, err
		}
		sheet = s
	case config.StoreDriverMemory:
		sheet = store.NewMemorySheet()
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	opts := []store.Option{store.WithLogger(logger)}
	if cfg.Store.RepairHeader {
		opts = append(opts, store.WithHeaderRepair())
	}
	b.Store = store.New(sheet, opts...)
	return b, nil
}

func (b *Backend) Close() error {
	err := b.Store.Close()
	if b.db != nil {
		err = errors.Join(err, database.Close(b.db))
	}
	return err
}

func openMemoStore(cfg *config.AppConfig) (session.Store, func() error, error) {
	switch cfg.Session.Driver {
	case config.SessionDriverRedis:
		rc, err := pkgredis.Connect(cfg.Redis.URLValue())
		if err != nil {
			return nil, nil, err
		}
		return session.NewRedisStore(rc, cfg.Session.TTL), rc.Close, nil
	default:
		return session.NewMemoryStore(cfg.Session.TTL), nil, nil
	}
}
