package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	config "github.com/plugfox/hunchworks-server/internal/config"
	"github.com/plugfox/hunchworks-server/internal/model"
	storage_logger "github.com/plugfox/hunchworks-server/internal/storage/storage_logger"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

type Storage struct {
	db       *gorm.DB
	cache    *ristretto.Cache[uint64, model.Hunch]
	cacheTTL time.Duration
	logger   *slog.Logger

	cacheMu    sync.Mutex
	generation uint64 // Bumped by every write, guards cache fills.
}

func New(config *config.Config, logger *slog.Logger) (*Storage, error) {
	dialector, err := createDialector(&config.Database)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(
		dialector,
		&gorm.Config{
			NamingStrategy: schema.NamingStrategy{},
			Logger:         storage_logger.NewGormSlogLogger(logger),
			NowFunc:        func() time.Time { return time.Now().UTC() },
		})
	if err != nil {
		return nil, err
	}

	storage := &Storage{db: db, logger: logger}

	if config.Cache.Enabled {
		cache, err := ristretto.NewCache(&ristretto.Config[uint64, model.Hunch]{
			NumCounters: config.Cache.NumCounters,
			MaxCost:     config.Cache.MaxCost,
			BufferItems: 64, // recommended by ristretto
		})
		if err != nil {
			return nil, errors.Join(fmt.Errorf("creating cache: %w", err), storage.Close())
		}

		storage.cache = cache
		storage.cacheTTL = config.Cache.TTL
	}

	return storage, nil
}

// Migrate creates or updates the database schema.
func (s *Storage) Migrate(ctx context.Context) error {
	const timeout = 15 * time.Minute

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel() // releases resources if the migration completes before timeout elapses

	return s.db.WithContext(ctx).AutoMigrate(
		&model.Hunch{},
	)
}

// Ping checks the database connection.
func (s *Storage) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close - close the cache and the database connection
func (s *Storage) Close() error {
	if s.cache != nil {
		s.cache.Close()
	}

	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
