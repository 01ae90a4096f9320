package storage

import (
	"context"
	"errors"
	"log/slog"

	errs "github.com/plugfox/hunchworks-server/internal/errors"
	"github.com/plugfox/hunchworks-server/internal/model"
	"gorm.io/gorm"
)

// Hunches - get all hunches ordered by id
func (s *Storage) Hunches(ctx context.Context) ([]*model.Hunch, error) {
	hunches := make([]*model.Hunch, 0)
	if err := s.db.WithContext(ctx).Order("id").Find(&hunches).Error; err != nil {
		return nil, err
	}
	return hunches, nil
}

// HunchByID - get the hunch by ID, served from the cache when possible
func (s *Storage) HunchByID(ctx context.Context, id model.HunchID) (*model.Hunch, error) {
	var generation uint64
	if s.cache != nil {
		if hunch, ok := s.cache.Get(uint64(id)); ok {
			return hunch.Clone(), nil
		}
		generation = s.cacheGeneration()
	}

	var hunch model.Hunch
	if err := s.db.WithContext(ctx).First(&hunch, uint64(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.WrapNotFound("hunch", id)
		}
		return nil, err
	}

	s.remember(&hunch, generation)

	return &hunch, nil
}

// UpsertHunch - insert a new hunch or update a live one.
// Updating a deleted hunch fails with a not found error.
func (s *Storage) UpsertHunch(ctx context.Context, hunch *model.Hunch) error {
	db := s.db.WithContext(ctx)

	if hunch.IsNewRecord() {
		return db.Create(hunch).Error
	}

	defer s.forget(hunch.ID)

	result := db.Model(hunch).
		Select("*").
		Omit("ID", "TimeCreated", "DeletedAt").
		Updates(hunch)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// Some drivers report changed rather than matched rows
	var count int64
	if err := db.Model(&model.Hunch{}).Where("id = ?", uint64(hunch.ID)).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.WrapNotFound("hunch", hunch.ID)
	}

	return nil
}

// DeleteHunch - soft delete the hunch, reports whether a row was affected
func (s *Storage) DeleteHunch(ctx context.Context, hunch *model.Hunch) (bool, error) {
	defer s.forget(hunch.ID)

	result := s.db.WithContext(ctx).Delete(hunch)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *Storage) cacheGeneration() uint64 {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	return s.generation
}

// remember caches a hunch read from the database, unless a write
// happened since the read started.
func (s *Storage) remember(hunch *model.Hunch, generation uint64) {
	if s.cache == nil || hunch.ID == 0 {
		return
	}

	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	if generation != s.generation {
		return
	}

	if !s.cache.SetWithTTL(uint64(hunch.ID), *hunch.Clone(), 1, s.cacheTTL) {
		s.logger.Debug("hunch not cached", slog.String("id", hunch.ToParam()))
	}
}

// forget drops the cached hunch after a write and fences off reads
// that started before it.
func (s *Storage) forget(id model.HunchID) {
	if s.cache == nil {
		return
	}

	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	s.generation++
	s.cache.Del(uint64(id))
}
