package storage

import (
	"context"
	"fmt"

	errs "github.com/plugfox/hunchworks-server/internal/errors"
	"github.com/plugfox/hunchworks-server/internal/model"
)

// HunchStore exposes hunch persistence the way the resource controller expects it:
// validation failures are reported as false, never as errors.
type HunchStore struct {
	storage *Storage
}

func NewHunchStore(storage *Storage) *HunchStore {
	return &HunchStore{storage: storage}
}

// All returns every hunch that has not been deleted.
func (s *HunchStore) All(ctx context.Context) ([]*model.Hunch, error) {
	return s.storage.Hunches(ctx)
}

// Find looks a hunch up by its URL id.
func (s *HunchStore) Find(ctx context.Context, id string) (*model.Hunch, error) {
	hunchID, err := model.ParseHunchID(id)
	if err != nil {
		return nil, errs.WrapInvalidID(id)
	}

	return s.storage.HunchByID(ctx, hunchID)
}

// New builds an unsaved hunch from the attributes, nil attributes give the defaults.
func (s *HunchStore) New(attrs model.Attributes) *model.Hunch {
	hunch := model.NewHunch()
	hunch.Assign(attrs)

	return hunch
}

// Save validates and persists the hunch.
func (s *HunchStore) Save(ctx context.Context, hunch *model.Hunch) (bool, error) {
	if !hunch.Validate() {
		return false, nil
	}

	if err := s.storage.UpsertHunch(ctx, hunch); err != nil {
		return false, fmt.Errorf("saving hunch: %w", err)
	}

	return true, nil
}

// Update assigns the attributes and saves the hunch.
func (s *HunchStore) Update(ctx context.Context, hunch *model.Hunch, attrs model.Attributes) (bool, error) {
	hunch.Assign(attrs)

	return s.Save(ctx, hunch)
}

// Destroy deletes the hunch, false when it was already gone.
func (s *HunchStore) Destroy(ctx context.Context, hunch *model.Hunch) (bool, error) {
	ok, err := s.storage.DeleteHunch(ctx, hunch)
	if err != nil {
		return false, fmt.Errorf("deleting hunch: %w", err)
	}

	return ok, nil
}
