package storage

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/plugfox/hunchworks-server/internal/controller"
	errs "github.com/plugfox/hunchworks-server/internal/errors"
	"github.com/plugfox/hunchworks-server/internal/model"
	"github.com/stretchr/testify/require"
)

var _ controller.Store = (*HunchStore)(nil)

func validAttributes() model.Attributes {
	return model.Attributes{
		model.AttrTitle:       "Rain tomorrow",
		model.AttrDescription: "Clouds are gathering over the lake",
		model.AttrStatus:      "denied",
		model.AttrPrivacy:     "open",
		model.AttrLocation:    "Geneva",
	}
}

func createHunch(t *testing.T, store *HunchStore) *model.Hunch {
	t.Helper()

	hunch := store.New(validAttributes())
	ok, err := store.Save(context.Background(), hunch)
	require.NoError(t, err)
	require.True(t, ok)
	require.NotZero(t, hunch.ID)

	return hunch
}

func TestHunchStore(t *testing.T) {
	for _, cache := range []bool{false, true} {
		name := "without cache"
		if cache {
			name = "with cache"
		}

		t.Run(name, func(t *testing.T) {
			storage := newTestStorage(t, cache)
			store := NewHunchStore(storage)
			ctx := context.Background()

			t.Run("new without attributes has defaults", func(t *testing.T) {
				hunch := store.New(nil)
				require.True(t, hunch.IsNewRecord())
				require.Equal(t, model.StatusUndetermined, hunch.Status)
				require.Equal(t, model.PrivacyHidden, hunch.Privacy)
			})

			t.Run("save invalid reports false", func(t *testing.T) {
				hunch := store.New(model.Attributes{model.AttrTitle: ""})
				ok, err := store.Save(ctx, hunch)
				require.NoError(t, err)
				require.False(t, ok)
				require.True(t, hunch.IsNewRecord())
				require.True(t, hunch.Errors.Any())
			})

			t.Run("save and find", func(t *testing.T) {
				hunch := createHunch(t, store)
				if cache {
					storage.cache.Wait()
				}

				found, err := store.Find(ctx, hunch.ToParam())
				require.NoError(t, err)
				require.Equal(t, hunch.ID, found.ID)
				require.Equal(t, "Rain tomorrow", found.Title)
				require.Equal(t, model.StatusDenied, found.Status)
				require.Equal(t, model.PrivacyOpen, found.Privacy)
				require.False(t, found.TimeCreated.IsZero())
				require.NotSame(t, hunch, found)
			})

			t.Run("find unknown id", func(t *testing.T) {
				_, err := store.Find(ctx, "999999")
				require.ErrorIs(t, err, errs.ErrorNotFound)
			})

			t.Run("find invalid id", func(t *testing.T) {
				_, err := store.Find(ctx, "abc")
				require.ErrorIs(t, err, errs.ErrorInvalidID)
			})

			t.Run("find id beyond the key range", func(t *testing.T) {
				_, err := store.Find(ctx, "18446744073709551615")
				require.ErrorIs(t, err, errs.ErrorInvalidID)

				_, err = store.Find(ctx, "9223372036854775808")
				require.ErrorIs(t, err, errs.ErrorInvalidID)
			})

			t.Run("all", func(t *testing.T) {
				first := createHunch(t, store)
				second := createHunch(t, store)

				hunches, err := store.All(ctx)
				require.NoError(t, err)

				ids := make([]model.HunchID, 0, len(hunches))
				for _, hunch := range hunches {
					ids = append(ids, hunch.ID)
				}
				require.Contains(t, ids, first.ID)
				require.Contains(t, ids, second.ID)
			})

			t.Run("update", func(t *testing.T) {
				hunch := createHunch(t, store)

				found, err := store.Find(ctx, hunch.ToParam())
				require.NoError(t, err)

				ok, err := store.Update(ctx, found, model.Attributes{model.AttrTitle: "Sun tomorrow"})
				require.NoError(t, err)
				require.True(t, ok)
				if cache {
					storage.cache.Wait()
				}

				reloaded, err := store.Find(ctx, hunch.ToParam())
				require.NoError(t, err)
				require.Equal(t, "Sun tomorrow", reloaded.Title)
			})

			t.Run("update invalid keeps the stored hunch", func(t *testing.T) {
				hunch := createHunch(t, store)

				found, err := store.Find(ctx, hunch.ToParam())
				require.NoError(t, err)

				ok, err := store.Update(ctx, found, model.Attributes{model.AttrStatus: "maybe"})
				require.NoError(t, err)
				require.False(t, ok)
				require.Equal(t, []string{"is not a valid status"}, found.Errors.On(model.AttrStatus))

				reloaded, err := store.Find(ctx, hunch.ToParam())
				require.NoError(t, err)
				require.Equal(t, model.StatusDenied, reloaded.Status)
				require.False(t, reloaded.Errors.Any())
			})

			t.Run("destroy", func(t *testing.T) {
				hunch := createHunch(t, store)

				ok, err := store.Destroy(ctx, hunch)
				require.NoError(t, err)
				require.True(t, ok)

				_, err = store.Find(ctx, hunch.ToParam())
				require.ErrorIs(t, err, errs.ErrorNotFound)

				ok, err = store.Destroy(ctx, hunch)
				require.NoError(t, err)
				require.False(t, ok)
			})

			t.Run("update after destroy keeps the hunch deleted", func(t *testing.T) {
				hunch := createHunch(t, store)

				stale, err := store.Find(ctx, hunch.ToParam())
				require.NoError(t, err)

				ok, err := store.Destroy(ctx, hunch)
				require.NoError(t, err)
				require.True(t, ok)

				ok, err = store.Update(ctx, stale, model.Attributes{model.AttrTitle: "Back again"})
				require.ErrorIs(t, err, errs.ErrorNotFound)
				require.False(t, ok)

				_, err = store.Find(ctx, hunch.ToParam())
				require.ErrorIs(t, err, errs.ErrorNotFound)

				var row model.Hunch
				require.NoError(t, storage.db.Unscoped().First(&row, uint64(hunch.ID)).Error)
				require.True(t, row.DeletedAt.Valid)
				require.Equal(t, "Rain tomorrow", row.Title)
			})

			t.Run("update keeps the creation time", func(t *testing.T) {
				hunch := createHunch(t, store)
				created := hunch.TimeCreated

				found, err := store.Find(ctx, hunch.ToParam())
				require.NoError(t, err)

				found.TimeCreated = time.Time{}
				ok, err := store.Update(ctx, found, model.Attributes{model.AttrLocation: "Bern"})
				require.NoError(t, err)
				require.True(t, ok)

				var row model.Hunch
				require.NoError(t, storage.db.First(&row, uint64(hunch.ID)).Error)
				require.Equal(t, "Bern", row.Location)
				require.WithinDuration(t, created, row.TimeCreated, time.Second)
			})
		})
	}
}

func TestHunchStoreCacheFollowsWrites(t *testing.T) {
	const (
		rounds  = 50
		readers = 4
	)

	storage := newTestStorage(t, true)
	store := NewHunchStore(storage)
	ctx := context.Background()

	// Serialize sqlite access, the interleaving happens around the cache
	sqlDB, err := storage.db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	hunch := createHunch(t, store)

	for i := 0; i < rounds; i++ {
		title := fmt.Sprintf("Rain in %d days", i)
		errCh := make(chan error, readers+1)

		var wg sync.WaitGroup
		wg.Add(readers + 1)

		go func() {
			defer wg.Done()

			_, err := store.Update(ctx, hunch.Clone(), model.Attributes{model.AttrTitle: title})
			errCh <- err
		}()

		for j := 0; j < readers; j++ {
			go func() {
				defer wg.Done()

				_, err := store.Find(ctx, hunch.ToParam())
				errCh <- err
			}()
		}

		wg.Wait()
		close(errCh)

		for err := range errCh {
			require.NoError(t, err)
		}

		storage.cache.Wait()

		found, err := store.Find(ctx, hunch.ToParam())
		require.NoError(t, err)

		var stored model.Hunch
		require.NoError(t, storage.db.First(&stored, uint64(hunch.ID)).Error)
		require.Equal(t, title, stored.Title)
		require.Equal(t, stored.Title, found.Title, "round %d", i)
	}
}
