// Package controller maps the hunch resource actions to store calls and view outcomes.
package controller

import (
	"context"

	"github.com/plugfox/hunchworks-server/internal/model"
)

//go:generate mockgen -destination mock_store_test.go -package $GOPACKAGE -write_package_comment=false github.com/plugfox/hunchworks-server/internal/controller Store

// Store is the model store the controller works against.
// Save and Update report invalid input as false, an error means the store itself failed.
type Store interface {
	All(ctx context.Context) ([]*model.Hunch, error)
	Find(ctx context.Context, id string) (*model.Hunch, error)
	New(attrs model.Attributes) *model.Hunch
	Save(ctx context.Context, hunch *model.Hunch) (bool, error)
	Update(ctx context.Context, hunch *model.Hunch, attrs model.Attributes) (bool, error)
	Destroy(ctx context.Context, hunch *model.Hunch) (bool, error)
}
