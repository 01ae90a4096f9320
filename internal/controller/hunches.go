package controller

import (
	"context"
	"log/slog"

	"github.com/plugfox/hunchworks-server/internal/model"
)

// Response variable names and template names.
const (
	AssignHunch   = "hunch"
	AssignHunches = "hunches"

	TemplateIndex = "index"
	TemplateShow  = "show"
	TemplateNew   = "new"
	TemplateEdit  = "edit"
)

// HunchesController is the resource controller for hunches.
// Store errors are returned unchanged, the caller decides how to answer them.
type HunchesController struct {
	store  Store
	routes Routes
	logger *slog.Logger
}

func NewHunchesController(store Store, routes Routes, logger *slog.Logger) *HunchesController {
	return &HunchesController{
		store:  store,
		routes: routes,
		logger: logger,
	}
}

// Routes returns the named routes the controller redirects to.
func (c *HunchesController) Routes() Routes {
	return c.routes
}

// Index assigns all hunches.
func (c *HunchesController) Index(ctx context.Context) (*Response, error) {
	hunches, err := c.store.All(ctx)
	if err != nil {
		return nil, err
	}

	return render(TemplateIndex, AssignHunches, hunches), nil
}

// Show assigns the requested hunch.
func (c *HunchesController) Show(ctx context.Context, id string) (*Response, error) {
	hunch, err := c.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	return render(TemplateShow, AssignHunch, hunch), nil
}

// New assigns a new hunch built without attributes.
func (c *HunchesController) New(_ context.Context) (*Response, error) {
	return render(TemplateNew, AssignHunch, c.store.New(nil)), nil
}

// Edit assigns the requested hunch.
func (c *HunchesController) Edit(ctx context.Context, id string) (*Response, error) {
	hunch, err := c.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	return render(TemplateEdit, AssignHunch, hunch), nil
}

// Create builds and saves a hunch, redirecting to it on success
// and rendering the new form again when it does not save.
func (c *HunchesController) Create(ctx context.Context, attrs model.Attributes) (*Response, error) {
	hunch := c.store.New(attrs)

	ok, err := c.store.Save(ctx, hunch)
	if err != nil {
		return nil, err
	}

	if !ok {
		c.logger.DebugContext(ctx, "hunch not created", slog.Any("errors", hunch.Errors))
		return render(TemplateNew, AssignHunch, hunch), nil
	}

	c.logger.InfoContext(ctx, "hunch created", slog.String("id", hunch.ToParam()))

	return redirect(c.routes.HunchURL(hunch), AssignHunch, hunch), nil
}

// Update changes the requested hunch, redirecting to it on success
// and rendering the edit form again when it does not update.
func (c *HunchesController) Update(ctx context.Context, id string, attrs model.Attributes) (*Response, error) {
	hunch, err := c.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	ok, err := c.store.Update(ctx, hunch, attrs)
	if err != nil {
		return nil, err
	}

	if !ok {
		c.logger.DebugContext(ctx, "hunch not updated", slog.String("id", id), slog.Any("errors", hunch.Errors))
		return render(TemplateEdit, AssignHunch, hunch), nil
	}

	c.logger.InfoContext(ctx, "hunch updated", slog.String("id", hunch.ToParam()))

	return redirect(c.routes.HunchURL(hunch), AssignHunch, hunch), nil
}

// Destroy deletes the requested hunch and redirects to the list, whatever the store reports.
func (c *HunchesController) Destroy(ctx context.Context, id string) (*Response, error) {
	hunch, err := c.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	ok, err := c.store.Destroy(ctx, hunch)
	if err != nil {
		return nil, err
	}

	c.logger.InfoContext(ctx, "hunch destroyed", slog.String("id", id), slog.Bool("deleted", ok))

	return redirect(c.routes.HunchesURL(), AssignHunch, hunch), nil
}
