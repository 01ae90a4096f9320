package controller

import (
	"strings"

	"github.com/plugfox/hunchworks-server/internal/model"
)

// Routes builds the named hunch URLs, absolute when BaseURL is set.
type Routes struct {
	BaseURL string
}

func NewRoutes(baseURL string) Routes {
	return Routes{BaseURL: strings.TrimRight(baseURL, "/")}
}

// HunchesURL is the index route.
func (r Routes) HunchesURL() string {
	return r.BaseURL + "/hunches"
}

// HunchURL is the show route of the hunch.
func (r Routes) HunchURL(hunch *model.Hunch) string {
	return r.HunchesURL() + "/" + hunch.ToParam()
}

// NewHunchURL is the route of the creation form.
func (r Routes) NewHunchURL() string {
	return r.HunchesURL() + "/new"
}

// EditHunchURL is the route of the edit form of the hunch.
func (r Routes) EditHunchURL(hunch *model.Hunch) string {
	return r.HunchURL(hunch) + "/edit"
}
