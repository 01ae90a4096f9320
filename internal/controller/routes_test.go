package controller

import (
	"testing"

	"github.com/plugfox/hunchworks-server/internal/model"
	"github.com/stretchr/testify/require"
)

func TestRoutes(t *testing.T) {
	hunch := &model.Hunch{ID: 37}

	testcases := []struct {
		Name    string
		BaseURL string
		Prefix  string
	}{
		{Name: "Relative", BaseURL: "", Prefix: ""},
		{Name: "Absolute", BaseURL: "http://test.host", Prefix: "http://test.host"},
		{Name: "Trailing slash", BaseURL: "http://test.host/", Prefix: "http://test.host"},
	}

	for _, testcase := range testcases {
		t.Run(testcase.Name, func(t *testing.T) {
			routes := NewRoutes(testcase.BaseURL)
			require.Equal(t, testcase.Prefix+"/hunches", routes.HunchesURL())
			require.Equal(t, testcase.Prefix+"/hunches/new", routes.NewHunchURL())
			require.Equal(t, testcase.Prefix+"/hunches/37", routes.HunchURL(hunch))
			require.Equal(t, testcase.Prefix+"/hunches/37/edit", routes.EditHunchURL(hunch))
		})
	}
}
