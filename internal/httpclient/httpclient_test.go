package httpclient

import (
	"net/http"
	"testing"

	"github.com/plugfox/hunchworks-server/internal/config"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClientDisabled(t *testing.T) {
	for _, cfg := range []*config.ProxyConfig{nil, {}, {Address: "127.0.0.1"}} {
		client, err := NewHTTPClient(cfg)
		require.NoError(t, err)
		require.Nil(t, client)
	}
}

func TestNewHTTPClientSocks5(t *testing.T) {
	client, err := NewHTTPClient(&config.ProxyConfig{
		Address:  "127.0.0.1",
		Port:     1080,
		Username: "user",
		Password: "secret",
	})
	require.NoError(t, err)
	require.NotNil(t, client)

	transport, ok := client.Transport.(*http.Transport)
	require.True(t, ok)
	require.NotNil(t, transport.DialContext)
}
