package httpclient

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/plugfox/hunchworks-server/internal/config"
	"golang.org/x/net/proxy"
)

const defaultTimeout = 30 * time.Second

// NewHTTPClient returns a client dialing through the SOCKS5 proxy,
// or nil when no proxy is configured.
func NewHTTPClient(config *config.ProxyConfig) (*http.Client, error) {
	if config == nil || !config.Enabled() {
		return nil, nil
	}

	addr := net.JoinHostPort(config.Address, strconv.Itoa(config.Port))

	var auth *proxy.Auth
	if config.Username != "" && config.Password != "" {
		auth = &proxy.Auth{User: config.Username, Password: config.Password}
	}

	dialer, err := proxy.SOCKS5("tcp", addr, auth, proxy.Direct)
	if err != nil {
		return nil, fmt.Errorf("cannot init socks5 proxy client dialer: %w", err)
	}

	httpTransport := &http.Transport{}
	if contextDialer, ok := dialer.(proxy.ContextDialer); ok {
		httpTransport.DialContext = contextDialer.DialContext
	} else {
		httpTransport.DialContext = func(_ context.Context, network, address string) (net.Conn, error) {
			return dialer.Dial(network, address)
		}
	}

	return &http.Client{Transport: httpTransport, Timeout: defaultTimeout}, nil
}
