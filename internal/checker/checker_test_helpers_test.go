package checker

import (
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// newProxyServer starts a fake forward proxy answering every probe with
// handler. Probes for plain-HTTP targets arrive as absolute-form requests,
// so a stock httptest server stands in for a real proxy.
func newProxyServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return server
}

// proxyAddr strips the scheme so checks exercise spec normalization.
func proxyAddr(server *httptest.Server) string {
	return strings.TrimPrefix(server.URL, "http://")
}

// closedPort reserves a port and releases it, yielding an address that
// refuses connections.
func closedPort(t *testing.T) string {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("reserve port: %v", err)
	}

	addr := listener.Addr().String()
	if err := listener.Close(); err != nil {
		t.Fatalf("release port: %v", err)
	}

	return addr
}
