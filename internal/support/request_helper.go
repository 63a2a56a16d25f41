package support

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/proxy"
)

// CreateProxyClient builds a one-shot HTTP client that routes every request
// through the given proxy. The timeout bounds the whole operation: connect,
// TLS handshake and response read.
func CreateProxyClient(proxySpec string, timeout time.Duration) (*http.Client, error) {
	proxyURL, err := url.Parse(proxySpec)
	if err != nil {
		return nil, fmt.Errorf("parse proxy spec: %w", err)
	}

	// Base configuration with keep-alives disabled
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   timeout,
			KeepAlive: 0, // KeepAlive disabled
		}).DialContext,
		DisableKeepAlives:     true,
		MaxIdleConns:          0,
		MaxIdleConnsPerHost:   0,
		IdleConnTimeout:       0,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		// Probe connections skip certificate verification; intercepting
		// proxies rewrap TLS with their own certificates.
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
	}

	switch proxyURL.Scheme {
	case "http", "https":
		// Credentials embedded in the URL ride along as Proxy-Authorization.
		transport.Proxy = http.ProxyURL(proxyURL)

	default:
		// socks4 rides the SOCKS5 dialer; servers that only speak SOCKS4
		// surface the mismatch as a request-time failure.
		var auth *proxy.Auth
		if user := proxyURL.User; user != nil {
			password, _ := user.Password()
			auth = &proxy.Auth{User: user.Username(), Password: password}
		}

		socksDialer, err := proxy.SOCKS5("tcp", proxyURL.Host, auth, &net.Dialer{
			Timeout: timeout,
		})
		if err != nil {
			return nil, err
		}

		transport.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
			return socksDialer.Dial(network, addr)
		}
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}, nil
}
