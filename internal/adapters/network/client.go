// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package network builds the HTTP client shared by the upstream adapters.
package network

import (
	"net/http"
	"net/url"
	"os"
	"time"
)

// DefaultTimeout bounds a single upstream request when nothing else is configured.
const DefaultTimeout = 30 * time.Second

// GetHTTPClient returns an HTTP client configured with proxy settings.
// Respects HTTP_PROXY, HTTPS_PROXY, and NO_PROXY environment variables.
// A non-positive timeout falls back to DefaultTimeout.
func GetHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
	}
}

// ProxyFor reports the proxy URL requests to target would use, or "" for a
// direct connection. Used by verbose diagnostics.
func ProxyFor(target string) string {
	req, err := http.NewRequest(http.MethodGet, target, nil) //nolint:noctx // never sent
	if err != nil {
		return ""
	}

	proxy, err := http.ProxyFromEnvironment(req)
	if err != nil || proxy == nil {
		return ""
	}

	return redact(proxy)
}

// redact hides proxy credentials.
func redact(u *url.URL) string {
	if u.User == nil {
		return u.String()
	}

	clean := *u
	clean.User = url.User(u.User.Username())

	return clean.String()
}

// HasProxyEnv reports whether any proxy variable is set.
func HasProxyEnv() bool {
	for _, key := range []string{"http_proxy", "HTTP_PROXY", "https_proxy", "HTTPS_PROXY"} {
		if os.Getenv(key) != "" {
			return true
		}
	}

	return false
}
