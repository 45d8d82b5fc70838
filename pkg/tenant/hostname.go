package tenant

import (
	"net/http"
	"strings"
)

// NormalizeHost canonicalizes a raw hostname for mapping lookups:
// lowercase, port stripped, trailing dot removed. Returns the empty
// string for input that cannot carry a hostname at all.
func NormalizeHost(raw string) string {
	host := strings.TrimSpace(raw)
	if host == "" {
		return ""
	}

	// Strip port, keeping IPv6 literals intact ("[::1]:8080" -> "[::1]").
	if strings.HasPrefix(host, "[") {
		if idx := strings.LastIndex(host, "]"); idx != -1 {
			host = host[:idx+1]
		}
	} else if idx := strings.LastIndex(host, ":"); idx != -1 && strings.Count(host, ":") == 1 {
		host = host[:idx]
	}

	host = strings.TrimSuffix(host, ".")
	return strings.ToLower(host)
}

// HostFromRequest extracts the client-origin hostname from a request,
// honoring standard forwarding headers set by proxies. Priority order:
//
//  1. Forwarded (RFC 7239), host directive of the first element
//  2. X-Forwarded-Host, first value in the chain
//  3. Host header / request host
//
// The result is normalized via NormalizeHost.
func HostFromRequest(r *http.Request) string {
	if fwd := r.Header.Get("Forwarded"); fwd != "" {
		if host := parseForwardedHost(fwd); host != "" {
			return NormalizeHost(host)
		}
	}

	if xfh := r.Header.Get("X-Forwarded-Host"); xfh != "" {
		// The header can contain a chain; the first entry is the
		// client-origin host.
		host, _, _ := strings.Cut(xfh, ",")
		if host = strings.TrimSpace(host); host != "" {
			return NormalizeHost(host)
		}
	}

	return NormalizeHost(r.Host)
}

// parseForwardedHost extracts the host directive from the first element
// of an RFC 7239 Forwarded header value.
func parseForwardedHost(header string) string {
	first, _, _ := strings.Cut(header, ",")
	for _, pair := range strings.Split(first, ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), "host") {
			continue
		}
		value = strings.TrimSpace(value)
		value = strings.Trim(value, `"`)
		return value
	}
	return ""
}
