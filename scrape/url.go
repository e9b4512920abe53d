package scrape

import (
	"net/url"
	"strings"
)

// Resolve makes ref absolute against base. Unparsable input is returned unchanged.
func Resolve(base, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}

	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}

	if refURL.IsAbs() {
		return refURL.String()
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}

	return baseURL.ResolveReference(refURL).String()
}

// Host returns the hostname of u, or an empty string.
func Host(u string) string {
	parsed, err := url.Parse(u)
	if err != nil {
		return ""
	}
	return parsed.Hostname()
}
