package dashboard

import "strings"

// Headers is a case-insensitive view of an inbound HTTP header map.
// API Gateway lower-cases header names for HTTP APIs but REST APIs and
// local tests do not, so the map is normalized once on construction
// instead of scanning for casing variants on every lookup.
type Headers map[string]string

// NormalizeHeaders lower-cases every header name. Later duplicates win,
// matching what API Gateway does when it collapses the header map.
func NormalizeHeaders(in map[string]string) Headers {
	h := make(Headers, len(in))
	for name, value := range in {
		h[strings.ToLower(name)] = value
	}
	return h
}

// Get looks up a header by name, ignoring case.
func (h Headers) Get(name string) (string, bool) {
	v, ok := h[strings.ToLower(name)]
	return v, ok
}

// GetOr returns the header value, or fallback when the header is absent
// or empty. A missing header is data here, never a fault.
func (h Headers) GetOr(name, fallback string) string {
	if v, ok := h.Get(name); ok && v != "" {
		return v
	}
	return fallback
}
