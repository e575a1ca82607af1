package fronting

import (
	"fmt"
	"strings"
)

// Kind represents the type of fronting implementation.
type Kind string

const (
	KindAPI        Kind = "api"
	KindCloudFront Kind = "cloudfront"
)

// ParseKind converts a raw string into a Kind, returning an error for invalid values.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(s)) {
	case KindAPI:
		return KindAPI, nil
	case KindCloudFront:
		return KindCloudFront, nil
	default:
		return "", fmt.Errorf("invalid fronting type %q", s)
	}
}

// New returns a Fronting implementation for the given Kind.
func New(kind Kind) Fronting {
	switch kind {
	case KindAPI:
		return NewApiGatewayFronting()
	case KindCloudFront:
		return NewCloudFrontFronting()
	default:
		// ParseKind should prevent this, but panic as a safeguard
		panic(fmt.Sprintf("unsupported fronting kind %q", kind))
	}
}
