package dashboard

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Unknown is the sentinel reported for any location field that the edge
// layer did not supply. The dashboard renders it verbatim.
const Unknown = "Unknown"

// CloudFront viewer headers injected by the distribution before the
// request reaches the Lambda. Names are matched case-insensitively.
const (
	headerViewerCity    = "cloudfront-viewer-city"
	headerViewerRegion  = "cloudfront-viewer-country-region"
	headerViewerCountry = "cloudfront-viewer-country"
	headerTraceID       = "x-amz-cf-id"
)

// VisitorLocation is the per-request geolocation record returned for
// action=location. It is derived entirely from headers and never stored.
type VisitorLocation struct {
	City         string `json:"city"`
	Region       string `json:"region"`
	Country      string `json:"country"`
	EdgeLocation string `json:"edgeLocation"`
}

// EdgeCodeSpec describes how the POP code is embedded in the trace id.
// The convention is inferred from observed trace ids rather than a
// documented grammar, so both the delimiter and the code shape are
// configuration instead of constants.
type EdgeCodeSpec struct {
	Delimiter string
	Pattern   *regexp.Regexp
}

// DefaultEdgeCodePattern matches POP codes like "YYZ50" or "IAD89".
const DefaultEdgeCodePattern = `^[A-Z]{3}\d{1,3}$`

// DefaultEdgeCodeSpec returns the convention observed in production
// trace ids: '-'-delimited segments with the POP code as the segment
// matching the airport-code pattern.
func DefaultEdgeCodeSpec() EdgeCodeSpec {
	return EdgeCodeSpec{
		Delimiter: "-",
		Pattern:   regexp.MustCompile(DefaultEdgeCodePattern),
	}
}

// ParseEdgeCodeSpec builds an EdgeCodeSpec from raw configuration.
func ParseEdgeCodeSpec(delimiter, pattern string) (EdgeCodeSpec, error) {
	if delimiter == "" {
		return EdgeCodeSpec{}, fmt.Errorf("edge code delimiter must not be empty")
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return EdgeCodeSpec{}, fmt.Errorf("compiling edge code pattern %q: %w", pattern, err)
	}
	return EdgeCodeSpec{Delimiter: delimiter, Pattern: re}, nil
}

// Extract returns the POP code embedded in a trace id, or Unknown when
// the id is missing or no segment matches the code pattern. The same
// input always yields the same output.
func (s EdgeCodeSpec) Extract(traceID string) string {
	if traceID == "" {
		return Unknown
	}
	code, found := lo.Find(strings.Split(traceID, s.Delimiter), func(segment string) bool {
		return s.Pattern.MatchString(segment)
	})
	if !found {
		return Unknown
	}
	return code
}

// LocationResolver maps an inbound header set to a VisitorLocation.
// It is pure and total: no header combination produces an error.
type LocationResolver struct {
	edge EdgeCodeSpec
	log  *zap.Logger
}

// NewLocationResolver builds a resolver with the given edge-code
// convention. A nil logger is replaced with a no-op one.
func NewLocationResolver(edge EdgeCodeSpec, log *zap.Logger) *LocationResolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &LocationResolver{edge: edge, log: log.Named("location")}
}

// Resolve extracts the viewer geolocation from the header map. Missing
// headers degrade to Unknown field by field.
func (r *LocationResolver) Resolve(headers Headers) VisitorLocation {
	loc := VisitorLocation{
		City:         headers.GetOr(headerViewerCity, Unknown),
		Region:       headers.GetOr(headerViewerRegion, Unknown),
		Country:      headers.GetOr(headerViewerCountry, Unknown),
		EdgeLocation: r.edge.Extract(headers.GetOr(headerTraceID, "")),
	}
	r.log.Debug("resolved visitor location",
		zap.String("city", loc.City),
		zap.String("country", loc.Country),
		zap.String("edge", loc.EdgeLocation),
	)
	return loc
}
