package dashboard

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolve_MissingHeaders(t *testing.T) {
	r := NewLocationResolver(DefaultEdgeCodeSpec(), nil)

	for _, headers := range []map[string]string{
		nil,
		{},
		{"user-agent": "curl/8.0", "accept": "*/*"},
	} {
		loc := r.Resolve(NormalizeHeaders(headers))
		require.Equal(t, VisitorLocation{
			City:         Unknown,
			Region:       Unknown,
			Country:      Unknown,
			EdgeLocation: Unknown,
		}, loc)
	}
}

func TestResolve_HeaderCasingIsIrrelevant(t *testing.T) {
	r := NewLocationResolver(DefaultEdgeCodeSpec(), nil)

	canonical := r.Resolve(NormalizeHeaders(map[string]string{
		"cloudfront-viewer-city":           "Montreal",
		"cloudfront-viewer-country-region": "QC",
		"cloudfront-viewer-country":        "CA",
		"x-amz-cf-id":                      "abcd1234-YYZ50-xyz",
	}))

	for _, headers := range []map[string]string{
		{
			"CloudFront-Viewer-City":           "Montreal",
			"CloudFront-Viewer-Country-Region": "QC",
			"CloudFront-Viewer-Country":        "CA",
			"X-Amz-Cf-Id":                      "abcd1234-YYZ50-xyz",
		},
		{
			"CLOUDFRONT-VIEWER-CITY":           "Montreal",
			"cloudfront-VIEWER-country-region": "QC",
			"Cloudfront-Viewer-Country":        "CA",
			"x-AMZ-cf-ID":                      "abcd1234-YYZ50-xyz",
		},
	} {
		require.Equal(t, canonical, r.Resolve(NormalizeHeaders(headers)))
	}
}

func TestResolve_DocumentedExample(t *testing.T) {
	r := NewLocationResolver(DefaultEdgeCodeSpec(), nil)

	loc := r.Resolve(NormalizeHeaders(map[string]string{
		"cloudfront-viewer-city":           "Montreal",
		"cloudfront-viewer-country-region": "QC",
		"cloudfront-viewer-country":        "CA",
		"x-amz-cf-id":                      "abcd1234-YYZ50-xyz",
	}))
	require.Equal(t, VisitorLocation{
		City:         "Montreal",
		Region:       "QC",
		Country:      "CA",
		EdgeLocation: "YYZ50",
	}, loc)
}

func TestEdgeCodeExtract(t *testing.T) {
	spec := DefaultEdgeCodeSpec()

	for _, tc := range []struct {
		name    string
		traceID string
		want    string
	}{
		{"middle segment", "abcd1234-YYZ50-xyz", "YYZ50"},
		{"leading segment", "IAD89-deadbeef", "IAD89"},
		{"no matching segment", "abcd1234-efgh5678", Unknown},
		{"empty", "", Unknown},
		{"lone delimiter", "-", Unknown},
		{"lowercase pop is not a code", "abcd-yyz50-xyz", Unknown},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, spec.Extract(tc.traceID))
			// Extraction is deterministic: repeated calls agree.
			require.Equal(t, spec.Extract(tc.traceID), spec.Extract(tc.traceID))
		})
	}
}

func TestParseEdgeCodeSpec(t *testing.T) {
	spec, err := ParseEdgeCodeSpec("_", `^\d{4}$`)
	require.NoError(t, err)
	require.Equal(t, "1234", spec.Extract("ab_1234_cd"))

	_, err = ParseEdgeCodeSpec("", DefaultEdgeCodePattern)
	require.Error(t, err)

	_, err = ParseEdgeCodeSpec("-", "([")
	require.Error(t, err)
}
