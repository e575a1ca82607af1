package fronting

import (
	"fmt"

	"github.com/aws/constructs-go/constructs/v10"
)

// cloudFront keeps the dashboard API on its default execute-api
// endpoint. The site's CloudFront distribution proxies /api* to that
// endpoint with an origin-request policy forwarding the viewer
// geolocation headers — which is the only path on which action=location
// has real data to report.
type cloudFront struct{}

func (c *cloudFront) AttachRoutes(scope constructs.Construct, id string, props *FrontingProps) FrontingResult {
	if props.Handler == nil {
		panic(fmt.Sprintf("Handler is required for cloudFront fronting %s", id))
	}
	httpApi := newDashboardApi(scope, id, props.Handler)

	// No custom domain and no certificate here: TLS terminates at the
	// distribution, which carries the site certificate.
	return FrontingResult{Api: httpApi}
}
