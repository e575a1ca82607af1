package fronting

import (
	"github.com/aws/aws-cdk-go/awscdk/v2/awsapigatewayv2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsapigatewayv2integrations"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscertificatemanager"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsroute53"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

// FrontingResult bundles what a fronting provisioned: the HTTP API
// itself, plus the custom FQDN and ACM certificate when the fronting
// owns its own domain.
type FrontingResult struct {
	Api         awsapigatewayv2.HttpApi
	FQDN        *string
	Certificate awscertificatemanager.ICertificate
}

// FrontingProps holds the inputs needed to expose the dashboard Lambda.
type FrontingProps struct {
	// Handler is the Lambda function serving the dashboard API.
	Handler awslambda.IFunction
	// HostedZone is the Route53 hosted zone for record creation (api kind).
	HostedZone awsroute53.IHostedZone
	// RecordName is the subdomain prefix under HostedZone (e.g. "api").
	RecordName *string
	// Optional imported ACM certificate; if nil, a new cert is issued.
	ImportedCertificate awscertificatemanager.ICertificate
	// AdditionalSANs allows passing extra SubjectAlternativeNames when creating a new certificate.
	AdditionalSANs []*string
}

// Fronting abstracts how the dashboard API reaches the internet: its
// own API Gateway domain, or as an extra behavior on the site's
// CloudFront distribution.
type Fronting interface {
	AttachRoutes(scope constructs.Construct, id string, props *FrontingProps) FrontingResult
}

// newDashboardApi creates the HTTP API with the Lambda proxy
// integration shared by every fronting kind. The handler answers CORS
// preflight itself, so no gateway-level CORS configuration is set here;
// doubling it up would produce duplicate headers.
func newDashboardApi(scope constructs.Construct, id string, handler awslambda.IFunction) awsapigatewayv2.HttpApi {
	httpApi := awsapigatewayv2.NewHttpApi(scope, jsii.String(id+"HttpApi"), &awsapigatewayv2.HttpApiProps{
		ApiName: jsii.String(id + "HttpApi"),
	})

	integration := awsapigatewayv2integrations.NewHttpLambdaIntegration(
		jsii.String(id+"Integration"),
		handler,
		&awsapigatewayv2integrations.HttpLambdaIntegrationProps{},
	)

	httpApi.AddRoutes(&awsapigatewayv2.AddRoutesOptions{
		Path: jsii.String("/api"),
		Methods: &[]awsapigatewayv2.HttpMethod{
			awsapigatewayv2.HttpMethod_GET,
			awsapigatewayv2.HttpMethod_OPTIONS,
		},
		Integration: integration,
	})

	return httpApi
}

// NewApiGatewayFronting returns a Fronting that gives the API its own
// custom domain on API Gateway.
func NewApiGatewayFronting() Fronting {
	return &apiGateway{}
}

// NewCloudFrontFronting returns a Fronting that leaves the API on its
// default execute-api endpoint so the site distribution can proxy
// /api* to it.
func NewCloudFrontFronting() Fronting {
	return &cloudFront{}
}
