package fronting_test

import (
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/assertions"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsroute53"
	"github.com/aws/jsii-runtime-go"
	"github.com/stretchr/testify/require"

	"github.com/aetherdrone/infra/lib/constructs/fronting"
	"github.com/aetherdrone/infra/tests/testutil"
)

func newTestStack() awscdk.Stack {
	app := awscdk.NewApp(nil)
	return awscdk.NewStack(app, jsii.String("TestStack"), &awscdk.StackProps{
		Env: &awscdk.Environment{
			Account: jsii.String("123456789012"),
			Region:  jsii.String("us-east-2"),
		},
	})
}

func testZone(stack awscdk.Stack) awsroute53.IHostedZone {
	return awsroute53.HostedZone_FromHostedZoneAttributes(stack, jsii.String("Zone"), &awsroute53.HostedZoneAttributes{
		HostedZoneId: jsii.String("Z0000000000000000000"),
		ZoneName:     jsii.String("aetherdrone.io"),
	})
}

func TestCloudFrontFrontingSynth(t *testing.T) {
	stack := newTestStack()

	result := fronting.New(fronting.KindCloudFront).AttachRoutes(stack, "Dashboard", &fronting.FrontingProps{
		Handler: testutil.DummyHandler(stack, "Handler"),
	})
	require.NotNil(t, result.Api)
	// No custom domain: the site distribution proxies to execute-api.
	require.Nil(t, result.FQDN)
	require.Nil(t, result.Certificate)

	template := assertions.Template_FromStack(stack, nil)
	template.ResourceCountIs(jsii.String("AWS::ApiGatewayV2::Api"), jsii.Number(1))
	template.ResourceCountIs(jsii.String("AWS::ApiGatewayV2::DomainName"), jsii.Number(0))

	// GET and OPTIONS both reach the handler; the Lambda answers
	// preflight itself.
	template.HasResourceProperties(jsii.String("AWS::ApiGatewayV2::Route"), map[string]interface{}{
		"RouteKey": "GET /api",
	})
	template.HasResourceProperties(jsii.String("AWS::ApiGatewayV2::Route"), map[string]interface{}{
		"RouteKey": "OPTIONS /api",
	})
}

func TestApiGatewayFrontingSynth(t *testing.T) {
	stack := newTestStack()

	result := fronting.New(fronting.KindAPI).AttachRoutes(stack, "Dashboard", &fronting.FrontingProps{
		Handler:    testutil.DummyHandler(stack, "Handler"),
		HostedZone: testZone(stack),
		RecordName: jsii.String("api"),
	})
	require.NotNil(t, result.FQDN)
	require.Equal(t, "api.aetherdrone.io", *result.FQDN)

	template := assertions.Template_FromStack(stack, nil)
	template.ResourceCountIs(jsii.String("AWS::ApiGatewayV2::Api"), jsii.Number(1))
	template.ResourceCountIs(jsii.String("AWS::ApiGatewayV2::DomainName"), jsii.Number(1))
	template.ResourceCountIs(jsii.String("AWS::Route53::RecordSet"), jsii.Number(1))
}

func TestApiGatewayFrontingRequiresHandler(t *testing.T) {
	stack := newTestStack()

	require.Panics(t, func() {
		fronting.New(fronting.KindAPI).AttachRoutes(stack, "Dashboard", &fronting.FrontingProps{
			HostedZone: testZone(stack),
			RecordName: jsii.String("api"),
		})
	})
}
