package config

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

// Constants for CDK parameter names
const (
	WafRateLimitParamName = "wafRateLimit"
)

type CDKParams struct {
	// WafRateLimit is requests per 5-minute window per IP before the
	// rate-based WAF rule starts blocking.
	WafRateLimit awscdk.CfnParameter
}

// NewCDKParams declares the deploy-time parameters on the given stack.
func NewCDKParams(scope constructs.Construct) CDKParams {
	wafRateLimit := awscdk.NewCfnParameter(scope, jsii.String(WafRateLimitParamName), &awscdk.CfnParameterProps{
		Type:        jsii.String("Number"),
		Description: jsii.String("WAF rate-based rule limit (requests per 5 minutes per IP)"),
		Default:     jsii.Number(1000),
		MinValue:    jsii.Number(100),
	})

	return CDKParams{
		WafRateLimit: wafRateLimit,
	}
}
