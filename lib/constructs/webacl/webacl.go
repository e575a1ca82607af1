package webacl

import (
	"fmt"
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslogs"
	"github.com/aws/aws-cdk-go/awscdk/v2/awswafv2"
	"github.com/aws/constructs-go/constructs/v10"
	jsii "github.com/aws/jsii-runtime-go"

	"github.com/aetherdrone/infra/config"
	"github.com/aetherdrone/infra/lib/cdklogger"
	"github.com/aetherdrone/infra/lib/utils"
)

// logGroupPrefix is mandated by WAF: logging destinations must be named
// aws-waf-logs-*.
const logGroupPrefix = "aws-waf-logs-"

// Managed rule groups attached to the ACL, in priority order.
var managedRuleGroups = []string{
	"AWSManagedRulesCommonRuleSet",
	"AWSManagedRulesKnownBadInputsRuleSet",
	"AWSManagedRulesAmazonIpReputationList",
}

// WebAclProps holds inputs for the edge WAF.
type WebAclProps struct {
	// LogGroupName names the CloudWatch log group receiving WAF logs.
	// It must carry the aws-waf-logs- prefix.
	LogGroupName string
}

// WebAcl provisions a CLOUDFRONT-scoped WAF WebACL in its own us-east-1
// stack (CloudFront accepts edge ACLs from that region only), with its
// block/allow decisions logged to a CloudWatch log group. That log group
// is the collection the dashboard Lambda queries for the block count.
type WebAcl struct {
	constructs.Construct
	// AclArn is the cross-region reference handed to the distribution.
	AclArn *string
	// LogGroupName is plumbed into the Lambda environment.
	LogGroupName string
}

// NewWebAcl creates the WAF stack under the given scope.
func NewWebAcl(scope constructs.Construct, id string, props *WebAclProps) *WebAcl {
	if !strings.HasPrefix(props.LogGroupName, logGroupPrefix) {
		panic(fmt.Sprintf("WAF log group %q must start with %q", props.LogGroupName, logGroupPrefix))
	}

	// Keep the deploy account: the site stack consumes AclArn across
	// regions, which only resolves between same-account stacks.
	env := utils.CdkEnv()
	env.Region = jsii.String("us-east-1")
	edgeStack := awscdk.NewStack(scope, jsii.String(id+"-Edge"), &awscdk.StackProps{
		Env:                   env,
		CrossRegionReferences: jsii.Bool(true),
	})
	w := &WebAcl{Construct: edgeStack, LogGroupName: props.LogGroupName}

	params := config.NewCDKParams(edgeStack)

	rules := make([]interface{}, 0, len(managedRuleGroups)+1)
	for i, name := range managedRuleGroups {
		rules = append(rules, managedRule(name, float64(i+1)))
	}
	rules = append(rules, rateRule(params.WafRateLimit.ValueAsNumber(), float64(len(managedRuleGroups)+1)))

	acl := awswafv2.NewCfnWebACL(edgeStack, jsii.String("WebAcl"), &awswafv2.CfnWebACLProps{
		Scope: jsii.String("CLOUDFRONT"),
		DefaultAction: &awswafv2.CfnWebACL_DefaultActionProperty{
			Allow: &awswafv2.CfnWebACL_AllowActionProperty{},
		},
		VisibilityConfig: visibility("aether-drone-web-acl"),
		Rules:            &rules,
	})
	w.AclArn = acl.AttrArn()

	logGroup := awslogs.NewLogGroup(edgeStack, jsii.String("WafLogGroup"), &awslogs.LogGroupProps{
		LogGroupName:  jsii.String(props.LogGroupName),
		Retention:     awslogs.RetentionDays_ONE_MONTH,
		RemovalPolicy: awscdk.RemovalPolicy_DESTROY,
	})

	awswafv2.NewCfnLoggingConfiguration(edgeStack, jsii.String("WafLogging"), &awswafv2.CfnLoggingConfigurationProps{
		ResourceArn:           acl.AttrArn(),
		LogDestinationConfigs: &[]*string{logGroup.LogGroupArn()},
	})

	cdklogger.LogInfo(edgeStack, "", "WAF WebACL with %d managed rule groups, logging to %s", len(managedRuleGroups), props.LogGroupName)

	awscdk.NewCfnOutput(edgeStack, jsii.String("WafLogGroupName"), &awscdk.CfnOutputProps{Value: jsii.String(props.LogGroupName)})

	return w
}

func visibility(metricName string) *awswafv2.CfnWebACL_VisibilityConfigProperty {
	return &awswafv2.CfnWebACL_VisibilityConfigProperty{
		CloudWatchMetricsEnabled: jsii.Bool(true),
		MetricName:               jsii.String(metricName),
		SampledRequestsEnabled:   jsii.Bool(true),
	}
}

func managedRule(name string, priority float64) *awswafv2.CfnWebACL_RuleProperty {
	return &awswafv2.CfnWebACL_RuleProperty{
		Name:     jsii.String(name),
		Priority: jsii.Number(priority),
		// Managed groups carry their own per-rule actions.
		OverrideAction: &awswafv2.CfnWebACL_OverrideActionProperty{
			None: map[string]interface{}{},
		},
		Statement: &awswafv2.CfnWebACL_StatementProperty{
			ManagedRuleGroupStatement: &awswafv2.CfnWebACL_ManagedRuleGroupStatementProperty{
				Name:       jsii.String(name),
				VendorName: jsii.String("AWS"),
			},
		},
		VisibilityConfig: visibility(name),
	}
}

func rateRule(limit *float64, priority float64) *awswafv2.CfnWebACL_RuleProperty {
	return &awswafv2.CfnWebACL_RuleProperty{
		Name:     jsii.String("RateLimitPerIp"),
		Priority: jsii.Number(priority),
		Action: &awswafv2.CfnWebACL_RuleActionProperty{
			Block: &awswafv2.CfnWebACL_BlockActionProperty{},
		},
		Statement: &awswafv2.CfnWebACL_StatementProperty{
			RateBasedStatement: &awswafv2.CfnWebACL_RateBasedStatementProperty{
				AggregateKeyType: jsii.String("IP"),
				Limit:            limit,
			},
		},
		VisibilityConfig: visibility("RateLimitPerIp"),
	}
}
