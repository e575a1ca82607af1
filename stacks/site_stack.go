package stacks

import (
	"fmt"
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/aws-cdk-go/awscdklambdagoalpha/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/aetherdrone/infra/config"
	"github.com/aetherdrone/infra/config/aliases"
	"github.com/aetherdrone/infra/config/domain"
	"github.com/aetherdrone/infra/lib/cdklogger"
	"github.com/aetherdrone/infra/lib/constructs/fronting"
	"github.com/aetherdrone/infra/lib/constructs/staticsite"
	"github.com/aetherdrone/infra/lib/constructs/webacl"
	"github.com/aetherdrone/infra/scripts/renderer"
)

type SiteStackProps struct {
	awscdk.StackProps
}

// SiteStack deploys the whole dashboard: the edge WAF and its log
// group, the dashboard Lambda behind an HTTP API, and the CloudFront
// distribution serving the static page with /api* proxied to the
// Lambda.
func SiteStack(scope constructs.Construct, id string, props *SiteStackProps) awscdk.Stack {
	var sprops awscdk.StackProps
	if props != nil {
		sprops = props.StackProps
	}
	stack := awscdk.NewStack(scope, jsii.String(id), &sprops)
	if !config.IsStackInSynthesis(stack) {
		return stack
	}

	stage := config.DeploymentStage(stack)
	devPrefix := config.DevPrefix(stack)
	envVars := config.GetEnvironmentVariables[config.SiteStackEnvironmentVariables](stack)
	cdklogger.LogInfo(stack, "", "Synthesizing site stack. Stage: %s, WebAssetsDir: %s", stage, envVars.WebAssetsDir)

	// Optional per-suffix CloudFront aliases from the TOML file.
	aliasCfg, err := aliases.LoadConfig(envVars.SiteAliasesFile)
	if err != nil {
		panic(err)
	}
	var extraAliases []string
	if stackAliases := aliases.GetConfigForStack(stack, aliasCfg); stackAliases != nil {
		extraAliases = stackAliases.SiteAliases
	}

	hd := domain.NewHostedDomain(stack, "HostedDomain", &domain.HostedDomainProps{
		Spec: domain.Spec{
			Stage:     domainStage(stage),
			Sub:       "",
			DevPrefix: devPrefix,
		},
		// CloudFront only accepts us-east-1 viewer certificates.
		EdgeCertificate: true,
		AdditionalNames: extraAliases,
	})

	wafLogGroupName := "aws-waf-logs-" + strings.ToLower(config.WithStackSuffix(stack, "aether-drone"))
	acl := webacl.NewWebAcl(scope, id+"-Waf", &webacl.WebAclProps{
		LogGroupName: wafLogGroupName,
	})

	handler := awscdklambdagoalpha.NewGoFunction(stack, jsii.String("DashboardHandler"), &awscdklambdagoalpha.GoFunctionProps{
		Entry:   jsii.String("lambdas/dashboard"),
		Timeout: awscdk.Duration_Minutes(jsii.Number(1)),
		Bundling: &awscdklambdagoalpha.BundlingOptions{
			GoBuildFlags: &[]*string{
				jsii.String("-ldflags \"-s -w\""),
			},
		},
		Environment: &map[string]*string{
			"WAF_LOG_GROUP_NAME": jsii.String(wafLogGroupName),
			"WAF_LOGS_REGION":    jsii.String("us-east-1"),
		},
	})

	// The Logs Insights lifecycle: start/stop are scoped to the WAF log
	// group, but GetQueryResults only takes a query id, not a resource.
	handler.AddToRolePolicy(awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
		Actions: jsii.Strings("logs:StartQuery", "logs:StopQuery"),
		Resources: &[]*string{
			jsii.String(fmt.Sprintf("arn:aws:logs:us-east-1:%s:log-group:%s:*", *stack.Account(), wafLogGroupName)),
		},
	}))
	handler.AddToRolePolicy(awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
		Actions:   jsii.Strings("logs:GetQueryResults"),
		Resources: jsii.Strings("*"),
	}))

	selectedKind := config.GetFrontingKind(stack)
	front := fronting.New(selectedKind)
	apiResult := front.AttachRoutes(stack, "Dashboard", &fronting.FrontingProps{
		Handler:    handler,
		HostedZone: hd.Zone,
		RecordName: jsii.String("api"),
	})
	apiEndpoint := apiResult.Api.ApiEndpoint()

	// The page must call the API same-origin so requests traverse the
	// distribution, which is what injects the viewer geolocation
	// headers. Hitting execute-api directly would report all-Unknown.
	// Only the api fronting kind, which owns a public domain, gets an
	// absolute URL.
	siteApiURL := ""
	if apiResult.FQDN != nil {
		siteApiURL = "https://" + *apiResult.FQDN
	}
	configBody, err := renderer.Render(renderer.TplSiteConfig, renderer.SiteConfigData{
		ApiURL: siteApiURL,
		Stage:  string(stage),
	})
	if err != nil {
		panic(err)
	}

	site := staticsite.NewStaticSite(stack, "Site", &staticsite.StaticSiteProps{
		Zone:         hd.Zone,
		DomainName:   hd.DomainName,
		Certificate:  hd.Cert,
		WebAclArn:    acl.AclArn,
		ApiEndpoint:  apiEndpoint,
		AssetsDir:    jsii.String(envVars.WebAssetsDir),
		ConfigBody:   jsii.String(configBody),
		ExtraAliases: aliasPointers(extraAliases),
	})

	awscdk.NewCfnOutput(stack, jsii.String("SiteURL"), &awscdk.CfnOutputProps{Value: jsii.String("https://" + hd.FQDN)})
	awscdk.NewCfnOutput(stack, jsii.String("ApiEndpoint"), &awscdk.CfnOutputProps{Value: apiEndpoint})
	awscdk.NewCfnOutput(stack, jsii.String("DistributionId"), &awscdk.CfnOutputProps{Value: site.Distribution.DistributionId()})

	return stack
}

func domainStage(stage config.DeploymentStageType) domain.StageType {
	if stage == config.DeploymentStage_DEV {
		return domain.StageDev
	}
	return domain.StageProd
}

func aliasPointers(names []string) []*string {
	out := make([]*string, len(names))
	for i, n := range names {
		out[i] = jsii.String(n)
	}
	return out
}
