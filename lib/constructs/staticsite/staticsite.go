package staticsite

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscertificatemanager"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfront"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfrontorigins"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsroute53"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsroute53targets"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3deployment"
	"github.com/aws/constructs-go/constructs/v10"
	jsii "github.com/aws/jsii-runtime-go"

	"github.com/aetherdrone/infra/lib/cdklogger"
)

// Viewer geolocation headers the distribution forwards to the API
// origin. Without this allowlist the Lambda sees none of them and
// action=location degrades to all-Unknown.
var viewerHeaders = []string{
	"CloudFront-Viewer-City",
	"CloudFront-Viewer-Country-Region",
	"CloudFront-Viewer-Country",
}

// StaticSiteProps holds the inputs for the site distribution.
type StaticSiteProps struct {
	// Zone and DomainName drive the alias record; Certificate must be an
	// edge (us-east-1) certificate covering DomainName and ExtraAliases.
	Zone        awsroute53.IHostedZone
	DomainName  *string
	Certificate awscertificatemanager.ICertificate
	// WebAclArn attaches the edge WAF to the distribution.
	WebAclArn *string
	// ApiEndpoint is the dashboard API's execute-api URL (token).
	ApiEndpoint *string
	// AssetsDir is the local directory with the built static page.
	AssetsDir *string
	// ConfigBody is the rendered config.js content deployed next to the
	// assets; it may contain deploy-time tokens.
	ConfigBody *string
	// ExtraAliases are additional CNAMEs on the distribution.
	ExtraAliases []*string
}

// StaticSite is a private S3 bucket fronted by CloudFront, with the
// dashboard API mounted under /api* on the same distribution.
type StaticSite struct {
	constructs.Construct
	Bucket       awss3.IBucket
	Distribution awscloudfront.Distribution
}

// NewStaticSite provisions the bucket, distribution and deployment.
func NewStaticSite(scope constructs.Construct, id string, props *StaticSiteProps) *StaticSite {
	siteConstruct := constructs.NewConstruct(scope, jsii.String(id))
	site := &StaticSite{Construct: siteConstruct}

	// The bucket stays private; CloudFront reaches it through an origin
	// access control, so no website hosting and no public policy.
	site.Bucket = awss3.NewBucket(siteConstruct, jsii.String("AssetsBucket"), &awss3.BucketProps{
		BlockPublicAccess: awss3.BlockPublicAccess_BLOCK_ALL(),
		ObjectOwnership:   awss3.ObjectOwnership_BUCKET_OWNER_ENFORCED,
		Encryption:        awss3.BucketEncryption_S3_MANAGED,
	})
	assetOrigin := awscloudfrontorigins.S3BucketOrigin_WithOriginAccessControl(site.Bucket, nil)

	// The execute-api URL arrives as https://{id}.execute-api…; the
	// origin wants the bare host.
	apiHost := awscdk.Fn_Select(jsii.Number(2), awscdk.Fn_Split(jsii.String("/"), props.ApiEndpoint, nil))
	apiOrigin := awscloudfrontorigins.NewHttpOrigin(apiHost, &awscloudfrontorigins.HttpOriginProps{
		ProtocolPolicy: awscloudfront.OriginProtocolPolicy_HTTPS_ONLY,
	})

	forwardViewerGeo := awscloudfront.NewOriginRequestPolicy(siteConstruct, jsii.String("ViewerGeoPolicy"), &awscloudfront.OriginRequestPolicyProps{
		Comment:             jsii.String("Forward viewer geolocation headers and the action query parameter"),
		HeaderBehavior:      awscloudfront.OriginRequestHeaderBehavior_AllowList(headerPointers()...),
		QueryStringBehavior: awscloudfront.OriginRequestQueryStringBehavior_All(),
		CookieBehavior:      awscloudfront.OriginRequestCookieBehavior_None(),
	})

	domainNames := append([]*string{props.DomainName}, props.ExtraAliases...)

	site.Distribution = awscloudfront.NewDistribution(siteConstruct, jsii.String("Distribution"), &awscloudfront.DistributionProps{
		DefaultRootObject: jsii.String("index.html"),
		DomainNames:       &domainNames,
		Certificate:       props.Certificate,
		WebAclId:          props.WebAclArn,
		DefaultBehavior: &awscloudfront.BehaviorOptions{
			Origin:               assetOrigin,
			ViewerProtocolPolicy: awscloudfront.ViewerProtocolPolicy_REDIRECT_TO_HTTPS,
		},
		// "/api*" and not "/api/*": the dashboard route is exactly /api,
		// which the latter pattern would miss, handing API calls to the
		// S3 origin.
		AdditionalBehaviors: &map[string]*awscloudfront.BehaviorOptions{
			"/api*": {
				Origin:               apiOrigin,
				ViewerProtocolPolicy: awscloudfront.ViewerProtocolPolicy_HTTPS_ONLY,
				AllowedMethods:       awscloudfront.AllowedMethods_ALLOW_GET_HEAD_OPTIONS(),
				CachePolicy:          awscloudfront.CachePolicy_CACHING_DISABLED(),
				OriginRequestPolicy:  forwardViewerGeo,
			},
		},
	})

	awss3deployment.NewBucketDeployment(siteConstruct, jsii.String("DeployAssets"), &awss3deployment.BucketDeploymentProps{
		Sources: &[]awss3deployment.ISource{
			awss3deployment.Source_Asset(props.AssetsDir, nil),
			awss3deployment.Source_Data(jsii.String("config.js"), props.ConfigBody, nil),
		},
		DestinationBucket: site.Bucket,
		Distribution:      site.Distribution,
		DistributionPaths: &[]*string{jsii.String("/*")},
	})

	awsroute53.NewARecord(siteConstruct, jsii.String("AliasRecord"), &awsroute53.ARecordProps{
		Zone:       props.Zone,
		RecordName: props.DomainName,
		Target: awsroute53.RecordTarget_FromAlias(
			awsroute53targets.NewCloudFrontTarget(site.Distribution),
		),
	})

	cdklogger.LogInfo(siteConstruct, "", "Static site on %s with /api* proxied to the dashboard API", *props.DomainName)

	return site
}

func headerPointers() []*string {
	out := make([]*string, len(viewerHeaders))
	for i, h := range viewerHeaders {
		out[i] = jsii.String(h)
	}
	return out
}
