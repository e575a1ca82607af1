package fronting

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2/awsapigatewayv2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscertificatemanager"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsroute53"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsroute53targets"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

// apiGateway exposes the dashboard Lambda on an HTTP API with its own
// custom domain. Useful for dev stacks that skip CloudFront entirely —
// note that without the distribution in front, the viewer geolocation
// headers are absent and action=location reports all-Unknown.
type apiGateway struct{}

func (a *apiGateway) AttachRoutes(scope constructs.Construct, id string, props *FrontingProps) FrontingResult {
	if props.Handler == nil {
		panic(fmt.Sprintf("Handler is required for apiGateway construct %s", id))
	}
	httpApi := newDashboardApi(scope, id, props.Handler)

	if props.RecordName == nil || *props.RecordName == "" {
		panic(fmt.Sprintf("RecordName is required for apiGateway construct %s", id))
	}
	zoneName := props.HostedZone.ZoneName()
	fqdn := *props.RecordName + "." + *zoneName

	var cert awscertificatemanager.ICertificate
	certMgr := NewCertManager()

	if props.ImportedCertificate != nil {
		cert = props.ImportedCertificate
	} else {
		cert = certMgr.GetRegional(scope, id+"Cert", props.HostedZone, fqdn, props.AdditionalSANs)
	}

	domainName := awsapigatewayv2.NewDomainName(scope, jsii.String(id+"DomainName"), &awsapigatewayv2.DomainNameProps{
		DomainName:  jsii.String(fqdn),
		Certificate: cert,
	})

	awsapigatewayv2.NewApiMapping(scope, jsii.String(id+"ApiMapping"), &awsapigatewayv2.ApiMappingProps{
		Api:        httpApi,
		DomainName: domainName,
	})

	awsroute53.NewARecord(scope, jsii.String(id+"ARecord"), &awsroute53.ARecordProps{
		Zone:       props.HostedZone,
		RecordName: props.RecordName,
		Target: awsroute53.RecordTarget_FromAlias(
			awsroute53targets.NewApiGatewayv2DomainProperties(
				domainName.RegionalDomainName(),
				domainName.RegionalHostedZoneId(),
			),
		),
	})

	return FrontingResult{
		Api:         httpApi,
		FQDN:        jsii.String(fqdn),
		Certificate: cert,
	}
}
