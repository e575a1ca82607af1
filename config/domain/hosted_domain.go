package domain

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscertificatemanager"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsroute53"
	"github.com/aws/constructs-go/constructs/v10"
	jsii "github.com/aws/jsii-runtime-go"

	"github.com/aetherdrone/infra/lib/cdklogger"
	"github.com/aetherdrone/infra/lib/utils"
)

// HostedDomainProps holds inputs for creating a HostedDomain construct.
type HostedDomainProps struct {
	Spec Spec
	// EdgeCertificate issues the certificate in us-east-1, which is
	// where CloudFront requires its viewer certificates to live.
	EdgeCertificate bool
	AdditionalNames []string // extra SANs for the certificate
}

// HostedDomain looks up the Route53 hosted zone for the base domain and
// provisions an ACM certificate for the Spec's FQDN. It exposes FQDN
// and DomainName tokens for other constructs to consume.
type HostedDomain struct {
	constructs.Construct
	Zone       awsroute53.IHostedZone
	Cert       awscertificatemanager.Certificate
	FQDN       string
	DomainName *string
}

// NewHostedDomain creates a HostedDomain under the given scope.
func NewHostedDomain(scope constructs.Construct, id string, props *HostedDomainProps) *HostedDomain {
	hdConstruct := constructs.NewConstruct(scope, jsii.String(id))
	hd := &HostedDomain{Construct: hdConstruct}

	hd.FQDN = *props.Spec.FQDN()
	hd.DomainName = jsii.String(hd.FQDN)

	hd.Zone = awsroute53.HostedZone_FromLookup(hdConstruct, jsii.String("Zone"), &awsroute53.HostedZoneProviderProps{
		DomainName: jsii.String(MainDomain),
	})

	cdklogger.LogInfo(hdConstruct, "", "Setting up hosted domain. FQDN: %s, Zone: %s, EdgeCertificate: %t", hd.FQDN, *hd.Zone.ZoneName(), props.EdgeCertificate)

	// Edge certificates go into their own us-east-1 stack; regional ones
	// live next to the construct.
	certScope := hdConstruct
	if props.EdgeCertificate {
		// Same deploy account as the consuming stack; cross-region
		// references do not resolve across accounts.
		env := utils.CdkEnv()
		env.Region = jsii.String("us-east-1")
		edgeStack := awscdk.NewStack(scope, jsii.String(id+"-EdgeCert"), &awscdk.StackProps{
			Env:                   env,
			CrossRegionReferences: jsii.Bool(true),
		})
		certScope = edgeStack
	}

	var altNames []*string
	for _, name := range props.AdditionalNames {
		altNames = append(altNames, jsii.String(name))
	}

	certProps := &awscertificatemanager.CertificateProps{
		DomainName: jsii.String(hd.FQDN),
		Validation: awscertificatemanager.CertificateValidation_FromDns(hd.Zone),
	}
	if len(altNames) > 0 {
		certProps.SubjectAlternativeNames = &altNames
	}

	hd.Cert = awscertificatemanager.NewCertificate(certScope, jsii.String("Cert"), certProps)

	awscdk.NewCfnOutput(hd.Construct, jsii.String("Domain"), &awscdk.CfnOutputProps{Value: jsii.String(hd.FQDN)})
	awscdk.NewCfnOutput(hd.Construct, jsii.String("HostedZoneId"), &awscdk.CfnOutputProps{Value: hd.Zone.HostedZoneId()})
	awscdk.NewCfnOutput(hd.Construct, jsii.String("CertificateArn"), &awscdk.CfnOutputProps{Value: hd.Cert.CertificateArn()})

	return hd
}

// AddARecord creates an A record in this hosted zone for the given subdomain (empty sub for apex).
func (h *HostedDomain) AddARecord(id string, sub string, target awsroute53.RecordTarget) awsroute53.ARecord {
	var recordName *string
	if sub != "" {
		recordName = jsii.String(fmt.Sprintf("%s.%s", sub, h.FQDN))
	}
	return awsroute53.NewARecord(h.Construct, jsii.String(id), &awsroute53.ARecordProps{
		Zone:       h.Zone,
		RecordName: recordName,
		Target:     target,
	})
}
