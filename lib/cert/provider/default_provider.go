package provider

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscertificatemanager"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsroute53"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/aetherdrone/infra/lib/utils"
)

// defaultProvider is the standard implementation of CertProvider.
type defaultProvider struct{}

// New returns a CertProvider that issues DNS-validated certificates for
// edge or regional scopes.
func New() CertProvider {
	return &defaultProvider{}
}

func (p *defaultProvider) Get(
	scope constructs.Construct,
	id string,
	zone awsroute53.IHostedZone,
	fqdn string,
	sScope CertScope,
	additionalSANs []*string,
) awscertificatemanager.ICertificate {
	certScope := scope
	if sScope == ScopeEdge {
		// Edge certificates must live in us-east-1, in their own stack,
		// deployed into the same account as the consumer.
		env := utils.CdkEnv()
		env.Region = jsii.String("us-east-1")
		edgeStack := awscdk.NewStack(scope, jsii.String(id+"EdgeCertStack"), &awscdk.StackProps{
			Env:                   env,
			CrossRegionReferences: jsii.Bool(true),
		})
		certScope = edgeStack
	}

	certProps := &awscertificatemanager.CertificateProps{
		DomainName: jsii.String(fqdn),
		Validation: awscertificatemanager.CertificateValidation_FromDns(zone),
	}
	if len(additionalSANs) > 0 {
		certProps.SubjectAlternativeNames = &additionalSANs
	}

	return awscertificatemanager.NewCertificate(certScope, jsii.String(id), certProps)
}
