package main

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"

	"github.com/aetherdrone/infra/config"
	"github.com/aetherdrone/infra/lib/utils"
	"github.com/aetherdrone/infra/stacks"
)

func main() {
	app := awscdk.NewApp(nil)

	stacks.SiteStack(
		app,
		config.WithStackSuffix(app, "AetherDrone-Site"),
		&stacks.SiteStackProps{
			StackProps: awscdk.StackProps{
				Env:                   utils.CdkEnv(),
				CrossRegionReferences: jsii.Bool(true),
				Description:           jsii.String("Aether Drone site: static page, dashboard API and edge WAF"),
			},
		},
	)

	app.Synth(nil)
}
