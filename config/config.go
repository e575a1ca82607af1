package config

import (
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

// Deployment stage, selected via 'cdk.json/context/deploymentStage' or
// '--context deploymentStage='.
type DeploymentStageType string

const (
	DeploymentStage_DEV  DeploymentStageType = "DEV"
	DeploymentStage_PROD DeploymentStageType = "PROD"
)

func DeploymentStage(scope constructs.Construct) DeploymentStageType {
	deploymentStage := DeploymentStage_PROD

	ctxValue := scope.Node().TryGetContext(jsii.String("deploymentStage"))
	if v, ok := ctxValue.(string); ok {
		deploymentStage = DeploymentStageType(v)
	}

	return deploymentStage
}

// DevPrefix is the per-developer domain prefix for dev deployments,
// read from 'cdk.json/context/devPrefix'.
func DevPrefix(scope constructs.Construct) string {
	prefix := ""

	ctxValue := scope.Node().TryGetContext(jsii.String("devPrefix"))
	if v, ok := ctxValue.(string); ok {
		prefix = v
	}

	return prefix
}

// StackSuffix identifies parallel deployments of the same stacks, e.g.
// per-developer sandboxes. Change it via 'cdk.json/context/stackSuffix'.
func StackSuffix(scope constructs.Construct) string {
	suffix := ""

	ctxValue := scope.Node().TryGetContext(jsii.String("stackSuffix"))
	if v, ok := ctxValue.(string); ok {
		suffix = v
	}

	return suffix
}

// WithStackSuffix appends the configured suffix to a base stack name.
func WithStackSuffix(scope constructs.Construct, baseName string) string {
	if suffix := StackSuffix(scope); suffix != "" {
		return baseName + "-" + suffix
	}
	return baseName
}
