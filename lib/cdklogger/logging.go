package cdklogger

import (
	"fmt"
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

// annotate formats the message, prefixing it with the construct ID
// unless the scope's CDK path already ends in that ID.
func annotate(scope constructs.Construct, constructID string, format string, args []interface{}) *string {
	message := fmt.Sprintf(format, args...)
	if constructID == "" {
		return jsii.String(message)
	}
	cdkPath := *scope.Node().Path()
	if strings.HasSuffix(cdkPath, "/"+constructID) || cdkPath == "/"+constructID {
		return jsii.String(message)
	}
	return jsii.String(fmt.Sprintf("[%s] %s", constructID, message))
}

// LogInfo adds an INFO level message to the CDK construct's metadata.
// These messages are typically output during `cdk synth`.
func LogInfo(scope constructs.Construct, constructID string, format string, args ...interface{}) {
	awscdk.Annotations_Of(scope).AddInfo(annotate(scope, constructID, format, args))
}

// LogWarning adds a WARNING level message to the CDK construct's metadata.
func LogWarning(scope constructs.Construct, constructID string, format string, args ...interface{}) {
	awscdk.Annotations_Of(scope).AddWarning(annotate(scope, constructID, format, args))
}

// LogError adds an ERROR level message to the CDK construct's metadata.
func LogError(scope constructs.Construct, constructID string, format string, args ...interface{}) {
	awscdk.Annotations_Of(scope).AddError(annotate(scope, constructID, format, args))
}
