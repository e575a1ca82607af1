package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

//---------------------------------------------------------------------
// 1. Generic helpers
//---------------------------------------------------------------------

// TmpSiteDir creates a temp directory holding a minimal index.html, for
// constructs that deploy a local assets directory.
func TmpSiteDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<!doctype html><title>test</title>"), 0o644); err != nil {
		t.Fatalf("write-index: %v", err)
	}
	return dir
}

//---------------------------------------------------------------------
// 2. CDK fixtures
//---------------------------------------------------------------------

// DummyHandler returns an inline-code Lambda so synth tests never
// trigger Go bundling.
func DummyHandler(scope constructs.Construct, id string) awslambda.Function {
	return awslambda.NewFunction(scope, jsii.String(id), &awslambda.FunctionProps{
		Runtime: awslambda.Runtime_NODEJS_18_X(),
		Handler: jsii.String("index.handler"),
		Code:    awslambda.Code_FromInline(jsii.String("exports.handler = async () => ({ statusCode: 200 });")),
	})
}
