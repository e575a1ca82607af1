package config

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
)

// IsStackInSynthesis reports whether the scope belongs to a stack that
// is actually being synthesized. Environment parsing is skipped outside
// synthesis (e.g. `cdk list`) so unrelated commands don't demand a full
// deploy environment.
func IsStackInSynthesis(scope constructs.Construct) bool {
	stack := awscdk.Stack_Of(scope)
	if stack == nil {
		return false
	}
	return *stack.BundlingRequired()
}
