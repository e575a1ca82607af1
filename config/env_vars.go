package config

import (
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/caarlos0/env/v11"
)

// SiteStackEnvironmentVariables is the synth-time environment for the
// site stack.
type SiteStackEnvironmentVariables struct {
	// WebAssetsDir is the directory holding the built static site.
	WebAssetsDir string `env:"WEB_ASSETS_DIR" envDefault:"web"`
	// SiteAliasesFile optionally points at a TOML file with extra
	// CloudFront aliases per stack suffix.
	SiteAliasesFile string `env:"SITE_ALIASES_FILE" envDefault:"site_aliases.toml"`
}

// GetEnvironmentVariables parses T from the process environment, but
// only while the stack is synthesizing; other CDK commands get the zero
// value and no required-variable failures.
func GetEnvironmentVariables[T any](scope constructs.Construct) T {
	var envObj T

	if !IsStackInSynthesis(scope) {
		return envObj
	}

	if err := env.Parse(&envObj); err != nil {
		panic(err)
	}

	return envObj
}
