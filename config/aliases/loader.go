package aliases

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/aws/constructs-go/constructs/v10"

	infracfg "github.com/aetherdrone/infra/config"
)

// LoadConfig reads the site alias configuration from the given TOML
// file. A missing file is not an error: most deployments carry no extra
// aliases.
func LoadConfig(filePath string) (*AliasConfig, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading site alias config %s: %w", filePath, err)
	}

	var config AliasConfig
	if err := toml.Unmarshal(raw, &config); err != nil {
		return nil, fmt.Errorf("decoding site alias config %s: %w", filePath, err)
	}

	return &config, nil
}

// GetConfigForStack returns the alias configuration for the current
// stack suffix, or nil when none is configured.
func GetConfigForStack(scope constructs.Construct, cfg *AliasConfig) *StackAliasConfig {
	if cfg == nil {
		return nil
	}

	suffix := infracfg.StackSuffix(scope)
	if stackConfig, ok := (*cfg)[suffix]; ok {
		return &stackConfig
	}

	return nil
}
