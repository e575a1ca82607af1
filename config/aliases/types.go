package aliases

// StackAliasConfig holds the extra CloudFront aliases for one stack
// suffix. Every alias must already resolve in the hosted zone or be
// covered by an externally managed DNS record.
type StackAliasConfig struct {
	// SiteAliases are additional domain names the distribution answers
	// for, next to the primary site domain.
	SiteAliases []string `toml:"site_aliases"`
}

// AliasConfig maps a stack suffix to its alias configuration.
type AliasConfig map[string]StackAliasConfig
