package config

import "time"

// AKSConfig represents the parsed aks-config.yaml structure
type AKSConfig struct {
	Provider string `yaml:"provider"`

	// Provider-specific configuration block. Kept loosely typed here so the
	// provider package owns its own schema; see UnmarshalProviderConfig.
	Azure *AzureConfig `yaml:"azure,omitempty"`

	// Using a map to capture additional fields for lenient parsing
	AdditionalFields map[string]any `yaml:",inline"`

	// Runtime options set from CLI flags, never from YAML
	DryRun   bool          `yaml:"-"`
	Force    bool          `yaml:"-"`
	SkipWait bool          `yaml:"-"`
	Timeout  time.Duration `yaml:"-"`
}

// AzureConfig carries the identity fields the CLI needs for logging and
// confirmation prompts. The full option surface lives in the azure provider
// package; the inline map preserves every other key across the
// UnmarshalProviderConfig round-trip.
type AzureConfig struct {
	Workload    string `yaml:"workload"`
	Environment string `yaml:"environment"`
	Location    string `yaml:"location,omitempty"`

	AdditionalFields map[string]any `yaml:",inline"`
}

// ValidProviders lists the supported providers
var ValidProviders = []string{"azure"}

// IsValidProvider checks if the provider string is valid
func IsValidProvider(provider string) bool {
	for _, p := range ValidProviders {
		if p == provider {
			return true
		}
	}
	return false
}
