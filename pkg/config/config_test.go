package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestIsValidProvider(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		want     bool
	}{
		{
			name:     "azure is valid",
			provider: "azure",
			want:     true,
		},
		{
			name:     "empty string is invalid",
			provider: "",
			want:     false,
		},
		{
			name:     "unknown provider is invalid",
			provider: "aws",
			want:     false,
		},
		{
			name:     "uppercase is invalid",
			provider: "Azure",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsValidProvider(tt.provider)
			if got != tt.want {
				t.Errorf("IsValidProvider(%q) = %v, want %v", tt.provider, got, tt.want)
			}
		})
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "aks-config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestParseConfig(t *testing.T) {
	path := writeConfigFile(t, `
provider: azure
azure:
  workload: myapp
  environment: prod
  location: italynorth
  instance: 1
  node_pool_preset: high
`)

	cfg, err := ParseConfig(context.Background(), path)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}

	if cfg.Provider != "azure" {
		t.Errorf("Provider = %q, want %q", cfg.Provider, "azure")
	}

	if cfg.Azure == nil {
		t.Fatal("Azure block should be populated")
	}

	if cfg.Azure.Workload != "myapp" {
		t.Errorf("Workload = %q, want %q", cfg.Azure.Workload, "myapp")
	}

	if cfg.Azure.Environment != "prod" {
		t.Errorf("Environment = %q, want %q", cfg.Azure.Environment, "prod")
	}

	// Keys not modeled on AzureConfig must survive via the inline map
	if got := cfg.Azure.AdditionalFields["node_pool_preset"]; got != "high" {
		t.Errorf("AdditionalFields[node_pool_preset] = %v, want %q", got, "high")
	}
}

func TestParseConfigMissingProvider(t *testing.T) {
	path := writeConfigFile(t, `
azure:
  workload: myapp
  environment: prod
`)

	if _, err := ParseConfig(context.Background(), path); err == nil {
		t.Error("ParseConfig() expected error for missing provider, got nil")
	}
}

func TestParseConfigInvalidProvider(t *testing.T) {
	path := writeConfigFile(t, `provider: gcp`)

	if _, err := ParseConfig(context.Background(), path); err == nil {
		t.Error("ParseConfig() expected error for invalid provider, got nil")
	}
}

func TestParseConfigMissingFile(t *testing.T) {
	if _, err := ParseConfig(context.Background(), filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("ParseConfig() expected error for missing file, got nil")
	}
}

func TestUnmarshalProviderConfig(t *testing.T) {
	type target struct {
		Workload string `yaml:"workload"`
		Preset   string `yaml:"node_pool_preset"`
	}

	src := &AzureConfig{
		Workload: "myapp",
		AdditionalFields: map[string]any{
			"node_pool_preset": "low",
		},
	}

	var got target
	if err := UnmarshalProviderConfig(context.Background(), src, &got); err != nil {
		t.Fatalf("UnmarshalProviderConfig() error = %v", err)
	}

	if got.Workload != "myapp" {
		t.Errorf("Workload = %q, want %q", got.Workload, "myapp")
	}

	if got.Preset != "low" {
		t.Errorf("Preset = %q, want %q (inline field must round-trip)", got.Preset, "low")
	}
}

func TestUnmarshalProviderConfigNil(t *testing.T) {
	var got struct{}
	if err := UnmarshalProviderConfig(context.Background(), nil, &got); err == nil {
		t.Error("UnmarshalProviderConfig(nil) expected error, got nil")
	}
}
