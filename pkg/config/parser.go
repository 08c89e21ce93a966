package config

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// ParseConfig parses an aks-config.yaml file and returns the configuration.
// This function uses lenient parsing - it only validates that the provider field
// exists and is valid. Provider-specific validation happens in the provider.
func ParseConfig(ctx context.Context, filePath string) (*AKSConfig, error) {
	tracer := otel.Tracer("aks-infrastructure-core")
	_, span := tracer.Start(ctx, "config.ParseConfig")
	defer span.End()

	span.SetAttributes(attribute.String("config.file", filePath))

	data, err := os.ReadFile(filePath)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to read config file %s: %w", filePath, err)
	}

	var config AKSConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to parse config file %s: %w", filePath, err)
	}

	if config.Provider == "" {
		err := fmt.Errorf("provider field is required in config")
		span.RecordError(err)
		return nil, err
	}

	if !IsValidProvider(config.Provider) {
		err := fmt.Errorf("invalid provider %q, must be one of: %v", config.Provider, ValidProviders)
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.String("config.provider", config.Provider))

	return &config, nil
}

// UnmarshalProviderConfig converts the loosely typed provider config block to a
// concrete type. The target parameter should be a pointer to the provider-specific
// config struct. This function re-marshals and unmarshals to handle the type
// conversion properly, preserving fields captured by inline maps.
func UnmarshalProviderConfig(ctx context.Context, providerConfig any, target any) error {
	tracer := otel.Tracer("aks-infrastructure-core")
	_, span := tracer.Start(ctx, "config.UnmarshalProviderConfig")
	defer span.End()

	if providerConfig == nil {
		err := fmt.Errorf("provider config is nil")
		span.RecordError(err)
		return err
	}

	data, err := yaml.Marshal(providerConfig)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to marshal provider config: %w", err)
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to unmarshal provider config: %w", err)
	}

	return nil
}
