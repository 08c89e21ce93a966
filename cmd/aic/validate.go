package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/nebari-dev/aks-infrastructure-core/pkg/config"
	"github.com/nebari-dev/aks-infrastructure-core/pkg/provider"
	"github.com/nebari-dev/aks-infrastructure-core/pkg/status"
)

var (
	validateConfigFile string
	validateCreds      bool

	validateCmd = &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validate the aks-config.yaml file without deploying any infrastructure.
This command resolves the full desired state, checks every conditional and
naming rule, and verifies that referenced existing resources can be found.

Use --validate-creds to additionally verify the service principal can access
the configured subscription.`,
		RunE: runValidate,
	}
)

func init() {
	validateCmd.Flags().StringVarP(&validateConfigFile, "file", "f", "", "Path to aks-config.yaml file (required)")
	validateCmd.Flags().BoolVar(&validateCreds, "validate-creds", false, "Perform thorough credential validation")
	// Panic is appropriate in init() since we cannot return errors and this indicates a programming error
	if err := validateCmd.MarkFlagRequired("file"); err != nil {
		panic(err)
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	// Get cancellable context from cobra (for signal handling)
	ctx := cmd.Context()
	tracer := otel.Tracer("aks-infrastructure-core")
	ctx, span := tracer.Start(ctx, "cmd.validate")
	defer span.End()

	span.SetAttributes(
		attribute.String("config.file", validateConfigFile),
		attribute.Bool("validate_creds", validateCreds),
	)

	slog.Info("Validating configuration", "config_file", validateConfigFile)

	// Setup status handler so resolution warnings reach the user
	ctx, cleanupStatus := status.StartHandler(ctx, statusLogHandler())
	defer cleanupStatus()

	// Parse configuration
	cfg, err := config.ParseConfig(ctx, validateConfigFile)
	if err != nil {
		span.RecordError(err)
		slog.Error("Configuration validation failed", "error", err, "file", validateConfigFile)
		return err
	}

	slog.Info("Configuration is valid", "provider", cfg.Provider)

	// Get provider and validate configuration
	p, err := registry.Get(cfg.Provider)
	if err != nil {
		span.RecordError(err)
		slog.Error("Provider not available", "error", err, "provider", cfg.Provider)
		return err
	}

	// Validate provider-specific configuration
	if err := p.Validate(ctx, cfg); err != nil {
		span.RecordError(err)
		slog.Error("Provider configuration validation failed", "error", err, "provider", cfg.Provider)
		return err
	}

	fmt.Printf("✓ Configuration file is valid\n")
	fmt.Printf("  Provider: %s\n", cfg.Provider)

	// Perform thorough credential validation if requested
	if validateCreds {
		if cv, ok := p.(provider.CredentialValidator); ok {
			slog.Info("Performing credential validation", "provider", cfg.Provider)
			if err := cv.ValidateCredentials(ctx, cfg); err != nil {
				span.RecordError(err)
				slog.Error("Credential validation failed", "error", err, "provider", cfg.Provider)
				return err
			}
			fmt.Printf("✓ Credentials are valid for the configured subscription\n")
		} else {
			fmt.Printf("Note: The %s provider does not support --validate-creds\n", cfg.Provider)
		}
	}

	return nil
}
