package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nebari-dev/aks-infrastructure-core/pkg/provider"
	"github.com/nebari-dev/aks-infrastructure-core/pkg/provider/azure"
	"github.com/nebari-dev/aks-infrastructure-core/pkg/telemetry"
)

var (
	// Global provider registry
	registry *provider.Registry

	// Root command
	rootCmd = &cobra.Command{
		Use:   "aic",
		Short: "AKS Infrastructure Core - Declarative AKS cluster management",
		Long: `AKS Infrastructure Core (AIC) is a standalone CLI tool that manages
Azure Kubernetes Service infrastructure from a declarative aks-config.yaml,
resolving resource names and create-vs-reuse decisions before provisioning.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup structured logging
			logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}))
			slog.SetDefault(logger)
		},
	}
)

func init() {
	// Load .env file if it exists (silently ignore if not found)
	// This allows users to optionally use .env for local development
	_ = godotenv.Load()

	// Initialize provider registry
	registry = provider.NewRegistry()

	// Register all providers explicitly (no blank imports or init() magic)
	if err := registry.Register(azure.NewProvider()); err != nil {
		log.Fatalf("Failed to register Azure provider: %v", err)
	}

	// Add subcommands
	rootCmd.AddCommand(deployCmd)
	rootCmd.AddCommand(destroyCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(kubeconfigCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	ctx := context.Background()

	// Setup OpenTelemetry
	_, shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		slog.Error("Failed to setup telemetry", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			slog.Error("Failed to shutdown telemetry", "error", err)
		}
	}()

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command execution failed", "error", err)
		os.Exit(1)
	}
}
