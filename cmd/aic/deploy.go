package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/nebari-dev/aks-infrastructure-core/pkg/config"
	"github.com/nebari-dev/aks-infrastructure-core/pkg/kubernetes"
	"github.com/nebari-dev/aks-infrastructure-core/pkg/provider"
	"github.com/nebari-dev/aks-infrastructure-core/pkg/status"
)

const defaultReadyTimeout = 15 * time.Minute

var (
	deployConfigFile string
	deployDryRun     bool
	deployTimeout    string
	deploySkipWait   bool

	deployCmd = &cobra.Command{
		Use:   "deploy",
		Short: "Deploy AKS infrastructure based on configuration file",
		Long: `Deploy the resource group, network, and AKS cluster described by the
provided aks-config.yaml file. Resources marked as existing are referenced,
never created or modified.

Use --dry-run to preview changes without applying them.`,
		RunE: runDeploy,
	}
)

func init() {
	deployCmd.Flags().StringVarP(&deployConfigFile, "file", "f", "", "Path to aks-config.yaml file (required)")
	deployCmd.Flags().BoolVar(&deployDryRun, "dry-run", false, "Show what would be deployed without making changes")
	deployCmd.Flags().StringVar(&deployTimeout, "timeout", "", "Override default readiness timeout (e.g., '45m', '1h')")
	deployCmd.Flags().BoolVar(&deploySkipWait, "skip-wait", false, "Skip waiting for the cluster to become ready")
	// Panic is appropriate in init() since we cannot return errors and this indicates a programming error
	if err := deployCmd.MarkFlagRequired("file"); err != nil {
		panic(err)
	}
}

func runDeploy(cmd *cobra.Command, args []string) error {
	// Get cancellable context from cobra (for signal handling)
	ctx := cmd.Context()
	tracer := otel.Tracer("aks-infrastructure-core")
	ctx, span := tracer.Start(ctx, "cmd.deploy")
	defer span.End()

	span.SetAttributes(
		attribute.String("config.file", deployConfigFile),
		attribute.Bool("dry_run", deployDryRun),
	)

	if deployDryRun {
		slog.Info("Starting deployment (dry-run)", "config_file", deployConfigFile)
	} else {
		slog.Info("Starting deployment", "config_file", deployConfigFile)
	}

	// Setup status handler for progress updates
	ctx, cleanupStatus := status.StartHandler(ctx, statusLogHandler())
	defer cleanupStatus()

	// Handle context cancellation (from signal interrupt)
	defer func() {
		if ctx.Err() == context.Canceled {
			slog.Warn("Deployment interrupted by user")
		}
	}()

	// Parse configuration
	cfg, err := config.ParseConfig(ctx, deployConfigFile)
	if err != nil {
		span.RecordError(err)
		slog.Error("Failed to parse configuration", "error", err, "file", deployConfigFile)
		return err
	}

	slog.Info("Configuration parsed successfully", "provider", cfg.Provider)

	// Set runtime options from CLI flags
	cfg.DryRun = deployDryRun
	cfg.SkipWait = deploySkipWait

	// Apply custom timeout if specified
	if deployTimeout != "" {
		duration, err := time.ParseDuration(deployTimeout)
		if err != nil {
			span.RecordError(err)
			slog.Error("Invalid timeout duration", "error", err, "timeout", deployTimeout)
			return fmt.Errorf("invalid timeout duration %q: %w", deployTimeout, err)
		}
		cfg.Timeout = duration
		span.SetAttributes(attribute.String("timeout", deployTimeout))
		slog.Info("Using custom timeout", "timeout", duration)
	}

	// Get the appropriate provider
	prov, err := registry.Get(cfg.Provider)
	if err != nil {
		span.RecordError(err)
		slog.Error("Failed to get provider", "error", err, "provider", cfg.Provider)
		return err
	}

	slog.Info("Provider selected", "provider", prov.Name())

	// Deploy infrastructure
	if err := prov.Deploy(ctx, cfg); err != nil {
		span.RecordError(err)
		slog.Error("Deployment failed", "error", err, "provider", prov.Name())
		return err
	}

	if deployDryRun {
		slog.Info("Dry run completed, no changes applied")
		return nil
	}

	if !cfg.SkipWait {
		if err := waitForReady(ctx, prov, cfg); err != nil {
			span.RecordError(err)
			slog.Error("Cluster readiness check failed", "error", err)
			return err
		}
	}

	slog.Info("Deployment completed successfully", "provider", prov.Name())

	return nil
}

func waitForReady(ctx context.Context, prov provider.Provider, cfg *config.AKSConfig) error {
	kubeconfigBytes, err := prov.GetKubeconfig(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to get kubeconfig: %w", err)
	}

	client, err := kubernetes.NewClientFromKubeconfig(ctx, kubeconfigBytes)
	if err != nil {
		return err
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultReadyTimeout
	}
	return kubernetes.WaitForClusterReady(ctx, client, timeout)
}
