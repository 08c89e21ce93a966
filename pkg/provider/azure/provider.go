package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerservice/armcontainerservice/v8"
	"github.com/hashicorp/terraform-exec/tfexec"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	aksconfig "github.com/nebari-dev/aks-infrastructure-core/pkg/config"
	"github.com/nebari-dev/aks-infrastructure-core/pkg/status"
	"github.com/nebari-dev/aks-infrastructure-core/pkg/tofu"
)

// Provider implements the Azure provider
type Provider struct{}

// NewProvider creates a new Azure provider
func NewProvider() *Provider {
	return &Provider{}
}

// Name returns the provider name
func (p *Provider) Name() string {
	return "azure"
}

// ConfigKey returns the YAML key for the Azure configuration block
func (p *Provider) ConfigKey() string {
	return "azure"
}

// extractAzureConfig converts the any provider config to the Azure Config type
func extractAzureConfig(ctx context.Context, cfg *aksconfig.AKSConfig) (*Config, error) {
	tracer := otel.Tracer("aks-infrastructure-core")
	_, span := tracer.Start(ctx, "azure.extractAzureConfig")
	defer span.End()

	if cfg.Azure == nil {
		err := fmt.Errorf("azure configuration is required")
		span.RecordError(err)
		return nil, err
	}

	var azureCfg Config
	if err := aksconfig.UnmarshalProviderConfig(ctx, cfg.Azure, &azureCfg); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to unmarshal azure config: %w", err)
	}

	return &azureCfg, nil
}

// resolve extracts the Azure config and runs the resolution pipeline,
// reporting the truncated-location fallback when it applies.
func resolve(ctx context.Context, cfg *aksconfig.AKSConfig) (*Resolution, error) {
	azureCfg, err := extractAzureConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	res, err := Resolve(azureCfg)
	if err != nil {
		return nil, err
	}
	if !res.LocationKnown {
		status.Warningf(ctx, "location %q has no registered short code, using %q; verify resource names before relying on them",
			res.Identity.Location, res.Identity.LocationShort)
	}
	return res, nil
}

func backendConfigs(res *Resolution) []tfexec.InitOption {
	return []tfexec.InitOption{
		tfexec.BackendConfig(fmt.Sprintf("resource_group_name=%s", stateResourceGroupName(res.Identity))),
		tfexec.BackendConfig(fmt.Sprintf("storage_account_name=%s", stateStorageAccountName(res.Identity))),
		tfexec.BackendConfig(fmt.Sprintf("container_name=%s", stateContainerName)),
		tfexec.BackendConfig(fmt.Sprintf("key=%s", stateKey(res.Cluster.Name))),
	}
}

// Validate validates the Azure configuration with pre-flight checks
func (p *Provider) Validate(ctx context.Context, cfg *aksconfig.AKSConfig) error {
	tracer := otel.Tracer("aks-infrastructure-core")
	ctx, span := tracer.Start(ctx, "azure.Validate")
	defer span.End()

	span.SetAttributes(attribute.String("provider", "azure"))

	res, err := resolve(ctx, cfg)
	if err != nil {
		span.RecordError(err)
		return err
	}

	span.SetAttributes(
		attribute.String("azure.location", res.Identity.Location),
		attribute.String("azure.cluster_name", res.Cluster.Name),
	)

	// Referenced resources are looked up against ARM so a stale reference
	// fails validation, not an apply.
	if !res.ResourceGroup.Created || !res.Network.Created {
		creds, err := credentialsFromEnv()
		if err != nil {
			span.RecordError(err)
			return err
		}
		d, err := newDiscovery(creds)
		if err != nil {
			span.RecordError(err)
			return err
		}
		if err := d.verifyReferences(ctx, res); err != nil {
			span.RecordError(err)
			return err
		}
	}

	span.SetAttributes(attribute.Bool("validation_passed", true))
	return nil
}

// ValidateCredentials verifies the service principal can access the
// configured subscription.
func (p *Provider) ValidateCredentials(ctx context.Context, cfg *aksconfig.AKSConfig) error {
	tracer := otel.Tracer("aks-infrastructure-core")
	ctx, span := tracer.Start(ctx, "azure.ValidateCredentials")
	defer span.End()

	creds, err := credentialsFromEnv()
	if err != nil {
		span.RecordError(err)
		return err
	}
	if err := validateCredentials(ctx, creds); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// Deploy deploys Azure infrastructure by converging it to the resolved
// desired state
func (p *Provider) Deploy(ctx context.Context, cfg *aksconfig.AKSConfig) error {
	tracer := otel.Tracer("aks-infrastructure-core")
	ctx, span := tracer.Start(ctx, "azure.Deploy")
	defer span.End()

	span.SetAttributes(
		attribute.String("provider", "azure"),
		attribute.Bool("dry_run", cfg.DryRun),
	)

	res, err := resolve(ctx, cfg)
	if err != nil {
		span.RecordError(err)
		return err
	}

	span.SetAttributes(
		attribute.String("azure.location", res.Identity.Location),
		attribute.String("azure.cluster_name", res.Cluster.Name),
	)

	creds, err := credentialsFromEnv()
	if err != nil {
		span.RecordError(err)
		return err
	}

	status.Progressf(ctx, "Preparing state backend for %s", res.Cluster.Name)
	backend, err := newStateBackend(creds)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if err := backend.ensure(ctx, res.Identity); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to ensure state backend: %w", err)
	}

	tf, err := tofu.Setup(ctx, tofuTemplates, res.toTFVars())
	if err != nil {
		span.RecordError(err)
		return err
	}

	if err := tf.Init(ctx, backendConfigs(res)...); err != nil {
		span.RecordError(err)
		return err
	}

	if cfg.DryRun {
		status.Progressf(ctx, "Planning changes for %s (dry run)", res.Cluster.Name)
		if _, err := tf.Plan(ctx); err != nil {
			span.RecordError(err)
			return err
		}
		return nil
	}

	status.Progressf(ctx, "Applying changes for %s", res.Cluster.Name)
	if err := tf.Apply(tofu.CommandContext(ctx)); err != nil {
		span.RecordError(err)
		return err
	}

	status.Successf(ctx, "Cluster %s is ready. Get credentials with: %s",
		res.Cluster.Name, credentialCommand(res.ResourceGroup.Name, res.Cluster.Name))
	return nil
}

// Destroy tears down Azure infrastructure in reverse dependency order.
// Referenced (reused) resources are left untouched.
func (p *Provider) Destroy(ctx context.Context, cfg *aksconfig.AKSConfig) error {
	tracer := otel.Tracer("aks-infrastructure-core")
	ctx, span := tracer.Start(ctx, "azure.Destroy")
	defer span.End()

	res, err := resolve(ctx, cfg)
	if err != nil {
		span.RecordError(err)
		return err
	}

	span.SetAttributes(
		attribute.String("provider", "azure"),
		attribute.String("azure.cluster_name", res.Cluster.Name),
		attribute.String("azure.location", res.Identity.Location),
		attribute.Bool("dry_run", cfg.DryRun),
		attribute.Bool("force", cfg.Force),
	)

	creds, err := credentialsFromEnv()
	if err != nil {
		span.RecordError(err)
		return err
	}

	tf, err := tofu.Setup(ctx, tofuTemplates, res.toTFVars())
	if err != nil {
		span.RecordError(err)
		return err
	}

	if err := tf.Init(ctx, backendConfigs(res)...); err != nil {
		span.RecordError(err)
		return err
	}

	if cfg.DryRun {
		status.Progressf(ctx, "Planning destruction of %s (dry run)", res.Cluster.Name)
		if _, err := tf.Plan(ctx, tfexec.Destroy(true)); err != nil {
			span.RecordError(err)
			return err
		}
		return nil
	}

	status.Progressf(ctx, "Destroying %s", res.Cluster.Name)
	if err := tf.Destroy(tofu.CommandContext(ctx)); err != nil {
		span.RecordError(err)
		return err
	}

	status.Progressf(ctx, "Removing state backend for %s", res.Cluster.Name)
	backend, err := newStateBackend(creds)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if err := backend.destroy(ctx, res.Identity); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to destroy state backend: %w", err)
	}

	status.Successf(ctx, "Destroyed %s", res.Cluster.Name)
	return nil
}

// GetKubeconfig retrieves a user kubeconfig for the AKS cluster
func (p *Provider) GetKubeconfig(ctx context.Context, cfg *aksconfig.AKSConfig) ([]byte, error) {
	tracer := otel.Tracer("aks-infrastructure-core")
	ctx, span := tracer.Start(ctx, "azure.GetKubeconfig")
	defer span.End()

	res, err := resolve(ctx, cfg)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(
		attribute.String("provider", "azure"),
		attribute.String("azure.cluster_name", res.Cluster.Name),
	)

	creds, err := credentialsFromEnv()
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	cred, err := creds.tokenCredential()
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	client, err := armcontainerservice.NewManagedClustersClient(creds.SubscriptionID, cred, nil)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to create managed clusters client: %w", err)
	}

	return fetchKubeconfig(ctx, client, res.ResourceGroup.Name, res.Cluster.Name)
}

// Summary returns key-value pairs describing the resolved deployment for
// display before destructive operations.
func (p *Provider) Summary(cfg *aksconfig.AKSConfig) map[string]string {
	res, err := resolve(context.Background(), cfg)
	if err != nil {
		return map[string]string{"error": err.Error()}
	}

	createdOrReused := func(created bool) string {
		if created {
			return "created by this deployment"
		}
		return "existing (reused, never destroyed)"
	}

	summary := map[string]string{
		"Region":              res.Identity.Location,
		"Cluster":             res.Cluster.Name,
		"Resource Group":      fmt.Sprintf("%s (%s)", res.ResourceGroup.Name, createdOrReused(res.ResourceGroup.Created)),
		"Virtual Network":     fmt.Sprintf("%s (%s)", res.Network.VNetName, createdOrReused(res.Network.Created)),
		"Credentials Command": credentialCommand(res.ResourceGroup.Name, res.Cluster.Name),
	}
	if res.Network.HasNSG() {
		summary["Network Security Group"] = fmt.Sprintf("%s (created by this deployment)", res.Network.NSGName)
	} else {
		summary["Network Security Group"] = "none"
	}
	return summary
}
