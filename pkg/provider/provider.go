package provider

import (
	"context"

	"github.com/nebari-dev/aks-infrastructure-core/pkg/config"
)

// Provider defines the interface that all cloud providers must implement.
//
// This interface establishes the abstraction boundary between CLI commands and
// provider implementations. CLI commands depend only on this interface, never on
// concrete provider types, enabling new providers to be added without modifying
// CLI code.
type Provider interface {
	// Name returns the short provider identifier used in CLI output, logging,
	// and OpenTelemetry span attributes (e.g., "azure").
	Name() string

	// ConfigKey returns the YAML key used for this provider's configuration block.
	ConfigKey() string

	// Validate checks that the configuration is valid before any infrastructure
	// operations. This includes resolving the full desired state (fail-fast,
	// before any provisioning call) and verifying that referenced existing
	// resources can be found.
	Validate(ctx context.Context, cfg *config.AKSConfig) error

	// Deploy creates or updates infrastructure to match the desired configuration.
	// Backed by OpenTofu, this operation is idempotent - running Deploy multiple
	// times with the same config results in the same infrastructure state.
	// Use --dry-run to preview changes without applying them (runs tofu plan).
	Deploy(ctx context.Context, cfg *config.AKSConfig) error

	// Destroy tears down all infrastructure resources in the correct order,
	// respecting dependencies (e.g., node pools before cluster, cluster before
	// network). Backed by OpenTofu's destroy command. Referenced (reused)
	// resources are never deleted.
	Destroy(ctx context.Context, cfg *config.AKSConfig) error

	// GetKubeconfig returns a kubeconfig for authenticating with the Kubernetes
	// cluster. The returned bytes can be written to a file or used directly with
	// Kubernetes client libraries.
	GetKubeconfig(ctx context.Context, cfg *config.AKSConfig) ([]byte, error)

	// Summary returns key-value pairs describing provider-specific configuration
	// for display purposes: region, resolved resource names, which resources
	// would be created versus reused, and the credential-retrieval command.
	// Used in destructive operations to help users confirm they're targeting
	// the correct infrastructure.
	Summary(cfg *config.AKSConfig) map[string]string
}

// CredentialValidator is an optional interface for providers that support
// thorough credential validation beyond configuration checks.
type CredentialValidator interface {
	// ValidateCredentials verifies that the configured credentials are usable
	// against the cloud account (e.g., the subscription is visible).
	ValidateCredentials(ctx context.Context, cfg *config.AKSConfig) error
}
