package azure

import (
	"context"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/storage/armstorage"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// The provisioning state lives in a dedicated resource group so destroying
// the deployment's own resource group can never take the state with it.
const stateContainerName = "tfstate"

func stateResourceGroupName(identity DeploymentIdentity) string {
	return "rg-tfstate-" + identity.suffix()
}

// stateStorageAccountName derives a storage account name from the deployment
// identity. Account names are globally unique, 3-24 characters, lowercase
// letters and digits only, so the identity is sanitized and truncated.
func stateStorageAccountName(identity DeploymentIdentity) string {
	name := fmt.Sprintf("st%s%s%02d", sanitizeAccountPart(identity.Workload), sanitizeAccountPart(identity.Environment), identity.Instance)
	if len(name) > 24 {
		digits := name[len(name)-2:]
		name = name[:22] + digits
	}
	return name
}

func sanitizeAccountPart(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func stateKey(clusterName string) string {
	return clusterName + ".tfstate"
}

type stateBackend struct {
	resourceGroups *armresources.ResourceGroupsClient
	accounts       *armstorage.AccountsClient
	containers     *armstorage.BlobContainersClient
}

func newStateBackend(creds Credentials) (*stateBackend, error) {
	cred, err := creds.tokenCredential()
	if err != nil {
		return nil, err
	}
	rgClient, err := armresources.NewResourceGroupsClient(creds.SubscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource groups client: %w", err)
	}
	accountsClient, err := armstorage.NewAccountsClient(creds.SubscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage accounts client: %w", err)
	}
	containersClient, err := armstorage.NewBlobContainersClient(creds.SubscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob containers client: %w", err)
	}
	return &stateBackend{
		resourceGroups: rgClient,
		accounts:       accountsClient,
		containers:     containersClient,
	}, nil
}

// ensure creates the state resource group, storage account, and blob
// container if they do not exist. Every call is idempotent, so the backend
// can be ensured on each deploy.
func (s *stateBackend) ensure(ctx context.Context, identity DeploymentIdentity) error {
	tracer := otel.Tracer("aks-infrastructure-core")
	ctx, span := tracer.Start(ctx, "azure.stateBackend.ensure")
	defer span.End()

	rgName := stateResourceGroupName(identity)
	accountName := stateStorageAccountName(identity)

	span.SetAttributes(
		attribute.String("state.resource_group", rgName),
		attribute.String("state.storage_account", accountName),
	)

	_, err := s.resourceGroups.CreateOrUpdate(ctx, rgName, armresources.ResourceGroup{
		Location: to.Ptr(identity.Location),
	}, nil)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create state resource group %q: %w", rgName, err)
	}

	poller, err := s.accounts.BeginCreate(ctx, rgName, accountName, armstorage.AccountCreateParameters{
		Location: to.Ptr(identity.Location),
		Kind:     to.Ptr(armstorage.KindStorageV2),
		SKU: &armstorage.SKU{
			Name: to.Ptr(armstorage.SKUNameStandardLRS),
		},
		Properties: &armstorage.AccountPropertiesCreateParameters{
			AllowBlobPublicAccess: to.Ptr(false),
			MinimumTLSVersion:     to.Ptr(armstorage.MinimumTLSVersionTLS12),
		},
	}, nil)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create state storage account %q: %w", accountName, err)
	}
	if _, err := poller.PollUntilDone(ctx, nil); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed waiting for state storage account %q: %w", accountName, err)
	}

	_, err = s.containers.Create(ctx, rgName, accountName, stateContainerName, armstorage.BlobContainer{}, nil)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create state container %q: %w", stateContainerName, err)
	}

	return nil
}

// destroy deletes the state resource group and everything in it. Called only
// after the infrastructure itself has been destroyed.
func (s *stateBackend) destroy(ctx context.Context, identity DeploymentIdentity) error {
	tracer := otel.Tracer("aks-infrastructure-core")
	ctx, span := tracer.Start(ctx, "azure.stateBackend.destroy")
	defer span.End()

	rgName := stateResourceGroupName(identity)
	span.SetAttributes(attribute.String("state.resource_group", rgName))

	poller, err := s.resourceGroups.BeginDelete(ctx, rgName, nil)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		span.RecordError(err)
		return fmt.Errorf("failed to delete state resource group %q: %w", rgName, err)
	}
	if _, err := poller.PollUntilDone(ctx, nil); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed waiting for state resource group deletion: %w", err)
	}
	return nil
}
