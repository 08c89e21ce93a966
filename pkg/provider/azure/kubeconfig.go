package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerservice/armcontainerservice/v8"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// ManagedClustersAPI defines the interface for AKS cluster operations used by this provider
// This minimal interface includes only the methods actually called by the provider
type ManagedClustersAPI interface {
	ListClusterUserCredentials(ctx context.Context, resourceGroupName string, resourceName string, options *armcontainerservice.ManagedClustersClientListClusterUserCredentialsOptions) (armcontainerservice.ManagedClustersClientListClusterUserCredentialsResponse, error)
}

// Compile-time verification that the Azure SDK client implements our interface
var _ ManagedClustersAPI = (*armcontainerservice.ManagedClustersClient)(nil)

// fetchKubeconfig retrieves the user (non-admin) kubeconfig for the cluster.
// Admin credentials are deliberately not exposed; access control stays with
// the cluster's Entra ID configuration.
func fetchKubeconfig(ctx context.Context, client ManagedClustersAPI, resourceGroup, clusterName string) ([]byte, error) {
	tracer := otel.Tracer("aks-infrastructure-core")
	ctx, span := tracer.Start(ctx, "azure.fetchKubeconfig")
	defer span.End()

	span.SetAttributes(
		attribute.String("azure.resource_group", resourceGroup),
		attribute.String("azure.cluster_name", clusterName),
	)

	resp, err := client.ListClusterUserCredentials(ctx, resourceGroup, clusterName, nil)
	if err != nil {
		span.RecordError(err)
		if isNotFound(err) {
			return nil, &ResourceNotFoundError{Kind: "AKS cluster", Name: clusterName, ResourceGroup: resourceGroup}
		}
		return nil, fmt.Errorf("failed to list cluster credentials: %w", err)
	}

	if len(resp.Kubeconfigs) == 0 || resp.Kubeconfigs[0].Value == nil {
		err := fmt.Errorf("cluster %q returned no kubeconfig: run 'deploy' first to create the cluster", clusterName)
		span.RecordError(err)
		return nil, err
	}
	return resp.Kubeconfigs[0].Value, nil
}

// credentialCommand composes the az CLI command users run to merge cluster
// credentials into their local kubeconfig.
func credentialCommand(resourceGroup, clusterName string) string {
	return fmt.Sprintf("az aks get-credentials --resource-group %s --name %s", resourceGroup, clusterName)
}
