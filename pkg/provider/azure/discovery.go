package azure

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// ResourceGroupsAPI defines the interface for resource group operations used by this provider
// This minimal interface includes only the methods actually called by the provider
type ResourceGroupsAPI interface {
	Get(ctx context.Context, resourceGroupName string, options *armresources.ResourceGroupsClientGetOptions) (armresources.ResourceGroupsClientGetResponse, error)
}

// VirtualNetworksAPI defines the interface for virtual network operations used by this provider
type VirtualNetworksAPI interface {
	Get(ctx context.Context, resourceGroupName string, virtualNetworkName string, options *armnetwork.VirtualNetworksClientGetOptions) (armnetwork.VirtualNetworksClientGetResponse, error)
}

// SubnetsAPI defines the interface for subnet operations used by this provider
type SubnetsAPI interface {
	Get(ctx context.Context, resourceGroupName string, virtualNetworkName string, subnetName string, options *armnetwork.SubnetsClientGetOptions) (armnetwork.SubnetsClientGetResponse, error)
}

// Compile-time verification that the Azure SDK clients implement our interfaces
var (
	_ ResourceGroupsAPI  = (*armresources.ResourceGroupsClient)(nil)
	_ VirtualNetworksAPI = (*armnetwork.VirtualNetworksClient)(nil)
	_ SubnetsAPI         = (*armnetwork.SubnetsClient)(nil)
)

type discovery struct {
	resourceGroups  ResourceGroupsAPI
	virtualNetworks VirtualNetworksAPI
	subnets         SubnetsAPI
}

func newDiscovery(creds Credentials) (*discovery, error) {
	cred, err := creds.tokenCredential()
	if err != nil {
		return nil, err
	}
	rgClient, err := armresources.NewResourceGroupsClient(creds.SubscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource groups client: %w", err)
	}
	vnetClient, err := armnetwork.NewVirtualNetworksClient(creds.SubscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create virtual networks client: %w", err)
	}
	subnetClient, err := armnetwork.NewSubnetsClient(creds.SubscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create subnets client: %w", err)
	}
	return &discovery{
		resourceGroups:  rgClient,
		virtualNetworks: vnetClient,
		subnets:         subnetClient,
	}, nil
}

func isNotFound(err error) bool {
	var respErr *azcore.ResponseError
	return errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound
}

// verifyReferences checks that every resource the resolution references (but
// does not create) actually exists in the subscription. A missing reference
// surfaces as ResourceNotFoundError here, at validate time, instead of as a
// provisioning failure halfway through an apply.
func (d *discovery) verifyReferences(ctx context.Context, res *Resolution) error {
	tracer := otel.Tracer("aks-infrastructure-core")
	ctx, span := tracer.Start(ctx, "azure.verifyReferences")
	defer span.End()

	span.SetAttributes(
		attribute.Bool("resource_group.created", res.ResourceGroup.Created),
		attribute.Bool("network.created", res.Network.Created),
	)

	if !res.ResourceGroup.Created {
		if _, err := d.resourceGroups.Get(ctx, res.ResourceGroup.Name, nil); err != nil {
			if isNotFound(err) {
				nfErr := &ResourceNotFoundError{Kind: "resource group", Name: res.ResourceGroup.Name}
				span.RecordError(nfErr)
				return nfErr
			}
			span.RecordError(err)
			return fmt.Errorf("failed to look up resource group %q: %w", res.ResourceGroup.Name, err)
		}
	}

	if !res.Network.Created {
		if _, err := d.virtualNetworks.Get(ctx, res.Network.VNetResourceGroup, res.Network.VNetName, nil); err != nil {
			if isNotFound(err) {
				nfErr := &ResourceNotFoundError{
					Kind:          "virtual network",
					Name:          res.Network.VNetName,
					ResourceGroup: res.Network.VNetResourceGroup,
				}
				span.RecordError(nfErr)
				return nfErr
			}
			span.RecordError(err)
			return fmt.Errorf("failed to look up virtual network %q: %w", res.Network.VNetName, err)
		}
		if _, err := d.subnets.Get(ctx, res.Network.VNetResourceGroup, res.Network.VNetName, res.Network.SubnetName, nil); err != nil {
			if isNotFound(err) {
				nfErr := &ResourceNotFoundError{
					Kind:          "subnet",
					Name:          res.Network.SubnetName,
					ResourceGroup: res.Network.VNetResourceGroup,
				}
				span.RecordError(nfErr)
				return nfErr
			}
			span.RecordError(err)
			return fmt.Errorf("failed to look up subnet %q: %w", res.Network.SubnetName, err)
		}
	}

	return nil
}
