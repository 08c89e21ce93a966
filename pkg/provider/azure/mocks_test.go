package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerservice/armcontainerservice/v8"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
)

// MockResourceGroupsClient is a mock implementation of ResourceGroupsAPI for testing
type MockResourceGroupsClient struct {
	GetFunc func(ctx context.Context, resourceGroupName string, options *armresources.ResourceGroupsClientGetOptions) (armresources.ResourceGroupsClientGetResponse, error)
}

func (m *MockResourceGroupsClient) Get(ctx context.Context, resourceGroupName string, options *armresources.ResourceGroupsClientGetOptions) (armresources.ResourceGroupsClientGetResponse, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, resourceGroupName, options)
	}
	return armresources.ResourceGroupsClientGetResponse{}, fmt.Errorf("GetFunc not implemented")
}

// MockVirtualNetworksClient is a mock implementation of VirtualNetworksAPI for testing
type MockVirtualNetworksClient struct {
	GetFunc func(ctx context.Context, resourceGroupName string, virtualNetworkName string, options *armnetwork.VirtualNetworksClientGetOptions) (armnetwork.VirtualNetworksClientGetResponse, error)
}

func (m *MockVirtualNetworksClient) Get(ctx context.Context, resourceGroupName string, virtualNetworkName string, options *armnetwork.VirtualNetworksClientGetOptions) (armnetwork.VirtualNetworksClientGetResponse, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, resourceGroupName, virtualNetworkName, options)
	}
	return armnetwork.VirtualNetworksClientGetResponse{}, fmt.Errorf("GetFunc not implemented")
}

// MockSubnetsClient is a mock implementation of SubnetsAPI for testing
type MockSubnetsClient struct {
	GetFunc func(ctx context.Context, resourceGroupName string, virtualNetworkName string, subnetName string, options *armnetwork.SubnetsClientGetOptions) (armnetwork.SubnetsClientGetResponse, error)
}

func (m *MockSubnetsClient) Get(ctx context.Context, resourceGroupName string, virtualNetworkName string, subnetName string, options *armnetwork.SubnetsClientGetOptions) (armnetwork.SubnetsClientGetResponse, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, resourceGroupName, virtualNetworkName, subnetName, options)
	}
	return armnetwork.SubnetsClientGetResponse{}, fmt.Errorf("GetFunc not implemented")
}

// MockSubscriptionsClient is a mock implementation of SubscriptionsAPI for testing
type MockSubscriptionsClient struct {
	GetFunc func(ctx context.Context, subscriptionID string, options *armsubscriptions.ClientGetOptions) (armsubscriptions.ClientGetResponse, error)
}

func (m *MockSubscriptionsClient) Get(ctx context.Context, subscriptionID string, options *armsubscriptions.ClientGetOptions) (armsubscriptions.ClientGetResponse, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, subscriptionID, options)
	}
	return armsubscriptions.ClientGetResponse{}, fmt.Errorf("GetFunc not implemented")
}

// MockManagedClustersClient is a mock implementation of ManagedClustersAPI for testing
type MockManagedClustersClient struct {
	ListClusterUserCredentialsFunc func(ctx context.Context, resourceGroupName string, resourceName string, options *armcontainerservice.ManagedClustersClientListClusterUserCredentialsOptions) (armcontainerservice.ManagedClustersClientListClusterUserCredentialsResponse, error)
}

func (m *MockManagedClustersClient) ListClusterUserCredentials(ctx context.Context, resourceGroupName string, resourceName string, options *armcontainerservice.ManagedClustersClientListClusterUserCredentialsOptions) (armcontainerservice.ManagedClustersClientListClusterUserCredentialsResponse, error) {
	if m.ListClusterUserCredentialsFunc != nil {
		return m.ListClusterUserCredentialsFunc(ctx, resourceGroupName, resourceName, options)
	}
	return armcontainerservice.ManagedClustersClientListClusterUserCredentialsResponse{}, fmt.Errorf("ListClusterUserCredentialsFunc not implemented")
}
