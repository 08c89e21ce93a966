package azure

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerservice/armcontainerservice/v8"
)

func TestFetchKubeconfig(t *testing.T) {
	kubeconfig := []byte("apiVersion: v1\nkind: Config\n")
	client := &MockManagedClustersClient{
		ListClusterUserCredentialsFunc: func(ctx context.Context, rg, name string, _ *armcontainerservice.ManagedClustersClientListClusterUserCredentialsOptions) (armcontainerservice.ManagedClustersClientListClusterUserCredentialsResponse, error) {
			if rg != "rg-myapp-prod-itn-01" || name != "aks-myapp-prod-itn-01" {
				t.Errorf("ListClusterUserCredentials(%q, %q), want resolved names", rg, name)
			}
			return armcontainerservice.ManagedClustersClientListClusterUserCredentialsResponse{
				CredentialResults: armcontainerservice.CredentialResults{
					Kubeconfigs: []*armcontainerservice.CredentialResult{
						{Value: kubeconfig},
					},
				},
			}, nil
		},
	}

	got, err := fetchKubeconfig(context.Background(), client, "rg-myapp-prod-itn-01", "aks-myapp-prod-itn-01")
	if err != nil {
		t.Fatalf("fetchKubeconfig() error = %v", err)
	}
	if !bytes.Equal(got, kubeconfig) {
		t.Errorf("fetchKubeconfig() = %q, want %q", got, kubeconfig)
	}
}

func TestFetchKubeconfigClusterMissing(t *testing.T) {
	client := &MockManagedClustersClient{
		ListClusterUserCredentialsFunc: func(ctx context.Context, rg, name string, _ *armcontainerservice.ManagedClustersClientListClusterUserCredentialsOptions) (armcontainerservice.ManagedClustersClientListClusterUserCredentialsResponse, error) {
			return armcontainerservice.ManagedClustersClientListClusterUserCredentialsResponse{}, notFoundErr()
		},
	}

	_, err := fetchKubeconfig(context.Background(), client, "rg-gone", "aks-gone")
	var nfErr *ResourceNotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("fetchKubeconfig() error = %v, want ResourceNotFoundError", err)
	}
	if nfErr.Kind != "AKS cluster" {
		t.Errorf("Kind = %q, want AKS cluster", nfErr.Kind)
	}
}

func TestFetchKubeconfigEmptyResponse(t *testing.T) {
	client := &MockManagedClustersClient{
		ListClusterUserCredentialsFunc: func(ctx context.Context, rg, name string, _ *armcontainerservice.ManagedClustersClientListClusterUserCredentialsOptions) (armcontainerservice.ManagedClustersClientListClusterUserCredentialsResponse, error) {
			return armcontainerservice.ManagedClustersClientListClusterUserCredentialsResponse{}, nil
		},
	}

	if _, err := fetchKubeconfig(context.Background(), client, "rg", "aks"); err == nil {
		t.Error("fetchKubeconfig() expected error for empty credential list, got nil")
	}
}

func TestCredentialCommand(t *testing.T) {
	got := credentialCommand("rg-myapp-prod-itn-01", "aks-myapp-prod-itn-01")
	want := "az aks get-credentials --resource-group rg-myapp-prod-itn-01 --name aks-myapp-prod-itn-01"
	if got != want {
		t.Errorf("credentialCommand() = %q, want %q", got, want)
	}
}
