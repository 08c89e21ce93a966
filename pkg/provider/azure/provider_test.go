package azure

import (
	"context"
	"strings"
	"testing"

	aksconfig "github.com/nebari-dev/aks-infrastructure-core/pkg/config"
)

func TestProviderName(t *testing.T) {
	p := NewProvider()
	if got := p.Name(); got != "azure" {
		t.Errorf("Name() = %q, want %q", got, "azure")
	}
	if got := p.ConfigKey(); got != "azure" {
		t.Errorf("ConfigKey() = %q, want %q", got, "azure")
	}
}

func TestExtractAzureConfig(t *testing.T) {
	cfg := &aksconfig.AKSConfig{
		Provider: "azure",
		Azure: &aksconfig.AzureConfig{
			Workload:    "myapp",
			Environment: "prod",
			Location:    "westeurope",
			AdditionalFields: map[string]any{
				"node_pool_preset": "high",
				"instance":         3,
			},
		},
	}

	azureCfg, err := extractAzureConfig(context.Background(), cfg)
	if err != nil {
		t.Fatalf("extractAzureConfig() error = %v", err)
	}
	if azureCfg.Workload != "myapp" {
		t.Errorf("Workload = %q, want %q", azureCfg.Workload, "myapp")
	}
	if azureCfg.NodePoolPreset != "high" {
		t.Errorf("NodePoolPreset = %q, want %q (inline field)", azureCfg.NodePoolPreset, "high")
	}
	if azureCfg.Instance == nil || *azureCfg.Instance != 3 {
		t.Errorf("Instance = %v, want 3 (inline field)", azureCfg.Instance)
	}
}

func TestExtractAzureConfigMissing(t *testing.T) {
	cfg := &aksconfig.AKSConfig{Provider: "azure"}
	if _, err := extractAzureConfig(context.Background(), cfg); err == nil {
		t.Error("extractAzureConfig() expected error for missing azure block, got nil")
	}
}

func TestSummary(t *testing.T) {
	p := NewProvider()
	cfg := &aksconfig.AKSConfig{
		Provider: "azure",
		Azure: &aksconfig.AzureConfig{
			Workload:    "myapp",
			Environment: "prod",
			Location:    "italynorth",
		},
	}

	summary := p.Summary(cfg)

	if summary["Region"] != "italynorth" {
		t.Errorf("Region = %q, want italynorth", summary["Region"])
	}
	if summary["Cluster"] != "aks-myapp-prod-itn-01" {
		t.Errorf("Cluster = %q, want aks-myapp-prod-itn-01", summary["Cluster"])
	}
	if !strings.Contains(summary["Resource Group"], "created by this deployment") {
		t.Errorf("Resource Group = %q, want created marker", summary["Resource Group"])
	}
	if !strings.Contains(summary["Network Security Group"], "nsg-myapp-prod-itn-01") {
		t.Errorf("Network Security Group = %q, want resolved name", summary["Network Security Group"])
	}
	wantCmd := "az aks get-credentials --resource-group rg-myapp-prod-itn-01 --name aks-myapp-prod-itn-01"
	if summary["Credentials Command"] != wantCmd {
		t.Errorf("Credentials Command = %q, want %q", summary["Credentials Command"], wantCmd)
	}
}

func TestSummaryReferencedResources(t *testing.T) {
	p := NewProvider()
	cfg := &aksconfig.AKSConfig{
		Provider: "azure",
		Azure: &aksconfig.AzureConfig{
			Workload:    "myapp",
			Environment: "prod",
			Location:    "italynorth",
			AdditionalFields: map[string]any{
				"create_vnet":          false,
				"existing_vnet_name":   "vnet-hub",
				"existing_subnet_name": "snet-spoke",
			},
		},
	}

	summary := p.Summary(cfg)

	if !strings.Contains(summary["Virtual Network"], "never destroyed") {
		t.Errorf("Virtual Network = %q, want reuse marker", summary["Virtual Network"])
	}
	if summary["Network Security Group"] != "none" {
		t.Errorf("Network Security Group = %q, want none for referenced network", summary["Network Security Group"])
	}
}

func TestSummaryInvalidConfig(t *testing.T) {
	p := NewProvider()
	cfg := &aksconfig.AKSConfig{
		Provider: "azure",
		Azure:    &aksconfig.AzureConfig{Workload: "myapp"},
	}

	summary := p.Summary(cfg)
	if summary["error"] == "" {
		t.Error("Summary() for invalid config missing error entry")
	}
}
