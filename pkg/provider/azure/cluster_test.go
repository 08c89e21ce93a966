package azure

import (
	"errors"
	"testing"
)

func clusterConfig(mutate func(*Config)) *Config {
	cfg := &Config{
		Workload:    "myapp",
		Environment: "prod",
		Location:    "italynorth",
	}
	if mutate != nil {
		mutate(cfg)
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestResolveVMSizesPresets(t *testing.T) {
	tests := []struct {
		preset     string
		wantSystem string
		wantUser   string
	}{
		{"low", "Standard_B2ms", "Standard_B2ms"},
		{"high", "Standard_D4s_v5", "Standard_D8s_v5"},
	}

	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			cfg := clusterConfig(func(c *Config) { c.NodePoolPreset = tt.preset })
			system, user, err := resolveVMSizes(cfg)
			if err != nil {
				t.Fatalf("resolveVMSizes() error = %v", err)
			}
			if system != tt.wantSystem {
				t.Errorf("system SKU = %q, want %q", system, tt.wantSystem)
			}
			if user != tt.wantUser {
				t.Errorf("user SKU = %q, want %q", user, tt.wantUser)
			}
		})
	}
}

func TestResolveVMSizesCustom(t *testing.T) {
	cfg := clusterConfig(func(c *Config) {
		c.NodePoolPreset = "custom"
		c.CustomSystemVMSKU = "Standard_D16s_v5"
		c.CustomUserVMSKU = "Standard_E8s_v5"
	})

	system, user, err := resolveVMSizes(cfg)
	if err != nil {
		t.Fatalf("resolveVMSizes() error = %v", err)
	}
	if system != "Standard_D16s_v5" || user != "Standard_E8s_v5" {
		t.Errorf("resolveVMSizes() = (%q, %q), want custom SKUs", system, user)
	}
}

func TestResolveVMSizesErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"custom preset missing both SKUs", func(c *Config) {
			c.NodePoolPreset = "custom"
		}},
		{"custom preset missing user SKU", func(c *Config) {
			c.NodePoolPreset = "custom"
			c.CustomSystemVMSKU = "Standard_D4s_v5"
		}},
		{"custom SKU with low preset", func(c *Config) {
			c.NodePoolPreset = "low"
			c.CustomUserVMSKU = "Standard_D4s_v5"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := clusterConfig(tt.mutate)
			_, _, err := resolveVMSizes(cfg)
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Errorf("resolveVMSizes() error = %v, want ConfigurationError", err)
			}
		})
	}
}

func TestResolveVMSizesUnknownPreset(t *testing.T) {
	cfg := clusterConfig(func(c *Config) { c.NodePoolPreset = "medium" })
	_, _, err := resolveVMSizes(cfg)
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("resolveVMSizes() error = %v, want ValidationError", err)
	}
	if valErr.Field != "node_pool_preset" || valErr.Value != "medium" {
		t.Errorf("ValidationError = %+v, want field node_pool_preset value medium", valErr)
	}
}

func TestResolveNetworkProfilePodCIDR(t *testing.T) {
	tests := []struct {
		name        string
		plugin      string
		pluginMode  string
		wantPodCIDR string
	}{
		{"kubenet", "kubenet", "", "10.244.0.0/16"},
		{"azure overlay", "azure", "overlay", "10.244.0.0/16"},
		{"plain azure cni", "azure", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := clusterConfig(func(c *Config) {
				c.NetworkPlugin = tt.plugin
			})
			// ApplyDefaults sets overlay mode for the azure plugin, so force
			// the case under test after defaulting.
			cfg.NetworkPluginMode = tt.pluginMode

			got, err := resolveNetworkProfile(cfg)
			if err != nil {
				t.Fatalf("resolveNetworkProfile() error = %v", err)
			}
			if got.PodCIDR != tt.wantPodCIDR {
				t.Errorf("PodCIDR = %q, want %q", got.PodCIDR, tt.wantPodCIDR)
			}
		})
	}
}

func TestResolveNetworkProfilePodCIDRRejected(t *testing.T) {
	cfg := clusterConfig(func(c *Config) {
		c.NetworkPlugin = "azure"
		c.PodCIDR = "10.244.0.0/16"
	})
	cfg.NetworkPluginMode = ""

	_, err := resolveNetworkProfile(cfg)
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("resolveNetworkProfile() error = %v, want ConfigurationError", err)
	}
	if cfgErr.Field != "pod_cidr" {
		t.Errorf("Field = %q, want %q", cfgErr.Field, "pod_cidr")
	}
}

func TestResolveNetworkProfilePluginModeRequiresAzure(t *testing.T) {
	cfg := clusterConfig(func(c *Config) {
		c.NetworkPlugin = "kubenet"
	})
	cfg.NetworkPluginMode = "overlay"

	_, err := resolveNetworkProfile(cfg)
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("resolveNetworkProfile() error = %v, want ConfigurationError", err)
	}
}

func TestResolveNetworkProfileEnums(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"bad plugin", func(c *Config) { c.NetworkPlugin = "cilium-native" }, "network_plugin"},
		{"bad policy", func(c *Config) { c.NetworkPolicy = "iptables" }, "network_policy"},
		{"bad outbound type", func(c *Config) { c.OutboundType = "natgw" }, "outbound_type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := clusterConfig(tt.mutate)
			_, err := resolveNetworkProfile(cfg)
			var valErr *ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("resolveNetworkProfile() error = %v, want ValidationError", err)
			}
			if valErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", valErr.Field, tt.field)
			}
		})
	}
}

func TestResolveClusterDefaults(t *testing.T) {
	cfg := clusterConfig(nil)

	got, err := resolveCluster(cfg, testIdentity(t))
	if err != nil {
		t.Fatalf("resolveCluster() error = %v", err)
	}
	if got.Name != "aks-myapp-prod-itn-01" {
		t.Errorf("Name = %q, want %q", got.Name, "aks-myapp-prod-itn-01")
	}
	if got.NodeResourceGroup != "rg-mc-myapp-prod-itn-01" {
		t.Errorf("NodeResourceGroup = %q, want %q", got.NodeResourceGroup, "rg-mc-myapp-prod-itn-01")
	}
	if got.SystemPool.VMSize != "Standard_B2ms" {
		t.Errorf("SystemPool.VMSize = %q, want %q", got.SystemPool.VMSize, "Standard_B2ms")
	}
	if got.SystemPool.Mode != "System" || got.UserPool.Mode != "User" {
		t.Errorf("pool modes = (%q, %q), want (System, User)", got.SystemPool.Mode, got.UserPool.Mode)
	}
	if !got.SystemPool.EnableAutoScaling {
		t.Error("SystemPool.EnableAutoScaling = false, want true")
	}
	if got.UserPool.Priority != "Regular" {
		t.Errorf("UserPool.Priority = %q, want %q", got.UserPool.Priority, "Regular")
	}
	if len(got.UserPool.NodeTaints) != 0 {
		t.Errorf("UserPool.NodeTaints = %v, want none", got.UserPool.NodeTaints)
	}
}

func TestResolveClusterNodeResourceGroupOverride(t *testing.T) {
	cfg := clusterConfig(func(c *Config) {
		c.NodeResourceGroupName = "rg-nodes-custom"
	})

	got, err := resolveCluster(cfg, testIdentity(t))
	if err != nil {
		t.Fatalf("resolveCluster() error = %v", err)
	}
	if got.NodeResourceGroup != "rg-nodes-custom" {
		t.Errorf("NodeResourceGroup = %q, want %q", got.NodeResourceGroup, "rg-nodes-custom")
	}
}

func TestResolveClusterSpot(t *testing.T) {
	cfg := clusterConfig(func(c *Config) {
		c.UserNodePoolPriority = "Spot"
	})

	got, err := resolveCluster(cfg, testIdentity(t))
	if err != nil {
		t.Fatalf("resolveCluster() error = %v", err)
	}

	pool := got.UserPool
	if pool.Priority != "Spot" {
		t.Fatalf("Priority = %q, want Spot", pool.Priority)
	}
	if pool.EvictionPolicy != "Delete" {
		t.Errorf("EvictionPolicy = %q, want Delete", pool.EvictionPolicy)
	}
	if pool.SpotMaxPrice != -1 {
		t.Errorf("SpotMaxPrice = %v, want -1", pool.SpotMaxPrice)
	}
	if len(pool.NodeTaints) != 1 || pool.NodeTaints[0] != spotTaint {
		t.Errorf("NodeTaints = %v, want [%s]", pool.NodeTaints, spotTaint)
	}
	if pool.NodeLabels[spotLabelKey] != spotLabelValue {
		t.Errorf("NodeLabels[%s] = %q, want %q", spotLabelKey, pool.NodeLabels[spotLabelKey], spotLabelValue)
	}

	// the system pool never runs on spot capacity
	if got.SystemPool.Priority != "Regular" {
		t.Errorf("SystemPool.Priority = %q, want Regular", got.SystemPool.Priority)
	}
}

func TestResolveClusterSpotOverrides(t *testing.T) {
	cfg := clusterConfig(func(c *Config) {
		c.UserNodePoolPriority = "Spot"
		c.EvictionPolicy = "Deallocate"
		c.SpotMaxPrice = 0.25
	})

	got, err := resolveCluster(cfg, testIdentity(t))
	if err != nil {
		t.Fatalf("resolveCluster() error = %v", err)
	}
	if got.UserPool.EvictionPolicy != "Deallocate" {
		t.Errorf("EvictionPolicy = %q, want Deallocate", got.UserPool.EvictionPolicy)
	}
	if got.UserPool.SpotMaxPrice != 0.25 {
		t.Errorf("SpotMaxPrice = %v, want 0.25", got.UserPool.SpotMaxPrice)
	}
}

func TestResolveClusterSpotFieldsRequireSpot(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"eviction policy with regular pool", func(c *Config) { c.EvictionPolicy = "Delete" }, "eviction_policy"},
		{"spot max price with regular pool", func(c *Config) { c.SpotMaxPrice = 0.5 }, "spot_max_price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := clusterConfig(tt.mutate)
			_, err := resolveCluster(cfg, testIdentity(t))
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("resolveCluster() error = %v, want ConfigurationError", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", cfgErr.Field, tt.field)
			}
		})
	}
}

func TestResolveClusterAutoscalingBounds(t *testing.T) {
	tests := []struct {
		name      string
		pool      NodePoolConfig
		wantField string
	}{
		{"count within range", NodePoolConfig{Count: 2, MinCount: 1, MaxCount: 3}, ""},
		{"count at bounds", NodePoolConfig{Count: 3, MinCount: 3, MaxCount: 3}, ""},
		{"count below min", NodePoolConfig{Count: 1, MinCount: 2, MaxCount: 5}, "user.count"},
		{"count above max", NodePoolConfig{Count: 6, MinCount: 1, MaxCount: 5}, "user.count"},
		{"min above max", NodePoolConfig{Count: 2, MinCount: 4, MaxCount: 2}, "user.min_count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := clusterConfig(func(c *Config) {
				c.UserNodePool = tt.pool
			})
			_, err := resolveCluster(cfg, testIdentity(t))
			if tt.wantField != "" {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Fatalf("resolveCluster() error = %v, want ValidationError", err)
				}
				if valErr.Field != tt.wantField {
					t.Errorf("Field = %q, want %q", valErr.Field, tt.wantField)
				}
			} else if err != nil {
				t.Errorf("resolveCluster() error = %v", err)
			}
		})
	}
}

func TestResolveClusterAutoscalingDisabledIgnoresBounds(t *testing.T) {
	cfg := clusterConfig(func(c *Config) {
		c.EnableAutoScaling = boolPtr(false)
		c.UserNodePool = NodePoolConfig{Count: 10, MinCount: 1, MaxCount: 3}
	})

	got, err := resolveCluster(cfg, testIdentity(t))
	if err != nil {
		t.Fatalf("resolveCluster() error = %v", err)
	}
	if got.UserPool.EnableAutoScaling {
		t.Error("EnableAutoScaling = true, want false")
	}
	if got.UserPool.MinCount != 0 || got.UserPool.MaxCount != 0 {
		t.Errorf("bounds = (%d, %d), want unset", got.UserPool.MinCount, got.UserPool.MaxCount)
	}
}

func TestResolveClusterAuthorizationPassThrough(t *testing.T) {
	cfg := clusterConfig(func(c *Config) {
		c.AzureRBACEnabled = boolPtr(true)
		c.AdminGroupObjectIDs = []string{"00000000-0000-0000-0000-000000000001"}
		c.LocalAccountDisabled = boolPtr(true)
	})

	got, err := resolveCluster(cfg, testIdentity(t))
	if err != nil {
		t.Fatalf("resolveCluster() error = %v", err)
	}
	auth := got.Authorization
	if !auth.AzureRBACEnabled {
		t.Error("AzureRBACEnabled = false, want true")
	}
	if len(auth.AdminGroupObjectIDs) != 1 || auth.AdminGroupObjectIDs[0] != "00000000-0000-0000-0000-000000000001" {
		t.Errorf("AdminGroupObjectIDs = %v, want pass-through", auth.AdminGroupObjectIDs)
	}
	if !auth.LocalAccountDisabled {
		t.Error("LocalAccountDisabled = false, want true")
	}
}
