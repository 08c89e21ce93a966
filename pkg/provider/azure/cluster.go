package azure

import (
	"fmt"
	"strconv"
)

// Spot node pools always carry the scheduling taint and label Azure applies to
// spot capacity, so workloads must opt in to eviction-prone nodes.
const (
	spotTaint      = "kubernetes.azure.com/scalesetpriority=spot:NoSchedule"
	spotLabelKey   = "kubernetes.azure.com/scalesetpriority"
	spotLabelValue = "spot"
)

// vmSKUPreset maps a node_pool_preset to the system and user pool VM sizes.
type vmSKUPreset struct {
	system string
	user   string
}

var vmSKUPresets = map[string]vmSKUPreset{
	"low":  {system: "Standard_B2ms", user: "Standard_B2ms"},
	"high": {system: "Standard_D4s_v5", user: "Standard_D8s_v5"},
}

var (
	allowedPresets          = []string{"low", "high", "custom"}
	allowedNetworkPlugins   = []string{"azure", "kubenet"}
	allowedPluginModes      = []string{"overlay"}
	allowedNetworkPolicies  = []string{"azure", "calico", "cilium"}
	allowedOutboundTypes    = []string{"loadBalancer", "userDefinedRouting", "managedNATGateway", "userAssignedNATGateway"}
	allowedOSDiskTypes      = []string{"Managed", "Ephemeral"}
	allowedPoolPriorities   = []string{"Regular", "Spot"}
	allowedEvictionPolicies = []string{"Delete", "Deallocate"}
)

// NodePoolSpec is the fully resolved shape of one node pool.
type NodePoolSpec struct {
	Name              string
	Mode              string
	VMSize            string
	Count             int
	MinCount          int
	MaxCount          int
	EnableAutoScaling bool
	OSDiskSizeGB      int
	OSDiskType        string
	Priority          string
	EvictionPolicy    string
	SpotMaxPrice      float64
	NodeLabels        map[string]string
	NodeTaints        []string
}

// NetworkProfile is the resolved AKS network profile. PodCIDR is populated
// only for plugin modes that route pods on an overlay network; with plain
// Azure CNI pods take VNet addresses and a pod CIDR would be rejected.
type NetworkProfile struct {
	Plugin       string
	PluginMode   string
	Policy       string
	PodCIDR      string
	ServiceCIDR  string
	DNSServiceIP string
	OutboundType string
}

// AuthorizationProfile carries Entra ID integration settings through to the
// cluster unmodified.
type AuthorizationProfile struct {
	AzureRBACEnabled     bool
	AdminGroupObjectIDs  []string
	LocalAccountDisabled bool
}

// ClusterSpec is the fully resolved desired state of the AKS cluster.
type ClusterSpec struct {
	Name                        string
	KubernetesVersion           string
	NodeResourceGroup           string
	SystemPool                  NodePoolSpec
	UserPool                    NodePoolSpec
	Network                     NetworkProfile
	Authorization               AuthorizationProfile
	APIServerAuthorizedIPRanges []string
	AutoScalerProfile           *AutoScalerProfile
	Tags                        map[string]string
}

func validateEnum(field, value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return &ValidationError{Field: field, Value: value, Allowed: allowed}
}

// resolveVMSizes maps the preset to the (system, user) VM SKU pair. The
// custom preset requires both SKUs to be stated explicitly so a typo in the
// preset name never silently lands a deployment on fallback hardware.
func resolveVMSizes(cfg *Config) (system, user string, err error) {
	if err := validateEnum("node_pool_preset", cfg.NodePoolPreset, allowedPresets); err != nil {
		return "", "", err
	}
	if cfg.NodePoolPreset == "custom" {
		if cfg.CustomSystemVMSKU == "" || cfg.CustomUserVMSKU == "" {
			return "", "", &ConfigurationError{
				Field:  "node_pool_preset",
				Reason: "custom preset requires both custom_system_vm_sku and custom_user_vm_sku",
			}
		}
		return cfg.CustomSystemVMSKU, cfg.CustomUserVMSKU, nil
	}
	if cfg.CustomSystemVMSKU != "" || cfg.CustomUserVMSKU != "" {
		return "", "", &ConfigurationError{
			Field:  "custom_system_vm_sku",
			Reason: fmt.Sprintf("custom VM SKUs must not be set with preset %q; use node_pool_preset: custom", cfg.NodePoolPreset),
		}
	}
	preset := vmSKUPresets[cfg.NodePoolPreset]
	return preset.system, preset.user, nil
}

func resolveNetworkProfile(cfg *Config) (NetworkProfile, error) {
	if err := validateEnum("network_plugin", cfg.NetworkPlugin, allowedNetworkPlugins); err != nil {
		return NetworkProfile{}, err
	}
	if cfg.NetworkPluginMode != "" {
		if cfg.NetworkPlugin != "azure" {
			return NetworkProfile{}, &ConfigurationError{
				Field:  "network_plugin_mode",
				Reason: "only valid with network_plugin: azure",
			}
		}
		if err := validateEnum("network_plugin_mode", cfg.NetworkPluginMode, allowedPluginModes); err != nil {
			return NetworkProfile{}, err
		}
	}
	if cfg.NetworkPolicy != "" {
		if err := validateEnum("network_policy", cfg.NetworkPolicy, allowedNetworkPolicies); err != nil {
			return NetworkProfile{}, err
		}
	}
	if err := validateEnum("outbound_type", cfg.OutboundType, allowedOutboundTypes); err != nil {
		return NetworkProfile{}, err
	}

	profile := NetworkProfile{
		Plugin:       cfg.NetworkPlugin,
		PluginMode:   cfg.NetworkPluginMode,
		Policy:       cfg.NetworkPolicy,
		ServiceCIDR:  cfg.ServiceCIDR,
		DNSServiceIP: cfg.DNSServiceIP,
		OutboundType: cfg.OutboundType,
	}

	overlayRouting := cfg.NetworkPlugin == "kubenet" ||
		(cfg.NetworkPlugin == "azure" && cfg.NetworkPluginMode == "overlay")
	if overlayRouting {
		profile.PodCIDR = cfg.PodCIDR
		if profile.PodCIDR == "" {
			profile.PodCIDR = DefaultPodCIDR
		}
	} else if cfg.PodCIDR != "" {
		return NetworkProfile{}, &ConfigurationError{
			Field:  "pod_cidr",
			Reason: "only valid with network_plugin: kubenet or network_plugin_mode: overlay",
		}
	}
	return profile, nil
}

func resolvePool(name, mode, vmSize string, pool NodePoolConfig, autoScaling bool) (NodePoolSpec, error) {
	if err := validateEnum("os_disk_type", pool.OSDiskType, allowedOSDiskTypes); err != nil {
		return NodePoolSpec{}, err
	}
	if autoScaling {
		if pool.MinCount > pool.MaxCount {
			return NodePoolSpec{}, &ValidationError{
				Field:   name + ".min_count",
				Value:   strconv.Itoa(pool.MinCount),
				Allowed: []string{fmt.Sprintf("at most max_count (%d)", pool.MaxCount)},
			}
		}
		if pool.Count < pool.MinCount || pool.Count > pool.MaxCount {
			return NodePoolSpec{}, &ValidationError{
				Field:   name + ".count",
				Value:   strconv.Itoa(pool.Count),
				Allowed: []string{fmt.Sprintf("between min_count (%d) and max_count (%d)", pool.MinCount, pool.MaxCount)},
			}
		}
	}
	spec := NodePoolSpec{
		Name:              name,
		Mode:              mode,
		VMSize:            vmSize,
		Count:             pool.Count,
		EnableAutoScaling: autoScaling,
		OSDiskSizeGB:      pool.OSDiskSizeGB,
		OSDiskType:        pool.OSDiskType,
		Priority:          "Regular",
	}
	if autoScaling {
		spec.MinCount = pool.MinCount
		spec.MaxCount = pool.MaxCount
	}
	return spec, nil
}

// applySpotPriority rewrites the user pool for Azure Spot capacity: eviction
// policy, price cap, and the taint/label pair that keeps regular workloads off
// evictable nodes.
func applySpotPriority(cfg *Config, pool *NodePoolSpec) error {
	if err := validateEnum("user_node_pool_priority", cfg.UserNodePoolPriority, allowedPoolPriorities); err != nil {
		return err
	}
	if cfg.UserNodePoolPriority != "Spot" {
		if cfg.EvictionPolicy != "" {
			return &ConfigurationError{
				Field:  "eviction_policy",
				Reason: "only valid when user_node_pool_priority is Spot",
			}
		}
		if cfg.SpotMaxPrice != 0 {
			return &ConfigurationError{
				Field:  "spot_max_price",
				Reason: "only valid when user_node_pool_priority is Spot",
			}
		}
		return nil
	}

	policy := cfg.EvictionPolicy
	if policy == "" {
		policy = "Delete"
	}
	if err := validateEnum("eviction_policy", policy, allowedEvictionPolicies); err != nil {
		return err
	}
	price := cfg.SpotMaxPrice
	if price == 0 {
		// -1 caps the spot price at the on-demand rate.
		price = -1
	}

	pool.Priority = "Spot"
	pool.EvictionPolicy = policy
	pool.SpotMaxPrice = price
	pool.NodeTaints = append(pool.NodeTaints, spotTaint)
	if pool.NodeLabels == nil {
		pool.NodeLabels = make(map[string]string)
	}
	pool.NodeLabels[spotLabelKey] = spotLabelValue
	return nil
}

// resolveCluster builds the full cluster desired state. All validation is
// fail-fast: the first error stops resolution and nothing downstream runs on
// partial inputs.
func resolveCluster(cfg *Config, identity DeploymentIdentity) (ClusterSpec, error) {
	systemSKU, userSKU, err := resolveVMSizes(cfg)
	if err != nil {
		return ClusterSpec{}, err
	}

	network, err := resolveNetworkProfile(cfg)
	if err != nil {
		return ClusterSpec{}, err
	}

	autoScaling := boolValue(cfg.EnableAutoScaling, true)
	systemPool, err := resolvePool("system", "System", systemSKU, cfg.SystemNodePool, autoScaling)
	if err != nil {
		return ClusterSpec{}, err
	}
	userPool, err := resolvePool("user", "User", userSKU, cfg.UserNodePool, autoScaling)
	if err != nil {
		return ClusterSpec{}, err
	}
	if err := applySpotPriority(cfg, &userPool); err != nil {
		return ClusterSpec{}, err
	}

	nodeRG := cfg.NodeResourceGroupName
	if nodeRG == "" {
		nodeRG = identity.NodeResourceGroupName()
	}

	return ClusterSpec{
		Name:              identity.ClusterName(),
		KubernetesVersion: cfg.KubernetesVersion,
		NodeResourceGroup: nodeRG,
		SystemPool:        systemPool,
		UserPool:          userPool,
		Network:           network,
		Authorization: AuthorizationProfile{
			AzureRBACEnabled:     boolValue(cfg.AzureRBACEnabled, false),
			AdminGroupObjectIDs:  cfg.AdminGroupObjectIDs,
			LocalAccountDisabled: boolValue(cfg.LocalAccountDisabled, false),
		},
		APIServerAuthorizedIPRanges: cfg.APIServerAuthorizedIPRanges,
		AutoScalerProfile:           cfg.AutoScalerProfile,
		Tags:                        cfg.Tags,
	}, nil
}
