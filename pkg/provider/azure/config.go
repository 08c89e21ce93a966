package azure

// Config holds the Azure provider configuration parsed from the `azure` block
// of aks-config.yaml. Boolean toggles and the instance number use pointers so
// an explicit zero value can be told apart from an omitted field when applying
// defaults.
type Config struct {
	Workload    string `yaml:"workload"`
	Environment string `yaml:"environment"`
	Location    string `yaml:"location,omitempty"`
	Instance    *int   `yaml:"instance,omitempty"`

	CreateResourceGroup       *bool  `yaml:"create_resource_group,omitempty"`
	ResourceGroupName         string `yaml:"resource_group_name,omitempty"`
	ExistingResourceGroupName string `yaml:"existing_resource_group_name,omitempty"`
	NodeResourceGroupName     string `yaml:"node_resource_group_name,omitempty"`

	CreateVNet                *bool  `yaml:"create_vnet,omitempty"`
	VNetAddressSpace          string `yaml:"vnet_address_space,omitempty"`
	SubnetAddressPrefix       string `yaml:"subnet_address_prefix,omitempty"`
	ExistingVNetName          string `yaml:"existing_vnet_name,omitempty"`
	ExistingVNetResourceGroup string `yaml:"existing_vnet_resource_group,omitempty"`
	ExistingSubnetName        string `yaml:"existing_subnet_name,omitempty"`
	CreateNSG                 *bool  `yaml:"create_nsg,omitempty"`

	KubernetesVersion string `yaml:"kubernetes_version,omitempty"`
	NodePoolPreset    string `yaml:"node_pool_preset,omitempty"`
	CustomSystemVMSKU string `yaml:"custom_system_vm_sku,omitempty"`
	CustomUserVMSKU   string `yaml:"custom_user_vm_sku,omitempty"`

	APIServerAuthorizedIPRanges []string `yaml:"api_server_authorized_ip_ranges,omitempty"`

	NetworkPlugin     string `yaml:"network_plugin,omitempty"`
	NetworkPluginMode string `yaml:"network_plugin_mode,omitempty"`
	NetworkPolicy     string `yaml:"network_policy,omitempty"`
	PodCIDR           string `yaml:"pod_cidr,omitempty"`
	ServiceCIDR       string `yaml:"service_cidr,omitempty"`
	DNSServiceIP      string `yaml:"dns_service_ip,omitempty"`
	OutboundType      string `yaml:"outbound_type,omitempty"`

	EnableAutoScaling    *bool          `yaml:"enable_auto_scaling,omitempty"`
	SystemNodePool       NodePoolConfig `yaml:"system_node_pool,omitempty"`
	UserNodePool         NodePoolConfig `yaml:"user_node_pool,omitempty"`
	UserNodePoolPriority string         `yaml:"user_node_pool_priority,omitempty"`
	EvictionPolicy       string         `yaml:"eviction_policy,omitempty"`
	SpotMaxPrice         float64        `yaml:"spot_max_price,omitempty"`

	AzureRBACEnabled     *bool    `yaml:"azure_rbac_enabled,omitempty"`
	AdminGroupObjectIDs  []string `yaml:"admin_group_object_ids,omitempty"`
	LocalAccountDisabled *bool    `yaml:"local_account_disabled,omitempty"`

	AutoScalerProfile *AutoScalerProfile `yaml:"auto_scaler_profile,omitempty"`

	Tags map[string]string `yaml:"tags,omitempty"`
}

// NodePoolConfig holds per-pool sizing shared by the system and user pools.
// The VM SKU comes from the preset, not from here.
type NodePoolConfig struct {
	Count        int    `yaml:"count,omitempty"`
	MinCount     int    `yaml:"min_count,omitempty"`
	MaxCount     int    `yaml:"max_count,omitempty"`
	OSDiskSizeGB int    `yaml:"os_disk_size_gb,omitempty"`
	OSDiskType   string `yaml:"os_disk_type,omitempty"`
}

// AutoScalerProfile tunes the cluster autoscaler. Fields map one-to-one onto
// the azurerm auto_scaler_profile block; empty fields fall back to Azure's
// own defaults.
type AutoScalerProfile struct {
	ScanInterval                  string `yaml:"scan_interval,omitempty"`
	ScaleDownDelayAfterAdd        string `yaml:"scale_down_delay_after_add,omitempty"`
	ScaleDownDelayAfterDelete     string `yaml:"scale_down_delay_after_delete,omitempty"`
	ScaleDownDelayAfterFailure    string `yaml:"scale_down_delay_after_failure,omitempty"`
	ScaleDownUnneeded             string `yaml:"scale_down_unneeded,omitempty"`
	ScaleDownUnready              string `yaml:"scale_down_unready,omitempty"`
	ScaleDownUtilizationThreshold string `yaml:"scale_down_utilization_threshold,omitempty"`
	MaxGracefulTerminationSec     int    `yaml:"max_graceful_termination_sec,omitempty"`
	SkipNodesWithLocalStorage     *bool  `yaml:"skip_nodes_with_local_storage,omitempty"`
}

// Default values applied when the corresponding field is omitted.
const (
	DefaultLocation          = "italynorth"
	DefaultInstance          = 1
	DefaultNodePoolPreset    = "low"
	DefaultVNetAddressSpace  = "10.1.0.0/16"
	DefaultSubnetPrefix      = "10.1.0.0/24"
	DefaultNetworkPlugin     = "azure"
	DefaultNetworkPluginMode = "overlay"
	DefaultPodCIDR           = "10.244.0.0/16"
	DefaultServiceCIDR       = "10.0.0.0/16"
	DefaultDNSServiceIP      = "10.0.0.10"
	DefaultOutboundType      = "loadBalancer"
	DefaultNodeCount         = 1
	DefaultMinCount          = 1
	DefaultMaxCount          = 3
	DefaultOSDiskSizeGB      = 128
	DefaultOSDiskType        = "Managed"
)

func boolValue(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func boolPtr(v bool) *bool { return &v }

func intPtr(v int) *int { return &v }

// ApplyDefaults fills omitted fields with their documented defaults. It never
// overrides a value the user set, including explicit false toggles.
func (c *Config) ApplyDefaults() {
	if c.Location == "" {
		c.Location = DefaultLocation
	}
	if c.Instance == nil {
		c.Instance = intPtr(DefaultInstance)
	}
	if c.CreateResourceGroup == nil {
		c.CreateResourceGroup = boolPtr(true)
	}
	if c.CreateVNet == nil {
		c.CreateVNet = boolPtr(true)
	}
	if c.CreateNSG == nil {
		c.CreateNSG = boolPtr(true)
	}
	// Address defaults apply only when the network is created; on the
	// reference branch these fields are rejected, so defaulting them there
	// would fail every reuse config.
	if boolValue(c.CreateVNet, true) {
		if c.VNetAddressSpace == "" {
			c.VNetAddressSpace = DefaultVNetAddressSpace
		}
		if c.SubnetAddressPrefix == "" {
			c.SubnetAddressPrefix = DefaultSubnetPrefix
		}
	}
	if c.NodePoolPreset == "" {
		c.NodePoolPreset = DefaultNodePoolPreset
	}
	if c.NetworkPlugin == "" {
		c.NetworkPlugin = DefaultNetworkPlugin
	}
	if c.NetworkPlugin == "azure" && c.NetworkPluginMode == "" {
		c.NetworkPluginMode = DefaultNetworkPluginMode
	}
	if c.ServiceCIDR == "" {
		c.ServiceCIDR = DefaultServiceCIDR
	}
	if c.DNSServiceIP == "" {
		c.DNSServiceIP = DefaultDNSServiceIP
	}
	if c.OutboundType == "" {
		c.OutboundType = DefaultOutboundType
	}
	if c.EnableAutoScaling == nil {
		c.EnableAutoScaling = boolPtr(true)
	}
	if c.UserNodePoolPriority == "" {
		c.UserNodePoolPriority = "Regular"
	}
	c.SystemNodePool.applyDefaults()
	c.UserNodePool.applyDefaults()
}

func (p *NodePoolConfig) applyDefaults() {
	if p.Count == 0 {
		p.Count = DefaultNodeCount
	}
	if p.MinCount == 0 {
		p.MinCount = DefaultMinCount
	}
	if p.MaxCount == 0 {
		p.MaxCount = DefaultMaxCount
	}
	if p.OSDiskSizeGB == 0 {
		p.OSDiskSizeGB = DefaultOSDiskSizeGB
	}
	if p.OSDiskType == "" {
		p.OSDiskType = DefaultOSDiskType
	}
}
