package azure

import "embed"

//go:embed all:templates
var tofuTemplates embed.FS

// TFVars mirrors variables.tf in the embedded templates. It is derived from a
// Resolution, never from raw config, so every conditional (create-vs-reuse,
// NSG presence, pod CIDR, spot settings) is decided exactly once in Go.
type TFVars struct {
	Location          string            `json:"location"`
	Tags              map[string]string `json:"tags,omitempty"`
	KubernetesVersion *string           `json:"kubernetes_version,omitempty"`

	CreateResourceGroup bool   `json:"create_resource_group"`
	ResourceGroupName   string `json:"resource_group_name"`
	NodeResourceGroup   string `json:"node_resource_group"`

	CreateVirtualNetwork     bool    `json:"create_virtual_network"`
	VirtualNetworkName       string  `json:"virtual_network_name"`
	VirtualNetworkRG         string  `json:"virtual_network_resource_group"`
	SubnetName               string  `json:"subnet_name"`
	VNetAddressSpace         *string `json:"vnet_address_space,omitempty"`
	SubnetAddressPrefix      *string `json:"subnet_address_prefix,omitempty"`
	CreateNetworkSecurityGrp bool    `json:"create_network_security_group"`
	NetworkSecurityGroupName *string `json:"network_security_group_name,omitempty"`

	ClusterName                 string             `json:"cluster_name"`
	SystemNodePool              TFNodePool         `json:"system_node_pool"`
	UserNodePool                TFNodePool         `json:"user_node_pool"`
	NetworkPlugin               string             `json:"network_plugin"`
	NetworkPluginMode           *string            `json:"network_plugin_mode,omitempty"`
	NetworkPolicy               *string            `json:"network_policy,omitempty"`
	PodCIDR                     *string            `json:"pod_cidr,omitempty"`
	ServiceCIDR                 string             `json:"service_cidr"`
	DNSServiceIP                string             `json:"dns_service_ip"`
	OutboundType                string             `json:"outbound_type"`
	APIServerAuthorizedIPRanges []string           `json:"api_server_authorized_ip_ranges,omitempty"`
	AzureRBACEnabled            bool               `json:"azure_rbac_enabled"`
	AdminGroupObjectIDs         []string           `json:"admin_group_object_ids,omitempty"`
	LocalAccountDisabled        bool               `json:"local_account_disabled"`
	AutoScalerProfile           *TFAutoScalerBlock `json:"auto_scaler_profile,omitempty"`
}

// TFNodePool mirrors the node pool object type in variables.tf.
type TFNodePool struct {
	VMSize            string            `json:"vm_size"`
	Count             int               `json:"count"`
	MinCount          *int              `json:"min_count,omitempty"`
	MaxCount          *int              `json:"max_count,omitempty"`
	EnableAutoScaling bool              `json:"enable_auto_scaling"`
	OSDiskSizeGB      int               `json:"os_disk_size_gb"`
	OSDiskType        string            `json:"os_disk_type"`
	Priority          string            `json:"priority"`
	EvictionPolicy    *string           `json:"eviction_policy,omitempty"`
	SpotMaxPrice      *float64          `json:"spot_max_price,omitempty"`
	NodeLabels        map[string]string `json:"node_labels,omitempty"`
	NodeTaints        []string          `json:"node_taints,omitempty"`
}

// TFAutoScalerBlock mirrors the auto_scaler_profile object in variables.tf.
type TFAutoScalerBlock struct {
	ScanInterval                  *string `json:"scan_interval,omitempty"`
	ScaleDownDelayAfterAdd        *string `json:"scale_down_delay_after_add,omitempty"`
	ScaleDownDelayAfterDelete     *string `json:"scale_down_delay_after_delete,omitempty"`
	ScaleDownDelayAfterFailure    *string `json:"scale_down_delay_after_failure,omitempty"`
	ScaleDownUnneeded             *string `json:"scale_down_unneeded,omitempty"`
	ScaleDownUnready              *string `json:"scale_down_unready,omitempty"`
	ScaleDownUtilizationThreshold *string `json:"scale_down_utilization_threshold,omitempty"`
	MaxGracefulTerminationSec     *int    `json:"max_graceful_termination_sec,omitempty"`
	SkipNodesWithLocalStorage     *bool   `json:"skip_nodes_with_local_storage,omitempty"`
}

func toTFNodePool(pool NodePoolSpec) TFNodePool {
	tf := TFNodePool{
		VMSize:            pool.VMSize,
		Count:             pool.Count,
		EnableAutoScaling: pool.EnableAutoScaling,
		OSDiskSizeGB:      pool.OSDiskSizeGB,
		OSDiskType:        pool.OSDiskType,
		Priority:          pool.Priority,
		NodeLabels:        pool.NodeLabels,
		NodeTaints:        pool.NodeTaints,
	}
	if pool.EnableAutoScaling {
		tf.MinCount = &pool.MinCount
		tf.MaxCount = &pool.MaxCount
	}
	if pool.Priority == "Spot" {
		tf.EvictionPolicy = &pool.EvictionPolicy
		tf.SpotMaxPrice = &pool.SpotMaxPrice
	}
	return tf
}

func toTFAutoScalerBlock(p *AutoScalerProfile) *TFAutoScalerBlock {
	if p == nil {
		return nil
	}
	block := &TFAutoScalerBlock{
		SkipNodesWithLocalStorage: p.SkipNodesWithLocalStorage,
	}
	// Set pointer fields only when values are provided, so omitempty excludes
	// them from JSON and Terraform falls back to the Azure defaults.
	if p.ScanInterval != "" {
		block.ScanInterval = &p.ScanInterval
	}
	if p.ScaleDownDelayAfterAdd != "" {
		block.ScaleDownDelayAfterAdd = &p.ScaleDownDelayAfterAdd
	}
	if p.ScaleDownDelayAfterDelete != "" {
		block.ScaleDownDelayAfterDelete = &p.ScaleDownDelayAfterDelete
	}
	if p.ScaleDownDelayAfterFailure != "" {
		block.ScaleDownDelayAfterFailure = &p.ScaleDownDelayAfterFailure
	}
	if p.ScaleDownUnneeded != "" {
		block.ScaleDownUnneeded = &p.ScaleDownUnneeded
	}
	if p.ScaleDownUnready != "" {
		block.ScaleDownUnready = &p.ScaleDownUnready
	}
	if p.ScaleDownUtilizationThreshold != "" {
		block.ScaleDownUtilizationThreshold = &p.ScaleDownUtilizationThreshold
	}
	if p.MaxGracefulTerminationSec > 0 {
		block.MaxGracefulTerminationSec = &p.MaxGracefulTerminationSec
	}
	return block
}

func (r *Resolution) toTFVars() TFVars {
	vars := TFVars{
		Location: r.Identity.Location,
		Tags:     r.Cluster.Tags,

		CreateResourceGroup: r.ResourceGroup.Created,
		ResourceGroupName:   r.ResourceGroup.Name,
		NodeResourceGroup:   r.Cluster.NodeResourceGroup,

		CreateVirtualNetwork:     r.Network.Created,
		VirtualNetworkName:       r.Network.VNetName,
		VirtualNetworkRG:         r.Network.VNetResourceGroup,
		SubnetName:               r.Network.SubnetName,
		CreateNetworkSecurityGrp: r.Network.HasNSG(),

		ClusterName:                 r.Cluster.Name,
		SystemNodePool:              toTFNodePool(r.Cluster.SystemPool),
		UserNodePool:                toTFNodePool(r.Cluster.UserPool),
		NetworkPlugin:               r.Cluster.Network.Plugin,
		ServiceCIDR:                 r.Cluster.Network.ServiceCIDR,
		DNSServiceIP:                r.Cluster.Network.DNSServiceIP,
		OutboundType:                r.Cluster.Network.OutboundType,
		APIServerAuthorizedIPRanges: r.Cluster.APIServerAuthorizedIPRanges,
		AzureRBACEnabled:            r.Cluster.Authorization.AzureRBACEnabled,
		AdminGroupObjectIDs:         r.Cluster.Authorization.AdminGroupObjectIDs,
		LocalAccountDisabled:        r.Cluster.Authorization.LocalAccountDisabled,
		AutoScalerProfile:           toTFAutoScalerBlock(r.Cluster.AutoScalerProfile),
	}

	if r.Cluster.KubernetesVersion != "" {
		vars.KubernetesVersion = &r.Cluster.KubernetesVersion
	}
	if r.Network.Created {
		vars.VNetAddressSpace = &r.Network.VNetAddressSpace
		vars.SubnetAddressPrefix = &r.Network.SubnetAddressPrefix
	}
	if r.Network.HasNSG() {
		vars.NetworkSecurityGroupName = &r.Network.NSGName
	}
	if r.Cluster.Network.PluginMode != "" {
		vars.NetworkPluginMode = &r.Cluster.Network.PluginMode
	}
	if r.Cluster.Network.Policy != "" {
		vars.NetworkPolicy = &r.Cluster.Network.Policy
	}
	if r.Cluster.Network.PodCIDR != "" {
		vars.PodCIDR = &r.Cluster.Network.PodCIDR
	}

	return vars
}
