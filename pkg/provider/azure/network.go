package azure

// NetworkRef is the uniform result of network resolution. NSGName is non-empty
// only when the network is created and an NSG was requested; referenced
// networks never get an NSG attached since their security posture is owned by
// whoever owns the hub.
type NetworkRef struct {
	VNetName            string
	VNetResourceGroup   string
	SubnetName          string
	VNetAddressSpace    string
	SubnetAddressPrefix string
	NSGName             string
	Created             bool
}

// HasNSG reports whether a network security group is part of this deployment.
func (n NetworkRef) HasNSG() bool {
	return n.Created && n.NSGName != ""
}

// resolveNetwork picks between creating a VNet/subnet pair and referencing an
// existing one. The referenced VNet may live in a different resource group
// than the cluster (hub-spoke topologies); when no group is given it falls
// back to the cluster's.
func resolveNetwork(cfg *Config, identity DeploymentIdentity, rg ResourceGroupRef) (NetworkRef, error) {
	create := boolValue(cfg.CreateVNet, true)

	if create {
		references := []struct {
			field string
			value string
		}{
			{"existing_vnet_name", cfg.ExistingVNetName},
			{"existing_subnet_name", cfg.ExistingSubnetName},
			{"existing_vnet_resource_group", cfg.ExistingVNetResourceGroup},
		}
		for _, ref := range references {
			if ref.value != "" {
				return NetworkRef{}, &ConfigurationError{
					Field:  ref.field,
					Reason: "must not be set when create_vnet is true",
				}
			}
		}
		ref := NetworkRef{
			VNetName:            identity.VirtualNetworkName(),
			VNetResourceGroup:   rg.Name,
			SubnetName:          identity.SubnetName(),
			VNetAddressSpace:    cfg.VNetAddressSpace,
			SubnetAddressPrefix: cfg.SubnetAddressPrefix,
			Created:             true,
		}
		if boolValue(cfg.CreateNSG, true) {
			ref.NSGName = identity.NetworkSecurityGroupName()
		}
		return ref, nil
	}

	if cfg.ExistingVNetName == "" {
		return NetworkRef{}, &ConfigurationError{
			Field:  "existing_vnet_name",
			Reason: "required when create_vnet is false",
		}
	}
	if cfg.ExistingSubnetName == "" {
		return NetworkRef{}, &ConfigurationError{
			Field:  "existing_subnet_name",
			Reason: "required when create_vnet is false",
		}
	}
	if cfg.VNetAddressSpace != "" {
		return NetworkRef{}, &ConfigurationError{
			Field:  "vnet_address_space",
			Reason: "must not be set when create_vnet is false",
		}
	}
	if cfg.SubnetAddressPrefix != "" {
		return NetworkRef{}, &ConfigurationError{
			Field:  "subnet_address_prefix",
			Reason: "must not be set when create_vnet is false",
		}
	}
	vnetRG := cfg.ExistingVNetResourceGroup
	if vnetRG == "" {
		vnetRG = rg.Name
	}
	return NetworkRef{
		VNetName:          cfg.ExistingVNetName,
		VNetResourceGroup: vnetRG,
		SubnetName:        cfg.ExistingSubnetName,
		Created:           false,
	}, nil
}
