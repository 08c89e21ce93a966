package azure

// ResourceGroupRef is the uniform result of resource-group resolution. The
// consuming cluster and network resolvers never need to know which branch
// produced it.
type ResourceGroupRef struct {
	Name     string
	Location string
	Created  bool
}

// resolveResourceGroup picks between creating a resource group and reusing an
// existing one. Exactly one branch may be selected: supplying an existing name
// together with create mode, or reuse mode without a name, is a
// ConfigurationError.
func resolveResourceGroup(cfg *Config, identity DeploymentIdentity) (ResourceGroupRef, error) {
	create := boolValue(cfg.CreateResourceGroup, true)

	if create {
		if cfg.ExistingResourceGroupName != "" {
			return ResourceGroupRef{}, &ConfigurationError{
				Field:  "existing_resource_group_name",
				Reason: "must not be set when create_resource_group is true",
			}
		}
		name := cfg.ResourceGroupName
		if name == "" {
			name = identity.ResourceGroupName()
		}
		return ResourceGroupRef{
			Name:     name,
			Location: cfg.Location,
			Created:  true,
		}, nil
	}

	if cfg.ExistingResourceGroupName == "" {
		return ResourceGroupRef{}, &ConfigurationError{
			Field:  "existing_resource_group_name",
			Reason: "required when create_resource_group is false",
		}
	}
	if cfg.ResourceGroupName != "" {
		return ResourceGroupRef{}, &ConfigurationError{
			Field:  "resource_group_name",
			Reason: "must not be set when create_resource_group is false; use existing_resource_group_name",
		}
	}
	return ResourceGroupRef{
		Name:     cfg.ExistingResourceGroupName,
		Location: cfg.Location,
		Created:  false,
	}, nil
}
