package azure

import "strconv"

// Resolution is the complete desired state derived from a Config. It is a
// pure function of the config: resolving the same config twice yields
// identical resolutions, which keeps the generated tfvars stable across runs.
type Resolution struct {
	Identity      DeploymentIdentity
	ResourceGroup ResourceGroupRef
	Network       NetworkRef
	Cluster       ClusterSpec

	// LocationKnown is false when the region short code was derived by
	// truncation instead of the lookup table. Callers surface a warning since
	// truncated codes can collide across regions.
	LocationKnown bool
}

func validateIdentityInputs(cfg *Config) error {
	if cfg.Workload == "" {
		return &ConfigurationError{Field: "workload", Reason: "required"}
	}
	if cfg.Environment == "" {
		return &ConfigurationError{Field: "environment", Reason: "required"}
	}
	if cfg.Location == "" {
		return &ConfigurationError{Field: "location", Reason: "required"}
	}
	if *cfg.Instance < 1 || *cfg.Instance > 99 {
		return &ValidationError{
			Field:   "instance",
			Value:   strconv.Itoa(*cfg.Instance),
			Allowed: []string{"an integer between 1 and 99"},
		}
	}
	return nil
}

// Resolve runs the full resolution pipeline: identity, resource group,
// network, cluster. Resolution is fail-fast; the first error aborts and no
// later resolver sees partial inputs. No I/O happens here, so a config can be
// fully vetted before anything touches Azure.
func Resolve(cfg *Config) (*Resolution, error) {
	cfg.ApplyDefaults()

	if err := validateIdentityInputs(cfg); err != nil {
		return nil, err
	}
	identity, known := newDeploymentIdentity(cfg.Workload, cfg.Environment, cfg.Location, *cfg.Instance)

	rg, err := resolveResourceGroup(cfg, identity)
	if err != nil {
		return nil, err
	}

	network, err := resolveNetwork(cfg, identity, rg)
	if err != nil {
		return nil, err
	}

	cluster, err := resolveCluster(cfg, identity)
	if err != nil {
		return nil, err
	}

	return &Resolution{
		Identity:      identity,
		ResourceGroup: rg,
		Network:       network,
		Cluster:       cluster,
		LocationKnown: known,
	}, nil
}
