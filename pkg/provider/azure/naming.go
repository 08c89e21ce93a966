package azure

import (
	"fmt"
	"strings"
)

// locationShortCodes maps Azure region names to the short codes embedded in
// resource names. Regions absent from this table fall back to the first three
// characters of the lowercased region name.
var locationShortCodes = map[string]string{
	"eastus":             "eus",
	"eastus2":            "eus2",
	"westus":             "wus",
	"westus2":            "wus2",
	"westus3":            "wus3",
	"centralus":          "cus",
	"northeurope":        "neu",
	"westeurope":         "weu",
	"uksouth":            "uks",
	"ukwest":             "ukw",
	"francecentral":      "frc",
	"germanywestcentral": "gwc",
	"switzerlandnorth":   "szn",
	"italynorth":         "itn",
	"norwayeast":         "nwe",
	"swedencentral":      "sdc",
	"southeastasia":      "sea",
}

// locationShort resolves a region name to its short code. The second return
// reports whether the region was found in the table; callers surface a warning
// on fallback since the derived code may collide with another region's.
func locationShort(location string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(location))
	if code, ok := locationShortCodes[normalized]; ok {
		return code, true
	}
	if len(normalized) > 3 {
		normalized = normalized[:3]
	}
	return normalized, false
}

// DeploymentIdentity holds the fields every resource name is derived from.
// Two deployments with distinct identities never produce colliding names.
type DeploymentIdentity struct {
	Workload      string
	Environment   string
	Location      string
	LocationShort string
	Instance      int
}

func newDeploymentIdentity(workload, environment, location string, instance int) (DeploymentIdentity, bool) {
	short, known := locationShort(location)
	return DeploymentIdentity{
		Workload:      workload,
		Environment:   environment,
		Location:      location,
		LocationShort: short,
		Instance:      instance,
	}, known
}

// suffix renders the shared "{workload}-{environment}-{short}-{instance}"
// tail used by every resource name template.
func (d DeploymentIdentity) suffix() string {
	return fmt.Sprintf("%s-%s-%s-%02d", d.Workload, d.Environment, d.LocationShort, d.Instance)
}

// ResourceGroupName returns the name for a created resource group.
func (d DeploymentIdentity) ResourceGroupName() string {
	return "rg-" + d.suffix()
}

// NodeResourceGroupName returns the name for the AKS-managed node resource
// group, which must differ from the cluster resource group.
func (d DeploymentIdentity) NodeResourceGroupName() string {
	return "rg-mc-" + d.suffix()
}

// VirtualNetworkName returns the name for a created virtual network.
func (d DeploymentIdentity) VirtualNetworkName() string {
	return "vnet-" + d.suffix()
}

// SubnetName returns the name for a created subnet.
func (d DeploymentIdentity) SubnetName() string {
	return "snet-" + d.suffix()
}

// NetworkSecurityGroupName returns the name for a created network security group.
func (d DeploymentIdentity) NetworkSecurityGroupName() string {
	return "nsg-" + d.suffix()
}

// ClusterName returns the AKS cluster name.
func (d DeploymentIdentity) ClusterName() string {
	return "aks-" + d.suffix()
}
