package azure

import (
	"fmt"
	"strings"
)

// ConfigurationError indicates that the provided configuration is internally
// inconsistent or incomplete: mutually exclusive fields both set, a required
// field missing for the selected mode, or a value outside its permitted range.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid azure configuration: %s: %s", e.Field, e.Reason)
}

// ValidationError indicates that a field holds a value outside its allowed
// set or range.
type ValidationError struct {
	Field   string
	Value   string
	Allowed []string
}

func (e *ValidationError) Error() string {
	if len(e.Allowed) == 1 {
		return fmt.Sprintf("invalid azure configuration: %s: %q must be %s",
			e.Field, e.Value, e.Allowed[0])
	}
	return fmt.Sprintf("invalid azure configuration: %s: %q is not one of [%s]",
		e.Field, e.Value, strings.Join(e.Allowed, ", "))
}

// ResourceNotFoundError indicates that a referenced existing resource could
// not be found in the subscription. Raised during validation so a bad
// reference fails before any provisioning begins.
type ResourceNotFoundError struct {
	Kind          string
	Name          string
	ResourceGroup string
}

func (e *ResourceNotFoundError) Error() string {
	if e.ResourceGroup != "" {
		return fmt.Sprintf("azure %s %q not found in resource group %q", e.Kind, e.Name, e.ResourceGroup)
	}
	return fmt.Sprintf("azure %s %q not found", e.Kind, e.Name)
}
