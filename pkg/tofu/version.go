package tofu

// DefaultVersion is the OpenTofu version downloaded and executed by this tool.
// Bump deliberately: the embedded templates are validated against this version.
const DefaultVersion = "1.8.5"

// TofuVersion is exposed for display purposes (version command, diagnostics).
const TofuVersion = DefaultVersion
