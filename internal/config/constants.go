package config

// ManifestFileNames are the manifest file names FindManifest looks for, in
// lookup order.
var ManifestFileNames = []string{"softbind.yaml", "softbind.yml", "softbind.toml"}

// DefaultCatalogPath is used by the export/import commands when no path is given.
const DefaultCatalogPath = "softbind.db"

// Verbose enables resolution traces. Set once at startup by the CLI.
var Verbose = false

// CallableLabelSuffix is appended to a function body's name to form the
// diagnostic label of a resolved callable.
const CallableLabelSuffix = "$softbound"

// Model kind names, as they appear in manifests and catalogs.
const (
	FunctionKindName  = "Function"
	ConstantsKindName = "Constants"
	EnumKindName      = "Enum"
)

// Built-in model ids of the shell demonstration.
const (
	SyntaxClassesID = "ash-syntax-classes"
	SyntaxTablesID  = "ash-syntax-tables"
	TokenEnumID     = "token-enum"
	ReadTokenID     = "xxreadtoken"
)
