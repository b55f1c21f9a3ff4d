package models

// Variant selects a generator flavour: its category folders, artifact lists
// and the fragment tokens it populates.
type Variant string

const (
	VariantModel Variant = "model" // models, repositories, services, validators
	VariantCQRS  Variant = "cqrs"  // commands, queries, events, pages
)

// Valid reports whether v is a known variant.
func (v Variant) Valid() bool {
	return v == VariantModel || v == VariantCQRS
}

// Role names the project an artifact is written into.
type Role string

const (
	RoleCore           Role = "core"
	RoleInfrastructure Role = "infrastructure"
	RoleAPI            Role = "api"
)

// Roles lists every role in dispatch order.
var Roles = []Role{RoleCore, RoleInfrastructure, RoleAPI}

// GenerationTarget is one planned output file. LogicalPath may still carry an
// organizational marker segment; it is stripped when the on-disk path is
// computed.
type GenerationTarget struct {
	LogicalPath       string
	EntityName        string
	DestinationFolder string
	ProjectRoot       string
	RootNamespace     string
	Role              Role
}

// GenerationContext carries the values computed once per batch and read by
// every file in it.
type GenerationContext struct {
	Variant              Variant
	RootNamespace        string // {rootnamespace}
	DomainRootNs         string
	InfrastructureRootNs string
	ApiRootNs            string
	PrimaryKey           string
	LineEnding           string
	Categories           []string
	TemplateExt          string
}
