package detect

// MaturityTier classifies the lifecycle stage of an audited project.
type MaturityTier string

// Supported maturity tiers ordered from least to most mature.
const (
	MaturityPrototype     MaturityTier = "prototype"
	MaturityPreProduction MaturityTier = "pre-production"
	MaturityProduction    MaturityTier = "production"
)

// ProjectContext captures the technical facets detected for a target project.
type ProjectContext struct {
	Languages        []string     `json:"languages"`
	Frameworks       []string     `json:"frameworks"`
	CloudProviders   []string     `json:"cloud_providers"`
	Maturity         MaturityTier `json:"maturity"`
	WorkingDirectory string       `json:"working_directory"`
}
