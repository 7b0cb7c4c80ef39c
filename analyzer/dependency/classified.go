package dependency

// Evidence represents a version observed for a classification and the file it came from
type Evidence struct {
	Version string `yaml:"version" json:"version"`
	Source  string `yaml:"source" json:"source"`
}

// Classified represents a dependency finding with its HAS/SHOULD/CAN classifications
type Classified struct {
	ID                     string                       `yaml:"id,omitempty" json:"id,omitempty"`
	Name                   string                       `yaml:"name" json:"name"`
	Ecosystem              Ecosystem                    `yaml:"ecosystem" json:"ecosystem"`
	Classifications        map[Classification]*Evidence `yaml:"classifications" json:"classifications"`
	PackagePath            string                       `yaml:"packagePath,omitempty" json:"package_name_path,omitempty"` // installed directory or declaring file
	InstalledPath          string                       `yaml:"installedPath,omitempty" json:"installed_path,omitempty"`
	ParentPackage          string                       `yaml:"parentPackage,omitempty" json:"parent_package,omitempty"`
	ApplicationRoot        string                       `yaml:"applicationRoot,omitempty" json:"application_root,omitempty"`
	ApplicationName        string                       `yaml:"applicationName,omitempty" json:"application_name,omitempty"`
	Dependencies           []string                     `yaml:"dependencies,omitempty" json:"dependencies,omitempty"`
	HasVersionMismatch     bool                         `yaml:"hasVersionMismatch" json:"has_version_mismatch"`
	HasConstraintViolation bool                         `yaml:"hasConstraintViolation" json:"has_constraint_violation"`
	Security               string                       `yaml:"security,omitempty" json:"security,omitempty"`
}

// NewClassified creates an unclassified dependency
func NewClassified(name string, ecosystem Ecosystem) *Classified {
	return &Classified{
		Name:            name,
		Ecosystem:       ecosystem,
		Classifications: map[Classification]*Evidence{},
	}
}

// Add sets the version observed for a classification, replacing any previous one
func (c *Classified) Add(classification Classification, version, source string) {
	if c.Classifications == nil {
		c.Classifications = map[Classification]*Evidence{}
	}
	c.Classifications[classification] = &Evidence{Version: version, Source: source}
}

// Has returns true if classification is present
func (c *Classified) Has(classification Classification) bool {
	_, ok := c.Classifications[classification]
	return ok
}

// Version returns version for a classification
func (c *Classified) Version(classification Classification) (string, bool) {
	evidence, ok := c.Classifications[classification]
	if !ok {
		return "", false
	}
	return evidence.Version, true
}

// Source returns the file backing a classification
func (c *Classified) Source(classification Classification) (string, bool) {
	evidence, ok := c.Classifications[classification]
	if !ok {
		return "", false
	}
	return evidence.Source, true
}

// Present returns classifications present, in priority order
func (c *Classified) Present() []Classification {
	var result []Classification
	for _, classification := range Classifications {
		if c.Has(classification) {
			result = append(result, classification)
		}
	}
	return result
}

// Primary returns the highest priority classification present
func (c *Classified) Primary() (Classification, bool) {
	for _, classification := range Classifications {
		if c.Has(classification) {
			return classification, true
		}
	}
	return Can, false
}

// PrimaryVersion returns the version of the primary classification
func (c *Classified) PrimaryVersion() (string, bool) {
	primary, ok := c.Primary()
	if !ok {
		return "", false
	}
	return c.Version(primary)
}

// Priority returns sort priority: HAS=0, SHOULD=1, CAN=2, none=3
func (c *Classified) Priority() int {
	if primary, ok := c.Primary(); ok {
		return primary.Priority()
	}
	return Unclassified
}

// IsDirect returns true if the package is not nested under another package
func (c *Classified) IsDirect() bool {
	return c.ParentPackage == ""
}

// Clone returns a copy sharing no mutable state with c
func (c *Classified) Clone() *Classified {
	clone := *c
	clone.Classifications = make(map[Classification]*Evidence, len(c.Classifications))
	for k, v := range c.Classifications {
		evidence := *v
		clone.Classifications[k] = &evidence
	}
	clone.Dependencies = append([]string(nil), c.Dependencies...)
	return &clone
}
