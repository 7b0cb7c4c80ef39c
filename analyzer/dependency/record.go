package dependency

// Kind represents dependency type declared by a manifest or lockfile
type Kind string

const (
	Runtime     Kind = "runtime"
	Development Kind = "development"
	Peer        Kind = "peer"
	Optional    Kind = "optional"
	Build       Kind = "build"
)

// FileKind distinguishes manifests (ranges) from lockfiles (exact pins)
type FileKind string

const (
	Manifest FileKind = "manifest"
	Lockfile FileKind = "lockfile"
)

// Record represents a dependency declared by a manifest or lockfile
type Record struct {
	Name      string    `yaml:"name" json:"name"`
	Version   string    `yaml:"version" json:"version"` // exact for lockfiles, range for manifests
	Source    string    `yaml:"source" json:"source"`   // declaring file
	Kind      Kind      `yaml:"kind,omitempty" json:"kind,omitempty"`
	Ecosystem Ecosystem `yaml:"ecosystem" json:"ecosystem"`
	File      FileKind  `yaml:"file" json:"file"`
	Parent    string    `yaml:"parent,omitempty" json:"parent,omitempty"` // package the lockfile nests this one under
}

// Requirement represents a dependency declared by an installed package
type Requirement struct {
	Name       string `yaml:"name" json:"name"`
	Constraint string `yaml:"constraint,omitempty" json:"constraint,omitempty"`
}

// Installed represents a package physically present on disk
type Installed struct {
	Name         string         `yaml:"name" json:"name"`
	Version      string         `yaml:"version" json:"version"`
	Path         string         `yaml:"path" json:"path"`
	Ecosystem    Ecosystem      `yaml:"ecosystem" json:"ecosystem"`
	Parent       string         `yaml:"parent,omitempty" json:"parent,omitempty"` // package whose install directory holds this one
	Requirements []*Requirement `yaml:"requirements,omitempty" json:"requirements,omitempty"`
}

// AddRequirement adds a declared dependency
func (i *Installed) AddRequirement(name, constraint string) {
	i.Requirements = append(i.Requirements, &Requirement{Name: name, Constraint: constraint})
}
