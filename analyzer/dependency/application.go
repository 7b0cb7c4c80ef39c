package dependency

// Application represents a project root owning installed dependencies
type Application struct {
	Name         string        `yaml:"name" json:"name"`
	RootPath     string        `yaml:"rootPath" json:"root_path"`
	ManifestPath string        `yaml:"manifestPath" json:"manifest_path"`
	Ecosystem    Ecosystem     `yaml:"ecosystem" json:"ecosystem"`
	Dependencies []*Classified `yaml:"dependencies" json:"dependencies"`
}

// NewApplication creates an application without dependencies
func NewApplication(name, rootPath, manifestPath string, ecosystem Ecosystem) *Application {
	return &Application{
		Name:         name,
		RootPath:     rootPath,
		ManifestPath: manifestPath,
		Ecosystem:    ecosystem,
	}
}

// Add appends a dependency
func (a *Application) Add(dep *Classified) {
	a.Dependencies = append(a.Dependencies, dep)
}

// Find returns the first dependency with matching name
func (a *Application) Find(name string) *Classified {
	for _, dep := range a.Dependencies {
		if dep.Name == name {
			return dep
		}
	}
	return nil
}

// Has returns true if the application owns a dependency with matching name
func (a *Application) Has(name string) bool {
	return a.Find(name) != nil
}

// Count returns number of dependencies
func (a *Application) Count() int {
	return len(a.Dependencies)
}
