package repository

import "github.com/viant/depscan/analyzer/dependency"

// Project represents information about a detected application root
type Project struct {
	Name         string               // Name declared by the manifest
	RootPath     string               // Directory holding the manifest
	ManifestPath string               // Manifest file that matched
	Ecosystem    dependency.Ecosystem // Ecosystem of the matched manifest
}

// Cache memoizes directory resolution for one linking pass, nil values record negative results.
// It is not safe for concurrent use.
type Cache map[string]*Project

// NewCache creates an empty cache
func NewCache() Cache {
	return Cache{}
}

// Get returns cached resolution of dir
func (c Cache) Get(dir string) (*Project, bool) {
	project, ok := c[dir]
	return project, ok
}

// PutAll records the same resolution for every dir
func (c Cache) PutAll(dirs []string, project *Project) {
	for _, dir := range dirs {
		c[dir] = project
	}
}
