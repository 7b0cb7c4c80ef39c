package dependency

import "strings"

// DependencyNode represents a package in a dependency tree
type DependencyNode struct {
	Name           string            `yaml:"name" json:"name"`
	Version        string            `yaml:"version" json:"version"`
	Classification Classification    `yaml:"classification" json:"classification"`
	IsDirect       bool              `yaml:"isDirect" json:"is_direct"`
	Dependencies   []*DependencyNode `yaml:"dependencies,omitempty" json:"dependencies,omitempty"`
}

// NewNode creates a node
func NewNode(name, version string, classification Classification, isDirect bool) *DependencyNode {
	return &DependencyNode{Name: name, Version: version, Classification: classification, IsDirect: isDirect}
}

// Add appends a child node
func (n *DependencyNode) Add(child *DependencyNode) {
	n.Dependencies = append(n.Dependencies, child)
}

// CountTotal returns number of transitive descendants
func (n *DependencyNode) CountTotal() int {
	count := len(n.Dependencies)
	for _, child := range n.Dependencies {
		count += child.CountTotal()
	}
	return count
}

// Find returns node with matching name, searching depth first
func (n *DependencyNode) Find(name string) *DependencyNode {
	if n.Name == name {
		return n
	}
	for _, child := range n.Dependencies {
		if found := child.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// MaxDepth returns the longest child chain length
func (n *DependencyNode) MaxDepth() int {
	depth := 0
	for _, child := range n.Dependencies {
		if d := child.MaxDepth() + 1; d > depth {
			depth = d
		}
	}
	return depth
}

// Tree represents an application with its reconstructed dependency structure
type Tree struct {
	Application *Application      `yaml:"application" json:"application"`
	Roots       []*DependencyNode `yaml:"roots" json:"roots"`
}

// NewTree creates a tree without roots
func NewTree(application *Application) *Tree {
	return &Tree{Application: application}
}

// AddRoot appends a root node
func (t *Tree) AddRoot(node *DependencyNode) {
	t.Roots = append(t.Roots, node)
}

// CountTotal returns number of nodes in the tree
func (t *Tree) CountTotal() int {
	count := len(t.Roots)
	for _, root := range t.Roots {
		count += root.CountTotal()
	}
	return count
}

// Find returns the first node with matching name
func (t *Tree) Find(name string) *DependencyNode {
	for _, root := range t.Roots {
		if found := root.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// MaxDepth returns the deepest root depth
func (t *Tree) MaxDepth() int {
	depth := 0
	for _, root := range t.Roots {
		if d := root.MaxDepth(); d > depth {
			depth = d
		}
	}
	return depth
}

// CycleWarning reports a dependency cycle truncated while building a tree
type CycleWarning struct {
	Application string   `yaml:"application" json:"application"`
	Package     string   `yaml:"package" json:"package"`
	Path        []string `yaml:"path" json:"path"` // ancestor chain ending with the re-entered package
}

// String returns human readable cycle description
func (w *CycleWarning) String() string {
	return "circular dependency detected: " + strings.Join(w.Path, " -> ") + " (breaking cycle)"
}
