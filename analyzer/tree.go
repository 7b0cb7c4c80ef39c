package analyzer

import (
	"github.com/viant/depscan/analyzer/dependency"
)

const unknownVersion = "unknown"

// TreeBuilder reconstructs per application dependency trees from installed entities
type TreeBuilder struct{}

// NewTreeBuilder creates a tree builder
func NewTreeBuilder() *TreeBuilder {
	return &TreeBuilder{}
}

// BuildAll builds a tree for every application
func (b *TreeBuilder) BuildAll(applications []*dependency.Application) ([]*dependency.Tree, []*dependency.CycleWarning) {
	var trees []*dependency.Tree
	var warnings []*dependency.CycleWarning
	for _, application := range applications {
		tree, cycles := b.Build(application)
		trees = append(trees, tree)
		warnings = append(warnings, cycles...)
	}
	return trees, warnings
}

// Build builds application tree, every HAS entity becomes a root.
// A package re-entered along its own ancestor chain is cut off and reported as a cycle warning.
func (b *TreeBuilder) Build(application *dependency.Application) (*dependency.Tree, []*dependency.CycleWarning) {
	tree := dependency.NewTree(application)
	state := &treeState{
		application: application.Name,
		lookup:      lookupByName(application.Dependencies),
		onPath:      map[string]bool{},
	}
	for _, dep := range application.Dependencies {
		if !dep.Has(dependency.Has) {
			continue
		}
		if node := state.build(dep, true); node != nil {
			tree.AddRoot(node)
		}
	}
	return tree, state.warnings
}

// lookupByName indexes entities by name, preferring the highest trust classification, first seen on ties
func lookupByName(entities []*dependency.Classified) map[string]*dependency.Classified {
	result := make(map[string]*dependency.Classified, len(entities))
	for _, dep := range entities {
		prev, ok := result[dep.Name]
		if !ok || dep.Priority() < prev.Priority() {
			result[dep.Name] = dep
		}
	}
	return result
}

type treeState struct {
	application string
	lookup      map[string]*dependency.Classified
	onPath      map[string]bool
	path        []string
	warnings    []*dependency.CycleWarning
}

func (s *treeState) push(name string) {
	s.onPath[name] = true
	s.path = append(s.path, name)
}

func (s *treeState) pop(name string) {
	delete(s.onPath, name)
	s.path = s.path[:len(s.path)-1]
}

func (s *treeState) build(dep *dependency.Classified, isDirect bool) *dependency.DependencyNode {
	if s.onPath[dep.Name] {
		path := append(append([]string{}, s.path...), dep.Name)
		s.warnings = append(s.warnings, &dependency.CycleWarning{Application: s.application, Package: dep.Name, Path: path})
		return nil
	}
	s.push(dep.Name)
	defer s.pop(dep.Name)

	classification, _ := dep.Primary()
	version, ok := dep.PrimaryVersion()
	if !ok {
		version = unknownVersion
	}
	node := dependency.NewNode(dep.Name, version, classification, isDirect)
	for _, name := range dep.Dependencies {
		child, ok := s.lookup[name]
		if !ok {
			continue
		}
		if childNode := s.build(child, false); childNode != nil {
			node.Add(childNode)
		}
	}
	return node
}
