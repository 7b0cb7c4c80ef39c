package analyzer

import (
	"context"

	"github.com/viant/depscan/analyzer/dependency"
	"github.com/viant/depscan/inspector/repository"
)

// Linker attaches installed entities to the applications owning them
type Linker struct {
	detector *repository.Detector
}

// NewLinker creates a linker, nil detector uses the local file system
func NewLinker(detector *repository.Detector) *Linker {
	if detector == nil {
		detector = repository.New(nil)
	}
	return &Linker{detector: detector}
}

// Link groups entities by application root in first seen order.
// Entities without installed path or without a resolvable root are dropped.
func (l *Linker) Link(ctx context.Context, entities []*dependency.Classified) []*dependency.Application {
	cache := repository.NewCache()
	var applications []*dependency.Application
	index := map[string]*dependency.Application{}
	for _, dep := range entities {
		if dep.InstalledPath == "" {
			continue
		}
		project := l.detector.FindApplicationRoot(ctx, dep.InstalledPath, cache)
		if project == nil {
			continue
		}
		dep.ApplicationRoot = project.RootPath
		dep.ApplicationName = project.Name
		application, ok := index[project.RootPath]
		if !ok {
			application = dependency.NewApplication(project.Name, project.RootPath, "", dep.Ecosystem)
			index[project.RootPath] = application
			applications = append(applications, application)
		}
		application.Add(dep)
	}
	for _, application := range applications {
		application.ManifestPath = l.detector.ManifestPath(ctx, application.RootPath, application.Ecosystem)
	}
	return applications
}
