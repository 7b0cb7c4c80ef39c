package analyzer

import (
	"context"
	"log/slog"

	"github.com/viant/afs"
	"github.com/viant/depscan/analyzer/dependency"
	"github.com/viant/depscan/analyzer/security"
	"github.com/viant/depscan/analyzer/version"
	"github.com/viant/depscan/inspector/repository"
)

// Analyzer runs classification, annotation, application linking, tree building and infected matching
type Analyzer struct {
	logger     *slog.Logger
	fs         afs.Service
	classifier *Classifier
	matcher    *version.Matcher
	filter     *security.Filter
	mode       dependency.Mode
	ecosystems []dependency.Ecosystem
}

// New creates an analyzer
func New(options ...Option) *Analyzer {
	ret := &Analyzer{
		logger:     slog.Default(),
		classifier: NewClassifier(PolicyPerFinding),
		matcher:    version.New(),
		mode:       dependency.ModeFull,
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	return ret
}

// Analyze turns materialized findings into a result, every stage runs over the output of the previous one
func (a *Analyzer) Analyze(ctx context.Context, findings *dependency.Findings) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if findings == nil {
		findings = &dependency.Findings{}
	}
	selected := findings.Filter(a.mode, a.ecosystems...)
	a.logger.Debug("classifying findings", "records", len(selected.Records), "installed", len(selected.Installed))

	entities := a.classifier.Classify(selected.Records, selected.Installed)
	Annotate(a.matcher, entities)

	result := &Result{Mode: a.mode, Dependencies: entities}
	if a.filter != nil {
		a.filter.Annotate(entities)
		result.Infected = a.filter.FilterAndSort(entities)
	}

	linker := NewLinker(repository.New(a.fs))
	result.Applications = linker.Link(ctx, entities)

	trees, warnings := NewTreeBuilder().BuildAll(result.Applications)
	for _, warning := range warnings {
		a.logger.Warn("circular dependency detected, breaking cycle",
			"application", warning.Application,
			"package", warning.Package,
			"path", warning.Path)
	}
	result.Trees = trees
	result.Warnings = warnings
	result.Summary = Summarize(result)
	a.logger.Info("analysis completed",
		"dependencies", result.Summary.Total,
		"applications", result.Summary.Applications,
		"infected", result.Summary.Infected)
	return result, nil
}
