package analyzer

import (
	"log/slog"

	"github.com/viant/afs"
	"github.com/viant/depscan/analyzer/dependency"
	"github.com/viant/depscan/analyzer/security"
)

type Option func(*Analyzer)

// WithLogger sets structured logger
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithPolicy sets classification policy
func WithPolicy(policy Policy) Option {
	return func(a *Analyzer) {
		a.classifier = NewClassifier(policy)
	}
}

// WithFilter enables infected package matching
func WithFilter(filter *security.Filter) Option {
	return func(a *Analyzer) {
		a.filter = filter
	}
}

// WithFS sets file system used to probe application manifests
func WithFS(fs afs.Service) Option {
	return func(a *Analyzer) {
		a.fs = fs
	}
}

// WithMode restricts findings to installed or declared ones
func WithMode(mode dependency.Mode) Option {
	return func(a *Analyzer) {
		a.mode = mode
	}
}

// WithEcosystems restricts findings to the given ecosystems
func WithEcosystems(ecosystems ...dependency.Ecosystem) Option {
	return func(a *Analyzer) {
		a.ecosystems = ecosystems
	}
}
