package analyzer

import (
	"github.com/samber/lo"
	"github.com/viant/depscan/analyzer/dependency"
	"github.com/viant/depscan/analyzer/security"
)

// Result represents analysis output handed to report writers
type Result struct {
	Mode         dependency.Mode            `yaml:"mode" json:"mode"`
	Dependencies []*dependency.Classified   `yaml:"dependencies" json:"dependencies"`
	Applications []*dependency.Application  `yaml:"applications" json:"applications"`
	Trees        []*dependency.Tree         `yaml:"trees" json:"trees"`
	Infected     []*dependency.Classified   `yaml:"infected,omitempty" json:"infected,omitempty"`
	Warnings     []*dependency.CycleWarning `yaml:"warnings,omitempty" json:"warnings,omitempty"`
	Summary      *Summary                   `yaml:"summary" json:"summary"`
}

// Summary represents analysis counters
type Summary struct {
	Total                int                          `yaml:"total" json:"total"`
	ByEcosystem          map[dependency.Ecosystem]int `yaml:"byEcosystem" json:"by_ecosystem"`
	ByClassification     map[string]int               `yaml:"byClassification" json:"by_classification"`
	VersionMismatches    int                          `yaml:"versionMismatches" json:"version_mismatches"`
	ConstraintViolations int                          `yaml:"constraintViolations" json:"constraint_violations"`
	Infected             int                          `yaml:"infected" json:"infected"`
	MatchVersion         int                          `yaml:"matchVersion" json:"match_version"`
	MatchPackage         int                          `yaml:"matchPackage" json:"match_package"`
	Applications         int                          `yaml:"applications" json:"applications"`
	Cycles               int                          `yaml:"cycles" json:"cycles"`
}

// Summarize computes result counters, entities without classification count as NONE
func Summarize(result *Result) *Summary {
	deps := result.Dependencies
	return &Summary{
		Total: len(deps),
		ByEcosystem: lo.CountValuesBy(deps, func(dep *dependency.Classified) dependency.Ecosystem {
			return dep.Ecosystem
		}),
		ByClassification: lo.CountValuesBy(deps, func(dep *dependency.Classified) string {
			if primary, ok := dep.Primary(); ok {
				return primary.String()
			}
			return "NONE"
		}),
		VersionMismatches: lo.CountBy(deps, func(dep *dependency.Classified) bool {
			return dep.HasVersionMismatch
		}),
		ConstraintViolations: lo.CountBy(deps, func(dep *dependency.Classified) bool {
			return dep.HasConstraintViolation
		}),
		Infected:     countSecurity(deps, security.Infected),
		MatchVersion: countSecurity(deps, security.MatchVersion),
		MatchPackage: countSecurity(deps, security.MatchPackage),
		Applications: len(result.Applications),
		Cycles:       len(result.Warnings),
	}
}

func countSecurity(deps []*dependency.Classified, status security.Status) int {
	return lo.CountBy(deps, func(dep *dependency.Classified) bool {
		return dep.Security == status.String()
	})
}
