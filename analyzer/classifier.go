package analyzer

import (
	"fmt"

	"github.com/viant/depscan/analyzer/dependency"
	"github.com/viant/depscan/analyzer/version"
)

// Policy controls how findings of the same package are turned into classified entities
type Policy string

const (
	// PolicyPerFinding keeps every finding as its own entity so each install location stays visible
	PolicyPerFinding Policy = "per-finding"
	// PolicyMerge folds all findings of a (name, ecosystem) pair into one entity
	PolicyMerge Policy = "merge"
)

// ParsePolicy parses classification policy name
func ParsePolicy(text string) (Policy, error) {
	switch policy := Policy(text); policy {
	case PolicyPerFinding, PolicyMerge:
		return policy, nil
	case "":
		return PolicyPerFinding, nil
	}
	return "", fmt.Errorf("invalid policy: %s, use: per-finding or merge", text)
}

// Classifier converts raw findings into HAS/SHOULD/CAN classified entities
type Classifier struct {
	policy Policy
}

// NewClassifier creates a classifier
func NewClassifier(policy Policy) *Classifier {
	if policy == "" {
		policy = PolicyPerFinding
	}
	return &Classifier{policy: policy}
}

// Classify creates classified entities, installed packages first, then declared records
func (c *Classifier) Classify(records []*dependency.Record, installed []*dependency.Installed) []*dependency.Classified {
	var result []*dependency.Classified
	for _, pkg := range installed {
		result = append(result, fromInstalled(pkg))
	}
	for _, record := range records {
		result = append(result, fromRecord(record))
	}
	if c.policy == PolicyMerge {
		result = merge(result)
	}
	for _, dep := range result {
		dep.ID = dep.Fingerprint()
	}
	return result
}

func fromInstalled(pkg *dependency.Installed) *dependency.Classified {
	dep := dependency.NewClassified(pkg.Name, pkg.Ecosystem)
	dep.Add(dependency.Has, pkg.Version, pkg.Path)
	dep.InstalledPath = pkg.Path
	dep.PackagePath = pkg.Path
	dep.ParentPackage = pkg.Parent
	for _, requirement := range pkg.Requirements {
		dep.Dependencies = append(dep.Dependencies, requirement.Name)
	}
	return dep
}

func fromRecord(record *dependency.Record) *dependency.Classified {
	dep := dependency.NewClassified(record.Name, record.Ecosystem)
	classification := dependency.Can
	if record.File == dependency.Lockfile {
		classification = dependency.Should
	}
	dep.Add(classification, record.Version, record.Source)
	dep.PackagePath = record.Source
	dep.ParentPackage = record.Parent
	return dep
}

// merge folds entities sharing name and ecosystem, first seen evidence wins
func merge(entities []*dependency.Classified) []*dependency.Classified {
	type key struct {
		name      string
		ecosystem dependency.Ecosystem
	}
	index := map[key]*dependency.Classified{}
	var result []*dependency.Classified
	for _, entity := range entities {
		k := key{name: entity.Name, ecosystem: entity.Ecosystem}
		target, ok := index[k]
		if !ok {
			index[k] = entity
			result = append(result, entity)
			continue
		}
		for _, classification := range entity.Present() {
			if target.Has(classification) {
				continue
			}
			evidence := entity.Classifications[classification]
			target.Add(classification, evidence.Version, evidence.Source)
		}
		if target.InstalledPath == "" && entity.InstalledPath != "" {
			target.InstalledPath = entity.InstalledPath
			target.PackagePath = entity.PackagePath
			target.ParentPackage = entity.ParentPackage
		}
		for _, name := range entity.Dependencies {
			if !contains(target.Dependencies, name) {
				target.Dependencies = append(target.Dependencies, name)
			}
		}
	}
	return result
}

func contains(values []string, candidate string) bool {
	for _, value := range values {
		if value == candidate {
			return true
		}
	}
	return false
}

// Annotate sets version mismatch (HAS vs SHOULD) and constraint violation (SHOULD vs CAN) flags
func Annotate(matcher *version.Matcher, entities []*dependency.Classified) {
	for _, dep := range entities {
		has, okHas := dep.Version(dependency.Has)
		should, okShould := dep.Version(dependency.Should)
		can, okCan := dep.Version(dependency.Can)
		if okHas && okShould {
			dep.HasVersionMismatch = matcher.DetectVersionMismatch(has, should)
		}
		if okShould && okCan {
			dep.HasConstraintViolation = matcher.DetectConstraintViolation(should, can, dep.Ecosystem)
		}
	}
}
