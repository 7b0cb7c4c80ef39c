package python

import (
	"github.com/BurntSushi/toml"
	"github.com/viant/depscan/analyzer/dependency"
	"github.com/viant/depscan/inspector/collector"
	"golang.org/x/xerrors"
)

// PyProject represents pyproject.toml subset: PEP 621 project table and poetry tool table
type PyProject struct {
	Project struct {
		Dependencies         []string            `toml:"dependencies"`
		OptionalDependencies map[string][]string `toml:"optional-dependencies"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Dependencies    map[string]interface{} `toml:"dependencies"`
			DevDependencies map[string]interface{} `toml:"dev-dependencies"`
			Group           map[string]struct {
				Dependencies map[string]interface{} `toml:"dependencies"`
			} `toml:"group"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

func parsePyProjectRecords(location string, data []byte, findings *dependency.Findings) error {
	project := &PyProject{}
	if err := toml.Unmarshal(data, project); err != nil {
		return xerrors.Errorf("failed to decode %v: %w", location, err)
	}
	add := func(name, constraint string, kind dependency.Kind) {
		findings.Records = append(findings.Records, &dependency.Record{
			Name:      name,
			Version:   constraint,
			Source:    location,
			Kind:      kind,
			Ecosystem: dependency.Python,
			File:      dependency.Manifest,
		})
	}
	for _, line := range project.Project.Dependencies {
		if name, constraint, ok := parseRequirement(line); ok {
			add(name, constraint, dependency.Runtime)
		}
	}
	for _, extra := range collector.SortedKeys(project.Project.OptionalDependencies) {
		for _, line := range project.Project.OptionalDependencies[extra] {
			if name, constraint, ok := parseRequirement(line); ok {
				add(name, constraint, dependency.Optional)
			}
		}
	}
	poetry := project.Tool.Poetry
	addPoetry := func(entries map[string]interface{}, kind dependency.Kind) {
		for _, name := range collector.SortedKeys(entries) {
			if name == "python" {
				continue
			}
			add(NormalizeName(name), poetryConstraint(entries[name]), kind)
		}
	}
	addPoetry(poetry.Dependencies, dependency.Runtime)
	addPoetry(poetry.DevDependencies, dependency.Development)
	for _, group := range collector.SortedKeys(poetry.Group) {
		addPoetry(poetry.Group[group].Dependencies, dependency.Development)
	}
	return nil
}

// poetryConstraint reads `name = "^1.0"` and `name = { version = "^1.0" }` forms, anything else is *
func poetryConstraint(value interface{}) string {
	switch actual := value.(type) {
	case string:
		return actual
	case map[string]interface{}:
		if version, ok := actual["version"].(string); ok {
			return version
		}
	}
	return "*"
}
