package cargo

import (
	"github.com/BurntSushi/toml"
	"github.com/viant/depscan/analyzer/dependency"
	"github.com/viant/depscan/inspector/collector"
	"golang.org/x/xerrors"
)

// Dependencies represents the three dependency tables of a manifest or target section
type Dependencies struct {
	Runtime     map[string]interface{} `toml:"dependencies"`
	Development map[string]interface{} `toml:"dev-dependencies"`
	Build       map[string]interface{} `toml:"build-dependencies"`
}

// Manifest represents Cargo.toml subset
type Manifest struct {
	Dependencies
	Target    map[string]Dependencies `toml:"target"`
	Workspace struct {
		Dependencies map[string]interface{} `toml:"dependencies"`
	} `toml:"workspace"`
}

func parseManifestRecords(location string, data []byte, findings *dependency.Findings) error {
	manifest := &Manifest{}
	if err := toml.Unmarshal(data, manifest); err != nil {
		return xerrors.Errorf("failed to decode %v: %w", location, err)
	}
	add := func(entries map[string]interface{}, kind dependency.Kind) {
		for _, key := range collector.SortedKeys(entries) {
			name, requirement := crate(key, entries[key])
			findings.Records = append(findings.Records, &dependency.Record{
				Name:      name,
				Version:   requirement,
				Source:    location,
				Kind:      kind,
				Ecosystem: dependency.Rust,
				File:      dependency.Manifest,
			})
		}
	}
	sections := []Dependencies{manifest.Dependencies}
	for _, target := range collector.SortedKeys(manifest.Target) {
		sections = append(sections, manifest.Target[target])
	}
	for _, section := range sections {
		add(section.Runtime, dependency.Runtime)
		add(section.Development, dependency.Development)
		add(section.Build, dependency.Build)
	}
	add(manifest.Workspace.Dependencies, dependency.Runtime)
	return nil
}

// crate returns crate name and requirement of `name = "1.0"` or `name = { version = "1.0", package = "real" }`,
// entries without a version requirement yield *
func crate(key string, value interface{}) (string, string) {
	switch actual := value.(type) {
	case string:
		return key, actual
	case map[string]interface{}:
		name := key
		if renamed, ok := actual["package"].(string); ok && renamed != "" {
			name = renamed
		}
		if version, ok := actual["version"].(string); ok {
			return name, version
		}
		return name, "*"
	}
	return key, "*"
}
