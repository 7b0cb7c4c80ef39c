package npm

import (
	"encoding/json"
	"path/filepath"

	"github.com/viant/depscan/analyzer/dependency"
	"github.com/viant/depscan/inspector/collector"
	"golang.org/x/xerrors"
)

// Package represents package.json subset
type Package struct {
	Name                 string            `json:"name"`
	Version              string            `json:"version"`
	Dependencies         map[string]string `json:"dependencies"`
	DevDependencies      map[string]string `json:"devDependencies"`
	PeerDependencies     map[string]string `json:"peerDependencies"`
	OptionalDependencies map[string]string `json:"optionalDependencies"`
}

func decodePackage(location string, data []byte) (*Package, error) {
	ret := &Package{}
	if err := json.Unmarshal(data, ret); err != nil {
		return nil, xerrors.Errorf("failed to decode %v: %w", location, err)
	}
	return ret, nil
}

// parseInstalled turns node_modules/<name>/package.json into an installed package
func parseInstalled(location string, data []byte, findings *dependency.Findings) error {
	pkg, err := decodePackage(location, data)
	if err != nil {
		return err
	}
	if pkg.Name == "" || pkg.Version == "" {
		return xerrors.Errorf("missing name or version in %v", location)
	}
	dir := filepath.Dir(location)
	installed := &dependency.Installed{
		Name:      pkg.Name,
		Version:   pkg.Version,
		Path:      dir,
		Ecosystem: dependency.Node,
		Parent:    parentPackage(filepath.ToSlash(dir)),
	}
	for _, group := range []map[string]string{pkg.Dependencies, pkg.OptionalDependencies, pkg.PeerDependencies} {
		for _, name := range collector.SortedKeys(group) {
			installed.AddRequirement(name, group[name])
		}
	}
	findings.Installed = append(findings.Installed, installed)
	return nil
}

// parseManifestRecords turns package.json dependency groups into manifest records
func parseManifestRecords(location string, data []byte, findings *dependency.Findings) error {
	pkg, err := decodePackage(location, data)
	if err != nil {
		return err
	}
	groups := []struct {
		kind    dependency.Kind
		entries map[string]string
	}{
		{dependency.Runtime, pkg.Dependencies},
		{dependency.Development, pkg.DevDependencies},
		{dependency.Peer, pkg.PeerDependencies},
		{dependency.Optional, pkg.OptionalDependencies},
	}
	for _, group := range groups {
		for _, name := range collector.SortedKeys(group.entries) {
			findings.Records = append(findings.Records, &dependency.Record{
				Name:      name,
				Version:   group.entries[name],
				Source:    location,
				Kind:      group.kind,
				Ecosystem: dependency.Node,
				File:      dependency.Manifest,
			})
		}
	}
	return nil
}
