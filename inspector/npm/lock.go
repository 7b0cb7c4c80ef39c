package npm

import (
	"encoding/json"
	"strings"

	"github.com/viant/depscan/analyzer/dependency"
	"github.com/viant/depscan/inspector/collector"
	"golang.org/x/xerrors"
)

// Lock represents package-lock.json subset, v2 and v3 use packages, v1 uses nested dependencies
type Lock struct {
	LockfileVersion int                        `json:"lockfileVersion"`
	Packages        map[string]*LockPackage    `json:"packages"`
	Dependencies    map[string]*LockDependency `json:"dependencies"`
}

// LockPackage represents a packages entry keyed by install path
type LockPackage struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	Dev      bool   `json:"dev"`
	Optional bool   `json:"optional"`
	Peer     bool   `json:"peer"`
	Link     bool   `json:"link"`
}

// LockDependency represents a v1 dependencies entry
type LockDependency struct {
	Version      string                     `json:"version"`
	Dev          bool                       `json:"dev"`
	Optional     bool                       `json:"optional"`
	Dependencies map[string]*LockDependency `json:"dependencies"`
}

const installPrefix = installDir + "/"

func parseLockRecords(location string, data []byte, findings *dependency.Findings) error {
	lock := &Lock{}
	if err := json.Unmarshal(data, lock); err != nil {
		return xerrors.Errorf("failed to decode %v: %w", location, err)
	}
	add := func(name, version, parent string, kind dependency.Kind) {
		findings.Records = append(findings.Records, &dependency.Record{
			Name:      name,
			Version:   version,
			Source:    location,
			Kind:      kind,
			Ecosystem: dependency.Node,
			File:      dependency.Lockfile,
			Parent:    parent,
		})
	}
	if len(lock.Packages) > 0 {
		for _, key := range collector.SortedKeys(lock.Packages) {
			entry := lock.Packages[key]
			index := strings.LastIndex(key, installPrefix)
			if index == -1 || entry == nil || entry.Link || entry.Version == "" {
				continue
			}
			add(key[index+len(installPrefix):], entry.Version, parentPackage(key), lockKind(entry.Dev, entry.Optional, entry.Peer))
		}
		return nil
	}
	var visit func(parent string, entries map[string]*LockDependency)
	visit = func(parent string, entries map[string]*LockDependency) {
		for _, name := range collector.SortedKeys(entries) {
			entry := entries[name]
			if entry == nil {
				continue
			}
			if entry.Version != "" {
				add(name, entry.Version, parent, lockKind(entry.Dev, entry.Optional, false))
			}
			visit(name, entry.Dependencies)
		}
	}
	visit("", lock.Dependencies)
	return nil
}

func lockKind(dev, optional, peer bool) dependency.Kind {
	switch {
	case dev:
		return dependency.Development
	case peer:
		return dependency.Peer
	case optional:
		return dependency.Optional
	}
	return dependency.Runtime
}
