package npm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/viant/depscan/analyzer/dependency"
	"github.com/viant/depscan/inspector/collector"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

// PnpmLock represents pnpm-lock.yaml subset
type PnpmLock struct {
	LockfileVersion interface{}             `yaml:"lockfileVersion"` // number up to 5.4, string from 6.0
	Packages        map[string]*PnpmPackage `yaml:"packages"`
}

// PnpmPackage represents a packages entry keyed by package id
type PnpmPackage struct {
	Name     string `yaml:"name"`
	Version  string `yaml:"version"`
	Dev      bool   `yaml:"dev"`
	Optional bool   `yaml:"optional"`
}

// legacy returns true for lockfiles keyed by /name/version
func (l *PnpmLock) legacy() bool {
	version, err := strconv.ParseFloat(strings.Trim(fmt.Sprint(l.LockfileVersion), `"'`), 64)
	return err == nil && version < 6
}

func parsePnpmLockRecords(location string, data []byte, findings *dependency.Findings) error {
	lock := &PnpmLock{}
	if err := yaml.Unmarshal(data, lock); err != nil {
		return xerrors.Errorf("failed to decode %v: %w", location, err)
	}
	seen := map[string]bool{}
	for _, key := range collector.SortedKeys(lock.Packages) {
		name, version := pnpmPackageID(key, lock.legacy())
		kind := dependency.Runtime
		if entry := lock.Packages[key]; entry != nil {
			if entry.Name != "" {
				name = entry.Name
			}
			if entry.Version != "" {
				version = entry.Version
			}
			kind = lockKind(entry.Dev, entry.Optional, false)
		}
		if name == "" || version == "" || seen[name+"@"+version] {
			continue
		}
		seen[name+"@"+version] = true
		findings.Records = append(findings.Records, &dependency.Record{
			Name:      name,
			Version:   version,
			Source:    location,
			Kind:      kind,
			Ecosystem: dependency.Node,
			File:      dependency.Lockfile,
		})
	}
	return nil
}

// pnpmPackageID splits /name/1.0.0_peer (legacy) or name@1.0.0(peer) package ids
func pnpmPackageID(key string, legacy bool) (string, string) {
	key = strings.TrimPrefix(key, "/")
	if legacy {
		index := strings.LastIndex(key, "/")
		if index <= 0 {
			return "", ""
		}
		version, _, _ := strings.Cut(key[index+1:], "_")
		return key[:index], version
	}
	key, _, _ = strings.Cut(key, "(")
	index := strings.LastIndex(key, "@")
	if index <= 0 {
		return "", ""
	}
	return key[:index], key[index+1:]
}
