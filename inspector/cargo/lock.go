package cargo

import (
	"github.com/BurntSushi/toml"
	"github.com/viant/depscan/analyzer/dependency"
	"golang.org/x/xerrors"
)

// Lock represents Cargo.lock
type Lock struct {
	Packages []*LockPackage `toml:"package"`
}

// LockPackage represents a locked crate
type LockPackage struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

func parseLockRecords(location string, data []byte, findings *dependency.Findings) error {
	lock := &Lock{}
	if err := toml.Unmarshal(data, lock); err != nil {
		return xerrors.Errorf("failed to decode %v: %w", location, err)
	}
	for _, pkg := range lock.Packages {
		if pkg.Name == "" || pkg.Version == "" {
			continue
		}
		findings.Records = append(findings.Records, &dependency.Record{
			Name:      pkg.Name,
			Version:   pkg.Version,
			Source:    location,
			Kind:      dependency.Runtime,
			Ecosystem: dependency.Rust,
			File:      dependency.Lockfile,
		})
	}
	return nil
}
