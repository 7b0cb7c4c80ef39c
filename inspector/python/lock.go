package python

import (
	"github.com/BurntSushi/toml"
	"github.com/viant/depscan/analyzer/dependency"
	"golang.org/x/xerrors"
)

// Lock represents the [[package]] array shared by poetry.lock and uv.lock
type Lock struct {
	Packages []*LockPackage `toml:"package"`
}

// LockPackage represents a locked distribution
type LockPackage struct {
	Name     string `toml:"name"`
	Version  string `toml:"version"`
	Category string `toml:"category"` // main or dev, older poetry releases only
	Optional bool   `toml:"optional"`
	Source   struct {
		Editable string `toml:"editable"`
		Virtual  string `toml:"virtual"`
	} `toml:"source"`
}

// local returns true for the project itself and path members locked by uv
func (p *LockPackage) local() bool {
	return p.Source.Editable != "" || p.Source.Virtual != ""
}

func parseLockRecords(location string, data []byte, findings *dependency.Findings) error {
	lock := &Lock{}
	if err := toml.Unmarshal(data, lock); err != nil {
		return xerrors.Errorf("failed to decode %v: %w", location, err)
	}
	for _, pkg := range lock.Packages {
		if pkg.Name == "" || pkg.Version == "" || pkg.local() {
			continue
		}
		kind := dependency.Runtime
		switch {
		case pkg.Category == "dev":
			kind = dependency.Development
		case pkg.Optional:
			kind = dependency.Optional
		}
		findings.Records = append(findings.Records, &dependency.Record{
			Name:      NormalizeName(pkg.Name),
			Version:   pkg.Version,
			Source:    location,
			Kind:      kind,
			Ecosystem: dependency.Python,
			File:      dependency.Lockfile,
		})
	}
	return nil
}
