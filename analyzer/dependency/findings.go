package dependency

import "fmt"

// Mode controls which findings take part in a scan
type Mode string

const (
	ModeFull          Mode = "full"
	ModeInstalledOnly Mode = "installed-only"
	ModeDeclaredOnly  Mode = "declared-only"
)

// ParseMode parses scan mode
func ParseMode(text string) (Mode, error) {
	switch mode := Mode(text); mode {
	case ModeFull, ModeInstalledOnly, ModeDeclaredOnly:
		return mode, nil
	case "":
		return ModeFull, nil
	}
	return "", fmt.Errorf("invalid scan mode: %s, use: full, installed-only or declared-only", text)
}

// Installed returns true if installed packages take part in a scan
func (m Mode) Installed() bool {
	return m == ModeFull || m == ModeInstalledOnly || m == ""
}

// Declared returns true if manifest and lockfile records take part in a scan
func (m Mode) Declared() bool {
	return m == ModeFull || m == ModeDeclaredOnly || m == ""
}

// Findings represents raw, format specific findings handed to the classifier
type Findings struct {
	Records   []*Record    `yaml:"records,omitempty" json:"records,omitempty"`
	Installed []*Installed `yaml:"installed,omitempty" json:"installed,omitempty"`
}

// Merge appends other findings
func (f *Findings) Merge(others ...*Findings) {
	for _, other := range others {
		if other == nil {
			continue
		}
		f.Records = append(f.Records, other.Records...)
		f.Installed = append(f.Installed, other.Installed...)
	}
}

// Len returns total number of findings
func (f *Findings) Len() int {
	return len(f.Records) + len(f.Installed)
}

// Filter returns findings matching scan mode and ecosystems, empty ecosystems match all
func (f *Findings) Filter(mode Mode, ecosystems ...Ecosystem) *Findings {
	allowed := func(e Ecosystem) bool {
		if len(ecosystems) == 0 {
			return true
		}
		for _, candidate := range ecosystems {
			if candidate == e {
				return true
			}
		}
		return false
	}
	result := &Findings{}
	if mode.Declared() {
		for _, record := range f.Records {
			if allowed(record.Ecosystem) {
				result.Records = append(result.Records, record)
			}
		}
	}
	if mode.Installed() {
		for _, pkg := range f.Installed {
			if allowed(pkg.Ecosystem) {
				result.Installed = append(result.Installed, pkg)
			}
		}
	}
	return result
}
