package version

import (
	"fmt"
	"strings"

	"github.com/viant/depscan/analyzer/dependency"
)

// Matcher compares versions and ranges using per ecosystem grammars
type Matcher struct{}

// New creates a matcher
func New() *Matcher {
	return &Matcher{}
}

// ExactMatch compares whitespace trimmed literals, "1.2.0" and "1.2" differ
func (m *Matcher) ExactMatch(a, b string) bool {
	return strings.TrimSpace(a) == strings.TrimSpace(b)
}

// SatisfiesRange returns true if version satisfies rng under the ecosystem grammar
func (m *Matcher) SatisfiesRange(version, rng string, ecosystem dependency.Ecosystem) (bool, error) {
	switch ecosystem {
	case dependency.Node:
		return satisfiesNode(version, rng)
	case dependency.Python:
		return satisfiesPython(version, rng)
	case dependency.Rust:
		return satisfiesRust(version, rng)
	default:
		return false, fmt.Errorf("unsupported ecosystem: %q", ecosystem)
	}
}

// DetectVersionMismatch returns true if installed version differs from locked version
func (m *Matcher) DetectVersionMismatch(has, should string) bool {
	return !m.ExactMatch(has, should)
}

// DetectConstraintViolation returns true if locked version falls outside manifest range,
// malformed versions never count as a violation
func (m *Matcher) DetectConstraintViolation(should, canRange string, ecosystem dependency.Ecosystem) bool {
	ok, err := m.SatisfiesRange(should, canRange, ecosystem)
	if err != nil {
		return false
	}
	return !ok
}

// AnySatisfies returns true if any of versions satisfies rng, unparsable versions are skipped
func (m *Matcher) AnySatisfies(versions []string, rng string, ecosystem dependency.Ecosystem) bool {
	for _, candidate := range versions {
		if ok, err := m.SatisfiesRange(candidate, rng, ecosystem); err == nil && ok {
			return true
		}
	}
	return false
}
