package version

import "strings"

const pep440Parts = 1

// satisfiesPython evaluates a single PEP 440 specifier: >=, >, <=, <, ==, ~=, otherwise literal
func satisfiesPython(version, constraint string) (bool, error) {
	version = strings.TrimSpace(version)
	constraint = strings.TrimSpace(constraint)
	if version == constraint {
		return true, nil
	}
	switch {
	case strings.HasPrefix(constraint, "~="):
		return compareWith(version, constraint[2:], pep440Parts, caret)
	case strings.HasPrefix(constraint, "=="):
		return strings.TrimSpace(constraint[2:]) == version, nil
	case strings.HasPrefix(constraint, ">="):
		return compareWith(version, constraint[2:], pep440Parts, atLeast)
	case strings.HasPrefix(constraint, "<="):
		return compareWith(version, constraint[2:], pep440Parts, atMost)
	case strings.HasPrefix(constraint, ">"):
		return compareWith(version, constraint[1:], pep440Parts, greater)
	case strings.HasPrefix(constraint, "<"):
		return compareWith(version, constraint[1:], pep440Parts, lower)
	}
	return false, nil
}
