package version

import "strings"

const semverParts = 3

// satisfiesNode evaluates a single npm range: ^, ~, >=, >, wildcards, otherwise literal
func satisfiesNode(version, rng string) (bool, error) {
	version = strings.TrimSpace(version)
	rng = strings.TrimSpace(rng)
	if version == rng {
		return true, nil
	}
	switch {
	case rng == "*" || rng == "x" || rng == "X":
		return true, nil
	case strings.HasPrefix(rng, "^"):
		return compareWith(version, rng[1:], semverParts, caret)
	case strings.HasPrefix(rng, "~"):
		return compareWith(version, rng[1:], semverParts, tilde)
	case strings.HasPrefix(rng, ">="):
		return compareWith(version, rng[2:], semverParts, atLeast)
	case strings.HasPrefix(rng, ">"):
		return compareWith(version, rng[1:], semverParts, greater)
	}
	return false, nil
}

func atLeast(v, r Version) bool { return v.Compare(r) >= 0 }
func greater(v, r Version) bool { return v.Compare(r) > 0 }
func atMost(v, r Version) bool { return v.Compare(r) <= 0 }
func lower(v, r Version) bool { return v.Compare(r) < 0 }

// compareWith parses both sides and applies the predicate
func compareWith(version, requirement string, minParts int, predicate func(v, r Version) bool) (bool, error) {
	r, err := Parse(requirement, minParts)
	if err != nil {
		return false, err
	}
	v, err := Parse(version, minParts)
	if err != nil {
		return false, err
	}
	return predicate(v, r), nil
}
