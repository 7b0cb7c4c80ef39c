package version

import "strings"

// satisfiesRust evaluates a single Cargo requirement, a bare version is an implicit caret requirement
func satisfiesRust(version, req string) (bool, error) {
	version = strings.TrimSpace(version)
	req = strings.TrimSpace(req)
	if version == req {
		return true, nil
	}
	switch {
	case req == "*":
		return true, nil
	case strings.HasPrefix(req, "^"):
		return compareWith(version, req[1:], semverParts, caret)
	case strings.HasPrefix(req, "~"):
		return compareWith(version, req[1:], semverParts, tilde)
	case strings.HasPrefix(req, ">="):
		return compareWith(version, req[2:], semverParts, atLeast)
	case strings.HasPrefix(req, ">"):
		return compareWith(version, req[1:], semverParts, greater)
	case req != "" && req[0] >= '0' && req[0] <= '9':
		return compareWith(version, req, semverParts, caret)
	}
	return false, nil
}
