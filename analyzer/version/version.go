package version

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// ParseError reports a version that cannot be read as major.minor.patch
type ParseError struct {
	Version string
	Reason  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse version %q: %s", e.Version, e.Reason)
}

// Version represents a (major, minor, patch) triple, pre-release and build metadata are dropped
type Version struct {
	Major uint64
	Minor uint64
	Patch uint64
}

// String returns dotted representation
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0 or +1 ordering v against o
func (v Version) Compare(o Version) int {
	if diff := cmp.Compare(v.Major, o.Major); diff != 0 {
		return diff
	}
	if diff := cmp.Compare(v.Minor, o.Minor); diff != 0 {
		return diff
	}
	return cmp.Compare(v.Patch, o.Patch)
}

// Parse parses a version requiring at least minParts dot separated components,
// missing minor and patch components default to 0
func Parse(text string, minParts int) (Version, error) {
	text = strings.TrimSpace(text)
	parts := strings.Split(text, ".")
	if text == "" || len(parts) < minParts {
		return Version{}, &ParseError{Version: text, Reason: fmt.Sprintf("expected at least %d components", minParts)}
	}
	if strings.ContainsAny(text, " \t,|") {
		return Version{}, &ParseError{Version: text, Reason: "compound ranges are not supported"}
	}
	var result Version
	var err error
	if result.Major, err = strconv.ParseUint(parts[0], 10, 64); err != nil {
		return Version{}, &ParseError{Version: text, Reason: "invalid major component"}
	}
	if len(parts) > 1 {
		if result.Minor, err = strconv.ParseUint(parts[1], 10, 64); err != nil {
			return Version{}, &ParseError{Version: text, Reason: "invalid minor component"}
		}
	}
	if len(parts) > 2 {
		result.Patch = leadingNumber(parts[2])
	}
	return result, nil
}

// leadingNumber reads digits up to the first non numeric character, "3-beta.1" yields 3
func leadingNumber(text string) uint64 {
	end := 0
	for end < len(text) && text[end] >= '0' && text[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	value, err := strconv.ParseUint(text[:end], 10, 64)
	if err != nil {
		return 0
	}
	return value
}

// caret returns true if v is compatible with r under ^ semantics: same major, not lower than r
func caret(v, r Version) bool {
	if v.Major != r.Major {
		return false
	}
	return v.Minor > r.Minor || (v.Minor == r.Minor && v.Patch >= r.Patch)
}

// tilde returns true if v matches r major and minor with patch not lower than r
func tilde(v, r Version) bool {
	return v.Major == r.Major && v.Minor == r.Minor && v.Patch >= r.Patch
}
