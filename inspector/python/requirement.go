package python

import (
	"regexp"
	"strings"
)

var requirementPattern = regexp.MustCompile(`^([A-Za-z0-9][A-Za-z0-9._-]*)\s*(\[[^\]]*\])?\s*(.*)$`)

// parseRequirement splits a PEP 508 requirement into normalized name and version constraint,
// extras and environment markers are dropped and a missing constraint becomes *
func parseRequirement(line string) (string, string, bool) {
	line, _, _ = strings.Cut(line, ";")
	match := requirementPattern.FindStringSubmatch(strings.TrimSpace(line))
	if match == nil {
		return "", "", false
	}
	constraint := strings.TrimSpace(match[3])
	constraint = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(constraint, "("), ")"))
	if constraint == "" || strings.HasPrefix(constraint, "@") {
		constraint = "*"
	}
	return NormalizeName(match[1]), constraint, true
}

// NormalizeName returns the PEP 503 form of a distribution name: lower case with runs of -, _ and . replaced by -
func NormalizeName(name string) string {
	builder := strings.Builder{}
	separator := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if r == '-' || r == '_' || r == '.' {
			separator = true
			continue
		}
		if separator && builder.Len() > 0 {
			builder.WriteByte('-')
		}
		separator = false
		builder.WriteRune(r)
	}
	return builder.String()
}

// extraOnly returns true for requirements guarded by an `extra == ...` marker
func extraOnly(line string) bool {
	_, marker, ok := strings.Cut(line, ";")
	return ok && strings.Contains(strings.ReplaceAll(marker, " ", ""), "extra==")
}
