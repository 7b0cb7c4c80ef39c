package dependency

import (
	"fmt"
	"strings"
)

// Classification represents the trust level of a finding, lower value wins
type Classification int

const (
	Has    Classification = iota // physically installed
	Should                       // pinned in a lockfile
	Can                          // permitted by a manifest range
)

// Unclassified is the priority of an entity without any classification
const Unclassified = 3

// Classifications lists all classifications in priority order
var Classifications = []Classification{Has, Should, Can}

// String returns display name
func (c Classification) String() string {
	switch c {
	case Has:
		return "HAS"
	case Should:
		return "SHOULD"
	case Can:
		return "CAN"
	}
	return fmt.Sprintf("Classification(%d)", int(c))
}

// Priority returns sort priority
func (c Classification) Priority() int {
	return int(c)
}

// MarshalText encodes classification as lower case name
func (c Classification) MarshalText() ([]byte, error) {
	switch c {
	case Has, Should, Can:
		return []byte(strings.ToLower(c.String())), nil
	}
	return nil, fmt.Errorf("invalid classification: %d", int(c))
}

// UnmarshalText decodes classification name
func (c *Classification) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "has":
		*c = Has
	case "should":
		*c = Should
	case "can":
		*c = Can
	default:
		return fmt.Errorf("invalid classification: %s", text)
	}
	return nil
}
