package security

import "fmt"

// Status represents how strongly an entity matches the infected list, lower is more severe
type Status int

const (
	// Infected means an installed or locked version is on the list
	Infected Status = iota
	// MatchVersion means the declared range admits a listed version
	MatchVersion
	// MatchPackage means the name is listed but no version corroborates it
	MatchPackage
	// None means the name is not listed
	None
)

var statusNames = []string{"INFECTED", "MATCH_VERSION", "MATCH_PACKAGE", "NONE"}

func (s Status) String() string {
	if s < Infected || s > None {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

// MarshalText encodes status as its literal name
func (s Status) MarshalText() ([]byte, error) {
	if s < Infected || s > None {
		return nil, fmt.Errorf("invalid security status: %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes status from its literal name
func (s *Status) UnmarshalText(text []byte) error {
	status, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = status
	return nil
}

// ParseStatus parses status literal name
func ParseStatus(text string) (Status, error) {
	for i, name := range statusNames {
		if name == text {
			return Status(i), nil
		}
	}
	return None, fmt.Errorf("invalid security status: %q", text)
}
