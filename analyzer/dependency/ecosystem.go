package dependency

import (
	"fmt"
	"strings"
)

// Ecosystem identifies a package ecosystem
type Ecosystem string

const (
	Node   Ecosystem = "node"
	Python Ecosystem = "python"
	Rust   Ecosystem = "rust"
)

// Ecosystems lists every supported ecosystem in detection order
var Ecosystems = []Ecosystem{Node, Python, Rust}

// ManifestFile returns the canonical manifest file name of the ecosystem
func (e Ecosystem) ManifestFile() string {
	switch e {
	case Node:
		return "package.json"
	case Python:
		return "pyproject.toml"
	case Rust:
		return "Cargo.toml"
	}
	return ""
}

// IsValid returns true for a supported ecosystem
func (e Ecosystem) IsValid() bool {
	switch e {
	case Node, Python, Rust:
		return true
	}
	return false
}

// ParseEcosystem parses ecosystem name, accepting registry aliases
func ParseEcosystem(name string) (Ecosystem, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "node", "npm", "nodejs":
		return Node, nil
	case "python", "pypi":
		return Python, nil
	case "rust", "cargo", "crates.io":
		return Rust, nil
	}
	return "", fmt.Errorf("unknown ecosystem: %s, use: node, python or rust", name)
}
