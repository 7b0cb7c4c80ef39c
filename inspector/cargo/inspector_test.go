package cargo

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/depscan/analyzer/dependency"
	"github.com/viant/depscan/inspector/info"
)

func writeFile(t *testing.T, location, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(location), 0o755))
	require.NoError(t, os.WriteFile(location, []byte(content), 0o644))
}

func TestParseManifestRecords(t *testing.T) {
	var testCases = []struct {
		description string
		content     string
		expect      []string
		expectErr   bool
	}{
		{
			description: "dependency tables",
			content: `[package]
name = "cli"
version = "0.1.0"

[dependencies]
serde = { version = "1.0", features = ["derive"] }
tokio = "1.35"
local = { path = "../local" }

[dev-dependencies]
criterion = "0.5"

[build-dependencies]
cc = "1.0"
`,
			expect: []string{"local * runtime", "serde 1.0 runtime", "tokio 1.35 runtime", "criterion 0.5 development", "cc 1.0 build"},
		},
		{
			description: "renamed and target specific",
			content: `[dependencies]
json = { package = "serde_json", version = "1.0.108" }

[target.'cfg(windows)'.dependencies]
winapi = "0.3"

[target.'cfg(unix)'.dev-dependencies]
nix = "0.27"
`,
			expect: []string{"serde_json 1.0.108 runtime", "nix 0.27 development", "winapi 0.3 runtime"},
		},
		{
			description: "workspace",
			content: `[workspace]
members = ["crates/*"]

[workspace.dependencies]
anyhow = "1.0"
`,
			expect: []string{"anyhow 1.0 runtime"},
		},
		{
			description: "malformed",
			content:     "[dependencies\n",
			expectErr:   true,
		},
	}
	for _, testCase := range testCases {
		findings := &dependency.Findings{}
		err := parseManifestRecords("/cli/Cargo.toml", []byte(testCase.content), findings)
		if testCase.expectErr {
			assert.Error(t, err, testCase.description)
			continue
		}
		require.NoError(t, err, testCase.description)
		var actual []string
		for _, record := range findings.Records {
			assert.Equal(t, dependency.Manifest, record.File, testCase.description)
			assert.Equal(t, dependency.Rust, record.Ecosystem, testCase.description)
			actual = append(actual, record.Name+" "+record.Version+" "+string(record.Kind))
		}
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}
}

func TestParseLockRecords(t *testing.T) {
	findings := &dependency.Findings{}
	require.NoError(t, parseLockRecords("/cli/Cargo.lock", []byte(`# This file is automatically @generated by Cargo.
version = 3

[[package]]
name = "cli"
version = "0.1.0"
dependencies = ["serde"]

[[package]]
name = "serde"
version = "1.0.197"
source = "registry+https://github.com/rust-lang/crates.io-index"
checksum = "3fb1c873e1b9b056a4dc4c0c198b24c3ffa059243875552b2bd0933b1aee4ce2"
`), findings))
	var actual []string
	for _, record := range findings.Records {
		assert.Equal(t, dependency.Lockfile, record.File)
		assert.Equal(t, "/cli/Cargo.lock", record.Source)
		actual = append(actual, record.Name+"@"+record.Version)
	}
	assert.Equal(t, []string{"cli@0.1.0", "serde@1.0.197"}, actual)
}

func TestInspector_Inspect(t *testing.T) {
	base := t.TempDir()
	writeFile(t, filepath.Join(base, "Cargo.toml"), "[dependencies]\nserde = \"1.0\"\n")
	writeFile(t, filepath.Join(base, "Cargo.lock"), "[[package]]\nname = \"serde\"\nversion = \"1.0.197\"\n")
	writeFile(t, filepath.Join(base, "target", "debug", "build", "Cargo.toml"), "[dependencies]\nignored = \"1.0\"\n")
	writeFile(t, filepath.Join(base, "src", "main.rs"), "fn main() {}\n")

	var testCases = []struct {
		description string
		mode        dependency.Mode
		expect      int
	}{
		{description: "full", mode: dependency.ModeFull, expect: 2},
		{description: "declared only", mode: dependency.ModeDeclaredOnly, expect: 2},
		{description: "installed only", mode: dependency.ModeInstalledOnly, expect: 0},
	}
	for _, testCase := range testCases {
		config := info.DefaultConfig()
		config.Mode = testCase.mode
		findings, err := New(config, nil).Inspect(context.Background(), base)
		require.NoError(t, err, testCase.description)
		assert.Len(t, findings.Records, testCase.expect, testCase.description)
		assert.Empty(t, findings.Installed, testCase.description)
	}
}
