package dependency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestClassified_Primary(t *testing.T) {
	var testCases = []struct {
		description    string
		versions       map[Classification]string
		expect         Classification
		expectOk       bool
		expectVersion  string
		expectPriority int
	}{
		{description: "has wins", versions: map[Classification]string{Can: "^1.0.0", Has: "1.2.0", Should: "1.1.0"}, expect: Has, expectOk: true, expectVersion: "1.2.0", expectPriority: 0},
		{description: "should over can", versions: map[Classification]string{Can: "^1.0.0", Should: "1.1.0"}, expect: Should, expectOk: true, expectVersion: "1.1.0", expectPriority: 1},
		{description: "can only", versions: map[Classification]string{Can: "^1.0.0"}, expect: Can, expectOk: true, expectVersion: "^1.0.0", expectPriority: 2},
		{description: "none", expect: Can, expectPriority: Unclassified},
	}
	for _, testCase := range testCases {
		dep := NewClassified("pkg", Node)
		for classification, v := range testCase.versions {
			dep.Add(classification, v, "src")
		}
		actual, ok := dep.Primary()
		assert.Equal(t, testCase.expect, actual, testCase.description)
		assert.Equal(t, testCase.expectOk, ok, testCase.description)
		version, _ := dep.PrimaryVersion()
		assert.Equal(t, testCase.expectVersion, version, testCase.description)
		assert.Equal(t, testCase.expectPriority, dep.Priority(), testCase.description)
	}
}

func TestClassified_AddReplaces(t *testing.T) {
	dep := NewClassified("pkg", Rust)
	dep.Add(Should, "1.0.0", "Cargo.lock")
	dep.Add(Should, "1.0.1", "other/Cargo.lock")
	assert.Len(t, dep.Classifications, 1)
	v, _ := dep.Version(Should)
	assert.Equal(t, "1.0.1", v)
	assert.Equal(t, []Classification{Should}, dep.Present())
}

func TestClassified_Clone(t *testing.T) {
	dep := NewClassified("pkg", Node)
	dep.Add(Has, "1.0.0", "/a")
	dep.Dependencies = []string{"x"}
	clone := dep.Clone()
	clone.Add(Has, "2.0.0", "/b")
	clone.Dependencies[0] = "y"
	v, _ := dep.Version(Has)
	assert.Equal(t, "1.0.0", v)
	assert.Equal(t, []string{"x"}, dep.Dependencies)
}

func TestClassified_Fingerprint(t *testing.T) {
	first := NewClassified("lodash", Node)
	first.Add(Has, "4.17.21", "/a/node_modules/lodash")
	second := NewClassified("lodash", Node)
	second.Add(Has, "4.17.21", "/b/node_modules/lodash")
	same := first.Clone()
	assert.NotEmpty(t, first.Fingerprint())
	assert.NotEqual(t, first.Fingerprint(), second.Fingerprint())
	assert.Equal(t, first.Fingerprint(), same.Fingerprint())
}

func TestClassified_YAML(t *testing.T) {
	dep := NewClassified("react", Node)
	dep.Add(Has, "18.2.0", "/app/node_modules/react")
	dep.Add(Can, "^18.0.0", "/app/package.json")
	data, err := yaml.Marshal(dep)
	require.NoError(t, err)
	assert.Contains(t, string(data), "has:")
	assert.Contains(t, string(data), "can:")

	decoded := &Classified{}
	require.NoError(t, yaml.Unmarshal(data, decoded))
	assert.Equal(t, dep.Classifications, decoded.Classifications)
}

func TestClassification(t *testing.T) {
	assert.True(t, Has.Priority() < Should.Priority() && Should.Priority() < Can.Priority())
	assert.Equal(t, "SHOULD", Should.String())
	var decoded Classification
	assert.NoError(t, decoded.UnmarshalText([]byte("CAN")))
	assert.Equal(t, Can, decoded)
	assert.Error(t, decoded.UnmarshalText([]byte("maybe")))
	_, err := Classification(Unclassified).MarshalText()
	assert.Error(t, err)
}

func TestParseEcosystem(t *testing.T) {
	var testCases = []struct {
		input     string
		expect    Ecosystem
		expectErr bool
	}{
		{input: "npm", expect: Node},
		{input: "PyPI", expect: Python},
		{input: "crates.io", expect: Rust},
		{input: "go", expectErr: true},
	}
	for _, testCase := range testCases {
		actual, err := ParseEcosystem(testCase.input)
		if testCase.expectErr {
			assert.Error(t, err, testCase.input)
			continue
		}
		assert.NoError(t, err, testCase.input)
		assert.Equal(t, testCase.expect, actual, testCase.input)
	}
	assert.Equal(t, "Cargo.toml", Rust.ManifestFile())
	assert.Equal(t, "package.json", Node.ManifestFile())
	assert.Equal(t, "pyproject.toml", Python.ManifestFile())
}

func TestFindings_Filter(t *testing.T) {
	findings := &Findings{
		Records: []*Record{
			{Name: "react", Ecosystem: Node, File: Manifest},
			{Name: "serde", Ecosystem: Rust, File: Lockfile},
		},
		Installed: []*Installed{
			{Name: "react", Ecosystem: Node},
			{Name: "requests", Ecosystem: Python},
		},
	}
	var testCases = []struct {
		description     string
		mode            Mode
		ecosystems      []Ecosystem
		expectRecords   int
		expectInstalled int
	}{
		{description: "full", mode: ModeFull, expectRecords: 2, expectInstalled: 2},
		{description: "installed only", mode: ModeInstalledOnly, expectInstalled: 2},
		{description: "declared only", mode: ModeDeclaredOnly, expectRecords: 2},
		{description: "node", mode: ModeFull, ecosystems: []Ecosystem{Node}, expectRecords: 1, expectInstalled: 1},
		{description: "python and rust", mode: ModeFull, ecosystems: []Ecosystem{Python, Rust}, expectRecords: 1, expectInstalled: 1},
	}
	for _, testCase := range testCases {
		actual := findings.Filter(testCase.mode, testCase.ecosystems...)
		assert.Len(t, actual.Records, testCase.expectRecords, testCase.description)
		assert.Len(t, actual.Installed, testCase.expectInstalled, testCase.description)
	}

	merged := &Findings{}
	merged.Merge(findings, nil, findings)
	assert.Equal(t, 8, merged.Len())
}

func TestParseMode(t *testing.T) {
	mode, err := ParseMode("")
	assert.NoError(t, err)
	assert.Equal(t, ModeFull, mode)
	mode, err = ParseMode("declared-only")
	assert.NoError(t, err)
	assert.False(t, mode.Installed())
	assert.True(t, mode.Declared())
	_, err = ParseMode("everything")
	assert.Error(t, err)
}
