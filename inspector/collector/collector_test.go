package collector

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/depscan/analyzer/dependency"
	"github.com/viant/depscan/inspector/info"
	"golang.org/x/xerrors"
)

func writeFile(t *testing.T, location, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(location), 0o755))
	require.NoError(t, os.WriteFile(location, []byte(content), 0o644))
}

// lineSelector parses *.txt files into one record per line and never enters vendor dirs
type lineSelector struct{}

func (s *lineSelector) Descend(name, relative string) bool {
	return name != "vendor"
}

func (s *lineSelector) Select(name, parent string) Parser {
	if !strings.HasSuffix(name, ".txt") {
		return nil
	}
	return parseLines
}

func parseLines(location string, data []byte, findings *dependency.Findings) error {
	if bytes.Contains(data, []byte("broken")) {
		return xerrors.Errorf("failed to parse %v", location)
	}
	for _, line := range strings.Fields(string(data)) {
		findings.Records = append(findings.Records, &dependency.Record{Name: line, Source: location})
	}
	return nil
}

func TestCollect(t *testing.T) {
	base := t.TempDir()
	writeFile(t, filepath.Join(base, "a", "deps.txt"), "alpha\nbeta\n")
	writeFile(t, filepath.Join(base, "a", "README.md"), "ignored\n")
	writeFile(t, filepath.Join(base, "b", "deps.txt"), "gamma\n")
	writeFile(t, filepath.Join(base, "b", "bad.txt"), "broken\n")
	writeFile(t, filepath.Join(base, "vendor", "deps.txt"), "vendored\n")
	writeFile(t, filepath.Join(base, "skip", "deps.txt"), "skipped\n")

	logs := &bytes.Buffer{}
	config := &info.Config{Exclude: []string{"skip"}, Logger: slog.New(slog.NewTextHandler(logs, nil))}
	config.Init()

	findings, err := Collect(context.Background(), afs.New(), config, base, &lineSelector{})
	require.NoError(t, err)
	var names []string
	for _, record := range findings.Records {
		names = append(names, record.Name)
		assert.True(t, filepath.IsAbs(record.Source), record.Source)
	}
	assert.ElementsMatch(t, []string{"alpha", "beta", "gamma"}, names)
	assert.Contains(t, logs.String(), "failed to parse file")
	assert.Contains(t, logs.String(), "bad.txt")
}

func TestWalk_MissingRoot(t *testing.T) {
	config := &info.Config{}
	config.Init()
	_, err := Walk(context.Background(), afs.New(), config, filepath.Join(t.TempDir(), "missing"), &lineSelector{})
	assert.Error(t, err)
}

func TestParse_UnreadableFile(t *testing.T) {
	logs := &bytes.Buffer{}
	config := &info.Config{Jobs: 1, Logger: slog.New(slog.NewTextHandler(logs, nil))}
	config.Init()
	base := t.TempDir()
	writeFile(t, filepath.Join(base, "deps.txt"), "alpha\n")
	findings, err := Parse(context.Background(), afs.New(), config, []*Candidate{
		{Location: filepath.Join(base, "gone.txt"), Parse: parseLines},
		{Location: filepath.Join(base, "deps.txt"), Parse: parseLines},
	})
	require.NoError(t, err)
	require.Len(t, findings.Records, 1)
	assert.Equal(t, "alpha", findings.Records[0].Name)
	assert.Contains(t, logs.String(), "failed to read file")
}

func TestHasSegment(t *testing.T) {
	var testCases = []struct {
		description string
		location    string
		segment     string
		expect      bool
	}{
		{description: "middle segment", location: "app/node_modules/react", segment: "node_modules", expect: true},
		{description: "last segment", location: "lib/site-packages", segment: "site-packages", expect: true},
		{description: "prefix only", location: "app/node_modules_backup", segment: "node_modules", expect: false},
		{description: "empty location", location: "", segment: "node_modules", expect: false},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, HasSegment(testCase.location, testCase.segment), testCase.description)
	}
}

func TestLocalPath(t *testing.T) {
	assert.Equal(t, "/app/package.json", LocalPath("file:///app/package.json"))
	assert.Equal(t, "mem://localhost/app/package.json", LocalPath("mem://localhost/app/package.json"))
}

func TestSortedKeys(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SortedKeys(map[string]int{"c": 3, "a": 1, "b": 2}))
	assert.Empty(t, SortedKeys(map[string]bool{}))
}
