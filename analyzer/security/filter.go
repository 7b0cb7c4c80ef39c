package security

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/viant/afs"
	"github.com/viant/depscan/analyzer/dependency"
	"github.com/viant/depscan/analyzer/version"
	"golang.org/x/mod/semver"
	"golang.org/x/xerrors"
)

// ParseError represents a malformed infected list line
type ParseError struct {
	Source string
	Line   int // 1-based
	Text   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid infected list format at %s:%d: expected 'package,versions', got %q", e.Source, e.Line, e.Text)
}

// InfectedPackage represents a known malicious package, empty versions match any version
type InfectedPackage struct {
	Name     string
	Versions map[string]bool
}

// NewInfectedPackage creates an infected package entry
func NewInfectedPackage(name string, versions ...string) *InfectedPackage {
	result := &InfectedPackage{Name: name, Versions: map[string]bool{}}
	for _, v := range versions {
		if v = strings.TrimSpace(v); v != "" {
			result.Versions[v] = true
		}
	}
	return result
}

// Wildcard returns true if every version is infected
func (i *InfectedPackage) Wildcard() bool {
	return len(i.Versions) == 0
}

// Matches returns true if version is listed or the entry is a wildcard
func (i *InfectedPackage) Matches(version string) bool {
	return i.Wildcard() || i.Versions[strings.TrimSpace(version)]
}

// SortedVersions returns listed versions in semver precedence, text that is not semver sorts first
func (i *InfectedPackage) SortedVersions() []string {
	result := lo.Keys(i.Versions)
	slices.SortFunc(result, func(a, b string) int {
		if diff := semver.Compare("v"+a, "v"+b); diff != 0 {
			return diff
		}
		return strings.Compare(a, b)
	})
	return result
}

// Filter matches classified entities against an infected package list
type Filter struct {
	fs       afs.Service
	matcher  *version.Matcher
	packages map[string]*InfectedPackage
}

// New creates an empty filter, nil fs uses the local file system
func New(fs afs.Service) *Filter {
	if fs == nil {
		fs = afs.New()
	}
	return &Filter{fs: fs, matcher: version.New(), packages: map[string]*InfectedPackage{}}
}

// Load reads infected list from URL, any I/O or format failure is returned
func (f *Filter) Load(ctx context.Context, URL string) error {
	data, err := f.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return xerrors.Errorf("failed to read infected list %v: %w", URL, err)
	}
	return f.Parse(bytes.NewReader(data), URL)
}

// Parse reads `name,version_a | version_b` lines, blank and # lines are skipped
func (f *Filter) Parse(r io.Reader, source string) error {
	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.Count(line, ",") != 1 {
			return &ParseError{Source: source, Line: lineNumber, Text: line}
		}
		name, versions, _ := strings.Cut(line, ",")
		f.Add(NewInfectedPackage(strings.TrimSpace(name), strings.Split(versions, "|")...))
	}
	if err := scanner.Err(); err != nil {
		return xerrors.Errorf("failed to scan infected list %v: %w", source, err)
	}
	return nil
}

// Add registers infected entry, versions of a listed name are unioned and a wildcard stays a wildcard
func (f *Filter) Add(infected *InfectedPackage) {
	prev, ok := f.packages[infected.Name]
	if !ok {
		f.packages[infected.Name] = infected
		return
	}
	if prev.Wildcard() {
		return
	}
	if infected.Wildcard() {
		prev.Versions = map[string]bool{}
		return
	}
	for v := range infected.Versions {
		prev.Versions[v] = true
	}
}

// Count returns number of distinct infected names
func (f *Filter) Count() int {
	return len(f.packages)
}

// Lookup returns infected entry for name
func (f *Filter) Lookup(name string) (*InfectedPackage, bool) {
	infected, ok := f.packages[name]
	return infected, ok
}

// Status returns security status of an entity
func (f *Filter) Status(dep *dependency.Classified) Status {
	infected, ok := f.packages[dep.Name]
	if !ok {
		return None
	}
	for _, classification := range []dependency.Classification{dependency.Has, dependency.Should} {
		if v, ok := dep.Version(classification); ok && infected.Matches(v) {
			return Infected
		}
	}
	if rng, ok := dep.Version(dependency.Can); ok {
		if infected.Wildcard() || f.matcher.AnySatisfies(infected.SortedVersions(), rng, dep.Ecosystem) {
			return MatchVersion
		}
	}
	return MatchPackage
}

// IsInfected returns true if an installed or locked version is listed
func (f *Filter) IsInfected(dep *dependency.Classified) bool {
	return f.Status(dep) == Infected
}

// Annotate sets security status of every entity
func (f *Filter) Annotate(entities []*dependency.Classified) {
	for _, dep := range entities {
		dep.Security = f.Status(dep).String()
	}
}

// FilterAndSort returns infected entities ordered by classification priority, then by name
func (f *Filter) FilterAndSort(entities []*dependency.Classified) []*dependency.Classified {
	result := lo.Filter(entities, func(dep *dependency.Classified, _ int) bool {
		return f.IsInfected(dep)
	})
	slices.SortStableFunc(result, func(a, b *dependency.Classified) int {
		if diff := a.Priority() - b.Priority(); diff != 0 {
			return diff
		}
		return strings.Compare(a.Name, b.Name)
	})
	return result
}
