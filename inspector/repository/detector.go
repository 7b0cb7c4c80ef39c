package repository

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/depscan/analyzer/dependency"
)

// Detector identifies application root folders of installed packages
type Detector struct {
	fs     afs.Service
	checks []manifestCheck
}

// manifestCheck checks one manifest kind in a directory
type manifestCheck struct {
	ecosystem dependency.Ecosystem
	name      func(content []byte) string
}

// New creates a detector checking package.json, pyproject.toml and Cargo.toml in that order
func New(fs afs.Service) *Detector {
	if fs == nil {
		fs = afs.New()
	}
	return &Detector{
		fs: fs,
		checks: []manifestCheck{
			{ecosystem: dependency.Node, name: extractJSPackageName},
			{ecosystem: dependency.Python, name: extractPyProjectName},
			{ecosystem: dependency.Rust, name: extractCargoProjectName},
		},
	}
}

// FindApplicationRoot searches ancestors of installedPath (excluding the path itself) for the
// nearest directory with a named manifest, it returns nil when the filesystem root is reached.
// Every visited directory is memoized in cache, negative results included.
func (d *Detector) FindApplicationRoot(ctx context.Context, installedPath string, cache Cache) *Project {
	var visited []string
	dir := filepath.Clean(installedPath)
	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
		if project, ok := cache.Get(dir); ok {
			cache.PutAll(visited, project)
			return project
		}
		visited = append(visited, dir)
		if project := d.detect(ctx, dir); project != nil {
			cache.PutAll(visited, project)
			return project
		}
	}
	cache.PutAll(visited, nil)
	return nil
}

// ManifestPath returns the canonical manifest of ecosystem in root, or root when absent
func (d *Detector) ManifestPath(ctx context.Context, root string, ecosystem dependency.Ecosystem) string {
	if file := ecosystem.ManifestFile(); file != "" {
		location := filepath.Join(root, file)
		if ok, _ := d.fs.Exists(ctx, location); ok {
			return location
		}
	}
	return root
}

// detect returns a project if dir holds a recognized, named manifest
func (d *Detector) detect(ctx context.Context, dir string) *Project {
	for _, candidate := range d.checks {
		location := filepath.Join(dir, candidate.ecosystem.ManifestFile())
		if ok, err := d.fs.Exists(ctx, location); err != nil || !ok {
			continue
		}
		content, err := d.fs.DownloadWithURL(ctx, location)
		if err != nil {
			continue
		}
		if name := candidate.name(content); name != "" {
			return &Project{
				Name:         name,
				RootPath:     dir,
				ManifestPath: location,
				Ecosystem:    candidate.ecosystem,
			}
		}
	}
	return nil
}

func extractJSPackageName(content []byte) string {
	var manifest map[string]interface{}
	if err := json.Unmarshal(content, &manifest); err != nil {
		return ""
	}
	name, _ := manifest["name"].(string)
	return name
}

// extractPyProjectName returns the first name assignment of any section
func extractPyProjectName(content []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		if name, ok := nameAssignment(scanner.Text()); ok {
			return name
		}
	}
	return ""
}

// extractCargoProjectName returns the name assignment of the [package] section
func extractCargoProjectName(content []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(content))
	inPackage := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "[package]" {
			inPackage = true
			continue
		}
		if strings.HasPrefix(line, "[") {
			inPackage = false
		}
		if !inPackage {
			continue
		}
		if name, ok := nameAssignment(line); ok {
			return name
		}
	}
	return ""
}

// nameAssignment parses `name = "value"` lines
func nameAssignment(line string) (string, bool) {
	key, value, ok := strings.Cut(strings.TrimSpace(line), "=")
	if !ok || strings.TrimSpace(key) != "name" {
		return "", false
	}
	value = strings.TrimSpace(value)
	value = strings.Trim(value, `"`)
	value = strings.Trim(value, `'`)
	return value, value != ""
}
