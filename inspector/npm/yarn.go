package npm

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/viant/depscan/analyzer/dependency"
	"golang.org/x/xerrors"
)

// parseYarnLockRecords reads yarn.lock entries of both the classic and the berry layout,
// an entry is an unindented descriptor line followed by an indented version field
func parseYarnLockRecords(location string, data []byte, findings *dependency.Findings) error {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	seen := map[string]bool{}
	name := ""
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if line[0] != ' ' && line[0] != '\t' {
			name = yarnDescriptorName(trimmed)
			continue
		}
		if name == "" {
			continue
		}
		version, ok := yarnVersion(trimmed)
		if !ok {
			continue
		}
		if key := name + "@" + version; !seen[key] {
			seen[key] = true
			findings.Records = append(findings.Records, &dependency.Record{
				Name:      name,
				Version:   version,
				Source:    location,
				Kind:      dependency.Runtime,
				Ecosystem: dependency.Node,
				File:      dependency.Lockfile,
			})
		}
		name = ""
	}
	if err := scanner.Err(); err != nil {
		return xerrors.Errorf("failed to scan %v: %w", location, err)
	}
	return nil
}

// yarnDescriptorName returns package name of `"@scope/name@^1.0.0", "@scope/name@^1.1.0":`,
// metadata and workspace entries yield empty name
func yarnDescriptorName(line string) string {
	if !strings.HasSuffix(line, ":") {
		return ""
	}
	descriptor, _, _ := strings.Cut(strings.TrimSuffix(line, ":"), ",")
	descriptor = strings.Trim(strings.TrimSpace(descriptor), `"'`)
	if strings.Contains(descriptor, "@workspace:") {
		return ""
	}
	index := strings.Index(strings.TrimPrefix(descriptor, "@"), "@")
	if index == -1 {
		return ""
	}
	if strings.HasPrefix(descriptor, "@") {
		index++
	}
	return descriptor[:index]
}

// yarnVersion parses `version "1.2.3"` and `version: 1.2.3` fields
func yarnVersion(line string) (string, bool) {
	rest, ok := strings.CutPrefix(line, "version")
	if !ok || rest == "" || (rest[0] != ' ' && rest[0] != ':') {
		return "", false
	}
	rest = strings.TrimPrefix(rest, ":")
	version := strings.Trim(strings.TrimSpace(rest), `"'`)
	return version, version != ""
}
