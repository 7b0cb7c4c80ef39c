package python

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/viant/depscan/analyzer/dependency"
	"golang.org/x/xerrors"
)

// parseRequirementsRecords reads requirements.txt, options, includes and URL requirements are skipped
func parseRequirementsRecords(location string, data []byte, findings *dependency.Findings) error {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		line = strings.TrimSpace(strings.TrimSuffix(line, `\`))
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") || strings.Contains(line, "://") || strings.HasPrefix(line, "git+") {
			continue
		}
		line, _, _ = strings.Cut(line, "#")
		name, constraint, ok := parseRequirement(line)
		if !ok {
			continue
		}
		findings.Records = append(findings.Records, &dependency.Record{
			Name:      name,
			Version:   constraint,
			Source:    location,
			Kind:      dependency.Runtime,
			Ecosystem: dependency.Python,
			File:      dependency.Manifest,
		})
	}
	if err := scanner.Err(); err != nil {
		return xerrors.Errorf("failed to scan %v: %w", location, err)
	}
	return nil
}
