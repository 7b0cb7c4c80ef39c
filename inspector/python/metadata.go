package python

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"net/textproto"
	"path/filepath"

	"github.com/viant/depscan/analyzer/dependency"
	"golang.org/x/xerrors"
)

// parseInstalled reads core metadata headers of an installed distribution,
// the package path is the distribution name inside the install dir
func parseInstalled(location string, data []byte, findings *dependency.Findings) error {
	header, err := textproto.NewReader(bufio.NewReader(bytes.NewReader(data))).ReadMIMEHeader()
	if err != nil && !errors.Is(err, io.EOF) {
		return xerrors.Errorf("failed to read metadata %v: %w", location, err)
	}
	name := header.Get("Name")
	version := header.Get("Version")
	if name == "" || version == "" {
		return xerrors.Errorf("missing name or version in %v", location)
	}
	installDir := filepath.Dir(location)
	if base := filepath.Base(location); base == metadataFile || base == pkgInfoFile {
		installDir = filepath.Dir(installDir)
	}
	installed := &dependency.Installed{
		Name:      NormalizeName(name),
		Version:   version,
		Path:      filepath.Join(installDir, name),
		Ecosystem: dependency.Python,
	}
	for _, line := range append(header.Values("Requires-Dist"), header.Values("Requires")...) {
		if extraOnly(line) {
			continue
		}
		if requirement, constraint, ok := parseRequirement(line); ok {
			installed.AddRequirement(requirement, constraint)
		}
	}
	findings.Installed = append(findings.Installed, installed)
	return nil
}
