package inspector

import (
	"context"

	"github.com/viant/afs"
	"github.com/viant/depscan/analyzer/dependency"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

// DocumentInspector reads findings produced by external parsers from a YAML or JSON document
type DocumentInspector struct {
	fs afs.Service
}

// NewDocumentInspector creates a document inspector
func NewDocumentInspector(fs afs.Service) *DocumentInspector {
	if fs == nil {
		fs = afs.New()
	}
	return &DocumentInspector{fs: fs}
}

// Inspect decodes findings document, every entry needs a name and a supported ecosystem
func (d *DocumentInspector) Inspect(ctx context.Context, location string) (*dependency.Findings, error) {
	data, err := d.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, xerrors.Errorf("failed to read findings %v: %w", location, err)
	}
	return DecodeFindings(data, location)
}

// DecodeFindings decodes YAML (or JSON) findings document
func DecodeFindings(data []byte, source string) (*dependency.Findings, error) {
	ret := &dependency.Findings{}
	if err := yaml.Unmarshal(data, ret); err != nil {
		return nil, xerrors.Errorf("failed to decode findings %v: %w", source, err)
	}
	for i, record := range ret.Records {
		if err := validate(record.Name, record.Ecosystem); err != nil {
			return nil, xerrors.Errorf("invalid record %d in %v: %w", i, source, err)
		}
		if record.File == "" {
			record.File = dependency.Manifest
		}
		if record.Source == "" {
			record.Source = source
		}
	}
	for i, pkg := range ret.Installed {
		if err := validate(pkg.Name, pkg.Ecosystem); err != nil {
			return nil, xerrors.Errorf("invalid installed package %d in %v: %w", i, source, err)
		}
	}
	return ret, nil
}

func validate(name string, ecosystem dependency.Ecosystem) error {
	if name == "" {
		return xerrors.New("name was empty")
	}
	if !ecosystem.IsValid() {
		return xerrors.Errorf("unsupported ecosystem: %q", ecosystem)
	}
	return nil
}
