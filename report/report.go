package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/viant/depscan/analyzer"
	"github.com/viant/depscan/analyzer/dependency"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

// Format represents report encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

// ParseFormat parses report format name
func ParseFormat(text string) (Format, error) {
	switch format := Format(text); format {
	case FormatJSON, FormatYAML, FormatCSV:
		return format, nil
	case "yml":
		return FormatYAML, nil
	case "":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("invalid format: %s, use: csv, json or yaml", text)
}

// Report represents a scan run ready to be encoded
type Report struct {
	ID           string                     `yaml:"id" json:"id"`
	GeneratedAt  time.Time                  `yaml:"generatedAt" json:"generated_at"`
	Mode         dependency.Mode            `yaml:"mode" json:"mode"`
	Summary      *analyzer.Summary          `yaml:"summary" json:"summary"`
	Trees        []*dependency.Tree         `yaml:"trees,omitempty" json:"trees,omitempty"`
	Applications []*dependency.Application  `yaml:"applications,omitempty" json:"applications,omitempty"`
	Infected     []*dependency.Classified   `yaml:"infected,omitempty" json:"infected,omitempty"`
	Warnings     []*dependency.CycleWarning `yaml:"warnings,omitempty" json:"warnings,omitempty"`
	Dependencies []*dependency.Classified   `yaml:"-" json:"-"`
}

// New creates a report, full scans carry trees, other modes carry applications
func New(result *analyzer.Result) *Report {
	ret := &Report{
		ID:           uuid.New().String(),
		GeneratedAt:  time.Now().UTC(),
		Mode:         result.Mode,
		Summary:      result.Summary,
		Infected:     result.Infected,
		Warnings:     result.Warnings,
		Dependencies: result.Dependencies,
	}
	if result.Mode == dependency.ModeFull || result.Mode == "" {
		ret.Trees = result.Trees
	} else {
		ret.Applications = result.Applications
	}
	return ret
}

// Write encodes report, CSV lists every classified dependency
func Write(w io.Writer, format Format, report *Report) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(report); err != nil {
			return xerrors.Errorf("failed to encode json report: %w", err)
		}
		return nil
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(report); err != nil {
			return xerrors.Errorf("failed to encode yaml report: %w", err)
		}
		return encoder.Close()
	case FormatCSV:
		return writeCSV(w, report.Dependencies)
	}
	return fmt.Errorf("unsupported format: %s", format)
}
