package main

import (
	"context"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/depscan/analyzer"
	"github.com/viant/depscan/analyzer/dependency"
	"github.com/viant/depscan/inspector/info"
	"github.com/viant/depscan/report"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

// Options represents scan settings, loaded from a config file and overridden by flags
type Options struct {
	Dir                string   `yaml:"dir,omitempty"`
	InfectedList       string   `yaml:"infectedList,omitempty"`
	Format             string   `yaml:"format,omitempty"`
	Output             string   `yaml:"output,omitempty"`
	Mode               string   `yaml:"mode,omitempty"`
	Ecosystems         []string `yaml:"ecosystems,omitempty"`
	IncludeInstallDirs bool     `yaml:"includeInstallDirs,omitempty"`
	Exclude            []string `yaml:"exclude,omitempty"`
	Jobs               int      `yaml:"jobs,omitempty"`
	Policy             string   `yaml:"policy,omitempty"`
	Findings           []string `yaml:"findings,omitempty"`
	Verbose            bool     `yaml:"verbose,omitempty"`
}

// DefaultOptions returns scan defaults
func DefaultOptions() *Options {
	return &Options{
		Dir:     ".",
		Format:  string(report.FormatCSV),
		Mode:    string(dependency.ModeFull),
		Exclude: info.DefaultConfig().Exclude,
		Jobs:    runtime.NumCPU(),
		Policy:  string(analyzer.PolicyPerFinding),
	}
}

// settings represents validated options
type settings struct {
	mode       dependency.Mode
	format     report.Format
	policy     analyzer.Policy
	ecosystems []dependency.Ecosystem
}

func (o *Options) validate() (*settings, error) {
	ret := &settings{}
	var err error
	if ret.mode, err = dependency.ParseMode(o.Mode); err != nil {
		return nil, err
	}
	if ret.format, err = report.ParseFormat(o.Format); err != nil {
		return nil, err
	}
	if ret.policy, err = analyzer.ParsePolicy(o.Policy); err != nil {
		return nil, err
	}
	for _, name := range o.Ecosystems {
		ecosystem, err := dependency.ParseEcosystem(name)
		if err != nil {
			return nil, err
		}
		ret.ecosystems = append(ret.ecosystems, ecosystem)
	}
	return ret, nil
}

// loadConfig decodes YAML config file into options
func loadConfig(ctx context.Context, fs afs.Service, URL string, options *Options) error {
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return xerrors.Errorf("failed to read config %v: %w", URL, err)
	}
	if err := yaml.Unmarshal(data, options); err != nil {
		return xerrors.Errorf("failed to decode config %v: %w", URL, err)
	}
	return nil
}

// loadOptions applies defaults, then the config file, then explicitly set flags
func loadOptions(cmd *cobra.Command, fs afs.Service, flags *Options) (*Options, error) {
	ret := DefaultOptions()
	if location, _ := cmd.Flags().GetString("config"); location != "" {
		if err := loadConfig(cmd.Context(), fs, location, ret); err != nil {
			return nil, err
		}
	}
	changed := cmd.Flags().Changed
	if changed("dir") {
		ret.Dir = flags.Dir
	}
	if changed("infected-list") {
		ret.InfectedList = flags.InfectedList
	}
	if changed("format") {
		ret.Format = flags.Format
	}
	if changed("output") {
		ret.Output = flags.Output
	}
	if changed("mode") {
		ret.Mode = flags.Mode
	}
	if changed("ecosystem") {
		ret.Ecosystems = flags.Ecosystems
	}
	if changed("include-install-dirs") {
		ret.IncludeInstallDirs = flags.IncludeInstallDirs
	}
	if changed("exclude") {
		ret.Exclude = flags.Exclude
	}
	if changed("jobs") {
		ret.Jobs = flags.Jobs
	}
	if changed("policy") {
		ret.Policy = flags.Policy
	}
	if changed("findings") {
		ret.Findings = flags.Findings
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		ret.Verbose = true
	}
	return ret, nil
}
