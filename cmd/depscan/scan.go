package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/depscan/analyzer"
	"github.com/viant/depscan/analyzer/security"
	"github.com/viant/depscan/inspector"
	"github.com/viant/depscan/inspector/info"
	"github.com/viant/depscan/report"
	"golang.org/x/xerrors"
)

func newScanCmd() *cobra.Command {
	flags := DefaultOptions()
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan a directory tree and classify its dependencies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := afs.New()
			options, err := loadOptions(cmd, fs, flags)
			if err != nil {
				return err
			}
			if ok, _ := fs.Exists(cmd.Context(), options.Dir); !ok {
				return fmt.Errorf("scan directory does not exist: %s", options.Dir)
			}
			return run(cmd.Context(), fs, options, cmd.OutOrStdout(), cmd.ErrOrStderr(), append([]string{options.Dir}, options.Findings...))
		},
	}
	addFlags(cmd, flags)
	cmd.Flags().StringVar(&flags.Dir, "dir", flags.Dir, "Directory to scan")
	return cmd
}

func newAnalyzeCmd() *cobra.Command {
	flags := DefaultOptions()
	cmd := &cobra.Command{
		Use:   "analyze [findings.yaml...]",
		Short: "Classify findings documents produced by external parsers",
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := afs.New()
			options, err := loadOptions(cmd, fs, flags)
			if err != nil {
				return err
			}
			locations := append(append([]string{}, options.Findings...), args...)
			if len(locations) == 0 {
				return fmt.Errorf("no findings documents, pass them as arguments or with --findings")
			}
			return run(cmd.Context(), fs, options, cmd.OutOrStdout(), cmd.ErrOrStderr(), locations)
		},
	}
	addFlags(cmd, flags)
	return cmd
}

func addFlags(cmd *cobra.Command, flags *Options) {
	cmd.Flags().StringVar(&flags.InfectedList, "infected-list", "", "Infected package list: name,version_a | version_b")
	cmd.Flags().StringVar(&flags.Format, "format", flags.Format, "Output format: csv|json|yaml")
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Output file, stdout when empty")
	cmd.Flags().StringVar(&flags.Mode, "mode", flags.Mode, "Scan mode: full|installed-only|declared-only")
	cmd.Flags().StringSliceVar(&flags.Ecosystems, "ecosystem", nil, "Restrict to ecosystems: node|python|rust")
	cmd.Flags().BoolVar(&flags.IncludeInstallDirs, "include-install-dirs", false, "Collect manifests inside install directories")
	cmd.Flags().StringArrayVar(&flags.Exclude, "exclude", flags.Exclude, "Exclude directories matching glob pattern")
	cmd.Flags().IntVar(&flags.Jobs, "jobs", flags.Jobs, "Parallel file parsers")
	cmd.Flags().StringVar(&flags.Policy, "policy", flags.Policy, "Classification policy: per-finding|merge")
	cmd.Flags().StringArrayVar(&flags.Findings, "findings", nil, "Findings document (yaml or json) to include")
}

// run collects findings from locations, analyzes them and writes the report
func run(ctx context.Context, fs afs.Service, options *Options, stdout, stderr io.Writer, locations []string) error {
	settings, err := options.validate()
	if err != nil {
		return err
	}
	logger := newLogger(stderr, options.Verbose)

	analyzerOptions := []analyzer.Option{
		analyzer.WithLogger(logger),
		analyzer.WithPolicy(settings.policy),
		analyzer.WithFS(fs),
		analyzer.WithMode(settings.mode),
		analyzer.WithEcosystems(settings.ecosystems...),
	}
	if options.InfectedList != "" {
		filter := security.New(fs)
		if err := filter.Load(ctx, options.InfectedList); err != nil {
			return err
		}
		logger.Info("loaded infected package list", "file", options.InfectedList, "packages", filter.Count())
		analyzerOptions = append(analyzerOptions, analyzer.WithFilter(filter))
	}

	config := &info.Config{
		Exclude:            options.Exclude,
		IncludeInstallDirs: options.IncludeInstallDirs,
		Jobs:               options.Jobs,
		Mode:               settings.mode,
		Ecosystems:         settings.ecosystems,
		Logger:             logger,
	}
	findings, err := inspector.NewFactory(config, fs).Inspect(ctx, locations...)
	if err != nil {
		return err
	}
	result, err := analyzer.New(analyzerOptions...).Analyze(ctx, findings)
	if err != nil {
		return err
	}

	writer := stdout
	if options.Output != "" {
		file, err := os.Create(options.Output)
		if err != nil {
			return xerrors.Errorf("failed to create output %v: %w", options.Output, err)
		}
		defer file.Close()
		writer = file
	}
	if err := report.Write(writer, settings.format, report.New(result)); err != nil {
		return err
	}
	if options.Output != "" {
		logger.Info("report written", "file", options.Output, "format", settings.format)
	}
	logSummary(logger, result.Summary)
	return nil
}

func logSummary(logger *slog.Logger, summary *analyzer.Summary) {
	logger.Info("summary",
		"total", summary.Total,
		"has", summary.ByClassification["HAS"],
		"should", summary.ByClassification["SHOULD"],
		"can", summary.ByClassification["CAN"],
		"versionMismatches", summary.VersionMismatches,
		"constraintViolations", summary.ConstraintViolations,
		"applications", summary.Applications)
	if summary.Infected > 0 {
		logger.Warn("infected dependencies found", "infected", summary.Infected, "matchVersion", summary.MatchVersion, "matchPackage", summary.MatchPackage)
	}
}
