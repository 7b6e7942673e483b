package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"slices"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/unbound-force/assay/internal/analysis"
	"github.com/unbound-force/assay/internal/compat"
	"github.com/unbound-force/assay/internal/config"
	"github.com/unbound-force/assay/internal/fix"
	"github.com/unbound-force/assay/internal/report"
	"github.com/unbound-force/assay/internal/scaffold"
	"github.com/unbound-force/assay/internal/taxonomy"
)

// logger is the application-wide structured logger (writes to stderr).
var logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
	ReportTimestamp: false,
})

// Set by build flags.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "assay",
		Short: "assay checks Go tests for arguments that can never bind",
		Long: `assay statically inspects Go test code. It reports paramtest cases
whose arguments the runtime cannot convert to the test function's
parameters, testify Same/NotSame assertions on non-pointer values, and
collection assertions given impossible arguments.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newCheckCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newRulesCmd())
	root.AddCommand(newSchemaCmd())
	return root
}

// checkParams holds the parsed flags for the check command.
type checkParams struct {
	patterns    []string
	dir         string
	configPath  string
	format      string
	fix         bool
	failOn      int
	nonConstant string
	interactive bool
	verbose     bool
	stdout      io.Writer
	stderr      io.Writer
}

// loadConfig loads the config file and applies flag overrides. An
// empty format or non-constant mode and a negative failOn leave the
// file's value in place.
func loadConfig(path, format string, failOn int, nonConstant string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if format != "" {
		if format != "text" && format != "json" {
			return nil, fmt.Errorf("invalid format %q: must be 'text' or 'json'", format)
		}
		cfg.Report.Format = format
	}
	if nonConstant != "" {
		if _, err := compat.ParseNonConstantMode(nonConstant); err != nil {
			return nil, fmt.Errorf("--non-constant: %w", err)
		}
		cfg.Oracle.NonConstant = nonConstant
	}
	if failOn >= 0 {
		cfg.Report.FailOn = failOn
	}
	return cfg, nil
}

// runCheck is the extracted, testable body of the check command.
func runCheck(p checkParams) error {
	cfg, err := loadConfig(p.configPath, p.format, p.failOn, p.nonConstant)
	if err != nil {
		return err
	}
	if p.verbose {
		logger.SetLevel(charmlog.DebugLevel)
	}

	start := time.Now()
	logger.Info("checking packages", "patterns", p.patterns)
	findings, loaded, err := analysis.LoadAndAnalyze(p.dir, p.patterns, analysis.Options{
		Context:     context.Background(),
		Logger:      logger,
		Disabled:    cfg.DisabledRules(),
		NonConstant: cfg.NonConstantMode(),
	})
	if err != nil {
		return err
	}
	logger.Info("check complete", "packages", len(loaded.Pkgs), "findings", len(findings))

	var warnings []string
	if p.fix {
		files, err := fix.Apply(findings)
		if err != nil {
			return err
		}
		n, err := fix.Write(files)
		if err != nil {
			return err
		}
		fixed := len(findings)
		findings = slices.DeleteFunc(findings, func(f taxonomy.Finding) bool { return f.Fix != nil })
		fixed -= len(findings)
		logger.Info("applied fixes", "findings", fixed, "files", n)
		if fixed > 0 {
			warnings = append(warnings, fmt.Sprintf("fixed %d finding(s) in %d file(s)", fixed, n))
		}
	}

	rpt := taxonomy.NewReport(findings, taxonomy.Metadata{
		AssayVersion: version,
		GoVersion:    runtime.Version(),
		Packages:     len(loaded.Pkgs),
		Timestamp:    start,
		Duration:     time.Since(start),
		Warnings:     warnings,
	})

	if p.interactive {
		if err := runInteractiveCheck(rpt); err != nil {
			return err
		}
	} else if err := writeReport(p.stdout, cfg.Report.Format, rpt, p.dir); err != nil {
		return err
	}

	printCISummary(p.stderr, rpt, cfg.Report.FailOn)
	return checkThreshold(rpt, cfg.Report.FailOn)
}

// writeReport outputs the report in the requested format.
func writeReport(w io.Writer, format string, rpt taxonomy.Report, dir string) error {
	switch format {
	case "json":
		return report.WriteJSON(w, rpt)
	default:
		base := dir
		if base == "" {
			base, _ = os.Getwd()
		}
		return report.WriteText(w, rpt, report.TextOptions{BaseDir: base})
	}
}

// printCISummary prints a one-line CI summary to stderr when a
// threshold is set.
func printCISummary(w io.Writer, rpt taxonomy.Report, failOn int) {
	if failOn <= 0 {
		return
	}
	s := report.DefaultStyles()
	status := s.Pass.Render("PASS")
	if rpt.Summary.Total >= failOn {
		status = s.Fail.Render("FAIL")
	}
	fmt.Fprintf(w, "Findings: %d/%d (%s)\n", rpt.Summary.Total, failOn, status)
}

// checkThreshold returns an error if the finding count reaches failOn.
func checkThreshold(rpt taxonomy.Report, failOn int) error {
	if failOn > 0 && rpt.Summary.Total >= failOn {
		return fmt.Errorf("%d finding(s) reach the fail-on threshold of %d",
			rpt.Summary.Total, failOn)
	}
	return nil
}

func newCheckCmd() *cobra.Command {
	var (
		configPath  string
		format      string
		doFix       bool
		failOn      int
		nonConstant string
		interactive bool
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "check [packages...]",
		Short: "Check the tests of Go packages",
		Long: `Load the given packages with their tests and report every
finding. Package patterns follow the go command ('./...' and
friends); the default is the package in the current directory.

Settings come from .assay.yaml in the working directory (or --config);
flags override them.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(checkParams{
				patterns:    args,
				configPath:  configPath,
				format:      format,
				fix:         doFix,
				failOn:      failOn,
				nonConstant: nonConstant,
				interactive: interactive,
				verbose:     verbose,
				stdout:      cmd.OutOrStdout(),
				stderr:      cmd.ErrOrStderr(),
			})
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "",
		"path to config file (default: ./"+config.FileName+")")
	cmd.Flags().StringVar(&format, "format", "",
		"output format: text or json (default: from config, else text)")
	cmd.Flags().BoolVar(&doFix, "fix", false,
		"apply suggested fixes in place")
	cmd.Flags().IntVar(&failOn, "fail-on", -1,
		"exit non-zero when at least this many findings remain (0 = never)")
	cmd.Flags().StringVar(&nonConstant, "non-constant", "",
		"how to judge non-constant case arguments: lenient or strict")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false,
		"launch interactive TUI for browsing findings")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"log per-package progress")

	return cmd
}

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter .assay.yaml and CI workflow",
		Long: `Write a starter .assay.yaml holding the default settings and a
GitHub Actions workflow that runs assay check. Existing files are
skipped unless --force is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := scaffold.Run(scaffold.Options{
				Force:   force,
				Version: version,
				Stdout:  cmd.OutOrStdout(),
			})
			return err
		},
	}

	cmd.Flags().BoolVar(&force, "force", false,
		"overwrite existing files")

	return cmd
}

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the rules assay checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return report.WriteRules(cmd.OutOrStdout(), taxonomy.Rules())
		},
	}
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for assay check output",
		Long: `Print the JSON Schema (Draft 2020-12) that documents the
structure of assay check --format=json output. Useful for
validating output or generating client types.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), report.Schema)
			return err
		},
	}
}
