package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/DeusData/react-analyzer/internal/pipeline"
	"github.com/DeusData/react-analyzer/internal/report"
	"github.com/DeusData/react-analyzer/internal/store"
)

const timePrecision = time.Millisecond

type rootFlags struct {
	pattern     string
	ignore      string
	testPattern string
	out         string
	reportDir   string
	db          string
	workers     int
	verbose     bool
	update      bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "react-analyzer [path]",
		Short:         "Static analyzer for React and TypeScript projects",
		Long:          "react-analyzer builds the module import graph of a JavaScript/TypeScript project,\ndetects dead files and unknown imports, aggregates per-file exports and\ncross-references package.json dependency usage.",
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.update {
				checkUpdate()
				return nil
			}
			if len(args) == 0 {
				return cmd.Help()
			}
			return runAnalyze(cmd, args[0], flags)
		},
	}

	root.Flags().StringVar(&flags.pattern, "pattern", "", "regex selecting source files by root-relative path")
	root.Flags().StringVar(&flags.ignore, "ignore", "", "regex excluding files by root-relative path")
	root.Flags().StringVar(&flags.testPattern, "test-pattern", "", "regex identifying test files")
	root.Flags().StringVarP(&flags.out, "out", "o", "report.json", "path of the JSON report")
	root.Flags().StringVar(&flags.reportDir, "report-dir", "", "directory for per-file HTML pages (disabled when empty)")
	root.Flags().StringVar(&flags.db, "db", "", "path of the analysis database (default: user cache dir)")
	root.Flags().IntVar(&flags.workers, "workers", 0, "parallel parse workers (default 64)")
	root.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")
	root.Flags().BoolVar(&flags.update, "check-update", false, "check for a newer release and exit")

	root.AddCommand(newServeCmd(), newUpdateCmd())
	return root
}

func runAnalyze(cmd *cobra.Command, path string, flags *rootFlags) error {
	setupLogging(flags.verbose)

	fileCfg, err := loadFileConfig(path)
	if err != nil {
		return err
	}
	applyFileConfig(cmd, flags, fileCfg)

	printBanner()
	printInputs(path,
		orDefault(flags.pattern, "all supported extensions"),
		orDefault(flags.ignore, "none"),
		orDefault(flags.testPattern, "*.cy.* / *.test.* / *.spec.* / *.unit.*"))

	result, err := pipeline.Run(cmd.Context(), pipeline.Config{
		Root:        path,
		Pattern:     flags.pattern,
		Ignore:      flags.ignore,
		TestPattern: flags.testPattern,
		Workers:     flags.workers,
	})
	if err != nil {
		return err
	}

	out := report.FromResult(result)
	if err := out.WriteFile(flags.out); err != nil {
		return err
	}
	if flags.reportDir != "" {
		if err := report.WritePages(flags.reportDir, out.Exports); err != nil {
			return err
		}
	}
	if err := persist(flags.db, result, out); err != nil {
		return err
	}

	printSection("File Summary", out.Summary.String())
	printSection("Test Summary", out.TestSummary.String())
	fmt.Printf("Done in: %s!\n", result.Duration.Round(timePrecision))
	return nil
}

// persist stores the run in the analysis database for the serve mode.
func persist(dbPath string, result *pipeline.Result, out *report.Output) error {
	var s *store.Store
	var err error
	if dbPath != "" {
		s, err = store.OpenPath(dbPath)
	} else {
		s, err = store.Open()
	}
	if err != nil {
		return fmt.Errorf("open analysis db: %w", err)
	}
	defer s.Close()
	return s.SaveReport(result.ProjectName, result.Root, out)
}

// applyFileConfig fills in flags the user did not set on the command line.
func applyFileConfig(cmd *cobra.Command, flags *rootFlags, cfg *fileConfig) {
	if !cmd.Flags().Changed("pattern") && cfg.Pattern != "" {
		flags.pattern = cfg.Pattern
	}
	if !cmd.Flags().Changed("ignore") && cfg.Ignore != "" {
		flags.ignore = cfg.Ignore
	}
	if !cmd.Flags().Changed("test-pattern") && cfg.TestPattern != "" {
		flags.testPattern = cfg.TestPattern
	}
	if !cmd.Flags().Changed("out") && cfg.Out != "" {
		flags.out = cfg.Out
	}
	if !cmd.Flags().Changed("report-dir") && cfg.ReportDir != "" {
		flags.reportDir = cfg.ReportDir
	}
	if !cmd.Flags().Changed("db") && cfg.DB != "" {
		flags.db = cfg.DB
	}
	if !cmd.Flags().Changed("workers") && cfg.Workers != 0 {
		flags.workers = cfg.Workers
	}
}

func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
