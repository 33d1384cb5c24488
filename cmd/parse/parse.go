package parse

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/scan-io-git/scanio-checkstyle/internal/batch"
	"github.com/scan-io-git/scanio-checkstyle/internal/checkstyle"
	"github.com/scan-io-git/scanio-checkstyle/pkg/shared"
	"github.com/scan-io-git/scanio-checkstyle/pkg/shared/config"
	cmderrors "github.com/scan-io-git/scanio-checkstyle/pkg/shared/errors"
	"github.com/scan-io-git/scanio-checkstyle/pkg/shared/logger"
)

// Exit codes of the parse command.
const (
	ExitInvalidArgs   = 1
	ExitParseFailure  = 2
	ExitOutputFailure = 3
	ExitCanceled      = 130
)

// RunOptionsParse holds the arguments for the parse command.
type RunOptionsParse struct {
	Format       string
	OutputPath   string
	SourceFolder string
	MinPriority  string
	Threads      int
	NoPackages   bool
	NoColor      bool
	Reports      []string
}

var (
	AppConfig         *config.Config
	parseOptions      RunOptionsParse
	exampleParseUsage = `  # Printing the issues of a single report
  scanio-checkstyle parse target/checkstyle-result.xml

  # Resolving package names against the project sources
  scanio-checkstyle parse --source-folder ~/src/project target/checkstyle-result.xml

  # Merging several reports into one SARIF file using 4 concurrent jobs
  scanio-checkstyle parse -f sarif -o /path/to/results/checkstyle.sarif -j 4 module-a.xml module-b.xml

  # Writing only high priority issues as JSON into a directory
  scanio-checkstyle parse -f json --min-priority high -o /path/to/results checkstyle-result.xml`
)

// ParseCmd represents the parse command.
var ParseCmd = &cobra.Command{
	Use:                   "parse [--format/-f json|text|sarif] [--output/-o PATH] [--source-folder/-s PATH] [--min-priority PRIORITY] [-j THREADS_NUMBER, default=1] REPORT...",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleParseUsage,
	Short:                 "Converts checkstyle XML reports into prioritized issues",
	Long: `Converts one or more checkstyle XML reports into a single ordered list of issues.

Violation severities are mapped to priorities (error: high, warning: normal, info: low);
violations with any other severity are dropped. The checkstyle check name is split
into a category and a type, and the package of every reported file is detected
from its sources when they are available.`,
	RunE: runParseCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runParseCommand executes the parse command.
func runParseCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	logger := logger.NewLogger(AppConfig, "core-parse")

	applyConfigDefaults(&parseOptions, AppConfig, cmd.Flags().Changed)
	if err := validateParseArgs(&parseOptions, args); err != nil {
		logger.Error("invalid parse arguments", "error", err)
		return cmderrors.NewCommandError(err, ExitInvalidArgs)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	parser := checkstyle.NewParser(newDetector(&parseOptions, logger), logger)
	runner := batch.New(parser, parseOptions.Threads, logger)
	bar := newProgressBar(len(parseOptions.Reports))
	if bar != nil {
		runner.OnDone(func(batch.Result) {
			_ = bar.Add(1)
		})
	}

	logger.Debug("parsing reports", "reports", len(parseOptions.Reports), "threads", parseOptions.Threads)
	results := runner.Run(ctx, parseOptions.Reports)
	if bar != nil {
		_ = bar.Finish()
	}

	issues, err := batch.Merge(results)
	if err != nil {
		if ctx.Err() != nil && errors.Is(err, checkstyle.ErrParsingCanceled) {
			logger.Info("parsing canceled")
			return cmderrors.NewCommandError(err, ExitCanceled)
		}
		logger.Error("parse command failed", "error", err)
		return cmderrors.NewCommandError(fmt.Errorf("failed to parse reports: %w", err), ExitParseFailure)
	}

	issues = filterByPriority(issues, parseOptions.MinPriority)
	outputFile, err := writeIssues(&parseOptions, issues, batch.Version(results), os.Stdout)
	if err != nil {
		logger.Error("failed to write issues", "error", err)
		return cmderrors.NewCommandError(err, ExitOutputFailure)
	}
	if outputFile != "" {
		logger.Info("issues saved", "path", outputFile)
	}

	summary := issues.Summary()
	logger.Info("parse command completed successfully", "issues", summary.Total, "high", summary.High, "normal", summary.Normal, "low", summary.Low)
	return nil
}

// Initialize flags for the parse command.
func init() {
	ParseCmd.Flags().StringVarP(&parseOptions.Format, "format", "f", "", "Output format: json, text or sarif. Defaults to the config value or text.")
	ParseCmd.Flags().BoolP("help", "h", false, "Show help for the parse command.")
	ParseCmd.Flags().StringVarP(&parseOptions.OutputPath, "output", "o", "", "Path to the output file or directory. Results are printed to stdout when omitted.")
	ParseCmd.Flags().StringVarP(&parseOptions.SourceFolder, "source-folder", "s", "", "Folder relative file names of the reports are resolved against for package detection.")
	ParseCmd.Flags().StringVar(&parseOptions.MinPriority, "min-priority", "", "Lowest priority to keep: high, normal or low.")
	ParseCmd.Flags().IntVarP(&parseOptions.Threads, "threads", "j", 1, "Number of reports parsed concurrently.")
	ParseCmd.Flags().BoolVar(&parseOptions.NoPackages, "no-packages", false, "Skip package detection; every issue gets the undefined package.")
	ParseCmd.Flags().BoolVar(&parseOptions.NoColor, "no-color", false, "Disable colors in the text output.")
}
