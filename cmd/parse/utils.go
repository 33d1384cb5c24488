package parse

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/hashicorp/go-hclog"
	"github.com/schollz/progressbar/v3"

	"github.com/scan-io-git/scanio-checkstyle/internal/checkstyle"
	"github.com/scan-io-git/scanio-checkstyle/internal/findings"
	"github.com/scan-io-git/scanio-checkstyle/internal/packagename"
	"github.com/scan-io-git/scanio-checkstyle/internal/report"
	"github.com/scan-io-git/scanio-checkstyle/pkg/shared/config"
	"github.com/scan-io-git/scanio-checkstyle/pkg/shared/files"
)

// outputNameTemplate is the file name used when the output path is a directory.
const outputNameTemplate = "scanio-checkstyle-issues.%s"

// applyConfigDefaults fills options that were not given on the command line from the config.
func applyConfigDefaults(options *RunOptionsParse, cfg *config.Config, changed func(name string) bool) {
	var cs config.Checkstyle
	if cfg != nil {
		cs = cfg.Checkstyle
	}

	if !changed("format") {
		options.Format = config.SetThen(cs.Format, report.FormatText)
	}
	if !changed("threads") {
		options.Threads = config.SetThen(cs.Threads, 1)
	}
	if !changed("source-folder") {
		options.SourceFolder = cs.SourceFolder
	}
	if !changed("min-priority") {
		options.MinPriority = cs.MinPriority
	}
	if !changed("no-packages") {
		options.NoPackages = !config.GetBoolValue(cfg, "Checkstyle.DetectPackages", true)
	}
}

// newDetector returns the package detector for the run, or nil when detection is disabled.
func newDetector(options *RunOptionsParse, logger hclog.Logger) checkstyle.PackageDetector {
	if options.NoPackages {
		return nil
	}
	return packagename.NewDetectors(options.SourceFolder, logger.Named("packagename"))
}

// filterByPriority drops issues below minPriority; an empty value keeps everything.
func filterByPriority(issues *findings.Issues, minPriority string) *findings.Issues {
	if minPriority == "" {
		return issues
	}
	threshold, err := findings.ParsePriority(minPriority)
	if err != nil {
		return issues
	}
	return issues.Filter(func(issue findings.Issue) bool {
		return issue.Priority.AtLeast(threshold)
	})
}

// writeIssues writes issues to the output path, or to stdout when no path is given.
// toolVersion is the checkstyle version recorded in SARIF output.
// It returns the written file, which is empty for stdout.
func writeIssues(options *RunOptionsParse, issues *findings.Issues, toolVersion string, stdout io.Writer) (string, error) {
	writer, err := report.NewWriter(options.Format, report.Options{
		ToolVersion: toolVersion,
		NoColor:     options.NoColor || options.OutputPath != "",
	})
	if err != nil {
		return "", err
	}

	if options.OutputPath == "" {
		if err := writer.Write(stdout, issues); err != nil {
			return "", fmt.Errorf("failed to write issues: %w", err)
		}
		return "", nil
	}

	outputFile, folder, err := files.DetermineFileFullPath(options.OutputPath, fmt.Sprintf(outputNameTemplate, report.FileExtension(options.Format)))
	if err != nil {
		return "", err
	}
	if err := files.CreateFolderIfNotExists(folder); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := writer.Write(&buf, issues); err != nil {
		return "", fmt.Errorf("failed to render issues: %w", err)
	}
	if err := files.WriteFile(outputFile, buf.Bytes()); err != nil {
		return "", err
	}
	return outputFile, nil
}

// newProgressBar returns a progress bar on stderr for interactive multi-report runs, or nil.
func newProgressBar(reports int) *progressbar.ProgressBar {
	if reports < 2 || config.IsCI() || color.NoColor {
		return nil
	}
	return progressbar.NewOptions(reports,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("parsing reports"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}
