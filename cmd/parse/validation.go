package parse

import (
	"fmt"
	"os"

	"github.com/scan-io-git/scanio-checkstyle/internal/findings"
	"github.com/scan-io-git/scanio-checkstyle/pkg/shared/config"
	"github.com/scan-io-git/scanio-checkstyle/pkg/shared/files"
)

// validateParseArgs validates the arguments provided to the parse command and stores the expanded report paths.
func validateParseArgs(options *RunOptionsParse, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("at least one report path must be specified")
	}

	if !config.IsKnownFormat(options.Format) {
		return fmt.Errorf("unsupported output format: %s", options.Format)
	}

	if options.Threads <= 0 {
		return fmt.Errorf("the 'threads' flag must be a positive integer")
	}

	if options.MinPriority != "" {
		if _, err := findings.ParsePriority(options.MinPriority); err != nil {
			return err
		}
	}

	if options.SourceFolder != "" {
		folder, err := files.ExpandPath(options.SourceFolder)
		if err != nil {
			return fmt.Errorf("failed to expand the source folder: %w", err)
		}
		info, err := os.Stat(folder)
		if err != nil {
			return fmt.Errorf("the source folder does not exist: %v", options.SourceFolder)
		}
		if !info.IsDir() {
			return fmt.Errorf("the source folder is not a directory: %v", options.SourceFolder)
		}
		options.SourceFolder = folder
	}

	reports := make([]string, 0, len(args))
	for _, arg := range args {
		path, err := files.ExpandPath(arg)
		if err != nil {
			return fmt.Errorf("failed to expand the report path %v: %w", arg, err)
		}
		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			return fmt.Errorf("the report path does not exist: %v", arg)
		}
		if err != nil {
			return fmt.Errorf("failed to access the report path %v: %w", arg, err)
		}
		if info.IsDir() {
			return fmt.Errorf("the report path is a directory: %v", arg)
		}
		reports = append(reports, path)
	}
	options.Reports = reports

	return nil
}
