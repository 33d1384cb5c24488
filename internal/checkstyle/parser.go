package checkstyle

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/scanio-checkstyle/internal/findings"
	"github.com/scan-io-git/scanio-checkstyle/pkg/shared/files"
)

// Parser decodes checkstyle reports and converts them into issues.
// A Parser holds no per-report state and may be shared by goroutines
// as long as its detector is safe for concurrent use.
type Parser struct {
	detector PackageDetector
	logger   hclog.Logger
}

// Parsed is a successfully parsed report.
type Parsed struct {
	// Version is the checkstyle version named by the report, if any.
	Version string
	Issues  *findings.Issues
}

// NewParser creates a Parser. A nil logger discards log output.
func NewParser(detector PackageDetector, logger hclog.Logger) *Parser {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Parser{
		detector: detector,
		logger:   logger,
	}
}

// Parse decodes the whole report before converting it; on error no issues are returned.
func (p *Parser) Parse(ctx context.Context, r io.Reader) (*Parsed, error) {
	report, err := Decode(ctx, r)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("report decoded", "version", report.Version, "files", len(report.Files), "violations", report.ViolationCount())

	issues := Convert(report, p.detector)
	p.logger.Debug("report converted", "issues", issues.Len(), "skipped", report.ViolationCount()-issues.Len())
	return &Parsed{Version: report.Version, Issues: issues}, nil
}

// ParseFile opens the report at path and parses it.
func (p *Parser) ParseFile(ctx context.Context, path string) (*Parsed, error) {
	expanded, err := files.ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand report path %q: %w", path, err)
	}
	if err := files.ValidatePath(expanded); err != nil {
		return nil, fmt.Errorf("invalid report path: %w", err)
	}

	f, err := os.Open(expanded)
	if err != nil {
		return nil, fmt.Errorf("failed to open report %q: %w", expanded, err)
	}
	defer f.Close()

	p.logger.Debug("parsing report", "path", expanded)
	parsed, err := p.Parse(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse report %q: %w", expanded, err)
	}
	return parsed, nil
}
