package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/scan-io-git/scanio-checkstyle/internal/findings"
	"github.com/scan-io-git/scanio-checkstyle/internal/sarif"
)

const (
	FormatJSON  = "json"
	FormatText  = "text"
	FormatSarif = "sarif"
)

// Writer serializes issues in one output format.
type Writer interface {
	Write(w io.Writer, issues *findings.Issues) error
}

// Options tune the writers; not every writer uses every option.
type Options struct {
	ToolVersion string
	NoColor     bool
}

// NewWriter returns the writer for format.
func NewWriter(format string, opts Options) (Writer, error) {
	switch format {
	case FormatJSON:
		return jsonWriter{}, nil
	case FormatText:
		return newTextWriter(opts.NoColor), nil
	case FormatSarif:
		return sarifWriter{toolVersion: opts.ToolVersion}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

// FileExtension returns the file extension used for reports in format.
func FileExtension(format string) string {
	if format == FormatText {
		return "txt"
	}
	return format
}

type jsonWriter struct{}

type jsonDocument struct {
	Summary findings.Summary `json:"summary"`
	Issues  []findings.Issue `json:"issues"`
}

func (jsonWriter) Write(w io.Writer, issues *findings.Issues) error {
	doc := jsonDocument{
		Summary: issues.Summary(),
		Issues:  issues.All(),
	}
	if doc.Issues == nil {
		doc.Issues = []findings.Issue{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("error marshaling issues: %w", err)
	}
	return nil
}

type sarifWriter struct {
	toolVersion string
}

func (s sarifWriter) Write(w io.Writer, issues *findings.Issues) error {
	report, err := sarif.FromIssues(issues, s.toolVersion)
	if err != nil {
		return err
	}
	return report.Write(w)
}

type textWriter struct {
	priorities map[findings.Priority]*color.Color
	bold       *color.Color
}

func newTextWriter(noColor bool) textWriter {
	tw := textWriter{
		priorities: map[findings.Priority]*color.Color{
			findings.PriorityHigh:   color.New(color.FgRed, color.Bold),
			findings.PriorityNormal: color.New(color.FgYellow),
			findings.PriorityLow:    color.New(color.FgCyan),
		},
		bold: color.New(color.Bold),
	}
	if noColor {
		for _, c := range tw.priorities {
			c.DisableColor()
		}
		tw.bold.DisableColor()
	}
	return tw
}

// Write prints one line per issue, "file:line:column: [PRIORITY] Category/Type: message (package)",
// followed by a summary line.
func (t textWriter) Write(w io.Writer, issues *findings.Issues) error {
	for _, issue := range issues.All() {
		label := t.priorities[issue.Priority].Sprintf("[%s]", issue.Priority)
		if _, err := fmt.Fprintf(w, "%s:%d:%d: %s %s: %s (%s)\n",
			issue.FileName, issue.LineStart, issue.ColumnStart, label, rule(issue), issue.Message, issue.PackageName); err != nil {
			return fmt.Errorf("error writing issue: %w", err)
		}
	}

	s := issues.Summary()
	summary := t.bold.Sprintf("%d issues", s.Total)
	if _, err := fmt.Fprintf(w, "%s (high: %d, normal: %d, low: %d)\n", summary, s.High, s.Normal, s.Low); err != nil {
		return fmt.Errorf("error writing summary: %w", err)
	}
	return nil
}

func rule(issue findings.Issue) string {
	if issue.Category == "" {
		return issue.Type
	}
	return issue.Category + "/" + issue.Type
}
