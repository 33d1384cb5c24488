package sarif

import (
	"fmt"
	"io"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/scan-io-git/scanio-checkstyle/internal/findings"
)

const (
	toolName           = "checkstyle"
	toolInformationURI = "https://checkstyle.org"
)

// Report is a SARIF 2.1.0 report built from checkstyle issues.
type Report struct {
	*sarif.Report
}

// FromIssues converts issues into a SARIF report with a single checkstyle run.
// Every distinct category/type pair becomes a rule.
func FromIssues(issues *findings.Issues, toolVersion string) (*Report, error) {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("failed to create sarif report: %w", err)
	}

	run := sarif.NewRunWithInformationURI(toolName, toolInformationURI)
	if toolVersion != "" {
		run.Tool.Driver.Version = &toolVersion
	}

	for _, issue := range issues.All() {
		ruleID := RuleID(issue)
		run.AddRule(ruleID).
			WithShortDescription(sarif.NewMultiformatMessageString(ruleID)).
			WithProperties(sarif.Properties{
				"category": issue.Category,
				"type":     issue.Type,
			})
		run.AddDistinctArtifact(issue.FileName)

		result := run.CreateResultForRule(ruleID).
			WithLevel(Level(issue.Priority)).
			WithMessage(sarif.NewTextMessage(issue.Message)).
			WithLocations([]*sarif.Location{newLocation(issue)})
		result.Properties = sarif.Properties{
			"category": issue.Category,
			"type":     issue.Type,
			"package":  issue.PackageName,
			"priority": issue.Priority.String(),
		}
	}

	report.AddRun(run)
	return &Report{Report: report}, nil
}

// Write writes the report as indented JSON.
func (r *Report) Write(w io.Writer) error {
	if err := r.Report.PrettyWrite(w); err != nil {
		return fmt.Errorf("failed to write sarif report: %w", err)
	}
	return nil
}

// RuleID returns the rule identifier of an issue: "Category.Type", or just the type without a category.
func RuleID(issue findings.Issue) string {
	switch {
	case issue.Category == "" && issue.Type == "":
		return "checkstyle"
	case issue.Category == "":
		return issue.Type
	default:
		return issue.Category + "." + issue.Type
	}
}

// Level maps a priority to a SARIF result level.
func Level(priority findings.Priority) string {
	switch priority {
	case findings.PriorityHigh:
		return "error"
	case findings.PriorityNormal:
		return "warning"
	default:
		return "note"
	}
}

// newLocation omits the region for line 0, which SARIF cannot express.
func newLocation(issue findings.Issue) *sarif.Location {
	physical := sarif.NewPhysicalLocation().
		WithArtifactLocation(sarif.NewSimpleArtifactLocation(issue.FileName))

	if issue.LineStart > 0 {
		region := sarif.NewRegion().WithStartLine(issue.LineStart)
		if issue.ColumnStart > 0 {
			region.WithStartColumn(issue.ColumnStart)
		}
		physical.WithRegion(region)
	}
	return sarif.NewLocationWithPhysicalLocation(physical)
}
