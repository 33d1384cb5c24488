package sarif

import (
	"bytes"
	"testing"

	gosarif "github.com/owenrumney/go-sarif/v2/sarif"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/scanio-checkstyle/internal/findings"
)

func testIssues() *findings.Issues {
	return findings.NewIssues(
		findings.NewBuilder().
			SetFileName("src/Foo.java").
			SetPackageName("com.example").
			SetLineStart(12).
			SetColumnStart(4).
			SetPriority(findings.PriorityHigh).
			SetCategory("Naming").
			SetType("MethodName").
			SetMessage("bad method name").
			Build(),
		findings.NewBuilder().
			SetFileName("src/Foo.java").
			SetPriority(findings.PriorityLow).
			SetCategory("Naming").
			SetType("MethodName").
			SetMessage("another").
			Build(),
		findings.NewBuilder().
			SetFileName("src/Bar.java").
			SetLineStart(3).
			SetPriority(findings.PriorityNormal).
			SetType("Header").
			Build(),
	)
}

func TestFromIssues(t *testing.T) {
	report, err := FromIssues(testIssues(), "10.12.4")
	require.NoError(t, err)
	require.Len(t, report.Runs, 1)

	run := report.Runs[0]
	assert.Equal(t, "checkstyle", run.Tool.Driver.Name)
	require.NotNil(t, run.Tool.Driver.Version)
	assert.Equal(t, "10.12.4", *run.Tool.Driver.Version)

	require.Len(t, run.Tool.Driver.Rules, 2)
	assert.Equal(t, "Naming.MethodName", run.Tool.Driver.Rules[0].ID)
	assert.Equal(t, "Header", run.Tool.Driver.Rules[1].ID)
	assert.Len(t, run.Artifacts, 2)

	require.Len(t, run.Results, 3)
	first := run.Results[0]
	assert.Equal(t, "Naming.MethodName", *first.RuleID)
	assert.Equal(t, "error", *first.Level)
	assert.Equal(t, "bad method name", *first.Message.Text)
	region := first.Locations[0].PhysicalLocation.Region
	require.NotNil(t, region)
	assert.Equal(t, 12, *region.StartLine)
	assert.Equal(t, 4, *region.StartColumn)
	assert.Equal(t, "com.example", first.Properties["package"])
	assert.Equal(t, "HIGH", first.Properties["priority"])

	second := run.Results[1]
	assert.Equal(t, "note", *second.Level)
	assert.Nil(t, second.Locations[0].PhysicalLocation.Region)

	third := run.Results[2]
	assert.Equal(t, "warning", *third.Level)
	assert.Nil(t, third.Locations[0].PhysicalLocation.Region.StartColumn)
}

func TestWriteProducesReadableSarif(t *testing.T) {
	report, err := FromIssues(testIssues(), "")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf))

	parsed, err := gosarif.FromBytes(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, parsed.Runs, 1)
	assert.Len(t, parsed.Runs[0].Results, 3)
	assert.Nil(t, parsed.Runs[0].Tool.Driver.Version)
}

func TestFromIssuesEmpty(t *testing.T) {
	report, err := FromIssues(&findings.Issues{}, "")
	require.NoError(t, err)
	require.Len(t, report.Runs, 1)
	assert.Empty(t, report.Runs[0].Results)
}

func TestRuleIDAndLevel(t *testing.T) {
	assert.Equal(t, "checkstyle", RuleID(findings.Issue{}))
	assert.Equal(t, "Type", RuleID(findings.Issue{Type: "Type"}))
	assert.Equal(t, "Cat.Type", RuleID(findings.Issue{Category: "Cat", Type: "Type"}))

	assert.Equal(t, "error", Level(findings.PriorityHigh))
	assert.Equal(t, "warning", Level(findings.PriorityNormal))
	assert.Equal(t, "note", Level(findings.PriorityLow))
}
