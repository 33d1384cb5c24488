package batch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/scanio-checkstyle/internal/checkstyle"
	"github.com/scan-io-git/scanio-checkstyle/internal/findings"
)

func writeReport(t *testing.T, dir, name, fileName string, violations int) string {
	t.Helper()
	content := `<checkstyle version="10.0"><file name="` + fileName + `">`
	for i := 0; i < violations; i++ {
		content += fmt.Sprintf(`<error line="%d" severity="warning" source="checks.coding.MagicNumber"/>`, i+1)
	}
	content += `</file></checkstyle>`

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunParsesAllReportsInOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := 0; i < 8; i++ {
		paths = append(paths, writeReport(t, dir, fmt.Sprintf("r%d.xml", i), fmt.Sprintf("F%d.java", i), i+1))
	}

	var done int32
	runner := New(checkstyle.NewParser(nil, nil), 3, nil).OnDone(func(Result) {
		atomic.AddInt32(&done, 1)
	})

	results := runner.Run(context.Background(), paths)

	require.Len(t, results, 8)
	assert.Equal(t, int32(8), atomic.LoadInt32(&done))
	for i, result := range results {
		require.NoError(t, result.Err)
		assert.Equal(t, paths[i], result.Path)
		assert.Equal(t, i+1, result.Issues.Len())
	}

	merged, err := Merge(results)
	require.NoError(t, err)
	assert.Equal(t, "10.0", Version(results))
	assert.Equal(t, 36, merged.Len())
	assert.Equal(t, "F0.java", merged.Get(0).FileName)
	assert.Equal(t, "F7.java", merged.Get(merged.Len()-1).FileName)
}

func TestRunCollectsFailures(t *testing.T) {
	dir := t.TempDir()
	good := writeReport(t, dir, "good.xml", "A.java", 2)
	bad := filepath.Join(dir, "bad.xml")
	require.NoError(t, os.WriteFile(bad, []byte(`<pmd/>`), 0644))
	missing := filepath.Join(dir, "missing.xml")

	results := New(checkstyle.NewParser(nil, nil), 2, nil).Run(context.Background(), []string{good, bad, missing})

	require.Len(t, results, 3)
	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, checkstyle.ErrNotThisFormat)
	assert.Error(t, results[2].Err)
	assert.False(t, results[1].Canceled())

	merged, err := Merge(results)
	assert.Equal(t, 2, merged.Len())
	assert.ErrorIs(t, err, checkstyle.ErrNotThisFormat)
}

func TestRunCanceled(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeReport(t, dir, "a.xml", "A.java", 1),
		writeReport(t, dir, "b.xml", "B.java", 1),
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := New(checkstyle.NewParser(nil, nil), 1, nil).Run(ctx, paths)
	for _, result := range results {
		assert.True(t, result.Canceled())
		assert.Nil(t, result.Issues)
		assert.ErrorIs(t, result.Err, context.Canceled)
	}
}

// blockingParser records the highest number of concurrent ParseFile calls.
type blockingParser struct {
	mu      sync.Mutex
	current int
	max     int
	release chan struct{}
}

func (p *blockingParser) ParseFile(ctx context.Context, path string) (*checkstyle.Parsed, error) {
	p.mu.Lock()
	p.current++
	if p.current > p.max {
		p.max = p.current
	}
	p.mu.Unlock()

	<-p.release

	p.mu.Lock()
	p.current--
	p.mu.Unlock()
	return &checkstyle.Parsed{Issues: &findings.Issues{}}, nil
}

func TestRunBoundsConcurrency(t *testing.T) {
	parser := &blockingParser{release: make(chan struct{})}
	paths := make([]string, 10)
	for i := range paths {
		paths[i] = fmt.Sprintf("r%d.xml", i)
	}

	finished := make(chan []Result)
	go func() {
		finished <- New(parser, 2, nil).Run(context.Background(), paths)
	}()
	for range paths {
		parser.release <- struct{}{}
	}
	results := <-finished

	assert.Len(t, results, 10)
	assert.LessOrEqual(t, parser.max, 2)
}

func TestMergeJoinsErrors(t *testing.T) {
	first := errors.New("first")
	second := errors.New("second")

	merged, err := Merge([]Result{{Err: first}, {Issues: &findings.Issues{}}, {Err: second}})
	assert.Zero(t, merged.Len())
	assert.ErrorIs(t, err, first)
	assert.ErrorIs(t, err, second)
}

func TestVersionSkipsFailedAndUnversionedResults(t *testing.T) {
	results := []Result{
		{Err: errors.New("failed"), Version: "1.0"},
		{Issues: &findings.Issues{}},
		{Issues: &findings.Issues{}, Version: "10.3"},
		{Issues: &findings.Issues{}, Version: "9.0"},
	}
	assert.Equal(t, "10.3", Version(results))
	assert.Empty(t, Version(nil))
}

func TestRunLeavesFailureReportingToCaller(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.xml")
	require.NoError(t, os.WriteFile(bad, []byte(`<checkstyle>`), 0644))

	var out bytes.Buffer
	logger := hclog.New(&hclog.LoggerOptions{Output: &out, Level: hclog.Info})

	results := New(checkstyle.NewParser(nil, nil), 1, logger).Run(context.Background(), []string{bad})

	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, checkstyle.ErrMalformedInput)
	assert.NotContains(t, out.String(), "report parsing failed")
	assert.NotContains(t, out.String(), "[ERROR]")
}
