package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetermineFileFullPath(t *testing.T) {
	type testCase struct {
		name         string
		inputPath    string
		nameTemplate string
		expectFile   string
		expectFolder string
		setup        func(t *testing.T) (inputPath, expectFile, expectFolder string)
	}

	tmpDir := t.TempDir()

	tests := []testCase{
		{
			name:         "Directory path with name template",
			inputPath:    tmpDir,
			nameTemplate: "issues.json",
			expectFile:   filepath.Join(tmpDir, "issues.json"),
			expectFolder: tmpDir,
		},
		{
			name:         "File path with extension",
			inputPath:    filepath.Join(tmpDir, "data.json"),
			nameTemplate: "ignored.txt",
			expectFile:   filepath.Join(tmpDir, "data.json"),
			expectFolder: tmpDir,
			setup: func(t *testing.T) (string, string, string) {
				f := filepath.Join(tmpDir, "data.json")
				_ = os.WriteFile(f, []byte("test"), 0644)
				return f, f, tmpDir
			},
		},
		{
			name:         "Path with no extension, treat as folder",
			inputPath:    filepath.Join(tmpDir, "output_folder"),
			nameTemplate: "issues.sarif",
			expectFile:   filepath.Join(tmpDir, "output_folder", "issues.sarif"),
			expectFolder: filepath.Join(tmpDir, "output_folder"),
		},
		{
			name:         "Non-existent file with extension",
			inputPath:    filepath.Join(tmpDir, "nonexistent.txt"),
			nameTemplate: "ignored.json",
			expectFile:   filepath.Join(tmpDir, "nonexistent.txt"),
			expectFolder: tmpDir,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actualPath := tt.inputPath
			expectFile := tt.expectFile
			expectFolder := tt.expectFolder

			if tt.setup != nil {
				actualPath, expectFile, expectFolder = tt.setup(t)
			}

			filePath, folderPath, err := DetermineFileFullPath(actualPath, tt.nameTemplate)
			require.NoError(t, err)
			assert.Equal(t, expectFile, filePath)
			assert.Equal(t, expectFolder, folderPath)
		})
	}
}

func TestValidatePath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "report.xml")
	require.NoError(t, os.WriteFile(file, []byte("<checkstyle/>"), 0644))

	assert.NoError(t, ValidatePath(file))
	assert.Error(t, ValidatePath(dir))
	assert.Error(t, ValidatePath(filepath.Join(dir, "missing.xml")))
}

func TestWriteFileAndCreateFolder(t *testing.T) {
	folder := filepath.Join(t.TempDir(), "nested", "out")
	require.NoError(t, CreateFolderIfNotExists(folder))
	require.NoError(t, CreateFolderIfNotExists(folder))

	path := filepath.Join(folder, "issues.json")
	require.NoError(t, WriteFile(path, []byte("[]")))
	require.NoError(t, WriteFile(path, []byte("{}")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	expanded, err := ExpandPath("~/reports/checkstyle.xml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "reports", "checkstyle.xml"), expanded)

	unchanged, err := ExpandPath("reports/checkstyle.xml")
	require.NoError(t, err)
	assert.Equal(t, "reports/checkstyle.xml", unchanged)
}
