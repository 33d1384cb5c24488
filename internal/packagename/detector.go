package packagename

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"
)

// Undefined is returned when no package could be detected.
const Undefined = "-"

// Detector guesses the package or namespace a source file belongs to.
type Detector interface {
	DetectPackageName(fileName string) string
}

// DetectorFunc adapts a function to the Detector interface.
type DetectorFunc func(fileName string) string

func (f DetectorFunc) DetectPackageName(fileName string) string {
	return f(fileName)
}

// language describes how a package declaration looks in one kind of source file.
type language struct {
	name       string
	extensions []string
	pattern    *regexp.Regexp
}

var languages = []language{
	{
		name:       "java",
		extensions: []string{".java"},
		pattern:    regexp.MustCompile(`^\s*package\s+([a-zA-Z_][\w.]*)\s*;`),
	},
	{
		name:       "csharp",
		extensions: []string{".cs"},
		pattern:    regexp.MustCompile(`^\s*namespace\s+([a-zA-Z_][\w.]*)`),
	},
}

// Detectors picks a language by file extension and scans the file for its package declaration.
// Relative file names are resolved against the source folder. Results are cached,
// so one Detectors value can be shared by concurrent parsers.
type Detectors struct {
	sourceFolder string
	logger       hclog.Logger

	mu    sync.Mutex
	cache map[string]string
}

// NewDetectors creates a detector resolving relative paths against sourceFolder.
func NewDetectors(sourceFolder string, logger hclog.Logger) *Detectors {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Detectors{
		sourceFolder: sourceFolder,
		logger:       logger,
		cache:        make(map[string]string),
	}
}

// DetectPackageName returns the declared package of fileName or Undefined.
func (d *Detectors) DetectPackageName(fileName string) string {
	d.mu.Lock()
	if name, ok := d.cache[fileName]; ok {
		d.mu.Unlock()
		return name
	}
	d.mu.Unlock()

	name := d.detect(fileName)

	d.mu.Lock()
	d.cache[fileName] = name
	d.mu.Unlock()
	return name
}

func (d *Detectors) detect(fileName string) string {
	lang, ok := languageOf(fileName)
	if !ok {
		return Undefined
	}

	path := d.resolve(fileName)
	f, err := os.Open(path)
	if err != nil {
		d.logger.Debug("unable to open source file for package detection", "path", path, "error", err)
		return Undefined
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if m := lang.pattern.FindStringSubmatch(scanner.Text()); m != nil {
			return m[1]
		}
	}
	if err := scanner.Err(); err != nil {
		d.logger.Debug("failed to scan source file", "path", path, "language", lang.name, "error", err)
	}
	return Undefined
}

func (d *Detectors) resolve(fileName string) string {
	if d.sourceFolder == "" || filepath.IsAbs(fileName) {
		return fileName
	}
	return filepath.Join(d.sourceFolder, fileName)
}

func languageOf(fileName string) (language, bool) {
	ext := strings.ToLower(filepath.Ext(fileName))
	for _, lang := range languages {
		for _, e := range lang.extensions {
			if e == ext {
				return lang, true
			}
		}
	}
	return language{}, false
}
