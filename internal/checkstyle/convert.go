package checkstyle

import (
	"strings"

	"github.com/scan-io-git/scanio-checkstyle/internal/findings"
)

// excludedSuffix marks generated package documentation that is never reported.
const excludedSuffix = "package.html"

// PackageDetector guesses the package or namespace of a source file.
type PackageDetector interface {
	DetectPackageName(fileName string) string
}

// Convert maps a decoded report to issues. Violations with an unknown severity,
// files named *package.html and files without a name produce no issues.
// Convert never fails; a nil detector leaves every package undefined.
func Convert(report *Report, detector PackageDetector) *findings.Issues {
	issues := &findings.Issues{}
	if report == nil {
		return issues
	}

	for _, file := range report.Files {
		if !isReportable(file) {
			continue
		}

		packageName := findings.UndefinedPackage
		if detector != nil {
			packageName = detector.DetectPackageName(file.Name)
		}

		for _, v := range file.Violations {
			priority, ok := MapPriority(v.Severity)
			if !ok {
				continue
			}

			typ, category := SplitSource(v.Source)
			issues.Add(findings.NewBuilder().
				SetFileName(file.Name).
				SetPackageName(packageName).
				SetLineStart(v.Line).
				SetColumnStart(v.Column).
				SetPriority(priority).
				SetType(typ).
				SetCategory(category).
				SetMessage(v.Message).
				Build())
		}
	}
	return issues
}

func isReportable(file File) bool {
	return file.Name != "" && !strings.HasSuffix(file.Name, excludedSuffix)
}
