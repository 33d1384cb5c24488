package findings

import "github.com/google/uuid"

// UndefinedPackage is used when no package name could be determined for a file.
const UndefinedPackage = "-"

// Issue is a single normalized violation reported by a static analysis tool.
// Issue holds plain values only, so copies are independent.
type Issue struct {
	ID          uuid.UUID `json:"id"`
	FileName    string    `json:"file_name"`
	PackageName string    `json:"package_name"`
	LineStart   int       `json:"line_start"`
	ColumnStart int       `json:"column_start"`
	Priority    Priority  `json:"priority"`
	Category    string    `json:"category"`
	Type        string    `json:"type"`
	Message     string    `json:"message"`
}
