package checkstyle

// Report is the decoded <checkstyle> document.
type Report struct {
	Version string
	Files   []File
}

// File is a <file> element with its violations in document order.
type File struct {
	Name       string
	Violations []Violation
}

// Violation is an <error> element. Missing attributes keep their zero value.
type Violation struct {
	Line     int
	Column   int
	Severity string
	Message  string
	Source   string
}

// ViolationCount returns the number of violations over all files.
func (r *Report) ViolationCount() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Violations)
	}
	return n
}
