package findings

import (
	"fmt"

	"github.com/google/uuid"
)

// Builder collects the fields of one Issue.
// Use a fresh Builder for every issue; Build panics when a required field was never set.
type Builder struct {
	issue       Issue
	hasFileName bool
	hasPriority bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) SetFileName(name string) *Builder {
	b.issue.FileName = name
	b.hasFileName = true
	return b
}

func (b *Builder) SetPackageName(name string) *Builder {
	b.issue.PackageName = name
	return b
}

func (b *Builder) SetLineStart(line int) *Builder {
	b.issue.LineStart = line
	return b
}

func (b *Builder) SetColumnStart(column int) *Builder {
	b.issue.ColumnStart = column
	return b
}

func (b *Builder) SetPriority(priority Priority) *Builder {
	b.issue.Priority = priority
	b.hasPriority = true
	return b
}

func (b *Builder) SetCategory(category string) *Builder {
	b.issue.Category = category
	return b
}

func (b *Builder) SetType(typ string) *Builder {
	b.issue.Type = typ
	return b
}

func (b *Builder) SetMessage(message string) *Builder {
	b.issue.Message = message
	return b
}

// Build materializes the issue. An unset package name becomes UndefinedPackage.
func (b *Builder) Build() Issue {
	if !b.hasFileName {
		panic("findings: Build called without a file name")
	}
	if !b.hasPriority || !b.issue.Priority.IsValid() {
		panic(fmt.Sprintf("findings: Build called without a valid priority (got %v)", b.issue.Priority))
	}

	issue := b.issue
	if issue.PackageName == "" {
		issue.PackageName = UndefinedPackage
	}
	issue.ID = uuid.New()
	return issue
}
