package findings

// Issues is an insertion-ordered, append-only collection of issues.
// The zero value is ready to use.
type Issues struct {
	items []Issue
}

// NewIssues returns a collection holding the given issues in order.
func NewIssues(issues ...Issue) *Issues {
	c := &Issues{}
	for _, issue := range issues {
		c.Add(issue)
	}
	return c
}

// Add appends an issue to the end of the collection.
func (c *Issues) Add(issue Issue) {
	c.items = append(c.items, issue)
}

// AddAll appends every issue of other, keeping its order.
func (c *Issues) AddAll(other *Issues) {
	if other == nil {
		return
	}
	c.items = append(c.items, other.items...)
}

// Len returns the number of issues.
func (c *Issues) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// Get returns the issue at index i.
func (c *Issues) Get(i int) Issue {
	return c.items[i]
}

// All returns a copy of the issues in insertion order.
func (c *Issues) All() []Issue {
	if c == nil {
		return nil
	}
	out := make([]Issue, len(c.items))
	copy(out, c.items)
	return out
}

// Filter returns a new collection with the issues matching keep.
func (c *Issues) Filter(keep func(Issue) bool) *Issues {
	filtered := &Issues{}
	if c == nil {
		return filtered
	}
	for _, issue := range c.items {
		if keep(issue) {
			filtered.Add(issue)
		}
	}
	return filtered
}

// SizeOf returns the number of issues with the given priority.
func (c *Issues) SizeOf(priority Priority) int {
	if c == nil {
		return 0
	}
	n := 0
	for _, issue := range c.items {
		if issue.Priority == priority {
			n++
		}
	}
	return n
}

// Summary holds the number of issues per priority.
type Summary struct {
	High   int `json:"high"`
	Normal int `json:"normal"`
	Low    int `json:"low"`
	Total  int `json:"total"`
}

// Summary counts the issues per priority.
func (c *Issues) Summary() Summary {
	return Summary{
		High:   c.SizeOf(PriorityHigh),
		Normal: c.SizeOf(PriorityNormal),
		Low:    c.SizeOf(PriorityLow),
		Total:  c.Len(),
	}
}
