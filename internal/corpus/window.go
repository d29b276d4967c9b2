package corpus

// Window selects a contiguous range of the cleaned corpus: Limit items
// starting at Start.
type Window struct {
	Start int
	Limit int
}

// Apply returns the part of lines covered by w. It never fails: a start past
// the end or a non-positive limit yields an empty slice, and a limit larger
// than what remains yields everything from Start on. A negative Start is
// treated as 0.
func (w Window) Apply(lines []string) []string {
	start := w.Start
	if start < 0 {
		start = 0
	}
	if w.Limit <= 0 || start >= len(lines) {
		return nil
	}

	end := len(lines)
	if remaining := len(lines) - start; w.Limit < remaining {
		end = start + w.Limit
	}
	return lines[start:end]
}

// Offset is the cleaned-list index of the first item Apply returns.
func (w Window) Offset() int {
	if w.Start < 0 {
		return 0
	}
	return w.Start
}
