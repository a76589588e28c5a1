package represent

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	singleLineSeparator = ", "
	multiLineSeparator  = ",\n"
	multiLineIndent     = "    "
)

// span returns how many leading and trailing elements of an n-element group
// are displayed under the element cap. When keepTail is false only the head
// is kept.
func span(n, limit int, keepTail bool) (head, tail int) {
	if n <= limit {
		return n, 0
	}
	if !keepTail {
		return limit, 0
	}
	return (limit + 1) / 2, limit / 2
}

// group renders the displayed elements of an n-element group between start and
// end. Elided elements are replaced by a single "..." entry, which also ends
// the group once the output budget is spent. The group is laid out on one
// line when it fits the line width, otherwise one element per line with a
// four space indent.
func (s *state) group(start, end string, n int, keepTail bool, elem func(i int) string) string {
	head, tail := span(n, s.r.maxElements, keepTail)
	s.remaining -= len(start) + len(end)
	items := make([]string, 0, head+tail+1)
	add := func(i int) bool {
		if s.spent() {
			return false
		}
		s.remaining -= len(singleLineSeparator)
		items = append(items, elem(i))
		return true
	}

	whole := true
	for i := 0; i < head && whole; i++ {
		whole = add(i)
	}
	if !whole || head+tail < n {
		items = append(items, elision)
	}
	for i := n - tail; i < n && whole; i++ {
		whole = add(i)
	}

	single := start + strings.Join(items, singleLineSeparator) + end
	if len(items) < 2 || fitsOnLine(single, s.r.maxLineWidth) {
		return single
	}
	return start + strings.Join(items, multiLineSeparator+multiLineIndent) + end
}

func fitsOnLine(s string, width int) bool {
	return !strings.Contains(s, "\n") && runewidth.StringWidth(s) <= width
}
