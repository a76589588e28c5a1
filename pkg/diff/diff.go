// Package diff computes the diagnostic tails attached to failure messages:
// line deltas between two texts and structural differences between values.
//
// The output of this package is meant to be appended verbatim to a composed
// message (see message.ComposeWithDiff); it is never run through template
// substitution.
package diff

import (
	"fmt"
	"reflect"
	"strings"

	"failmsg/pkg/represent"

	"github.com/google/go-cmp/cmp"
)

// Kind classifies a Delta.
type Kind int

const (
	// Changed lines differ between expected and actual.
	Changed Kind = iota
	// Missing lines are in expected only.
	Missing
	// Extra lines are in actual only.
	Extra
)

func (k Kind) String() string {
	switch k {
	case Changed:
		return "changed"
	case Missing:
		return "missing"
	case Extra:
		return "extra"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Delta is a run of consecutive differing lines.
type Delta struct {
	Kind Kind
	// Line is the 1-based position in the expected text where the run starts.
	Line     int
	Expected []string
	Actual   []string
}

// Render formats d for a failure message, rendering lines with r.
func (d Delta) Render(r *represent.Representer) string {
	switch d.Kind {
	case Missing:
		return fmt.Sprintf("Missing content at line %d:\n  %s\n", d.Line, formatLines(r, d.Expected))
	case Extra:
		return fmt.Sprintf("Extra content at line %d:\n  %s\n", d.Line, formatLines(r, d.Actual))
	}
	return fmt.Sprintf("Changed content at line %d:\nexpecting:\n  %s\nbut was:\n  %s\n",
		d.Line, formatLines(r, d.Expected), formatLines(r, d.Actual))
}

// formatLines renders lines one per row so that long texts stay readable
// whatever the representer's line width.
func formatLines(r *represent.Representer, lines []string) string {
	parts := make([]string, len(lines))
	for i, line := range lines {
		parts[i] = r.Represent(line)
	}
	return "[" + strings.Join(parts, ",\n   ") + "]"
}

// Text splits expected and actual into lines and returns their deltas.
func Text(expected, actual string) []Delta {
	return Lines(splitLines(expected), splitLines(actual))
}

// Lines returns the deltas between expected and actual, in expected order.
// Equal inputs have no deltas.
func Lines(expected, actual []string) []Delta {
	// go-cmp reports a nil slice as a whole rather than element by element.
	if expected == nil {
		expected = []string{}
	}
	if actual == nil {
		actual = []string{}
	}
	rep := &lineReporter{}
	if cmp.Equal(expected, actual, cmp.Reporter(rep)) {
		return nil
	}
	return rep.deltas()
}

// Report renders deltas, separated by blank lines.
func Report(deltas []Delta, r *represent.Representer) string {
	if r == nil {
		r = represent.Standard()
	}
	parts := make([]string, len(deltas))
	for i, d := range deltas {
		parts[i] = d.Render(r)
	}
	return strings.Join(parts, "\n")
}

// Values returns the structural difference between expected and actual in
// go-cmp's (-expected +actual) notation, or "" when they are equal. Unexported
// fields are compared. A comparison that panics yields "".
func Values(expected, actual any, opts ...cmp.Option) (out string) {
	defer func() {
		if p := recover(); p != nil {
			out = ""
		}
	}()
	opts = append([]cmp.Option{cmp.Exporter(func(reflect.Type) bool { return true })}, opts...)
	return cmp.Diff(expected, actual, opts...)
}

// Tail formats a structural difference as a diagnostic tail, or "" when there
// is none.
func Tail(d string) string {
	if d == "" {
		return ""
	}
	return "\nDiff (-expected +actual):\n" + strings.TrimRight(d, "\n")
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
