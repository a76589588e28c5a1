package message

import (
	"strings"

	"failmsg/pkg/represent"
)

// ErrorMessage is a composed failure message.
type ErrorMessage string

func (m ErrorMessage) String() string { return string(m) }

// Formatter composes messages with a fixed Representer. The zero value is not
// usable; build one with NewFormatter.
type Formatter struct {
	representer *represent.Representer
}

// NewFormatter returns a Formatter rendering arguments with r, or with
// represent.Standard when r is nil.
func NewFormatter(r *represent.Representer) *Formatter {
	if r == nil {
		r = represent.Standard()
	}
	return &Formatter{representer: r}
}

var standard = NewFormatter(nil)

// Standard returns the Formatter backed by represent.Standard.
func Standard() *Formatter {
	return standard
}

// Representer returns the Representer used for arguments.
func (f *Formatter) Representer() *represent.Representer {
	return f.representer
}

// Format substitutes the directives of t with args and prefixes the
// description. A malformed template or an argument count that does not match
// the template is returned as a template defect.
func (f *Formatter) Format(t Template, d Description, args ...any) (ErrorMessage, error) {
	if err := t.Validate(len(args)); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(describe(d))
	next := 0
	err := t.scan(
		func(text string) { b.WriteString(text) },
		func() { b.WriteByte('\n') },
		func() {
			b.WriteString(f.representer.Represent(args[next]))
			next++
		},
	)
	if err != nil {
		return "", err
	}
	return ErrorMessage(b.String()), nil
}

// MustFormat is like Format but panics on a defect. It is meant for templates
// that are constants of the calling package.
func (f *Formatter) MustFormat(t Template, d Description, args ...any) ErrorMessage {
	m, err := f.Format(t, d, args...)
	if err != nil {
		panic(err)
	}
	return m
}

// ComposeWithDiff formats t and appends diff verbatim. The result always ends
// with diff, whatever it contains.
func (f *Formatter) ComposeWithDiff(t Template, d Description, args []any, diff string) (ErrorMessage, error) {
	m, err := f.Format(t, d, args...)
	if err != nil {
		return "", err
	}
	return m + ErrorMessage(diff), nil
}

// Composition is everything needed to build one failure message.
type Composition struct {
	Template    Template
	Args        []any
	Description Description
	// Diff is raw diagnostic text appended after formatting.
	Diff string
}

// Compose builds the message described by c.
func (f *Formatter) Compose(c Composition) (ErrorMessage, error) {
	return f.ComposeWithDiff(c.Template, c.Description, c.Args, c.Diff)
}

// Format formats t with the standard Formatter.
func Format(t Template, d Description, args ...any) (ErrorMessage, error) {
	return standard.Format(t, d, args...)
}

// MustFormat formats t with the standard Formatter and panics on a defect.
func MustFormat(t Template, d Description, args ...any) ErrorMessage {
	return standard.MustFormat(t, d, args...)
}

// ComposeWithDiff formats t with the standard Formatter and appends diff.
func ComposeWithDiff(t Template, d Description, args []any, diff string) (ErrorMessage, error) {
	return standard.ComposeWithDiff(t, d, args, diff)
}

// Compose builds c with the standard Formatter.
func Compose(c Composition) (ErrorMessage, error) {
	return standard.Compose(c)
}
