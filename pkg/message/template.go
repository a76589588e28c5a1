package message

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"failmsg/pkg/errx"
)

// Template is a failure message template. See the package documentation for
// the directive syntax.
type Template string

const directiveMarker = '%'

// Directive characters following the marker.
const (
	newlineDirective = 'n'
	valueDirective   = 's'
	percentDirective = '%'
)

// Arity returns the number of value directives in t. A malformed template is a
// template defect.
func (t Template) Arity() (int, error) {
	n := 0
	err := t.scan(func(text string) {}, func() {}, func() { n++ })
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Validate reports whether t is well formed and takes exactly args values.
func (t Template) Validate(args int) error {
	n, err := t.Arity()
	if err != nil {
		return err
	}
	if n != args {
		return arityMismatch(t, n, args)
	}
	return nil
}

// scan walks t once, calling text for literal runs (including the result of
// %%), newline for %n and value for %s.
func (t Template) scan(text func(string), newline, value func()) error {
	s := string(t)
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] != directiveMarker {
			continue
		}
		if i+1 >= len(s) {
			return errx.Template("template ends with a dangling %").
				WithContext("template", s).
				WithContext("offset", i)
		}
		if start < i {
			text(s[start:i])
		}
		switch s[i+1] {
		case newlineDirective:
			newline()
		case valueDirective:
			value()
		case percentDirective:
			text("%")
		default:
			r, _ := utf8.DecodeRuneInString(s[i+1:])
			return errx.Template(fmt.Sprintf("unknown directive %%%c at offset %d", r, i)).
				WithContext("template", s).
				WithContext("offset", i)
		}
		i++
		start = i + 1
	}
	if start < len(s) {
		text(s[start:])
	}
	return nil
}

func arityMismatch(t Template, directives, args int) error {
	return errx.Template(fmt.Sprintf("template expects %d arguments, got %d", directives, args)).
		WithContext("template", string(t)).
		WithContext("directives", directives).
		WithContext("args", args)
}

// EscapePercent doubles every percent sign in s so that it can be embedded in
// a template as literal text.
func EscapePercent(s string) string {
	return strings.ReplaceAll(s, "%", "%%")
}
