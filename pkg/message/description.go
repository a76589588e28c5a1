package message

import "fmt"

// Description labels a failure. It is resolved when the message is composed,
// not when the template is built.
type Description interface {
	Describe() string
}

// Text is a fixed description.
type Text string

func (t Text) Describe() string { return string(t) }

// Lazy is a description computed only when a message is composed.
type Lazy func() string

func (l Lazy) Describe() string {
	if l == nil {
		return ""
	}
	return l()
}

type textf struct {
	format string
	args   []any
}

func (t textf) Describe() string { return fmt.Sprintf(t.format, t.args...) }

// Textf returns a description formatted with fmt.Sprintf at composition time.
func Textf(format string, args ...any) Description {
	return textf{format: format, args: args}
}

// describe resolves d into the "[description] " prefix, or "" when d is absent
// or empty.
func describe(d Description) string {
	if d == nil {
		return ""
	}
	text := d.Describe()
	if text == "" {
		return ""
	}
	return "[" + text + "] "
}
