package catalog

import (
	"failmsg/pkg/message"
)

// Factory holds one failure: a condition's template and the values to plug
// into it, plus an optional diagnostic tail.
type Factory struct {
	condition string
	template  message.Template
	args      []any
	diff      string
	err       error
}

// Condition returns the name of the condition the factory was built for.
func (f Factory) Condition() string { return f.condition }

// Template returns the template the factory composes.
func (f Factory) Template() message.Template { return f.template }

// Args returns a copy of the bound values.
func (f Factory) Args() []any { return append([]any(nil), f.args...) }

// Diff returns the diagnostic tail, if any.
func (f Factory) Diff() string { return f.diff }

// WithDiff returns a copy of f with tail appended verbatim after the message.
func (f Factory) WithDiff(tail string) Factory {
	f.diff = tail
	return f
}

// Create composes the failure message. A nil formatter uses
// message.Standard. Defects in the condition or its template are returned as
// errors, never as messages.
func (f Factory) Create(d message.Description, fm *message.Formatter) (message.ErrorMessage, error) {
	if f.err != nil {
		return "", f.err
	}
	if fm == nil {
		fm = message.Standard()
	}
	return fm.Compose(message.Composition{
		Template:    f.template,
		Args:        f.args,
		Description: d,
		Diff:        f.diff,
	})
}

// Detail is an optional piece of information that selects between the two
// variants of a condition (for example a cause that may or may not exist).
type Detail struct {
	value   any
	present bool
}

// Some returns a present Detail holding v. v may itself be nil.
func Some(v any) Detail { return Detail{value: v, present: true} }

// None returns an absent Detail.
func None() Detail { return Detail{} }

// Present reports whether the detail holds a value.
func (d Detail) Present() bool { return d.present }

// Value returns the held value, or nil when absent.
func (d Detail) Value() any { return d.value }

// bind builds a factory for a builtin condition. Constructor bugs surface as
// defects from Create.
func bind(name string, args ...any) Factory {
	f, err := builtin.New(name, args...)
	if err != nil {
		return Factory{condition: name, err: err}
	}
	return f
}
