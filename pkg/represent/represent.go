package represent

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"failmsg/pkg/errx"
)

// Default caps used by Standard.
const (
	DefaultMaxElements  = 1000
	DefaultMaxLineWidth = 80
	DefaultMaxDepth     = 32
	DefaultMaxLength    = 1 << 16
)

// Quoting selects how string values are rendered.
type Quoting int

const (
	// QuoteDouble wraps strings in double quotes without escaping: "abc".
	QuoteDouble Quoting = iota
	// QuoteNone renders strings as bare text: abc.
	QuoteNone
	// QuoteEscaped renders strings as Go string literals, escaping control characters.
	QuoteEscaped
)

var quotingNames = map[Quoting]string{
	QuoteDouble:  "double",
	QuoteNone:    "none",
	QuoteEscaped: "escaped",
}

func (q Quoting) String() string {
	if name, ok := quotingNames[q]; ok {
		return name
	}
	return "Quoting(" + strconv.Itoa(int(q)) + ")"
}

// ParseQuoting parses the name of a quoting policy ("double", "none", "escaped").
func ParseQuoting(name string) (Quoting, error) {
	for q, n := range quotingNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return q, nil
		}
	}
	return QuoteDouble, errx.Representer(fmt.Sprintf("unknown quoting policy %q", name)).
		WithContext("quoting", name)
}

// Unquoted is a string that is already a human-readable phrase. It is rendered
// verbatim regardless of the quoting policy.
type Unquoted string

// Representer renders values into display strings. It is immutable once built
// and safe for concurrent use as long as its registry is not modified.
type Representer struct {
	quoting      Quoting
	maxElements  int
	maxLineWidth int
	maxDepth     int
	maxLength    int
	registry     *Registry
}

// Option configures a Representer.
type Option func(*Representer)

// WithQuoting sets the string quoting policy.
func WithQuoting(q Quoting) Option {
	return func(r *Representer) { r.quoting = q }
}

// WithMaxElements caps how many elements of a group are displayed.
func WithMaxElements(n int) Option {
	return func(r *Representer) { r.maxElements = n }
}

// WithMaxLineWidth sets the display width above which groups switch to one
// element per line.
func WithMaxLineWidth(n int) Option {
	return func(r *Representer) { r.maxLineWidth = n }
}

// WithMaxDepth caps composite nesting.
func WithMaxDepth(n int) Option {
	return func(r *Representer) { r.maxDepth = n }
}

// WithMaxLength caps the length, in characters, of a single representation.
func WithMaxLength(n int) Option {
	return func(r *Representer) { r.maxLength = n }
}

// WithRegistry sets the registry consulted for type-specific renderers.
func WithRegistry(reg *Registry) Option {
	return func(r *Representer) { r.registry = reg }
}

// New builds a Representer. Caps lower than 1 are representer defects.
func New(opts ...Option) (*Representer, error) {
	r := &Representer{
		quoting:      QuoteDouble,
		maxElements:  DefaultMaxElements,
		maxLineWidth: DefaultMaxLineWidth,
		maxDepth:     DefaultMaxDepth,
		maxLength:    DefaultMaxLength,
		registry:     defaultRegistry,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.registry == nil {
		r.registry = NewRegistry()
	}
	if _, ok := quotingNames[r.quoting]; !ok {
		return nil, errx.Representer(fmt.Sprintf("unknown quoting policy %d", int(r.quoting)))
	}
	caps := []struct {
		name  string
		value int
	}{
		{"max_elements", r.maxElements},
		{"max_line_width", r.maxLineWidth},
		{"max_depth", r.maxDepth},
		{"max_length", r.maxLength},
	}
	for _, c := range caps {
		if c.value < 1 {
			return nil, errx.Representer(fmt.Sprintf("%s must be >= 1, got %d", c.name, c.value)).
				WithContext(c.name, c.value)
		}
	}
	return r, nil
}

var standard = func() *Representer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}()

// Standard returns the shared Representer with default caps, double quoting
// and the default registry.
func Standard() *Representer {
	return standard
}

// Represent renders v with the standard Representer.
func Represent(v any) string {
	return standard.Represent(v)
}

// Quoting returns the string quoting policy.
func (r *Representer) Quoting() Quoting { return r.quoting }

// MaxElements returns the group element cap.
func (r *Representer) MaxElements() int { return r.maxElements }

// MaxLineWidth returns the single-line width threshold.
func (r *Representer) MaxLineWidth() int { return r.maxLineWidth }

// MaxDepth returns the nesting cap.
func (r *Representer) MaxDepth() int { return r.maxDepth }

// MaxLength returns the representation length cap.
func (r *Representer) MaxLength() int { return r.maxLength }

// Represent renders v. It never panics.
func (r *Representer) Represent(v any) (out string) {
	defer func() {
		if p := recover(); p != nil {
			out = failedPlaceholder(reflect.TypeOf(v), p)
		}
	}()
	s := newState(r)
	return r.truncate(s.walk(reflect.ValueOf(v), 0), s.cut)
}

func (r *Representer) quote(s string) string {
	switch r.quoting {
	case QuoteNone:
		return s
	case QuoteEscaped:
		return strconv.Quote(s)
	default:
		return `"` + s + `"`
	}
}

// truncate cuts s to the length cap. A cut walk never rendered its tail, so
// the number of dropped characters is unknown.
func (r *Representer) truncate(s string, cut bool) string {
	if len(s) <= r.maxLength || utf8.RuneCountInString(s) <= r.maxLength {
		return s
	}
	runes := []rune(s)
	if cut {
		return string(runes[:r.maxLength]) + "... (truncated)"
	}
	return string(runes[:r.maxLength]) + fmt.Sprintf("... (truncated %d chars)", len(runes)-r.maxLength)
}

func failedPlaceholder(t reflect.Type, p any) string {
	name := "<nil>"
	if t != nil {
		name = t.String()
	}
	return fmt.Sprintf("(%s representation failed: %v)", name, p)
}
