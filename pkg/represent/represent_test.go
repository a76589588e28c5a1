package represent

import (
	"errors"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"failmsg/pkg/errx"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type point struct {
	X, Y int
}

type secret struct {
	name string
	pin  int
}

type node struct {
	Name string
	Next *node
}

type panicky struct{}

func (panicky) String() string { panic("boom") }

type level int

func (l level) String() string { return "level-" + string(rune('0'+int(l))) }

func newRepresenter(t *testing.T, opts ...Option) *Representer {
	t.Helper()
	r, err := New(opts...)
	require.NoError(t, err)
	return r
}

func TestRepresent_Scalars(t *testing.T) {
	var nilPtr *int
	var nilMap map[string]int
	var nilSlice []int
	var nilErr error

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"nil", nil, "null"},
		{"typed nil pointer", nilPtr, "null"},
		{"typed nil map", nilMap, "null"},
		{"typed nil slice", nilSlice, "null"},
		{"nil error", nilErr, "null"},
		{"string", "abc", `"abc"`},
		{"empty string", "", `""`},
		{"unquoted", Unquoted("a phrase"), "a phrase"},
		{"int", 42, "42"},
		{"negative int", int8(-3), "-3"},
		{"uint", uint8(7), "7"},
		{"bool", true, "true"},
		{"float", 1.5, "1.5"},
		{"float32", float32(0.1), "0.1"},
		{"nan", math.NaN(), "NaN"},
		{"positive infinity", math.Inf(1), "+Inf"},
		{"negative infinity", math.Inf(-1), "-Inf"},
		{"complex", complex(1, 2), "(1+2i)"},
		{"error", errors.New("boom"), "boom"},
		{"duration", 1500 * time.Millisecond, "1.5s"},
		{"time", time.Date(2024, 1, 2, 3, 4, 5, 6000000, time.UTC), "2024-01-02T03:04:05.006Z"},
		{"stringer", level(3), "level-3"},
		{"func", func() {}, "func()"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Represent(tt.value); got != tt.want {
				t.Errorf("Represent(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestRepresent_Composites(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"int slice", []int{1, 2, 3}, "[1, 2, 3]"},
		{"string slice", []string{"a", "b"}, `["a", "b"]`},
		{"empty slice", []int{}, "[]"},
		{"array", [2]bool{true, false}, "[true, false]"},
		{"bytes", []byte{1, 2}, "[1, 2]"},
		{"nested", [][]int{{1}, {2, 3}}, "[[1], [2, 3]]"},
		{"mixed", []any{"a", 1, nil}, `["a", 1, null]`},
		{"map sorted by key", map[string]int{"b": 2, "a": 1}, `{"a"=1, "b"=2}`},
		{"empty map", map[int]int{}, "{}"},
		{"int keys in numeric order", map[int]int{10: 10, 2: 2, 0: 0, 1: 1, -1: -1}, "{-1=-1, 0=0, 1=1, 2=2, 10=10}"},
		{"uint keys in numeric order", map[uint8]bool{20: true, 3: false}, "{3=false, 20=true}"},
		{"float keys with NaN last", map[float64]int{math.NaN(): 0, 2.5: 1, -1: 2}, "{-1=2, 2.5=1, NaN=0}"},
		{"bool keys", map[bool]int{true: 1, false: 0}, "{false=0, true=1}"},
		{"interface keys of one kind", map[any]string{10: "b", 9: "a"}, `{9="a", 10="b"}`},
		{"mixed interface keys sort by text", map[any]int{1: 1, "a": 2}, `{"a"=2, 1=1}`},
		{"array keys sort by text", map[[2]int]string{{1, 2}: "x", {0, 5}: "y"}, `{[0, 5]="y", [1, 2]="x"}`},
		{"struct", point{X: 1, Y: 2}, "point{X=1, Y=2}"},
		{"struct pointer", &point{X: 1, Y: 2}, "point{X=1, Y=2}"},
		{"unexported fields", secret{name: "x", pin: 4}, `secret{name="x", pin=4}`},
		{"anonymous struct", struct{ A int }{A: 1}, "struct{A=1}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Represent(tt.value); got != tt.want {
				t.Errorf("Represent(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestRepresent_Quoting(t *testing.T) {
	tests := []struct {
		quoting Quoting
		value   any
		want    string
	}{
		{QuoteDouble, "a\tb", "\"a\tb\""},
		{QuoteNone, "abc", "abc"},
		{QuoteNone, []string{"abc", "x"}, "[abc, x]"},
		{QuoteEscaped, "a\tb", `"a\tb"`},
		{QuoteEscaped, Unquoted("as is"), "as is"},
	}

	for _, tt := range tests {
		t.Run(tt.quoting.String(), func(t *testing.T) {
			r := newRepresenter(t, WithQuoting(tt.quoting))
			if got := r.Represent(tt.value); got != tt.want {
				t.Errorf("Represent(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestParseQuoting(t *testing.T) {
	for _, name := range []string{"double", "none", "escaped"} {
		q, err := ParseQuoting(name)
		require.NoError(t, err)
		assert.Equal(t, name, q.String())
	}

	q, err := ParseQuoting(" NONE ")
	require.NoError(t, err)
	assert.Equal(t, QuoteNone, q)

	_, err = ParseQuoting("single")
	require.Error(t, err)
	assert.True(t, errx.IsDefect(err))
	assert.Equal(t, "Quoting(7)", Quoting(7).String())
}

func TestRepresent_Cycles(t *testing.T) {
	t.Run("slice containing itself", func(t *testing.T) {
		s := []any{1, nil}
		s[1] = s
		assert.Equal(t, "[1, (this collection)]", Represent(s))
	})

	t.Run("map containing itself", func(t *testing.T) {
		m := map[string]any{}
		m["self"] = m
		assert.Equal(t, `{"self"=(this collection)}`, Represent(m))
	})

	t.Run("struct referring to itself", func(t *testing.T) {
		n := &node{Name: "a"}
		n.Next = n
		assert.Equal(t, `node{Name="a", Next=(this instance)}`, Represent(n))
	})

	t.Run("two node cycle", func(t *testing.T) {
		a := &node{Name: "a"}
		b := &node{Name: "b", Next: a}
		a.Next = b
		assert.Equal(t, `node{Name="a", Next=node{Name="b", Next=(this instance)}}`, Represent(a))
	})

	t.Run("shared reference is not a cycle", func(t *testing.T) {
		inner := []int{1}
		assert.Equal(t, "[[1], [1]]", Represent([]any{inner, inner}))
	})

	t.Run("pointer to itself", func(t *testing.T) {
		p := new(any)
		*p = p
		assert.Equal(t, "(this instance)", Represent(p))
	})
}

func TestRepresent_Elision(t *testing.T) {
	ten := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	tests := []struct {
		name  string
		max   int
		value any
		want  string
	}{
		{"even cap keeps head and tail", 4, ten, "[1, 2, ..., 9, 10]"},
		{"odd cap keeps one more head element", 5, ten, "[1, 2, 3, ..., 9, 10]"},
		{"under cap", 10, ten, "[1, 2, 3, 4, 5, 6, 7, 8, 9, 10]"},
		{"map keeps head only", 2, map[string]int{"a": 1, "b": 2, "c": 3}, `{"a"=1, "b"=2, ...}`},
		{"cap of one", 1, []int{1, 2, 3}, "[1, ...]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRepresenter(t, WithMaxElements(tt.max))
			if got := r.Represent(tt.value); got != tt.want {
				t.Errorf("Represent(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestRepresent_LargeMapWithSmallCap(t *testing.T) {
	m := make(map[int]int, 100000)
	for i := 0; i < 100000; i++ {
		m[i] = i
	}
	r := newRepresenter(t, WithMaxElements(3))

	var out string
	allocs := testing.AllocsPerRun(1, func() { out = r.Represent(m) })
	assert.Equal(t, "{0=0, 1=1, 2=2, ...}", out)
	// only the displayed entries are copied and rendered
	assert.Less(t, allocs, float64(1000))
}

func TestRepresent_MapFromUnexportedField(t *testing.T) {
	type holder struct {
		m map[int]string
	}
	r := newRepresenter(t, WithMaxElements(2))
	got := r.Represent(holder{m: map[int]string{3: "c", 1: "a", 2: "b"}})
	assert.Equal(t, `holder{m={1="a", 2="b", ...}}`, got)
}

func TestRepresent_MultiLine(t *testing.T) {
	r := newRepresenter(t, WithMaxLineWidth(10))
	assert.Equal(t, "[\"alpha\",\n    \"beta\"]", r.Represent([]string{"alpha", "beta"}))
	assert.Equal(t, `["alphabetical"]`, r.Represent([]string{"alphabetical"}), "single element stays on one line")

	wide := newRepresenter(t, WithMaxLineWidth(8), WithQuoting(QuoteNone))
	assert.Equal(t, "[日本,\n    語]", wide.Represent([]string{"日本", "語"}), "width is measured in display columns")

	assert.Equal(t, "[1, 2]", Represent([]int{1, 2}))
}

func TestRepresent_DepthCap(t *testing.T) {
	r := newRepresenter(t, WithMaxDepth(2))
	value := []any{1, []any{2, []any{3}}}
	assert.Equal(t, "[1, [2, ...]]", r.Represent(value))

	// a long acyclic chain stays bounded by the depth cap
	head := &node{Name: "0"}
	cur := head
	for i := 0; i < 10000; i++ {
		cur.Next = &node{Name: "n"}
		cur = cur.Next
	}
	out := newRepresenter(t, WithMaxDepth(3)).Represent(head)
	assert.Equal(t, `node{Name="0", Next=node{Name="n", Next=node{Name="n", Next=...}}}`, out)
}

func TestRepresent_LengthCap(t *testing.T) {
	r := newRepresenter(t, WithMaxLength(5), WithQuoting(QuoteNone))
	assert.Equal(t, "abcde... (truncated 5 chars)", r.Represent("abcdefghij"))
	assert.Equal(t, "abcde", r.Represent("abcde"))
	assert.Equal(t, "日本語日本... (truncated 1 chars)", r.Represent("日本語日本語"))
}

func TestRepresent_SharedReferencesStayBounded(t *testing.T) {
	var v any = []int{1}
	for i := 0; i < 24; i++ {
		v = []any{v, v}
	}
	r := newRepresenter(t, WithMaxLength(1000))

	var out string
	allocs := testing.AllocsPerRun(1, func() { out = r.Represent(v) })
	assert.Less(t, allocs, float64(50000))
	assert.True(t, strings.HasPrefix(out, "[[[[[[[[[[[[[[[[[[[[[[[[[1]"), "got %q", out)
	assert.Contains(t, out, elision)
	assert.LessOrEqual(t, len(out), 1000+len("... (truncated)"))

	// the default budget bounds the walk as well
	allocs = testing.AllocsPerRun(1, func() { out = Represent(v) })
	assert.Less(t, allocs, float64(2000000))
	assert.LessOrEqual(t, len(out), DefaultMaxLength+len("... (truncated)"))
}

func TestRepresent_BudgetElidesRemainingElements(t *testing.T) {
	r := newRepresenter(t, WithMaxLength(10))
	assert.Equal(t, "[1, 2, 3, ... (truncated)", r.Represent([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}))

	// a single string is never cut by the budget and keeps the exact count
	assert.Equal(t, "0123456789... (truncated 2 chars)", r.Represent(Unquoted("0123456789ab")))
}

func TestRepresent_PanickingRenderersDoNotEscape(t *testing.T) {
	assert.Equal(t, "(represent.panicky representation failed: boom)", Represent(panicky{}))
	assert.Equal(t, "[1, (represent.panicky representation failed: boom)]", Represent([]any{1, panicky{}}))

	reg := NewRegistry()
	require.NoError(t, RegisterFor(reg, func(point) string { panic("bad renderer") }))
	r := newRepresenter(t, WithRegistry(reg))
	assert.Equal(t, "(represent.point representation failed: bad renderer)", r.Represent(point{}))
}

func TestRepresent_DoesNotMutate(t *testing.T) {
	value := map[string][]int{"a": {3, 1, 2}}
	want := map[string][]int{"a": {3, 1, 2}}
	_ = Represent(value)
	if diff := cmp.Diff(want, value); diff != "" {
		t.Errorf("Represent mutated its input (-want +got):\n%s", diff)
	}
}

func TestNew_InvalidCaps(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
		key  string
	}{
		{"max elements", WithMaxElements(0), "max_elements"},
		{"max line width", WithMaxLineWidth(-1), "max_line_width"},
		{"max depth", WithMaxDepth(0), "max_depth"},
		{"max length", WithMaxLength(0), "max_length"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(tt.opt)
			assert.Nil(t, r)
			require.Error(t, err)
			var e *errx.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, errx.CodeRepresenter, e.Code())
			assert.Contains(t, e.Context(), tt.key)
		})
	}

	_, err := New(WithQuoting(Quoting(9)))
	assert.True(t, errx.IsDefect(err))
}

func TestNew_Defaults(t *testing.T) {
	r := Standard()
	assert.Equal(t, QuoteDouble, r.Quoting())
	assert.Equal(t, DefaultMaxElements, r.MaxElements())
	assert.Equal(t, DefaultMaxLineWidth, r.MaxLineWidth())
	assert.Equal(t, DefaultMaxDepth, r.MaxDepth())
	assert.Equal(t, DefaultMaxLength, r.MaxLength())
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, RegisterFor(reg, func(p point) string { return "P(" + strings.Repeat("*", p.X) + ")" }))
	assert.Equal(t, 1, reg.Len())

	t.Run("conflicting renderer", func(t *testing.T) {
		err := RegisterFor(reg, func(point) string { return "other" })
		require.Error(t, err)
		assert.True(t, errx.IsDefect(err))
		assert.Contains(t, err.Error(), "conflicting renderer for represent.point")
	})

	t.Run("nil renderer", func(t *testing.T) {
		err := RegisterFor[secret](reg, nil)
		assert.True(t, errx.IsDefect(err))
	})

	t.Run("renders registered type", func(t *testing.T) {
		r := newRepresenter(t, WithRegistry(reg))
		assert.Equal(t, "[P(**), P()]", r.Represent([]point{{X: 2}, {}}))
		assert.Equal(t, "point{X=2, Y=0}", Represent(point{X: 2}), "standard representer uses the default registry")
	})

	t.Run("frozen", func(t *testing.T) {
		reg.Freeze()
		assert.True(t, reg.Frozen())
		err := RegisterFor(reg, func(secret) string { return "hidden" })
		require.Error(t, err)
		var e *errx.Error
		require.ErrorAs(t, err, &e)
		assert.Equal(t, errx.CodeRepresenter, e.Code())
		assert.Equal(t, "represent.secret", e.Context()["type"])
	})
}

func TestRepresent_Concurrent(t *testing.T) {
	defer goleak.VerifyNone(t)

	reg := NewRegistry()
	require.NoError(t, RegisterFor(reg, func(p point) string { return "P" }))
	reg.Freeze()
	r := newRepresenter(t, WithRegistry(reg), WithMaxElements(3))

	shared := map[string]any{"points": []point{{}, {}, {}, {}}, "name": "x"}
	want := r.Represent(shared)

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = r.Represent(shared)
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if got != want {
			t.Errorf("results[%d] = %q, want %q", i, got, want)
		}
	}
	assert.Equal(t, `{"name"="x", "points"=[P, P, ..., P]}`, want)
}
