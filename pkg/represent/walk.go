package represent

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"time"
)

const (
	nullLiteral          = "null"
	elision              = "..."
	thisCollection       = "(this collection)"
	thisInstance         = "(this instance)"
	timeLayout           = "2006-01-02T15:04:05.000Z07:00"
	anonymousStructLabel = "struct"
)

// identity is a reference value currently being rendered. Slices include
// their length so that a sub-slice of the same backing array is not mistaken
// for its parent.
type identity struct {
	ptr uintptr
	typ reflect.Type
	n   int
}

// state is the per-call walk state. active holds the references on the
// current path only, so shared (non-cyclic) references render once per
// occurrence. remaining is the output budget in bytes: once it is spent no
// group descends further, the rest is elided and cut is set.
type state struct {
	r         *Representer
	active    map[identity]struct{}
	remaining int
	cut       bool
}

func newState(r *Representer) *state {
	return &state{r: r, active: make(map[identity]struct{}), remaining: r.maxLength}
}

// charge spends len(out) bytes of the budget and returns out.
func (s *state) charge(out string) string {
	s.remaining -= len(out)
	return out
}

// spent reports whether the budget is used up, marking the walk as cut.
func (s *state) spent() bool {
	if s.remaining > 0 {
		return false
	}
	s.cut = true
	return true
}

func (s *state) walk(v reflect.Value, depth int) string {
	if !v.IsValid() {
		return s.charge(nullLiteral)
	}
	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return s.charge(nullLiteral)
		}
		return s.walk(v.Elem(), depth)
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		if v.IsNil() {
			return s.charge(nullLiteral)
		}
	}

	if out, ok := s.custom(v); ok {
		return s.charge(out)
	}

	switch v.Kind() {
	case reflect.Pointer:
		return s.pointer(v, depth)
	case reflect.Slice:
		id := identity{ptr: v.Pointer(), typ: v.Type(), n: v.Len()}
		return s.enter(id, thisCollection, func() string { return s.list(v, depth) })
	case reflect.Array:
		return s.list(v, depth)
	case reflect.Map:
		id := identity{ptr: v.Pointer(), typ: v.Type()}
		return s.enter(id, thisCollection, func() string { return s.mapping(v, depth) })
	case reflect.Struct:
		return s.structure(v, depth)
	}
	return s.charge(s.scalar(v))
}

func (s *state) scalar(v reflect.Value) string {
	switch v.Kind() {
	case reflect.String:
		return s.r.quote(v.String())
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32:
		return formatFloat(v.Float(), 32)
	case reflect.Float64:
		return formatFloat(v.Float(), 64)
	case reflect.Complex64:
		return strconv.FormatComplex(v.Complex(), 'g', -1, 64)
	case reflect.Complex128:
		return strconv.FormatComplex(v.Complex(), 'g', -1, 128)
	}
	return v.Type().String()
}

// custom applies registered renderers and the well-known display interfaces.
// Values read from unexported fields cannot be converted back to interfaces
// and always fall through to the kind-based rendering.
func (s *state) custom(v reflect.Value) (string, bool) {
	if !v.CanInterface() {
		return "", false
	}
	if fn, ok := s.r.registry.lookup(v.Type()); ok {
		return guard(v.Type(), func() string { return fn(v.Interface()) }), true
	}
	switch x := v.Interface().(type) {
	case Unquoted:
		return string(x), true
	case time.Time:
		return x.Format(timeLayout), true
	case error:
		return guard(v.Type(), x.Error), true
	case fmt.Stringer:
		return guard(v.Type(), x.String), true
	}
	return "", false
}

func (s *state) pointer(v reflect.Value, depth int) string {
	placeholder := thisInstance
	switch v.Elem().Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		placeholder = thisCollection
	}
	id := identity{ptr: v.Pointer(), typ: v.Type()}
	return s.enter(id, placeholder, func() string { return s.walk(v.Elem(), depth) })
}

func (s *state) enter(id identity, placeholder string, render func() string) string {
	if _, seen := s.active[id]; seen {
		return s.charge(placeholder)
	}
	s.active[id] = struct{}{}
	defer delete(s.active, id)
	return render()
}

// descend reports whether a group at depth may render its elements.
func (s *state) descend(depth int) bool {
	return depth < s.r.maxDepth && !s.spent()
}

func (s *state) list(v reflect.Value, depth int) string {
	if !s.descend(depth) {
		return s.charge(elision)
	}
	return s.group("[", "]", v.Len(), true, func(i int) string {
		return s.walk(v.Index(i), depth+1)
	})
}

// mapping renders entries in key order. Only the displayed keys are
// rendered when the keys have a natural order; other key types are sorted
// by their rendered text.
func (s *state) mapping(v reflect.Value, depth int) string {
	if !s.descend(depth) {
		return s.charge(elision)
	}
	if less := keyOrder(v); less != nil {
		entries := smallestKeys(v, s.r.maxElements, less)
		return s.group("{", "}", v.Len(), false, func(i int) string {
			key := s.walk(entries[i].key, depth+1)
			return key + s.charge("=") + s.walk(entries[i].value, depth+1)
		})
	}
	entries := s.renderKeys(v, depth)
	return s.group("{", "}", len(entries), false, func(i int) string {
		return s.charge(entries[i].text+"=") + s.walk(entries[i].value, depth+1)
	})
}

// renderKeys renders every key of v and sorts the entries by that text.
// Each key is rendered against the current budget, which is restored
// afterwards: keys are charged again when they are displayed.
func (s *state) renderKeys(v reflect.Value, depth int) []mapEntry {
	budget, cut := s.remaining, s.cut
	entries := make([]mapEntry, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		s.remaining = budget
		entries = append(entries, mapEntry{
			key:   iter.Key(),
			value: iter.Value(),
			text:  s.walk(iter.Key(), depth+1),
		})
	}
	s.remaining, s.cut = budget, cut
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].text < entries[j].text })
	return entries
}

func (s *state) structure(v reflect.Value, depth int) string {
	if !s.descend(depth) {
		return s.charge(elision)
	}
	t := v.Type()
	name := t.Name()
	if name == "" {
		name = anonymousStructLabel
	}
	return s.group(name+"{", "}", v.NumField(), true, func(i int) string {
		return s.charge(t.Field(i).Name+"=") + s.walk(v.Field(i), depth+1)
	})
}

func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	}
	return strconv.FormatFloat(f, 'g', -1, bits)
}

func guard(t reflect.Type, fn func() string) (out string) {
	defer func() {
		if p := recover(); p != nil {
			out = failedPlaceholder(t, p)
		}
	}()
	return fn()
}
