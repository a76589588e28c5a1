package represent

import (
	"container/heap"
	"math"
	"reflect"
	"sort"
)

type mapEntry struct {
	key   reflect.Value
	value reflect.Value
	text  string
}

// keyLess orders two map keys.
type keyLess func(a, b reflect.Value) bool

// keyOrder returns the natural order of the keys of map v, or nil when they
// have none. Interface keys are ordered when every dynamic key falls in the
// same ordered class.
func keyOrder(v reflect.Value) keyLess {
	kt := v.Type().Key()
	if kt.Kind() != reflect.Interface {
		return lessFor(classOf(kt.Kind()))
	}
	class := unorderedKeys
	iter := v.MapRange()
	for iter.Next() {
		k := iter.Key()
		if k.IsNil() {
			return nil
		}
		c := classOf(k.Elem().Kind())
		if c == unorderedKeys || (class != unorderedKeys && c != class) {
			return nil
		}
		class = c
	}
	less := lessFor(class)
	if less == nil {
		return nil
	}
	return func(a, b reflect.Value) bool { return less(a.Elem(), b.Elem()) }
}

type keyClass int

const (
	unorderedKeys keyClass = iota
	signedKeys
	unsignedKeys
	floatKeys
	stringKeys
	boolKeys
)

func classOf(k reflect.Kind) keyClass {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return signedKeys
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return unsignedKeys
	case reflect.Float32, reflect.Float64:
		return floatKeys
	case reflect.String:
		return stringKeys
	case reflect.Bool:
		return boolKeys
	}
	return unorderedKeys
}

func lessFor(c keyClass) keyLess {
	switch c {
	case signedKeys:
		return func(a, b reflect.Value) bool { return a.Int() < b.Int() }
	case unsignedKeys:
		return func(a, b reflect.Value) bool { return a.Uint() < b.Uint() }
	case floatKeys:
		// NaN sorts last.
		return func(a, b reflect.Value) bool {
			x, y := a.Float(), b.Float()
			return x < y || (math.IsNaN(y) && !math.IsNaN(x))
		}
	case stringKeys:
		return func(a, b reflect.Value) bool { return a.String() < b.String() }
	case boolKeys:
		return func(a, b reflect.Value) bool { return !a.Bool() && b.Bool() }
	}
	return nil
}

// keyHeap is a max-heap of entries: the largest kept key is on top.
type keyHeap struct {
	entries []mapEntry
	less    keyLess
}

func (h *keyHeap) Len() int           { return len(h.entries) }
func (h *keyHeap) Less(i, j int) bool { return h.less(h.entries[j].key, h.entries[i].key) }
func (h *keyHeap) Swap(i, j int)      { h.entries[i], h.entries[j] = h.entries[j], h.entries[i] }
func (h *keyHeap) Push(x any)         { h.entries = append(h.entries, x.(mapEntry)) }

func (h *keyHeap) Pop() any {
	last := h.entries[len(h.entries)-1]
	h.entries = h.entries[:len(h.entries)-1]
	return last
}

// smallestKeys returns the limit smallest entries of map v in ascending key
// order. Keys are compared in place and copied only when kept.
func smallestKeys(v reflect.Value, limit int, less keyLess) []mapEntry {
	h := &keyHeap{entries: make([]mapEntry, 0, min(limit, v.Len())), less: less}

	// SetIterKey refuses maps read through unexported fields.
	var scratch reflect.Value
	if v.CanInterface() && v.Type().Key().Kind() != reflect.Interface {
		scratch = reflect.New(v.Type().Key()).Elem()
	}

	iter := v.MapRange()
	for iter.Next() {
		key := scratch
		if key.IsValid() {
			key.SetIterKey(iter)
		} else {
			key = iter.Key()
		}
		if h.Len() == limit && !less(key, h.entries[0].key) {
			continue
		}
		if scratch.IsValid() {
			key = iter.Key()
		}
		entry := mapEntry{key: key, value: iter.Value()}
		if h.Len() < limit {
			heap.Push(h, entry)
			continue
		}
		h.entries[0] = entry
		heap.Fix(h, 0)
	}

	sort.Slice(h.entries, func(i, j int) bool { return less(h.entries[i].key, h.entries[j].key) })
	return h.entries
}
