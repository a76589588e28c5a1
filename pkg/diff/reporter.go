package diff

import "github.com/google/go-cmp/cmp"

// step is one element of the edit script go-cmp computes for two slices.
// x and y are -1 when the element exists on one side only.
type step struct {
	x, y     int
	equal    bool
	expected string
	actual   string
}

// lineReporter records the element-level edit script of a []string
// comparison.
type lineReporter struct {
	path  cmp.Path
	steps []step
}

func (r *lineReporter) PushStep(ps cmp.PathStep) {
	r.path = append(r.path, ps)
}

func (r *lineReporter) Report(rs cmp.Result) {
	if len(r.path) != 2 {
		return
	}
	si, ok := r.path.Last().(cmp.SliceIndex)
	if !ok {
		return
	}
	ix, iy := si.SplitKeys()
	vx, vy := si.Values()
	st := step{x: ix, y: iy, equal: rs.Equal()}
	if vx.IsValid() {
		st.expected = vx.String()
	}
	if vy.IsValid() {
		st.actual = vy.String()
	}
	r.steps = append(r.steps, st)
}

func (r *lineReporter) PopStep() {
	r.path = r.path[:len(r.path)-1]
}

// deltas groups consecutive non-equal steps into runs.
func (r *lineReporter) deltas() []Delta {
	var out []Delta
	var cur *Delta
	nextX := 0
	flush := func() {
		if cur == nil {
			return
		}
		switch {
		case len(cur.Actual) == 0:
			cur.Kind = Missing
		case len(cur.Expected) == 0:
			cur.Kind = Extra
		default:
			cur.Kind = Changed
		}
		out = append(out, *cur)
		cur = nil
	}

	for _, st := range r.steps {
		if st.equal {
			flush()
			nextX = st.x + 1
			continue
		}
		if cur == nil {
			cur = &Delta{Line: nextX + 1}
		}
		if st.x >= 0 {
			cur.Expected = append(cur.Expected, st.expected)
			nextX = st.x + 1
		}
		if st.y >= 0 {
			cur.Actual = append(cur.Actual, st.actual)
		}
	}
	flush()
	return out
}
