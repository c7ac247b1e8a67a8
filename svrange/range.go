// Package svrange implements the signed inclusive range used throughout
// structural Verilog to describe vector bit widths, such as `[7:0]`.
package svrange

import "math"

// sentinel is the value used for both ends of an empty Range.
const sentinel = math.MaxInt

// Range is a signed inclusive range `[Left, Right]` (or `[Right, Left]`,
// depending on order). Verilog vectors can be declared big-endian or
// little-endian (`[7:0]` vs `[0:7]`), so direction is not normalized away:
// it is inferred from which of Left/Right is larger.
//
// The zero value is NOT empty; use Empty() for that.
type Range struct {
	Left, Right int
}

// Empty returns the sentinel empty range.
func Empty() Range {
	return Range{sentinel, sentinel}
}

// IsEmpty reports whether r is the empty sentinel.
func (r Range) IsEmpty() bool {
	return r == Empty()
}

// Len returns the number of integers the range spans.
func (r Range) Len() int {
	if r.IsEmpty() {
		return 0
	}
	l, h := r.Left, r.Right
	if l > h {
		l, h = h, l
	}
	return h + 1 - l
}

// Iter returns the inclusive sequence of integers from Left to Right
// (in whichever direction that implies), or no values for Empty().
func (r Range) Iter(yield func(int) bool) {
	if r.IsEmpty() {
		return
	}
	cur := r.Left
	for {
		if !yield(cur) {
			return
		}
		switch {
		case cur < r.Right:
			cur++
		case cur > r.Right:
			cur--
		default:
			return
		}
	}
}

// Slice materializes Iter into a slice. Prefer Iter for hot paths.
func (r Range) Slice() []int {
	out := make([]int, 0, r.Len())
	r.Iter(func(v int) bool {
		out = append(out, v)
		return true
	})
	return out
}
