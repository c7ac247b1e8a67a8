// Package hiername implements the persistent, reverse-linked hierarchical
// name chain used to key every cell, net, and pin in a flattened netlist.
//
// Sibling cell instances under the same parent share the same immutable
// prefix node, so memory grows with the number of *nodes* in the module
// tree, not with the number of distinct hierarchical paths.
package hiername

import "strings"

// Name is an immutable path of identifiers from the top module toward a
// leaf cell, represented as a reverse-linked chain: Cur is the deepest
// segment, Prev points at everything above it.
//
// Two Names are value-equal iff they enumerate the same top-to-leaf
// identifier sequence; this is independent of how the chain happens to be
// built; see Key.
type Name struct {
	Cur  string
	Prev *Name
}

// Empty is the hierarchy root: the synthetic top-level cell.
var Empty = Name{}

// IsEmpty reports whether n is the root (no segments at all).
func (n Name) IsEmpty() bool {
	return n.Prev == nil && n.Cur == ""
}

// Single builds a one-segment Name.
func Single(cur string) Name {
	return Name{Cur: cur}
}

// Child extends n with one more path segment toward a leaf.
func (n Name) Child(cur string) Name {
	if n.IsEmpty() {
		return Name{Cur: cur}
	}
	prev := n
	return Name{Cur: cur, Prev: &prev}
}

// FromTopDown builds a Name from a top-to-leaf ordered sequence of
// identifiers, e.g. FromTopDown("abc", "def") is the path abc/def.
func FromTopDown(idents ...string) Name {
	ret := Empty
	for _, ident := range idents {
		ret = ret.Child(ident)
	}
	return ret
}

// Segments returns the identifier chain from leaf to root (bottom-up),
// i.e. the reverse of the top-down declaration order.
func (n Name) Segments() []string {
	if n.IsEmpty() {
		return nil
	}
	out := make([]string, 0, 4)
	for cur := &n; cur != nil && cur.Cur != ""; cur = cur.Prev {
		out = append(out, cur.Cur)
	}
	return out
}

// Key returns a canonical string that is equal for any two Name values
// enumerating the same identifier sequence, regardless of how the
// reverse-linked chain backing either value was constructed. This is the
// hash/equality contract that spec section 3 calls out: "Hash of any
// hierarchical name is independent of which chain representation is
// used." Go maps need comparable/hashable keys, so rather than mimicking
// Rust's Hash-trait-object unification trick, every Name exposes this
// join (recomputed on each call) as its map key.
func (n Name) Key() string {
	if n.IsEmpty() {
		return ""
	}
	segs := n.Segments()
	// segs is leaf-to-root; the canonical key is written top-to-leaf order
	// so that two names sharing a prefix also share a key prefix.
	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}
	return strings.Join(segs, "/")
}

// String renders the name top-to-leaf, e.g. "top/mod1/leaf1".
func (n Name) String() string {
	return n.Key()
}

// Depth returns the number of path segments (0 for the root).
func (n Name) Depth() int {
	d := 0
	for cur := &n; cur != nil && cur.Cur != ""; cur = cur.Prev {
		d++
	}
	return d
}
