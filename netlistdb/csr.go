package netlistdb

// CSR is a compressed-sparse-row adjacency: Items[Start[k]:Start[k+1]] is
// the set of item indices belonging to set k. Both fields are exposed
// directly since the whole point of the format, per the database's
// external interface, is that callers walk it without an accessor.
type CSR struct {
	Start []int
	Items []int
}

// buildCSR inverts an item->set assignment (inset[i] is the set id of item
// i, for i in [0, len(inset))) into a CSR over numSets sets, using a
// counting sort so the whole operation is O(numItems + numSets).
//
// The sort is stable: within a set, items appear in ascending original-
// index order, a side effect of walking `inset` in reverse while placing
// each item at the highest still-free slot in its set's block.
func buildCSR(numSets int, inset []int) CSR {
	numItems := len(inset)
	start := make([]int, numSets+1)
	for _, s := range inset {
		start[s+1]++
	}
	for k := 0; k < numSets; k++ {
		start[k+1] += start[k]
	}

	items := make([]int, numItems)
	cursor := make([]int, numSets+1)
	copy(cursor, start)
	for i := numItems - 1; i >= 0; i-- {
		s := inset[i]
		cursor[s+1]--
		items[cursor[s+1]] = i
	}

	return CSR{Start: start, Items: items}
}

// Set returns the item indices belonging to set k.
func (c CSR) Set(k int) []int {
	return c.Items[c.Start[k]:c.Start[k+1]]
}

// Len returns the number of items belonging to set k.
func (c CSR) Len(k int) int {
	return c.Start[k+1] - c.Start[k]
}

// NumSets returns how many sets this CSR was built over.
func (c CSR) NumSets() int {
	return len(c.Start) - 1
}
