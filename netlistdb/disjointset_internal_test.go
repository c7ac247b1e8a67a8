package netlistdb

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("disjointSet.finalize", func() {
	It("orders set ids by node index among self-parent roots, not by first touch", func() {
		d := newDisjointSet(4)
		d.grow(3)
		// merge(0, 3): root of 0 reparents under root of 3, so find(0) == 3.
		d.merge(0, 3)
		// merge(1, 2): root of 1 reparents under root of 2, so find(1) == 2.
		d.merge(1, 2)
		// Node 3 is the first (and only) node tied to zero, and it is a
		// root whose own index (3) is higher than the other set's root
		// (2). A first-touch scan over i=0..3 would see root 3 before
		// root 2 (since find(0)==3 is visited at i==0) and assign it set
		// id 0; ordering by root node index instead puts root 2 (visited
		// as its own root at i==2) ahead of root 3 (i==3).
		d.setValue(3, false)

		numSets, nodeSet, zeroSet, oneSet, ok := d.finalize(4)
		Expect(ok).To(BeTrue())
		Expect(numSets).To(Equal(2))
		Expect(oneSet).To(Equal(-1))

		Expect(nodeSet[2]).To(Equal(0))
		Expect(nodeSet[1]).To(Equal(0))
		Expect(nodeSet[3]).To(Equal(1))
		Expect(nodeSet[0]).To(Equal(1))
		Expect(zeroSet).To(Equal(1))
	})
})
