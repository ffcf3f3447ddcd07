// Package canon computes canonical atom ranks by iterative partition
// refinement and regenerates canonical SMILES text from them.  Any two
// graph-isomorphic molecules, regardless of input atom order or Kekulé
// versus aromatic spelling, produce byte-identical canonical text.
package canon

import (
	"sort"

	"github.com/turtacn/ChemGraph-Engine/internal/chem/mol"
	"github.com/turtacn/ChemGraph-Engine/internal/chem/ring"
)

// Ranks assigns every atom a dense canonical rank forming a total order.
//
// The initial invariant per atom is (atomic number, charge, isotope, degree,
// aromatic flag, ring membership count, hydrogen count).  Each refinement
// round replaces an atom's invariant with (previous rank, sorted neighbor
// ranks) and re-partitions; refinement stops when the partition is stable or
// after 2·n rounds.  Ties remaining inside a class are broken by original
// parse-order identity.
func Ranks(m *mol.Molecule) []int {
	n := m.NumAtoms()
	if n == 0 {
		return nil
	}

	rings, atomAromatic := ring.Aromatize(m)
	ringCounts := ring.MembershipCounts(m, rings)

	// Initial partition from local invariants.
	initial := make([][]int, n)
	for i := range m.Atoms {
		a := &m.Atoms[i]
		arom := 0
		if atomAromatic[i] {
			arom = 1
		}
		initial[i] = []int{a.AtomicNumber, a.Charge, a.Isotope, m.Degree(i), arom, ringCounts[i], a.Hydrogens}
	}
	ranks := densify(initial)

	// Neighborhood refinement.
	for round := 0; round < 2*n; round++ {
		keys := make([][]int, n)
		for i := 0; i < n; i++ {
			nb := m.Neighbors(i)
			nbRanks := make([]int, len(nb))
			for k, v := range nb {
				nbRanks[k] = ranks[v]
			}
			sort.Ints(nbRanks)
			keys[i] = append([]int{ranks[i]}, nbRanks...)
		}
		next := densify(keys)
		if equalInts(next, ranks) {
			break
		}
		ranks = next
	}

	// Total order: remaining ties broken by parse-order identity.
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool {
		if ranks[order[x]] != ranks[order[y]] {
			return ranks[order[x]] < ranks[order[y]]
		}
		return order[x] < order[y]
	})
	final := make([]int, n)
	for pos, atom := range order {
		final[atom] = pos
	}
	return final
}

// densify maps arbitrary invariant keys to dense ranks 0..k-1 preserving the
// lexicographic key order.
func densify(keys [][]int) []int {
	n := len(keys)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool {
		return lessInts(keys[order[x]], keys[order[y]])
	})
	ranks := make([]int, n)
	rank := 0
	for pos, atom := range order {
		if pos > 0 && !equalInts(keys[order[pos-1]], keys[atom]) {
			rank++
		}
		ranks[atom] = rank
	}
	return ranks
}

func lessInts(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
