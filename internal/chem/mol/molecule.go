// Package mol defines the in-memory molecular graph: atoms, bonds, molecules,
// and perceived rings.  A Molecule is constructed once by the SMILES parser
// and is immutable afterwards; every downstream component (ring perception,
// canonicalization, matching, fingerprinting, descriptors) reads it and
// produces new derived values.
package mol

// ─────────────────────────────────────────────────────────────────────────────
// Bond order
// ─────────────────────────────────────────────────────────────────────────────

// BondOrder is the closed enumeration of SMILES bond orders.
type BondOrder uint8

const (
	BondSingle BondOrder = iota + 1
	BondDouble
	BondTriple
	BondAromatic
)

// Twice returns the bond order doubled, so that the delocalised aromatic
// order of 1.5 stays in integer arithmetic (single=2, double=4, triple=6,
// aromatic=3).  Valence sums are computed in twice-units throughout.
func (o BondOrder) Twice() int {
	switch o {
	case BondSingle:
		return 2
	case BondDouble:
		return 4
	case BondTriple:
		return 6
	case BondAromatic:
		return 3
	}
	return 0
}

// Symbol returns the SMILES bond symbol for the order.
func (o BondOrder) Symbol() string {
	switch o {
	case BondSingle:
		return "-"
	case BondDouble:
		return "="
	case BondTriple:
		return "#"
	case BondAromatic:
		return ":"
	}
	return "?"
}

// ─────────────────────────────────────────────────────────────────────────────
// Atom
// ─────────────────────────────────────────────────────────────────────────────

// Atom is one node of the molecular graph.  Index is the stable identity
// assigned in parse order; all cross-references (bonds, rings, ranks) use it.
type Atom struct {
	Index        int
	Symbol       string
	AtomicNumber int
	Mass         float64

	// Isotope is the bracket-specified mass number, 0 when unspecified.
	Isotope int

	// Charge is the bracket-specified formal charge.
	Charge int

	// Aromatic is set when the atom was written in lowercase aromatic form,
	// or when the aromaticity engine later classifies it aromatic.
	Aromatic bool

	// Hydrogens is the total attached hydrogen count: the explicit count for
	// bracket atoms, the valence-derived implicit count otherwise.
	Hydrogens int

	// Bracket records that the atom came from `[...]` syntax, which makes
	// its hydrogen count and charge explicit constraints rather than
	// derived defaults.  The substructure matcher keys wildcards off this.
	Bracket bool

	// Wildcard marks the `*` pattern atom that matches any element.
	Wildcard bool
}

// ─────────────────────────────────────────────────────────────────────────────
// Bond
// ─────────────────────────────────────────────────────────────────────────────

// Bond is one undirected edge of the molecular graph, stored with the parse
// direction (From appeared first in the input).
type Bond struct {
	From  int
	To    int
	Order BondOrder

	// RingClosure records that the bond was created by a ring-closure digit
	// rather than adjacency in the input text.
	RingClosure bool

	// Explicit records that a bond symbol appeared in the input.  The
	// substructure matcher treats implicit single bonds in patterns as
	// "single or aromatic".
	Explicit bool
}

// Other returns the endpoint of the bond that is not atom i.
func (b Bond) Other(i int) int {
	if b.From == i {
		return b.To
	}
	return b.From
}

// ─────────────────────────────────────────────────────────────────────────────
// Molecule
// ─────────────────────────────────────────────────────────────────────────────

// Molecule is the ordered atom sequence plus the undirected bond set,
// possibly disconnected.  Construct it with New, which freezes the adjacency
// index; never mutate Atoms or Bonds afterwards.
type Molecule struct {
	Atoms []Atom
	Bonds []Bond

	// adj[i] lists indices into Bonds for the bonds incident to atom i.
	adj [][]int
}

// New builds a Molecule and its adjacency index from finished atom and bond
// slices.  The parser is the only intended caller.
func New(atoms []Atom, bonds []Bond) *Molecule {
	m := &Molecule{Atoms: atoms, Bonds: bonds}
	m.adj = make([][]int, len(atoms))
	for bi, b := range bonds {
		m.adj[b.From] = append(m.adj[b.From], bi)
		m.adj[b.To] = append(m.adj[b.To], bi)
	}
	return m
}

// NumAtoms returns the atom count.
func (m *Molecule) NumAtoms() int { return len(m.Atoms) }

// NumBonds returns the bond count.
func (m *Molecule) NumBonds() int { return len(m.Bonds) }

// BondsOf returns the indices into Bonds of all bonds incident to atom i.
// The returned slice is shared; callers must not modify it.
func (m *Molecule) BondsOf(i int) []int { return m.adj[i] }

// Degree returns the heavy-atom connection count of atom i.
func (m *Molecule) Degree(i int) int { return len(m.adj[i]) }

// Neighbors returns the atoms bonded to atom i, in bond-creation order.
func (m *Molecule) Neighbors(i int) []int {
	out := make([]int, 0, len(m.adj[i]))
	for _, bi := range m.adj[i] {
		out = append(out, m.Bonds[bi].Other(i))
	}
	return out
}

// BondBetween returns the index of the bond connecting atoms i and j.
func (m *Molecule) BondBetween(i, j int) (int, bool) {
	for _, bi := range m.adj[i] {
		if m.Bonds[bi].Other(i) == j {
			return bi, true
		}
	}
	return 0, false
}

// TwiceBondOrderSum returns the doubled sum of bond orders incident to atom
// i (aromatic bonds count 3, i.e. 1.5 doubled).
func (m *Molecule) TwiceBondOrderSum(i int) int {
	sum := 0
	for _, bi := range m.adj[i] {
		sum += m.Bonds[bi].Order.Twice()
	}
	return sum
}

// Fragments returns the connected components as lists of atom indices, each
// in ascending order, components ordered by their lowest atom.
func (m *Molecule) Fragments() [][]int {
	seen := make([]bool, len(m.Atoms))
	var out [][]int
	for start := range m.Atoms {
		if seen[start] {
			continue
		}
		var comp []int
		stack := []int{start}
		seen[start] = true
		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			comp = append(comp, i)
			for _, n := range m.Neighbors(i) {
				if !seen[n] {
					seen[n] = true
					stack = append(stack, n)
				}
			}
		}
		// Keep deterministic ascending order inside the component.
		insertionSort(comp)
		out = append(out, comp)
	}
	return out
}

func insertionSort(a []int) {
	for i := 1; i < len(a); i++ {
		for j := i; j > 0 && a[j] < a[j-1]; j-- {
			a[j], a[j-1] = a[j-1], a[j]
		}
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Ring
// ─────────────────────────────────────────────────────────────────────────────

// Ring is an ordered cyclic atom sequence derived from a Molecule, never
// mutated after creation.
type Ring struct {
	// Atoms lists the ring members in cyclic order; the bond closing the
	// cycle runs from the last entry back to the first.
	Atoms []int

	// Aromatic is set by the aromaticity engine when the ring satisfies
	// Hückel's rule.
	Aromatic bool
}

// Size returns the number of atoms in the ring.
func (r Ring) Size() int { return len(r.Atoms) }

// Contains reports whether the ring includes the given atom.
func (r Ring) Contains(atom int) bool {
	for _, a := range r.Atoms {
		if a == atom {
			return true
		}
	}
	return false
}

// ContainsBond reports whether atoms i and j are adjacent in the cyclic
// order, i.e. the ring runs through the bond i-j.
func (r Ring) ContainsBond(i, j int) bool {
	n := len(r.Atoms)
	for k := 0; k < n; k++ {
		a, b := r.Atoms[k], r.Atoms[(k+1)%n]
		if (a == i && b == j) || (a == j && b == i) {
			return true
		}
	}
	return false
}
