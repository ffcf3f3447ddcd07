package canon

import (
	"fmt"
	"sort"
	"strings"

	"github.com/turtacn/ChemGraph-Engine/internal/chem/element"
	"github.com/turtacn/ChemGraph-Engine/internal/chem/mol"
	"github.com/turtacn/ChemGraph-Engine/internal/chem/ring"
)

// Write regenerates canonical SMILES text for the molecule.
//
// The traversal starts at the lowest-rank atom of each fragment and visits
// unvisited neighbors in ascending rank order; already-visited neighbors
// become ring closures, reusing the lowest digit not currently open.  Both
// traversal passes run on explicit stacks, so arbitrarily deep molecules
// cannot overflow the call stack.  Aromatic rings are emitted in lowercase
// aromatic form regardless of whether the input spelled them Kekulé style.
func Write(m *mol.Molecule) string {
	n := m.NumAtoms()
	if n == 0 {
		return ""
	}

	ranks := Ranks(m)
	rings, atomAromatic := ring.Aromatize(m)

	// Effective bond orders: bonds on aromatic rings are delocalised.
	effOrder := make([]mol.BondOrder, m.NumBonds())
	for bi := range m.Bonds {
		effOrder[bi] = m.Bonds[bi].Order
	}
	for _, r := range rings {
		if !r.Aromatic {
			continue
		}
		for bi := range m.Bonds {
			b := m.Bonds[bi]
			if r.ContainsBond(b.From, b.To) {
				effOrder[bi] = mol.BondAromatic
			}
		}
	}
	effTwice := make([]int, n)
	effAromatic := make([]int, n)
	for bi, b := range m.Bonds {
		if effOrder[bi] == mol.BondAromatic {
			effAromatic[b.From]++
			effAromatic[b.To]++
			continue
		}
		effTwice[b.From] += effOrder[bi].Twice()
		effTwice[b.To] += effOrder[bi].Twice()
	}

	w := &writer{
		m:            m,
		ranks:        ranks,
		atomAromatic: atomAromatic,
		effOrder:     effOrder,
		effTwice:     effTwice,
		effAromatic:  effAromatic,
	}
	return w.run()
}

type edgeRef struct {
	to   int
	bond int
}

type closure struct {
	bond  int
	open  int // endpoint discovered first, where the digit is allocated
	close int
}

type writer struct {
	m            *mol.Molecule
	ranks        []int
	atomAromatic []bool
	effOrder     []mol.BondOrder
	effTwice     []int
	effAromatic  []int

	nbrs       [][]edgeRef
	disc       []int
	children   [][]edgeRef
	closures   []closure
	closuresAt [][]int

	digitOf   map[int]int // closure index → allocated digit
	digitUsed [100]bool
	sb        strings.Builder
}

func (w *writer) run() string {
	n := w.m.NumAtoms()

	w.nbrs = make([][]edgeRef, n)
	for i := 0; i < n; i++ {
		for _, bi := range w.m.BondsOf(i) {
			w.nbrs[i] = append(w.nbrs[i], edgeRef{to: w.m.Bonds[bi].Other(i), bond: bi})
		}
		sort.Slice(w.nbrs[i], func(x, y int) bool {
			return w.ranks[w.nbrs[i][x].to] < w.ranks[w.nbrs[i][y].to]
		})
	}

	w.disc = make([]int, n)
	for i := range w.disc {
		w.disc[i] = -1
	}
	w.children = make([][]edgeRef, n)
	w.closuresAt = make([][]int, n)
	w.digitOf = make(map[int]int)

	// Fragment roots, ordered by root rank.
	roots := fragmentRoots(w.m, w.ranks)

	for _, root := range roots {
		w.explore(root)
	}
	for ci, c := range w.closures {
		w.closuresAt[c.open] = append(w.closuresAt[c.open], ci)
		w.closuresAt[c.close] = append(w.closuresAt[c.close], ci)
	}
	for a := range w.closuresAt {
		at := w.closuresAt[a]
		sort.Slice(at, func(x, y int) bool {
			return w.partnerDisc(at[x], a) < w.partnerDisc(at[y], a)
		})
	}

	for fi, root := range roots {
		if fi > 0 {
			w.sb.WriteByte('.')
		}
		w.emit(root)
	}
	return w.sb.String()
}

func (w *writer) partnerDisc(ci, atom int) int {
	c := w.closures[ci]
	if c.open == atom {
		return w.disc[c.close]
	}
	return w.disc[c.open]
}

// explore builds the spanning tree and ring-closure list for one fragment
// using an explicit DFS stack.
func (w *writer) explore(root int) {
	closureSeen := make(map[int]bool)
	time := 0
	w.disc[root] = time
	time++

	type frame struct {
		atom       int
		parentBond int
		idx        int
	}
	stack := []frame{{atom: root, parentBond: -1}}
	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		if f.idx >= len(w.nbrs[f.atom]) {
			stack = stack[:len(stack)-1]
			continue
		}
		e := w.nbrs[f.atom][f.idx]
		f.idx++
		if e.bond == f.parentBond {
			continue
		}
		if w.disc[e.to] >= 0 {
			if !closureSeen[e.bond] {
				closureSeen[e.bond] = true
				c := closure{bond: e.bond, open: f.atom, close: e.to}
				if w.disc[e.to] < w.disc[f.atom] {
					c.open, c.close = e.to, f.atom
				}
				w.closures = append(w.closures, c)
			}
			continue
		}
		w.disc[e.to] = time
		time++
		w.children[f.atom] = append(w.children[f.atom], e)
		stack = append(stack, frame{atom: e.to, parentBond: e.bond})
	}
}

// emit writes one fragment's subtree using an explicit op stack.
func (w *writer) emit(root int) {
	type op struct {
		literal string
		atom    int
		bond    int // bond to parent, -1 at the root
	}
	stack := []op{{atom: root, bond: -1}}
	for len(stack) > 0 {
		o := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if o.literal != "" {
			w.sb.WriteString(o.literal)
			continue
		}

		u := o.atom
		if o.bond >= 0 {
			w.sb.WriteString(w.bondText(o.bond))
		}
		w.sb.WriteString(w.atomText(u))

		for _, ci := range w.closuresAt[u] {
			c := w.closures[ci]
			if c.open == u {
				d := w.allocDigit()
				w.digitOf[ci] = d
				w.sb.WriteString(w.bondText(c.bond))
				w.sb.WriteString(digitText(d))
			} else {
				d := w.digitOf[ci]
				w.digitUsed[d] = false
				w.sb.WriteString(digitText(d))
			}
		}

		kids := w.children[u]
		ops := make([]op, 0, 3*len(kids))
		for i, e := range kids {
			if i < len(kids)-1 {
				ops = append(ops, op{literal: "("}, op{atom: e.to, bond: e.bond}, op{literal: ")"})
			} else {
				ops = append(ops, op{atom: e.to, bond: e.bond})
			}
		}
		for i := len(ops) - 1; i >= 0; i-- {
			stack = append(stack, ops[i])
		}
	}
}

func (w *writer) allocDigit() int {
	for d := 1; d < len(w.digitUsed); d++ {
		if !w.digitUsed[d] {
			w.digitUsed[d] = true
			return d
		}
	}
	return len(w.digitUsed) - 1
}

func digitText(d int) string {
	if d < 10 {
		return fmt.Sprintf("%d", d)
	}
	return fmt.Sprintf("%%%02d", d)
}

// bondText returns the symbol emitted before an atom or ring-closure digit.
// Single and aromatic bonds are implicit, except that a true single bond
// between two aromatic atoms (biphenyl-style) must be written '-' to avoid
// rereading it as aromatic.
func (w *writer) bondText(bi int) string {
	b := w.m.Bonds[bi]
	switch w.effOrder[bi] {
	case mol.BondDouble:
		return "="
	case mol.BondTriple:
		return "#"
	case mol.BondAromatic:
		return ""
	default:
		if w.atomAromatic[b.From] && w.atomAromatic[b.To] {
			return "-"
		}
		return ""
	}
}

// atomText renders one atom, bracketed when isotope, charge, a non-organic
// element, or a hydrogen count differing from the reader's inference demands
// it.
func (w *writer) atomText(i int) string {
	a := &w.m.Atoms[i]
	aromatic := w.atomAromatic[i]

	if a.Wildcard && a.Isotope == 0 && a.Charge == 0 {
		return "*"
	}

	display := a.Symbol
	if aromatic {
		e, ok := element.BySymbol(a.Symbol)
		if ok && e.AromaticCapable {
			display = strings.ToLower(a.Symbol)
		}
	}

	needBracket := a.Isotope != 0 || a.Charge != 0 ||
		(!a.Wildcard && !element.IsOrganicSubset(a.Symbol)) ||
		w.inferredHydrogens(i) != a.Hydrogens

	if !needBracket {
		return display
	}

	var sb strings.Builder
	sb.WriteByte('[')
	if a.Isotope != 0 {
		fmt.Fprintf(&sb, "%d", a.Isotope)
	}
	sb.WriteString(display)
	if a.Hydrogens == 1 {
		sb.WriteByte('H')
	} else if a.Hydrogens > 1 {
		fmt.Fprintf(&sb, "H%d", a.Hydrogens)
	}
	switch {
	case a.Charge == 1:
		sb.WriteByte('+')
	case a.Charge == -1:
		sb.WriteByte('-')
	case a.Charge > 1:
		fmt.Fprintf(&sb, "+%d", a.Charge)
	case a.Charge < -1:
		fmt.Fprintf(&sb, "-%d", -a.Charge)
	}
	sb.WriteByte(']')
	return sb.String()
}

// inferredHydrogens computes the hydrogen count a reader of the emitted text
// would assign by the implicit-valence rule, using effective bond orders.
// Aromatic bonds count one valence each plus a single π increment, mirroring
// the parser's accounting, so aromatic atoms round-trip without brackets.
func (w *writer) inferredHydrogens(i int) int {
	a := &w.m.Atoms[i]
	if a.Wildcard {
		return 0
	}
	e, ok := element.BySymbol(a.Symbol)
	if !ok || len(e.Valences) == 0 {
		return 0
	}
	sum := e.PiAdjustedValence((w.effTwice[i]+1)/2+w.effAromatic[i], w.effAromatic[i])
	for _, v := range e.Valences {
		if sum <= v {
			return v - sum
		}
	}
	return 0
}

// fragmentRoots returns one lowest-rank atom per connected component,
// ordered by that root's rank.
func fragmentRoots(m *mol.Molecule, ranks []int) []int {
	var roots []int
	for _, comp := range m.Fragments() {
		best := comp[0]
		for _, a := range comp[1:] {
			if ranks[a] < ranks[best] {
				best = a
			}
		}
		roots = append(roots, best)
	}
	sort.Slice(roots, func(x, y int) bool { return ranks[roots[x]] < ranks[roots[y]] })
	return roots
}
