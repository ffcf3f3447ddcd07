// Package match answers substructure queries by backtracking subgraph
// isomorphism.  Patterns are ordinary SMILES graphs parsed without valence
// validation: bracket atoms carry extra constraints and '*' matches any atom.
package match

import (
	"sort"

	"github.com/turtacn/ChemGraph-Engine/internal/chem/mol"
	"github.com/turtacn/ChemGraph-Engine/internal/chem/ring"
)

// Contains reports whether the pattern occurs as a subgraph of the target.
// The empty pattern is vacuously contained in anything, including the empty
// molecule.
func Contains(target, pattern *mol.Molecule) bool {
	_, ok := FindFirst(target, pattern)
	return ok
}

// FindFirst returns one injective mapping from pattern atom index to target
// atom index, or ok=false when the pattern does not occur.  The search is
// deterministic: pattern atoms are seeded in descending degree order and
// target candidates are tried in ascending index order.
func FindFirst(target, pattern *mol.Molecule) ([]int, bool) {
	if pattern.NumAtoms() == 0 {
		return nil, true
	}
	if pattern.NumAtoms() > target.NumAtoms() || pattern.NumBonds() > target.NumBonds() {
		return nil, false
	}

	s := &state{
		target:  target,
		pattern: pattern,
		mapping: make([]int, pattern.NumAtoms()),
		used:    make([]bool, target.NumAtoms()),
	}
	for i := range s.mapping {
		s.mapping[i] = -1
	}
	_, s.targetAromatic = ring.Aromatize(target)
	_, s.patternAromatic = ring.Aromatize(pattern)
	s.targetOrder = effectiveOrders(target)
	s.order = searchOrder(pattern)

	if !s.extend(0) {
		return nil, false
	}
	return s.mapping, true
}

type state struct {
	target  *mol.Molecule
	pattern *mol.Molecule

	targetAromatic  []bool
	patternAromatic []bool
	targetOrder     []mol.BondOrder

	order   []int // pattern atoms in assignment order
	mapping []int // pattern index → target index, -1 if unassigned
	used    []bool
}

// extend assigns the pos-th pattern atom of the search order and recurses.
func (s *state) extend(pos int) bool {
	if pos == len(s.order) {
		return true
	}
	p := s.order[pos]
	for t := 0; t < s.target.NumAtoms(); t++ {
		if s.used[t] || !s.feasible(p, t) {
			continue
		}
		s.mapping[p] = t
		s.used[t] = true
		if s.extend(pos + 1) {
			return true
		}
		s.mapping[p] = -1
		s.used[t] = false
	}
	return false
}

// feasible checks the atom constraint for p→t plus every pattern bond from p
// into the already-mapped region.
func (s *state) feasible(p, t int) bool {
	if !s.atomsCompatible(p, t) {
		return false
	}
	if s.target.Degree(t) < s.pattern.Degree(p) {
		return false
	}
	for _, bi := range s.pattern.BondsOf(p) {
		pb := s.pattern.Bonds[bi]
		other := pb.Other(p)
		mapped := s.mapping[other]
		if mapped < 0 {
			continue
		}
		tb, ok := s.target.BondBetween(t, mapped)
		if !ok || !s.bondsCompatible(bi, tb) {
			return false
		}
	}
	return true
}

func (s *state) atomsCompatible(p, t int) bool {
	pa := &s.pattern.Atoms[p]
	ta := &s.target.Atoms[t]

	if pa.Wildcard {
		return true
	}
	if pa.AtomicNumber != ta.AtomicNumber {
		return false
	}
	if s.patternAromatic[p] != s.targetAromatic[t] {
		return false
	}
	if pa.Isotope != 0 && pa.Isotope != ta.Isotope {
		return false
	}
	if pa.Bracket {
		if pa.Charge != ta.Charge {
			return false
		}
		if ta.Hydrogens < pa.Hydrogens {
			return false
		}
	}
	return true
}

// bondsCompatible compares one pattern bond against one target bond.  A
// pattern bond written without a symbol matches a single or aromatic target
// bond; an explicit symbol must match the target's effective order exactly.
func (s *state) bondsCompatible(pbi, tbi int) bool {
	pb := s.pattern.Bonds[pbi]
	to := s.targetOrder[tbi]
	if !pb.Explicit && pb.Order == mol.BondSingle {
		return to == mol.BondSingle || to == mol.BondAromatic
	}
	return pb.Order == to
}

// effectiveOrders promotes bonds lying on aromatic rings to aromatic order so
// Kekulé-spelled targets match lowercase aromatic patterns.
func effectiveOrders(m *mol.Molecule) []mol.BondOrder {
	orders := make([]mol.BondOrder, m.NumBonds())
	rings := ring.AromaticRings(m)
	for bi, b := range m.Bonds {
		orders[bi] = b.Order
		for _, r := range rings {
			if r.ContainsBond(b.From, b.To) {
				orders[bi] = mol.BondAromatic
				break
			}
		}
	}
	return orders
}

// searchOrder seeds the backtracking with the highest-degree pattern atom and
// then grows connectivity-first: each next atom is adjacent to the mapped
// region when possible, preferring higher degree.
func searchOrder(pattern *mol.Molecule) []int {
	n := pattern.NumAtoms()
	byDegree := make([]int, n)
	for i := range byDegree {
		byDegree[i] = i
	}
	sort.SliceStable(byDegree, func(x, y int) bool {
		return pattern.Degree(byDegree[x]) > pattern.Degree(byDegree[y])
	})

	placed := make([]bool, n)
	order := make([]int, 0, n)
	for len(order) < n {
		pick := -1
		for _, cand := range byDegree {
			if placed[cand] {
				continue
			}
			adjacent := false
			for _, v := range pattern.Neighbors(cand) {
				if placed[v] {
					adjacent = true
					break
				}
			}
			if adjacent {
				pick = cand
				break
			}
			if pick < 0 {
				pick = cand // fragment seed
			}
		}
		placed[pick] = true
		order = append(order, pick)
	}
	return order
}
