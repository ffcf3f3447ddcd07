// Package ring derives ring systems and aromaticity from a molecular graph.
// Perception builds a minimal cycle basis approximating the smallest set of
// smallest rings; classification applies Hückel's rule to rings of size 5-7.
// Both are pure derivations: the input Molecule is never mutated.
package ring

import (
	"fmt"
	"sort"
	"strings"

	"github.com/turtacn/ChemGraph-Engine/internal/chem/mol"
)

// Perceive computes a minimal cycle basis for the molecule.
//
// A depth-first spanning forest is built over every fragment; each non-tree
// edge yields one fundamental cycle by walking both endpoints' ancestor
// chains to their lowest common ancestor.  Fundamental cycles are then
// deduplicated by atom set and reduced pairwise: whenever two rings share a
// bond and the symmetric difference of their edge sets forms a single cycle
// strictly smaller than both, the larger ring is replaced.  Candidate pairs
// are visited in ascending (size, size, atom-order) order and the scan
// restarts after every replacement, which makes the result deterministic.
// The reduction favours small rings in fused systems without guaranteeing
// exact SSSR optimality on heavily bridged polycycles.
func Perceive(m *mol.Molecule) []mol.Ring {
	n := m.NumAtoms()
	if n == 0 {
		return nil
	}

	parent := make([]int, n)
	depth := make([]int, n)
	visited := make([]bool, n)
	treeBond := make([]bool, m.NumBonds())
	for i := range parent {
		parent[i] = -1
	}

	var nonTree []int // bond indices
	for root := 0; root < n; root++ {
		if visited[root] {
			continue
		}
		visited[root] = true
		stack := []int{root}
		for len(stack) > 0 {
			u := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, bi := range m.BondsOf(u) {
				v := m.Bonds[bi].Other(u)
				if !visited[v] {
					visited[v] = true
					parent[v] = u
					depth[v] = depth[u] + 1
					treeBond[bi] = true
					stack = append(stack, v)
				}
			}
		}
	}
	for bi := range m.Bonds {
		if !treeBond[bi] {
			nonTree = append(nonTree, bi)
		}
	}

	seen := make(map[string]bool)
	var rings []mol.Ring
	for _, bi := range nonTree {
		cycle := fundamentalCycle(m.Bonds[bi], parent, depth)
		key := atomSetKey(cycle)
		if seen[key] {
			continue
		}
		seen[key] = true
		rings = append(rings, mol.Ring{Atoms: cycle})
	}

	rings = reduce(rings)
	sortRings(rings)
	return rings
}

// fundamentalCycle walks the tree-ancestor chains of the non-tree edge's
// endpoints up to their lowest common ancestor and returns the cycle in
// traversal order (u ... lca ... v, closed by the edge v-u).
func fundamentalCycle(b mol.Bond, parent, depth []int) []int {
	u, v := b.From, b.To
	var up, down []int
	for depth[u] > depth[v] {
		up = append(up, u)
		u = parent[u]
	}
	for depth[v] > depth[u] {
		down = append(down, v)
		v = parent[v]
	}
	for u != v {
		up = append(up, u)
		down = append(down, v)
		u = parent[u]
		v = parent[v]
	}
	cycle := make([]int, 0, len(up)+len(down)+1)
	cycle = append(cycle, up...)
	cycle = append(cycle, u) // the LCA
	for i := len(down) - 1; i >= 0; i-- {
		cycle = append(cycle, down[i])
	}
	return cycle
}

// reduce applies the pairwise symmetric-difference reduction until no ring
// can be replaced by a strictly smaller one.
func reduce(rings []mol.Ring) []mol.Ring {
	for {
		sortRings(rings)
		replaced := false
		for i := 0; i < len(rings) && !replaced; i++ {
			for j := i + 1; j < len(rings) && !replaced; j++ {
				small, large := rings[i], rings[j]
				if !shareBond(small, large) {
					continue
				}
				diff := edgeSymmetricDifference(small, large)
				cycle, ok := asSingleCycle(diff)
				if !ok || len(cycle) >= small.Size() || len(cycle) >= large.Size() {
					continue
				}
				rings[j] = mol.Ring{Atoms: cycle}
				replaced = true
			}
		}
		if !replaced {
			return dedupe(rings)
		}
	}
}

func dedupe(rings []mol.Ring) []mol.Ring {
	seen := make(map[string]bool, len(rings))
	out := rings[:0]
	for _, r := range rings {
		key := atomSetKey(r.Atoms)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}

func shareBond(a, b mol.Ring) bool {
	eb := edgeSet(b)
	for e := range edgeSet(a) {
		if eb[e] {
			return true
		}
	}
	return false
}

func edgeSet(r mol.Ring) map[[2]int]bool {
	n := len(r.Atoms)
	set := make(map[[2]int]bool, n)
	for k := 0; k < n; k++ {
		set[edgeKey(r.Atoms[k], r.Atoms[(k+1)%n])] = true
	}
	return set
}

func edgeSymmetricDifference(a, b mol.Ring) map[[2]int]bool {
	ea, eb := edgeSet(a), edgeSet(b)
	diff := make(map[[2]int]bool)
	for e := range ea {
		if !eb[e] {
			diff[e] = true
		}
	}
	for e := range eb {
		if !ea[e] {
			diff[e] = true
		}
	}
	return diff
}

// asSingleCycle checks that the edge set forms exactly one simple cycle and,
// if so, returns its atoms in cyclic order starting from the lowest atom,
// stepping first toward its lower-indexed neighbor.
func asSingleCycle(edges map[[2]int]bool) ([]int, bool) {
	if len(edges) < 3 {
		return nil, false
	}
	adj := make(map[int][]int)
	for e := range edges {
		adj[e[0]] = append(adj[e[0]], e[1])
		adj[e[1]] = append(adj[e[1]], e[0])
	}
	start := -1
	for v, ns := range adj {
		if len(ns) != 2 {
			return nil, false
		}
		if start < 0 || v < start {
			start = v
		}
	}
	if len(adj) != len(edges) {
		return nil, false
	}

	next := adj[start][0]
	if adj[start][1] < next {
		next = adj[start][1]
	}
	cycle := []int{start}
	prev := start
	for next != start {
		cycle = append(cycle, next)
		ns := adj[next]
		step := ns[0]
		if step == prev {
			step = ns[1]
		}
		prev, next = next, step
	}
	if len(cycle) != len(adj) {
		return nil, false // disconnected pair of cycles
	}
	return cycle, true
}

func edgeKey(i, j int) [2]int {
	if i > j {
		i, j = j, i
	}
	return [2]int{i, j}
}

func atomSetKey(atoms []int) string {
	sorted := append([]int(nil), atoms...)
	sort.Ints(sorted)
	var sb strings.Builder
	for _, a := range sorted {
		fmt.Fprintf(&sb, "%d,", a)
	}
	return sb.String()
}

// sortRings orders rings by (size, sorted atom list) so that every
// derivation downstream sees a stable ring order.
func sortRings(rings []mol.Ring) {
	sort.SliceStable(rings, func(i, j int) bool {
		if rings[i].Size() != rings[j].Size() {
			return rings[i].Size() < rings[j].Size()
		}
		return atomSetKey(rings[i].Atoms) < atomSetKey(rings[j].Atoms)
	})
}

// MembershipCounts returns, for every atom, the number of perceived rings it
// belongs to.  The canonicalizer uses this as an initial invariant.
func MembershipCounts(m *mol.Molecule, rings []mol.Ring) []int {
	counts := make([]int, m.NumAtoms())
	for _, r := range rings {
		for _, a := range r.Atoms {
			counts[a]++
		}
	}
	return counts
}

// BondInRing reports whether the bond with index bi lies on any perceived ring.
func BondInRing(m *mol.Molecule, rings []mol.Ring, bi int) bool {
	b := m.Bonds[bi]
	for _, r := range rings {
		if r.ContainsBond(b.From, b.To) {
			return true
		}
	}
	return false
}
