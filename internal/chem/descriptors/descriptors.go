// Package descriptors derives scalar molecular properties from the graph:
// formula, weight, hydrogen-bond donors and acceptors, rotatable bonds, a
// crude additive logP estimate, and the Lipinski rule-of-five verdict built
// from them.
package descriptors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/turtacn/ChemGraph-Engine/internal/chem/element"
	"github.com/turtacn/ChemGraph-Engine/internal/chem/mol"
	"github.com/turtacn/ChemGraph-Engine/internal/chem/ring"
)

// Properties bundles every descriptor computed in one pass.
type Properties struct {
	Formula         string  `json:"formula"`
	MolecularWeight float64 `json:"molecular_weight"`
	HeavyAtoms      int     `json:"heavy_atoms"`
	RingCount       int     `json:"ring_count"`
	AromaticRings   int     `json:"aromatic_rings"`
	HBondDonors     int     `json:"h_bond_donors"`
	HBondAcceptors  int     `json:"h_bond_acceptors"`
	RotatableBonds  int     `json:"rotatable_bonds"`
	LogP            float64 `json:"logp"`
}

// Compute derives all descriptors for the molecule.
func Compute(m *mol.Molecule) Properties {
	rings, _ := ring.Aromatize(m)
	aromatic := 0
	for _, r := range rings {
		if r.Aromatic {
			aromatic++
		}
	}

	p := Properties{
		Formula:        Formula(m),
		HeavyAtoms:     m.NumAtoms(),
		RingCount:      len(rings),
		AromaticRings:  aromatic,
		RotatableBonds: rotatableBonds(m, rings),
		LogP:           logP(m),
	}
	for i := range m.Atoms {
		a := &m.Atoms[i]
		mass := a.Mass
		if a.Isotope != 0 {
			mass = float64(a.Isotope)
		}
		p.MolecularWeight += mass + float64(a.Hydrogens)*hydrogenMass
		switch a.Symbol {
		case "N", "O":
			p.HBondAcceptors++
			if a.Hydrogens > 0 {
				p.HBondDonors++
			}
		}
	}
	return p
}

const hydrogenMass = 1.008

// Formula renders the molecular formula in Hill order: carbon first, then
// hydrogen, then the remaining elements alphabetically.  Without carbon all
// elements sort alphabetically.
func Formula(m *mol.Molecule) string {
	counts := make(map[string]int)
	hydrogens := 0
	for i := range m.Atoms {
		a := &m.Atoms[i]
		if a.Wildcard {
			continue
		}
		counts[a.Symbol]++
		hydrogens += a.Hydrogens
	}
	if hydrogens > 0 {
		counts["H"] += hydrogens
	}

	symbols := make([]string, 0, len(counts))
	for s := range counts {
		symbols = append(symbols, s)
	}
	sort.Slice(symbols, func(i, j int) bool {
		return hillLess(symbols[i], symbols[j], counts["C"] > 0)
	})

	var sb strings.Builder
	for _, s := range symbols {
		sb.WriteString(s)
		if counts[s] > 1 {
			fmt.Fprintf(&sb, "%d", counts[s])
		}
	}
	return sb.String()
}

func hillLess(a, b string, hasCarbon bool) bool {
	if hasCarbon {
		ra, rb := hillRank(a), hillRank(b)
		if ra != rb {
			return ra < rb
		}
	}
	return a < b
}

func hillRank(s string) int {
	switch s {
	case "C":
		return 0
	case "H":
		return 1
	default:
		return 2
	}
}

// rotatableBonds counts single acyclic bonds whose endpoints both carry at
// least one further heavy neighbor.  Terminal bonds never rotate anything.
func rotatableBonds(m *mol.Molecule, rings []mol.Ring) int {
	count := 0
	for bi, b := range m.Bonds {
		if b.Order != mol.BondSingle {
			continue
		}
		if ring.BondInRing(m, rings, bi) {
			continue
		}
		if m.Degree(b.From) < 2 || m.Degree(b.To) < 2 {
			continue
		}
		count++
	}
	return count
}

// logP is a crude additive estimate: one empirical contribution per heavy
// atom, adjusted for aromaticity, plus a small term per implicit hydrogen.
// It tracks octanol-water trends well enough for rule-of-five screening but
// is no substitute for a fitted Crippen model.
func logP(m *mol.Molecule) float64 {
	_, atomAromatic := ring.Aromatize(m)
	total := 0.0
	for i := range m.Atoms {
		a := &m.Atoms[i]
		total += atomLogP(a.Symbol, atomAromatic[i])
		total += 0.11 * float64(a.Hydrogens)
	}
	return total
}

func atomLogP(symbol string, aromatic bool) float64 {
	switch symbol {
	case "C":
		if aromatic {
			return 0.29
		}
		return 0.14
	case "N":
		return -0.60
	case "O":
		return -0.45
	case "S":
		return 0.40
	case "P":
		return -0.50
	case "F":
		return 0.14
	case "Cl":
		return 0.65
	case "Br":
		return 0.89
	case "I":
		return 1.10
	default:
		if _, ok := element.BySymbol(symbol); ok {
			return 0.10
		}
		return 0
	}
}

// Lipinski is the rule-of-five verdict for a property set.
type Lipinski struct {
	Violations int  `json:"violations"`
	Pass       bool `json:"pass"`
}

// RuleOfFive evaluates Lipinski's criteria: weight at most 500, logP at most
// 5, at most 5 donors and at most 10 acceptors.  One violation is tolerated.
func RuleOfFive(p Properties) Lipinski {
	v := 0
	if p.MolecularWeight > 500 {
		v++
	}
	if p.LogP > 5 {
		v++
	}
	if p.HBondDonors > 5 {
		v++
	}
	if p.HBondAcceptors > 10 {
		v++
	}
	return Lipinski{Violations: v, Pass: v <= 1}
}
