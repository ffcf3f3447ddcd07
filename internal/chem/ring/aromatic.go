package ring

import "github.com/turtacn/ChemGraph-Engine/internal/chem/mol"

// Aromatize perceives rings and classifies them for aromaticity.  It returns
// the perceived rings with their Aromatic flags set, plus a per-atom flag
// slice combining input-declared (lowercase) aromaticity with the derived
// classification, so Kekulé and aromatic spellings of the same ring converge
// on the same view.
func Aromatize(m *mol.Molecule) ([]mol.Ring, []bool) {
	rings := Perceive(m)
	ringBond := make([]bool, m.NumBonds())
	for bi := range m.Bonds {
		ringBond[bi] = BondInRing(m, rings, bi)
	}
	atomAromatic := make([]bool, m.NumAtoms())
	for i := range m.Atoms {
		atomAromatic[i] = m.Atoms[i].Aromatic
	}
	for ri := range rings {
		if isAromatic(m, rings[ri], ringBond) {
			rings[ri].Aromatic = true
			for _, a := range rings[ri].Atoms {
				atomAromatic[a] = true
			}
		}
	}
	return rings, atomAromatic
}

// AromaticRings returns only the rings classified aromatic.
func AromaticRings(m *mol.Molecule) []mol.Ring {
	rings, _ := Aromatize(m)
	out := make([]mol.Ring, 0, len(rings))
	for _, r := range rings {
		if r.Aromatic {
			out = append(out, r)
		}
	}
	return out
}

// isAromatic applies Hückel's rule to one candidate ring.
//
// Only rings of size 5, 6, or 7 are candidates.  Each ring atom contributes
// π electrons as follows: an atom on a ring double or aromatic bond
// contributes 1; a heteroatom (N, O, S, Se, P) or negatively charged carbon
// with no ring double bond contributes its lone pair, 2.  An atom matching
// neither case is sp3 and breaks conjugation, disqualifying the ring.  The
// ring is aromatic iff the electron total is 4n+2.
func isAromatic(m *mol.Molecule, r mol.Ring, ringBond []bool) bool {
	size := r.Size()
	if size < 5 || size > 7 {
		return false
	}

	electrons := 0
	for _, a := range r.Atoms {
		c, ok := contribution(m, a, ringBond)
		if !ok {
			return false
		}
		electrons += c
	}
	return electrons%4 == 2
}

// contribution returns the π electrons one ring atom donates, or ok=false
// when the atom is sp3 and breaks conjugation.  Double and aromatic bonds
// are looked up across all of the atom's ring bonds, not only those inside
// the candidate ring: a fusion atom whose double bond lies in the adjacent
// ring of a Kekulé-form bicyclic is still sp2 and contributes one electron.
// Exocyclic double bonds stay excluded.
func contribution(m *mol.Molecule, a int, ringBond []bool) (int, bool) {
	atom := &m.Atoms[a]

	inDouble, inAromatic := false, false
	for _, bi := range m.BondsOf(a) {
		if !ringBond[bi] {
			continue
		}
		switch m.Bonds[bi].Order {
		case mol.BondDouble:
			inDouble = true
		case mol.BondAromatic:
			inAromatic = true
		}
	}

	if inDouble {
		return 1, true
	}

	if inAromatic {
		// Input-declared aromatic ring: pyrrole-type heteroatoms donate the
		// lone pair, pyridine-type contribute one electron from the ring
		// double-bond system.
		switch atom.Symbol {
		case "O", "S", "Se":
			return 2, true
		case "N", "P":
			if atom.Hydrogens > 0 || m.Degree(a) == 3 {
				return 2, true
			}
			return 1, true
		case "C":
			if atom.Charge < 0 {
				return 2, true
			}
			return 1, true
		default:
			return 1, true
		}
	}

	// No ring-internal multiple bond: only a lone-pair donor keeps the ring
	// conjugated.
	switch atom.Symbol {
	case "O", "S", "Se", "N", "P":
		return 2, true
	case "C":
		if atom.Charge < 0 {
			return 2, true
		}
	}
	return 0, false
}
