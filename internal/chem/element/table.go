// Package element holds the immutable periodic-table data the engine consults
// for symbol validation, valence checking, implicit-hydrogen assignment, and
// mass summation.  The table is initialised once at process start and is
// read-only for the process lifetime.
package element

import "strings"

// Element describes one entry of the periodic table as the engine needs it.
type Element struct {
	// Symbol is the canonical one- or two-letter element symbol.
	Symbol string

	// AtomicNumber is the proton count, used as the primary canonical invariant.
	AtomicNumber int

	// Mass is the standard atomic weight in Daltons.
	Mass float64

	// Valences lists the permitted valences in ascending order.  Implicit
	// hydrogens fill up to the smallest permitted valence that covers the
	// bond-order sum.  An empty list disables valence checking (metals and
	// noble gases, which SMILES writes in brackets with explicit hydrogens).
	Valences []int

	// Organic reports membership in the SMILES organic subset: the atom may
	// be written bare, outside brackets, with implicit hydrogens.
	Organic bool

	// AromaticCapable reports whether the lowercase aromatic form is legal.
	AromaticCapable bool
}

// MaxValence returns the largest permitted valence, or 0 when the element
// carries no valence data.
func (e Element) MaxValence() int {
	if len(e.Valences) == 0 {
		return 0
	}
	return e.Valences[len(e.Valences)-1]
}

// PiAdjustedValence adjusts a bond-order sum for a delocalised π system.  An
// atom carrying aromatic bonds spends one extra valence on the ring π bond,
// unless its smallest covering valence has no room left, in which case the
// atom joins the system through a lone pair instead (aromatic O and S).  The
// increment is applied at most once regardless of the aromatic bond count, so
// a benzene carbon (two aromatic bonds) occupies 3 and a ring-fusion carbon
// (three aromatic bonds) occupies 4.
func (e Element) PiAdjustedValence(sum, aromaticBonds int) int {
	if aromaticBonds == 0 {
		return sum
	}
	for _, v := range e.Valences {
		if sum <= v {
			if sum < v {
				sum++
			}
			return sum
		}
	}
	return sum
}

// table is ordered by atomic number.  Valence data follows the Daylight
// SMILES conventions for the organic subset.
var table = []Element{
	{Symbol: "H", AtomicNumber: 1, Mass: 1.008, Valences: []int{1}},
	{Symbol: "He", AtomicNumber: 2, Mass: 4.0026},
	{Symbol: "Li", AtomicNumber: 3, Mass: 6.94},
	{Symbol: "Be", AtomicNumber: 4, Mass: 9.0122},
	{Symbol: "B", AtomicNumber: 5, Mass: 10.81, Valences: []int{3}, Organic: true, AromaticCapable: true},
	{Symbol: "C", AtomicNumber: 6, Mass: 12.011, Valences: []int{4}, Organic: true, AromaticCapable: true},
	{Symbol: "N", AtomicNumber: 7, Mass: 14.007, Valences: []int{3, 5}, Organic: true, AromaticCapable: true},
	{Symbol: "O", AtomicNumber: 8, Mass: 15.999, Valences: []int{2}, Organic: true, AromaticCapable: true},
	{Symbol: "F", AtomicNumber: 9, Mass: 18.998, Valences: []int{1}, Organic: true},
	{Symbol: "Ne", AtomicNumber: 10, Mass: 20.180},
	{Symbol: "Na", AtomicNumber: 11, Mass: 22.990},
	{Symbol: "Mg", AtomicNumber: 12, Mass: 24.305},
	{Symbol: "Al", AtomicNumber: 13, Mass: 26.982},
	{Symbol: "Si", AtomicNumber: 14, Mass: 28.085, Valences: []int{4}},
	{Symbol: "P", AtomicNumber: 15, Mass: 30.974, Valences: []int{3, 5}, Organic: true, AromaticCapable: true},
	{Symbol: "S", AtomicNumber: 16, Mass: 32.06, Valences: []int{2, 4, 6}, Organic: true, AromaticCapable: true},
	{Symbol: "Cl", AtomicNumber: 17, Mass: 35.45, Valences: []int{1}, Organic: true},
	{Symbol: "Ar", AtomicNumber: 18, Mass: 39.948},
	{Symbol: "K", AtomicNumber: 19, Mass: 39.098},
	{Symbol: "Ca", AtomicNumber: 20, Mass: 40.078},
	{Symbol: "Ti", AtomicNumber: 22, Mass: 47.867},
	{Symbol: "Cr", AtomicNumber: 24, Mass: 51.996},
	{Symbol: "Mn", AtomicNumber: 25, Mass: 54.938},
	{Symbol: "Fe", AtomicNumber: 26, Mass: 55.845},
	{Symbol: "Co", AtomicNumber: 27, Mass: 58.933},
	{Symbol: "Ni", AtomicNumber: 28, Mass: 58.693},
	{Symbol: "Cu", AtomicNumber: 29, Mass: 63.546},
	{Symbol: "Zn", AtomicNumber: 30, Mass: 65.38},
	{Symbol: "As", AtomicNumber: 33, Mass: 74.922, Valences: []int{3, 5}, AromaticCapable: true},
	{Symbol: "Se", AtomicNumber: 34, Mass: 78.971, Valences: []int{2, 4, 6}, AromaticCapable: true},
	{Symbol: "Br", AtomicNumber: 35, Mass: 79.904, Valences: []int{1}, Organic: true},
	{Symbol: "Ag", AtomicNumber: 47, Mass: 107.87},
	{Symbol: "Sn", AtomicNumber: 50, Mass: 118.71, Valences: []int{2, 4}},
	{Symbol: "I", AtomicNumber: 53, Mass: 126.90, Valences: []int{1}, Organic: true},
	{Symbol: "Pt", AtomicNumber: 78, Mass: 195.08},
	{Symbol: "Au", AtomicNumber: 79, Mass: 196.97},
	{Symbol: "Hg", AtomicNumber: 80, Mass: 200.59},
	{Symbol: "Pb", AtomicNumber: 82, Mass: 207.2},
}

var bySymbol = func() map[string]Element {
	m := make(map[string]Element, len(table))
	for _, e := range table {
		m[e.Symbol] = e
	}
	return m
}()

// BySymbol looks up an element by its canonical symbol ("C", "Cl", ...).
func BySymbol(symbol string) (Element, bool) {
	e, ok := bySymbol[symbol]
	return e, ok
}

// ByAromaticSymbol looks up an element by its lowercase aromatic SMILES form
// ("c", "n", "se", ...).  It returns false for elements that have no legal
// aromatic form.
func ByAromaticSymbol(symbol string) (Element, bool) {
	canonical := strings.ToUpper(symbol[:1]) + symbol[1:]
	e, ok := bySymbol[canonical]
	if !ok || !e.AromaticCapable {
		return Element{}, false
	}
	return e, true
}

// IsOrganicSubset reports whether the symbol may be written bare outside
// brackets.
func IsOrganicSubset(symbol string) bool {
	e, ok := bySymbol[symbol]
	return ok && e.Organic
}
