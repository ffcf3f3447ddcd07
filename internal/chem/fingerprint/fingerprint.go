// Package fingerprint hashes linear atom paths into a fixed-width bit vector
// and scores vectors with the Tanimoto coefficient.
package fingerprint

import (
	"encoding/hex"
	"hash/fnv"
	"math/bits"
	"strconv"
	"strings"

	"github.com/turtacn/ChemGraph-Engine/internal/chem/mol"
	"github.com/turtacn/ChemGraph-Engine/internal/chem/ring"
)

const (
	// DefaultBits is the fingerprint width in bits.
	DefaultBits = 1024

	// DefaultMaxPathBonds bounds enumerated path length in bonds.  Paths of
	// zero bonds (single atoms) are always included.
	DefaultMaxPathBonds = 7
)

// Fingerprint is a packed bit vector.  The zero value is not usable; build
// one through a Generator.
type Fingerprint struct {
	bits []byte
	size int
}

// Size returns the vector width in bits.
func (f *Fingerprint) Size() int { return f.size }

// Bit reports whether bit i is set.
func (f *Fingerprint) Bit(i int) bool {
	if i < 0 || i >= f.size {
		return false
	}
	return f.bits[i/8]&(1<<uint(i%8)) != 0
}

// NumOnBits counts the set bits.
func (f *Fingerprint) NumOnBits() int {
	n := 0
	for _, b := range f.bits {
		n += bits.OnesCount8(b)
	}
	return n
}

// Bytes returns a copy of the packed vector.
func (f *Fingerprint) Bytes() []byte {
	out := make([]byte, len(f.bits))
	copy(out, f.bits)
	return out
}

// Hex renders the packed vector as lowercase hex, for logging and cache keys.
func (f *Fingerprint) Hex() string {
	return hex.EncodeToString(f.bits)
}

func (f *Fingerprint) set(i int) {
	f.bits[i/8] |= 1 << uint(i%8)
}

// Generator enumerates all simple paths of up to MaxPathBonds bonds, encodes
// each as a direction-independent string, and folds the FNV-1a hash of that
// string into a Bits-wide vector.
type Generator struct {
	Bits         int
	MaxPathBonds int
}

// NewGenerator returns a Generator with the default parameters.
func NewGenerator() *Generator {
	return &Generator{Bits: DefaultBits, MaxPathBonds: DefaultMaxPathBonds}
}

// Generate computes the path fingerprint of the molecule.  An empty molecule
// yields an all-zero vector.
func (g *Generator) Generate(m *mol.Molecule) *Fingerprint {
	width := g.Bits
	if width <= 0 {
		width = DefaultBits
	}
	maxBonds := g.MaxPathBonds
	if maxBonds < 0 {
		maxBonds = DefaultMaxPathBonds
	}
	fp := &Fingerprint{bits: make([]byte, (width+7)/8), size: width}

	n := m.NumAtoms()
	if n == 0 {
		return fp
	}

	labels := atomLabels(m)
	orders := effectiveOrders(m)

	// Canonical path strings, deduplicated: every path is discovered once
	// from each end, and the lexicographically smaller rendering represents
	// both directions.
	paths := make(map[string]struct{})
	onPath := make([]bool, n)
	var walk func(at, depth int, forward, reverse string)
	walk = func(at, depth int, forward, reverse string) {
		canon := forward
		if reverse < canon {
			canon = reverse
		}
		paths[canon] = struct{}{}
		if depth == maxBonds {
			return
		}
		onPath[at] = true
		for _, bi := range m.BondsOf(at) {
			next := m.Bonds[bi].Other(at)
			if onPath[next] {
				continue
			}
			sym := bondSymbol(orders[bi])
			walk(next, depth+1,
				forward+sym+labels[next],
				labels[next]+sym+reverse)
		}
		onPath[at] = false
	}
	for a := 0; a < n; a++ {
		walk(a, 0, labels[a], labels[a])
	}

	h := fnv.New64a()
	for p := range paths {
		h.Reset()
		h.Write([]byte(p))
		fp.set(int(h.Sum64() % uint64(width)))
	}
	return fp
}

// atomLabels encodes each atom as element symbol plus hydrogen count, so that
// a methyl, a methylene, and a hydroxyl all land on distinct path features.
func atomLabels(m *mol.Molecule) []string {
	labels := make([]string, m.NumAtoms())
	for i := range m.Atoms {
		a := &m.Atoms[i]
		var sb strings.Builder
		sb.WriteString(a.Symbol)
		if a.Hydrogens > 0 {
			sb.WriteByte('H')
			if a.Hydrogens > 1 {
				sb.WriteString(strconv.Itoa(a.Hydrogens))
			}
		}
		if a.Charge != 0 {
			sb.WriteString(strconv.Itoa(a.Charge))
		}
		labels[i] = sb.String()
	}
	return labels
}

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

func bondSymbol(o mol.BondOrder) string {
	switch o {
	case mol.BondDouble:
		return "="
	case mol.BondTriple:
		return "#"
	case mol.BondAromatic:
		return ":"
	default:
		return "-"
	}
}
