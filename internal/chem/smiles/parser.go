package smiles

import (
	"fmt"
	"sort"

	"github.com/turtacn/ChemGraph-Engine/internal/chem/element"
	"github.com/turtacn/ChemGraph-Engine/internal/chem/mol"
	"github.com/turtacn/ChemGraph-Engine/pkg/errors"
)

// Limits bound the work the parser will accept from a single input.  Both
// bounds fail fast with CodeResourceLimit instead of risking unbounded
// allocation or stack growth on adversarial input.
type Limits struct {
	// MaxInputBytes caps the raw SMILES length.  Zero disables the check.
	MaxInputBytes int

	// MaxBranchDepth caps '(' nesting.  Zero disables the check.
	MaxBranchDepth int
}

// DefaultLimits are applied by Parse and ParsePattern.
var DefaultLimits = Limits{
	MaxInputBytes:  64 * 1024,
	MaxBranchDepth: 512,
}

// Parse converts a SMILES string into an immutable molecular graph.  The
// empty string parses to an empty molecule.  All failures are returned as
// *errors.AppError values from the parse-stage taxonomy; no partial molecule
// is ever returned alongside an error.
func Parse(text string) (*mol.Molecule, error) {
	return parse(text, DefaultLimits, true)
}

// ParseWithLimits is Parse with caller-supplied resource limits.
func ParseWithLimits(text string, lim Limits) (*mol.Molecule, error) {
	return parse(text, lim, true)
}

// ParsePattern parses a substructure pattern.  Patterns share the full SMILES
// grammar (bracket atoms act as constraint carriers, '*' as the any-atom
// wildcard) but skip valence validation, since patterns describe partial
// environments rather than complete molecules.
func ParsePattern(text string) (*mol.Molecule, error) {
	m, err := parse(text, DefaultLimits, false)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodePatternParse, "invalid substructure pattern")
	}
	return m, nil
}

// ringEntry is one open ring-closure: the atom waiting for its partner and
// the bond order seen at the opening end, if any.
type ringEntry struct {
	atom     int
	order    mol.BondOrder
	explicit bool
	offset   int
}

// builder holds the parser's mutable state: the explicit branch stack and the
// ring-closure table.  All state is local to one parse call.
type builder struct {
	atoms []mol.Atom
	bonds []mol.Bond

	current     int   // atom awaiting the next connection, -1 at fragment start
	branchStack []int // pushed "current" atoms for '(' ... ')'
	ringTable   map[int]ringEntry
	bondPairs   map[[2]int]bool

	pendingOrder    mol.BondOrder // 0 = no explicit bond symbol pending
	pendingExplicit bool
	pendingOffset   int

	limits   Limits
	inputLen int
}

func parse(text string, lim Limits, validateValence bool) (*mol.Molecule, error) {
	if lim.MaxInputBytes > 0 && len(text) > lim.MaxInputBytes {
		return nil, errors.Newf(errors.CodeResourceLimit,
			"input of %d bytes exceeds the %d byte limit", len(text), lim.MaxInputBytes)
	}

	tokens, err := Tokenize(text)
	if err != nil {
		return nil, err
	}

	b := &builder{
		current:   -1,
		ringTable: make(map[int]ringEntry),
		bondPairs: make(map[[2]int]bool),
		limits:    lim,
		inputLen:  len(text),
	}

	for _, tok := range tokens {
		if err := b.consume(tok); err != nil {
			return nil, err
		}
	}
	if err := b.finish(); err != nil {
		return nil, err
	}

	b.assignImplicitHydrogens()
	m := mol.New(b.atoms, b.bonds)
	if validateValence {
		if err := validate(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (b *builder) consume(tok Token) error {
	switch tok.Kind {
	case TokenAtom:
		return b.addAtom(tok)
	case TokenBond:
		if b.pendingOrder != 0 {
			return errors.Syntax(tok.Offset, "two bond symbols in a row")
		}
		b.pendingOrder = tok.Order
		b.pendingExplicit = true
		b.pendingOffset = tok.Offset
		return nil
	case TokenBranchOpen:
		if b.current < 0 {
			return errors.Syntax(tok.Offset, "branch opened with no current atom")
		}
		if b.pendingOrder != 0 {
			return errors.Syntax(tok.Offset, "bond symbol before '('")
		}
		if b.limits.MaxBranchDepth > 0 && len(b.branchStack) >= b.limits.MaxBranchDepth {
			return errors.Newf(errors.CodeResourceLimit,
				"branch nesting exceeds the depth limit of %d", b.limits.MaxBranchDepth).WithOffset(tok.Offset)
		}
		b.branchStack = append(b.branchStack, b.current)
		return nil
	case TokenBranchClose:
		if b.pendingOrder != 0 {
			return errors.Syntax(tok.Offset, "dangling bond symbol before ')'")
		}
		if len(b.branchStack) == 0 {
			return errors.Syntax(tok.Offset, "')' without matching '('")
		}
		b.current = b.branchStack[len(b.branchStack)-1]
		b.branchStack = b.branchStack[:len(b.branchStack)-1]
		return nil
	case TokenRingClosure:
		return b.ringClosure(tok)
	case TokenDot:
		if b.pendingOrder != 0 {
			return errors.Syntax(tok.Offset, "bond symbol before '.'")
		}
		b.current = -1
		return nil
	}
	return errors.Syntax(tok.Offset, "unhandled token")
}

func (b *builder) addAtom(tok Token) error {
	a := mol.Atom{
		Index:    len(b.atoms),
		Symbol:   tok.Symbol,
		Aromatic: tok.Aromatic,
		Bracket:  tok.Bracket,
		Wildcard: tok.Wildcard,
		Isotope:  tok.Isotope,
		Charge:   tok.Charge,
	}
	if !tok.Wildcard {
		e, ok := element.BySymbol(tok.Symbol)
		if !ok {
			return errors.New(errors.CodeUnknownElement,
				fmt.Sprintf("unknown element %q", tok.Symbol)).WithOffset(tok.Offset)
		}
		a.AtomicNumber = e.AtomicNumber
		a.Mass = e.Mass
	}
	if tok.Bracket {
		a.Hydrogens = tok.HCount
	}
	b.atoms = append(b.atoms, a)

	if b.current >= 0 {
		order := b.pendingOrder
		explicit := b.pendingExplicit
		if order == 0 {
			order = mol.BondSingle
			if b.atoms[b.current].Aromatic && a.Aromatic {
				order = mol.BondAromatic
			}
		}
		if err := b.addBond(b.current, a.Index, order, explicit, false, tok.Offset); err != nil {
			return err
		}
	} else if b.pendingOrder != 0 {
		return errors.Syntax(b.pendingOffset, "bond symbol with no preceding atom")
	}
	b.pendingOrder = 0
	b.pendingExplicit = false
	b.current = a.Index
	return nil
}

func (b *builder) ringClosure(tok Token) error {
	if b.current < 0 {
		return errors.Syntax(tok.Offset, "ring closure digit with no current atom")
	}

	entry, open := b.ringTable[tok.Ring]
	if !open {
		b.ringTable[tok.Ring] = ringEntry{
			atom:     b.current,
			order:    b.pendingOrder,
			explicit: b.pendingExplicit,
			offset:   tok.Offset,
		}
		b.pendingOrder = 0
		b.pendingExplicit = false
		return nil
	}

	if entry.atom == b.current {
		return errors.Syntax(tok.Offset, fmt.Sprintf("ring closure %d bonds an atom to itself", tok.Ring))
	}

	// Reconcile the orders declared at the two ends.
	order := entry.order
	explicit := entry.explicit
	switch {
	case entry.order != 0 && b.pendingOrder != 0 && entry.order != b.pendingOrder:
		return errors.Syntax(tok.Offset,
			fmt.Sprintf("ring closure %d declared with conflicting bond orders", tok.Ring))
	case b.pendingOrder != 0:
		order = b.pendingOrder
		explicit = true
	case order == 0:
		order = mol.BondSingle
		if b.atoms[entry.atom].Aromatic && b.atoms[b.current].Aromatic {
			order = mol.BondAromatic
		}
	}

	delete(b.ringTable, tok.Ring)
	b.pendingOrder = 0
	b.pendingExplicit = false
	return b.addBond(entry.atom, b.current, order, explicit, true, tok.Offset)
}

func (b *builder) addBond(from, to int, order mol.BondOrder, explicit, ringClosure bool, offset int) error {
	key := pairKey(from, to)
	if b.bondPairs[key] {
		return errors.Syntax(offset, fmt.Sprintf("duplicate bond between atoms %d and %d", from, to))
	}
	b.bondPairs[key] = true
	b.bonds = append(b.bonds, mol.Bond{
		From:        from,
		To:          to,
		Order:       order,
		RingClosure: ringClosure,
		Explicit:    explicit,
	})
	return nil
}

func (b *builder) finish() error {
	if b.pendingOrder != 0 {
		return errors.Syntax(b.pendingOffset, "input ends with a dangling bond symbol")
	}
	if len(b.branchStack) > 0 {
		return errors.Syntax(b.inputLen, "unclosed '(' branch at end of input").
			WithDetail(fmt.Sprintf("%d branch(es) still open", len(b.branchStack)))
	}
	if len(b.ringTable) > 0 {
		nums := make([]int, 0, len(b.ringTable))
		for n := range b.ringTable {
			nums = append(nums, n)
		}
		sort.Ints(nums)
		first := b.ringTable[nums[0]]
		return errors.Newf(errors.CodeUnclosedRing,
			"ring closure %d opened but never closed", nums[0]).WithOffset(first.offset)
	}
	return nil
}

// bondValences sums, per atom, the valence occupied by its bonds.  Aromatic
// bonds are tallied separately and count one valence each; the shared π
// system is charged once per atom via Element.PiAdjustedValence, never per
// bond, so a ring-fusion atom with three aromatic bonds occupies 4 valences,
// not the 5 a per-bond 1.5 tally would round up to.
func bondValences(nAtoms int, bonds []mol.Bond) (twice, aromatic []int) {
	twice = make([]int, nAtoms)
	aromatic = make([]int, nAtoms)
	for _, bd := range bonds {
		if bd.Order == mol.BondAromatic {
			aromatic[bd.From]++
			aromatic[bd.To]++
			continue
		}
		twice[bd.From] += bd.Order.Twice()
		twice[bd.To] += bd.Order.Twice()
	}
	return twice, aromatic
}

// assignImplicitHydrogens fills hydrogen counts for organic-subset atoms:
// the smallest permitted valence covering the (ceiling of the) bond-order
// sum, minus that sum.  Bracket atoms keep their explicit count.
func (b *builder) assignImplicitHydrogens() {
	twice, aromatic := bondValences(len(b.atoms), b.bonds)
	for i := range b.atoms {
		a := &b.atoms[i]
		if a.Bracket || a.Wildcard {
			continue
		}
		e, ok := element.BySymbol(a.Symbol)
		if !ok || len(e.Valences) == 0 {
			continue
		}
		sum := e.PiAdjustedValence((twice[i]+1)/2+aromatic[i], aromatic[i])
		for _, v := range e.Valences {
			if sum <= v {
				a.Hydrogens = v - sum
				break
			}
		}
	}
}

// validate enforces the valence invariant: ceiling bond-order sum (aromatic
// bonds counting one each, plus one for the π system) plus hydrogens must not
// exceed the element's maximum valence, shifted by the formal charge
// ([NH4+] gains one, [O-] loses one).
func validate(m *mol.Molecule) error {
	twice, aromatic := bondValences(m.NumAtoms(), m.Bonds)
	for i := range m.Atoms {
		a := &m.Atoms[i]
		if a.Wildcard {
			continue
		}
		e, ok := element.BySymbol(a.Symbol)
		if !ok || len(e.Valences) == 0 {
			continue
		}
		sum := e.PiAdjustedValence((twice[i]+1)/2+aromatic[i], aromatic[i]) + a.Hydrogens
		max := e.MaxValence() + a.Charge
		if sum > max {
			return errors.Newf(errors.CodeInvalidValence,
				"valence %d exceeds maximum %d for %s", sum, max, a.Symbol).
				WithDetail(fmt.Sprintf("atom index %d", i))
		}
	}
	return nil
}

func pairKey(i, j int) [2]int {
	if i > j {
		i, j = j, i
	}
	return [2]int{i, j}
}
