// Package smiles lexes and parses SMILES chemical notation into the molecular
// graph defined in internal/chem/mol.  Lexing and parsing are separate passes:
// Tokenize produces the complete token list or an error (never a partial
// stream), and Parse consumes tokens with an explicit branch stack and
// ring-closure table, then valence-validates the finished graph.
package smiles

import "github.com/turtacn/ChemGraph-Engine/internal/chem/mol"

// TokenKind is the closed enumeration of SMILES token categories.
type TokenKind uint8

const (
	// TokenAtom covers both organic-subset atoms and bracket atoms.
	TokenAtom TokenKind = iota + 1

	// TokenBond is an explicit bond symbol: '-', '=', '#', or ':'.
	TokenBond

	// TokenRingClosure is a ring-bond digit, or the '%nn' two-digit form.
	TokenRingClosure

	// TokenBranchOpen is '('.
	TokenBranchOpen

	// TokenBranchClose is ')'.
	TokenBranchClose

	// TokenDot is the '.' fragment separator.
	TokenDot
)

// String returns a short name for diagnostics.
func (k TokenKind) String() string {
	switch k {
	case TokenAtom:
		return "atom"
	case TokenBond:
		return "bond"
	case TokenRingClosure:
		return "ring-closure"
	case TokenBranchOpen:
		return "branch-open"
	case TokenBranchClose:
		return "branch-close"
	case TokenDot:
		return "dot"
	}
	return "invalid"
}

// Token is one lexical unit of a SMILES string.  Offset is the byte position
// of the token's first character, carried through to parse errors.
type Token struct {
	Kind   TokenKind
	Offset int

	// Atom payload (Kind == TokenAtom).
	Symbol   string // canonical element symbol, or "*" for the wildcard
	Aromatic bool   // written in lowercase aromatic form
	Bracket  bool   // written as [...]
	Wildcard bool   // the '*' any-atom
	Isotope  int    // bracket mass number, 0 when unspecified
	Charge   int    // bracket formal charge
	HCount   int    // bracket explicit hydrogen count

	// Bond payload (Kind == TokenBond).
	Order mol.BondOrder

	// Ring payload (Kind == TokenRingClosure): the closure number 0-99.
	Ring int
}
