package smiles

import (
	"fmt"

	"github.com/turtacn/ChemGraph-Engine/internal/chem/element"
	"github.com/turtacn/ChemGraph-Engine/internal/chem/mol"
	"github.com/turtacn/ChemGraph-Engine/pkg/errors"
)

// Tokenize lexes a SMILES string into its complete token list.  On any
// lexical failure it returns a nil slice and an error carrying the byte
// offset of the offending character; no partial token list is produced.
func Tokenize(text string) ([]Token, error) {
	lx := &lexer{input: text}
	return lx.run()
}

type lexer struct {
	input  string
	pos    int
	tokens []Token
}

func (lx *lexer) run() ([]Token, error) {
	for lx.pos < len(lx.input) {
		start := lx.pos
		c := lx.input[lx.pos]
		switch {
		case c == '[':
			tok, err := lx.bracketAtom()
			if err != nil {
				return nil, err
			}
			lx.tokens = append(lx.tokens, tok)
		case c == ']':
			return nil, errors.New(errors.CodeUnbalancedBracket, "']' without matching '['").WithOffset(start)
		case c == '(':
			lx.pos++
			lx.tokens = append(lx.tokens, Token{Kind: TokenBranchOpen, Offset: start})
		case c == ')':
			lx.pos++
			lx.tokens = append(lx.tokens, Token{Kind: TokenBranchClose, Offset: start})
		case c == '.':
			lx.pos++
			lx.tokens = append(lx.tokens, Token{Kind: TokenDot, Offset: start})
		case c == '-' || c == '=' || c == '#' || c == ':':
			lx.pos++
			lx.tokens = append(lx.tokens, Token{Kind: TokenBond, Offset: start, Order: bondOrderFor(c)})
		case c >= '0' && c <= '9':
			lx.pos++
			lx.tokens = append(lx.tokens, Token{Kind: TokenRingClosure, Offset: start, Ring: int(c - '0')})
		case c == '%':
			tok, err := lx.percentClosure()
			if err != nil {
				return nil, err
			}
			lx.tokens = append(lx.tokens, tok)
		case c == '*':
			lx.pos++
			lx.tokens = append(lx.tokens, Token{Kind: TokenAtom, Offset: start, Symbol: "*", Wildcard: true})
		case isUpper(c) || isLower(c):
			tok, err := lx.organicAtom()
			if err != nil {
				return nil, err
			}
			lx.tokens = append(lx.tokens, tok)
		default:
			return nil, errors.New(errors.CodeUnexpectedCharacter,
				fmt.Sprintf("unexpected character %q", rune(c))).WithOffset(start)
		}
	}
	return lx.tokens, nil
}

func bondOrderFor(c byte) mol.BondOrder {
	switch c {
	case '-':
		return mol.BondSingle
	case '=':
		return mol.BondDouble
	case '#':
		return mol.BondTriple
	default:
		return mol.BondAromatic
	}
}

// percentClosure lexes the '%nn' two-digit ring-closure form.
func (lx *lexer) percentClosure() (Token, error) {
	start := lx.pos
	lx.pos++ // consume '%'
	if lx.pos+1 >= len(lx.input) || !isDigit(lx.input[lx.pos]) || !isDigit(lx.input[lx.pos+1]) {
		return Token{}, errors.Syntax(start, "'%' ring closure requires exactly two digits")
	}
	n := int(lx.input[lx.pos]-'0')*10 + int(lx.input[lx.pos+1]-'0')
	lx.pos += 2
	return Token{Kind: TokenRingClosure, Offset: start, Ring: n}, nil
}

// organicAtom lexes a bare organic-subset atom.  Two-letter symbols (Cl, Br)
// are matched greedily before single letters; lowercase letters are aromatic
// forms.
func (lx *lexer) organicAtom() (Token, error) {
	start := lx.pos
	c := lx.input[lx.pos]

	if isUpper(c) {
		// Greedy two-letter match for Cl and Br.
		if lx.pos+1 < len(lx.input) {
			two := lx.input[lx.pos : lx.pos+2]
			if two == "Cl" || two == "Br" {
				lx.pos += 2
				return Token{Kind: TokenAtom, Offset: start, Symbol: two}, nil
			}
		}
		sym := string(c)
		if !element.IsOrganicSubset(sym) {
			return Token{}, errors.New(errors.CodeUnknownElement,
				fmt.Sprintf("atom symbol %q is not in the organic subset; use brackets", sym)).WithOffset(start)
		}
		lx.pos++
		return Token{Kind: TokenAtom, Offset: start, Symbol: sym}, nil
	}

	// Lowercase aromatic form.
	sym := string(c)
	e, ok := element.ByAromaticSymbol(sym)
	if !ok || !e.Organic {
		return Token{}, errors.New(errors.CodeUnknownElement,
			fmt.Sprintf("no aromatic organic-subset atom %q", sym)).WithOffset(start)
	}
	lx.pos++
	return Token{Kind: TokenAtom, Offset: start, Symbol: e.Symbol, Aromatic: true}, nil
}

// bracketAtom lexes the full `[isotope? symbol chirality? Hcount? charge?]`
// form.  Chirality markers (@, @@) are accepted and discarded; the engine
// does not model stereochemistry.
func (lx *lexer) bracketAtom() (Token, error) {
	start := lx.pos
	lx.pos++ // consume '['
	tok := Token{Kind: TokenAtom, Offset: start, Bracket: true}

	// Isotope mass number.
	for lx.pos < len(lx.input) && isDigit(lx.input[lx.pos]) {
		tok.Isotope = tok.Isotope*10 + int(lx.input[lx.pos]-'0')
		lx.pos++
	}

	// Element symbol.
	if lx.pos >= len(lx.input) {
		return Token{}, errors.New(errors.CodeUnbalancedBracket, "unterminated bracket atom").WithOffset(start)
	}
	switch c := lx.input[lx.pos]; {
	case c == '*':
		tok.Symbol = "*"
		tok.Wildcard = true
		lx.pos++
	case isUpper(c):
		sym := string(c)
		if lx.pos+1 < len(lx.input) && isLower(lx.input[lx.pos+1]) && lx.input[lx.pos+1] != 'h' {
			two := lx.input[lx.pos : lx.pos+2]
			if _, ok := element.BySymbol(two); ok {
				sym = two
			}
		}
		e, ok := element.BySymbol(sym)
		if !ok {
			return Token{}, errors.New(errors.CodeUnknownElement,
				fmt.Sprintf("unknown element %q", sym)).WithOffset(lx.pos)
		}
		tok.Symbol = e.Symbol
		lx.pos += len(sym)
	case isLower(c):
		sym := string(c)
		if lx.pos+1 < len(lx.input) && isLower(lx.input[lx.pos+1]) {
			two := lx.input[lx.pos : lx.pos+2]
			if _, ok := element.ByAromaticSymbol(two); ok {
				sym = two
			}
		}
		e, ok := element.ByAromaticSymbol(sym)
		if !ok {
			return Token{}, errors.New(errors.CodeUnknownElement,
				fmt.Sprintf("no aromatic form for %q", sym)).WithOffset(lx.pos)
		}
		tok.Symbol = e.Symbol
		tok.Aromatic = true
		lx.pos += len(sym)
	default:
		return Token{}, errors.Syntax(lx.pos, "expected element symbol in bracket atom")
	}

	// Chirality markers, ignored.
	for lx.pos < len(lx.input) && lx.input[lx.pos] == '@' {
		lx.pos++
	}

	// Explicit hydrogen count.
	if lx.pos < len(lx.input) && lx.input[lx.pos] == 'H' {
		lx.pos++
		tok.HCount = 1
		if lx.pos < len(lx.input) && isDigit(lx.input[lx.pos]) {
			tok.HCount = int(lx.input[lx.pos] - '0')
			lx.pos++
		}
	}

	// Formal charge: +, -, ++, --, +2, -2 ...
	if lx.pos < len(lx.input) && (lx.input[lx.pos] == '+' || lx.input[lx.pos] == '-') {
		sign := 1
		if lx.input[lx.pos] == '-' {
			sign = -1
		}
		mark := lx.input[lx.pos]
		count := 1
		lx.pos++
		if lx.pos < len(lx.input) && isDigit(lx.input[lx.pos]) {
			count = int(lx.input[lx.pos] - '0')
			lx.pos++
		} else {
			for lx.pos < len(lx.input) && lx.input[lx.pos] == mark {
				count++
				lx.pos++
			}
		}
		tok.Charge = sign * count
	}

	if lx.pos >= len(lx.input) || lx.input[lx.pos] != ']' {
		return Token{}, errors.New(errors.CodeUnbalancedBracket, "unterminated bracket atom").WithOffset(start)
	}
	lx.pos++
	return tok, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
