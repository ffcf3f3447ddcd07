package smiles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ChemGraph-Engine/internal/chem/mol"
	"github.com/turtacn/ChemGraph-Engine/pkg/errors"
)

func TestTokenize_OrganicAtoms(t *testing.T) {
	tokens, err := Tokenize("CCO")
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, "C", tokens[0].Symbol)
	assert.Equal(t, "C", tokens[1].Symbol)
	assert.Equal(t, "O", tokens[2].Symbol)
	assert.Equal(t, 2, tokens[2].Offset)
	for _, tok := range tokens {
		assert.Equal(t, TokenAtom, tok.Kind)
		assert.False(t, tok.Aromatic)
		assert.False(t, tok.Bracket)
	}
}

func TestTokenize_TwoLetterSymbols(t *testing.T) {
	tokens, err := Tokenize("ClCBr")
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, "Cl", tokens[0].Symbol)
	assert.Equal(t, "C", tokens[1].Symbol)
	assert.Equal(t, "Br", tokens[2].Symbol)
	assert.Equal(t, 3, tokens[2].Offset)
}

func TestTokenize_AromaticAtoms(t *testing.T) {
	tokens, err := Tokenize("cno")
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	for i, want := range []string{"C", "N", "O"} {
		assert.Equal(t, want, tokens[i].Symbol)
		assert.True(t, tokens[i].Aromatic)
	}
}

func TestTokenize_BondsAndStructure(t *testing.T) {
	tokens, err := Tokenize("C(=O)#N")
	require.NoError(t, err)
	require.Len(t, tokens, 7)

	assert.Equal(t, TokenBranchOpen, tokens[1].Kind)
	assert.Equal(t, TokenBond, tokens[2].Kind)
	assert.Equal(t, mol.BondDouble, tokens[2].Order)
	assert.Equal(t, TokenBranchClose, tokens[4].Kind)
	assert.Equal(t, TokenBond, tokens[5].Kind)
	assert.Equal(t, mol.BondTriple, tokens[5].Order)
}

func TestTokenize_BondSymbols(t *testing.T) {
	tokens, err := Tokenize("C-C=C#C:C")
	require.NoError(t, err)
	require.Len(t, tokens, 9)
	assert.Equal(t, mol.BondSingle, tokens[1].Order)
	assert.Equal(t, mol.BondDouble, tokens[3].Order)
	assert.Equal(t, mol.BondTriple, tokens[5].Order)
	assert.Equal(t, mol.BondAromatic, tokens[7].Order)
}

func TestTokenize_DotAndRingClosures(t *testing.T) {
	tokens, err := Tokenize("C1.C%23")
	require.NoError(t, err)
	require.Len(t, tokens, 5)
	assert.Equal(t, TokenRingClosure, tokens[1].Kind)
	assert.Equal(t, 1, tokens[1].Ring)
	assert.Equal(t, TokenDot, tokens[2].Kind)
	assert.Equal(t, TokenRingClosure, tokens[4].Kind)
	assert.Equal(t, 23, tokens[4].Ring)
}

func TestTokenize_Wildcard(t *testing.T) {
	tokens, err := Tokenize("*")
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.True(t, tokens[0].Wildcard)
	assert.Equal(t, "*", tokens[0].Symbol)
}

func TestTokenize_BracketAtoms(t *testing.T) {
	tests := []struct {
		input string
		want  Token
	}{
		{"[NH4+]", Token{Symbol: "N", Bracket: true, HCount: 4, Charge: 1}},
		{"[O-]", Token{Symbol: "O", Bracket: true, Charge: -1}},
		{"[13CH4]", Token{Symbol: "C", Bracket: true, Isotope: 13, HCount: 4}},
		{"[Fe+2]", Token{Symbol: "Fe", Bracket: true, Charge: 2}},
		{"[Fe++]", Token{Symbol: "Fe", Bracket: true, Charge: 2}},
		{"[O--]", Token{Symbol: "O", Bracket: true, Charge: -2}},
		{"[C@H]", Token{Symbol: "C", Bracket: true, HCount: 1}},
		{"[nH]", Token{Symbol: "N", Bracket: true, Aromatic: true, HCount: 1}},
		{"[se]", Token{Symbol: "Se", Bracket: true, Aromatic: true}},
		{"[*]", Token{Symbol: "*", Bracket: true, Wildcard: true}},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			tokens, err := Tokenize(tc.input)
			require.NoError(t, err)
			require.Len(t, tokens, 1)
			got := tokens[0]
			assert.Equal(t, TokenAtom, got.Kind)
			assert.Equal(t, tc.want.Symbol, got.Symbol)
			assert.Equal(t, tc.want.Aromatic, got.Aromatic)
			assert.Equal(t, tc.want.Wildcard, got.Wildcard)
			assert.Equal(t, tc.want.Isotope, got.Isotope)
			assert.Equal(t, tc.want.HCount, got.HCount)
			assert.Equal(t, tc.want.Charge, got.Charge)
			assert.True(t, got.Bracket)
		})
	}
}

func TestTokenize_Errors(t *testing.T) {
	tests := []struct {
		input  string
		code   errors.ErrorCode
		offset int
	}{
		{"C]", errors.CodeUnbalancedBracket, 1},
		{"[C", errors.CodeUnbalancedBracket, 0},
		{"[13]", errors.CodeSyntax, 3},
		{"[Xx]", errors.CodeUnknownElement, 1},
		{"Cy", errors.CodeUnknownElement, 1},
		{"X", errors.CodeUnknownElement, 0},
		{"C$C", errors.CodeUnexpectedCharacter, 1},
		{"C%1", errors.CodeSyntax, 1},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			_, err := Tokenize(tc.input)
			require.Error(t, err)
			assert.Equal(t, tc.code, errors.GetCode(err))
			assert.Equal(t, tc.offset, errors.GetOffset(err))
		})
	}
}

func TestTokenize_Empty(t *testing.T) {
	tokens, err := Tokenize("")
	require.NoError(t, err)
	assert.Empty(t, tokens)
}
