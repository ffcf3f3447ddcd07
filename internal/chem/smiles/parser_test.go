package smiles

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ChemGraph-Engine/internal/chem/mol"
	"github.com/turtacn/ChemGraph-Engine/pkg/errors"
)

func TestParse_Empty(t *testing.T) {
	m, err := Parse("")
	require.NoError(t, err)
	assert.Equal(t, 0, m.NumAtoms())
	assert.Equal(t, 0, m.NumBonds())
}

func TestParse_Ethanol(t *testing.T) {
	m, err := Parse("CCO")
	require.NoError(t, err)
	require.Equal(t, 3, m.NumAtoms())
	require.Equal(t, 2, m.NumBonds())

	assert.Equal(t, 3, m.Atoms[0].Hydrogens)
	assert.Equal(t, 2, m.Atoms[1].Hydrogens)
	assert.Equal(t, 1, m.Atoms[2].Hydrogens)
	assert.Equal(t, 8, m.Atoms[2].AtomicNumber)
	for _, b := range m.Bonds {
		assert.Equal(t, mol.BondSingle, b.Order)
		assert.False(t, b.Explicit)
	}
}

func TestParse_MultipleBonds(t *testing.T) {
	m, err := Parse("O=C=O")
	require.NoError(t, err)
	require.Equal(t, 3, m.NumAtoms())
	assert.Equal(t, mol.BondDouble, m.Bonds[0].Order)
	assert.Equal(t, mol.BondDouble, m.Bonds[1].Order)
	assert.Equal(t, 0, m.Atoms[1].Hydrogens)
	assert.Equal(t, 0, m.Atoms[0].Hydrogens)

	m, err = Parse("C#N")
	require.NoError(t, err)
	assert.Equal(t, mol.BondTriple, m.Bonds[0].Order)
	assert.Equal(t, 1, m.Atoms[0].Hydrogens)
	assert.Equal(t, 0, m.Atoms[1].Hydrogens)
}

func TestParse_Branches(t *testing.T) {
	m, err := Parse("CC(O)C")
	require.NoError(t, err)
	require.Equal(t, 4, m.NumAtoms())
	assert.Equal(t, 3, m.Degree(1))
	assert.ElementsMatch(t, []int{0, 2, 3}, m.Neighbors(1))

	// Neopentane: four branches off one center.
	m, err = Parse("CC(C)(C)C")
	require.NoError(t, err)
	assert.Equal(t, 4, m.Degree(1))
	assert.Equal(t, 0, m.Atoms[1].Hydrogens)
}

func TestParse_RingClosure(t *testing.T) {
	m, err := Parse("C1CCCCC1")
	require.NoError(t, err)
	assert.Equal(t, 6, m.NumAtoms())
	require.Equal(t, 6, m.NumBonds())

	closing := m.Bonds[5]
	assert.True(t, closing.RingClosure)
	assert.Equal(t, 2, m.Atoms[0].Hydrogens)

	// The same digit can be reused after it closes.
	m, err = Parse("C1CC1C1CC1")
	require.NoError(t, err)
	assert.Equal(t, 6, m.NumAtoms())
	assert.Equal(t, 7, m.NumBonds())
}

func TestParse_AromaticRing(t *testing.T) {
	m, err := Parse("c1ccccc1")
	require.NoError(t, err)
	require.Equal(t, 6, m.NumAtoms())
	require.Equal(t, 6, m.NumBonds())
	for i := range m.Atoms {
		assert.True(t, m.Atoms[i].Aromatic)
		assert.Equal(t, 1, m.Atoms[i].Hydrogens)
	}
	for _, b := range m.Bonds {
		assert.Equal(t, mol.BondAromatic, b.Order)
	}
}

func TestParse_BracketAtoms(t *testing.T) {
	m, err := Parse("[NH4+]")
	require.NoError(t, err)
	a := m.Atoms[0]
	assert.Equal(t, 4, a.Hydrogens)
	assert.Equal(t, 1, a.Charge)
	assert.True(t, a.Bracket)

	m, err = Parse("[13CH4]")
	require.NoError(t, err)
	assert.Equal(t, 13, m.Atoms[0].Isotope)
	assert.Equal(t, 4, m.Atoms[0].Hydrogens)
}

func TestParse_Fragments(t *testing.T) {
	m, err := Parse("[Na+].[Cl-]")
	require.NoError(t, err)
	assert.Equal(t, 2, m.NumAtoms())
	assert.Equal(t, 0, m.NumBonds())
	assert.Len(t, m.Fragments(), 2)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.ErrorCode
	}{
		{"unclosed branch", "C(", errors.CodeSyntax},
		{"stray close", "C)", errors.CodeSyntax},
		{"branch without atom", "(C)", errors.CodeSyntax},
		{"unclosed ring", "C1CC", errors.CodeUnclosedRing},
		{"self ring bond", "C11", errors.CodeSyntax},
		{"conflicting ring orders", "C=1CC#1", errors.CodeSyntax},
		{"dangling bond", "C=", errors.CodeSyntax},
		{"leading bond", "=C", errors.CodeSyntax},
		{"bond after dot", "C.=C", errors.CodeSyntax},
		{"duplicate bond", "C12CC12", errors.CodeSyntax},
		{"carbon valence", "C(C)(C)(C)(C)C", errors.CodeInvalidValence},
		{"oxygen valence", "O(C)(C)C", errors.CodeInvalidValence},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := Parse(tc.input)
			require.Error(t, err)
			assert.Nil(t, m, "no partial molecule on failure")
			assert.Equal(t, tc.code, errors.GetCode(err))
		})
	}
}

func TestParse_ErrorOffsets(t *testing.T) {
	_, err := Parse("C1CC")
	assert.Equal(t, 1, errors.GetOffset(err), "points at the opening digit")

	_, err = Parse("C$C")
	assert.Equal(t, 1, errors.GetOffset(err))
}

func TestParse_ChargeShiftsValence(t *testing.T) {
	// Ammonium: four bonds on nitrogen are legal only with the +1 charge.
	_, err := Parse("[NH3+]C")
	assert.NoError(t, err)

	// Hydroxide bound once is fine with the -1 charge accounted.
	_, err = Parse("[O-]C")
	assert.NoError(t, err)
}

func TestParseWithLimits(t *testing.T) {
	_, err := ParseWithLimits("CCO", Limits{MaxInputBytes: 2})
	require.Error(t, err)
	assert.Equal(t, errors.CodeResourceLimit, errors.GetCode(err))

	_, err = ParseWithLimits("C(C(C(C)))", Limits{MaxBranchDepth: 2})
	require.Error(t, err)
	assert.Equal(t, errors.CodeResourceLimit, errors.GetCode(err))

	// Zero disables both bounds.
	_, err = ParseWithLimits(strings.Repeat("C", 100), Limits{})
	assert.NoError(t, err)
}

func TestParsePattern(t *testing.T) {
	// Patterns skip valence validation.
	m, err := ParsePattern("C(C)(C)(C)(C)C")
	require.NoError(t, err)
	assert.Equal(t, 6, m.NumAtoms())

	// Wildcard atoms are pattern-only carriers.
	m, err = ParsePattern("*O")
	require.NoError(t, err)
	assert.True(t, m.Atoms[0].Wildcard)

	// Lexical failures still surface, wrapped with the pattern code.
	_, err = ParsePattern("C(")
	require.Error(t, err)
	assert.Equal(t, errors.CodePatternParse, errors.GetCode(err))
}

func TestParse_FusedAromaticRings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		atoms int
		bonds int
	}{
		{"naphthalene", "c1ccc2ccccc2c1", 10, 11},
		{"naphthalene branch form", "c1ccc2c(c1)cccc2", 10, 11},
		{"indole", "c1ccc2[nH]ccc2c1", 9, 10},
		{"quinoline", "n1ccc2ccccc2c1", 10, 11},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := Parse(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.atoms, m.NumAtoms())
			assert.Equal(t, tc.bonds, m.NumBonds())
		})
	}
}

func TestParse_FusionAtomHydrogens(t *testing.T) {
	m, err := Parse("c1ccc2ccccc2c1")
	require.NoError(t, err)

	// Three aromatic bonds occupy all four valences of a fusion carbon; the
	// eight peripheral carbons each keep one hydrogen.
	for i := range m.Atoms {
		want := 1
		if m.Degree(i) == 3 {
			want = 0
		}
		assert.Equal(t, want, m.Atoms[i].Hydrogens, "atom %d", i)
	}
}

func TestParse_AromaticHeteroatomHydrogens(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		hetero int // atom index of the heteroatom
	}{
		{"furan", "c1ccoc1", 3},
		{"thiophene", "s1cccc1", 0},
		{"pyridine", "c1ccncc1", 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := Parse(tc.input)
			require.NoError(t, err)
			// The pi system rides on a lone pair (o, s) or the ring double
			// bond (pyridine n); none of these carry a hydrogen.
			assert.Equal(t, 0, m.Atoms[tc.hetero].Hydrogens)
		})
	}
}
