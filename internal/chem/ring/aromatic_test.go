package ring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAromatize_Benzene(t *testing.T) {
	for _, spelling := range []string{"c1ccccc1", "C1=CC=CC=C1"} {
		t.Run(spelling, func(t *testing.T) {
			m := mustParse(t, spelling)
			rings, atomAromatic := Aromatize(m)
			require.Len(t, rings, 1)
			assert.True(t, rings[0].Aromatic)
			for i := range atomAromatic {
				assert.True(t, atomAromatic[i])
			}
		})
	}
}

func TestAromatize_Cyclohexane(t *testing.T) {
	m := mustParse(t, "C1CCCCC1")
	rings, atomAromatic := Aromatize(m)
	require.Len(t, rings, 1)
	assert.False(t, rings[0].Aromatic)
	for i := range atomAromatic {
		assert.False(t, atomAromatic[i])
	}
}

func TestAromatize_Heteroaromatics(t *testing.T) {
	tests := []struct {
		name     string
		smiles   string
		aromatic bool
	}{
		{"pyridine", "c1ccncc1", true},
		{"pyridine kekule", "C1=CC=NC=C1", true},
		{"furan", "o1cccc1", true},
		{"furan kekule", "O1C=CC=C1", true},
		{"pyrrole", "c1cc[nH]c1", true},
		{"thiophene", "s1cccc1", true},
		{"cyclopentadiene", "C1=CC=CC1", false},
		{"cyclohexene", "C1=CCCCC1", false},
		{"cyclobutadiene", "C1=CC=C1", false},
		{"cyclooctatetraene", "C1=CC=CC=CC=C1", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := mustParse(t, tc.smiles)
			rings, _ := Aromatize(m)
			require.Len(t, rings, 1)
			assert.Equal(t, tc.aromatic, rings[0].Aromatic)
		})
	}
}

func TestAromatize_Naphthalene(t *testing.T) {
	m := mustParse(t, "c1ccc2ccccc2c1")
	rings, atomAromatic := Aromatize(m)
	require.Len(t, rings, 2)
	assert.True(t, rings[0].Aromatic)
	assert.True(t, rings[1].Aromatic)
	for i := range atomAromatic {
		assert.True(t, atomAromatic[i])
	}
}

func TestAromatize_MixedSystem(t *testing.T) {
	// Tetralin: one aromatic ring fused to one saturated ring.
	m := mustParse(t, "c1ccc2CCCCc2c1")
	rings, _ := Aromatize(m)
	require.Len(t, rings, 2)

	aromatic := 0
	for _, r := range rings {
		if r.Aromatic {
			aromatic++
		}
	}
	assert.Equal(t, 1, aromatic)
}

func TestAromaticRings_FiltersAliphatic(t *testing.T) {
	m := mustParse(t, "c1ccc2CCCCc2c1")
	rings := AromaticRings(m)
	require.Len(t, rings, 1)
	assert.True(t, rings[0].Aromatic)

	assert.Empty(t, AromaticRings(mustParse(t, "C1CCCCC1")))
}

func TestAromatize_DeclaredFlagsSurvive(t *testing.T) {
	// A lowercase-declared atom stays flagged even outside a perceived
	// aromatic ring; the combined view unions both sources.
	m := mustParse(t, "c1ccccc1C")
	_, atomAromatic := Aromatize(m)
	assert.True(t, atomAromatic[0])
	assert.False(t, atomAromatic[6], "the methyl carbon is aliphatic")
}

func TestAromatize_KekuleNaphthalene(t *testing.T) {
	// Each fusion carbon's double bond lies in the neighboring ring, so the
	// sp2 check must look at all ring bonds of the atom, not only the bonds
	// inside the candidate ring.
	m := mustParse(t, "C1=CC=C2C=CC=CC2=C1")
	rings, atomAromatic := Aromatize(m)
	require.Len(t, rings, 2)
	for ri, r := range rings {
		assert.Equal(t, 6, r.Size())
		assert.True(t, r.Aromatic, "ring %d", ri)
	}
	for i := range atomAromatic {
		assert.True(t, atomAromatic[i], "atom %d", i)
	}
}

func TestAromatize_ExocyclicDoubleStaysSp3(t *testing.T) {
	// Methylenecyclohexadiene: the CH2= double bond points out of the ring,
	// so the bearing carbon does not complete a conjugated circuit.
	m := mustParse(t, "C=C1C=CC=CC1")
	rings, _ := Aromatize(m)
	require.Len(t, rings, 1)
	assert.False(t, rings[0].Aromatic)
}
