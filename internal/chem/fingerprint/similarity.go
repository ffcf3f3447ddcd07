package fingerprint

import (
	"math/bits"

	"github.com/turtacn/ChemGraph-Engine/pkg/errors"
)

// Tanimoto computes |A∧B| / |A∨B| over two equally sized fingerprints.  Two
// all-zero vectors are defined to be identical, similarity 1.0.
func Tanimoto(a, b *Fingerprint) (float64, error) {
	if a == nil || b == nil {
		return 0, errors.New(errors.CodeSimilarityFailed, "nil fingerprint")
	}
	if a.size != b.size {
		return 0, errors.Newf(errors.CodeSimilarityFailed,
			"fingerprint sizes differ: %d vs %d bits", a.size, b.size)
	}

	inter, union := 0, 0
	for i := range a.bits {
		inter += bits.OnesCount8(a.bits[i] & b.bits[i])
		union += bits.OnesCount8(a.bits[i] | b.bits[i])
	}
	if union == 0 {
		return 1.0, nil
	}
	return float64(inter) / float64(union), nil
}
