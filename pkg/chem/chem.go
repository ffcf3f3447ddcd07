// Package chem is the public surface of the molecule engine.  It re-exports
// the graph types and wraps the internal parsing, perception, canonical, and
// similarity packages as pure functions.  All functions are safe for
// concurrent use; molecules are immutable after parsing.
package chem

import (
	"github.com/turtacn/ChemGraph-Engine/internal/chem/canon"
	"github.com/turtacn/ChemGraph-Engine/internal/chem/descriptors"
	"github.com/turtacn/ChemGraph-Engine/internal/chem/fingerprint"
	"github.com/turtacn/ChemGraph-Engine/internal/chem/match"
	"github.com/turtacn/ChemGraph-Engine/internal/chem/mol"
	"github.com/turtacn/ChemGraph-Engine/internal/chem/ring"
	"github.com/turtacn/ChemGraph-Engine/internal/chem/smiles"
)

// Re-exported graph types.  The aliases keep the internal packages as the
// single source of truth while letting callers name the types from here.
type (
	Molecule    = mol.Molecule
	Atom        = mol.Atom
	Bond        = mol.Bond
	BondOrder   = mol.BondOrder
	Ring        = mol.Ring
	Fingerprint = fingerprint.Fingerprint
	Properties  = descriptors.Properties
	Lipinski    = descriptors.Lipinski
	ParseLimits = smiles.Limits
)

// Bond orders.
const (
	BondSingle   = mol.BondSingle
	BondDouble   = mol.BondDouble
	BondTriple   = mol.BondTriple
	BondAromatic = mol.BondAromatic
)

// ParseSMILES converts SMILES text into a molecular graph.  The empty string
// yields an empty molecule.  Errors are *errors.AppError values carrying a
// typed code and, for positional failures, the byte offset.
func ParseSMILES(text string) (*Molecule, error) {
	return smiles.Parse(text)
}

// ParseSMILESWithLimits is ParseSMILES with caller-supplied resource bounds.
func ParseSMILESWithLimits(text string, limits ParseLimits) (*Molecule, error) {
	return smiles.ParseWithLimits(text, limits)
}

// ValidateSMILES reports whether the text parses cleanly, valence checks
// included.
func ValidateSMILES(text string) bool {
	_, err := smiles.Parse(text)
	return err == nil
}

// NormalizeSMILES parses the text and re-emits it canonically, so any two
// spellings of the same molecule normalize to identical strings.
func NormalizeSMILES(text string) (string, error) {
	m, err := smiles.Parse(text)
	if err != nil {
		return "", err
	}
	return canon.Write(m), nil
}

// CanonicalSMILES renders an already-parsed molecule canonically.
func CanonicalSMILES(m *Molecule) string {
	return canon.Write(m)
}

// CanonicalRanks exposes the canonical atom ordering as a dense rank slice.
func CanonicalRanks(m *Molecule) []int {
	return canon.Ranks(m)
}

// FindAllRings returns the perceived minimal cycle basis with aromaticity
// classified on each ring.
func FindAllRings(m *Molecule) []Ring {
	rings, _ := ring.Aromatize(m)
	return rings
}

// IdentifyAromaticRings returns only the rings classified aromatic.
func IdentifyAromaticRings(m *Molecule) []Ring {
	return ring.AromaticRings(m)
}

// ContainsSubstructure reports whether the pattern SMILES occurs as a
// subgraph of the molecule.  The pattern is parsed without valence
// validation; '*' matches any atom.
func ContainsSubstructure(m *Molecule, pattern string) (bool, error) {
	p, err := smiles.ParsePattern(pattern)
	if err != nil {
		return false, err
	}
	return match.Contains(m, p), nil
}

// FindSubstructure returns the first embedding of the pattern as a
// pattern-to-molecule atom index mapping, or found=false.
func FindSubstructure(m *Molecule, pattern string) (mapping []int, found bool, err error) {
	p, err := smiles.ParsePattern(pattern)
	if err != nil {
		return nil, false, err
	}
	mapping, found = match.FindFirst(m, p)
	return mapping, found, nil
}

// CalculateFingerprint computes the 1024-bit path fingerprint.
func CalculateFingerprint(m *Molecule) *Fingerprint {
	return fingerprint.NewGenerator().Generate(m)
}

// CalculateSimilarity computes the Tanimoto coefficient between the default
// fingerprints of two molecules.  Two empty molecules score 1.0.
func CalculateSimilarity(a, b *Molecule) float64 {
	gen := fingerprint.NewGenerator()
	// Equal-width fingerprints from the same generator cannot fail.
	s, _ := fingerprint.Tanimoto(gen.Generate(a), gen.Generate(b))
	return s
}

// SMILESSimilarity parses both inputs and returns their Tanimoto similarity.
func SMILESSimilarity(a, b string) (float64, error) {
	ma, err := smiles.Parse(a)
	if err != nil {
		return 0, err
	}
	mb, err := smiles.Parse(b)
	if err != nil {
		return 0, err
	}
	return CalculateSimilarity(ma, mb), nil
}

// ComputeProperties derives the descriptor set for a parsed molecule.
func ComputeProperties(m *Molecule) Properties {
	return descriptors.Compute(m)
}

// RuleOfFive evaluates Lipinski's criteria over a descriptor set.
func RuleOfFive(p Properties) Lipinski {
	return descriptors.RuleOfFive(p)
}
