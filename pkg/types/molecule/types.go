// Package molecule defines the molecule-domain data transfer objects and
// request/response structures shared by the service, CLI, and client layers.
// No chemistry logic lives here, only plain data types that any layer can
// import without creating cycles.
package molecule

import (
	"github.com/turtacn/ChemGraph-Engine/pkg/types/common"
)

// ─────────────────────────────────────────────────────────────────────────────
// Properties
// ─────────────────────────────────────────────────────────────────────────────

// Properties holds the computed physicochemical descriptor set.
type Properties struct {
	// Formula is the molecular formula in Hill order (C, H, then alphabetical).
	Formula string `json:"formula"`

	// MolecularWeight is the summed average atomic mass, implicit hydrogens
	// included, in g/mol.
	MolecularWeight float64 `json:"molecular_weight"`

	// HeavyAtoms counts explicit (non-hydrogen) atoms.
	HeavyAtoms int `json:"heavy_atoms"`

	// RingCount is the size of the perceived minimal cycle basis.
	RingCount int `json:"ring_count"`

	// AromaticRings counts the rings classified aromatic by Hückel's rule.
	AromaticRings int `json:"aromatic_rings"`

	// HBondDonors counts N and O atoms carrying at least one hydrogen.
	HBondDonors int `json:"h_bond_donors"`

	// HBondAcceptors counts N and O atoms.
	HBondAcceptors int `json:"h_bond_acceptors"`

	// RotatableBonds counts non-terminal acyclic single bonds.
	RotatableBonds int `json:"rotatable_bonds"`

	// LogP is an additive estimate of the octanol-water partition coefficient.
	LogP float64 `json:"logp"`

	// LipinskiViolations counts rule-of-five breaches; LipinskiPass is true
	// when at most one rule is violated.
	LipinskiViolations int  `json:"lipinski_violations"`
	LipinskiPass       bool `json:"lipinski_pass"`
}

// ─────────────────────────────────────────────────────────────────────────────
// MoleculeDTO
// ─────────────────────────────────────────────────────────────────────────────

// MoleculeDTO is the canonical molecule record passed between the service and
// interface layers.
type MoleculeDTO struct {
	common.BaseEntity

	// SMILES is the input string as supplied by the caller.
	SMILES string `json:"smiles"`

	// CanonicalSMILES is the engine's canonical rendering.
	CanonicalSMILES string `json:"canonical_smiles"`

	// AtomCount and BondCount describe the parsed graph (heavy atoms only).
	AtomCount int `json:"atom_count"`
	BondCount int `json:"bond_count"`

	// FingerprintHex is the packed path fingerprint in lowercase hex.  Empty
	// when the fingerprint was not requested.
	FingerprintHex string `json:"fingerprint_hex,omitempty"`

	// Properties is nil when descriptors were not requested.
	Properties *Properties `json:"properties,omitempty"`
}

// Ring describes one perceived ring.
type Ring struct {
	// Atoms lists member atom indices in cyclic order.
	Atoms []int `json:"atoms"`

	Size     int  `json:"size"`
	Aromatic bool `json:"aromatic"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Request / response structures
// ─────────────────────────────────────────────────────────────────────────────

// ValidationResult is the outcome of a syntax-and-valence check.
type ValidationResult struct {
	Valid bool `json:"valid"`

	// Error is set when Valid is false.
	Error *common.ErrorDetail `json:"error,omitempty"`
}

// SimilarityResult reports one pairwise Tanimoto comparison.
type SimilarityResult struct {
	Query      string  `json:"query"`
	Target     string  `json:"target"`
	Similarity float64 `json:"similarity"`
}

// MatchResult reports one substructure query.
type MatchResult struct {
	Pattern string `json:"pattern"`
	Target  string `json:"target"`
	Found   bool   `json:"found"`

	// AtomMapping maps pattern atom index to target atom index for the first
	// embedding found; nil when Found is false.
	AtomMapping []int `json:"atom_mapping,omitempty"`
}
