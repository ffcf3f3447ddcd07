package errors

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes.
const (
	CodeOK             ErrorCode = "OK"
	CodeUnknown        ErrorCode = "COMMON_000"
	CodeInternal       ErrorCode = "COMMON_001"
	CodeInvalidParam   ErrorCode = "COMMON_002"
	CodeNotFound       ErrorCode = "COMMON_003"
	CodeSerialization  ErrorCode = "COMMON_004"
	CodeCacheError     ErrorCode = "COMMON_005"
	CodeUnavailable    ErrorCode = "COMMON_006"
	CodeNotImplemented ErrorCode = "COMMON_007"
)

// SMILES parse-stage error codes.  These form the user-facing taxonomy for
// malformed input: every one of them is returned as an explicit failure
// result and no partial molecule is ever exposed alongside them.
const (
	// CodeSyntax is the general lexical/grammatical failure, carrying the
	// byte offset of the offending character.
	CodeSyntax ErrorCode = "SMI_001"

	// CodeUnbalancedBracket reports an unmatched '[' or ']'.
	CodeUnbalancedBracket ErrorCode = "SMI_002"

	// CodeUnknownElement reports element text not present in the periodic table.
	CodeUnknownElement ErrorCode = "SMI_003"

	// CodeUnexpectedCharacter reports a character with no meaning at its position.
	CodeUnexpectedCharacter ErrorCode = "SMI_004"

	// CodeUnclosedRing reports a ring-closure number opened but never closed.
	CodeUnclosedRing ErrorCode = "SMI_005"

	// CodeInvalidValence reports an atom whose bond-order sum plus hydrogens
	// exceeds the element's permitted valence.
	CodeInvalidValence ErrorCode = "SMI_006"

	// CodePatternParse reports a substructure pattern that failed to parse.
	CodePatternParse ErrorCode = "SMI_007"

	// CodeResourceLimit reports input exceeding the configured length or
	// branch-nesting ceiling.  Failing fast here protects against unbounded
	// work on adversarial input.
	CodeResourceLimit ErrorCode = "SMI_008"
)

// Derivation-stage error codes.  Downstream algorithms assume a validated
// molecule; these codes cover engine misuse rather than malformed user input.
const (
	CodeFingerprintFailed ErrorCode = "CHEM_001"
	CodeSimilarityFailed  ErrorCode = "CHEM_002"
	CodeCanonicalFailed   ErrorCode = "CHEM_003"
)
