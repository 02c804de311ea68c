// Package recovery classifies parse and structural faults into the taxonomy
// described below and proposes an advisory recovery strategy for each class.
// Strategies are advisory only: the ingestion pipeline decides whether to
// honor them based on its configured strict/non-strict Policy.
//
// Grounded on oastools/validator's Issue/Severity taxonomy and on
// original_source/parser/error_handler.go and
// original_source/parser/structure_validator.py, which classify the same
// fault categories under the same names.
package recovery

import (
	"strings"
)

// Class identifies a parse or structural fault category.
type Class string

// Syntactic fault classes, derived from the underlying JSON decode error.
const (
	ClassTrailingComma      Class = "TrailingComma"
	ClassMissingDelimiter    Class = "MissingDelimiter"
	ClassUnterminatedString  Class = "UnterminatedString"
	ClassPropertyNameMissing Class = "PropertyNameMissing"
	ClassExtraData           Class = "ExtraData"
)

// Structural fault classes, derived from OpenAPI skeleton validation.
const (
	ClassInvalidRootType Class = "InvalidRootType"
	ClassMissingField    Class = "MissingField"
	ClassWrongType       Class = "WrongType"
	ClassInvalidPathName Class = "InvalidPathName"
	ClassInvalidMethod   Class = "InvalidMethod"
	ClassUnknown         Class = "Unknown"
)

// Strategy is the advisory recovery action associated with a fault Class.
type Strategy string

const (
	// StrategyFailFast aborts parsing immediately (used in strict mode).
	StrategyFailFast Strategy = "FailFast"
	// StrategySkipSection drops one subtree and continues parsing.
	StrategySkipSection Strategy = "SkipSection"
	// StrategyUseDefault substitutes a configured default value.
	StrategyUseDefault Strategy = "UseDefault"
	// StrategyRetry attempts one automatic repair (trailing-comma removal, quote-escaping heuristic).
	StrategyRetry Strategy = "Retry"
	// StrategyPartialParse returns whatever was successfully parsed before the fault.
	StrategyPartialParse Strategy = "PartialParse"
)

// Fault describes one classified parse or structural error.
type Fault struct {
	Class      Class
	Path       string // JSON path for structural faults, e.g. "paths./pets.get"
	Expected   string // populated for WrongType
	Actual     string // populated for WrongType
	Message    string
	Suggestion string
	Strategy   Strategy
}

// recommendedStrategy maps a fault Class to its default advisory Strategy.
var recommendedStrategy = map[Class]Strategy{
	ClassTrailingComma:      StrategyRetry,
	ClassMissingDelimiter:   StrategyFailFast,
	ClassUnterminatedString: StrategyFailFast,
	ClassPropertyNameMissing: StrategyRetry,
	ClassExtraData:          StrategyPartialParse,
	ClassInvalidRootType:    StrategyFailFast,
	ClassMissingField:       StrategyUseDefault,
	ClassWrongType:          StrategySkipSection,
	ClassInvalidPathName:    StrategySkipSection,
	ClassInvalidMethod:      StrategySkipSection,
	ClassUnknown:            StrategyFailFast,
}

// Classify inspects a raw JSON decode error message and returns the fault
// Class it belongs to. Go's encoding/json and yaml.Node decoders do not
// expose a structured error taxonomy, so classification is done on the
// error text, matching the substrings each decoder is known to emit.
// This is the one place such substring matching is appropriate: it is the
// throwing-site classification, not ad-hoc handling
// scattered across callers.
func Classify(errMsg string) Class {
	lower := strings.ToLower(errMsg)
	switch {
	case strings.Contains(lower, "trailing comma") || strings.Contains(lower, "trailing,"):
		return ClassTrailingComma
	case strings.Contains(lower, "unterminated string") || strings.Contains(lower, "unterminated quote"):
		return ClassUnterminatedString
	case strings.Contains(lower, "did not find expected") && strings.Contains(lower, "key"):
		return ClassPropertyNameMissing
	case strings.Contains(lower, "unexpected end of") || strings.Contains(lower, "unexpected eof"):
		return ClassMissingDelimiter
	case strings.Contains(lower, "invalid character") && strings.Contains(lower, "after top-level value"):
		return ClassExtraData
	default:
		return ClassUnknown
	}
}

// RecommendedStrategy returns the advisory Strategy for a Class.
func RecommendedStrategy(c Class) Strategy {
	if s, ok := recommendedStrategy[c]; ok {
		return s
	}
	return StrategyFailFast
}

// Policy controls whether the ingestion pipeline honors an advisory
// Strategy. Strategies are advisory only.
type Policy struct {
	// Strict, when true, turns any recoverable error into an immediate abort
	// regardless of the fault's recommended Strategy.
	Strict bool
	// MaxErrors bounds how many recoverable faults a non-strict parse may
	// accumulate before aborting.
	MaxErrors int
}

// DefaultPolicy matches the spec's documented non-strict default.
func DefaultPolicy() Policy {
	return Policy{Strict: false, MaxErrors: 50}
}

// Accumulator tracks faults encountered during one parse/normalize pass and
// decides, fault by fault, whether parsing may continue.
type Accumulator struct {
	policy Policy
	faults []Fault
}

// NewAccumulator creates an Accumulator governed by policy.
func NewAccumulator(policy Policy) *Accumulator {
	return &Accumulator{policy: policy}
}

// Record appends a fault and reports whether the caller should keep parsing.
// Strict mode aborts on the very first fault. Non-strict mode aborts once
// MaxErrors recoverable faults have accumulated.
func (a *Accumulator) Record(f Fault) (shouldContinue bool) {
	a.faults = append(a.faults, f)
	if a.policy.Strict {
		return false
	}
	if a.policy.MaxErrors > 0 && len(a.faults) >= a.policy.MaxErrors {
		return false
	}
	return true
}

// Faults returns all faults recorded so far.
func (a *Accumulator) Faults() []Fault {
	return a.faults
}
