package valueobject

import "fmt"

// ViolationKind is the closed set of violation categories a report can carry.
//
// UNCLASSIFIED_FEE is deliberately a separate kind from ILLEGAL_FEE: an
// unmatched fee label is an advisory for manual review, not a confirmed
// statutory violation, and reports must keep the two distinguishable.
type ViolationKind struct {
	value string
}

var (
	ViolationKindIllegalFee      = ViolationKind{value: "ILLEGAL_FEE"}
	ViolationKindAPRMismatch     = ViolationKind{value: "APR_MISMATCH"}
	ViolationKindUnfairClause    = ViolationKind{value: "UNFAIR_CLAUSE"}
	ViolationKindUnclassifiedFee = ViolationKind{value: "UNCLASSIFIED_FEE"}
)

// ViolationKindFromString reconstructs a ViolationKind from its string representation.
func ViolationKindFromString(s string) (ViolationKind, error) {
	switch s {
	case "ILLEGAL_FEE":
		return ViolationKindIllegalFee, nil
	case "APR_MISMATCH":
		return ViolationKindAPRMismatch, nil
	case "UNFAIR_CLAUSE":
		return ViolationKindUnfairClause, nil
	case "UNCLASSIFIED_FEE":
		return ViolationKindUnclassifiedFee, nil
	default:
		return ViolationKind{}, fmt.Errorf("invalid violation kind: %s", s)
	}
}

// String returns the string representation.
func (v ViolationKind) String() string {
	return v.value
}

// IsZero returns true if the ViolationKind has not been set.
func (v ViolationKind) IsZero() bool {
	return v.value == ""
}

// Equal checks equality with another ViolationKind.
func (v ViolationKind) Equal(other ViolationKind) bool {
	return v.value == other.value
}
