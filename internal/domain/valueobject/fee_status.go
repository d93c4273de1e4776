package valueobject

import "fmt"

// FeeStatus is the legality classification of a contract fee.
//
// UNCLASSIFIED is the conservative default: a fee the rule table does not
// recognize is surfaced for manual review, never silently deemed legal.
type FeeStatus struct {
	value string
}

var (
	FeeStatusLegal        = FeeStatus{value: "LEGAL"}
	FeeStatusIllegal      = FeeStatus{value: "ILLEGAL"}
	FeeStatusUnclassified = FeeStatus{value: "UNCLASSIFIED"}
)

// FeeStatusFromString reconstructs a FeeStatus from its string representation.
func FeeStatusFromString(s string) (FeeStatus, error) {
	switch s {
	case "LEGAL":
		return FeeStatusLegal, nil
	case "ILLEGAL":
		return FeeStatusIllegal, nil
	case "UNCLASSIFIED":
		return FeeStatusUnclassified, nil
	default:
		return FeeStatus{}, fmt.Errorf("invalid fee status: %s", s)
	}
}

// String returns the string representation.
func (f FeeStatus) String() string {
	return f.value
}

// IsZero returns true if the FeeStatus has not been set.
func (f FeeStatus) IsZero() bool {
	return f.value == ""
}

// Equal checks equality with another FeeStatus.
func (f FeeStatus) Equal(other FeeStatus) bool {
	return f.value == other.value
}
