package evaluation

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/Pinizov/Credit-Guardian-AI-sub000/internal/application/dto"
)

// ExpectedViolation identifies one finding the case is labelled with. A
// violation matches when kind and legal basis both agree; an empty basis in
// the label matches any basis.
type ExpectedViolation struct {
	Kind       string `json:"kind" validate:"required,oneof=ILLEGAL_FEE APR_MISMATCH UNFAIR_CLAUSE UNCLASSIFIED_FEE"`
	LegalBasis string `json:"legal_basis,omitempty"`
}

// Expectation is the labelled ground truth of one case.
type Expectation struct {
	// APR is the expected annual percentage rate; empty skips the check.
	APR string `json:"apr,omitempty"`
	// APRTolerance is the accepted absolute deviation in percentage
	// points; empty defaults to 0.01.
	APRTolerance string              `json:"apr_tolerance,omitempty"`
	RiskLevel    string              `json:"risk_level,omitempty" validate:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
	Violations   []ExpectedViolation `json:"violations" validate:"dive"`
}

// Case is one labelled contract in an evaluation dataset.
type Case struct {
	ID       string                     `json:"id" validate:"required"`
	Request  dto.AnalyzeContractRequest `json:"request" validate:"required"`
	Expected Expectation                `json:"expected"`
}

// Dataset is a labelled benchmark of contracts.
type Dataset struct {
	Name  string `json:"name" validate:"required"`
	Cases []Case `json:"cases" validate:"required,min=1,dive"`
}

var datasetValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the dataset structure and rejects duplicate case IDs.
func (d Dataset) Validate() error {
	if err := datasetValidator.Struct(d); err != nil {
		return fmt.Errorf("dataset %q: %w", d.Name, err)
	}
	seen := make(map[string]struct{}, len(d.Cases))
	for _, c := range d.Cases {
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("dataset %q: duplicate case id %q", d.Name, c.ID)
		}
		seen[c.ID] = struct{}{}
	}
	return nil
}

// LoadDataset reads and validates a JSON dataset file.
func LoadDataset(path string) (Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("read dataset: %w", err)
	}
	var d Dataset
	if err := json.Unmarshal(data, &d); err != nil {
		return Dataset{}, fmt.Errorf("parse dataset: %w", err)
	}
	if err := d.Validate(); err != nil {
		return Dataset{}, err
	}
	return d, nil
}
