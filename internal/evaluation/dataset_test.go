package evaluation_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pinizov/Credit-Guardian-AI-sub000/internal/evaluation"
)

const sampleDataset = `{
  "name": "smoke",
  "cases": [
    {
      "id": "clean-annual-loan",
      "request": {
        "terms": {
          "principal": 1000,
          "declared_apr": 10,
          "currency": "BGN",
          "cash_flows": [
            {"date": "2023-01-01", "amount": 1000},
            {"date": "2024-01-01", "amount": -1100}
          ]
        }
      },
      "expected": {
        "apr": "10",
        "risk_level": "LOW",
        "violations": []
      }
    },
    {
      "id": "illegal-fee",
      "request": {
        "terms": {
          "principal": 1000,
          "declared_apr": 10,
          "currency": "BGN",
          "cash_flows": [
            {"date": "2023-01-01", "amount": 1000},
            {"date": "2024-01-01", "amount": -1100}
          ],
          "fees": [{"label": "такса за управление", "amount": 50}]
        }
      },
      "expected": {
        "violations": [{"kind": "ILLEGAL_FEE", "legal_basis": "чл. 10а, ал. 2 ЗПК"}]
      }
    }
  ]
}`

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDataset(t *testing.T) {
	d, err := evaluation.LoadDataset(writeDataset(t, sampleDataset))
	require.NoError(t, err)

	assert.Equal(t, "smoke", d.Name)
	require.Len(t, d.Cases, 2)
	assert.Equal(t, "clean-annual-loan", d.Cases[0].ID)
	assert.Equal(t, "10", d.Cases[0].Expected.APR)
	assert.Equal(t, "ILLEGAL_FEE", d.Cases[1].Expected.Violations[0].Kind)
}

func TestLoadDataset_MissingFile(t *testing.T) {
	_, err := evaluation.LoadDataset(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadDataset_MalformedJSON(t *testing.T) {
	_, err := evaluation.LoadDataset(writeDataset(t, `{"name": "broken"`))
	assert.Error(t, err)
}

func TestLoadDataset_RejectsEmptyCases(t *testing.T) {
	_, err := evaluation.LoadDataset(writeDataset(t, `{"name": "empty", "cases": []}`))
	assert.Error(t, err)
}

func TestLoadDataset_RejectsDuplicateIDs(t *testing.T) {
	dup := `{
  "name": "dup",
  "cases": [
    {"id": "a", "request": {"terms": {"principal": 1, "currency": "BGN", "cash_flows": [{"date": "2024-01-01", "amount": 1}, {"date": "2024-02-01", "amount": -1}]}}},
    {"id": "a", "request": {"terms": {"principal": 1, "currency": "BGN", "cash_flows": [{"date": "2024-01-01", "amount": 1}, {"date": "2024-02-01", "amount": -1}]}}}
  ]
}`
	_, err := evaluation.LoadDataset(writeDataset(t, dup))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate case id")
}

func TestLoadDataset_RejectsUnknownViolationKind(t *testing.T) {
	bad := `{
  "name": "bad-kind",
  "cases": [
    {
      "id": "a",
      "request": {"terms": {"principal": 1, "currency": "BGN", "cash_flows": [{"date": "2024-01-01", "amount": 1}, {"date": "2024-02-01", "amount": -1}]}},
      "expected": {"violations": [{"kind": "SOMETHING_ELSE"}]}
    }
  ]
}`
	_, err := evaluation.LoadDataset(writeDataset(t, bad))
	assert.Error(t, err)
}
