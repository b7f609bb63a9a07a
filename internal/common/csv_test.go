package common

import (
	"os"
	"path/filepath"
	"testing"

	"ybarda/heshbon/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitLine(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "simple",
			input:    "a,b,c",
			expected: []string{"a", "b", "c"},
		},
		{
			name:     "quoted comma",
			input:    `01/02/2024,"סופר, שכונתי",120.50`,
			expected: []string{"01/02/2024", "סופר, שכונתי", "120.50"},
		},
		{
			name:     "escaped quote",
			input:    `a,"he said ""hi""",b`,
			expected: []string{"a", `he said "hi"`, "b"},
		},
		{
			name:     "empty fields",
			input:    "a,,c,",
			expected: []string{"a", "", "c", ""},
		},
		{
			name:     "whitespace trimmed",
			input:    " a , b ",
			expected: []string{"a", "b"},
		},
		{
			name:     "single field",
			input:    "only",
			expected: []string{"only"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitLine(tt.input))
		})
	}
}

func TestSplitLines(t *testing.T) {
	raw := "first\r\n\r\nsecond\nthird\n\n"
	assert.Equal(t, []string{"first", "second", "third"}, SplitLines(raw))
}

func TestWriteTransactionsToCSV(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out", "ledger.csv")

	txs := []models.Transaction{
		{
			Date:        "2024-02-01",
			Description: "העברה אל: דוד",
			Amount:      decimal.RequireFromString("120.50"),
			Type:        models.TypeExpense,
			ImportID:    "leumi_2024-02-01_123_120.50",
			Category:    "Rent",
			Confidence:  0.95,
		},
	}

	require.NoError(t, WriteTransactionsToCSV(txs, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "Date")
	assert.Contains(t, content, "2024-02-01")
	assert.Contains(t, content, "העברה אל: דוד")
	assert.Contains(t, content, "leumi_2024-02-01_123_120.50")
}

func TestWriteTransactionsToCSV_Nil(t *testing.T) {
	err := WriteTransactionsToCSV(nil, filepath.Join(t.TempDir(), "x.csv"))
	assert.Error(t, err)
}
