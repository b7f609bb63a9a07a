package phoenixparser

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	raw := `תאריך,תיאור,סכום,יתרה
10/01/2024,הפקדה לחיסכון,500.00,10500.00
11/01/2024,משיכה מחיסכון,-1200.00,9300.00
garbage`

	txs, err := Parse(raw)
	require.NoError(t, err)
	require.Len(t, txs, 2)

	// Deposit keeps its positive sign, withdrawal its negative sign.
	assert.True(t, decimal.RequireFromString("500").Equal(txs[0].Amount))
	assert.True(t, decimal.RequireFromString("-1200").Equal(txs[1].Amount))
	assert.Equal(t, "phoenix_2024-01-10_הפקדה לחיסכון_500.00", txs[0].ImportID)
	assert.Equal(t, "phoenix_2024-01-11_משיכה מחיסכון_1200.00", txs[1].ImportID)
}
