package htmltable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ledgerExport = `
<html><body>
<table>
<tr><td colspan="7">בנק לאומי - תנועות בחשבון</td></tr>
<tr><td>לקוח יקר</td></tr>
<tr>
  <td>תאריך</td><td>תאריך ערך</td><td>תיאור</td><td>אסמכתא</td>
  <td>בחובה</td><td>בזכות</td><td>יתרה</td><td>פירוט נוסף</td>
</tr>
<tr>
  <td>16/03/2025</td><td>16/03/2025</td><td>העברה אל: דוד</td><td>123456</td>
  <td>350.00</td><td></td><td>5,200.00</td><td>העברה אל: דוד כהן 123</td>
</tr>
<tr>
  <td>15/03/2025</td><td>15/03/2025</td><td>משכורת</td><td>654321</td>
  <td></td><td>12,000.00</td><td>5,550.00</td><td></td>
</tr>
</table>
</body></html>`

func TestDetect(t *testing.T) {
	assert.True(t, Detect(ledgerExport))
	assert.True(t, Detect("<TABLE><TR><TD>x</TD></TR></TABLE>"))
	assert.True(t, Detect("some text <tr> more"))
	assert.False(t, Detect("date,description,amount\n01/02/2024,coffee,12"))
	assert.False(t, Detect(""))
}

func TestExtract(t *testing.T) {
	rows, err := Extract(ledgerExport)
	require.NoError(t, err)
	require.Len(t, rows, 5)

	assert.Equal(t, []string{"בנק לאומי - תנועות בחשבון"}, rows[0])
	assert.Equal(t, "תאריך", rows[2][0])
	assert.Equal(t, "16/03/2025", rows[3][0])
	assert.Equal(t, "העברה אל: דוד כהן 123", rows[3][7])
}

func TestExtract_TagSoup(t *testing.T) {
	// Unclosed cells and rows must still parse.
	soup := `<table><tr><td>תאריך<td>תיאור<tr><td>01/02/2024<td>קניות`
	rows, err := Extract(soup)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"תאריך", "תיאור"}, rows[0])
	assert.Equal(t, []string{"01/02/2024", "קניות"}, rows[1])
}

func TestExtract_EntityEncodedCells(t *testing.T) {
	enc := `<table><tr><td>&#1514;&#1488;&#1512;&#1497;&#1498;</td><td>&#8207;יתרה&#8206;</td></tr></table>`
	rows, err := Extract(enc)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "תאריך", rows[0][0])
	assert.Equal(t, "יתרה", rows[0][1])
}

func TestExtract_NoRows(t *testing.T) {
	_, err := Extract("<html><body><p>nothing here</p></body></html>")
	assert.Error(t, err)
}

func TestResolveLayout_HeaderDriven(t *testing.T) {
	rows, err := Extract(ledgerExport)
	require.NoError(t, err)

	layout := ResolveLayout(rows)
	assert.False(t, layout.Positional)
	assert.Equal(t, 3, layout.DataStart)
	assert.Equal(t, 0, layout.Date)
	assert.Equal(t, 2, layout.Description)
	assert.Equal(t, 3, layout.Reference)
	assert.Equal(t, 4, layout.Debit)
	assert.Equal(t, 5, layout.Credit)
	assert.Equal(t, 6, layout.Balance)
	assert.Equal(t, 7, layout.ExtDescription)
}

func TestResolveLayout_ValueDateExcluded(t *testing.T) {
	rows := [][]string{
		{"תאריך ערך", "תאריך", "תיאור"},
	}
	layout := ResolveLayout(rows)
	// First cell is the value-date column, so this is not a header row by
	// the anchor rule; layout falls back to positional.
	assert.True(t, layout.Positional)

	rows = [][]string{
		{"תאריך", "תאריך ערך", "תיאור"},
	}
	layout = ResolveLayout(rows)
	assert.False(t, layout.Positional)
	assert.Equal(t, 0, layout.Date, "value-date column must not win the date role")
	assert.Equal(t, 2, layout.Description)
}

func TestResolveLayout_PositionalFallback(t *testing.T) {
	rows := [][]string{
		{"בנק לאומי"},
		{"יתרות ותנועות"},
		{"01/03/2025", "", "קניות ברשת", "111", "50.00", "", "1,000.00"},
		{"28/02/2025", "", "משכורת", "222", "", "9,000.00", "1,050.00"},
	}
	layout := ResolveLayout(rows)
	assert.True(t, layout.Positional)
	assert.Equal(t, 2, layout.DataStart)
	assert.Equal(t, 0, layout.Date)
	assert.Equal(t, 2, layout.Description)
	assert.Equal(t, 4, layout.Debit)
	assert.Equal(t, 5, layout.Credit)
	assert.Equal(t, 6, layout.Balance)
}

func TestResolveLayout_NoDataRows(t *testing.T) {
	rows := [][]string{{"טקסט"}, {"עוד טקסט"}}
	layout := ResolveLayout(rows)
	assert.True(t, layout.Positional)
	assert.Equal(t, len(rows), layout.DataStart)
}

func TestIsHeaderLookalike(t *testing.T) {
	assert.True(t, IsHeaderLookalike([]string{"תאריך", "תיאור"}))
	assert.False(t, IsHeaderLookalike([]string{"01/02/2024", "קניות"}))
	assert.False(t, IsHeaderLookalike(nil))
}
