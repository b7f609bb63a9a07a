package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasHebrew(t *testing.T) {
	assert.True(t, HasHebrew("העברה אל: דוד"))
	assert.True(t, HasHebrew("mixed שקל text"))
	assert.False(t, HasHebrew("plain english"))
	assert.False(t, HasHebrew("1234.56"))
	assert.False(t, HasHebrew(""))
}

func TestAnnotate(t *testing.T) {
	tests := []struct {
		name       string
		notes      string
		original   string
		translated string
		expected   string
	}{
		{
			name:       "empty notes",
			original:   "העברה",
			translated: "Transfer",
			expected:   "English: Transfer",
		},
		{
			name:       "appended with separator",
			notes:      "Grant: X",
			original:   "העברה",
			translated: "Transfer",
			expected:   "Grant: X | English: Transfer",
		},
		{
			name:       "identical translation skipped",
			notes:      "n",
			original:   "Transfer",
			translated: "Transfer",
			expected:   "n",
		},
		{
			name:       "empty translation skipped",
			notes:      "n",
			original:   "העברה",
			translated: "   ",
			expected:   "n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Annotate(tt.notes, tt.original, tt.translated))
		})
	}
}
