package textutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "strips tags",
			input:    "<td class=\"amount\">123.45</td>",
			expected: "123.45",
		},
		{
			name:     "named entities",
			input:    "Tom&nbsp;&amp;&nbsp;Jerry &lt;ltd&gt; &quot;x&quot; &apos;y&apos;",
			expected: "Tom & Jerry <ltd> \"x\" 'y'",
		},
		{
			name:     "double-encoded entities collapse fully",
			input:    "price &amp;lt;b&amp;gt; 100",
			expected: "price <b> 100",
		},
		{
			name:     "hebrew numeric entities",
			input:    "&#1492;&#1506;&#1489;&#1512;&#1492;",
			expected: "העברה",
		},
		{
			name:     "hex numeric entities",
			input:    "&#x5E9;&#x5DB;&#x5E8;",
			expected: "שכר",
		},
		{
			name:     "out-of-range entity dropped",
			input:    "x&#1;y&#128512;z",
			expected: "xyz",
		},
		{
			name:     "currency symbol entity kept",
			input:    "&#8362;150",
			expected: "₪150",
		},
		{
			name:     "directional marks stripped",
			input:    "&#8206;העברה&#8207; לאור&#8205;",
			expected: "העברה לאור",
		},
		{
			name:     "whitespace collapsed and trimmed",
			input:    "  a \t\n b   c  ",
			expected: "a b c",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Clean(tt.input))
		})
	}
}

func TestClean_Deterministic(t *testing.T) {
	// Entity decoding order is fixed, so repeated calls on the same
	// fragment agree byte for byte.
	input := "price &amp;lt;b&amp;gt; 100"
	first := Clean(input)
	for i := 0; i < 500; i++ {
		assert.Equal(t, first, Clean(input))
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"<tr><td>תאריך</td><td>&#1514;&#1497;&#1488;&#1493;&#1512;</td></tr>",
		"העברה אל: דוד כהן 123",
		"  Tom&nbsp;&amp;&nbsp;Jerry  ",
	}
	for _, input := range inputs {
		once := Clean(input)
		assert.Equal(t, once, Clean(once), "input %q", input)
	}
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "העברה לדוד", Sanitize("‏ העברה‎ לדוד ‍"))
	assert.Equal(t, "a b", Sanitize("a\x00\x01 ‫b‬"))
	assert.Equal(t, "plain", Sanitize("plain"))
}
