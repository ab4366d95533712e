package mask

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenizeFormat(t *testing.T) {
	cases := []struct {
		original string
		prefix   string
		want     string
	}{
		{"Alice", "MASKED", "MASKED_3BC51062"},
		{"Bob", "MASKED", "MASKED_CD9FB1E1"},
		{"hello", "PII", "PII_2CF24DBA"},
		{"a@b.com", "MASKED", "MASKED_FB98D44A"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Tokenize(tc.original, tc.prefix))
	}
}

func TestTokenizeIsDeterministic(t *testing.T) {
	for i := 0; i < 10; i++ {
		assert.Equal(t, Tokenize("secret-value", "MASKED"), Tokenize("secret-value", "MASKED"))
	}
}

func TestTokenizeShape(t *testing.T) {
	tokenRe := regexp.MustCompile(`^MASKED_[0-9A-F]{8}$`)
	for _, v := range []string{"", "x", "a much longer value with spaces", "30", "ünïcödé"} {
		token := Tokenize(v, "MASKED")
		assert.Regexp(t, tokenRe, token)
	}
}

func TestTokenizeDistinctValuesGetDistinctTokens(t *testing.T) {
	assert.NotEqual(t, Tokenize("Alice", "MASKED"), Tokenize("Bob", "MASKED"))
}

func TestTokenizePrefixDoesNotChangeFragment(t *testing.T) {
	a := Tokenize("Alice", "MASKED")
	b := Tokenize("Alice", "HIDDEN")
	assert.Equal(t, a[len("MASKED"):], b[len("HIDDEN"):])
}
