package wildcard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	assert.Equal(t, "*", Wrap(""))
	assert.Equal(t, "*", Wrap("   "))
	assert.Equal(t, "*kai*", Wrap("kai"))
}

func TestParseAndMatch(t *testing.T) {
	cases := []struct {
		raw    string
		values []string
		want   bool
	}{
		{raw: "*", values: []string{"Admin User"}, want: true},
		{raw: "", values: []string{"Admin User"}, want: true},
		{raw: "*admin*", values: []string{"Admin User", "a@jwt.com"}, want: true},
		{raw: "*JWT.COM*", values: []string{"Kai Chen", "d@jwt.com"}, want: true},
		{raw: "*zzz*", values: []string{"Kai Chen", "d@jwt.com"}, want: false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Parse(tc.raw).Match(tc.values...), tc.raw)
	}
}

func TestSQLPattern(t *testing.T) {
	assert.Equal(t, "%", Parse("*").SQLPattern())
	assert.Equal(t, `%50\%%`, Parse("*50%*").SQLPattern())
}
