package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitle(t *testing.T) {
	cases := []struct {
		in       string
		wantRule string
		want     string
	}{
		{in: "Valid title", want: "Valid title"},
		{in: "   Padded title  ", want: "Padded title"},
		{in: "short", wantRule: RuleUppercaseStart},
		{in: "Ok", wantRule: RuleMinLength},
		{in: "   ", wantRule: RuleRequired},
		{in: "", wantRule: RuleRequired},
		{in: "1st place", wantRule: RuleUppercaseStart},
		{in: "Ж" + strings.Repeat("ж", 199), want: "Ж" + strings.Repeat("ж", 199)},
		{in: "A" + strings.Repeat("a", 200), wantRule: RuleMaxLength},
	}
	for _, c := range cases {
		got, ef := Title(c.in)
		if c.wantRule == "" {
			require.Nil(t, ef, "title %q", c.in)
			assert.Equal(t, c.want, got)
			continue
		}
		require.NotNil(t, ef, "title %q", c.in)
		assert.Equal(t, "title", ef.Field)
		assert.Equal(t, c.wantRule, ef.Rule, "title %q", c.in)
	}
}

func TestContent(t *testing.T) {
	got, ef := Content("  twelve chars  ")
	require.Nil(t, ef)
	assert.Equal(t, "twelve chars", got)

	_, ef = Content("   too short ")
	require.NotNil(t, ef)
	assert.Equal(t, RuleMinLength, ef.Rule)

	_, ef = Content("\n\t ")
	require.NotNil(t, ef)
	assert.Equal(t, RuleRequired, ef.Rule)

	_, ef = Content(strings.Repeat("x", 10001))
	require.NotNil(t, ef)
	assert.Equal(t, RuleMaxLength, ef.Rule)
}

func TestLogin(t *testing.T) {
	assert.Nil(t, Login("validlogin"))
	assert.Equal(t, RuleMinLength, Login("ab").Rule)
	assert.Equal(t, RuleNoWhitespace, Login("has space").Rule)
	assert.Equal(t, RuleNoWhitespace, Login("tab\there").Rule)
	for _, ch := range ForbiddenInLogin {
		ef := Login("user" + string(ch))
		require.NotNil(t, ef, "char %q", ch)
		assert.Equal(t, RuleForbiddenChars, ef.Rule)
	}
}

func TestPasswordAndEmail(t *testing.T) {
	assert.Nil(t, Password("12345678"))
	assert.Equal(t, RuleMinLength, Password("1234567").Rule)

	assert.Nil(t, Email("email", "x@x.com"))
	assert.Equal(t, RuleEmail, Email("email", "not-an-email").Rule)
	assert.Equal(t, RuleEmail, Email("email", "").Rule)
}

func TestCollect(t *testing.T) {
	require.NoError(t, Collect(nil, nil))

	err := Collect(Login("ab"), nil, Password("x"))
	var errs Errs
	require.ErrorAs(t, err, &errs)
	require.Len(t, errs, 2)
	assert.Equal(t, "login", errs[0].Field)
	assert.Equal(t, "password", errs[1].Field)
	assert.Contains(t, err.Error(), "login: ")
}

func TestIntRange(t *testing.T) {
	assert.Nil(t, IntRange("page_size", 1, 1, 50))
	assert.Nil(t, IntRange("page_size", 50, 1, 50))
	assert.Equal(t, RuleRange, IntRange("page_size", 0, 1, 50).Rule)
	assert.Equal(t, RuleRange, IntRange("page_size", 51, 1, 50).Rule)
}
