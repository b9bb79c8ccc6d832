package validation

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

type ErrField struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Msg   string `json:"msg"`
}

type Errs []ErrField

func (e Errs) Error() string { // error interface
	var b strings.Builder
	for i, ef := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ef.Field + ": " + ef.Msg)
	}
	return b.String()
}

// Collect returns nil when every check passed, otherwise Errs.
func Collect(checks ...*ErrField) error {
	var out Errs
	for _, c := range checks {
		if c != nil {
			out = append(out, *c)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

const (
	RuleRequired       = "required"
	RuleMinLength      = "min_length"
	RuleMaxLength      = "max_length"
	RuleUppercaseStart = "uppercase_start"
	RuleNoWhitespace   = "no_whitespace"
	RuleForbiddenChars = "forbidden_chars"
	RuleEmail          = "email"
	RuleRange          = "range"
)

const (
	LoginMinLen      = 3
	PasswordMinLen   = 8
	TitleMinLen      = 3
	TitleMaxLen      = 200
	ContentMinLen    = 12
	ContentMaxLen    = 10000
	ForbiddenInLogin = `<>"*&|\/[]{}`
)

// Helpers
func Required(field, value string) *ErrField {
	if strings.TrimSpace(value) == "" {
		return &ErrField{Field: field, Rule: RuleRequired, Msg: "required"}
	}
	return nil
}

func MinLen(field, value string, min int) *ErrField {
	if utf8.RuneCountInString(value) < min {
		return &ErrField{Field: field, Rule: RuleMinLength, Msg: "must be at least " + strconv.Itoa(min) + " characters"}
	}
	return nil
}

func MaxLen(field, value string, max int) *ErrField {
	if utf8.RuneCountInString(value) > max {
		return &ErrField{Field: field, Rule: RuleMaxLength, Msg: "must be at most " + strconv.Itoa(max) + " characters"}
	}
	return nil
}

func IntRange(field string, v, min, max int) *ErrField {
	if v < min || v > max {
		return &ErrField{Field: field, Rule: RuleRange, Msg: "must be between " + strconv.Itoa(min) + " and " + strconv.Itoa(max)}
	}
	return nil
}

func Email(field, value string) *ErrField {
	if err := emailCheck.Var(value, "required,email"); err != nil {
		return &ErrField{Field: field, Rule: RuleEmail, Msg: "must be a valid email address"}
	}
	return nil
}

func Login(value string) *ErrField {
	if e := MinLen("login", value, LoginMinLen); e != nil {
		return e
	}
	if strings.IndexFunc(value, unicode.IsSpace) >= 0 {
		return &ErrField{Field: "login", Rule: RuleNoWhitespace, Msg: "must not contain whitespace"}
	}
	if strings.ContainsAny(value, ForbiddenInLogin) {
		return &ErrField{Field: "login", Rule: RuleForbiddenChars, Msg: "must not contain any of " + ForbiddenInLogin}
	}
	return nil
}

func Password(value string) *ErrField {
	return MinLen("password", value, PasswordMinLen)
}

// Title trims value and checks emptiness, length and the leading capital.
func Title(value string) (string, *ErrField) {
	t := strings.TrimSpace(value)
	if e := Required("title", t); e != nil {
		return t, e
	}
	if e := MaxLen("title", t, TitleMaxLen); e != nil {
		return t, e
	}
	if e := MinLen("title", t, TitleMinLen); e != nil {
		return t, e
	}
	if r, _ := utf8.DecodeRuneInString(t); !unicode.IsUpper(r) {
		return t, &ErrField{Field: "title", Rule: RuleUppercaseStart, Msg: "must start with an uppercase letter"}
	}
	return t, nil
}

// Content trims value and checks emptiness and length.
func Content(value string) (string, *ErrField) {
	c := strings.TrimSpace(value)
	if e := Required("content", c); e != nil {
		return c, e
	}
	if e := MaxLen("content", c, ContentMaxLen); e != nil {
		return c, e
	}
	return c, MinLen("content", c, ContentMinLen)
}

var emailCheck = validator.New()
