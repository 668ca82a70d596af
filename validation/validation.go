package validation

import (
	"regexp"
	"strings"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// First returns one violation for single-message error reporting.
func (v Violations) First() (field, msg string) {
	for f, m := range v {
		return f, m
	}
	return "", ""
}

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func Email(field, value string, v Violations) {
	if !emailRegex.MatchString(value) {
		v[field] = "invalid email format"
	}
}

func PositiveInt(field string, val int, v Violations) {
	if val <= 0 {
		v[field] = "must be positive"
	}
}

func PositiveFloat(field string, val float64, v Violations) {
	if val <= 0 {
		v[field] = "must be positive"
	}
}

func NonNegativeFloat(field string, val float64, v Violations) {
	if val < 0 {
		v[field] = "must not be negative"
	}
}

func RangeFloat(field string, val, minVal, maxVal float64, v Violations) {
	if val < minVal || val > maxVal {
		v[field] = "out of range"
	}
}

// Password checks the minimum strength rule: at least 8 characters with
// an uppercase letter, a lowercase letter, a digit and a symbol.
func Password(field, value string, v Violations) {
	switch {
	case len(value) < 8:
		v[field] = "must be at least 8 characters"
	case !strings.ContainsAny(value, "ABCDEFGHIJKLMNOPQRSTUVWXYZ"):
		v[field] = "must contain an uppercase letter"
	case !strings.ContainsAny(value, "abcdefghijklmnopqrstuvwxyz"):
		v[field] = "must contain a lowercase letter"
	case !strings.ContainsAny(value, "0123456789"):
		v[field] = "must contain a number"
	case !strings.ContainsAny(value, "!@#$%^&*"):
		v[field] = "must contain a special character (!@#$%^&*)"
	}
}
