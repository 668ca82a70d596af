package validation

import "testing"

func TestRequired(t *testing.T) {
	v := Violations{}
	Required("name", "  ", v)
	Required("city", "Dubai", v)
	if _, ok := v["name"]; !ok {
		t.Error("blank value should violate required")
	}
	if _, ok := v["city"]; ok {
		t.Error("non-blank value should pass")
	}
}

func TestEmail(t *testing.T) {
	cases := map[string]bool{
		"a@b.co":        true,
		"user@test.com": true,
		"no-at-sign":    false,
		"a@b":           false,
		"a b@test.com":  false,
	}
	for in, ok := range cases {
		v := Violations{}
		Email("email", in, v)
		if ok == !v.Empty() {
			t.Errorf("email %q: expected valid=%v", in, ok)
		}
	}
}

func TestPasswordStrength(t *testing.T) {
	good := []string{"Str0ng!pw", "Abcdef1!", "P@ssw0rdX"}
	for _, pw := range good {
		v := Violations{}
		Password("password", pw, v)
		if !v.Empty() {
			t.Errorf("password %q should pass, got %v", pw, v)
		}
	}
	bad := []string{"Sh0rt!", "alllower1!", "ALLUPPER1!", "NoDigits!!", "NoSymbol11"}
	for _, pw := range bad {
		v := Violations{}
		Password("password", pw, v)
		if v.Empty() {
			t.Errorf("password %q should fail", pw)
		}
	}
}

func TestNumericValidators(t *testing.T) {
	v := Violations{}
	PositiveInt("count", 0, v)
	NonNegativeFloat("km", -1, v)
	RangeFloat("rating", 5.5, 0, 5, v)
	if len(v) != 3 {
		t.Fatalf("expected 3 violations, got %v", v)
	}
	v = Violations{}
	PositiveInt("count", 3, v)
	NonNegativeFloat("km", 0, v)
	RangeFloat("rating", 4.5, 0, 5, v)
	if !v.Empty() {
		t.Fatalf("expected no violations, got %v", v)
	}
}
