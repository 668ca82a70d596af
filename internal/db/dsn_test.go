package db

import "testing"

func TestNormalizeDSN(t *testing.T) {
	cases := map[string]string{
		"":                  "",
		"postgres://u:p@h:5432/d?sslmode=disable": "postgres://u:p@h:5432/d?sslmode=disable",
		"  \"postgres://u:p@h/d\"  ":              "postgres://u:p@h/d",
		"host=localhost user=u dbname=d":          "host=localhost user=u dbname=d sslmode=disable",
		"host=localhost   user=u  dbname=d sslmode=require": "host=localhost user=u dbname=d sslmode=require",
		"not a dsn at all": "not a dsn at all",
	}
	for in, want := range cases {
		if got := NormalizeDSN(in); got != want {
			t.Errorf("NormalizeDSN(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMaskDSN(t *testing.T) {
	if got := maskDSN("host=h user=u password=secret dbname=d"); got != "host=h user=u password=*** dbname=d" {
		t.Errorf("kv mask: %q", got)
	}
	if got := maskDSN("postgres://user:secret@h/d"); got != "postgres://user:***@h/d" {
		t.Errorf("url mask: %q", got)
	}
}
