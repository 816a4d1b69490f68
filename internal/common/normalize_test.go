package common

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  Bob ", "bob"},
		{"X@Y.com", "x@y.com"},
		{"already-lower", "already-lower"},
		{"\tMixed Case Title \n", "mixed case title"},
		{"", ""},
		{"   ", ""},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
