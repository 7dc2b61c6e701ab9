package language

import "testing"

func TestToISO2(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"bulgarian", "bg"},
		{"bul", "bg"},
		{"BG", "bg"},
		{"eng", "en"},
		{"xx", "xx"},
		{"nonsense", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := ToISO2(tc.in); got != tc.want {
			t.Errorf("ToISO2(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("bg"); got != "Bulgarian" {
		t.Fatalf("DisplayName(bg) = %q", got)
	}
	if got := DisplayName(""); got != "Unknown" {
		t.Fatalf("DisplayName(empty) = %q", got)
	}
	if got := DisplayName("qq"); got != "QQ" {
		t.Fatalf("DisplayName(qq) = %q", got)
	}
}

func TestPrefix(t *testing.T) {
	if got := Prefix("bulgarian"); got != "BG" {
		t.Fatalf("Prefix(bulgarian) = %q", got)
	}
	if got := Prefix("en"); got != "EN" {
		t.Fatalf("Prefix(en) = %q", got)
	}
}
