package util

import "testing"

func TestToScreamingSnakeCase(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"GuessRate", "GUESS_RATE"},
		{"TLSCert", "TLS_CERT"},
		{"SelfTLS", "SELF_TLS"},
		{"MaxInputLength", "MAX_INPUT_LENGTH"},
		{"PORT", "PORT"},
		{"TLSCert TLSKey", "TLS_CERT_TLS_KEY"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := ToScreamingSnakeCase(tc.in); got != tc.want {
			t.Errorf("ToScreamingSnakeCase(%q): %q, want: %q", tc.in, got, tc.want)
		}
	}
}

func TestCheckRam(t *testing.T) {
	if err := CheckRam(10); err != nil {
		t.Errorf("Should have RAM for 10 passwords: %s", err)
	}
	if err := CheckRam(1 << 50); err == nil {
		t.Errorf("Should not have RAM for 2^50 passwords")
	}
}
