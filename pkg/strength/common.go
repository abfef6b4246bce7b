package strength

import "strings"

// commonPasswords is the built-in deny-list, stored lower-cased.
var commonPasswords = []string{
	"password", "123456", "12345678", "qwerty", "abc123",
	"monkey", "1234567", "letmein", "trustno1", "dragon",
	"baseball", "iloveyou", "master", "sunshine", "ashley",
	"bailey", "passw0rd", "shadow", "123123", "654321",
	"superman", "qazwsx", "michael", "football", "welcome",
	"jesus", "ninja", "mustang", "password1", "123456789",
	"starwars", "computer", "solo", "jordan", "pepper",
	"whatever", "charlie", "cheese", "freedom", "princess",
	"12345", "111111",
}

// CommonPasswords returns a copy of the built-in deny-list.
func CommonPasswords() []string {
	out := make([]string, len(commonPasswords))
	copy(out, commonPasswords)
	return out
}

func commonSet(extra []string) map[string]struct{} {
	set := make(map[string]struct{}, len(commonPasswords)+len(extra))
	for _, p := range commonPasswords {
		set[p] = struct{}{}
	}
	for _, p := range extra {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			set[p] = struct{}{}
		}
	}
	return set
}
