package customers

import "strings"

// NormalizePhone reduces a phone string to the last ten digits, which is
// the customer identity. "+90 555 111 22 33", "05551112233" and
// "555-111-22-33" all normalize to "5551112233".
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) > 10 {
		return digits[len(digits)-10:]
	}
	return digits
}

// SamePhone reports whether two phone strings identify the same customer.
func SamePhone(a, b string) bool {
	na := NormalizePhone(a)
	if na == "" {
		return false
	}
	return na == NormalizePhone(b)
}
