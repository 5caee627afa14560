package extractor

import "strings"

// FormatPhone renders 10 and 11 digit numbers as (DD) NNNN-NNNN and
// (DD) NNNNN-NNNN. Anything else is returned as given.
func FormatPhone(phone string) string {
	if phone == "" {
		return ""
	}
	d := OnlyDigits(phone)
	switch len(d) {
	case 11:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
	case 10:
		return "(" + d[:2] + ") " + d[2:6] + "-" + d[6:]
	}
	return phone
}

// FormatPlate renders a 7 character plate as AAA-NNNN. Anything else is
// returned as given.
func FormatPlate(plate string) string {
	if plate == "" {
		return ""
	}
	p := NormalizePlate(plate)
	if len(p) == 7 {
		return p[:3] + "-" + p[3:]
	}
	return plate
}

// NormalizePlate keeps only ASCII letters and digits, uppercased.
func NormalizePlate(plate string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(plate) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// OnlyDigits strips everything but ASCII digits.
func OnlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
