package extractor

import "regexp"

var numberPattern = regexp.MustCompile(`\d{6,15}`)

type numberKind int

const (
	kindCPF numberKind = iota
	kindPhone
	kindIMEI
	kindTrackerID
)

func (k numberKind) String() string {
	switch k {
	case kindCPF:
		return "cpf"
	case kindPhone:
		return "phone"
	case kindIMEI:
		return "imei"
	case kindTrackerID:
		return "tracker_id"
	default:
		return "unknown"
	}
}

type numberRule struct {
	kind  numberKind
	match func(digits string) bool
}

// numberRules are evaluated in order for every token. The first rule that
// accepts a token consumes it, so a valid CPF is never offered to the phone
// rule and a valid phone never ends up as a tracker ID.
var numberRules = []numberRule{
	{kind: kindCPF, match: IsValidCPF},
	{kind: kindPhone, match: IsValidPhone},
	{kind: kindIMEI, match: isIMEI},
	{kind: kindTrackerID, match: isTrackerID},
}

var validDDDs = func() map[string]struct{} {
	codes := []string{
		"11", "12", "13", "14", "15", "16", "17", "18", "19",
		"21", "22", "24", "27", "28",
		"31", "32", "33", "34", "35", "37", "38",
		"41", "42", "43", "44", "45", "46", "47", "48", "49",
		"51", "53", "54", "55",
		"61", "62", "63", "64", "65", "66", "67", "68", "69",
		"71", "73", "74", "75", "77", "79",
		"81", "82", "83", "84", "85", "86", "87", "88", "89",
		"91", "92", "93", "94", "95", "96", "97", "98", "99",
	}
	out := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		out[c] = struct{}{}
	}
	return out
}()

type numbers struct {
	CPF       string
	Phone     string
	IMEI      string
	TrackerID string
}

// TrackerNumber prefers the IMEI over a generic tracker ID, wherever each
// appeared in the text.
func (n numbers) TrackerNumber() string {
	if n.IMEI != "" {
		return n.IMEI
	}
	return n.TrackerID
}

func classifyNumber(digits string) (numberKind, bool) {
	for _, r := range numberRules {
		if r.match(digits) {
			return r.kind, true
		}
	}
	return 0, false
}

func classifyNumbers(text string) numbers {
	found := map[numberKind]string{}
	for _, token := range numberPattern.FindAllString(text, -1) {
		digits := OnlyDigits(token)
		kind, ok := classifyNumber(digits)
		if !ok {
			continue
		}
		if _, filled := found[kind]; !filled {
			found[kind] = digits
		}
	}
	return numbers{
		CPF:       found[kindCPF],
		Phone:     found[kindPhone],
		IMEI:      found[kindIMEI],
		TrackerID: found[kindTrackerID],
	}
}

// IsValidCPF checks the two mod-11 check digits of a CPF. Formatting
// characters are ignored.
func IsValidCPF(value string) bool {
	cpf := OnlyDigits(value)
	if len(cpf) != 11 || allSame(cpf) {
		return false
	}
	return cpfCheckDigit(cpf[:9]) == cpf[9] && cpfCheckDigit(cpf[:10]) == cpf[10]
}

func cpfCheckDigit(base string) byte {
	weight := len(base) + 1
	sum := 0
	for i := 0; i < len(base); i++ {
		sum += int(base[i]-'0') * (weight - i)
	}
	rest := 11 - sum%11
	if rest >= 10 {
		rest = 0
	}
	return byte('0' + rest)
}

// IsValidDDD reports whether code is an assigned Brazilian area code.
func IsValidDDD(code string) bool {
	_, ok := validDDDs[code]
	return ok
}

// IsValidPhone accepts 10-digit landlines and 11-digit mobiles (third digit
// 9) with a known area code.
func IsValidPhone(value string) bool {
	num := OnlyDigits(value)
	if len(num) != 10 && len(num) != 11 {
		return false
	}
	if !IsValidDDD(num[:2]) {
		return false
	}
	if len(num) == 11 && num[2] != '9' {
		return false
	}
	return true
}

func isIMEI(digits string) bool {
	return len(digits) == 15
}

func isTrackerID(digits string) bool {
	return len(digits) >= 6 && len(digits) <= 12
}

func allSame(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}
