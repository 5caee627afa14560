package extractor

import (
	"regexp"
	"strings"
)

var (
	longNumberPattern = regexp.MustCompile(`\d{5,}`)
	platePattern      = regexp.MustCompile(`(?i)\b([A-Z]{3}-?[0-9][A-Z0-9][0-9]{2})\b`)
	streetPattern     = regexp.MustCompile(`(?i)(?:Rua|Av\.|Avenida|Alameda|Travessa|Rodovia|Estrada)[\s\w]+,[^,\n]+`)
)

const maxNameLength = 50

var nameStopWords = []string{"cpf", "telefone", "endereço"}

// guessName picks the first short free-text line that does not look like a
// document number or a labelled field.
func guessName(lines []string) string {
	for _, l := range lines {
		if longNumberPattern.MatchString(l) {
			continue
		}
		if len([]rune(l)) > maxNameLength {
			continue
		}
		if containsAny(strings.ToLower(l), nameStopWords) {
			continue
		}
		if strings.Contains(l, ":") {
			continue
		}
		return trimTrailingComma(l)
	}
	return ""
}

// findPlate accepts both the legacy (ABC-1234) and the Mercosul (ABC1D23)
// layouts and returns the plate without the hyphen.
func findPlate(text string) string {
	m := platePattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.ReplaceAll(strings.ToUpper(m[1]), "-", "")
}

func findStreet(text string) string {
	return strings.TrimSpace(streetPattern.FindString(text))
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
