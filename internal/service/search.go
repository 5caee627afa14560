package service

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/rastreadorteste68-ship-it/Gerenciador-de-rastreamento-3/internal/extractor"
	"github.com/rastreadorteste68-ship-it/Gerenciador-de-rastreamento-3/internal/models"
)

// fold lower-cases s and strips combining marks so "João" matches "joao".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

type matcher struct {
	text  string
	plate string
}

func newMatcher(query string) matcher {
	q := strings.TrimSpace(query)
	return matcher{text: fold(q), plate: extractor.NormalizePlate(q)}
}

// match reports whether the client's name, plate or vehicle contains the
// query. An empty query matches everything.
func (m matcher) match(c models.Client) bool {
	if m.text == "" {
		return true
	}
	if strings.Contains(fold(c.Name), m.text) ||
		strings.Contains(fold(c.Vehicle), m.text) ||
		strings.Contains(fold(c.Plate), m.text) {
		return true
	}
	return m.plate != "" && strings.Contains(extractor.NormalizePlate(c.Plate), m.plate)
}
