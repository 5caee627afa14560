package extractor

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

type field int

const (
	fieldNone field = iota
	fieldName
	fieldVehicle
	fieldColor
	fieldAddress
	fieldNumber
	fieldDistrict
	fieldCity
	fieldComplement
	fieldTrackerModel
)

type label struct {
	text  string
	field field
	// prefix labels are part of the value ("Rua das Flores"), not a caption.
	prefix bool
}

// registry holds every known field caption. It is built once and only read
// afterwards.
type registry struct {
	labels []label
}

func newRegistry(labels []label) *registry {
	sorted := make([]label, len(labels))
	copy(sorted, labels)
	// longest first, so "Modelo Rastreador" wins over "Modelo"
	sort.SliceStable(sorted, func(i, j int) bool {
		return utf8.RuneCountInString(sorted[i].text) > utf8.RuneCountInString(sorted[j].text)
	})
	return &registry{labels: sorted}
}

var defaultLabels = []label{
	{text: "Nome", field: fieldName},
	{text: "Cliente", field: fieldName},
	{text: "Responsável", field: fieldName},

	{text: "Veículo", field: fieldVehicle},
	{text: "Carro", field: fieldVehicle},
	{text: "Moto", field: fieldVehicle},
	{text: "Modelo", field: fieldVehicle},
	{text: "Marca", field: fieldVehicle},
	{text: "Cor", field: fieldColor},

	{text: "Endereço", field: fieldAddress},
	{text: "End", field: fieldAddress},
	{text: "Local", field: fieldAddress},
	{text: "Logradouro", field: fieldAddress},
	{text: "Rua", field: fieldAddress, prefix: true},
	{text: "Av", field: fieldAddress, prefix: true},
	{text: "Avenida", field: fieldAddress, prefix: true},
	{text: "Nº", field: fieldNumber},
	{text: "N°", field: fieldNumber},
	{text: "Número", field: fieldNumber},
	{text: "Bairro", field: fieldDistrict},
	{text: "Cidade", field: fieldCity},
	{text: "Complemento", field: fieldComplement},

	{text: "Modelo Rastreador", field: fieldTrackerModel},
	{text: "Modelo Equipamento", field: fieldTrackerModel},

	{text: "Telefone"},
	{text: "Celular"},
	{text: "Whatsapp"},
	{text: "Tel"},
	{text: "Fone"},
	{text: "Placa"},
	{text: "Chassi"},
	{text: "Rastreador"},
	{text: "ID"},
	{text: "IMEI"},
	{text: "Serial"},
	{text: "Equipamento"},
	{text: "CPF"},
	{text: "CNPJ"},
	{text: "RG"},
	{text: "Status"},
	{text: "Data"},
	{text: "Obs"},
	{text: "Estado"},
	{text: "UF"},
}

// match returns the longest label the line starts with and the text after it.
func (r *registry) match(line string) (label, string, bool) {
	for _, l := range r.labels {
		if rest, ok := cutLabel(line, l.text); ok {
			return l, rest, true
		}
	}
	return label{}, "", false
}

// isCaption reports whether line starts with any known caption, compared
// without a word boundary so "Idade" and "Telefones" are captions too. Street
// prefixes only count when a colon follows them.
func (r *registry) isCaption(line string) bool {
	for _, l := range r.labels {
		rest, ok := cutPrefixFold(line, l.text)
		if !ok {
			continue
		}
		if !l.prefix || startsWithColon(rest) {
			return true
		}
	}
	return false
}

// lookup finds the value captioned by one of f's labels, either on the same
// line or on the following line when the caption stands alone.
func (r *registry) lookup(lines []string, f field) string {
	for i, line := range lines {
		l, rest, ok := r.match(line)
		if !ok || l.field != f {
			continue
		}
		if l.prefix && !startsWithColon(rest) && strings.TrimSpace(rest) != "" {
			return trimTrailingComma(line)
		}
		if v := captionValue(rest); v != "" {
			return v
		}
		if i+1 < len(lines) && !r.isCaption(lines[i+1]) {
			return trimTrailingComma(lines[i+1])
		}
	}
	return ""
}

// cutLabel matches label case-insensitively at the start of line. The label
// must end at a word boundary so "Cor" does not match "Corolla".
func cutLabel(line, label string) (string, bool) {
	rest, ok := cutPrefixFold(line, label)
	if !ok {
		return "", false
	}
	if next, _ := utf8.DecodeRuneInString(rest); rest != "" && unicode.IsLetter(next) {
		return "", false
	}
	return rest, true
}

func cutPrefixFold(line, prefix string) (string, bool) {
	n := utf8.RuneCountInString(prefix)
	pos := 0
	for i := 0; i < n; i++ {
		if pos >= len(line) {
			return "", false
		}
		_, size := utf8.DecodeRuneInString(line[pos:])
		pos += size
	}
	if !strings.EqualFold(line[:pos], prefix) {
		return "", false
	}
	return line[pos:], true
}

func captionValue(rest string) string {
	v := strings.TrimSpace(rest)
	v = strings.TrimSpace(strings.TrimLeft(v, ":-.,;"))
	return trimTrailingComma(v)
}

func trimTrailingComma(s string) string {
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), ","))
}

func startsWithColon(rest string) bool {
	return strings.HasPrefix(strings.TrimSpace(rest), ":")
}

func splitLines(text string) []string {
	var out []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
