// Package extractor turns free text (pasted chat messages, e-mails, text
// pulled out of documents) into a suggested client record.
//
// Extraction runs in three passes: numeric tokens are classified as CPF,
// phone, IMEI or tracker ID; captioned fields are read line by line; plain
// heuristics fill name, plate and address when no caption was found. Nothing
// here fails: a field that cannot be found is left empty.
package extractor

import (
	"strings"
	"time"

	"github.com/rastreadorteste68-ship-it/Gerenciador-de-rastreamento-3/internal/models"
)

type Parser struct {
	labels *registry
	now    func() time.Time
}

type Option func(*Parser)

// WithClock overrides the time stamped on parsed records.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		p.now = now
	}
}

func New(opts ...Option) *Parser {
	p := &Parser{
		labels: defaultRegistry,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var (
	defaultRegistry = newRegistry(defaultLabels)
	defaultParser   = New()
)

// Parse runs the default parser. It is safe for concurrent use.
func Parse(text string) models.ParsedClient {
	return defaultParser.Parse(text)
}

func (p *Parser) Parse(text string) models.ParsedClient {
	out := models.ParsedClient{
		Status:    models.StatusTodo,
		CreatedAt: p.now(),
	}

	cleaned := strings.ReplaceAll(text, "\r", "")

	nums := classifyNumbers(cleaned)
	out.CPF = nums.CPF
	out.Phone = nums.Phone
	out.TrackerNumber = nums.TrackerNumber()

	lines := splitLines(cleaned)

	out.Name = p.labels.lookup(lines, fieldName)
	if out.Name == "" {
		out.Name = guessName(lines)
	}

	out.Plate = findPlate(cleaned)

	out.Vehicle = joinVehicle(
		p.labels.lookup(lines, fieldVehicle),
		p.labels.lookup(lines, fieldColor),
	)

	out.Address = joinAddress(
		p.labels.lookup(lines, fieldAddress),
		p.labels.lookup(lines, fieldNumber),
		p.labels.lookup(lines, fieldComplement),
		p.labels.lookup(lines, fieldDistrict),
		p.labels.lookup(lines, fieldCity),
	)
	if out.Address == "" {
		out.Address = findStreet(cleaned)
	}

	out.TrackerModel = p.labels.lookup(lines, fieldTrackerModel)

	return out
}

func joinVehicle(vehicle, color string) string {
	switch {
	case vehicle != "" && color != "":
		return vehicle + " - " + color
	case vehicle != "":
		return vehicle
	default:
		return color
	}
}

func joinAddress(street, number, complement, district, city string) string {
	var parts []string
	if street != "" {
		parts = append(parts, street)
	}
	if number != "" {
		parts = append(parts, "Nº "+number)
	}
	for _, p := range []string{complement, district, city} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
