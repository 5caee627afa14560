package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// RowDivider separates the per-row blocks produced by the spreadsheet bridge.
const RowDivider = "-------------------"

// minMappedText is the size under which the column mapping is assumed not to
// fit the workbook and the raw sheet is returned instead.
const minMappedText = 10

// installerColumns is the column layout of the installer's client workbook.
var installerColumns = struct {
	Brand, Model, Kind, Plate               int
	Name, CPF, WhatsApp, Mobile             int
	Street, District, City, State           int
	ZIP, Installer, TrackerID, TrackerModel int
}{
	Brand: column("A"), Model: column("B"), Kind: column("C"), Plate: column("D"),
	Name: column("N"), CPF: column("O"), WhatsApp: column("Q"), Mobile: column("R"),
	Street: column("S"), District: column("T"), City: column("U"), State: column("V"),
	ZIP: column("W"), Installer: column("Y"), TrackerID: column("AB"), TrackerModel: column("AD"),
}

func column(name string) int {
	n, err := excelize.ColumnNameToNumber(name)
	if err != nil {
		panic(err)
	}
	return n - 1
}

// SpreadsheetExtractor maps the first sheet of an .xlsx workbook to
// "Label: value" blocks the extractor understands.
type SpreadsheetExtractor struct{}

func (SpreadsheetExtractor) ExtractText(data []byte) (string, error) {
	rows, err := readFirstSheet(data)
	if err != nil {
		return "", err
	}
	mapped := strings.Join(RowBlocks(rows), "")
	if utf8.RuneCountInString(mapped) > minMappedText {
		return mapped, nil
	}
	return rowsToCSV(rows)
}

// SpreadsheetBlocks returns one text block per client row of the first sheet.
func SpreadsheetBlocks(data []byte) ([]string, error) {
	rows, err := readFirstSheet(data)
	if err != nil {
		return nil, err
	}
	return RowBlocks(rows), nil
}

// RowBlocks renders every client row. Rows without a usable name, including
// the header row, are skipped.
func RowBlocks(rows [][]string) []string {
	var out []string
	for _, row := range rows {
		if block, ok := rowBlock(row); ok {
			out = append(out, block)
		}
	}
	return out
}

func rowBlock(row []string) (string, bool) {
	c := installerColumns
	name := cell(row, c.Name)
	if !isClientName(name) {
		return "", false
	}

	var b strings.Builder
	writeLine := func(label, value string) {
		if value != "" {
			b.WriteString(label + ": " + value + "\n")
		}
	}

	writeLine("Nome", name)
	writeLine("CPF", cell(row, c.CPF))
	writeLine("Telefone", firstNonEmpty(cell(row, c.WhatsApp), cell(row, c.Mobile)))
	writeLine("Veículo", joinNonEmpty(" ", cell(row, c.Brand), cell(row, c.Model), cell(row, c.Kind)))
	writeLine("Placa", cell(row, c.Plate))

	addr := cell(row, c.Street)
	addr = appendPart(addr, ", ", cell(row, c.District))
	addr = appendPart(addr, ", ", cell(row, c.City))
	addr = appendPart(addr, " - ", cell(row, c.State))
	if zip := cell(row, c.ZIP); zip != "" {
		addr = appendPart(addr, " ", "("+zip+")")
	}
	writeLine("Endereço", addr)

	writeLine("Rastreador ID", cell(row, c.TrackerID))
	writeLine("Modelo Rastreador", cell(row, c.TrackerModel))
	if installer := cell(row, c.Installer); installer != "" {
		writeLine("Obs", "Instalador "+installer)
	}
	b.WriteString(RowDivider + "\n")
	return b.String(), true
}

func isClientName(name string) bool {
	if utf8.RuneCountInString(name) < 3 {
		return false
	}
	lower := strings.ToLower(name)
	return !strings.Contains(lower, "cliente") && !strings.Contains(lower, "nome")
}

func readFirstSheet(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: xlsx: %v", ErrUnreadable, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: xlsx: workbook has no sheets", ErrUnreadable)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: xlsx: %v", ErrUnreadable, err)
	}
	return rows, nil
}

func rowsToCSV(rows [][]string) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return "", fmt.Errorf("%w: xlsx: %v", ErrUnreadable, err)
	}
	return buf.String(), nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func joinNonEmpty(sep string, values ...string) string {
	var parts []string
	for _, v := range values {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, sep)
}

func appendPart(s, sep, part string) string {
	switch {
	case part == "":
		return s
	case s == "":
		return part
	default:
		return s + sep + part
	}
}
