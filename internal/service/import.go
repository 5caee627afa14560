package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rastreadorteste68-ship-it/Gerenciador-de-rastreamento-3/internal/extractor"
	"github.com/rastreadorteste68-ship-it/Gerenciador-de-rastreamento-3/internal/ingest"
	"github.com/rastreadorteste68-ship-it/Gerenciador-de-rastreamento-3/internal/models"
)

// ImportService loads every client row of an installer spreadsheet in one go.
type ImportService struct {
	Clients *ClientService
	Parser  *extractor.Parser
	Logger  zerolog.Logger
}

func NewImportService(clients *ClientService, parser *extractor.Parser, logger zerolog.Logger) *ImportService {
	if parser == nil {
		parser = extractor.New()
	}
	return &ImportService{Clients: clients, Parser: parser, Logger: logger}
}

// ImportSpreadsheet parses each client row through the text extractor and
// stores the results in a single bulk insert. Rows that fail validation are
// reported and skipped.
func (s *ImportService) ImportSpreadsheet(ctx context.Context, filename string, data []byte) (models.ImportSummary, error) {
	if ext := strings.ToLower(filepath.Ext(filename)); ext != ".xlsx" {
		return models.ImportSummary{}, fmt.Errorf("%w: %s", ingest.ErrUnsupported, ext)
	}
	blocks, err := ingest.SpreadsheetBlocks(data)
	if err != nil {
		return models.ImportSummary{}, err
	}

	summary := models.ImportSummary{Rows: len(blocks), Errors: []string{}}
	clients := make([]models.Client, 0, len(blocks))
	for i, block := range blocks {
		c := s.Clients.MergeParsed(s.Parser.Parse(block))
		if err := normalizeClient(&c); err != nil {
			summary.Skipped++
			summary.Errors = append(summary.Errors, fmt.Sprintf("row %d (%s): %v", i+1, c.Name, err))
			continue
		}
		clients = append(clients, c)
	}

	if len(clients) > 0 {
		n, err := s.Clients.Store.InsertClients(ctx, clients)
		if err != nil {
			return models.ImportSummary{}, err
		}
		summary.Created = int(n)
	}

	s.Logger.Info().
		Str("file", filename).
		Int("rows", summary.Rows).
		Int("created", summary.Created).
		Int("skipped", summary.Skipped).
		Msg("spreadsheet imported")
	return summary, nil
}
