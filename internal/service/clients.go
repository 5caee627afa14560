package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rastreadorteste68-ship-it/Gerenciador-de-rastreamento-3/internal/extractor"
	"github.com/rastreadorteste68-ship-it/Gerenciador-de-rastreamento-3/internal/models"
)

const defaultClientName = "Sem Nome"

var ErrValidation = errors.New("validation failed")

// ValidationError carries per-field messages and matches ErrValidation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

type ClientStore interface {
	ListClients(ctx context.Context, status models.ClientStatus) ([]models.Client, error)
	GetClient(ctx context.Context, id string) (models.Client, error)
	InsertClient(ctx context.Context, c models.Client) (models.Client, error)
	InsertClients(ctx context.Context, clients []models.Client) (int64, error)
	UpdateClient(ctx context.Context, c models.Client) (models.Client, error)
	DeleteClient(ctx context.Context, id string) error
	UpdateClientStatus(ctx context.Context, id string, next func(models.ClientStatus) models.ClientStatus) (models.Client, error)
	ClientStats(ctx context.Context) (models.Stats, error)
}

type ClientService struct {
	Store  ClientStore
	Logger zerolog.Logger

	newID func() string
}

func NewClientService(store ClientStore, logger zerolog.Logger) *ClientService {
	return &ClientService{Store: store, Logger: logger, newID: uuid.NewString}
}

func (s *ClientService) id() string {
	if s.newID == nil {
		return uuid.NewString()
	}
	return s.newID()
}

// MergeParsed turns an extractor suggestion into a storable client. Fields
// the extractor did not find stay empty.
func (s *ClientService) MergeParsed(p models.ParsedClient) models.Client {
	c := models.Client{
		ID:            s.id(),
		Name:          p.Name,
		Phone:         p.Phone,
		CPF:           p.CPF,
		Address:       p.Address,
		Vehicle:       p.Vehicle,
		Plate:         p.Plate,
		TrackerNumber: p.TrackerNumber,
		TrackerModel:  p.TrackerModel,
		Status:        p.Status,
		CreatedAt:     p.CreatedAt,
	}
	if strings.TrimSpace(c.Name) == "" {
		c.Name = defaultClientName
	}
	if !c.Status.Valid() {
		c.Status = models.StatusTodo
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	return c
}

// List applies the status filter in the store and the text search here, then
// orders pending work first and newest first within a status.
func (s *ClientService) List(ctx context.Context, filter models.ClientFilter) ([]models.Client, error) {
	status, err := filterStatus(filter.Status)
	if err != nil {
		return nil, err
	}
	clients, err := s.Store.ListClients(ctx, status)
	if err != nil {
		return nil, err
	}

	out := make([]models.Client, 0, len(clients))
	m := newMatcher(filter.Query)
	for _, c := range clients {
		if m.match(c) {
			out = append(out, c)
		}
	}
	sortClients(out)
	return out, nil
}

func (s *ClientService) Stats(ctx context.Context) (models.Stats, error) {
	return s.Store.ClientStats(ctx)
}

func (s *ClientService) Get(ctx context.Context, id string) (models.Client, error) {
	return s.Store.GetClient(ctx, id)
}

func (s *ClientService) Create(ctx context.Context, c models.Client) (models.Client, error) {
	if c.ID == "" {
		c.ID = s.id()
	}
	if strings.TrimSpace(c.Name) == "" {
		c.Name = defaultClientName
	}
	if c.Status == "" {
		c.Status = models.StatusTodo
	}
	if err := normalizeClient(&c); err != nil {
		return models.Client{}, err
	}
	created, err := s.Store.InsertClient(ctx, c)
	if err != nil {
		return models.Client{}, err
	}
	s.Logger.Info().Str("client_id", created.ID).Str("status", string(created.Status)).Msg("client created")
	return created, nil
}

func (s *ClientService) Update(ctx context.Context, id string, c models.Client) (models.Client, error) {
	c.ID = id
	if strings.TrimSpace(c.Name) == "" {
		c.Name = defaultClientName
	}
	if c.Status == "" {
		c.Status = models.StatusTodo
	}
	if err := normalizeClient(&c); err != nil {
		return models.Client{}, err
	}
	return s.Store.UpdateClient(ctx, c)
}

func (s *ClientService) Delete(ctx context.Context, id string) error {
	if err := s.Store.DeleteClient(ctx, id); err != nil {
		return err
	}
	s.Logger.Info().Str("client_id", id).Msg("client deleted")
	return nil
}

// ToggleStatus reopens a finished client and finishes anything else.
func (s *ClientService) ToggleStatus(ctx context.Context, id string) (models.Client, error) {
	return s.Store.UpdateClientStatus(ctx, id, nextStatus)
}

func nextStatus(current models.ClientStatus) models.ClientStatus {
	if current == models.StatusDone {
		return models.StatusTodo
	}
	return models.StatusDone
}

func filterStatus(raw string) (models.ClientStatus, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == models.StatusAny {
		return "", nil
	}
	status := models.ClientStatus(raw)
	if !status.Valid() {
		return "", &ValidationError{Fields: map[string]string{"status": "unknown status " + raw}}
	}
	return status, nil
}

// normalizeClient trims free text, reduces phone, CPF and plate to their
// canonical forms and rejects values that cannot be right.
func normalizeClient(c *models.Client) error {
	fields := map[string]string{}

	c.Name = strings.TrimSpace(c.Name)
	c.Address = strings.TrimSpace(c.Address)
	c.Vehicle = strings.TrimSpace(c.Vehicle)
	c.TrackerModel = strings.TrimSpace(c.TrackerModel)
	c.TrackerNumber = extractor.OnlyDigits(c.TrackerNumber)
	c.Observations = strings.TrimSpace(c.Observations)
	c.Plate = extractor.NormalizePlate(c.Plate)

	c.Phone = extractor.OnlyDigits(c.Phone)
	if (len(c.Phone) == 12 || len(c.Phone) == 13) && strings.HasPrefix(c.Phone, "55") {
		c.Phone = c.Phone[2:]
	}
	if c.Phone != "" && !extractor.IsValidPhone(c.Phone) {
		fields["phone"] = "not a Brazilian phone number"
	}

	c.CPF = extractor.OnlyDigits(c.CPF)
	if c.CPF != "" && !extractor.IsValidCPF(c.CPF) {
		fields["cpf"] = "invalid check digits"
	}

	if !c.Status.Valid() {
		fields["status"] = "unknown status " + string(c.Status)
	}

	c.ScheduledDate = strings.TrimSpace(c.ScheduledDate)
	if c.ScheduledDate != "" {
		if _, err := time.Parse(time.DateOnly, c.ScheduledDate); err != nil {
			fields["scheduled_date"] = "expected YYYY-MM-DD"
		}
	}
	c.ScheduledTime = strings.TrimSpace(c.ScheduledTime)
	if c.ScheduledTime != "" {
		if _, err := time.Parse("15:04", c.ScheduledTime); err != nil {
			fields["scheduled_time"] = "expected HH:MM"
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func sortClients(clients []models.Client) {
	sort.SliceStable(clients, func(i, j int) bool {
		ri, rj := clients[i].Status.Rank(), clients[j].Status.Rank()
		if ri != rj {
			return ri > rj
		}
		return clients[i].CreatedAt.After(clients[j].CreatedAt)
	})
}
