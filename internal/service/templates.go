package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rastreadorteste68-ship-it/Gerenciador-de-rastreamento-3/internal/models"
)

type TemplateStore interface {
	ListTemplates(ctx context.Context) ([]models.Template, error)
	GetTemplate(ctx context.Context, id string) (models.Template, error)
	InsertTemplate(ctx context.Context, t models.Template) (models.Template, error)
	UpdateTemplate(ctx context.Context, t models.Template) (models.Template, error)
	DeleteTemplate(ctx context.Context, id string) error
}

type TemplateService struct {
	Store   TemplateStore
	Clients ClientStore
	Logger  zerolog.Logger
}

func NewTemplateService(store TemplateStore, clients ClientStore, logger zerolog.Logger) *TemplateService {
	return &TemplateService{Store: store, Clients: clients, Logger: logger}
}

func (s *TemplateService) List(ctx context.Context) ([]models.Template, error) {
	return s.Store.ListTemplates(ctx)
}

func (s *TemplateService) Create(ctx context.Context, t models.Template) (models.Template, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if err := validateTemplate(&t); err != nil {
		return models.Template{}, err
	}
	return s.Store.InsertTemplate(ctx, t)
}

func (s *TemplateService) Update(ctx context.Context, id string, t models.Template) (models.Template, error) {
	t.ID = id
	if err := validateTemplate(&t); err != nil {
		return models.Template{}, err
	}
	return s.Store.UpdateTemplate(ctx, t)
}

func (s *TemplateService) Delete(ctx context.Context, id string) error {
	return s.Store.DeleteTemplate(ctx, id)
}

// Message renders template templateID for client clientID.
func (s *TemplateService) Message(ctx context.Context, clientID, templateID string) (string, error) {
	c, err := s.Clients.GetClient(ctx, clientID)
	if err != nil {
		return "", err
	}
	t, err := s.Store.GetTemplate(ctx, templateID)
	if err != nil {
		return "", err
	}
	return Render(t.Content, c), nil
}

func validateTemplate(t *models.Template) error {
	t.Name = strings.TrimSpace(t.Name)
	fields := map[string]string{}
	if t.Name == "" {
		fields["name"] = "required"
	}
	if strings.TrimSpace(t.Content) == "" {
		fields["content"] = "required"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Render replaces every placeholder in content. Missing client data falls
// back to neutral wording so the message still reads naturally.
func Render(content string, c models.Client) string {
	r := strings.NewReplacer(
		"{name}", orDefault(c.Name, "Cliente"),
		"{plate}", orDefault(c.Plate, "---"),
		"{vehicle}", orDefault(c.Vehicle, "seu veículo"),
		"{date}", orDefault(brazilianDate(c.ScheduledDate), "---"),
		"{time}", orDefault(c.ScheduledTime, "---"),
		"{address}", orDefault(c.Address, "nosso endereço"),
	)
	return r.Replace(content)
}

// brazilianDate rewrites an ISO date as DD/MM/YYYY. The calendar day is kept
// as stored, no time zone conversion happens.
func brazilianDate(iso string) string {
	if iso == "" {
		return ""
	}
	d, err := time.Parse(time.DateOnly, iso)
	if err != nil {
		return iso
	}
	return d.Format("02/01/2006")
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
