package service

import (
	"context"
	"fmt"

	"github.com/rastreadorteste68-ship-it/Gerenciador-de-rastreamento-3/internal/db"
	"github.com/rastreadorteste68-ship-it/Gerenciador-de-rastreamento-3/internal/models"
)

// memStore keeps clients and templates in maps, mirroring db.Store errors.
type memStore struct {
	clients   map[string]models.Client
	order     []string
	templates map[string]models.Template
	copied    int
}

func newMemStore() *memStore {
	return &memStore{clients: map[string]models.Client{}, templates: map[string]models.Template{}}
}

func (m *memStore) ListClients(_ context.Context, status models.ClientStatus) ([]models.Client, error) {
	var out []models.Client
	for _, id := range m.order {
		c, ok := m.clients[id]
		if !ok {
			continue
		}
		if status == "" || c.Status == status {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memStore) GetClient(_ context.Context, id string) (models.Client, error) {
	c, ok := m.clients[id]
	if !ok {
		return models.Client{}, fmt.Errorf("client %s: %w", id, db.ErrNotFound)
	}
	return c, nil
}

func (m *memStore) InsertClient(_ context.Context, c models.Client) (models.Client, error) {
	if _, ok := m.clients[c.ID]; ok {
		return models.Client{}, fmt.Errorf("client %s: %w", c.ID, db.ErrConflict)
	}
	m.clients[c.ID] = c
	m.order = append(m.order, c.ID)
	return c, nil
}

func (m *memStore) InsertClients(ctx context.Context, clients []models.Client) (int64, error) {
	for _, c := range clients {
		if _, err := m.InsertClient(ctx, c); err != nil {
			return 0, err
		}
	}
	m.copied += len(clients)
	return int64(len(clients)), nil
}

func (m *memStore) UpdateClient(_ context.Context, c models.Client) (models.Client, error) {
	old, ok := m.clients[c.ID]
	if !ok {
		return models.Client{}, fmt.Errorf("client %s: %w", c.ID, db.ErrNotFound)
	}
	c.CreatedAt = old.CreatedAt
	m.clients[c.ID] = c
	return c, nil
}

func (m *memStore) DeleteClient(_ context.Context, id string) error {
	if _, ok := m.clients[id]; !ok {
		return fmt.Errorf("client %s: %w", id, db.ErrNotFound)
	}
	delete(m.clients, id)
	return nil
}

func (m *memStore) UpdateClientStatus(_ context.Context, id string, next func(models.ClientStatus) models.ClientStatus) (models.Client, error) {
	c, ok := m.clients[id]
	if !ok {
		return models.Client{}, fmt.Errorf("client %s: %w", id, db.ErrNotFound)
	}
	c.Status = next(c.Status)
	m.clients[id] = c
	return c, nil
}

func (m *memStore) ClientStats(_ context.Context) (models.Stats, error) {
	var st models.Stats
	for _, c := range m.clients {
		st.Total++
		switch c.Status {
		case models.StatusTodo:
			st.Todo++
		case models.StatusScheduled:
			st.Scheduled++
		case models.StatusDone:
			st.Done++
		}
	}
	return st, nil
}

func (m *memStore) ListTemplates(_ context.Context) ([]models.Template, error) {
	var out []models.Template
	for _, t := range m.templates {
		out = append(out, t)
	}
	return out, nil
}

func (m *memStore) GetTemplate(_ context.Context, id string) (models.Template, error) {
	t, ok := m.templates[id]
	if !ok {
		return models.Template{}, fmt.Errorf("template %s: %w", id, db.ErrNotFound)
	}
	return t, nil
}

func (m *memStore) InsertTemplate(_ context.Context, t models.Template) (models.Template, error) {
	m.templates[t.ID] = t
	return t, nil
}

func (m *memStore) UpdateTemplate(_ context.Context, t models.Template) (models.Template, error) {
	if _, ok := m.templates[t.ID]; !ok {
		return models.Template{}, fmt.Errorf("template %s: %w", t.ID, db.ErrNotFound)
	}
	m.templates[t.ID] = t
	return t, nil
}

func (m *memStore) DeleteTemplate(_ context.Context, id string) error {
	if _, ok := m.templates[id]; !ok {
		return fmt.Errorf("template %s: %w", id, db.ErrNotFound)
	}
	delete(m.templates, id)
	return nil
}
