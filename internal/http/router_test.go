package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/rastreadorteste68-ship-it/Gerenciador-de-rastreamento-3/internal/config"
	"github.com/rastreadorteste68-ship-it/Gerenciador-de-rastreamento-3/internal/db"
	"github.com/rastreadorteste68-ship-it/Gerenciador-de-rastreamento-3/internal/models"
)

type fakeStore struct {
	clients   map[string]models.Client
	templates map[string]models.Template
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		clients: map[string]models.Client{},
		templates: map[string]models.Template{
			"t1": {ID: "t1", Name: "Agendamento", Content: "Olá {name}, dia {date} às {time}."},
		},
	}
}

func (f *fakeStore) Ping(context.Context) error { return nil }

func (f *fakeStore) ListClients(_ context.Context, status models.ClientStatus) ([]models.Client, error) {
	var out []models.Client
	for _, c := range f.clients {
		if status == "" || c.Status == status {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeStore) GetClient(_ context.Context, id string) (models.Client, error) {
	c, ok := f.clients[id]
	if !ok {
		return models.Client{}, fmt.Errorf("client %s: %w", id, db.ErrNotFound)
	}
	return c, nil
}

func (f *fakeStore) InsertClient(_ context.Context, c models.Client) (models.Client, error) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	f.clients[c.ID] = c
	return c, nil
}

func (f *fakeStore) InsertClients(ctx context.Context, clients []models.Client) (int64, error) {
	for _, c := range clients {
		_, _ = f.InsertClient(ctx, c)
	}
	return int64(len(clients)), nil
}

func (f *fakeStore) UpdateClient(_ context.Context, c models.Client) (models.Client, error) {
	if _, ok := f.clients[c.ID]; !ok {
		return models.Client{}, fmt.Errorf("client %s: %w", c.ID, db.ErrNotFound)
	}
	f.clients[c.ID] = c
	return c, nil
}

func (f *fakeStore) DeleteClient(_ context.Context, id string) error {
	if _, ok := f.clients[id]; !ok {
		return fmt.Errorf("client %s: %w", id, db.ErrNotFound)
	}
	delete(f.clients, id)
	return nil
}

func (f *fakeStore) UpdateClientStatus(_ context.Context, id string, next func(models.ClientStatus) models.ClientStatus) (models.Client, error) {
	c, ok := f.clients[id]
	if !ok {
		return models.Client{}, fmt.Errorf("client %s: %w", id, db.ErrNotFound)
	}
	c.Status = next(c.Status)
	f.clients[id] = c
	return c, nil
}

func (f *fakeStore) ClientStats(_ context.Context) (models.Stats, error) {
	var st models.Stats
	for _, c := range f.clients {
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

func (f *fakeStore) ListTemplates(context.Context) ([]models.Template, error) {
	var out []models.Template
	for _, t := range f.templates {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeStore) GetTemplate(_ context.Context, id string) (models.Template, error) {
	t, ok := f.templates[id]
	if !ok {
		return models.Template{}, fmt.Errorf("template %s: %w", id, db.ErrNotFound)
	}
	return t, nil
}

func (f *fakeStore) InsertTemplate(_ context.Context, t models.Template) (models.Template, error) {
	f.templates[t.ID] = t
	return t, nil
}

func (f *fakeStore) UpdateTemplate(_ context.Context, t models.Template) (models.Template, error) {
	if _, ok := f.templates[t.ID]; !ok {
		return models.Template{}, fmt.Errorf("template %s: %w", t.ID, db.ErrNotFound)
	}
	f.templates[t.ID] = t
	return t, nil
}

func (f *fakeStore) DeleteTemplate(_ context.Context, id string) error {
	if _, ok := f.templates[id]; !ok {
		return fmt.Errorf("template %s: %w", id, db.ErrNotFound)
	}
	delete(f.templates, id)
	return nil
}

func testRouter(store Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := config.Config{
		AdminKey:        "secret",
		CORSAllowed:     "*",
		RequestTimeout:  5 * time.Second,
		MaxUploadSizeMB: 1,
		MaxPasteKB:      16,
	}
	return Router(cfg, store, zerolog.Nop())
}

func do(r http.Handler, method, path, body string, admin bool) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if admin {
		req.Header.Set("X-Admin-Key", "secret")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminRoutesRequireKey(t *testing.T) {
	r := testRouter(newFakeStore())

	w := do(r, http.MethodPost, "/api/clients", `{"name":"Ana"}`, false)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if w.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected a request id header")
	}

	w = do(r, http.MethodGet, "/api/clients", "", false)
	if w.Code != http.StatusOK {
		t.Fatalf("expected public list to be 200, got %d", w.Code)
	}
}

func TestClientLifecycle(t *testing.T) {
	store := newFakeStore()
	r := testRouter(store)

	w := do(r, http.MethodPost, "/api/clients",
		`{"name":"Ana Costa","phone":"(11) 98765-4321","plate":"abc-1d23","scheduled_date":"2024-05-09","scheduled_time":"14:30"}`, true)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created models.Client
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == "" || created.Phone != "11987654321" || created.Plate != "ABC1D23" {
		t.Fatalf("unexpected client %+v", created)
	}

	w = do(r, http.MethodGet, "/api/clients?q=ana&status=Todos", "", false)
	var list struct {
		Items []models.Client `json:"items"`
		Stats models.Stats    `json:"stats"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list.Items) != 1 || list.Stats.Todo != 1 || list.Stats.Total != 1 {
		t.Fatalf("unexpected list %+v", list)
	}

	w = do(r, http.MethodGet, "/api/clients/"+created.ID+"/message?template_id=t1", "", false)
	if w.Code != http.StatusOK {
		t.Fatalf("message: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var msg struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &msg)
	if msg.Message != "Olá Ana Costa, dia 09/05/2024 às 14:30." {
		t.Fatalf("unexpected message %q", msg.Message)
	}

	w = do(r, http.MethodPost, "/api/clients/"+created.ID+"/toggle", "", true)
	var toggled models.Client
	_ = json.Unmarshal(w.Body.Bytes(), &toggled)
	if toggled.Status != models.StatusDone {
		t.Fatalf("expected Retirado after toggle, got %q", toggled.Status)
	}

	w = do(r, http.MethodDelete, "/api/clients/"+created.ID, "", true)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", w.Code)
	}
	w = do(r, http.MethodGet, "/api/clients/"+created.ID, "", false)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", w.Code)
	}
}

func TestClientValidation(t *testing.T) {
	r := testRouter(newFakeStore())

	tests := []struct {
		name string
		body string
	}{
		{name: "bad date", body: `{"name":"Ana","scheduled_date":"09/05/2024"}`},
		{name: "bad status", body: `{"name":"Ana","status":"Perdido"}`},
		{name: "bad cpf", body: `{"name":"Ana","cpf":"123.456.789-00"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/api/clients", tt.body, true)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
			if !strings.Contains(w.Body.String(), "VALIDATION_ERROR") {
				t.Fatalf("expected VALIDATION_ERROR, got %s", w.Body.String())
			}
		})
	}
}

func TestListRejectsUnknownStatus(t *testing.T) {
	r := testRouter(newFakeStore())
	w := do(r, http.MethodGet, "/api/clients?status=Perdido", "", false)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestTemplatesRoutes(t *testing.T) {
	store := newFakeStore()
	r := testRouter(store)

	w := do(r, http.MethodPost, "/api/templates", `{"id":"t7","name":"Retirada","content":"Olá {name}"}`, true)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	w = do(r, http.MethodPut, "/api/templates/t7", `{"name":"Retirada","content":"Oi {name}"}`, true)
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d", w.Code)
	}
	if store.templates["t7"].Content != "Oi {name}" {
		t.Fatalf("template not updated: %+v", store.templates["t7"])
	}
	w = do(r, http.MethodPut, "/api/templates/none", `{"name":"x","content":"y"}`, true)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	w = do(r, http.MethodGet, "/api/templates", "", false)
	if !strings.Contains(w.Body.String(), `"t7"`) {
		t.Fatalf("expected t7 in list: %s", w.Body.String())
	}
}
