package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/rastreadorteste68-ship-it/Gerenciador-de-rastreamento-3/internal/models"
)

func newMockStore(t *testing.T) (*Store, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	t.Cleanup(mock.Close)
	return NewWithPool(mock), mock
}

func expectationsMet(t *testing.T, mock pgxmock.PgxPoolIface) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func clientRows(clients ...models.Client) *pgxmock.Rows {
	rows := pgxmock.NewRows(clientColumns)
	for _, c := range clients {
		rows.AddRow(clientValues(c)...)
	}
	return rows
}

func sampleClient(id string, status models.ClientStatus) models.Client {
	now := time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)
	return models.Client{
		ID:            id,
		Name:          "Maria Souza",
		Phone:         "(11) 98765-4321",
		Plate:         "ABC-1D23",
		Vehicle:       "Fiat Uno Branco",
		TrackerNumber: "356938035643809",
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestListClients(t *testing.T) {
	tests := []struct {
		name   string
		status models.ClientStatus
		query  string
	}{
		{name: "all", query: `^SELECT .* FROM clients ORDER BY created_at DESC, id ASC$`},
		{name: "by status", status: models.StatusScheduled, query: `^SELECT .* FROM clients WHERE status = \$1 ORDER BY`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newMockStore(t)
			exp := mock.ExpectQuery(tt.query)
			if tt.status != "" {
				exp = exp.WithArgs(string(tt.status))
			}
			exp.WillReturnRows(clientRows(sampleClient("c1", models.StatusScheduled), sampleClient("c2", models.StatusScheduled)))

			got, err := store.ListClients(context.Background(), tt.status)
			if err != nil {
				t.Fatalf("ListClients: %v", err)
			}
			if len(got) != 2 || got[0].ID != "c1" || got[1].Status != models.StatusScheduled {
				t.Fatalf("unexpected clients: %+v", got)
			}
			expectationsMet(t, mock)
		})
	}
}

func TestGetClientNotFound(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(`^SELECT .* FROM clients WHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := store.GetClient(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestInsertClientConflict(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec(`^INSERT INTO clients`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := store.InsertClient(context.Background(), sampleClient("dup", models.StatusTodo))
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestInsertClientsCopiesRows(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectCopyFrom(pgx.Identifier{"clients"}, clientColumns).WillReturnResult(2)

	n, err := store.InsertClients(context.Background(), []models.Client{
		sampleClient("a", models.StatusTodo),
		{ID: "b", Name: "Sem Nome", Status: models.StatusTodo},
	})
	if err != nil {
		t.Fatalf("InsertClients: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 rows copied, got %d", n)
	}
	expectationsMet(t, mock)
}

func TestInsertClientsDuplicateIsConflict(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectCopyFrom(pgx.Identifier{"clients"}, clientColumns).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := store.InsertClients(context.Background(), []models.Client{sampleClient("dup", models.StatusTodo)})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestUpdateClientKeepsCreatedAt(t *testing.T) {
	store, mock := newMockStore(t)
	created := time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectQuery(`^UPDATE clients SET .* WHERE id = \$\d+ RETURNING created_at$`).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(created))

	c := sampleClient("c1", models.StatusDone)
	c.CreatedAt = time.Time{}
	got, err := store.UpdateClient(context.Background(), c)
	if err != nil {
		t.Fatalf("UpdateClient: %v", err)
	}
	if !got.CreatedAt.Equal(created) {
		t.Fatalf("created_at = %v, want %v", got.CreatedAt, created)
	}
	expectationsMet(t, mock)
}

func TestDeleteClient(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "deleted", affected: 1},
		{name: "missing", affected: 0, wantErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newMockStore(t)
			mock.ExpectExec(`^DELETE FROM clients WHERE id = \$1$`).
				WithArgs("c1").
				WillReturnResult(pgxmock.NewResult("DELETE", tt.affected))

			err := store.DeleteClient(context.Background(), "c1")
			if tt.wantErr == nil && err != nil {
				t.Fatalf("DeleteClient: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			expectationsMet(t, mock)
		})
	}
}

func TestUpdateClientStatusLocksRow(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`^SELECT .* FROM clients WHERE id = \$1 FOR UPDATE$`).
		WithArgs("c1").
		WillReturnRows(clientRows(sampleClient("c1", models.StatusDone)))
	mock.ExpectExec(`^UPDATE clients SET status = \$1, updated_at = \$2 WHERE id = \$3$`).
		WithArgs(string(models.StatusTodo), pgxmock.AnyArg(), "c1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	var seen models.ClientStatus
	got, err := store.UpdateClientStatus(context.Background(), "c1", func(s models.ClientStatus) models.ClientStatus {
		seen = s
		return models.StatusTodo
	})
	if err != nil {
		t.Fatalf("UpdateClientStatus: %v", err)
	}
	if seen != models.StatusDone {
		t.Fatalf("next saw %q, want %q", seen, models.StatusDone)
	}
	if got.Status != models.StatusTodo {
		t.Fatalf("status = %q, want %q", got.Status, models.StatusTodo)
	}
	expectationsMet(t, mock)
}

func TestUpdateClientStatusMissingRollsBack(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE$`).WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, err := store.UpdateClientStatus(context.Background(), "nope", func(s models.ClientStatus) models.ClientStatus { return s })
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestClientStats(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(`^SELECT status, COUNT\(\*\) FROM clients GROUP BY status$`).
		WillReturnRows(pgxmock.NewRows([]string{"status", "count"}).
			AddRow("Fazer", 3).
			AddRow("Agendado", 1).
			AddRow("Retirado", 2))

	st, err := store.ClientStats(context.Background())
	if err != nil {
		t.Fatalf("ClientStats: %v", err)
	}
	want := models.Stats{Total: 6, Todo: 3, Scheduled: 1, Done: 2}
	if st != want {
		t.Fatalf("stats = %+v, want %+v", st, want)
	}
	expectationsMet(t, mock)
}
