package db

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/rastreadorteste68-ship-it/Gerenciador-de-rastreamento-3/internal/models"
)

var clientColumns = []string{
	"id", "name", "phone", "cpf", "address", "vehicle", "plate",
	"tracker_number", "tracker_model", "observations",
	"scheduled_date", "scheduled_time", "status", "created_at", "updated_at",
}

func clientValues(c models.Client) []any {
	return []any{
		c.ID, c.Name, c.Phone, c.CPF, c.Address, c.Vehicle, c.Plate,
		c.TrackerNumber, c.TrackerModel, c.Observations,
		c.ScheduledDate, c.ScheduledTime, string(c.Status), c.CreatedAt, c.UpdatedAt,
	}
}

func scanClient(row pgx.Row) (models.Client, error) {
	var (
		c      models.Client
		status string
	)
	err := row.Scan(
		&c.ID, &c.Name, &c.Phone, &c.CPF, &c.Address, &c.Vehicle, &c.Plate,
		&c.TrackerNumber, &c.TrackerModel, &c.Observations,
		&c.ScheduledDate, &c.ScheduledTime, &status, &c.CreatedAt, &c.UpdatedAt,
	)
	c.Status = models.ClientStatus(status)
	return c, err
}

// ListClients returns clients newest first, optionally narrowed to a single
// status. Text search is left to the caller.
func (s *Store) ListClients(ctx context.Context, status models.ClientStatus) ([]models.Client, error) {
	q := psql.Select(clientColumns...).From("clients")
	if status != "" {
		q = q.Where(sq.Eq{"status": string(status)})
	}
	query, args, err := q.OrderBy("created_at DESC", "id ASC").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) GetClient(ctx context.Context, id string) (models.Client, error) {
	query, args, err := psql.Select(clientColumns...).From("clients").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return models.Client{}, err
	}
	c, err := scanClient(s.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		return models.Client{}, mapError(err, "client", id)
	}
	return c, nil
}

func (s *Store) InsertClient(ctx context.Context, c models.Client) (models.Client, error) {
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now

	query, args, err := psql.Insert("clients").Columns(clientColumns...).Values(clientValues(c)...).ToSql()
	if err != nil {
		return models.Client{}, err
	}
	if _, err := s.Pool.Exec(ctx, query, args...); err != nil {
		return models.Client{}, mapError(err, "client", c.ID)
	}
	return c, nil
}

// InsertClients bulk loads already merged clients.
func (s *Store) InsertClients(ctx context.Context, clients []models.Client) (int64, error) {
	now := time.Now().UTC()
	rows := make([][]any, 0, len(clients))
	for _, c := range clients {
		if c.CreatedAt.IsZero() {
			c.CreatedAt = now
		}
		c.UpdatedAt = now
		rows = append(rows, clientValues(c))
	}
	n, err := s.Pool.CopyFrom(ctx, pgx.Identifier{"clients"}, clientColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, mapError(err, "client", "batch")
	}
	return n, nil
}

// UpdateClient overwrites every editable field. created_at is kept.
func (s *Store) UpdateClient(ctx context.Context, c models.Client) (models.Client, error) {
	c.UpdatedAt = time.Now().UTC()
	query, args, err := psql.Update("clients").
		SetMap(map[string]any{
			"name":           c.Name,
			"phone":          c.Phone,
			"cpf":            c.CPF,
			"address":        c.Address,
			"vehicle":        c.Vehicle,
			"plate":          c.Plate,
			"tracker_number": c.TrackerNumber,
			"tracker_model":  c.TrackerModel,
			"observations":   c.Observations,
			"scheduled_date": c.ScheduledDate,
			"scheduled_time": c.ScheduledTime,
			"status":         string(c.Status),
			"updated_at":     c.UpdatedAt,
		}).
		Where(sq.Eq{"id": c.ID}).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return models.Client{}, err
	}
	if err := s.Pool.QueryRow(ctx, query, args...).Scan(&c.CreatedAt); err != nil {
		return models.Client{}, mapError(err, "client", c.ID)
	}
	return c, nil
}

func (s *Store) DeleteClient(ctx context.Context, id string) error {
	query, args, err := psql.Delete("clients").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	tag, err := s.Pool.Exec(ctx, query, args...)
	if err != nil {
		return mapError(err, "client", id)
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "client", id)
	}
	return nil
}

// UpdateClientStatus reads the current status under a row lock and stores
// whatever next returns for it.
func (s *Store) UpdateClientStatus(ctx context.Context, id string, next func(models.ClientStatus) models.ClientStatus) (models.Client, error) {
	var out models.Client
	err := s.WithTx(ctx, func(tx pgx.Tx) error {
		query, args, err := psql.Select(clientColumns...).From("clients").
			Where(sq.Eq{"id": id}).Suffix("FOR UPDATE").ToSql()
		if err != nil {
			return err
		}
		c, err := scanClient(tx.QueryRow(ctx, query, args...))
		if err != nil {
			return err
		}

		c.Status = next(c.Status)
		c.UpdatedAt = time.Now().UTC()
		query, args, err = psql.Update("clients").
			Set("status", string(c.Status)).
			Set("updated_at", c.UpdatedAt).
			Where(sq.Eq{"id": id}).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return models.Client{}, mapError(err, "client", id)
	}
	return out, nil
}

func (s *Store) ClientStats(ctx context.Context) (models.Stats, error) {
	query, args, err := psql.Select("status", "COUNT(*)").From("clients").GroupBy("status").ToSql()
	if err != nil {
		return models.Stats{}, err
	}
	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return models.Stats{}, err
	}
	defer rows.Close()

	var st models.Stats
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return models.Stats{}, err
		}
		st.Total += n
		switch models.ClientStatus(status) {
		case models.StatusTodo:
			st.Todo = n
		case models.StatusScheduled:
			st.Scheduled = n
		case models.StatusDone:
			st.Done = n
		}
	}
	return st, rows.Err()
}
