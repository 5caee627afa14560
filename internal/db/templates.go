package db

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/rastreadorteste68-ship-it/Gerenciador-de-rastreamento-3/internal/models"
)

var templateColumns = []string{"id", "name", "content", "updated_at"}

func scanTemplate(row pgx.Row) (models.Template, error) {
	var t models.Template
	err := row.Scan(&t.ID, &t.Name, &t.Content, &t.UpdatedAt)
	return t, err
}

func (s *Store) ListTemplates(ctx context.Context) ([]models.Template, error) {
	query, args, err := psql.Select(templateColumns...).From("templates").OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) GetTemplate(ctx context.Context, id string) (models.Template, error) {
	query, args, err := psql.Select(templateColumns...).From("templates").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return models.Template{}, err
	}
	t, err := scanTemplate(s.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		return models.Template{}, mapError(err, "template", id)
	}
	return t, nil
}

func (s *Store) InsertTemplate(ctx context.Context, t models.Template) (models.Template, error) {
	t.UpdatedAt = time.Now().UTC()
	query, args, err := psql.Insert("templates").
		Columns(templateColumns...).
		Values(t.ID, t.Name, t.Content, t.UpdatedAt).
		ToSql()
	if err != nil {
		return models.Template{}, err
	}
	if _, err := s.Pool.Exec(ctx, query, args...); err != nil {
		return models.Template{}, mapError(err, "template", t.ID)
	}
	return t, nil
}

func (s *Store) UpdateTemplate(ctx context.Context, t models.Template) (models.Template, error) {
	t.UpdatedAt = time.Now().UTC()
	query, args, err := psql.Update("templates").
		Set("name", t.Name).
		Set("content", t.Content).
		Set("updated_at", t.UpdatedAt).
		Where(sq.Eq{"id": t.ID}).
		ToSql()
	if err != nil {
		return models.Template{}, err
	}
	tag, err := s.Pool.Exec(ctx, query, args...)
	if err != nil {
		return models.Template{}, mapError(err, "template", t.ID)
	}
	if tag.RowsAffected() == 0 {
		return models.Template{}, mapError(pgx.ErrNoRows, "template", t.ID)
	}
	return t, nil
}

func (s *Store) DeleteTemplate(ctx context.Context, id string) error {
	query, args, err := psql.Delete("templates").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	tag, err := s.Pool.Exec(ctx, query, args...)
	if err != nil {
		return mapError(err, "template", id)
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "template", id)
	}
	return nil
}
