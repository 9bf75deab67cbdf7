package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tektai/ar-viewer/internal/transform"
)

const schema = `
CREATE TABLE IF NOT EXISTS models (
	id          TEXT PRIMARY KEY,
	sort_order  SERIAL,
	name        TEXT NOT NULL,
	format      TEXT NOT NULL,
	url         TEXT NOT NULL,
	scale       DOUBLE PRECISION,
	position    JSONB,
	rotation    JSONB,
	thumbnail   TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	is_local    BOOLEAN NOT NULL DEFAULT FALSE,
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

const selectColumns = `id, name, format, url, scale, position, rotation, thumbnail, description, is_local`

// PostgresStore keeps the catalog in a PostgreSQL "models" table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps an open pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the models table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create models table: %w", err)
	}
	return nil
}

// Upsert inserts or replaces models in a single transaction.
func (s *PostgresStore) Upsert(ctx context.Context, models []Model) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		for _, m := range models {
			if err := writeModel(ctx, tx, m); err != nil {
				return fmt.Errorf("failed to upsert model %s: %w", m.ID, err)
			}
		}
		return nil
	})
}

func (s *PostgresStore) List(ctx context.Context) ([]Model, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+selectColumns+` FROM models ORDER BY sort_order, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query models: %w", err)
	}
	defer rows.Close()

	models := []Model{}
	for rows.Next() {
		m, err := scanModel(rows)
		if err != nil {
			return nil, err
		}
		models = append(models, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read models: %w", err)
	}
	return models, nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (Model, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM models WHERE id = $1`, id)
	return scanModel(row)
}

func (s *PostgresStore) Update(ctx context.Context, id string, patch Patch) (Model, error) {
	if err := patch.Validate(); err != nil {
		return Model{}, err
	}

	var updated Model
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `SELECT `+selectColumns+` FROM models WHERE id = $1 FOR UPDATE`, id)
		current, err := scanModel(row)
		if err != nil {
			return err
		}
		updated = current.Apply(patch)
		return writeModel(ctx, tx, updated)
	})
	if err != nil {
		return Model{}, err
	}
	return updated, nil
}

func (s *PostgresStore) Remove(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM models WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete model: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrModelNotFound
	}
	return nil
}

func writeModel(ctx context.Context, tx pgx.Tx, m Model) error {
	position, err := encodeVec(m.Position)
	if err != nil {
		return err
	}
	rotation, err := encodeVec(m.Rotation)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO models (id, name, format, url, scale, position, rotation, thumbnail, description, is_local)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			format = EXCLUDED.format,
			url = EXCLUDED.url,
			scale = EXCLUDED.scale,
			position = EXCLUDED.position,
			rotation = EXCLUDED.rotation,
			thumbnail = EXCLUDED.thumbnail,
			description = EXCLUDED.description,
			is_local = EXCLUDED.is_local,
			updated_at = NOW()
	`, m.ID, m.Name, string(m.Format), m.URL, m.Scale, position, rotation, m.Thumbnail, m.Description, m.IsLocal)
	return err
}

func scanModel(row pgx.Row) (Model, error) {
	var (
		m                  Model
		format             string
		position, rotation []byte
	)
	err := row.Scan(&m.ID, &m.Name, &format, &m.URL, &m.Scale, &position, &rotation, &m.Thumbnail, &m.Description, &m.IsLocal)
	if errors.Is(err, pgx.ErrNoRows) {
		return Model{}, ErrModelNotFound
	}
	if err != nil {
		return Model{}, fmt.Errorf("failed to scan model: %w", err)
	}
	m.Format = Format(format)

	if m.Position, err = decodeVec(position); err != nil {
		return Model{}, err
	}
	if m.Rotation, err = decodeVec(rotation); err != nil {
		return Model{}, err
	}
	return m, nil
}

// encodeVec returns nil for a nil vector so the column is stored as NULL.
func encodeVec(v *transform.Vec3) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func decodeVec(data []byte) (*transform.Vec3, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var v transform.Vec3
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to decode vector: %w", err)
	}
	return &v, nil
}
