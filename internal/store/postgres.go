package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/meridian-advisory/dealmatch/internal/db"
	"github.com/meridian-advisory/dealmatch/internal/model"
	"github.com/meridian-advisory/dealmatch/internal/resilience"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool db.Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}

	// The database may still be starting when we are. Retry the first ping
	// with backoff before giving up.
	err = resilience.Do(ctx, resilience.DefaultRetryConfig(), "postgres ping", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	if err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresFromPool wraps an existing pool. Used by tests with pgxmock.
func NewPostgresFromPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS strategies (
	id                 TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	name               TEXT NOT NULL,
	preference_filters JSONB NOT NULL DEFAULT '{}'::jsonb,
	size_min           DOUBLE PRECISION NOT NULL DEFAULT 0,
	size_max           DOUBLE PRECISION NOT NULL DEFAULT 0,
	countries          JSONB NOT NULL DEFAULT '[]'::jsonb,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_strategies_name ON strategies(name);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.pool.Ping(ctx), "postgres: ping")
}

func (s *PostgresStore) CreateStrategy(ctx context.Context, in model.Strategy) (*model.Strategy, error) {
	in.ID = uuid.New().String()
	in.CreatedAt = time.Now().UTC()

	filtersJSON, countriesJSON, err := marshalStrategyColumns(&in)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal strategy")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO strategies (id, name, preference_filters, size_min, size_max, countries, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		in.ID, in.Name, filtersJSON,
		in.SizeFilter.MinInvestment, in.SizeFilter.MaxInvestment,
		countriesJSON, in.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert strategy")
	}
	return &in, nil
}

func (s *PostgresStore) GetStrategy(ctx context.Context, id string) (*model.Strategy, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, name, preference_filters, size_min, size_max, countries, created_at
		 FROM strategies WHERE id = $1`, id,
	)
	out, err := scanPgStrategy(row)
	if eris.Is(err, pgx.ErrNoRows) {
		return nil, eris.Wrapf(ErrNotFound, "postgres: get strategy %s", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get strategy %s", id)
	}
	return out, nil
}

func (s *PostgresStore) ListStrategies(ctx context.Context) ([]model.Strategy, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, preference_filters, size_min, size_max, countries, created_at
		 FROM strategies ORDER BY created_at DESC, id`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list strategies")
	}
	defer rows.Close()

	var out []model.Strategy
	for rows.Next() {
		st, err := scanPgStrategy(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan strategy")
		}
		out = append(out, *st)
	}
	return out, eris.Wrap(rows.Err(), "postgres: list strategies")
}

func (s *PostgresStore) UpdateStrategy(ctx context.Context, in model.Strategy) (*model.Strategy, error) {
	filtersJSON, countriesJSON, err := marshalStrategyColumns(&in)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal strategy")
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE strategies SET name = $1, preference_filters = $2, size_min = $3, size_max = $4, countries = $5
		 WHERE id = $6`,
		in.Name, filtersJSON,
		in.SizeFilter.MinInvestment, in.SizeFilter.MaxInvestment,
		countriesJSON, in.ID,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: update strategy %s", in.ID)
	}
	if tag.RowsAffected() == 0 {
		return nil, eris.Wrapf(ErrNotFound, "postgres: strategy %s", in.ID)
	}
	return s.GetStrategy(ctx, in.ID)
}

func (s *PostgresStore) DeleteStrategy(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM strategies WHERE id = $1`, id)
	if err != nil {
		return eris.Wrapf(err, "postgres: delete strategy %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(ErrNotFound, "postgres: strategy %s", id)
	}
	return nil
}

func scanPgStrategy(row pgx.Row) (*model.Strategy, error) {
	var (
		st            model.Strategy
		filtersJSON   []byte
		countriesJSON []byte
	)
	err := row.Scan(&st.ID, &st.Name, &filtersJSON,
		&st.SizeFilter.MinInvestment, &st.SizeFilter.MaxInvestment,
		&countriesJSON, &st.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := unmarshalStrategyColumns(&st, filtersJSON, countriesJSON); err != nil {
		return nil, err
	}
	return &st, nil
}
