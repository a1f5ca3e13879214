package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/meridian-advisory/dealmatch/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS strategies (
	id                 TEXT PRIMARY KEY,
	name               TEXT NOT NULL,
	preference_filters TEXT NOT NULL,
	size_min           REAL NOT NULL DEFAULT 0,
	size_max           REAL NOT NULL DEFAULT 0,
	countries          TEXT NOT NULL,
	created_at         DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_strategies_name ON strategies(name);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateStrategy(ctx context.Context, in model.Strategy) (*model.Strategy, error) {
	in.ID = uuid.New().String()
	in.CreatedAt = time.Now().UTC()

	filtersJSON, countriesJSON, err := marshalStrategyColumns(&in)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal strategy")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO strategies (id, name, preference_filters, size_min, size_max, countries, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Name, filtersJSON,
		in.SizeFilter.MinInvestment, in.SizeFilter.MaxInvestment,
		countriesJSON, in.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert strategy")
	}
	return &in, nil
}

func (s *SQLiteStore) GetStrategy(ctx context.Context, id string) (*model.Strategy, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, preference_filters, size_min, size_max, countries, created_at
		 FROM strategies WHERE id = ?`, id,
	)
	out, err := scanStrategy(row)
	if eris.Is(err, sql.ErrNoRows) {
		return nil, eris.Wrapf(ErrNotFound, "sqlite: get strategy %s", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get strategy %s", id)
	}
	return out, nil
}

func (s *SQLiteStore) ListStrategies(ctx context.Context) ([]model.Strategy, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, preference_filters, size_min, size_max, countries, created_at
		 FROM strategies ORDER BY created_at DESC, id`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list strategies")
	}
	defer rows.Close()

	var out []model.Strategy
	for rows.Next() {
		st, err := scanStrategy(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan strategy")
		}
		out = append(out, *st)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: list strategies")
}

// UpdateStrategy replaces the strategy's filters and name. CreatedAt is set
// at creation and never rewritten.
func (s *SQLiteStore) UpdateStrategy(ctx context.Context, in model.Strategy) (*model.Strategy, error) {
	filtersJSON, countriesJSON, err := marshalStrategyColumns(&in)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal strategy")
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE strategies SET name = ?, preference_filters = ?, size_min = ?, size_max = ?, countries = ?
		 WHERE id = ?`,
		in.Name, filtersJSON,
		in.SizeFilter.MinInvestment, in.SizeFilter.MaxInvestment,
		countriesJSON, in.ID,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: update strategy %s", in.ID)
	}
	if err := checkRowsAffected(res, in.ID); err != nil {
		return nil, err
	}
	return s.GetStrategy(ctx, in.ID)
}

func (s *SQLiteStore) DeleteStrategy(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM strategies WHERE id = ?`, id)
	if err != nil {
		return eris.Wrapf(err, "sqlite: delete strategy %s", id)
	}
	return checkRowsAffected(res, id)
}

func checkRowsAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return eris.Wrapf(ErrNotFound, "sqlite: strategy %s", id)
	}
	return nil
}

// scannable covers both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

func scanStrategy(row scannable) (*model.Strategy, error) {
	var (
		st            model.Strategy
		filtersJSON   string
		countriesJSON string
	)
	err := row.Scan(&st.ID, &st.Name, &filtersJSON,
		&st.SizeFilter.MinInvestment, &st.SizeFilter.MaxInvestment,
		&countriesJSON, &st.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := unmarshalStrategyColumns(&st, []byte(filtersJSON), []byte(countriesJSON)); err != nil {
		return nil, err
	}
	return &st, nil
}

func marshalStrategyColumns(st *model.Strategy) (filters, countries []byte, err error) {
	if st.PreferenceFilters == nil {
		st.PreferenceFilters = map[string]string{}
	}
	filters, err = json.Marshal(st.PreferenceFilters)
	if err != nil {
		return nil, nil, err
	}
	if st.Countries == nil {
		st.Countries = []string{}
	}
	countries, err = json.Marshal(st.Countries)
	if err != nil {
		return nil, nil, err
	}
	return filters, countries, nil
}

func unmarshalStrategyColumns(st *model.Strategy, filters, countries []byte) error {
	if err := json.Unmarshal(filters, &st.PreferenceFilters); err != nil {
		return err
	}
	return json.Unmarshal(countries, &st.Countries)
}
