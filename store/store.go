// Package store exports finished training runs and their statistics to a
// sqlite database. Nothing is ever read back into a trainer.
package store

import "context"
import "database/sql"
import "math"
import "time"
import "github.com/google/uuid"
import "github.com/jmoiron/sqlx"
import "github.com/pkg/errors"
import _ "modernc.org/sqlite"
import "github.com/neurlang/gantrainer/ledger"

const driver = "sqlite"

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	variant    TEXT NOT NULL,
	device     TEXT NOT NULL,
	epochs     INTEGER NOT NULL,
	batch      INTEGER NOT NULL,
	threshold  REAL NOT NULL,
	created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS series (
	run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	name   TEXT NOT NULL,
	step   INTEGER NOT NULL,
	value  REAL,
	PRIMARY KEY (run_id, name, step)
);
`

var (
	ErrNotFound = errors.New("store: run not found")
	ErrNoStats  = errors.New("store: run without statistics")
)

func init() {
	sqlx.BindDriver(driver, sqlx.QUESTION)
}

// Run is one finished training run.
type Run struct {
	ID        string    `db:"id"`
	Variant   string    `db:"variant"`
	Device    string    `db:"device"`
	Epochs    int       `db:"epochs"`
	Batch     int       `db:"batch"`
	Threshold float64   `db:"threshold"`
	CreatedAt time.Time `db:"created_at"`

	// Stats is exported series by series.
	Stats ledger.View `db:"-"`
}

// Store is a sqlite run database.
type Store struct {
	db *sqlx.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	db, err := sqlx.Open(driver, path)
	if err != nil {
		return nil, errors.Wrapf(err, "store: open %s", path)
	}
	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA foreign_keys=ON"} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, errors.Wrap(err, "store: "+pragma)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "store: schema")
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun writes run and every series of its statistics in one
// transaction. An empty ID is replaced by a fresh UUID and a zero CreatedAt
// by the current time; the stored run is returned.
func (s *Store) SaveRun(ctx context.Context, run Run) (Run, error) {
	if run.Stats == nil {
		return run, ErrNoStats
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return run, errors.Wrap(err, "store: begin")
	}
	defer tx.Rollback()

	_, err = tx.NamedExecContext(ctx,
		`INSERT INTO runs (id, variant, device, epochs, batch, threshold, created_at)
		 VALUES (:id, :variant, :device, :epochs, :batch, :threshold, :created_at)`, run)
	if err != nil {
		return run, errors.Wrapf(err, "store: insert run %s", run.ID)
	}

	insert, err := tx.PreparexContext(ctx, `INSERT INTO series (run_id, name, step, value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return run, errors.Wrap(err, "store: prepare")
	}
	defer insert.Close()

	for _, name := range run.Stats.Names() {
		values, _ := run.Stats.Series(name)
		for step, v := range values {
			if _, err := insert.ExecContext(ctx, run.ID, name, step, nullable(v)); err != nil {
				return run, errors.Wrapf(err, "store: insert %s[%d]", name, step)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return run, errors.Wrap(err, "store: commit")
	}
	return run, nil
}

// Runs lists the stored runs, newest first, without statistics.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	var runs []Run
	err := s.db.SelectContext(ctx, &runs,
		`SELECT id, variant, device, epochs, batch, threshold, created_at FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "store: list runs")
	}
	return runs, nil
}

// Run returns the stored run id without statistics.
func (s *Store) Run(ctx context.Context, id string) (Run, error) {
	var run Run
	err := s.db.GetContext(ctx, &run,
		`SELECT id, variant, device, epochs, batch, threshold, created_at FROM runs WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return run, errors.Wrap(ErrNotFound, id)
	}
	if err != nil {
		return run, errors.Wrapf(err, "store: get run %s", id)
	}
	return run, nil
}

// Series returns a stored series in step order. Non-finite values come back
// as NaN.
func (s *Store) Series(ctx context.Context, id, name string) ([]float64, error) {
	var rows []sql.NullFloat64
	err := s.db.SelectContext(ctx, &rows,
		`SELECT value FROM series WHERE run_id = ? AND name = ? ORDER BY step`, id, name)
	if err != nil {
		return nil, errors.Wrapf(err, "store: series %s of %s", name, id)
	}
	out := make([]float64, len(rows))
	for i, v := range rows {
		out[i] = math.NaN()
		if v.Valid {
			out[i] = v.Float64
		}
	}
	return out, nil
}

// sqlite has no NaN or infinity.
func nullable(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: !math.IsNaN(v) && !math.IsInf(v, 0)}
}
