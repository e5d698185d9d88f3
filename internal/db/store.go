// Package db provides SQL storage for canonical store-hours records.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"go.uber.org/multierr"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/storehours/internal/hours"
	"github.com/javiermolinar/storehours/internal/spool"
)

// insertChunk is the number of rows per multi-row INSERT. Five parameters per
// row keeps statements under SQLite's 999 bind-parameter limit.
const insertChunk = 150

// Store implements hours.Repository on SQLite, MySQL or PostgreSQL.
type Store struct {
	db      *sql.DB
	dialect dialect
	table   string
}

var _ hours.Repository = (*Store)(nil)

// Open connects to the database, creating the records table if needed.
// For SQLite the DSN is a file path; its directory is created.
func Open(ctx context.Context, driver, dsn, table string) (*Store, error) {
	d, err := lookupDialect(driver)
	if err != nil {
		return nil, err
	}

	if d.driver == "sqlite" && dsn != ":memory:" && !strings.HasPrefix(dsn, "file:") {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if d.driver == "sqlite" {
		// One writer at a time; also keeps :memory: on a single connection.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxIdleConns(4)
		db.SetMaxOpenConns(8)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &Store{db: db, dialect: d, table: table}
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// SaveRecords inserts records in a single transaction. PostgreSQL uses COPY;
// the other backends use batched multi-row INSERTs.
func (s *Store) SaveRecords(ctx context.Context, records []hours.Record) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}

	var n int64
	if s.dialect.driver == "postgres" {
		n, err = s.copyRecords(ctx, tx, records)
	} else {
		n, err = s.insertRecords(ctx, tx, records)
	}
	if err != nil {
		return 0, multierr.Append(err, tx.Rollback())
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing records: %w", err)
	}
	return n, nil
}

func (s *Store) insertRecords(ctx context.Context, tx *sql.Tx, records []hours.Record) (int64, error) {
	var total int64
	for start := 0; start < len(records); start += insertChunk {
		chunk := records[start:min(start+insertChunk, len(records))]

		args := make([]any, 0, len(chunk)*5)
		for _, r := range chunk {
			args = append(args, r.StoreID, r.Label, int(r.Weekday), r.Open, r.Close)
		}

		result, err := tx.ExecContext(ctx, s.dialect.insertRows(s.table, len(chunk)), args...)
		if err != nil {
			return 0, fmt.Errorf("inserting records: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("counting inserted records: %w", err)
		}
		total += rows
	}
	return total, nil
}

func (s *Store) copyRecords(ctx context.Context, tx *sql.Tx, records []hours.Record) (int64, error) {
	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(s.table, spool.Columns...))
	if err != nil {
		return 0, fmt.Errorf("preparing copy: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, r.StoreID, r.Label, int(r.Weekday), r.Open, r.Close); err != nil {
			return 0, fmt.Errorf("copying record: %w", err)
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		return 0, fmt.Errorf("flushing copy: %w", err)
	}
	return int64(len(records)), nil
}

// LoadFile bulk-loads a spool file. MySQL reads it server-side with
// LOAD DATA LOCAL INFILE; other backends stream it through SaveRecords.
func (s *Store) LoadFile(ctx context.Context, path string) (int64, error) {
	if s.dialect.driver == "mysql" {
		return s.loadDataInfile(ctx, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening spool file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var (
		total int64
		batch = make([]hours.Record, 0, 10*insertChunk)
	)
	flush := func() error {
		n, err := s.SaveRecords(ctx, batch)
		if err != nil {
			return err
		}
		total += n
		batch = batch[:0]
		return nil
	}

	err = spool.Read(f, func(r hours.Record) error {
		batch = append(batch, r)
		if len(batch) == cap(batch) {
			return flush()
		}
		return nil
	})
	if err != nil {
		return total, err
	}
	if err := flush(); err != nil {
		return total, err
	}
	return total, nil
}

func (s *Store) loadDataInfile(ctx context.Context, path string) (int64, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return 0, fmt.Errorf("resolving spool path: %w", err)
	}
	mysql.RegisterLocalFile(abs)
	defer mysql.DeregisterLocalFile(abs)

	result, err := s.db.ExecContext(ctx, s.dialect.loadDataInfile(s.table, abs))
	if err != nil {
		return 0, fmt.Errorf("loading %s: %w", abs, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting loaded records: %w", err)
	}
	return n, nil
}

// ListByStore returns a store's intervals ordered by weekday and opening time.
func (s *Store) ListByStore(ctx context.Context, storeID int) ([]hours.Record, error) {
	query := fmt.Sprintf(`%s WHERE store_id = %s ORDER BY weekday, %s`,
		s.selectRecords(), s.dialect.placeholder(1), s.dialect.quote("open"))
	return s.queryRecords(ctx, query, storeID)
}

// ListOpenAt returns the intervals with open <= clock < close on day, ordered
// by store id.
func (s *Store) ListOpenAt(ctx context.Context, day hours.Weekday, clock string) ([]hours.Record, error) {
	if !day.Valid() {
		return nil, fmt.Errorf("invalid weekday %d", int(day))
	}
	if _, err := hours.ParseClock(clock); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`%s WHERE weekday = %s AND %s <= %s AND %s > %s ORDER BY store_id, %s`,
		s.selectRecords(),
		s.dialect.placeholder(1),
		s.dialect.quote("open"), s.dialect.placeholder(2),
		s.dialect.quote("close"), s.dialect.placeholder(3),
		s.dialect.quote("open"))
	return s.queryRecords(ctx, query, int(day), clock, clock)
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+s.dialect.quote(s.table)).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return n, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) selectRecords() string {
	return fmt.Sprintf(`SELECT store_id, name, weekday, %s, %s FROM %s`,
		s.dialect.clockText("open"), s.dialect.clockText("close"), s.dialect.quote(s.table))
}

func (s *Store) queryRecords(ctx context.Context, query string, args ...any) ([]hours.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []hours.Record
	for rows.Next() {
		var (
			r       hours.Record
			weekday int
		)
		if err := rows.Scan(&r.StoreID, &r.Label, &weekday, &r.Open, &r.Close); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		r.Weekday = hours.Weekday(weekday)
		r.Open = trimSeconds(r.Open)
		r.Close = trimSeconds(r.Close)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}

	return records, nil
}

// trimSeconds turns a TIME read back as "HH:MM:SS" into "HH:MM".
func trimSeconds(clock string) string {
	if len(clock) == 8 && clock[5] == ':' {
		return clock[:5]
	}
	return clock
}
