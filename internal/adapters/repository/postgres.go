package repository

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // migrate driver
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/okian/bestxi/internal/adapters/repository/migrations"
	"github.com/okian/bestxi/internal/domain/model"
	"github.com/okian/bestxi/pkg/logger"
	"github.com/okian/bestxi/pkg/metrics"
)

const (
	matchTable     = "match_records"
	pingTimeout    = 5 * time.Second
	maxOpenConns   = 10
	connMaxIdleAge = 5 * time.Minute
)

// PostgresStore reads match records from the match_records table. The seq
// column carries the chronological order.
type PostgresStore struct {
	db     *sqlx.DB
	query  string
	logger logger.Logger
}

// NewPostgresStore wraps an open database handle.
func NewPostgresStore(db *sqlx.DB, opts ...Option) *PostgresStore {
	o := options{logger: logger.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &PostgresStore{db: db, query: selectRecordsQuery(), logger: o.logger}
}

// OpenPostgres connects to databaseURL, verifies the connection and, when
// requested, applies pending migrations.
func OpenPostgres(ctx context.Context, databaseURL string, opts ...Option) (*PostgresStore, error) {
	o := options{logger: logger.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.migrate {
		if err := Migrate(ctx, databaseURL, o.logger); err != nil {
			return nil, err
		}
	}

	db, err := sqlx.Open("postgres", databaseURL)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "open postgres"), ErrUnavailable)
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetConnMaxIdleTime(connMaxIdleAge)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, errors.Mark(errors.Wrap(err, "ping postgres"), ErrUnavailable)
	}
	return NewPostgresStore(db, opts...), nil
}

// Driver implements Store.
func (s *PostgresStore) Driver() string { return DriverPostgres }

// Close implements Store.
func (s *PostgresStore) Close() error { return s.db.Close() }

// Records implements MatchRecordSource.
func (s *PostgresStore) Records(ctx context.Context, names []string) ([]model.MatchRecord, error) {
	if len(names) == 0 {
		return nil, nil
	}
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(DriverPostgres, metrics.SinceMs(start))
	}()

	var rows []matchRow
	if err := s.db.SelectContext(ctx, &rows, s.query, pq.Array(names)); err != nil {
		metrics.RecordStoreError(DriverPostgres)
		return nil, errors.Mark(errors.Wrap(err, "select match records"), ErrUnavailable)
	}

	out := make([]model.MatchRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.record())
	}
	s.logger.Debug(ctx, "match records loaded",
		logger.Int("requested", len(names)),
		logger.Int("records", len(out)),
	)
	return out, nil
}

// selectRecordsQuery builds the membership query. Tracked column names keep
// their export spelling, so every identifier is quoted and aliased to the
// matchRow tags.
func selectRecordsQuery() string {
	var b strings.Builder
	b.WriteString("SELECT seq, ")
	b.WriteString(pq.QuoteIdentifier(columnPlayer))
	b.WriteString(" AS full_name, home_team, away_team")
	for _, c := range model.Columns {
		b.WriteString(", ")
		b.WriteString(pq.QuoteIdentifier(c))
		b.WriteString(" AS ")
		b.WriteString(statAlias(c))
	}
	b.WriteString(" FROM ")
	b.WriteString(matchTable)
	b.WriteString(" WHERE ")
	b.WriteString(pq.QuoteIdentifier(columnPlayer))
	b.WriteString(" = ANY($1) ORDER BY seq ASC")
	return b.String()
}

// Migrate applies every pending up migration embedded in the binary.
func Migrate(ctx context.Context, databaseURL string, log logger.Logger) error {
	m, err := newMigrator(databaseURL)
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Mark(errors.Wrap(err, "apply migrations"), ErrUnavailable)
	}
	version, dirty, verr := m.Version()
	if verr == nil && log != nil {
		log.Info(ctx, "match store schema ready",
			logger.Int("version", int(version)),
			logger.Bool("dirty", dirty),
		)
	}
	return nil
}

// NewMigrator exposes the migrator for the migrate command.
func NewMigrator(databaseURL string) (*migrate.Migrate, error) {
	return newMigrator(databaseURL)
}

func newMigrator(databaseURL string) (*migrate.Migrate, error) {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, errors.Wrap(err, "load embedded migrations")
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "init migrator"), ErrUnavailable)
	}
	return m, nil
}
