package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/jmoiron/sqlx"

	"strongbox.dev/internal/domain/entity"
	"strongbox.dev/internal/infrastructure/logger"
)

const defaultRecentLimit = 100

// PostgresConfig holds the journal database settings.
type PostgresConfig struct {
	URI           string
	MigrationsDir string
}

// PostgresJournal persists the audit trail in Postgres. Schema migrations
// run on construction.
type PostgresJournal struct {
	db     *sqlx.DB
	logger logger.Logger
}

// NewPostgresJournal connects the journal database and migrates the schema.
func NewPostgresJournal(ctx context.Context, cfg PostgresConfig, logger logger.Logger) (*PostgresJournal, error) {
	db, err := sqlx.ConnectContext(ctx, "pgx", cfg.URI)
	if err != nil {
		return nil, fmt.Errorf("could not connect journal database: %w", err)
	}
	if err := runMigration(ctx, cfg, logger); err != nil {
		db.Close()
		return nil, err
	}
	return &PostgresJournal{db: db, logger: logger}, nil
}

func runMigration(ctx context.Context, cfg PostgresConfig, logger logger.Logger) error {
	if cfg.MigrationsDir == "" {
		logger.LogInfo(ctx, "Journal migration disabled")
		return nil
	}

	migration, err := migrate.New("file://"+cfg.MigrationsDir, cfg.URI)
	if err != nil {
		return fmt.Errorf("could not initialize journal migration: %w", err)
	}
	if err := migration.Up(); err != nil {
		if err == migrate.ErrNoChange {
			logger.LogInfo(ctx, "Journal schema up to date")
			return nil
		}
		return fmt.Errorf("could not migrate journal schema: %w", err)
	}

	logger.LogInfo(ctx, "Journal schema migrated")
	return nil
}

// Record implements port.Journal.
func (j *PostgresJournal) Record(ctx context.Context, event entity.Event) error {
	query := `INSERT INTO
		ledger_events (id, sequence, kind, account, asset, amount, enabled, occurred_at)
		VALUES (:id, :sequence, :kind, :account, :asset, :amount, :enabled, :occurred_at)`

	if _, err := j.db.NamedExecContext(ctx, query, new(eventRow).wrap(event)); err != nil {
		return fmt.Errorf("could not record event %s: %w", event.ID, err)
	}
	return nil
}

// Recent implements port.Journal, newest first by commit sequence.
func (j *PostgresJournal) Recent(ctx context.Context, limit int) ([]entity.Event, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	query := `SELECT id, sequence, kind, account, asset, amount, enabled, occurred_at
		FROM ledger_events
		ORDER BY sequence DESC, occurred_at DESC
		LIMIT $1`

	var rows []eventRow
	if err := j.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("could not query events: %w", err)
	}

	events := make([]entity.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, row.unwrap())
	}
	return events, nil
}

// Close releases the database handle.
func (j *PostgresJournal) Close() error {
	return j.db.Close()
}

type eventRow struct {
	ID         string         `db:"id"`
	Sequence   int64          `db:"sequence"`
	Kind       string         `db:"kind"`
	Account    sql.NullString `db:"account"`
	Asset      sql.NullString `db:"asset"`
	Amount     sql.NullString `db:"amount"`
	Enabled    sql.NullBool   `db:"enabled"`
	OccurredAt time.Time      `db:"occurred_at"`
}

func (r *eventRow) wrap(event entity.Event) *eventRow {
	r.ID = event.ID
	r.Sequence = int64(event.Sequence)
	r.Kind = string(event.Kind)
	r.Account = nullString(event.Account)
	r.Asset = nullString(event.Asset)
	r.Amount = nullString(event.Amount)
	if event.Enabled != nil {
		r.Enabled = sql.NullBool{Bool: *event.Enabled, Valid: true}
	}
	r.OccurredAt = event.OccurredAt
	return r
}

func (r *eventRow) unwrap() entity.Event {
	event := entity.Event{
		ID:         r.ID,
		Sequence:   uint64(r.Sequence),
		Kind:       entity.EventKind(r.Kind),
		Account:    r.Account.String,
		Asset:      r.Asset.String,
		Amount:     r.Amount.String,
		OccurredAt: r.OccurredAt,
	}
	if r.Enabled.Valid {
		enabled := r.Enabled.Bool
		event.Enabled = &enabled
	}
	return event
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
