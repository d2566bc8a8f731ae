package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/marcelsud/approval-relay/document"
	"github.com/marcelsud/approval-relay/webhooklog"
)

type Repository struct {
	DB *sql.DB
}

var ErrNotFound = errors.New("not found")

// NewRepository creates a PostgreSQL-backed audit log with the default
// connection pool (25 open, 5 idle, 5 minute lifetime)
func NewRepository(connectionString string) (*Repository, error) {
	return NewRepositoryWithPoolConfig(connectionString, 25, 5, 5)
}

// NewRepositoryWithPoolConfig creates a PostgreSQL-backed audit log with a
// custom connection pool configuration
func NewRepositoryWithPoolConfig(connectionString string, maxOpenConns, maxIdleConns, maxLifeMinutes int) (*Repository, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("opening postgres connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
	}
	if maxIdleConns > 0 {
		db.SetMaxIdleConns(maxIdleConns)
	}
	if maxLifeMinutes > 0 {
		db.SetConnMaxLifetime(time.Duration(maxLifeMinutes) * time.Minute)
	}

	return &Repository{
		DB: db,
	}, nil
}

// EnsureSchema creates the audit log table if it does not exist
// The table is append-only; there are no update or delete statements anywhere
func (r *Repository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS webhook_log (
			id TEXT PRIMARY KEY,
			status TEXT NOT NULL,
			reference_doctype TEXT NOT NULL,
			reference_name TEXT NOT NULL,
			request_payload BYTEA,
			response TEXT NOT NULL DEFAULT '',
			error_trace TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL
		)
	`
	if _, err := r.DB.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("creating webhook_log table: %w", err)
	}
	return nil
}

// Append inserts one delivery attempt entry
func (r *Repository) Append(ctx context.Context, entry webhooklog.Entry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validating entry: %w", err)
	}

	query := `
		INSERT INTO webhook_log (id, status, reference_doctype, reference_name, request_payload, response, error_trace, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.DB.ExecContext(ctx, query,
		entry.ID,
		entry.Status.String(),
		entry.Kind.String(),
		entry.ReferenceName,
		entry.RequestPayload,
		entry.Response,
		entry.ErrorTrace,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting log entry: %w", err)
	}

	return nil
}

// Get retrieves a log entry by ID
func (r *Repository) Get(ctx context.Context, id string) (webhooklog.Entry, error) {
	query := `
		SELECT id, status, reference_doctype, reference_name, request_payload, response, error_trace, created_at
		FROM webhook_log WHERE id = $1
	`

	entry, err := scanEntry(r.DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return webhooklog.Entry{}, ErrNotFound
	}
	if err != nil {
		return webhooklog.Entry{}, fmt.Errorf("selecting log entry: %w", err)
	}

	return entry, nil
}

// GetByReference retrieves the most recent entries for one document
func (r *Repository) GetByReference(ctx context.Context, kind document.Kind, name string, limit int) ([]webhooklog.Entry, error) {
	query := `
		SELECT id, status, reference_doctype, reference_name, request_payload, response, error_trace, created_at
		FROM webhook_log
		WHERE reference_doctype = $1 AND reference_name = $2
		ORDER BY created_at DESC
		LIMIT $3
	`

	rows, err := r.DB.QueryContext(ctx, query, kind.String(), name, limit)
	if err != nil {
		return nil, fmt.Errorf("selecting log entries: %w", err)
	}
	defer rows.Close()

	var entries []webhooklog.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning log entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating log entries: %w", err)
	}

	return entries, nil
}

// Close closes the database connection pool
func (r *Repository) Close(_ context.Context) error {
	return r.DB.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (webhooklog.Entry, error) {
	var e webhooklog.Entry
	var status, doctype string

	err := row.Scan(
		&e.ID,
		&status,
		&doctype,
		&e.ReferenceName,
		&e.RequestPayload,
		&e.Response,
		&e.ErrorTrace,
		&e.CreatedAt,
	)
	if err != nil {
		return webhooklog.Entry{}, err
	}

	e.Status = webhooklog.NewStatus(status)
	e.Kind = document.NewKind(doctype)

	return e, nil
}
