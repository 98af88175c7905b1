package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/vadimbarashkov/url-analytics/internal/entity"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const uniqueViolationErrCode = "23505"

var tracer = otel.Tracer("github.com/vadimbarashkov/url-analytics/internal/adapter/repository/postgres")

func isUniqueViolationError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.SQLState() == uniqueViolationErrCode
}

func startSpan(ctx context.Context, operation, table string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "db."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("db.operation", operation),
			attribute.String("db.sql.table", table),
		),
	)
}

type urlDB struct {
	ID           int64     `db:"id"`
	ShortCode    string    `db:"short_code"`
	OriginalURL  string    `db:"original_url"`
	PasswordHash *string   `db:"password_hash"`
	AccessCount  int64     `db:"access_count"`
	CreatedAt    time.Time `db:"created_at"`
	ExpiresAt    time.Time `db:"expires_at"`
}

func (u *urlDB) toEntity() *entity.URL {
	return &entity.URL{
		ID:           u.ID,
		ShortCode:    u.ShortCode,
		OriginalURL:  u.OriginalURL,
		PasswordHash: u.PasswordHash,
		URLStats: entity.URLStats{
			AccessCount: u.AccessCount,
		},
		CreatedAt: u.CreatedAt,
		ExpiresAt: u.ExpiresAt,
	}
}

type accessLogDB struct {
	ID         int64     `db:"id"`
	URLID      int64     `db:"url_id"`
	AccessedAt time.Time `db:"accessed_at"`
	IPAddress  string    `db:"ip_address"`
}

func (l *accessLogDB) toEntity() entity.AccessLog {
	return entity.AccessLog{
		ID:        l.ID,
		URLID:     l.URLID,
		Timestamp: l.AccessedAt,
		IPAddress: l.IPAddress,
	}
}

// URLRepository persists shortened URLs and their access logs in PostgreSQL.
type URLRepository struct {
	db *sqlx.DB
}

func NewURLRepository(db *sqlx.DB) *URLRepository {
	return &URLRepository{db: db}
}

// Create inserts a new row into urls. A short code collision is reported as entity.ErrShortCodeExists.
func (r *URLRepository) Create(ctx context.Context, url *entity.URL) (*entity.URL, error) {
	const op = "adapter.repository.postgres.URLRepository.Create"
	const query = `INSERT INTO urls(short_code, original_url, password_hash, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING *`

	ctx, span := startSpan(ctx, "INSERT", "urls")
	defer span.End()

	var row urlDB

	if err := r.db.GetContext(ctx, &row, query,
		url.ShortCode, url.OriginalURL, url.PasswordHash, url.CreatedAt, url.ExpiresAt); err != nil {
		if isUniqueViolationError(err) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrShortCodeExists)
		}

		span.RecordError(err)
		return nil, fmt.Errorf("%s: failed to insert into urls table: %w", op, err)
	}

	return row.toEntity(), nil
}

func (r *URLRepository) FindByShortCode(ctx context.Context, shortCode string) (*entity.URL, error) {
	const op = "adapter.repository.postgres.URLRepository.FindByShortCode"
	const query = `SELECT * FROM urls WHERE short_code = $1`

	ctx, span := startSpan(ctx, "SELECT", "urls")
	defer span.End()

	var row urlDB

	if err := r.db.GetContext(ctx, &row, query, shortCode); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrURLNotFound)
		}

		span.RecordError(err)
		return nil, fmt.Errorf("%s: failed to get row from urls table: %w", op, err)
	}

	return row.toEntity(), nil
}

// IncrementAndLog bumps access_count and appends an access_logs row in one transaction.
// The counter update only matches rows that are still valid at accessedAt, otherwise
// entity.ErrURLExpired is returned and nothing is written.
func (r *URLRepository) IncrementAndLog(ctx context.Context, urlID int64, ipAddress string, accessedAt time.Time) (*entity.URL, error) {
	const op = "adapter.repository.postgres.URLRepository.IncrementAndLog"
	const updateQuery = `UPDATE urls SET access_count = access_count + 1
		WHERE id = $1 AND expires_at >= $2 RETURNING *`
	const insertQuery = `INSERT INTO access_logs(url_id, accessed_at, ip_address) VALUES ($1, $2, $3)`

	ctx, span := startSpan(ctx, "UPDATE", "urls")
	defer span.End()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer tx.Rollback() //nolint:errcheck

	var row urlDB

	if err := tx.GetContext(ctx, &row, updateQuery, urlID, accessedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrURLExpired)
		}

		span.RecordError(err)
		return nil, fmt.Errorf("%s: failed to update urls table row: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx, insertQuery, urlID, accessedAt, ipAddress); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%s: failed to insert into access_logs table: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	return row.toEntity(), nil
}

// GetAnalytics reads the URL counter and its access log from one read-only
// repeatable-read snapshot, so access_count always equals the number of log rows.
func (r *URLRepository) GetAnalytics(ctx context.Context, urlID int64) (*entity.Analytics, error) {
	const op = "adapter.repository.postgres.URLRepository.GetAnalytics"
	const urlQuery = `SELECT * FROM urls WHERE id = $1`
	const logsQuery = `SELECT id, url_id, accessed_at, ip_address FROM access_logs
		WHERE url_id = $1 ORDER BY accessed_at, id`

	ctx, span := startSpan(ctx, "SELECT", "access_logs")
	defer span.End()

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{
		Isolation: sql.LevelRepeatableRead,
		ReadOnly:  true,
	})
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer tx.Rollback() //nolint:errcheck

	var url urlDB

	if err := tx.GetContext(ctx, &url, urlQuery, urlID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrURLNotFound)
		}

		span.RecordError(err)
		return nil, fmt.Errorf("%s: failed to get row from urls table: %w", op, err)
	}

	var rows []accessLogDB

	if err := tx.SelectContext(ctx, &rows, logsQuery, urlID); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%s: failed to select from access_logs table: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	logs := make([]entity.AccessLog, 0, len(rows))
	for i := range rows {
		logs = append(logs, rows[i].toEntity())
	}

	return &entity.Analytics{
		OriginalURL: url.OriginalURL,
		URLStats: entity.URLStats{
			AccessCount: url.AccessCount,
		},
		AccessLogs: logs,
	}, nil
}
