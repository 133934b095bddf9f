package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/SscSPs/kewat_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/kewat_ledger/internal/core/ports/repositories"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

type txKey struct{}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	DB      *sql.DB
	Timeout time.Duration
}

func (r *BaseRepository) db(ctx context.Context) querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return r.DB
}

func (r *BaseRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.Timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.Timeout)
}

func storeError(msg string, err error) error {
	if err == nil {
		return nil
	}
	var sqlErr *sqlite.Error
	if errors.As(err, &sqlErr) {
		switch sqlErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return apperrors.NewAppError(apperrors.ErrDuplicate, msg, err)
		}
	}
	return apperrors.NewUnavailableError(msg, err)
}

// toUnix and fromUnix convert between time.Time and the stored representation.
func toUnix(t time.Time) int64 {
	return t.UTC().UnixNano()
}

func fromUnix(n int64) time.Time {
	return time.Unix(0, n).UTC()
}

func toNullUnix(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: toUnix(*t), Valid: true}
}

func fromNullUnix(n sql.NullInt64) *time.Time {
	if !n.Valid {
		return nil
	}
	t := fromUnix(n.Int64)
	return &t
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

// txManager implements portsrepo.TransactionManager on a *sql.DB.
type txManager struct {
	db *sql.DB
}

func newTxManager(db *sql.DB) portsrepo.TransactionManager {
	return &txManager{db: db}
}

// RunInTx runs fn in a transaction carried by the ctx it receives.
// Nested calls join the outer transaction.
func (m *txManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewUnavailableError("failed to begin transaction", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return apperrors.NewUnavailableError("failed to commit transaction", err)
	}
	return nil
}

// NewRepositoryProvider wires every SQLite repository on one handle.
// timeout bounds each store call; zero disables the bound.
func NewRepositoryProvider(db *sql.DB, timeout time.Duration) portsrepo.RepositoryProvider {
	base := BaseRepository{DB: db, Timeout: timeout}

	return portsrepo.RepositoryProvider{
		TxManager:        newTxManager(db),
		LedgerRepo:       &ledgerRepository{base},
		MembershipRepo:   &membershipRepository{base},
		PushTokenRepo:    &pushTokenRepository{base},
		SettingsRepo:     &interestSettingsRepository{base},
		ReminderRepo:     &reminderRepository{base},
		InviteRepo:       &inviteRepository{base},
		NotificationRepo: &notificationRepository{base},
		AnnouncementRepo: &announcementRepository{base},
		AuditRepo:        &auditRepository{base},
	}
}
