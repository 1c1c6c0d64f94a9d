package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/expensetracker/internal/domain/errors"
	"github.com/polkiloo/expensetracker/internal/domain/model"
	"github.com/polkiloo/expensetracker/internal/domain/repository"
)

const uniqueViolation = "23505"

type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

var _ repository.Factory = (*Storage)(nil)

type userRepository struct {
	storage *Storage
}

type expenseRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Users returns the user repository.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

// Expenses returns the expense repository.
func (s *Storage) Expenses() repository.ExpenseRepository {
	return &expenseRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id BIGSERIAL PRIMARY KEY,
            email TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS expenses (
            id BIGSERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            title TEXT NOT NULL DEFAULT '',
            amount NUMERIC NOT NULL DEFAULT 0,
            description TEXT NOT NULL DEFAULT '',
            category TEXT NOT NULL DEFAULT '',
            date DATE NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_expenses_user ON expenses(user_id, date)`,
	}

	err := s.WithinTransaction(ctx, func(tx pgx.Tx) error {
		for _, stmt := range statements {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("init schema: %w", err)
	}

	if s.logger != nil {
		s.logger.Debug("database schema ready", slog.Int("statements", len(statements)))
	}
	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, email, passwordHash string) (*model.User, error) {
	const query = `INSERT INTO users (email, password_hash) VALUES ($1, $2) RETURNING id, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, email, passwordHash).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domainErrors.ErrDuplicateEmail
		}
		return nil, err
	}
	u.Email = email
	u.PasswordHash = passwordHash
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT id, email, password_hash, created_at FROM users WHERE email=$1`
	return r.get(ctx, query, email)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, email, password_hash, created_at FROM users WHERE id=$1`
	return r.get(ctx, query, id)
}

func (r *userRepository) get(ctx context.Context, query string, arg any) (*model.User, error) {
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// --- ExpenseRepository implementation ---

const expenseColumns = `id, user_id, title, amount::text, description, category, date`

func (r *expenseRepository) Create(ctx context.Context, e model.Expense) (*model.Expense, error) {
	const query = `INSERT INTO expenses (user_id, title, amount, description, category, date)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   RETURNING id, amount::text`
	var amount string
	err := r.storage.pool.QueryRow(ctx, query,
		e.OwnerID, e.Title, e.Amount.String(), e.Description, e.Category, e.Date,
	).Scan(&e.ID, &amount)
	if err != nil {
		return nil, err
	}
	if e.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("parse amount: %w", err)
	}
	return &e, nil
}

func (r *expenseRepository) GetByID(ctx context.Context, id int64) (*model.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id=$1`
	e, err := scanExpense(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *expenseRepository) ListByOwner(ctx context.Context, ownerID int64) ([]model.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE user_id=$1 ORDER BY id`
	return r.list(ctx, query, ownerID)
}

func (r *expenseRepository) Filter(ctx context.Context, ownerID int64, category string, title *string) ([]model.Expense, error) {
	var query strings.Builder
	query.WriteString(`SELECT ` + expenseColumns + ` FROM expenses WHERE user_id=$1`)
	args := []any{ownerID}

	if category != model.CategoryAll {
		args = append(args, category)
		query.WriteString(` AND category=$` + strconv.Itoa(len(args)))
	}
	if title != nil {
		args = append(args, *title)
		query.WriteString(` AND strpos(lower(title), lower($` + strconv.Itoa(len(args)) + `)) > 0`)
	}
	query.WriteString(` ORDER BY id`)

	return r.list(ctx, query.String(), args...)
}

func (r *expenseRepository) Update(ctx context.Context, e model.Expense) (*model.Expense, error) {
	const query = `UPDATE expenses SET title=$1, amount=$2, description=$3, category=$4, date=$5 WHERE id=$6`
	tag, err := r.storage.pool.Exec(ctx, query, e.Title, e.Amount.String(), e.Description, e.Category, e.Date, e.ID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domainErrors.ErrNotFound
	}
	return &e, nil
}

func (r *expenseRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM expenses WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *expenseRepository) SumByOwner(ctx context.Context, ownerID int64) (decimal.Decimal, error) {
	const query = `SELECT COALESCE(SUM(amount), 0)::text FROM expenses WHERE user_id=$1`
	return r.sum(ctx, query, ownerID)
}

func (r *expenseRepository) SumByOwnerAndDateRange(ctx context.Context, ownerID int64, from, to time.Time) (decimal.Decimal, error) {
	const query = `SELECT COALESCE(SUM(amount), 0)::text FROM expenses WHERE user_id=$1 AND date >= $2 AND date < $3`
	return r.sum(ctx, query, ownerID, from, to)
}

func (r *expenseRepository) SumByCategory(ctx context.Context, ownerID int64) (map[string]decimal.Decimal, error) {
	const query = `SELECT category, SUM(amount)::text FROM expenses WHERE user_id=$1 GROUP BY category`
	rows, err := r.storage.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]decimal.Decimal)
	for rows.Next() {
		var category, raw string
		if err := rows.Scan(&category, &raw); err != nil {
			return nil, err
		}
		total, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("parse sum for %q: %w", category, err)
		}
		result[category] = total
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *expenseRepository) sum(ctx context.Context, query string, args ...any) (decimal.Decimal, error) {
	var raw string
	if err := r.storage.pool.QueryRow(ctx, query, args...).Scan(&raw); err != nil {
		return decimal.Zero, err
	}
	total, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse sum: %w", err)
	}
	return total, nil
}

func (r *expenseRepository) list(ctx context.Context, query string, args ...any) ([]model.Expense, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.Expense, 0)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanExpense(row pgx.Row) (*model.Expense, error) {
	var (
		e      model.Expense
		amount string
	)
	if err := row.Scan(&e.ID, &e.OwnerID, &e.Title, &amount, &e.Description, &e.Category, &e.Date); err != nil {
		return nil, err
	}
	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("parse amount: %w", err)
	}
	e.Amount = parsed
	e.Date = model.DateOf(e.Date)
	return &e, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
