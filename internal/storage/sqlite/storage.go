package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	domainErrors "github.com/polkiloo/expensetracker/internal/domain/errors"
	"github.com/polkiloo/expensetracker/internal/domain/model"
	"github.com/polkiloo/expensetracker/internal/domain/repository"
)

// Storage acts as repository facade backed by an embedded SQLite database.
// Amounts are kept as decimal text and summed in Go; dates as YYYY-MM-DD text.
type Storage struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ repository.Factory = (*Storage)(nil)

type userRepository struct {
	storage *Storage
}

type expenseRepository struct {
	storage *Storage
}

// New opens the database at path and runs migrations.
func New(ctx context.Context, path string, logger *slog.Logger) (*Storage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// A single connection keeps :memory: databases and PRAGMAs consistent.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{db: db, logger: logger}
	if err := storage.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.db != nil {
		_ = s.db.Close()
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

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.db.PingContext(ctx)
}

func (s *Storage) migrate(ctx context.Context) error {
	migrations := []string{
		`PRAGMA foreign_keys = ON`,
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			email TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS expenses (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL REFERENCES users(id),
			title TEXT NOT NULL DEFAULT '',
			amount TEXT NOT NULL DEFAULT '0',
			description TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			date TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_expenses_user ON expenses(user_id, date)`,
	}

	for _, m := range migrations {
		if _, err := s.db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	if s.logger != nil {
		s.logger.Debug("database schema ready", slog.Int("statements", len(migrations)))
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *moderncsqlite.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, email, passwordHash string) (*model.User, error) {
	createdAt := time.Now().UTC()
	res, err := r.storage.db.ExecContext(ctx,
		`INSERT INTO users (email, password_hash, created_at) VALUES (?, ?, ?)`,
		email, passwordHash, createdAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrDuplicateEmail
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &model.User{ID: id, Email: email, PasswordHash: passwordHash, CreatedAt: createdAt}, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.get(ctx, `SELECT id, email, password_hash, created_at FROM users WHERE email = ?`, email)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return r.get(ctx, `SELECT id, email, password_hash, created_at FROM users WHERE id = ?`, id)
}

func (r *userRepository) get(ctx context.Context, query string, arg any) (*model.User, error) {
	var (
		u         model.User
		createdAt string
	)
	err := r.storage.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Email, &u.PasswordHash, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if u.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	return &u, nil
}

// --- ExpenseRepository implementation ---

const expenseColumns = `id, user_id, title, amount, description, category, date`

func (r *expenseRepository) Create(ctx context.Context, e model.Expense) (*model.Expense, error) {
	res, err := r.storage.db.ExecContext(ctx,
		`INSERT INTO expenses (user_id, title, amount, description, category, date) VALUES (?, ?, ?, ?, ?, ?)`,
		e.OwnerID, e.Title, e.Amount.String(), e.Description, e.Category, e.Date.Format(model.DateLayout),
	)
	if err != nil {
		return nil, err
	}
	if e.ID, err = res.LastInsertId(); err != nil {
		return nil, err
	}
	e.Date = model.DateOf(e.Date)
	return &e, nil
}

func (r *expenseRepository) GetByID(ctx context.Context, id int64) (*model.Expense, error) {
	row := r.storage.db.QueryRowContext(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = ?`, id)
	e, err := scanExpense(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *expenseRepository) ListByOwner(ctx context.Context, ownerID int64) ([]model.Expense, error) {
	return r.list(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE user_id = ? ORDER BY id`, ownerID)
}

// Filter narrows by category in SQL and by title in Go, since SQLite lower() only folds ASCII.
func (r *expenseRepository) Filter(ctx context.Context, ownerID int64, category string, title *string) ([]model.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE user_id = ?`
	args := []any{ownerID}
	if category != model.CategoryAll {
		query += ` AND category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY id`

	expenses, err := r.list(ctx, query, args...)
	if err != nil || title == nil {
		return expenses, err
	}

	needle := strings.ToLower(*title)
	matched := make([]model.Expense, 0, len(expenses))
	for _, e := range expenses {
		if strings.Contains(strings.ToLower(e.Title), needle) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

func (r *expenseRepository) Update(ctx context.Context, e model.Expense) (*model.Expense, error) {
	res, err := r.storage.db.ExecContext(ctx,
		`UPDATE expenses SET title = ?, amount = ?, description = ?, category = ?, date = ? WHERE id = ?`,
		e.Title, e.Amount.String(), e.Description, e.Category, e.Date.Format(model.DateLayout), e.ID,
	)
	if err != nil {
		return nil, err
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *expenseRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.storage.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *expenseRepository) SumByOwner(ctx context.Context, ownerID int64) (decimal.Decimal, error) {
	return r.sum(ctx, `SELECT amount FROM expenses WHERE user_id = ?`, ownerID)
}

func (r *expenseRepository) SumByOwnerAndDateRange(ctx context.Context, ownerID int64, from, to time.Time) (decimal.Decimal, error) {
	return r.sum(ctx,
		`SELECT amount FROM expenses WHERE user_id = ? AND date >= ? AND date < ?`,
		ownerID, from.Format(model.DateLayout), to.Format(model.DateLayout),
	)
}

func (r *expenseRepository) SumByCategory(ctx context.Context, ownerID int64) (map[string]decimal.Decimal, error) {
	rows, err := r.storage.db.QueryContext(ctx, `SELECT category, amount FROM expenses WHERE user_id = ?`, ownerID)
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
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("parse amount: %w", err)
		}
		result[category] = result[category].Add(amount)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *expenseRepository) sum(ctx context.Context, query string, args ...any) (decimal.Decimal, error) {
	rows, err := r.storage.db.QueryContext(ctx, query, args...)
	if err != nil {
		return decimal.Zero, err
	}
	defer rows.Close()

	total := decimal.Zero
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return decimal.Zero, err
		}
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return decimal.Zero, fmt.Errorf("parse amount: %w", err)
		}
		total = total.Add(amount)
	}
	if err := rows.Err(); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r *expenseRepository) list(ctx context.Context, query string, args ...any) ([]model.Expense, error) {
	rows, err := r.storage.db.QueryContext(ctx, query, args...)
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

type scanner interface {
	Scan(dest ...any) error
}

func scanExpense(row scanner) (*model.Expense, error) {
	var (
		e            model.Expense
		amount, date string
	)
	if err := row.Scan(&e.ID, &e.OwnerID, &e.Title, &amount, &e.Description, &e.Category, &date); err != nil {
		return nil, err
	}
	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("parse amount: %w", err)
	}
	e.Amount = parsed
	if e.Date, err = time.Parse(model.DateLayout, date); err != nil {
		return nil, fmt.Errorf("parse date: %w", err)
	}
	return &e, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
