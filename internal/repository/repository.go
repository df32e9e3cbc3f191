package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Dan9191/loan-service/internal/models"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database/sql driver names
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ErrNotFound is returned when no scenario has the requested id
var ErrNotFound = errors.New("loan scenario not found")

// Repository provides database operations
type Repository struct {
	db     *sql.DB
	driver string
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB, driver string) *Repository {
	return &Repository{db: db, driver: driver}
}

// Open connects to the database and applies migrations
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	if err := RunMigrations(driver, dsn); err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if driver == DriverSQLite {
		// a single writer avoids SQLITE_BUSY under concurrent requests
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// Ping checks the database connection
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// rebind converts ? placeholders to $N for postgres
func (r *Repository) rebind(query string) string {
	if r.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, ch := range query {
		if ch == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}

// CreateLoan stores a new scenario and fills in its id and creation time
func (r *Repository) CreateLoan(ctx context.Context, loan *models.LoanScenario) error {
	if loan.CreatedAt.IsZero() {
		loan.CreatedAt = time.Now().UTC()
	}
	query := r.rebind(`
		INSERT INTO loan_scenarios (amount, apr, term_months, monthly_payment, hmac, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`)
	err := r.db.QueryRowContext(ctx, query,
		loan.Amount, loan.APR, loan.TermMonths, loan.MonthlyPayment, loan.HMAC, loan.CreatedAt).
		Scan(&loan.ID)
	if err != nil {
		return fmt.Errorf("failed to create loan scenario: %w", err)
	}
	return nil
}

// GetLoan retrieves a scenario by id
func (r *Repository) GetLoan(ctx context.Context, id int64) (*models.LoanScenario, error) {
	loan := &models.LoanScenario{}
	query := r.rebind(`
		SELECT id, amount, apr, term_months, monthly_payment, hmac, created_at
		FROM loan_scenarios
		WHERE id = ?`)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&loan.ID, &loan.Amount, &loan.APR, &loan.TermMonths, &loan.MonthlyPayment, &loan.HMAC, &loan.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find loan scenario %d: %w", id, err)
	}
	return loan, nil
}

// ListLoans returns all scenarios, most recent first
func (r *Repository) ListLoans(ctx context.Context) ([]*models.LoanScenario, error) {
	query := `
		SELECT id, amount, apr, term_months, monthly_payment, hmac, created_at
		FROM loan_scenarios
		ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list loan scenarios: %w", err)
	}
	defer rows.Close()

	loans := []*models.LoanScenario{}
	for rows.Next() {
		loan := &models.LoanScenario{}
		if err := rows.Scan(&loan.ID, &loan.Amount, &loan.APR, &loan.TermMonths,
			&loan.MonthlyPayment, &loan.HMAC, &loan.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan loan scenario: %w", err)
		}
		loans = append(loans, loan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list loan scenarios: %w", err)
	}
	return loans, nil
}

// DeleteLoan removes a scenario by id
func (r *Repository) DeleteLoan(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.rebind(`DELETE FROM loan_scenarios WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete loan scenario %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete loan scenario %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCreatedBefore removes scenarios created before cutoff and returns how many were deleted
func (r *Repository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.rebind(`DELETE FROM loan_scenarios WHERE created_at < ?`), cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to prune loan scenarios: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to prune loan scenarios: %w", err)
	}
	return n, nil
}
