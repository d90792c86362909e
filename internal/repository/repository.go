package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Dan9191/finance-assistant/internal/models"
	"github.com/lib/pq"
)

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

var _ Store = (*Repository)(nil)

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO finance.users (username, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, user.Username, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("user %s: %w", user.Email, ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, created_at, updated_at
		FROM finance.users
		WHERE email = $1`
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// ListUsers returns every registered user
func (r *Repository) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, username, email, created_at, updated_at
		FROM finance.users
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// GetFinancialProfile loads the user's profile, snapshot and holdings
func (r *Repository) GetFinancialProfile(ctx context.Context, userID int64) (*models.FinancialProfile, error) {
	fp := &models.FinancialProfile{Profile: models.UserProfile{UserID: userID}}
	var budget, actual []byte
	query := `
		SELECT COALESCE(p.age, 0), COALESCE(p.risk_tolerance, ''), COALESCE(p.income_level, ''),
		       s.income, s.expenses, s.debt, s.emergency_fund, s.monthly_expenses,
		       s.current_savings, s.monthly_contribution, s.budget, s.actual_spending
		FROM finance.snapshots s
		LEFT JOIN finance.profiles p ON p.user_id = s.user_id
		WHERE s.user_id = $1`
	s := &fp.Snapshot
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&fp.Profile.Age, &fp.Profile.RiskTolerance, &fp.Profile.IncomeLevel,
		&s.Income, &s.Expenses, &s.Debt, &s.EmergencyFund, &s.MonthlyExpenses,
		&s.CurrentSavings, &s.MonthlyContribution, &budget, &actual,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("financial profile of user %d: %w", userID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load financial profile: %w", err)
	}
	if err := decodeAmounts(budget, &s.Budget); err != nil {
		return nil, err
	}
	if err := decodeAmounts(actual, &s.ActualSpending); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT asset_type, value, expected_return
		FROM finance.holdings
		WHERE user_id = $1
		ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load holdings: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var h models.Holding
		var expected sql.NullFloat64
		if err := rows.Scan(&h.AssetType, &h.Value, &expected); err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		if expected.Valid {
			h.ExpectedReturn = &expected.Float64
		}
		s.InvestmentPortfolio = append(s.InvestmentPortfolio, h)
	}
	return fp, rows.Err()
}

// SaveFinancialProfile replaces the user's profile, snapshot and holdings in one transaction
func (r *Repository) SaveFinancialProfile(ctx context.Context, userID int64, fp *models.FinancialProfile) error {
	budget, err := json.Marshal(fp.Snapshot.Budget)
	if err != nil {
		return fmt.Errorf("failed to encode budget: %w", err)
	}
	actual, err := json.Marshal(fp.Snapshot.ActualSpending)
	if err != nil {
		return fmt.Errorf("failed to encode actual spending: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO finance.profiles (user_id, age, risk_tolerance, income_level, updated_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id) DO UPDATE
		SET age = EXCLUDED.age, risk_tolerance = EXCLUDED.risk_tolerance,
		    income_level = EXCLUDED.income_level, updated_at = CURRENT_TIMESTAMP`,
		userID, fp.Profile.Age, fp.Profile.RiskTolerance, fp.Profile.IncomeLevel)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	s := fp.Snapshot
	_, err = tx.ExecContext(ctx, `
		INSERT INTO finance.snapshots (user_id, income, expenses, debt, emergency_fund, monthly_expenses,
		                               current_savings, monthly_contribution, budget, actual_spending, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id) DO UPDATE
		SET income = EXCLUDED.income, expenses = EXCLUDED.expenses, debt = EXCLUDED.debt,
		    emergency_fund = EXCLUDED.emergency_fund, monthly_expenses = EXCLUDED.monthly_expenses,
		    current_savings = EXCLUDED.current_savings, monthly_contribution = EXCLUDED.monthly_contribution,
		    budget = EXCLUDED.budget, actual_spending = EXCLUDED.actual_spending, updated_at = CURRENT_TIMESTAMP`,
		userID, s.Income, s.Expenses, s.Debt, s.EmergencyFund, s.MonthlyExpenses,
		s.CurrentSavings, s.MonthlyContribution, budget, actual)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM finance.holdings WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear holdings: %w", err)
	}
	for _, h := range s.InvestmentPortfolio {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO finance.holdings (user_id, asset_type, value, expected_return)
			VALUES ($1, $2, $3, $4)`,
			userID, h.AssetType, h.Value, h.ExpectedReturn)
		if err != nil {
			return fmt.Errorf("failed to save holding: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit financial profile: %w", err)
	}
	return nil
}

// CreateTransaction stores a transaction
func (r *Repository) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	query := `
		INSERT INTO finance.transactions (user_id, amount, category, date, description, tags, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query,
		t.UserID, t.Amount, t.Category, t.Date.Time, t.Description, tagsParam(t.Tags)).
		Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// ListTransactions returns the user's transactions ordered by date, optionally bounded by an inclusive date range
func (r *Repository) ListTransactions(ctx context.Context, userID int64, from, to *time.Time) ([]models.Transaction, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT id, user_id, amount, category, date, description, tags, created_at
		FROM finance.transactions
		WHERE user_id = $1`)
	args := []any{userID}
	if from != nil {
		args = append(args, *from)
		fmt.Fprintf(&sb, " AND date >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		fmt.Fprintf(&sb, " AND date <= $%d", len(args))
	}
	sb.WriteString(" ORDER BY date, id")

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var out []models.Transaction
	for rows.Next() {
		var t models.Transaction
		var date time.Time
		var tags []string
		if err := rows.Scan(&t.ID, &t.UserID, &t.Amount, &t.Category, &date, &t.Description, pq.Array(&tags), &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		t.Date = models.NewDate(date.Year(), date.Month(), date.Day())
		t.Tags = tags
		out = append(out, t)
	}
	return out, rows.Err()
}

// uniqueViolation is the postgres SQLSTATE for a unique constraint violation.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// tagsParam binds tags as a text array. Missing tags bind as an empty array, never NULL.
func tagsParam(tags []string) driver.Valuer {
	if tags == nil {
		tags = []string{}
	}
	return pq.Array(tags)
}

func decodeAmounts(raw []byte, dst *map[string]float64) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("failed to decode amounts: %w", err)
	}
	return nil
}
