package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Dan9191/finance-assistant/internal/models"
)

//go:generate mockgen -source=store.go -destination=store_mock.go -package=repository

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a record collides with an existing one.
var ErrConflict = errors.New("already exists")

// Store defines the persistence operations used by the service
type Store interface {
	// User operations
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)

	// Financial profile operations
	GetFinancialProfile(ctx context.Context, userID int64) (*models.FinancialProfile, error)
	SaveFinancialProfile(ctx context.Context, userID int64, profile *models.FinancialProfile) error

	// Transaction operations
	CreateTransaction(ctx context.Context, tx *models.Transaction) error
	ListTransactions(ctx context.Context, userID int64, from, to *time.Time) ([]models.Transaction, error)
}
