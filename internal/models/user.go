package models

import (
	"strings"
	"time"
)

// User represents a user in the system
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Not serialized
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserProfile holds the personal attributes the insight generators look at.
// RiskTolerance accepts conservative/moderate/aggressive or the low/medium/high aliases.
type UserProfile struct {
	UserID        int64  `json:"-"`
	Age           int    `json:"age,omitempty"`
	RiskTolerance string `json:"risk_tolerance,omitempty"`
	IncomeLevel   string `json:"income_level,omitempty"`
}

// FinancialProfile is the stored state of a user: profile plus the latest snapshot.
type FinancialProfile struct {
	Profile  UserProfile       `json:"profile"`
	Snapshot FinancialSnapshot `json:"snapshot"`
}

// Canonical risk tolerances.
const (
	RiskConservative = "conservative"
	RiskModerate     = "moderate"
	RiskAggressive   = "aggressive"
)

// NormalizeRiskTolerance maps a risk tolerance or its low/medium/high alias to its
// canonical name. Anything unrecognized is moderate.
func NormalizeRiskTolerance(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case RiskConservative, "low":
		return RiskConservative
	case RiskAggressive, "high":
		return RiskAggressive
	default:
		return RiskModerate
	}
}
