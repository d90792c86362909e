package models

import "errors"

// ErrInsufficientData is returned when there is not enough input to compute a statistic.
var ErrInsufficientData = errors.New("insufficient data")

// ErrorResult is the structured error payload returned at the API boundary.
type ErrorResult struct {
	Error string `json:"error"`
}

// ErrInvalidInput is returned when a request carries values no computation can accept.
var ErrInvalidInput = errors.New("invalid input")
