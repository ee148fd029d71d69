package services

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by the services. Handlers translate these to
// HTTP status classes; none of them triggers an automatic retry here.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUserExists          = errors.New("user already exists")
	ErrPrizeNotFound       = errors.New("prize not found")
	ErrPrizeUnavailable    = errors.New("prize is not available")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidTransaction  = errors.New("only prize redemption transactions can be processed")
	ErrTransactionCreate   = errors.New("failed to create transaction")
	ErrInvalidCredentials  = errors.New("invalid credentials")

	// ErrValidation wraps caller-input failures so handlers can map them
	// to a 400 without inspecting messages.
	ErrValidation = errors.New("validation failed")
)

// InsufficientPointsError reports a failed debit, carrying the numeric
// context so the UI can render a precise explanation.
type InsufficientPointsError struct {
	Required  int
	Available int
}

func (e *InsufficientPointsError) Error() string {
	return fmt.Sprintf("insufficient points: required %d, available %d", e.Required, e.Available)
}

// OutOfStockError reports that a prize had no stock left, either on the
// initial read or because a concurrent redemption won the conditional
// update. Refunded tells the caller whether an already-applied debit was
// compensated before surfacing.
type OutOfStockError struct {
	PrizeName    string
	RaceDetected bool
	Refunded     bool
}

func (e *OutOfStockError) Error() string {
	msg := fmt.Sprintf("prize %q is out of stock", e.PrizeName)
	if e.RaceDetected {
		msg += " (concurrent redemption detected)"
	}
	if e.Refunded {
		msg += "; points refunded"
	}
	return msg
}

// AlreadyProcessedError reports a terminal-state transaction; Status is
// the state it is already in.
type AlreadyProcessedError struct {
	Status string
}

func (e *AlreadyProcessedError) Error() string {
	return fmt.Sprintf("transaction is already %s", e.Status)
}
