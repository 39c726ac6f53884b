package usecase

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")

	// Draft ledger validation failures. All of them abort the operation
	// before any write happens.
	ErrNoActiveDraft      = errors.New("no active draft")
	ErrAlreadyDrafted     = errors.New("player already drafted")
	ErrPriceRequired      = errors.New("auction pick requires a price")
	ErrBelowMinimumBid    = errors.New("price below minimum bid")
	ErrInsufficientBudget = errors.New("insufficient budget")
	ErrNotTeamsTurn       = errors.New("not this team's turn")
)
