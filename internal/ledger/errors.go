package ledger

import "errors"

var (
	ErrInvalidRate         = errors.New("percentage must be greater than 0 and at most 100")
	ErrInvalidAmount       = errors.New("amount must be zero or positive")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNoInvestment        = errors.New("user has no invested amount")
	ErrUserNotFound        = errors.New("user not found")
)
