package alerts

import "time"

// Task type constants
const (
	TaskWelcomeEmail        = "email:welcome"
	TaskInvestmentSubmitted = "email:investment_submitted"
	TaskWithdrawalRequested = "email:withdrawal_requested"
	TaskWithdrawalDecided   = "email:withdrawal_decided"
	TaskPasswordReset       = "email:password_reset"
)

// Common envelope for email-like notifications
type EmailEnvelope struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Welcome email payload
type WelcomeEmailPayload struct {
	UserID   string        `json:"user_id"`
	Name     string        `json:"name"`
	Email    string        `json:"email"`
	Envelope EmailEnvelope `json:"envelope"`
	SentAt   time.Time     `json:"sent_at"`
}

// Investment submission relay sent to the operator address
type InvestmentSubmittedPayload struct {
	UserID      string        `json:"user_id"`
	FullName    string        `json:"full_name"`
	WalletID    string        `json:"wallet_id"`
	ProofURL    string        `json:"proof_url"`
	Envelope    EmailEnvelope `json:"envelope"`
	SubmittedAt time.Time     `json:"submitted_at"`
}

// New withdrawal request alert sent to the operator address
type WithdrawalRequestedPayload struct {
	WithdrawalID string        `json:"withdrawal_id"`
	UserID       string        `json:"user_id"`
	Amount       string        `json:"amount"`
	Envelope     EmailEnvelope `json:"envelope"`
	SentAt       time.Time     `json:"sent_at"`
}

// Password reset link sent to the user
type PasswordResetPayload struct {
	UserID   string        `json:"user_id"`
	Email    string        `json:"email"`
	ResetURL string        `json:"reset_url"`
	Name     string        `json:"name"`
	Envelope EmailEnvelope `json:"envelope"`
	SentAt   time.Time     `json:"sent_at"`
}

// Withdrawal decision notification sent to the requesting user
type WithdrawalDecidedPayload struct {
	WithdrawalID string        `json:"withdrawal_id"`
	UserID       string        `json:"user_id"`
	Email        string        `json:"email"`
	Amount       string        `json:"amount"`
	Status       string        `json:"status"`
	Note         string        `json:"note"`
	Envelope     EmailEnvelope `json:"envelope"`
	SentAt       time.Time     `json:"sent_at"`
}
