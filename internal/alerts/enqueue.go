package alerts

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hibiken/asynq"
)

// ensureClient returns a usable client instance
func ensureClient() *asynq.Client {
	if client == nil {
		Init()
	}
	return client
}

// AdminEmail returns the fixed operator address submissions are relayed to
func AdminEmail() string {
	return os.Getenv("ADMIN_EMAIL")
}

// EnqueueWelcomeEmail schedules a welcome email to the user
func EnqueueWelcomeEmail(userID, email, name string) error {
	base := os.Getenv("APP_URL")
	if base == "" {
		base = "http://localhost:3000"
	}
	base = strings.TrimRight(base, "/")

	subject := fmt.Sprintf("Welcome to GrowVest, %s!", name)
	body := fmt.Sprintf("Hi %s, thanks for joining GrowVest.\n\nOpen your dashboard: %s/dashboard", name, base)

	env := EmailEnvelope{To: email, Subject: subject, Body: body}
	payload := WelcomeEmailPayload{UserID: userID, Name: name, Email: email, Envelope: env, SentAt: time.Now()}
	b, _ := json.Marshal(payload)
	task := asynq.NewTask(TaskWelcomeEmail, b)
	_, err := ensureClient().Enqueue(task, asynq.Queue("emails"))
	return err
}

// EnqueuePasswordReset schedules the reset-link email
func EnqueuePasswordReset(userID, email, resetURL, name string) error {
	greeting := "Hi"
	if name != "" {
		greeting = "Hi " + name
	}
	body := fmt.Sprintf("%s,\n\nUse the link below to reset your GrowVest password. It expires shortly.\n\n%s\n\nIf you did not request this, ignore this email.", greeting, resetURL)

	env := EmailEnvelope{To: email, Subject: "Reset your GrowVest password", Body: body}
	payload := PasswordResetPayload{UserID: userID, Email: email, ResetURL: resetURL, Name: name, Envelope: env, SentAt: time.Now()}
	b, _ := json.Marshal(payload)
	task := asynq.NewTask(TaskPasswordReset, b)
	_, err := ensureClient().Enqueue(task, asynq.Queue("emails"))
	return err
}

// EnqueueInvestmentSubmitted relays an investment claim to the operator.
// The body mirrors the submitted fields, screenshot included, so the admin
// can verify the payment and credit the ledger manually.
func EnqueueInvestmentSubmitted(userID, fullName, walletID, proofURL string) error {
	adminEmail := AdminEmail()
	if adminEmail == "" {
		return fmt.Errorf("ADMIN_EMAIL is not configured")
	}

	body := fmt.Sprintf(`<h2>New Investment Submission</h2>
<p><strong>Full Name:</strong> %s</p>
<p><strong>Wallet ID:</strong> %s</p>
<p><strong>Payment Screenshot:</strong></p>
<img src="%s" alt="Payment Screenshot" style="max-width: 500px;" />
<hr />
<p><small>Submitted by user ID: %s</small></p>`, fullName, walletID, proofURL, userID)

	env := EmailEnvelope{To: adminEmail, Subject: "New Investment Submission", Body: body}
	payload := InvestmentSubmittedPayload{
		UserID:      userID,
		FullName:    fullName,
		WalletID:    walletID,
		ProofURL:    proofURL,
		Envelope:    env,
		SubmittedAt: time.Now(),
	}
	b, _ := json.Marshal(payload)
	task := asynq.NewTask(TaskInvestmentSubmitted, b)
	_, err := ensureClient().Enqueue(task, asynq.Queue("alerts"))
	return err
}

// EnqueueWithdrawalRequested alerts the operator about a new pending request
func EnqueueWithdrawalRequested(withdrawalID, userID, amount string) error {
	adminEmail := AdminEmail()
	if adminEmail == "" {
		return fmt.Errorf("ADMIN_EMAIL is not configured")
	}

	env := EmailEnvelope{
		To:      adminEmail,
		Subject: "New withdrawal request",
		Body:    fmt.Sprintf("Withdrawal %s for $%s by user %s is awaiting review.", withdrawalID, amount, userID),
	}
	payload := WithdrawalRequestedPayload{WithdrawalID: withdrawalID, UserID: userID, Amount: amount, Envelope: env, SentAt: time.Now()}
	b, _ := json.Marshal(payload)
	task := asynq.NewTask(TaskWithdrawalRequested, b)
	_, err := ensureClient().Enqueue(task, asynq.Queue("alerts"))
	return err
}

// EnqueueWithdrawalDecided notifies the user of the admin's decision
func EnqueueWithdrawalDecided(withdrawalID, userID, email, amount, status, note string) error {
	subject := "Your withdrawal has been processed"
	body := fmt.Sprintf("Your withdrawal of $%s is %s.", amount, status)
	if note != "" {
		body += "\n\nNote from the team: " + note
	}

	env := EmailEnvelope{To: email, Subject: subject, Body: body}
	payload := WithdrawalDecidedPayload{
		WithdrawalID: withdrawalID,
		UserID:       userID,
		Email:        email,
		Amount:       amount,
		Status:       status,
		Note:         note,
		Envelope:     env,
		SentAt:       time.Now(),
	}
	b, _ := json.Marshal(payload)
	task := asynq.NewTask(TaskWithdrawalDecided, b)
	_, err := ensureClient().Enqueue(task, asynq.Queue("emails"))
	return err
}
