package withdrawals

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/dayo-adewuyi/growvest/internal/alerts"
	"github.com/dayo-adewuyi/growvest/internal/db"
	"github.com/dayo-adewuyi/growvest/internal/ledger"
)

type decisionRequest struct {
	Note string `json:"note"`
}

// ListPending returns all withdrawals awaiting an admin decision
func ListPending(c echo.Context) error {
	rows, err := db.Conn.Query(context.Background(),
		`SELECT id, user_id, amount, wallet_address, payment_method, status, admin_note, requested_at, processed_at
         FROM withdrawals
         WHERE status = 'pending'
         ORDER BY requested_at ASC`,
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch withdrawals"})
	}
	defer rows.Close()

	var items []Withdrawal
	for rows.Next() {
		var w Withdrawal
		if err := rows.Scan(&w.ID, &w.UserID, &w.Amount, &w.WalletAddress, &w.PaymentMethod, &w.Status, &w.AdminNote, &w.RequestedAt, &w.ProcessedAt); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to scan withdrawals"})
		}
		items = append(items, w)
	}

	return c.JSON(http.StatusOK, echo.Map{"pending_withdrawals": items})
}

// Approve handles POST /admin/withdrawals/:id/approve. The status change and
// the balance settlement commit as one database transaction, so a withdrawal
// can never end up completed without the debit having happened.
func Approve(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "withdrawal id required"})
	}

	var req decisionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	note := ApprovalNote(req.Note)

	ctx := c.Request().Context()

	tx, err := db.Conn.Begin(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not start transaction"})
	}
	defer tx.Rollback(ctx)

	var userID, status string
	var amount decimal.Decimal
	err = tx.QueryRow(ctx,
		`SELECT user_id, amount, status FROM withdrawals WHERE id = $1 FOR UPDATE`, id,
	).Scan(&userID, &amount, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "withdrawal not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch withdrawal"})
	}

	if err := ValidateApprove(status); err != nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "withdrawal already processed", "status": status})
	}

	processedAt := time.Now()
	_, err = tx.Exec(ctx,
		`UPDATE withdrawals SET status = 'completed', admin_note = $1, processed_at = $2 WHERE id = $3`,
		note, processedAt, id,
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update withdrawal"})
	}

	if err := ledger.Settle(ctx, tx, userID, amount, id, note); err != nil {
		if errors.Is(err, ledger.ErrInsufficientBalance) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "user balance is below the withdrawal amount"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to settle withdrawal"})
	}

	if err := tx.Commit(ctx); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to finalize withdrawal"})
	}

	notifyDecision(ctx, userID, id, amount, StatusCompleted, note)

	return c.JSON(http.StatusOK, echo.Map{
		"message":       "withdrawal approved and settled",
		"withdrawal_id": id,
		"status":        StatusCompleted,
	})
}

// Reject handles POST /admin/withdrawals/:id/reject. A non-empty note is
// required; no balance mutation occurs.
func Reject(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "withdrawal id required"})
	}

	var req decisionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	ctx := c.Request().Context()

	var userID, status string
	var amount decimal.Decimal
	err := db.Conn.QueryRow(ctx,
		`SELECT user_id, amount, status FROM withdrawals WHERE id = $1`, id,
	).Scan(&userID, &amount, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "withdrawal not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch withdrawal"})
	}

	if err := ValidateReject(status, req.Note); err != nil {
		if errors.Is(err, ErrNoteRequired) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "please provide a reason for rejection"})
		}
		return c.JSON(http.StatusConflict, echo.Map{"error": "withdrawal already processed", "status": status})
	}

	ct, err := db.Conn.Exec(ctx,
		`UPDATE withdrawals
         SET status = 'rejected', admin_note = $1, processed_at = $2
         WHERE id = $3 AND status = 'pending'`,
		req.Note, time.Now(), id,
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to reject withdrawal"})
	}
	if ct.RowsAffected() == 0 {
		return c.JSON(http.StatusConflict, echo.Map{"error": "withdrawal already processed"})
	}

	notifyDecision(ctx, userID, id, amount, StatusRejected, req.Note)

	return c.JSON(http.StatusOK, echo.Map{
		"message":       "withdrawal rejected",
		"withdrawal_id": id,
		"status":        StatusRejected,
	})
}

// notifyDecision emails the requesting user about the outcome (best-effort)
func notifyDecision(ctx context.Context, userID, withdrawalID string, amount decimal.Decimal, status, note string) {
	var email string
	if err := db.Conn.QueryRow(ctx, `SELECT email FROM users WHERE id = $1`, userID).Scan(&email); err != nil || email == "" {
		return
	}
	_ = alerts.EnqueueWithdrawalDecided(withdrawalID, userID, email, amount.StringFixed(2), status, note)
}
