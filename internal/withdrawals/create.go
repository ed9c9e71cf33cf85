package withdrawals

import (
	"context"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/dayo-adewuyi/growvest/internal/alerts"
	"github.com/dayo-adewuyi/growvest/internal/db"
)

type createRequest struct {
	Amount        string `json:"amount"`
	WalletAddress string `json:"wallet_address"`
	PaymentMethod string `json:"payment_method"`
}

// Create handles POST /withdrawals. The request is held pending until an
// admin decides it; no balance is reserved at creation time.
func Create(c echo.Context) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req createRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount must be greater than zero"})
	}

	ctx := c.Request().Context()

	var balance decimal.Decimal
	var profileWallet string
	err = db.Conn.QueryRow(ctx,
		`SELECT balance, wallet_address FROM users WHERE id = $1`, uid,
	).Scan(&balance, &profileWallet)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch balance"})
	}

	wallet := req.WalletAddress
	if wallet == "" {
		wallet = profileWallet
	}

	if err := ValidateCreate(amount, balance, wallet); err != nil {
		switch {
		case errors.Is(err, ErrNoWallet):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "no wallet address found, set one on your profile or supply one"})
		case errors.Is(err, ErrBelowMinimum):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "minimum withdrawal amount is $" + MinimumAmount.StringFixed(2)})
		case errors.Is(err, ErrInsufficientBalance):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "insufficient balance"})
		default:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
	}

	var method *string
	if req.PaymentMethod != "" {
		method = &req.PaymentMethod
	}

	var w Withdrawal
	err = db.Conn.QueryRow(ctx,
		`INSERT INTO withdrawals (user_id, amount, wallet_address, payment_method, status)
         VALUES ($1, $2, $3, $4, 'pending')
         RETURNING id, user_id, amount, wallet_address, payment_method, status, admin_note, requested_at, processed_at`,
		uid, amount, wallet, method,
	).Scan(&w.ID, &w.UserID, &w.Amount, &w.WalletAddress, &w.PaymentMethod, &w.Status, &w.AdminNote, &w.RequestedAt, &w.ProcessedAt)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create withdrawal"})
	}

	// Operator alert is best-effort; the request stands either way.
	_ = alerts.EnqueueWithdrawalRequested(w.ID, uid, amount.StringFixed(2))

	return c.JSON(http.StatusCreated, echo.Map{
		"message":    "withdrawal request submitted, an admin will review it shortly",
		"withdrawal": w,
	})
}

// ListMine handles GET /withdrawals for the authenticated user
func ListMine(c echo.Context) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	rows, err := db.Conn.Query(context.Background(),
		`SELECT id, user_id, amount, wallet_address, payment_method, status, admin_note, requested_at, processed_at
         FROM withdrawals
         WHERE user_id = $1
         ORDER BY requested_at DESC`, uid,
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch withdrawals"})
	}
	defer rows.Close()

	var items []Withdrawal
	for rows.Next() {
		var w Withdrawal
		if err := rows.Scan(&w.ID, &w.UserID, &w.Amount, &w.WalletAddress, &w.PaymentMethod, &w.Status, &w.AdminNote, &w.RequestedAt, &w.ProcessedAt); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to read withdrawal record"})
		}
		items = append(items, w)
	}

	return c.JSON(http.StatusOK, echo.Map{"withdrawals": items})
}
