package investments

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/dayo-adewuyi/growvest/internal/db"
	"github.com/dayo-adewuyi/growvest/internal/ledger"
)

type createRequest struct {
	Amount          string `json:"amount"`
	PaymentMethod   string `json:"payment_method"`
	PaymentProofURL string `json:"payment_proof_url"`
}

// Create handles POST /investments. The claim is written pending and
// unverified; balance is only moved later by an admin through the ledger.
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

	if err := ValidateCreate(amount, req.PaymentProofURL); err != nil {
		switch {
		case errors.Is(err, ErrBelowMinimum):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "minimum investment is $" + MinimumAmount.StringFixed(0)})
		case errors.Is(err, ErrNoProof):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "payment proof is required"})
		default:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
	}

	ctx := c.Request().Context()

	tx, err := db.Conn.Begin(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not start transaction"})
	}
	defer tx.Rollback(ctx)

	nextPayout := time.Now().Add(24 * time.Hour)

	var inv Investment
	err = tx.QueryRow(ctx, `
        INSERT INTO investments (user_id, amount, payment_method, payment_proof_url, next_payout_date)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, user_id, amount, daily_return, total_days, days_completed,
                  status, payment_method, payment_proof_url, verified, next_payout_date, created_at`,
		uid, amount, req.PaymentMethod, req.PaymentProofURL, nextPayout,
	).Scan(&inv.ID, &inv.UserID, &inv.Amount, &inv.DailyReturn, &inv.TotalDays,
		&inv.DaysCompleted, &inv.Status, &inv.PaymentMethod, &inv.PaymentProofURL,
		&inv.Verified, &inv.NextPayoutDate, &inv.CreatedAt)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create investment"})
	}

	_, err = tx.Exec(ctx, `
        INSERT INTO transactions (user_id, type, amount, description, reference_id)
        VALUES ($1, $2, $3, $4, $5)`,
		uid, ledger.TypeDeposit, amount, "Investment claim submitted", inv.ID,
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not record transaction"})
	}

	if err := tx.Commit(ctx); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not commit"})
	}

	return c.JSON(http.StatusCreated, inv)
}

// ListMine handles GET /investments.
func ListMine(c echo.Context) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	rows, err := db.Conn.Query(c.Request().Context(), `
        SELECT id, user_id, amount, daily_return, total_days, days_completed,
               status, payment_method, payment_proof_url, verified, next_payout_date, created_at
        FROM investments WHERE user_id = $1 ORDER BY created_at DESC`, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch investments"})
	}
	defer rows.Close()

	list := []Investment{}
	for rows.Next() {
		var inv Investment
		if err := rows.Scan(&inv.ID, &inv.UserID, &inv.Amount, &inv.DailyReturn,
			&inv.TotalDays, &inv.DaysCompleted, &inv.Status, &inv.PaymentMethod,
			&inv.PaymentProofURL, &inv.Verified, &inv.NextPayoutDate, &inv.CreatedAt); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not read investments"})
		}
		list = append(list, inv)
	}

	return c.JSON(http.StatusOK, echo.Map{"investments": list})
}
