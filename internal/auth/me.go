package auth

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/dayo-adewuyi/growvest/internal/db"
)

// Me returns the currently authenticated user's profile with ledger totals
func Me(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var (
		email, fullName, wallet      string
		balance, invested, withdrawn decimal.Decimal
		isAdmin                      bool
	)
	err := db.Conn.QueryRow(context.Background(), `
        SELECT email, full_name, wallet_address, balance, total_invested, total_withdrawn, is_admin
        FROM users WHERE id = $1`, userID).
		Scan(&email, &fullName, &wallet, &balance, &invested, &withdrawn, &isAdmin)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"id":              userID,
		"email":           email,
		"full_name":       fullName,
		"wallet_address":  wallet,
		"balance":         balance,
		"total_invested":  invested,
		"total_withdrawn": withdrawn,
		"is_admin":        isAdmin,
	})
}
