package admin

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/dayo-adewuyi/growvest/internal/db"
)

type AdminUser struct {
	ID             string          `json:"id"`
	FullName       string          `json:"full_name"`
	Email          string          `json:"email"`
	WalletAddress  string          `json:"wallet_address"`
	Balance        decimal.Decimal `json:"balance"`
	TotalInvested  decimal.Decimal `json:"total_invested"`
	TotalWithdrawn decimal.Decimal `json:"total_withdrawn"`
	CreatedAt      time.Time       `json:"created_at"`
}

// GET /admin/users
func ListUsers(c echo.Context) error {
	ctx := context.Background()

	rows, err := db.Conn.Query(ctx, `
        SELECT id, full_name, email, wallet_address, balance, total_invested, total_withdrawn, created_at
        FROM users WHERE is_admin = FALSE ORDER BY created_at DESC`)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch users"})
	}
	defer rows.Close()

	users := []AdminUser{}
	for rows.Next() {
		var u AdminUser
		if err := rows.Scan(&u.ID, &u.FullName, &u.Email, &u.WalletAddress,
			&u.Balance, &u.TotalInvested, &u.TotalWithdrawn, &u.CreatedAt); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to read user record"})
		}
		users = append(users, u)
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users})
}

// GET /admin/users/:id
func GetUser(c echo.Context) error {
	userID := c.Param("id")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user id required"})
	}

	var u AdminUser
	err := db.Conn.QueryRow(context.Background(), `
        SELECT id, full_name, email, wallet_address, balance, total_invested, total_withdrawn, created_at
        FROM users WHERE id = $1`, userID).
		Scan(&u.ID, &u.FullName, &u.Email, &u.WalletAddress,
			&u.Balance, &u.TotalInvested, &u.TotalWithdrawn, &u.CreatedAt)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}
	return c.JSON(http.StatusOK, u)
}
