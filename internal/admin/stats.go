package admin

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/dayo-adewuyi/growvest/internal/db"
)

// GET /admin/stats
func Stats(c echo.Context) error {
	ctx := context.Background()

	var users, investments, pendingWithdrawals, transactions int
	var totalBalance, totalInvested, totalWithdrawn decimal.Decimal

	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE is_admin = FALSE`).Scan(&users)
	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM investments`).Scan(&investments)
	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM withdrawals WHERE status = 'pending'`).Scan(&pendingWithdrawals)
	_ = db.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&transactions)
	_ = db.Conn.QueryRow(ctx, `
        SELECT COALESCE(SUM(balance), 0), COALESCE(SUM(total_invested), 0), COALESCE(SUM(total_withdrawn), 0)
        FROM users WHERE is_admin = FALSE`).Scan(&totalBalance, &totalInvested, &totalWithdrawn)

	return c.JSON(http.StatusOK, echo.Map{
		"users":               users,
		"investments":         investments,
		"pending_withdrawals": pendingWithdrawals,
		"transactions":        transactions,
		"total_balance":       totalBalance,
		"total_invested":      totalInvested,
		"total_withdrawn":     totalWithdrawn,
	})
}
