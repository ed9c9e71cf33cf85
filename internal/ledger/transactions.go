package ledger

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dayo-adewuyi/growvest/internal/db"
)

func scanTransactions(c echo.Context, query string, args ...any) ([]Transaction, error) {
	rows, err := db.Conn.Query(context.Background(), query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []Transaction
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.Amount, &t.Description, &t.ReferenceID, &t.CreatedAt); err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

// GetUserTransactions returns the authenticated user's ledger history
func GetUserTransactions(c echo.Context) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	txs, err := scanTransactions(c,
		`SELECT id, user_id, type, amount, description, reference_id, created_at
         FROM transactions
         WHERE user_id = $1
         ORDER BY created_at DESC`, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch transactions"})
	}

	return c.JSON(http.StatusOK, echo.Map{"transactions": txs})
}

// AdminGetAllTransactions returns every ledger entry for admin monitoring
func AdminGetAllTransactions(c echo.Context) error {
	txs, err := scanTransactions(c,
		`SELECT id, user_id, type, amount, description, reference_id, created_at
         FROM transactions
         ORDER BY created_at DESC`)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch transactions"})
	}

	return c.JSON(http.StatusOK, echo.Map{"transactions": txs})
}

// AdminGetUserTransactions returns one user's ledger entries (admin view)
func AdminGetUserTransactions(c echo.Context) error {
	userID := c.Param("id")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user ID is required"})
	}

	txs, err := scanTransactions(c,
		`SELECT id, user_id, type, amount, description, reference_id, created_at
         FROM transactions
         WHERE user_id = $1
         ORDER BY created_at DESC`, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch user transactions"})
	}

	return c.JSON(http.StatusOK, echo.Map{"transactions": txs})
}
