package investments

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dayo-adewuyi/growvest/internal/db"
)

type adminRow struct {
	Investment
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// AdminListAll handles GET /admin/investments.
func AdminListAll(c echo.Context) error {
	rows, err := db.Conn.Query(c.Request().Context(), `
        SELECT i.id, i.user_id, i.amount, i.daily_return, i.total_days, i.days_completed,
               i.status, i.payment_method, i.payment_proof_url, i.verified,
               i.next_payout_date, i.created_at, u.email, u.full_name
        FROM investments i
        JOIN users u ON u.id = i.user_id
        ORDER BY i.created_at DESC`)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch investments"})
	}
	defer rows.Close()

	list := []adminRow{}
	for rows.Next() {
		var r adminRow
		if err := rows.Scan(&r.ID, &r.UserID, &r.Amount, &r.DailyReturn, &r.TotalDays,
			&r.DaysCompleted, &r.Status, &r.PaymentMethod, &r.PaymentProofURL,
			&r.Verified, &r.NextPayoutDate, &r.CreatedAt, &r.Email, &r.FullName); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not read investments"})
		}
		list = append(list, r)
	}

	return c.JSON(http.StatusOK, echo.Map{"investments": list})
}

// AdminVerify handles POST /admin/investments/:id/verify. Marks the claim
// verified and active once the payment proof checks out.
func AdminVerify(c echo.Context) error {
	id := c.Param("id")

	tag, err := db.Conn.Exec(c.Request().Context(), `
        UPDATE investments SET verified = TRUE, status = $1
        WHERE id = $2 AND status = $3`,
		StatusActive, id, StatusPending)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not verify investment"})
	}
	if tag.RowsAffected() == 0 {
		return c.JSON(http.StatusConflict, echo.Map{"error": "investment is not pending"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "investment verified"})
}
