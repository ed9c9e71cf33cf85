package intake

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dayo-adewuyi/growvest/internal/alerts"
)

// relay is swappable in tests
var relay = alerts.EnqueueInvestmentSubmitted

type submitRequest struct {
	FullName          string `json:"fullName"`
	WalletID          string `json:"walletId"`
	PaymentScreenshot string `json:"paymentScreenshot"`
	UserID            string `json:"userId"`
}

// Submit handles POST /api/submit-investment. It validates the claim and
// relays it to the operator address; it does not create any investment or
// transaction row — recognition of funds stays a manual admin act.
func Submit(c echo.Context) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req submitRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.FullName == "" || req.WalletID == "" || req.PaymentScreenshot == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "All fields are required"})
	}

	if alerts.AdminEmail() == "" {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Email configuration error"})
	}

	if err := relay(uid, req.FullName, req.WalletID, req.PaymentScreenshot); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to submit investment"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Investment submission sent to admin",
	})
}
