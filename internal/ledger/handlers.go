package ledger

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type returnRequest struct {
	Percentage string `json:"percentage"`
}

type investedRequest struct {
	Amount string `json:"amount"`
}

func parseRate(raw string) (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, ErrInvalidRate
	}
	if rate.LessThanOrEqual(decimal.Zero) || rate.GreaterThan(oneHundred) {
		return decimal.Zero, ErrInvalidRate
	}
	return rate, nil
}

// ApplyUserReturn handles POST /admin/users/:id/return
func ApplyUserReturn(c echo.Context) error {
	userID := c.Param("id")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user id required"})
	}

	var req returnRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	rate, err := parseRate(req.Percentage)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	credited, err := ApplyReturn(c.Request().Context(), userID, rate, "")
	if err != nil {
		switch {
		case errors.Is(err, ErrNoInvestment):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "user has no invested amount"})
		case errors.Is(err, ErrUserNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to apply return"})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":  "return applied",
		"user_id":  userID,
		"credited": credited,
	})
}

// ApplyGlobalReturnHandler handles POST /admin/returns/global
func ApplyGlobalReturnHandler(c echo.Context) error {
	var req returnRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	rate, err := parseRate(req.Percentage)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	result, err := ApplyGlobalReturn(c.Request().Context(), rate)
	if err != nil {
		if errors.Is(err, ErrNoInvestment) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "no users with investments found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to apply global return"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":        "return applied",
		"applied":        result.Applied,
		"failed":         result.Failed,
		"total_credited": result.Total,
	})
}

// SetInvested handles POST /admin/users/:id/invested
func SetInvested(c echo.Context) error {
	userID := c.Param("id")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user id required"})
	}

	var req investedRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.IsNegative() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount must be zero or positive"})
	}

	change, err := SetInvestedAmount(c.Request().Context(), userID, amount)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update invested amount"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":        "invested amount updated",
		"user_id":        userID,
		"total_invested": change.NewInvested,
		"balance":        change.NewBalance,
	})
}

// ClearBalanceHandler handles POST /admin/users/:id/clear
func ClearBalanceHandler(c echo.Context) error {
	userID := c.Param("id")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user id required"})
	}

	_, err := ClearBalance(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to clear balance"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "balances cleared", "user_id": userID})
}
