package auth

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/dayo-adewuyi/growvest/internal/alerts"
	"github.com/dayo-adewuyi/growvest/internal/db"
)

type SignupRequest struct {
	FullName      string `json:"full_name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=6"`
	WalletAddress string `json:"wallet_address"`
}

type SignupResponse struct {
	Token string `json:"token"`
}

// ===== Signup =====
func Signup(c echo.Context) error {
	req := new(SignupRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.FullName == "" || req.Email == "" || len(req.Password) < 6 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "full name, email and a password of at least 6 characters are required"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}

	ctx := context.Background()

	// Ledger columns default to zero in the schema
	var userID string
	err = db.Conn.QueryRow(ctx, `
        INSERT INTO users (id, email, password_hash, full_name, wallet_address)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `, uuid.New().String(), req.Email, string(hashed), req.FullName, req.WalletAddress).Scan(&userID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email already exists"})
	}

	_ = alerts.EnqueueWelcomeEmail(userID, req.Email, req.FullName)

	signed, err := signToken(userID, false)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token generation failed"})
	}

	return c.JSON(http.StatusOK, SignupResponse{Token: signed})
}
