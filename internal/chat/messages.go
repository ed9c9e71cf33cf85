package chat

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/dayo-adewuyi/growvest/internal/db"
)

// canAccess reports whether the user may read or post in the thread. The
// thread belongs to the investment owner; admins can join any thread.
func canAccess(ctx context.Context, investmentID, userID string, isAdmin bool) (bool, error) {
	var ownerID string
	err := db.Conn.QueryRow(ctx,
		`SELECT user_id FROM investments WHERE id = $1`, investmentID,
	).Scan(&ownerID)
	if err != nil {
		return false, err
	}
	return isAdmin || ownerID == userID, nil
}

// SendMessage posts into an investment thread and pushes the row to any
// websocket subscribers.
func SendMessage(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	isAdmin, _ := c.Get("is_admin").(bool)

	investmentID := c.Param("id")
	if investmentID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing investment id"})
	}

	var body struct {
		Message       string `json:"message"`
		ScreenshotURL string `json:"screenshot_url"`
	}
	if err := c.Bind(&body); err != nil || (body.Message == "" && body.ScreenshotURL == "") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "message or screenshot is required"})
	}

	ctx := c.Request().Context()

	allowed, err := canAccess(ctx, investmentID, userID, isAdmin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "investment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch investment"})
	}
	if !allowed {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not a participant in this thread"})
	}

	var msgID string
	var createdAt time.Time
	err = db.Conn.QueryRow(ctx,
		`INSERT INTO chat_messages (investment_id, sender_id, message, screenshot_url, is_admin)
         VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5) RETURNING id, created_at`,
		investmentID, userID, body.Message, body.ScreenshotURL, isAdmin,
	).Scan(&msgID, &createdAt)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to send message"})
	}

	BroadcastNewMessage(investmentID, echo.Map{
		"id":             msgID,
		"investment_id":  investmentID,
		"sender_id":      userID,
		"message":        body.Message,
		"screenshot_url": body.ScreenshotURL,
		"is_admin":       isAdmin,
		"created_at":     createdAt.UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{"message_id": msgID})
}

// ListMessages returns the conversation for an investment, oldest first.
// Pass ?since=RFC3339 for incremental fetches.
func ListMessages(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	isAdmin, _ := c.Get("is_admin").(bool)

	investmentID := c.Param("id")
	if investmentID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing investment id"})
	}

	ctx := c.Request().Context()

	allowed, err := canAccess(ctx, investmentID, userID, isAdmin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "investment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch investment"})
	}
	if !allowed {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not a participant in this thread"})
	}

	var rows pgx.Rows
	if sinceStr := c.QueryParam("since"); sinceStr != "" {
		since, perr := time.Parse(time.RFC3339, sinceStr)
		if perr != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid since timestamp, use RFC3339"})
		}
		rows, err = db.Conn.Query(ctx,
			`SELECT id, sender_id, COALESCE(message, ''), COALESCE(screenshot_url, ''), is_admin, created_at
             FROM chat_messages WHERE investment_id = $1 AND created_at > $2 ORDER BY created_at ASC`,
			investmentID, since)
	} else {
		rows, err = db.Conn.Query(ctx,
			`SELECT id, sender_id, COALESCE(message, ''), COALESCE(screenshot_url, ''), is_admin, created_at
             FROM chat_messages WHERE investment_id = $1 ORDER BY created_at ASC`,
			investmentID)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list messages"})
	}
	defer rows.Close()

	type message struct {
		ID            string `json:"id"`
		SenderID      string `json:"sender_id"`
		Message       string `json:"message"`
		ScreenshotURL string `json:"screenshot_url"`
		IsAdmin       bool   `json:"is_admin"`
		CreatedAt     string `json:"created_at"`
	}

	msgs := []message{}
	for rows.Next() {
		var m message
		var createdAt time.Time
		if err := rows.Scan(&m.ID, &m.SenderID, &m.Message, &m.ScreenshotURL, &m.IsAdmin, &createdAt); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to parse record"})
		}
		m.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		msgs = append(msgs, m)
	}

	return c.JSON(http.StatusOK, echo.Map{"messages": msgs})
}
