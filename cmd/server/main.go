package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/dayo-adewuyi/growvest/internal/admin"
	"github.com/dayo-adewuyi/growvest/internal/alerts"
	"github.com/dayo-adewuyi/growvest/internal/auth"
	"github.com/dayo-adewuyi/growvest/internal/chat"
	"github.com/dayo-adewuyi/growvest/internal/db"
	"github.com/dayo-adewuyi/growvest/internal/intake"
	"github.com/dayo-adewuyi/growvest/internal/investments"
	"github.com/dayo-adewuyi/growvest/internal/ledger"
	mware "github.com/dayo-adewuyi/growvest/internal/middleware"
	"github.com/dayo-adewuyi/growvest/internal/user"
	"github.com/dayo-adewuyi/growvest/internal/withdrawals"
)

func main() {
	_ = godotenv.Load()

	// Init subsystems
	db.Init()
	alerts.Init()
	defer alerts.Close()

	e := echo.New()
	e.HideBanner = true

	// Basic middleware
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	// Health and root routes
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok", "service": "growvest"})
	})
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/ready", func(c echo.Context) error {
		if db.Conn == nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "not_ready", "error": "db not initialized"})
		}
		if err := db.Conn.Ping(context.Background()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "not_ready", "error": "db unreachable"})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ready"})
	})

	// Auth routes with per-IP rate limiting to protect signup/login from abuse
	authGroup := e.Group("/auth")
	authGroup.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))
	authGroup.POST("/signup", auth.Signup)
	authGroup.POST("/login", auth.Login)
	authGroup.POST("/password/request", auth.RequestPasswordReset)
	authGroup.POST("/password/reset", auth.ResetPassword)
	authGroup.POST("/admin/bootstrap", auth.BootstrapAdmin)

	// Protected routes
	api := e.Group("")
	api.Use(mware.JWT)

	api.GET("/auth/me", auth.Me)
	api.PATCH("/user/profile", user.UpdateProfile)

	api.POST("/uploads", intake.Upload)
	api.POST("/submit-investment", intake.Submit)

	api.POST("/investments", investments.Create)
	api.GET("/investments", investments.ListMine)

	api.POST("/withdrawals", withdrawals.Create)
	api.GET("/withdrawals", withdrawals.ListMine)

	api.GET("/transactions", ledger.GetUserTransactions)

	api.GET("/investments/:id/messages", chat.ListMessages)
	api.POST("/investments/:id/messages", chat.SendMessage)
	api.GET("/investments/:id/ws", chat.ThreadWS)

	// Admin routes
	adminGroup := e.Group("/admin")
	adminGroup.Use(mware.JWT)
	adminGroup.Use(mware.AdminGuard)

	adminGroup.GET("/stats", admin.Stats)
	adminGroup.GET("/users", admin.ListUsers)
	adminGroup.GET("/users/:id", admin.GetUser)

	adminGroup.GET("/investments", investments.AdminListAll)
	adminGroup.POST("/investments/:id/verify", investments.AdminVerify)

	adminGroup.GET("/withdrawals/pending", withdrawals.ListPending)
	adminGroup.POST("/withdrawals/:id/approve", withdrawals.Approve)
	adminGroup.POST("/withdrawals/:id/reject", withdrawals.Reject)

	adminGroup.POST("/users/:id/return", ledger.ApplyUserReturn)
	adminGroup.POST("/returns/global", ledger.ApplyGlobalReturnHandler)
	adminGroup.POST("/users/:id/invested", ledger.SetInvested)
	adminGroup.POST("/users/:id/clear", ledger.ClearBalanceHandler)

	adminGroup.GET("/transactions", ledger.AdminGetAllTransactions)
	adminGroup.GET("/transactions/user/:id", ledger.AdminGetUserTransactions)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := e.Start(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
