package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/pmarinho/fintrack/internal/middleware"
)

// NewRouter creates a Gin engine with routes configured.
// It receives the handler instances with all business logic already injected.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, RateLimiter).
//   - Adds request timeout handling (10 seconds).
//   - Mounts Swagger docs (/swagger/*any).
//   - Configures API v1 routes (/api/v1).
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in
//     app.InitializeApp().
func NewRouter(accounts *AccountsHandler, records *BalanceRecordsHandler, misc *MiscHandler) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.RateLimiter(),
	)

	// ─── Timeout ──────────────────────────────────
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// ─── Swagger ──────────────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ─── API v1 ───────────────────────────────────
	v1 := router.Group("/api/v1")
	{
		v1.GET("/accounts", accounts.List)
		v1.POST("/accounts", accounts.Create)
		v1.GET("/accounts/:id", accounts.Get)
		v1.PATCH("/accounts/:id", accounts.Update)
		v1.DELETE("/accounts/:id", accounts.Delete)

		v1.GET("/balance-records", records.List)
		v1.POST("/balance-records", records.Create)
		v1.GET("/balance-records/account/:accountId", records.ListByAccount)
		v1.DELETE("/balance-records/:id", records.Delete)
		v1.GET("/timeline", records.Timeline)

		v1.GET("/transactions", misc.ListTransactions)

		v1.GET("/tags", misc.ListTags)
		v1.POST("/tags", misc.CreateTag)
		v1.PATCH("/tags/:id", misc.UpdateTag)
		v1.DELETE("/tags/:id", misc.DeleteTag)

		v1.GET("/stats", misc.GetStats)
		v1.GET("/prices/:symbol", misc.GetPrice)
	}

	return router
}
