package api

import "github.com/gin-gonic/gin"

const serviceName = "fintrack"

// HealthHandler provides liveness and readiness endpoints.
//
// Responsibilities:
//   - /healthz: liveness probe, always 200 while the process is up.
//   - /readyz: readiness probe, gated on database connectivity.
type HealthHandler struct {
	dbPing func() error
}

// NewHealthHandler constructs a HealthHandler.
//
// Parameters:
//   - dbPing (func() error): connectivity check for the database, typically
//     db.Ping from *sql.DB. A nil check makes /readyz unconditionally ready.
//
// Returns:
//   - *HealthHandler: a new handler instance.
func NewHealthHandler(dbPing func() error) *HealthHandler {
	return &HealthHandler{dbPing: dbPing}
}

// Register mounts the health and readiness endpoints on the router.
//
// Routes:
//   - GET /healthz: always 200.
//   - GET /readyz: 200 when dbPing succeeds, 503 otherwise.
func (h *HealthHandler) Register(r *gin.Engine) {
	// Liveness probe
	// @Summary      Liveness probe
	// @Description  Always returns OK if the service is running
	// @Tags         health
	// @Produce      json
	// @Success      200  {object}  map[string]string
	// @Router       /healthz [get]
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": serviceName})
	})

	// Readiness probe, fails when the database is unreachable
	// @Summary      Readiness probe
	// @Description  Returns ready if the service dependencies (DB) are reachable
	// @Tags         health
	// @Produce      json
	// @Success      200  {object}  map[string]string
	// @Failure      503  {object}  map[string]string
	// @Router       /readyz [get]
	r.GET("/readyz", func(c *gin.Context) {
		if h.dbPing != nil && h.dbPing() != nil {
			c.JSON(503, gin.H{"status": "degraded", "service": serviceName})
			return
		}
		c.JSON(200, gin.H{"status": "ready", "service": serviceName})
	})
}
