package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/propledger/backend/internal/interfaces/http/router"
)

// SystemHandler serves system information endpoints.
type SystemHandler struct {
	BaseHandler
	version   string
	startedAt time.Time
}

// NewSystemHandler creates a system handler.
func NewSystemHandler(version string) *SystemHandler {
	return &SystemHandler{
		version:   version,
		startedAt: time.Now(),
	}
}

// Routes returns the route group for system endpoints.
func (h *SystemHandler) Routes() *router.DomainGroup {
	return router.NewDomainGroup("system", "/system").
		GET("/info", h.Info).
		GET("/ping", h.Ping)
}

// SystemInfo describes the running service.
type SystemInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// Info returns the service name, version and uptime.
func (h *SystemHandler) Info(c *gin.Context) {
	h.Success(c, SystemInfo{
		Name:    "PropLedger Backend API",
		Version: h.version,
		Uptime:  time.Since(h.startedAt).Round(time.Second).String(),
	})
}

// Ping responds with a timestamped pong for liveness probes.
func (h *SystemHandler) Ping(c *gin.Context) {
	h.Success(c, gin.H{
		"message":   "pong",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
