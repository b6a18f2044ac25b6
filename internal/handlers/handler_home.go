package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// registerHomeRoutes registers the root and health endpoints.
func registerHomeRoutes(r *gin.Engine) {
	r.GET("/", home)
	r.GET("/health", health)
}

// home godoc
// @Summary Service banner
// @Description Returns the service name
// @Tags home
// @Produce plain
// @Success 200 {string} string "fundledger"
// @Router / [get]
func home(c *gin.Context) {
	c.String(http.StatusOK, "fundledger")
}

// health godoc
// @Summary Health check
// @Description Reports service liveness
// @Tags home
// @Produce plain
// @Success 200 {string} string "OK"
// @Router /health [get]
func health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}
