package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// rootHandler handles requests to the root path
func rootHandler(c *gin.Context) {
	c.String(http.StatusOK, "Hospital management API")
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// SetupRootRoute sets up the unauthenticated informational routes.
func SetupRootRoute(router *gin.Engine) {
	router.GET("/", rootHandler)
	router.GET("/healthz", healthHandler)
}
