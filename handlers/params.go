package handlers

import (
	"strconv"

	"HospitalMgmt/middlewares"

	"github.com/gin-gonic/gin"
)

// pathID parses a positive numeric path parameter. On failure it writes a
// 400 response and returns ok=false.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(400, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// bindJSON decodes the request body into dst or writes a 400 response.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return false
	}
	return true
}

// currentUserID is the authenticated user, if any.
func currentUserID(c *gin.Context) *int64 {
	id, err := middlewares.ExtractUserIDFromContext(c.Request.Context())
	if err != nil {
		return nil
	}
	return &id
}
