package middlewares

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
)

var (
	errMissingAuthorization = errors.New("Authorization header is missing")
	errMalformedBearer      = errors.New("Invalid Authorization header format")
)

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", errMissingAuthorization
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", errMalformedBearer
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		return "", errMalformedBearer
	}
	return token, nil
}
