package controllers

import (
	"HospitalMgmt/handlers"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Handler *handlers.AuthHandler
}

// NewAuthController creates a new AuthController with the given AuthHandler
func NewAuthController(authHandler *handlers.AuthHandler) *AuthController {
	return &AuthController{
		Handler: authHandler,
	}
}

// RegisterRoutes mounts the public login route on router and the profile
// routes on the authenticated group.
func (ac *AuthController) RegisterRoutes(router *gin.Engine, protected *gin.RouterGroup) {
	router.POST("/auth/login", ac.Handler.Login)

	authGroup := protected.Group("/auth")
	{
		authGroup.GET("/profile", ac.Handler.GetProfile)
		authGroup.PUT("/profile", ac.Handler.UpdateProfile)
	}
}
