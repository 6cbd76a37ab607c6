package handlers

import (
	"HospitalMgmt/middlewares"
	"HospitalMgmt/models"
	"HospitalMgmt/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	userService services.UserService
}

func NewAuthHandler(userService services.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	token, user, err := h.userService.Login(c.Request.Context(), req)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}

	c.JSON(200, gin.H{
		"access_token": token,
		"token_type":   "Bearer",
		"user":         user,
	})
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, err := middlewares.ExtractUserIDFromContext(c.Request.Context())
	if err != nil {
		c.JSON(401, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, user)
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, err := middlewares.ExtractUserIDFromContext(c.Request.Context())
	if err != nil {
		c.JSON(401, gin.H{"error": "Unauthorized"})
		return
	}

	var update models.ProfileUpdate
	if !bindJSON(c, &update) {
		return
	}

	user, err := h.userService.UpdateUserProfile(c.Request.Context(), userID, update)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, user)
}
