package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arjun/news_aggregator/internal/auth"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register: POST /api/register
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusUnprocessableEntity, "Validation error", gin.H{"body": err.Error()})
		return
	}

	user, token, err := h.authSvc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if errors.Is(err, auth.ErrEmailTaken) {
		sendError(c, http.StatusUnprocessableEntity, "Validation error", gin.H{"email": "already registered"})
		return
	}
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Something went wrong", nil)
		return
	}
	sendSuccess(c, http.StatusCreated, "User registered successfully", gin.H{"user": user, "token": token})
}

// Login: POST /api/login
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusUnprocessableEntity, "Validation error", gin.H{"body": err.Error()})
		return
	}

	user, token, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		sendError(c, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Something went wrong", nil)
		return
	}
	sendSuccess(c, http.StatusOK, "Logged in successfully", gin.H{"user": user, "token": token})
}

// Logout: POST /api/logout
func (h *Handler) Logout(c *gin.Context) {
	token, _ := c.Get(ctxTokenKey)
	if err := h.authSvc.Logout(c.Request.Context(), token.(string)); err != nil {
		sendError(c, http.StatusInternalServerError, "Something went wrong", nil)
		return
	}
	sendSuccess(c, http.StatusOK, "Logged out successfully", nil)
}
