package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"codeclock/api/internal/service"
)

func (h HandlerSet) SetupStatus(c *gin.Context) {
	needsSetup, err := h.setupService.Status(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("setup status failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"needs_setup": needsSetup})
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name"`
}

func (h HandlerSet) SetupRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.setupService.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrSetupComplete) {
			c.JSON(http.StatusConflict, gin.H{"error": "setup already completed"})
			return
		}
		h.log.Error().Err(err).Msg("setup register failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
		return
	}

	c.JSON(http.StatusCreated, newUserResponse(user))
}
