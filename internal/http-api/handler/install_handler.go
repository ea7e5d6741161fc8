package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"myka/internal/http-api/dto"
	"myka/internal/http-api/middleware"
	"myka/internal/install"
)

type InstallHandler struct {
	tracker *install.Tracker
}

func NewInstallHandler(tracker *install.Tracker) *InstallHandler {
	return &InstallHandler{tracker: tracker}
}

func (h *InstallHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.State)
	rg.POST("/track", h.Track)
	rg.POST("/prompt", h.Prompt)
	rg.POST("/reset", h.Reset)
}

func (h *InstallHandler) State(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	state, err := h.tracker.Get(ctx, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	show, err := h.tracker.ShouldShowPrompt(ctx, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.InstallStateResponse{
		CanInstall:       state.CanInstall,
		IsInstalled:      state.IsInstalled,
		Platform:         state.Platform,
		PromptShown:      state.PromptShown,
		ShouldShowPrompt: show,
	})
}

func (h *InstallHandler) Track(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.TrackInstallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	state, err := h.tracker.Track(ctx, userID, install.Signals{
		CanInstall:  req.CanInstall,
		IsInstalled: req.IsInstalled,
		Platform:    req.Platform,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	show, err := h.tracker.ShouldShowPrompt(ctx, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.InstallStateResponse{
		CanInstall:       state.CanInstall,
		IsInstalled:      state.IsInstalled,
		Platform:         state.Platform,
		PromptShown:      state.PromptShown,
		ShouldShowPrompt: show,
	})
}

// Prompt shows the install prompt on the connected client. The prompt is
// marked shown whatever the user answers.
func (h *InstallHandler) Prompt(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	accepted, err := h.tracker.ShowPrompt(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.InstallPromptResponse{Accepted: accepted})
}

func (h *InstallHandler) Reset(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.tracker.Reset(ctx, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
