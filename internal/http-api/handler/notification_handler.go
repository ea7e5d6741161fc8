package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"myka/internal/http-api/dto"
	"myka/internal/http-api/middleware"
	"myka/internal/http-api/models"
	"myka/internal/http-api/service"
	"myka/internal/notify"
	"myka/internal/scheduler"
)

type NotificationHandler struct {
	svc     service.NotificationService
	gateway notify.Gateway
}

func NewNotificationHandler(svc service.NotificationService, gateway notify.Gateway) *NotificationHandler {
	return &NotificationHandler{svc: svc, gateway: gateway}
}

func (h *NotificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.PUT("/:id/toggle", h.Toggle)
	rg.POST("/:id/snooze", h.Snooze)
	rg.GET("/actions/:actionID", h.ActionTarget)
	rg.GET("/permission", h.PermissionStatus)
	rg.POST("/permission/request", h.RequestPermission)
}

func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	notifications, err := h.svc.List(ctx, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

func (h *NotificationHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	n := &models.ScheduledNotification{
		UserID:         userID,
		Time:           req.Time,
		Title:          req.Title,
		Body:           req.Body,
		Type:           req.Type,
		Actions:        req.Actions,
		Enabled:        true,
		Recurring:      true,
		SnoozeEnabled:  req.SnoozeEnabled,
		SnoozeDuration: req.SnoozeDuration,
	}
	if req.Enabled != nil {
		n.Enabled = *req.Enabled
	}
	if req.Recurring != nil {
		n.Recurring = *req.Recurring
	}

	if err := h.svc.Create(ctx, n); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, n)
}

func (h *NotificationHandler) Update(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.UpdateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	n, err := h.svc.Update(ctx, userID, c.Param("id"), req.Fields())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, n)
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Delete(ctx, userID, c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *NotificationHandler) Toggle(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	n, err := h.svc.Toggle(ctx, userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, n)
}

func (h *NotificationHandler) Snooze(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Snooze(ctx, userID, c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ActionTarget resolves a quick-action id to the route the client should open.
func (h *NotificationHandler) ActionTarget(c *gin.Context) {
	if _, ok := middleware.UserID(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	actionID := c.Param("actionID")
	c.JSON(http.StatusOK, dto.ActionTargetResponse{
		ActionID: actionID,
		Target:   scheduler.ActionTarget(actionID),
	})
}

func (h *NotificationHandler) PermissionStatus(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	c.JSON(http.StatusOK, gin.H{
		"supported":  h.gateway.IsSupported(),
		"permission": h.gateway.PermissionStatus(ctx, userID),
	})
}

// RequestPermission pushes a prompt to the user's connected client and waits
// for the answer. It always reports a status, never an error.
func (h *NotificationHandler) RequestPermission(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	status := h.gateway.RequestPermission(c.Request.Context(), userID)
	c.JSON(http.StatusOK, gin.H{"permission": status})
}
