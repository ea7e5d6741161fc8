package notify

import (
	"context"
	"time"

	"go.uber.org/zap"

	"myka/internal/http-api/repository"
	"myka/internal/shared"
)

// Permission statuses, mirroring the platform notification API.
const (
	PermissionGranted = "granted"
	PermissionDenied  = "denied"
	PermissionDefault = "default"
)

// Gateway abstracts the platform notification-permission capability so the
// scheduling logic can be exercised without a real device.
type Gateway interface {
	IsSupported() bool
	PermissionStatus(ctx context.Context, userID string) string
	// RequestPermission prompts the user and reports the resulting status.
	// It never returns an error: any failure resolves to denied.
	RequestPermission(ctx context.Context, userID string) string
}

// HubGateway runs the permission flow over the WebSocket channel and
// persists the last known status in the notification cache.
type HubGateway struct {
	hub     *Hub
	cache   *repository.NotificationCache
	timeout time.Duration
	log     *zap.Logger
}

func NewHubGateway(hub *Hub, cache *repository.NotificationCache, timeout time.Duration, log *zap.Logger) *HubGateway {
	return &HubGateway{hub: hub, cache: cache, timeout: timeout, log: log}
}

func (g *HubGateway) IsSupported() bool {
	return true
}

func (g *HubGateway) PermissionStatus(ctx context.Context, userID string) string {
	status, err := g.cache.GetPermission(ctx, userID)
	if err != nil {
		g.log.Warn("permission status lookup failed", zap.Error(err), zap.String("user_id", userID))
		return PermissionDefault
	}
	return status
}

func (g *HubGateway) RequestPermission(ctx context.Context, userID string) string {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	result, err := g.hub.Request(ctx, userID, shared.PushMessage{Kind: "permission-request"})
	if err != nil {
		// no client, timeout, or transport failure all resolve to denied
		g.log.Warn("permission request failed", zap.Error(err), zap.String("user_id", userID))
		result = PermissionDenied
	}
	if result != PermissionGranted && result != PermissionDefault {
		result = PermissionDenied
	}

	if err := g.cache.SavePermission(ctx, userID, result); err != nil {
		g.log.Warn("permission status persist failed", zap.Error(err), zap.String("user_id", userID))
	}
	return result
}

// UnsupportedGateway is the capability variant for platforms without
// notification support. Everything degrades to denied without erroring.
type UnsupportedGateway struct{}

func NewUnsupportedGateway() *UnsupportedGateway {
	return &UnsupportedGateway{}
}

func (UnsupportedGateway) IsSupported() bool {
	return false
}

func (UnsupportedGateway) PermissionStatus(ctx context.Context, userID string) string {
	return PermissionDenied
}

func (UnsupportedGateway) RequestPermission(ctx context.Context, userID string) string {
	return PermissionDenied
}
