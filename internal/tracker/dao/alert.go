package dao

import (
	"context"

	"pump-radar/internal/tracker/model"
)

// AlertDAO is the persistence surface for the dispatched-alert trail.
type AlertDAO interface {
	// Save appends one dispatched alert.
	Save(ctx context.Context, a *model.Alert) error

	// RecentAlerts returns the latest alerts, newest first.
	RecentAlerts(ctx context.Context, limit int) ([]*model.Alert, error)

	// RecentByAddress returns the latest alerts for one mint, newest first.
	RecentByAddress(ctx context.Context, address string, limit int) ([]*model.Alert, error)
}
