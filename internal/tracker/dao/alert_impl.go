package dao

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"pump-radar/internal/tracker/model"
)

type alertDAO struct {
	db *gorm.DB
}

// NewAlertDAO creates the gorm-backed alert store and ensures the table
// exists.
func NewAlertDAO(db *gorm.DB) (AlertDAO, error) {
	if err := db.AutoMigrate(&model.Alert{}); err != nil {
		return nil, fmt.Errorf("migrate alerts table: %w", err)
	}
	return &alertDAO{db: db}, nil
}

func (d *alertDAO) Save(ctx context.Context, a *model.Alert) error {
	return d.db.WithContext(ctx).Create(a).Error
}

func (d *alertDAO) RecentAlerts(ctx context.Context, limit int) ([]*model.Alert, error) {
	var alerts []*model.Alert
	err := d.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&alerts).Error
	return alerts, err
}

func (d *alertDAO) RecentByAddress(ctx context.Context, address string, limit int) ([]*model.Alert, error) {
	var alerts []*model.Alert
	err := d.db.WithContext(ctx).
		Where("address = ?", address).
		Order("created_at DESC").
		Limit(limit).
		Find(&alerts).Error
	return alerts, err
}
