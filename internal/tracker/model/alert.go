package model

import (
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Alert is the persisted trail of one dispatched alert, pass or fail.
type Alert struct {
	ID        int64          `gorm:"column:id;primaryKey;autoIncrement:true"`
	Address   string         `gorm:"column:address;not null;index"`
	Name      string         `gorm:"column:name"`
	Signature string         `gorm:"column:signature"`
	Passed    bool           `gorm:"column:passed;not null"`
	Reasons   pq.StringArray `gorm:"column:reasons;type:text[]"`
	Record    datatypes.JSON `gorm:"column:record"`
	CreatedAt int64          `gorm:"column:created_at;autoCreateTime:milli"`
}

func (Alert) TableName() string {
	return "alerts"
}
