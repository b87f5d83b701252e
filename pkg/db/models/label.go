package models

import "time"

// Label attaches a key/value pair to an indexed reference
type Label struct {
	ID          uint   `gorm:"primaryKey"`
	ReferenceID string `gorm:"type:text;not null;index:idx_reference_label"`
	Key         string `gorm:"type:text;not null;index:idx_reference_label"`
	Value       string `gorm:"type:text"`

	CreatedAt time.Time
}
