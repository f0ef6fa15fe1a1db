package models

import "gorm.io/gorm"

// Activity is an append-only audit row describing one task change.
// Rows are never updated or deleted through normal flow.
type Activity struct {
	gorm.Model

	TaskID        uint   `gorm:"not null;index"`
	Action        string `gorm:"not null"` // "created", "updated"
	Key           string
	PreviousValue string
	NewValue      string
	Message       string
	PerformedBy   string
	UserID        uint `gorm:"not null"`

	// Relationships
	Task Task `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
