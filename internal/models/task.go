package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Task struct {
	gorm.Model

	Title       string         `gorm:"not null"`
	Description string
	Status      string         `gorm:"not null;default:todo"` // "todo", "in_progress", "in_review", "done"
	Priority    string         `gorm:"not null;default:low"`  // "low", "medium", "high", "urgent"
	ProjectID   uint           `gorm:"not null;index"`
	AssigneeID  *uint          `gorm:"index"`
	Labels      datatypes.JSON `gorm:"type:jsonb"`
	StartDate   *time.Time
	EndDate     *time.Time

	// Relationships
	Project    Project    `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Assignee   *User      `gorm:"foreignKey:AssigneeID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Activities []Activity `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Comments   []Comment  `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
