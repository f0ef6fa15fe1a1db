package models

import "gorm.io/gorm"

// Label is a global append-only catalog of label strings. Rows are
// inserted lazily whenever a task is saved with new label text; the
// catalog is never pruned.
type Label struct {
	gorm.Model

	Name string `gorm:"uniqueIndex;not null"`
}
