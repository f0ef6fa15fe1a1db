package query

import (
	"github.com/taskdeck-dev/taskdeck/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LabelItem struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// SyncLabels materializes label strings into the global catalog.
// Duplicates are silently ignored; the catalog is append-only. Invoked
// explicitly by the task handlers after a write rather than hidden in a
// persistence hook.
func SyncLabels(dbc *gorm.DB, labels []string) error {
	if len(labels) == 0 {
		return nil
	}

	rows := make([]models.Label, 0, len(labels))
	for _, name := range labels {
		if name == "" {
			continue
		}
		rows = append(rows, models.Label{Name: name})
	}

	if len(rows) == 0 {
		return nil
	}

	return dbc.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

func ListLabels(dbc *gorm.DB, opts Options) ([]LabelItem, int64, error) {
	opts = opts.normalized()
	search := filterSearch("labels.name", opts.Search)

	var total int64
	if err := dbc.Model(&models.Label{}).Scopes(search).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var labels []models.Label
	if err := dbc.Model(&models.Label{}).Scopes(search).
		Offset(opts.Offset).
		Limit(opts.Limit).
		Find(&labels).Error; err != nil {
		return nil, 0, err
	}

	items := make([]LabelItem, 0, len(labels))
	for _, label := range labels {
		items = append(items, LabelItem{ID: label.ID, Name: label.Name})
	}

	return items, total, nil
}
