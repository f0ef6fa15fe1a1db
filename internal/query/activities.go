package query

import (
	"time"

	"github.com/taskdeck-dev/taskdeck/internal/models"
	"gorm.io/gorm"
)

type ActivityItem struct {
	ID            uint      `json:"id"`
	TaskID        uint      `json:"taskId"`
	Action        string    `json:"action"`
	Key           string    `json:"key,omitempty"`
	PreviousValue string    `json:"previousValue,omitempty"`
	NewValue      string    `json:"newValue,omitempty"`
	Message       string    `json:"message"`
	PerformedBy   string    `json:"performedBy"`
	UserID        uint      `json:"userId"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ListActivities pages a task's audit trail, newest first.
func ListActivities(dbc *gorm.DB, taskID uint, limit, offset int) ([]ActivityItem, int64, error) {
	opts := Options{Limit: limit, Offset: offset}.normalized()

	var total int64
	if err := dbc.Model(&models.Activity{}).Where("task_id = ?", taskID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var activities []models.Activity
	if err := dbc.Where("task_id = ?", taskID).
		Order("created_at DESC").
		Offset(opts.Offset).
		Limit(opts.Limit).
		Find(&activities).Error; err != nil {
		return nil, 0, err
	}

	items := make([]ActivityItem, 0, len(activities))
	for _, activity := range activities {
		items = append(items, ActivityItem{
			ID:            activity.ID,
			TaskID:        activity.TaskID,
			Action:        activity.Action,
			Key:           activity.Key,
			PreviousValue: activity.PreviousValue,
			NewValue:      activity.NewValue,
			Message:       activity.Message,
			PerformedBy:   activity.PerformedBy,
			UserID:        activity.UserID,
			CreatedAt:     activity.CreatedAt,
		})
	}

	return items, total, nil
}
