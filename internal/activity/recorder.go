// Package activity appends immutable audit rows for task mutations.
// Audit writes happen after the task write has committed; a failed
// audit write never rolls the mutation back.
package activity

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/taskdeck-dev/taskdeck/internal/models"
	"gorm.io/gorm"
)

// Placeholder recorded when a side of a diff has no value.
const NotAvailable = "N/A"

type Actor struct {
	ID   uint
	Name string
}

// TaskPatch is the typed update payload for a task; nil fields are
// untouched. A pointer to the zero time clears a date.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	AssigneeID  *uint
	Labels      *[]string
	StartDate   *time.Time
	EndDate     *time.Time
}

// Change is one audited field diff with both sides resolved for
// display.
type Change struct {
	Key           string
	PreviousValue string
	NewValue      string
}

// RecordCreated appends the creation row. Creation rows carry no diff
// fields.
func RecordCreated(dbc *gorm.DB, taskID uint, actor Actor) error {
	return dbc.Create(&models.Activity{
		TaskID:      taskID,
		Action:      "created",
		PerformedBy: actor.Name,
		UserID:      actor.ID,
		Message:     fmt.Sprintf("%s created the task", actor.Name),
	}).Error
}

// RecordUpdated appends one audit row per changed field.
func RecordUpdated(dbc *gorm.DB, taskID uint, actor Actor, changes []Change) error {
	for _, change := range changes {
		err := dbc.Create(&models.Activity{
			TaskID:        taskID,
			Action:        "updated",
			Key:           change.Key,
			PreviousValue: change.PreviousValue,
			NewValue:      change.NewValue,
			PerformedBy:   actor.Name,
			UserID:        actor.ID,
			Message:       fmt.Sprintf("%s updated the task", actor.Name),
		}).Error

		if err != nil {
			return err
		}
	}

	return nil
}

// Diff compares a pre-update task snapshot against the patch and
// resolves each changed field for display: assignee ids become user
// names, labels are comma-joined, and empty values on either side read
// as "N/A".
func Diff(dbc *gorm.DB, before *models.Task, patch TaskPatch) []Change {
	var changes []Change

	if patch.Title != nil && *patch.Title != before.Title {
		changes = append(changes, scalarChange("title", before.Title, *patch.Title))
	}

	if patch.Description != nil && *patch.Description != before.Description {
		changes = append(changes, scalarChange("description", before.Description, *patch.Description))
	}

	if patch.Status != nil && *patch.Status != before.Status {
		changes = append(changes, scalarChange("status", before.Status, *patch.Status))
	}

	if patch.Priority != nil && *patch.Priority != before.Priority {
		changes = append(changes, scalarChange("priority", before.Priority, *patch.Priority))
	}

	if patch.AssigneeID != nil && !uintPtrEqual(patch.AssigneeID, before.AssigneeID) {
		changes = append(changes, Change{
			Key:           "assignee",
			PreviousValue: lookupUserName(dbc, before.AssigneeID),
			NewValue:      lookupUserName(dbc, patch.AssigneeID),
		})
	}

	if patch.Labels != nil {
		previous := joinLabels(decodeLabels(before.Labels))
		next := joinLabels(*patch.Labels)
		if previous != next {
			changes = append(changes, Change{Key: "labels", PreviousValue: orNA(previous), NewValue: orNA(next)})
		}
	}

	if patch.StartDate != nil {
		next := normalizeDate(patch.StartDate)
		if !timePtrEqual(next, before.StartDate) {
			changes = append(changes, scalarChange("startDate", formatDate(before.StartDate), formatDate(next)))
		}
	}

	if patch.EndDate != nil {
		next := normalizeDate(patch.EndDate)
		if !timePtrEqual(next, before.EndDate) {
			changes = append(changes, scalarChange("endDate", formatDate(before.EndDate), formatDate(next)))
		}
	}

	return changes
}

func scalarChange(key, previous, next string) Change {
	return Change{Key: key, PreviousValue: orNA(previous), NewValue: orNA(next)}
}

func orNA(value string) string {
	if value == "" {
		return NotAvailable
	}
	return value
}

func joinLabels(labels []string) string {
	return strings.Join(labels, ",")
}

func decodeLabels(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}

	var labels []string
	if err := json.Unmarshal(raw, &labels); err != nil {
		return nil
	}

	return labels
}

// lookupUserName resolves an assignee id to its display name; a nil or
// unknown id resolves to "N/A".
func lookupUserName(dbc *gorm.DB, id *uint) string {
	if id == nil || *id == 0 {
		return NotAvailable
	}

	var user models.User
	if err := dbc.First(&user, *id).Error; err != nil {
		return NotAvailable
	}

	return user.Name
}

// normalizeDate maps the zero-time clear marker to nil.
func normalizeDate(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	return t
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func uintPtrEqual(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
