package query

import (
	"testing"
	"time"

	"github.com/taskdeck-dev/taskdeck/internal/models"
)

func TestListActivitiesNewestFirst(t *testing.T) {
	dbc := testDB(t)

	rows := []models.Activity{
		{TaskID: 1, Action: "created", Message: "Dana created the task", PerformedBy: "Dana", UserID: 1},
		{TaskID: 1, Action: "updated", Key: "status", PreviousValue: "todo", NewValue: "done", Message: "Dana updated the task", PerformedBy: "Dana", UserID: 1},
		{TaskID: 2, Action: "created", Message: "Eli created the task", PerformedBy: "Eli", UserID: 2},
	}
	for i := range rows {
		if err := dbc.Create(&rows[i]).Error; err != nil {
			t.Fatalf("failed to create activity: %v", err)
		}
	}
	backdate(t, dbc, &models.Activity{}, rows[0].ID, 2*time.Hour)
	backdate(t, dbc, &models.Activity{}, rows[1].ID, time.Hour)

	items, total, err := ListActivities(dbc, 1, 10, 0)
	if err != nil {
		t.Fatalf("ListActivities failed: %v", err)
	}

	if total != 2 {
		t.Errorf("expected 2 rows for the task, got %d", total)
	}
	if len(items) != 2 || items[0].Action != "updated" || items[1].Action != "created" {
		t.Errorf("expected newest-first order, got %+v", items)
	}
	if items[0].Key != "status" || items[0].NewValue != "done" {
		t.Errorf("diff fields lost: %+v", items[0])
	}
}

func TestListActivitiesPaging(t *testing.T) {
	dbc := testDB(t)

	for i := 0; i < 3; i++ {
		row := models.Activity{TaskID: 1, Action: "updated", Message: "x", PerformedBy: "Dana", UserID: 1}
		if err := dbc.Create(&row).Error; err != nil {
			t.Fatalf("failed to create activity: %v", err)
		}
	}

	items, total, err := ListActivities(dbc, 1, 2, 2)
	if err != nil {
		t.Fatalf("ListActivities failed: %v", err)
	}

	if total != 3 || len(items) != 1 {
		t.Errorf("expected trailing page of 1, got total=%d len=%d", total, len(items))
	}
	if next := NextOffset(2, 2, total); next != nil {
		t.Errorf("expected nil nextOffset, got %d", *next)
	}
}
