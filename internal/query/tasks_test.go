package query

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/taskdeck-dev/taskdeck/internal/models"
	"github.com/taskdeck-dev/taskdeck/internal/types"
	"gorm.io/datatypes"
)

func TestListTasksFilterAndAssignee(t *testing.T) {
	dbc := testDB(t)

	project := createProject(t, dbc, "Billing API")
	assignee := createUser(t, dbc, "Dana", "dana@example.com", "member")

	task := createTask(t, dbc, project.ID, "Fix invoice rounding", "todo")
	if err := dbc.Model(&models.Task{}).Where("id = ?", task.ID).
		Update("assignee_id", assignee.ID).Error; err != nil {
		t.Fatalf("failed to assign task: %v", err)
	}
	createTask(t, dbc, project.ID, "Write docs", "done")

	other := createProject(t, dbc, "Other")
	createTask(t, dbc, other.ID, "Unrelated", "todo")

	items, total, err := ListTasks(dbc, project.ID, Options{Status: "todo"})
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}

	if total != 1 || len(items) != 1 {
		t.Fatalf("expected one todo task in the project, got total=%d len=%d", total, len(items))
	}

	if items[0].Assignee == nil {
		t.Fatal("expected resolved assignee")
	}
	if items[0].Assignee.Name != "Dana" || items[0].Assignee.Email != "dana@example.com" {
		t.Errorf("unexpected assignee: %+v", items[0].Assignee)
	}
}

func TestListTasksUnassigned(t *testing.T) {
	dbc := testDB(t)

	project := createProject(t, dbc, "Billing API")
	createTask(t, dbc, project.ID, "Orphan", "todo")

	items, _, err := ListTasks(dbc, project.ID, Options{})
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}

	if items[0].Assignee != nil {
		t.Errorf("expected nil assignee, got %+v", items[0].Assignee)
	}
}

func TestListTasksGrouped(t *testing.T) {
	dbc := testDB(t)

	project := createProject(t, dbc, "Billing API")
	createTask(t, dbc, project.ID, "a", "todo")
	createTask(t, dbc, project.ID, "b", "todo")
	createTask(t, dbc, project.ID, "c", "done")

	pages, err := ListTasksGrouped(dbc, project.ID, Options{Limit: 1})
	if err != nil {
		t.Fatalf("ListTasksGrouped failed: %v", err)
	}

	if len(pages) != len(types.TaskStatuses) {
		t.Fatalf("expected %d columns, got %d", len(types.TaskStatuses), len(pages))
	}

	todo := pages["todo"]
	if todo.TotalCount != 2 {
		t.Errorf("expected 2 todo tasks, got %d", todo.TotalCount)
	}
	if len(todo.Tasks) != 1 {
		t.Errorf("expected 1 task on the first todo page, got %d", len(todo.Tasks))
	}
	if todo.NextOffset == nil || *todo.NextOffset != 1 {
		t.Errorf("expected todo nextOffset 1, got %v", todo.NextOffset)
	}

	done := pages["done"]
	if done.TotalCount != 1 || done.NextOffset != nil {
		t.Errorf("done column should be exhausted: total=%d next=%v", done.TotalCount, done.NextOffset)
	}

	review := pages["in_review"]
	if review.TotalCount != 0 || len(review.Tasks) != 0 {
		t.Errorf("empty column should report zero rows: %+v", review)
	}
}

func TestTaskItemJSONHidesCredentials(t *testing.T) {
	dbc := testDB(t)

	project := createProject(t, dbc, "Billing API")
	assignee := createUser(t, dbc, "Dana", "dana@example.com", "member")

	if err := dbc.Model(&models.User{}).Where("id = ?", assignee.ID).Updates(map[string]interface{}{
		"password_hash":      "$2a$10$stored-hash",
		"encrypted_password": "aabb:ccdd",
	}).Error; err != nil {
		t.Fatalf("failed to store credentials: %v", err)
	}

	task := createTask(t, dbc, project.ID, "Fix rounding", "todo")
	if err := dbc.Model(&models.Task{}).Where("id = ?", task.ID).
		Update("assignee_id", assignee.ID).Error; err != nil {
		t.Fatalf("failed to assign task: %v", err)
	}

	loaded, err := GetTask(dbc, task.ID)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}

	payload, err := json.Marshal(NewTaskItem(*loaded))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	for _, secret := range []string{"PasswordHash", "EncryptedPassword", "stored-hash", "aabb:ccdd"} {
		if bytes.Contains(payload, []byte(secret)) {
			t.Errorf("task response leaks %q: %s", secret, payload)
		}
	}

	if !bytes.Contains(payload, []byte(`"assignee":{"id":`)) {
		t.Errorf("assignee should be reduced to id/name/email: %s", payload)
	}
}

func TestDecodeLabels(t *testing.T) {
	if got := DecodeLabels(nil); got != nil {
		t.Errorf("expected nil labels for empty payload, got %v", got)
	}

	if got := DecodeLabels([]byte(`["bug","backend"]`)); len(got) != 2 || got[0] != "bug" {
		t.Errorf("unexpected labels: %v", got)
	}

	if got := DecodeLabels([]byte(`{broken`)); got != nil {
		t.Errorf("malformed payload should decode to nil, got %v", got)
	}
}

func TestTaskLabelsRoundTrip(t *testing.T) {
	dbc := testDB(t)

	project := createProject(t, dbc, "Billing API")

	task := models.Task{
		Title:     "Tag me",
		Status:    "todo",
		Priority:  "low",
		ProjectID: project.ID,
		Labels:    datatypes.JSON([]byte(`["bug","urgent"]`)),
	}
	if err := dbc.Create(&task).Error; err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	items, _, err := ListTasks(dbc, project.ID, Options{})
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}

	if len(items[0].Labels) != 2 || items[0].Labels[1] != "urgent" {
		t.Errorf("unexpected labels: %v", items[0].Labels)
	}
}
