package query

import (
	"testing"

	"github.com/taskdeck-dev/taskdeck/internal/models"
)

func TestCountTasksByStatus(t *testing.T) {
	dbc := testDB(t)

	project := createProject(t, dbc, "Billing API")
	createTask(t, dbc, project.ID, "a", "todo")
	createTask(t, dbc, project.ID, "b", "in_progress")
	createTask(t, dbc, project.ID, "c", "done")
	createTask(t, dbc, project.ID, "d", "done")

	counts, err := CountTasks(dbc)
	if err != nil {
		t.Fatalf("CountTasks failed: %v", err)
	}

	if counts.Total != 4 || counts.Todo != 1 || counts.Progress != 1 || counts.Review != 0 || counts.Done != 2 {
		t.Errorf("unexpected counts: %+v", counts)
	}
}

func TestCountMembersIgnoresAdmins(t *testing.T) {
	dbc := testDB(t)

	createUser(t, dbc, "Dana", "dana@example.com", "member")
	eli := createUser(t, dbc, "Eli", "eli@example.com", "member")
	createUser(t, dbc, "Root", "root@example.com", "admin")

	if err := dbc.Model(&models.User{}).Where("id = ?", eli.ID).Update("status", "inactive").Error; err != nil {
		t.Fatalf("failed to deactivate user: %v", err)
	}

	counts, err := CountMembers(dbc)
	if err != nil {
		t.Fatalf("CountMembers failed: %v", err)
	}

	if counts.Total != 2 || counts.Active != 1 || counts.Inactive != 1 {
		t.Errorf("unexpected counts: %+v", counts)
	}
}

func TestTopProjectsByProgress(t *testing.T) {
	dbc := testDB(t)

	low := createProject(t, dbc, "Low")
	createTask(t, dbc, low.ID, "a", "todo")
	createTask(t, dbc, low.ID, "b", "done")

	high := createProject(t, dbc, "High")
	createTask(t, dbc, high.ID, "c", "done")

	empty := createProject(t, dbc, "Empty")
	_ = empty

	ranked, err := TopProjectsByProgress(dbc, 5)
	if err != nil {
		t.Fatalf("TopProjectsByProgress failed: %v", err)
	}

	if len(ranked) != 3 {
		t.Fatalf("expected 3 ranked projects, got %d", len(ranked))
	}
	if ranked[0].Name != "High" || ranked[0].Progress != 100 {
		t.Errorf("expected High first at 100%%, got %+v", ranked[0])
	}
	if ranked[1].Name != "Low" || ranked[1].Progress != 50 {
		t.Errorf("expected Low second at 50%%, got %+v", ranked[1])
	}
	if ranked[2].Progress != 0 {
		t.Errorf("taskless project ranks at 0%%, got %+v", ranked[2])
	}
}

func TestTopProjectsByProgressLimit(t *testing.T) {
	dbc := testDB(t)

	for _, name := range []string{"A", "B", "C"} {
		createProject(t, dbc, name)
	}

	ranked, err := TopProjectsByProgress(dbc, 2)
	if err != nil {
		t.Fatalf("TopProjectsByProgress failed: %v", err)
	}
	if len(ranked) != 2 {
		t.Errorf("expected the list capped at 2, got %d", len(ranked))
	}
}

func TestBuildChartDataProjectScope(t *testing.T) {
	dbc := testDB(t)

	project := createProject(t, dbc, "Billing API")
	assignee := createUser(t, dbc, "Dana", "dana@example.com", "member")

	done := createTask(t, dbc, project.ID, "a", "done")
	if err := dbc.Model(&models.Task{}).Where("id = ?", done.ID).
		Update("assignee_id", assignee.ID).Error; err != nil {
		t.Fatalf("failed to assign task: %v", err)
	}
	createTask(t, dbc, project.ID, "b", "todo")

	other := createProject(t, dbc, "Other")
	createTask(t, dbc, other.ID, "c", "todo")

	data, err := BuildChartData(dbc, ChartOptions{ProjectID: &project.ID})
	if err != nil {
		t.Fatalf("BuildChartData failed: %v", err)
	}

	if data.ProjectName != "Billing API" || data.TotalProjects != 1 {
		t.Errorf("project scope lost: %+v", data)
	}
	if data.TotalTasks != 2 || data.CompletedTasks != 1 || data.PendingTasks != 1 {
		t.Errorf("unexpected task totals: %+v", data)
	}
	if data.Progress != 50 {
		t.Errorf("expected 50%% progress, got %f", data.Progress)
	}
	if data.TaskByStatus["todo"] != 1 || data.TaskByStatus["done"] != 1 {
		t.Errorf("unexpected status histogram: %v", data.TaskByStatus)
	}
	if data.TotalMembers != 1 {
		t.Errorf("expected 1 distinct assignee, got %d", data.TotalMembers)
	}
}

func TestBuildChartDataAssigneeScope(t *testing.T) {
	dbc := testDB(t)

	project := createProject(t, dbc, "Billing API")
	dana := createUser(t, dbc, "Dana", "dana@example.com", "member")

	mine := createTask(t, dbc, project.ID, "mine", "todo")
	if err := dbc.Model(&models.Task{}).Where("id = ?", mine.ID).
		Update("assignee_id", dana.ID).Error; err != nil {
		t.Fatalf("failed to assign task: %v", err)
	}
	createTask(t, dbc, project.ID, "not mine", "todo")

	data, err := BuildChartData(dbc, ChartOptions{AssigneeID: &dana.ID})
	if err != nil {
		t.Fatalf("BuildChartData failed: %v", err)
	}

	if data.TotalTasks != 1 {
		t.Errorf("assignee scope should see one task, got %d", data.TotalTasks)
	}
}
