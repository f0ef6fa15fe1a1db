package query

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/taskdeck-dev/taskdeck/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")

	dbc, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = dbc.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Task{},
		&models.Label{},
		&models.Activity{},
		&models.Comment{},
		&models.CommentReaction{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return dbc
}

func createUser(t *testing.T, dbc *gorm.DB, name, email, role string) models.User {
	t.Helper()

	user := models.User{
		Name:         name,
		Email:        email,
		Role:         role,
		Status:       "active",
		PasswordHash: "x",
	}

	if err := dbc.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}

	return user
}

func createProject(t *testing.T, dbc *gorm.DB, name string) models.Project {
	t.Helper()

	project := models.Project{
		Name:     name,
		Status:   "active",
		Priority: "high",
	}

	if err := dbc.Create(&project).Error; err != nil {
		t.Fatalf("failed to create project %s: %v", name, err)
	}

	return project
}

func createTask(t *testing.T, dbc *gorm.DB, projectID uint, title, status string) models.Task {
	t.Helper()

	task := models.Task{
		Title:     title,
		Status:    status,
		Priority:  "low",
		ProjectID: projectID,
	}

	if err := dbc.Create(&task).Error; err != nil {
		t.Fatalf("failed to create task %s: %v", title, err)
	}

	return task
}

func createComment(t *testing.T, dbc *gorm.DB, taskID, userID uint, body string) models.Comment {
	t.Helper()

	comment := models.Comment{TaskID: taskID, UserID: userID, Body: body}

	if err := dbc.Create(&comment).Error; err != nil {
		t.Fatalf("failed to create comment: %v", err)
	}

	return comment
}

// backdate shifts a row's created_at so ordering tests are
// deterministic.
func backdate(t *testing.T, dbc *gorm.DB, model interface{}, id uint, ago time.Duration) {
	t.Helper()

	if err := dbc.Model(model).Where("id = ?", id).
		Update("created_at", time.Now().Add(-ago)).Error; err != nil {
		t.Fatalf("failed to backdate row %d: %v", id, err)
	}
}
