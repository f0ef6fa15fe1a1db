package reactions

import (
	"path/filepath"
	"testing"

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

	if err := dbc.AutoMigrate(&models.User{}, &models.CommentReaction{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return dbc
}

func countReactions(t *testing.T, dbc *gorm.DB, commentID uint) int64 {
	t.Helper()

	var count int64
	if err := dbc.Model(&models.CommentReaction{}).Where("comment_id = ?", commentID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count reactions: %v", err)
	}
	return count
}

func TestToggleAddDeleteReAdd(t *testing.T) {
	dbc := testDB(t)

	action, err := Toggle(dbc, 1, 7, "👍")
	if err != nil {
		t.Fatalf("first toggle failed: %v", err)
	}
	if action != ActionAdded {
		t.Errorf("expected %q, got %q", ActionAdded, action)
	}
	if countReactions(t, dbc, 1) != 1 {
		t.Error("expected one reaction row after add")
	}

	action, err = Toggle(dbc, 1, 7, "👍")
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if action != ActionDeleted {
		t.Errorf("expected %q, got %q", ActionDeleted, action)
	}
	if countReactions(t, dbc, 1) != 0 {
		t.Error("expected no reaction rows after delete")
	}

	// Re-adding after delete must not trip the unique index.
	action, err = Toggle(dbc, 1, 7, "👍")
	if err != nil {
		t.Fatalf("re-add toggle failed: %v", err)
	}
	if action != ActionAdded {
		t.Errorf("expected %q, got %q", ActionAdded, action)
	}
}

func TestToggleUpdateInPlace(t *testing.T) {
	dbc := testDB(t)

	if _, err := Toggle(dbc, 1, 7, "👍"); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	action, err := Toggle(dbc, 1, 7, "🎉")
	if err != nil {
		t.Fatalf("update toggle failed: %v", err)
	}
	if action != ActionUpdated {
		t.Errorf("expected %q, got %q", ActionUpdated, action)
	}

	var row models.CommentReaction
	if err := dbc.Where("comment_id = ? AND user_id = ?", 1, 7).First(&row).Error; err != nil {
		t.Fatalf("failed to load reaction: %v", err)
	}
	if row.Reaction != "🎉" {
		t.Errorf("expected overwritten reaction, got %q", row.Reaction)
	}
	if countReactions(t, dbc, 1) != 1 {
		t.Error("update must not create a second row")
	}
}

func TestToggleIndependentUsers(t *testing.T) {
	dbc := testDB(t)

	if _, err := Toggle(dbc, 1, 7, "👍"); err != nil {
		t.Fatalf("first user toggle failed: %v", err)
	}
	if _, err := Toggle(dbc, 1, 8, "👍"); err != nil {
		t.Fatalf("second user toggle failed: %v", err)
	}

	if countReactions(t, dbc, 1) != 2 {
		t.Error("each user holds an independent slot")
	}
}
