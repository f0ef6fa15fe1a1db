package query

import (
	"testing"

	"github.com/taskdeck-dev/taskdeck/internal/models"
)

func TestListUsersRoleAndStatusFilters(t *testing.T) {
	dbc := testDB(t)

	createUser(t, dbc, "Dana", "dana@example.com", "member")
	eli := createUser(t, dbc, "Eli", "eli@example.com", "member")
	createUser(t, dbc, "Root", "root@example.com", "admin")

	if err := dbc.Model(&models.User{}).Where("id = ?", eli.ID).Update("status", "inactive").Error; err != nil {
		t.Fatalf("failed to deactivate user: %v", err)
	}

	items, total, err := ListUsers(dbc, UserOptions{Role: "member"})
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if total != 2 {
		t.Errorf("expected 2 members, got %d", total)
	}

	opts := UserOptions{Role: "member"}
	opts.Status = "active"
	items, total, err = ListUsers(dbc, opts)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if total != 1 || items[0].Name != "Dana" {
		t.Errorf("combined filters returned wrong rows: total=%d", total)
	}
}

func TestListUsersExcludesSeededAdmin(t *testing.T) {
	dbc := testDB(t)

	createUser(t, dbc, "Dana", "dana@example.com", "member")
	createUser(t, dbc, "Root", "root@example.com", "admin")

	_, total, err := ListUsers(dbc, UserOptions{ExcludeEmail: "root@example.com"})
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}

	if total != 1 {
		t.Errorf("expected the seeded admin hidden, got %d rows", total)
	}
}

func TestListUsersSearchNameOrEmail(t *testing.T) {
	dbc := testDB(t)

	createUser(t, dbc, "Dana", "dana@example.com", "member")
	createUser(t, dbc, "Eli", "eli@corp.io", "member")

	opts := UserOptions{}
	opts.Search = "CORP"
	items, total, err := ListUsers(dbc, opts)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if total != 1 || items[0].Name != "Eli" {
		t.Errorf("email search failed: total=%d", total)
	}

	opts.Search = "dan"
	_, total, err = ListUsers(dbc, opts)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if total != 1 {
		t.Errorf("name search failed: total=%d", total)
	}
}
