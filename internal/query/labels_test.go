package query

import (
	"testing"

	"github.com/taskdeck-dev/taskdeck/internal/models"
)

func TestSyncLabelsDedup(t *testing.T) {
	dbc := testDB(t)

	if err := SyncLabels(dbc, []string{"bug", "backend", ""}); err != nil {
		t.Fatalf("SyncLabels failed: %v", err)
	}

	// Re-syncing an existing label is a silent no-op.
	if err := SyncLabels(dbc, []string{"bug", "frontend"}); err != nil {
		t.Fatalf("SyncLabels failed on resync: %v", err)
	}

	var count int64
	if err := dbc.Model(&models.Label{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count labels: %v", err)
	}

	if count != 3 {
		t.Errorf("expected 3 distinct labels, got %d", count)
	}
}

func TestSyncLabelsEmpty(t *testing.T) {
	dbc := testDB(t)

	if err := SyncLabels(dbc, nil); err != nil {
		t.Fatalf("SyncLabels(nil) failed: %v", err)
	}
	if err := SyncLabels(dbc, []string{""}); err != nil {
		t.Fatalf("SyncLabels on blank names failed: %v", err)
	}

	var count int64
	if err := dbc.Model(&models.Label{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count labels: %v", err)
	}
	if count != 0 {
		t.Errorf("expected empty catalog, got %d rows", count)
	}
}

func TestListLabelsSearch(t *testing.T) {
	dbc := testDB(t)

	if err := SyncLabels(dbc, []string{"bug", "backend", "design"}); err != nil {
		t.Fatalf("SyncLabels failed: %v", err)
	}

	items, total, err := ListLabels(dbc, Options{Search: "b"})
	if err != nil {
		t.Fatalf("ListLabels failed: %v", err)
	}

	if total != 2 || len(items) != 2 {
		t.Errorf("expected 2 labels matching, got total=%d len=%d", total, len(items))
	}
}
