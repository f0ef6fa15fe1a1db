package query

import (
	"time"

	"github.com/taskdeck-dev/taskdeck/internal/models"
	"gorm.io/gorm"
)

type TasksCount struct {
	Total     int64 `json:"total"`
	Completed int64 `json:"completed"`
}

type ProjectItem struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	StartDate   string     `json:"startDate"`
	EndDate     string     `json:"endDate"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	TasksCount  TasksCount `json:"tasksCount"`
	Progress    float64    `json:"progress"`
}

func projectFilters(opts Options) []func(*gorm.DB) *gorm.DB {
	return []func(*gorm.DB) *gorm.DB{
		filterExact("projects.status", opts.Status),
		filterExact("projects.priority", opts.Priority),
		filterSearch("projects.name", opts.Search),
	}
}

// ListProjects returns the admin-scoped project page. Each row is
// augmented with its task completion counts and a progress percentage,
// computed against the tasks table at query time.
func ListProjects(dbc *gorm.DB, opts Options) ([]ProjectItem, int64, error) {
	opts = opts.normalized()
	filters := projectFilters(opts)

	var total int64
	if err := dbc.Model(&models.Project{}).Scopes(filters...).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []models.Project
	if err := dbc.Model(&models.Project{}).Scopes(filters...).
		Order("projects.created_at DESC").
		Offset(opts.Offset).
		Limit(opts.Limit).
		Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	items, err := buildProjectItems(dbc, projects)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// ListMemberProjects is the member-scoped variant: only projects where
// the acting user holds a membership row are visible, and the total
// count is restricted identically.
func ListMemberProjects(dbc *gorm.DB, userID uint, opts Options) ([]ProjectItem, int64, error) {
	opts = opts.normalized()
	filters := projectFilters(opts)

	membership := func(tx *gorm.DB) *gorm.DB {
		return tx.Joins("JOIN project_members ON project_members.project_id = projects.id AND project_members.user_id = ? AND project_members.deleted_at IS NULL", userID)
	}

	var total int64
	if err := dbc.Model(&models.Project{}).Scopes(membership).Scopes(filters...).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []models.Project
	if err := dbc.Model(&models.Project{}).Scopes(membership).Scopes(filters...).
		Order("projects.created_at DESC").
		Offset(opts.Offset).
		Limit(opts.Limit).
		Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	items, err := buildProjectItems(dbc, projects)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func buildProjectItems(dbc *gorm.DB, projects []models.Project) ([]ProjectItem, error) {
	items := make([]ProjectItem, 0, len(projects))

	for _, project := range projects {
		counts, err := CountProjectTasks(dbc, project.ID)
		if err != nil {
			return nil, err
		}

		items = append(items, ProjectItem{
			ID:          project.ID,
			Name:        project.Name,
			Description: project.Description,
			Status:      project.Status,
			Priority:    project.Priority,
			StartDate:   project.StartDate,
			EndDate:     project.EndDate,
			CreatedAt:   project.CreatedAt,
			UpdatedAt:   project.UpdatedAt,
			TasksCount:  counts,
			Progress:    Progress(counts),
		})
	}

	return items, nil
}

// CountProjectTasks counts a project's tasks and its completed subset.
func CountProjectTasks(dbc *gorm.DB, projectID uint) (TasksCount, error) {
	var counts TasksCount

	if err := dbc.Model(&models.Task{}).
		Where("project_id = ?", projectID).
		Count(&counts.Total).Error; err != nil {
		return counts, err
	}

	if err := dbc.Model(&models.Task{}).
		Where("project_id = ? AND status = ?", projectID, "done").
		Count(&counts.Completed).Error; err != nil {
		return counts, err
	}

	return counts, nil
}

// Progress is completed/total as a percentage, 0 when the project has
// no tasks.
func Progress(counts TasksCount) float64 {
	if counts.Total == 0 {
		return 0
	}
	return float64(counts.Completed) / float64(counts.Total) * 100
}

// FindProjectByName does a case-insensitive exact-name lookup. Project
// name uniqueness is enforced with this check before insert rather than
// by a store-level constraint, so concurrent creates can race.
func FindProjectByName(dbc *gorm.DB, name string) (*models.Project, error) {
	var project models.Project

	err := dbc.Where("LOWER(name) = LOWER(?)", name).First(&project).Error
	if err != nil {
		return nil, err
	}

	return &project, nil
}
