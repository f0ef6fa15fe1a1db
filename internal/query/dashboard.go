package query

import (
	"sort"
	"time"

	"github.com/taskdeck-dev/taskdeck/internal/models"
	"github.com/taskdeck-dev/taskdeck/internal/types"
	"gorm.io/gorm"
)

// Dashboard rollups are computed fresh per request; nothing here is
// cached or incrementally maintained.

type MemberCounts struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
}

type ProjectCounts struct {
	Total     int64 `json:"total"`
	Active    int64 `json:"active"`
	Completed int64 `json:"completed"`
}

type TaskCounts struct {
	Total    int64 `json:"total"`
	Todo     int64 `json:"todo"`
	Progress int64 `json:"progress"`
	Review   int64 `json:"review"`
	Done     int64 `json:"done"`
}

type ProjectProgress struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Progress float64 `json:"progress"`
}

func CountMembers(dbc *gorm.DB) (MemberCounts, error) {
	var counts MemberCounts

	if err := dbc.Model(&models.User{}).
		Where("role = ? AND status = ?", "member", "active").
		Count(&counts.Active).Error; err != nil {
		return counts, err
	}

	if err := dbc.Model(&models.User{}).
		Where("role = ? AND status = ?", "member", "inactive").
		Count(&counts.Inactive).Error; err != nil {
		return counts, err
	}

	counts.Total = counts.Active + counts.Inactive
	return counts, nil
}

func CountProjects(dbc *gorm.DB) (ProjectCounts, error) {
	var counts ProjectCounts

	if err := dbc.Model(&models.Project{}).Count(&counts.Total).Error; err != nil {
		return counts, err
	}

	if err := dbc.Model(&models.Project{}).Where("status = ?", "active").Count(&counts.Active).Error; err != nil {
		return counts, err
	}

	if err := dbc.Model(&models.Project{}).Where("status = ?", "completed").Count(&counts.Completed).Error; err != nil {
		return counts, err
	}

	return counts, nil
}

func CountTasks(dbc *gorm.DB) (TaskCounts, error) {
	var counts TaskCounts

	byStatus := map[string]*int64{
		"todo":        &counts.Todo,
		"in_progress": &counts.Progress,
		"in_review":   &counts.Review,
		"done":        &counts.Done,
	}

	for status, target := range byStatus {
		if err := dbc.Model(&models.Task{}).Where("status = ?", status).Count(target).Error; err != nil {
			return counts, err
		}
	}

	counts.Total = counts.Todo + counts.Progress + counts.Review + counts.Done
	return counts, nil
}

// TopProjectsByProgress ranks projects by completion ratio, highest
// first.
func TopProjectsByProgress(dbc *gorm.DB, limit int) ([]ProjectProgress, error) {
	if limit <= 0 {
		limit = 5
	}

	var projects []models.Project
	if err := dbc.Find(&projects).Error; err != nil {
		return nil, err
	}

	ranked := make([]ProjectProgress, 0, len(projects))
	for _, project := range projects {
		counts, err := CountProjectTasks(dbc, project.ID)
		if err != nil {
			return nil, err
		}

		ranked = append(ranked, ProjectProgress{
			ID:       project.ID,
			Name:     project.Name,
			Progress: Progress(counts),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Progress > ranked[j].Progress
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return ranked, nil
}

func RecentTasks(dbc *gorm.DB, limit int) ([]TaskItem, error) {
	var tasks []models.Task

	if err := dbc.Preload("Assignee").
		Order("created_at DESC").
		Limit(limit).
		Find(&tasks).Error; err != nil {
		return nil, err
	}

	items := make([]TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, NewTaskItem(task))
	}

	return items, nil
}

func RecentMembers(dbc *gorm.DB, limit int) ([]UserItem, error) {
	var users []models.User

	if err := dbc.Where("role = ?", "member").
		Order("created_at DESC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, err
	}

	items := make([]UserItem, 0, len(users))
	for _, user := range users {
		items = append(items, UserItem{
			ID:        user.ID,
			Name:      user.Name,
			Role:      user.Role,
			CreatedAt: user.CreatedAt,
		})
	}

	return items, nil
}

func RecentActivities(dbc *gorm.DB, limit int) ([]ActivityItem, error) {
	var activities []models.Activity

	if err := dbc.Order("created_at DESC").Limit(limit).Find(&activities).Error; err != nil {
		return nil, err
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

	return items, nil
}

// ChartOptions scope the chart rollup. AssigneeID restricts to tasks
// assigned to that user (member scope); ProjectID restricts to one
// project.
type ChartOptions struct {
	StartDate  *time.Time
	EndDate    *time.Time
	ProjectID  *uint
	AssigneeID *uint
}

type ChartData struct {
	ProjectName    string           `json:"projectName,omitempty"`
	TotalProjects  int64            `json:"totalProjects"`
	TotalTasks     int64            `json:"totalTasks"`
	CompletedTasks int64            `json:"completedTasks"`
	PendingTasks   int64            `json:"pendingTasks"`
	Progress       float64          `json:"progress"`
	TaskByStatus   map[string]int64 `json:"taskByStatus"`
	TaskByPriority map[string]int64 `json:"taskByPriority"`
	TotalMembers   int64            `json:"totalMembers"`
}

// BuildChartData computes the parameterized dashboard chart: task
// totals, status and priority histograms, and the distinct-assignee
// count, scoped to one project when requested, across all projects
// otherwise.
func BuildChartData(dbc *gorm.DB, opts ChartOptions) (ChartData, error) {
	data := ChartData{
		TaskByStatus:   make(map[string]int64, len(types.TaskStatuses)),
		TaskByPriority: make(map[string]int64, len(types.Priorities)),
	}

	scope := func(tx *gorm.DB) *gorm.DB {
		if opts.ProjectID != nil {
			tx = tx.Where("project_id = ?", *opts.ProjectID)
		}
		if opts.AssigneeID != nil {
			tx = tx.Where("assignee_id = ?", *opts.AssigneeID)
		}
		if opts.StartDate != nil && opts.EndDate != nil {
			tx = tx.Where("tasks.created_at BETWEEN ? AND ?", *opts.StartDate, *opts.EndDate)
		}
		return tx
	}

	if err := dbc.Model(&models.Task{}).Scopes(scope).Count(&data.TotalTasks).Error; err != nil {
		return data, err
	}

	if err := dbc.Model(&models.Task{}).Scopes(scope).
		Where("status = ?", "done").
		Count(&data.CompletedTasks).Error; err != nil {
		return data, err
	}

	data.PendingTasks = data.TotalTasks - data.CompletedTasks

	if data.TotalTasks > 0 {
		data.Progress = float64(data.CompletedTasks) / float64(data.TotalTasks) * 100
	}

	for _, status := range types.TaskStatuses {
		var count int64
		if err := dbc.Model(&models.Task{}).Scopes(scope).
			Where("status = ?", status).
			Count(&count).Error; err != nil {
			return data, err
		}
		data.TaskByStatus[status] = count
	}

	for _, priority := range types.Priorities {
		var count int64
		if err := dbc.Model(&models.Task{}).Scopes(scope).
			Where("priority = ?", priority).
			Count(&count).Error; err != nil {
			return data, err
		}
		data.TaskByPriority[priority] = count
	}

	if err := dbc.Model(&models.Task{}).Scopes(scope).
		Where("assignee_id IS NOT NULL").
		Distinct("assignee_id").
		Count(&data.TotalMembers).Error; err != nil {
		return data, err
	}

	if opts.ProjectID != nil {
		var project models.Project
		if err := dbc.First(&project, *opts.ProjectID).Error; err != nil {
			return data, err
		}
		data.ProjectName = project.Name
		data.TotalProjects = 1
	} else {
		if err := dbc.Model(&models.Project{}).Count(&data.TotalProjects).Error; err != nil {
			return data, err
		}
	}

	return data, nil
}
