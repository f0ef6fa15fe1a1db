package query

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/taskdeck-dev/taskdeck/internal/models"
	"github.com/taskdeck-dev/taskdeck/internal/types"
	"gorm.io/gorm"
)

type AssigneeSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type TaskItem struct {
	ID          uint             `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Status      string           `json:"status"`
	Priority    string           `json:"priority"`
	ProjectID   uint             `json:"projectId"`
	Labels      []string         `json:"labels"`
	Assignee    *AssigneeSummary `json:"assignee"`
	StartDate   *time.Time       `json:"startDate"`
	EndDate     *time.Time       `json:"endDate"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// TaskPage is one independently paginated slice of a task listing.
type TaskPage struct {
	Tasks      []TaskItem `json:"tasks"`
	TotalCount int64      `json:"totalCount"`
	NextOffset *int       `json:"nextOffset"`
}

func taskFilters(projectID uint, opts Options) []func(*gorm.DB) *gorm.DB {
	return []func(*gorm.DB) *gorm.DB{
		func(tx *gorm.DB) *gorm.DB { return tx.Where("tasks.project_id = ?", projectID) },
		filterExact("tasks.status", opts.Status),
		filterExact("tasks.priority", opts.Priority),
		filterSearch("tasks.title", opts.Search),
	}
}

// ListTasks returns one page of a project's tasks with the assignee
// resolved to its display fields.
func ListTasks(dbc *gorm.DB, projectID uint, opts Options) ([]TaskItem, int64, error) {
	opts = opts.normalized()
	filters := taskFilters(projectID, opts)

	var total int64
	if err := dbc.Model(&models.Task{}).Scopes(filters...).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tasks []models.Task
	if err := dbc.Model(&models.Task{}).Scopes(filters...).
		Preload("Assignee").
		Order("tasks.created_at DESC").
		Offset(opts.Offset).
		Limit(opts.Limit).
		Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	items := make([]TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, NewTaskItem(task))
	}

	return items, total, nil
}

// ListTasksGrouped runs four parallel sub-queries, one per task status,
// each with its own offset/limit/totalCount/nextOffset. This drives a
// kanban board where every column paginates independently.
func ListTasksGrouped(dbc *gorm.DB, projectID uint, opts Options) (map[string]TaskPage, error) {
	opts = opts.normalized()

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
	)

	pages := make(map[string]TaskPage, len(types.TaskStatuses))

	for _, status := range types.TaskStatuses {
		wg.Add(1)

		go func(status string) {
			defer wg.Done()

			columnOpts := opts
			columnOpts.Status = status

			items, total, err := ListTasks(dbc, projectID, columnOpts)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}

			pages[status] = TaskPage{
				Tasks:      items,
				TotalCount: total,
				NextOffset: NextOffset(columnOpts.Offset, columnOpts.Limit, total),
			}
		}(status)
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	return pages, nil
}

// GetTask loads one task with its assignee resolved.
func GetTask(dbc *gorm.DB, taskID uint) (*models.Task, error) {
	var task models.Task

	if err := dbc.Preload("Assignee").First(&task, taskID).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// NewTaskItem projects a task row onto the response shape. Handlers
// must never serialize the model directly; the preloaded assignee
// carries stored credentials.
func NewTaskItem(task models.Task) TaskItem {
	item := TaskItem{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		ProjectID:   task.ProjectID,
		Labels:      DecodeLabels(task.Labels),
		StartDate:   task.StartDate,
		EndDate:     task.EndDate,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	if task.Assignee != nil {
		item.Assignee = &AssigneeSummary{
			ID:    task.Assignee.ID,
			Name:  task.Assignee.Name,
			Email: task.Assignee.Email,
		}
	}

	return item
}

// DecodeLabels unpacks the stored JSON label array; malformed or empty
// payloads decode to no labels.
func DecodeLabels(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}

	var labels []string
	if err := json.Unmarshal(raw, &labels); err != nil {
		return nil
	}

	return labels
}
