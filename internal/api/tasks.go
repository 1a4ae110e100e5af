package api

import (
	"context"
	"fmt"

	"github.com/aharoni/caseboard/internal/model"
)

// ListTasks retrieves all tasks visible to the session.
func (c *Client) ListTasks(ctx context.Context) ([]model.Task, error) {
	var dtos []taskDTO
	if err := c.get(ctx, "/tasks", &dtos); err != nil {
		return nil, err
	}

	tasks := make([]model.Task, 0, len(dtos))
	for _, d := range dtos {
		t, err := d.toModel()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// ListTaskTypes retrieves the task type catalog.
func (c *Client) ListTaskTypes(ctx context.Context) ([]model.TaskType, error) {
	var dtos []taskTypeDTO
	if err := c.get(ctx, "/task-types", &dtos); err != nil {
		return nil, err
	}

	types := make([]model.TaskType, 0, len(dtos))
	for _, d := range dtos {
		types = append(types, d.toModel())
	}
	return types, nil
}

// CreateTask creates a new task.
func (c *Client) CreateTask(ctx context.Context, req TaskRequest) error {
	return c.post(ctx, "/tasks", req, nil)
}

// UpdateTask updates the mutable fields of an existing task.
func (c *Client) UpdateTask(ctx context.Context, id string, req TaskRequest) error {
	return c.put(ctx, "/tasks/"+id, req, nil)
}

// UpdateTaskStatus updates only the status of a task.
func (c *Client) UpdateTaskStatus(ctx context.Context, id, status string) error {
	body := struct {
		Status string `json:"status"`
	}{Status: status}
	return c.put(ctx, fmt.Sprintf("/tasks/%s/status", id), body, nil)
}

// DeleteTask deletes a task. When reason is non-empty it is sent with the
// delete command; the server uses it to cascade the removal of the pending
// user record behind a rejected registration.
func (c *Client) DeleteTask(ctx context.Context, id, reason string) error {
	if reason == "" {
		return c.delete(ctx, "/tasks/"+id, nil)
	}
	body := struct {
		Reason string `json:"reason"`
	}{Reason: reason}
	return c.delete(ctx, "/tasks/"+id, body)
}
