package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"erp-console/internal/models"
)

type tasksEnvelope struct {
	Tasks []models.Task `json:"tasks"`
}

type taskEnvelope struct {
	Task models.Task `json:"task"`
}

func (c *Client) ListTasks(ctx context.Context) ([]models.Task, error) {
	var out tasksEnvelope
	err := c.do(ctx, http.MethodGet, "/tasks", nil, nil, &out)
	return out.Tasks, err
}

func (c *Client) MyTasks(ctx context.Context) ([]models.Task, error) {
	var out tasksEnvelope
	err := c.do(ctx, http.MethodGet, "/tasks/my-tasks", nil, nil, &out)
	return out.Tasks, err
}

func (c *Client) CreateTask(ctx context.Context, in models.TaskInput) (models.Task, error) {
	var out taskEnvelope
	err := c.do(ctx, http.MethodPost, "/tasks", nil, in, &out)
	return out.Task, err
}

func (c *Client) UpdateTaskStatus(ctx context.Context, id string, status models.TaskStatus) (models.Task, error) {
	var out taskEnvelope
	err := c.do(ctx, http.MethodPut, "/tasks/"+url.PathEscape(id), nil, models.TaskStatusUpdate{Status: status}, &out)
	return out.Task, err
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, nil, nil)
}
