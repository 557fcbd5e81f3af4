package peers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/anjiri1684/workhub/models"
)

type ProjectClient struct {
	client *Client
}

func NewProjectClient(c *Client) *ProjectClient { return &ProjectClient{client: c} }

func (p *ProjectClient) GetProject(ctx context.Context, projectID string) (*models.Project, error) {
	var project models.Project
	if err := p.client.Do(ctx, http.MethodGet, "/projects/"+url.PathEscape(projectID), nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

type TaskClient struct {
	client *Client
}

func NewTaskClient(c *Client) *TaskClient { return &TaskClient{client: c} }

func (t *TaskClient) GetTask(ctx context.Context, taskID string) (*models.Task, error) {
	var task models.Task
	if err := t.client.Do(ctx, http.MethodGet, "/tasks/"+url.PathEscape(taskID), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}
