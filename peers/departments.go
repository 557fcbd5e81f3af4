package peers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/anjiri1684/workhub/models"
)

type DepartmentClient struct {
	client *Client
}

func NewDepartmentClient(c *Client) *DepartmentClient { return &DepartmentClient{client: c} }

func (d *DepartmentClient) GetDepartment(ctx context.Context, departmentID string) (*models.Department, error) {
	var dept models.Department
	if err := d.client.Do(ctx, http.MethodGet, "/departments/"+url.PathEscape(departmentID), nil, &dept); err != nil {
		return nil, err
	}
	return &dept, nil
}

type addUserRequest struct {
	UserID string `json:"user_id"`
}

func (d *DepartmentClient) AddUser(ctx context.Context, departmentID, userID string) error {
	path := "/departments/" + url.PathEscape(departmentID) + "/users"
	return d.client.Do(ctx, http.MethodPost, path, addUserRequest{UserID: userID}, nil)
}
