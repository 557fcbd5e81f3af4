package peers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/anjiri1684/workhub/models"
)

type UserClient struct {
	client *Client
}

func NewUserClient(c *Client) *UserClient { return &UserClient{client: c} }

func (u *UserClient) GetUser(ctx context.Context, userID string) (*models.UserProfile, error) {
	var user models.UserProfile
	if err := u.client.Do(ctx, http.MethodGet, "/users/"+url.PathEscape(userID), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UserClient) CreateAccount(ctx context.Context, req models.CreateAccountRequest) (*models.Account, error) {
	var account models.Account
	if err := u.client.Do(ctx, http.MethodPost, "/api/accounts", req, &account); err != nil {
		return nil, err
	}
	return &account, nil
}
