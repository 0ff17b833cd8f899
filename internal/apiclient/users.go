package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"erp-console/internal/models"
)

func userQuery(f models.UserFilter) url.Values {
	q := url.Values{}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Role != "" {
		q.Set("role", string(f.Role))
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	return q
}

func (c *Client) ListUsers(ctx context.Context, f models.UserFilter) (models.UserPage, error) {
	var out models.UserPage
	err := c.do(ctx, http.MethodGet, "/users", userQuery(f), nil, &out)
	return out, err
}

func (c *Client) GetUser(ctx context.Context, id string) (models.User, error) {
	var out userEnvelope
	err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, nil, &out)
	return out.User, err
}

func (c *Client) CreateUser(ctx context.Context, in models.UserInput) (models.User, error) {
	var out userEnvelope
	err := c.do(ctx, http.MethodPost, "/users", nil, in, &out)
	return out.User, err
}

func (c *Client) UpdateUser(ctx context.Context, id string, in models.UserInput) (models.User, error) {
	var out userEnvelope
	err := c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(id), nil, in, &out)
	return out.User, err
}

type toggleEnvelope struct {
	User   *models.User `json:"user"`
	Status *bool        `json:"status"`
}

// ToggleUserStatus flips the user's active flag and returns the user as the
// server now sees it. Servers that answer with only {"status": bool} get a
// User carrying just the id and status. known is false when the response
// told nothing about the new state.
func (c *Client) ToggleUserStatus(ctx context.Context, id string) (u models.User, known bool, err error) {
	var out toggleEnvelope
	if err := c.do(ctx, http.MethodPatch, "/users/"+url.PathEscape(id)+"/toggle-status", nil, nil, &out); err != nil {
		return models.User{}, false, err
	}
	switch {
	case out.User != nil:
		return *out.User, true, nil
	case out.Status != nil:
		return models.User{ID: id, Status: *out.Status}, true, nil
	}
	return models.User{ID: id}, false, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil, nil)
}
