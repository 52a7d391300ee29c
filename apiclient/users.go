package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hairizuan-noorazman/user-admin/user"
)

// UsersPath is the users resource path relative to the API root.
const UsersPath = "/users"

// Failure and success messages surfaced to callers.
const (
	MsgFetchUsersFailed = "Failed to fetch users"
	MsgFetchUserFailed  = "Failed to fetch user"
	MsgCreateFailed     = "Failed to create user"
	MsgUpdateFailed     = "Failed to update user"
	MsgDeleteFailed     = "Failed to delete user"
	MsgDeleted          = "User deleted successfully"
)

// List fetches one page of users. Totals are taken from the server as-is.
func (c *Client) List(ctx context.Context, page, limit int) Result[user.PaginatedResponse[user.User]] {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	res := call[user.PaginatedResponse[user.User]](ctx, c, http.MethodGet, UsersPath, query, nil, MsgFetchUsersFailed)
	if res.Success && res.Data.Data == nil {
		res.Data.Data = []user.User{}
	}
	return res
}

// GetByID fetches a single user. A missing user is reported as a failure.
func (c *Client) GetByID(ctx context.Context, id string) Result[user.User] {
	return call[user.User](ctx, c, http.MethodGet, userPath(id), nil, nil, MsgFetchUserFailed)
}

// Create creates a user; the server assigns the id and timestamps.
func (c *Client) Create(ctx context.Context, data user.CreateData) Result[user.User] {
	return call[user.User](ctx, c, http.MethodPost, UsersPath, nil, data, MsgCreateFailed)
}

// Update replaces every editable field of the user identified by data.ID.
func (c *Client) Update(ctx context.Context, data user.UpdateData) Result[user.User] {
	return call[user.User](ctx, c, http.MethodPatch, userPath(data.ID), nil, data, MsgUpdateFailed)
}

// Remove deletes a user. Success carries no payload.
func (c *Client) Remove(ctx context.Context, id string) Result[struct{}] {
	if _, err := c.do(ctx, http.MethodDelete, userPath(id), nil, nil); err != nil {
		c.logFailure(ctx, http.MethodDelete, userPath(id), err)
		return Result[struct{}]{Message: MsgDeleteFailed}
	}
	return Result[struct{}]{Success: true, Message: MsgDeleted}
}

func userPath(id string) string {
	return UsersPath + "/" + url.PathEscape(id)
}
