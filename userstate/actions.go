package userstate

import "github.com/hairizuan-noorazman/user-admin/user"

// Action is a state transition request. The set of actions is closed: only
// the types in this file implement it.
type Action interface {
	actionType() string
}

// SetLoading sets the loading flag and nothing else.
type SetLoading struct {
	Loading bool
}

// SetError sets or clears the error message and stops loading.
type SetError struct {
	Message string
}

// SetUsers replaces the list and pagination from a freshly fetched page.
type SetUsers struct {
	Page user.PaginatedResponse[user.User]
}

// SetCurrentUser sets the detail/edit target. A nil User clears it.
type SetCurrentUser struct {
	User *user.User
}

// AddUser appends a created user to the in-memory list.
type AddUser struct {
	User user.User
}

// UpdateUser replaces the list entry, and the current user, with matching id.
type UpdateUser struct {
	User user.User
}

// RemoveUser drops the list entry with matching id.
type RemoveUser struct {
	ID string
}

func (SetLoading) actionType() string     { return "SET_LOADING" }
func (SetError) actionType() string       { return "SET_ERROR" }
func (SetUsers) actionType() string       { return "SET_USERS" }
func (SetCurrentUser) actionType() string { return "SET_CURRENT_USER" }
func (AddUser) actionType() string        { return "ADD_USER" }
func (UpdateUser) actionType() string     { return "UPDATE_USER" }
func (RemoveUser) actionType() string     { return "REMOVE_USER" }

// Type returns the action's tag, e.g. "REMOVE_USER", or "" for nil.
func Type(a Action) string {
	if a == nil {
		return ""
	}
	return a.actionType()
}
