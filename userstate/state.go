// Package userstate holds the single in-memory state of the user manager and
// the pure transition function that advances it.
package userstate

import "github.com/hairizuan-noorazman/user-admin/user"

// DefaultLimit is the page size used before the first fetch.
const DefaultLimit = 10

// Pagination mirrors the metadata of the last fetched page.
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	Total       int `json:"total"`
	Limit       int `json:"limit"`
}

// State is the whole client-side view of user records.
type State struct {
	Users       []user.User `json:"users"`
	CurrentUser *user.User  `json:"currentUser,omitempty"`
	Loading     bool        `json:"loading"`
	// Error is empty when there is no error to show.
	Error      string     `json:"error,omitempty"`
	Pagination Pagination `json:"pagination"`
}

// InitialState returns the state before any intent has run.
func InitialState() State {
	return State{
		Users: []user.User{},
		Pagination: Pagination{
			CurrentPage: 1,
			TotalPages:  1,
			Total:       0,
			Limit:       DefaultLimit,
		},
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	out.Users = append([]user.User(nil), s.Users...)
	if out.Users == nil {
		out.Users = []user.User{}
	}
	if s.CurrentUser != nil {
		cu := *s.CurrentUser
		out.CurrentUser = &cu
	}
	return out
}

// HasError reports whether an error message is set.
func (s State) HasError() bool {
	return s.Error != ""
}
