package userstate

import (
	"strings"

	"github.com/hairizuan-noorazman/user-admin/user"
)

// FilterUsers returns the users whose full name or residence contains term,
// ignoring case. An empty term returns users unchanged.
func FilterUsers(users []user.User, term string) []user.User {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return users
	}

	out := make([]user.User, 0, len(users))
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.FullName()), term) ||
			strings.Contains(strings.ToLower(u.Residence), term) {
			out = append(out, u)
		}
	}
	return out
}
