package operations

import "github.com/hairizuan-noorazman/user-admin/userstate"

// TargetPage returns the page to fetch after one user has been deleted from
// the list described by p. It stays on the current page unless that page no
// longer exists, in which case it moves to the new last page; an emptied
// list goes back to page 1.
func TargetPage(p userstate.Pagination) int {
	limit := p.Limit
	if limit <= 0 {
		limit = userstate.DefaultLimit
	}

	newTotal := p.Total - 1
	if newTotal <= 0 {
		return 1
	}

	newTotalPages := (newTotal + limit - 1) / limit
	if p.CurrentPage > newTotalPages {
		return newTotalPages
	}
	if p.CurrentPage < 1 {
		return 1
	}
	return p.CurrentPage
}
