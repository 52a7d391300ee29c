package userstate

import "github.com/hairizuan-noorazman/user-admin/user"

// Reduce returns the state that results from applying a to s. It is pure: s
// is never modified and the returned state shares no slices with it.
//
// RemoveUser leaves pagination alone; correcting it is the caller's job, by
// fetching the right page again.
func Reduce(s State, a Action) State {
	next := s.Clone()

	switch act := a.(type) {
	case SetLoading:
		next.Loading = act.Loading

	case SetError:
		next.Error = act.Message
		next.Loading = false

	case SetUsers:
		next.Users = append([]user.User{}, act.Page.Data...)
		next.Pagination = Pagination{
			CurrentPage: act.Page.Page,
			TotalPages:  act.Page.TotalPages,
			Total:       act.Page.Total,
			Limit:       act.Page.Limit,
		}
		next.Loading = false
		next.Error = ""

	case SetCurrentUser:
		if act.User != nil {
			cu := *act.User
			next.CurrentUser = &cu
		} else {
			next.CurrentUser = nil
		}
		next.Loading = false
		next.Error = ""

	case AddUser:
		// May push the list past Pagination.Limit until the next fetch.
		next.Users = append(next.Users, act.User)
		next.Loading = false
		next.Error = ""

	case UpdateUser:
		for i := range next.Users {
			if next.Users[i].ID == act.User.ID {
				next.Users[i] = act.User
			}
		}
		if next.CurrentUser != nil && next.CurrentUser.ID == act.User.ID {
			cu := act.User
			next.CurrentUser = &cu
		}
		next.Loading = false
		next.Error = ""

	case RemoveUser:
		kept := next.Users[:0]
		for _, u := range next.Users {
			if u.ID != act.ID {
				kept = append(kept, u)
			}
		}
		next.Users = kept
		next.Loading = false
		next.Error = ""

	default:
		return s
	}

	return next
}
