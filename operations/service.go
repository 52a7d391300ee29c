// Package operations runs user intents: each one calls the API client and
// records the result in the user store.
package operations

import (
	"context"

	"github.com/hairizuan-noorazman/user-admin/apiclient"
	"github.com/hairizuan-noorazman/user-admin/logger"
	"github.com/hairizuan-noorazman/user-admin/user"
	"github.com/hairizuan-noorazman/user-admin/userstate"
)

// Messages returned in outcomes that do not come from the API client.
const (
	MsgCreated          = "User created successfully"
	MsgUpdated          = "User updated successfully"
	MsgSuperseded       = "Request superseded"
	MsgMissingID        = "User id is required"
	MsgValidationFailed = "Please fix the highlighted fields"
)

// API is the subset of the API client used by Service.
type API interface {
	List(ctx context.Context, page, limit int) apiclient.Result[user.PaginatedResponse[user.User]]
	GetByID(ctx context.Context, id string) apiclient.Result[user.User]
	Create(ctx context.Context, data user.CreateData) apiclient.Result[user.User]
	Update(ctx context.Context, data user.UpdateData) apiclient.Result[user.User]
	Remove(ctx context.Context, id string) apiclient.Result[struct{}]
}

// Outcome tells the caller how an intent ended. Callers should branch on it
// rather than on store contents.
type Outcome struct {
	Success bool
	Message string
	// Errors is set when the intent was rejected by validation before any
	// request was made.
	Errors user.FieldErrors
}

// Service runs intents against one store. A new intent supersedes the one
// still running: its request is cancelled and its result discarded.
//
// Store listeners run while the result is being committed and must not start
// another intent synchronously.
type Service struct {
	api      API
	store    *userstate.Store
	logger   logger.Logger
	inflight inflight
}

// New creates a Service.
func New(api API, store *userstate.Store, log logger.Logger) *Service {
	return &Service{
		api:    api,
		store:  store,
		logger: log.WithField("component", "operations"),
	}
}

// Store returns the store the service writes to.
func (s *Service) Store() *userstate.Store {
	return s.store
}

// FetchUsers loads one page of users into the store.
func (s *Service) FetchUsers(ctx context.Context, page, limit int) Outcome {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = userstate.DefaultLimit
	}

	ctx, token, release := s.inflight.begin(ctx)
	defer release()

	s.store.Dispatch(userstate.SetLoading{Loading: true})
	res := s.api.List(ctx, page, limit)

	return s.finish(ctx, token, "fetch users", res.Success, res.Message, apiclient.MsgFetchUsersFailed, "",
		func() {
			s.store.Dispatch(userstate.SetUsers{Page: res.Data})
		},
		map[string]interface{}{"page": page, "limit": limit})
}

// ChangePage fetches page using the page size currently in the store.
func (s *Service) ChangePage(ctx context.Context, page int) Outcome {
	return s.FetchUsers(ctx, page, s.store.Snapshot().Pagination.Limit)
}

// Refresh fetches the current page again.
func (s *Service) Refresh(ctx context.Context) Outcome {
	p := s.store.Snapshot().Pagination
	return s.FetchUsers(ctx, p.CurrentPage, p.Limit)
}

// FetchUserByID loads one user as the store's current user.
func (s *Service) FetchUserByID(ctx context.Context, id string) Outcome {
	ctx, token, release := s.inflight.begin(ctx)
	defer release()

	s.store.Dispatch(userstate.SetLoading{Loading: true})
	res := s.api.GetByID(ctx, id)

	return s.finish(ctx, token, "fetch user", res.Success, res.Message, apiclient.MsgFetchUserFailed, "",
		func() {
			u := res.Data
			s.store.Dispatch(userstate.SetCurrentUser{User: &u})
		},
		map[string]interface{}{"user_id": id})
}

// CreateUser validates data and, if valid, creates the user and appends it
// to the store's list. Invalid data never reaches the API.
func (s *Service) CreateUser(ctx context.Context, data user.CreateData) Outcome {
	if errs := user.Validate(data); !errs.Valid() {
		return s.rejected(ctx, "create user", errs)
	}

	ctx, token, release := s.inflight.begin(ctx)
	defer release()

	s.store.Dispatch(userstate.SetLoading{Loading: true})
	res := s.api.Create(ctx, data)

	return s.finish(ctx, token, "create user", res.Success, res.Message, apiclient.MsgCreateFailed, MsgCreated,
		func() {
			s.store.Dispatch(userstate.AddUser{User: res.Data})
		},
		map[string]interface{}{"user_id": res.Data.ID})
}

// UpdateUser validates data and, if valid, replaces the user on the server
// and in the store.
func (s *Service) UpdateUser(ctx context.Context, data user.UpdateData) Outcome {
	errs := user.Validate(data.CreateData)
	if data.ID == "" {
		errs["id"] = MsgMissingID
	}
	if !errs.Valid() {
		return s.rejected(ctx, "update user", errs)
	}

	ctx, token, release := s.inflight.begin(ctx)
	defer release()

	s.store.Dispatch(userstate.SetLoading{Loading: true})
	res := s.api.Update(ctx, data)

	return s.finish(ctx, token, "update user", res.Success, res.Message, apiclient.MsgUpdateFailed, MsgUpdated,
		func() {
			s.store.Dispatch(userstate.UpdateUser{User: res.Data})
		},
		map[string]interface{}{"user_id": data.ID})
}

// DeleteUser deletes a user and drops it from the store's list. Pagination
// is left as it was; use DeleteUserAndRepaginate to correct it.
func (s *Service) DeleteUser(ctx context.Context, id string) Outcome {
	ctx, token, release := s.inflight.begin(ctx)
	defer release()

	s.store.Dispatch(userstate.SetLoading{Loading: true})
	res := s.api.Remove(ctx, id)

	return s.finish(ctx, token, "delete user", res.Success, res.Message, apiclient.MsgDeleteFailed, apiclient.MsgDeleted,
		func() {
			s.store.Dispatch(userstate.RemoveUser{ID: id})
		},
		map[string]interface{}{"user_id": id})
}

// DeleteUserAndRepaginate deletes a user and then fetches the page chosen by
// TargetPage, so the list and its pagination come from the server again.
// The returned outcome is the delete's; a failed refetch shows up as the
// store's error.
func (s *Service) DeleteUserAndRepaginate(ctx context.Context, id string) Outcome {
	before := s.store.Snapshot().Pagination

	out := s.DeleteUser(ctx, id)
	if !out.Success {
		return out
	}

	target := TargetPage(before)
	s.logger.Debug(ctx, "repaginating after delete", map[string]interface{}{
		"user_id":      id,
		"current_page": before.CurrentPage,
		"total":        before.Total,
		"target_page":  target,
	})

	s.FetchUsers(ctx, target, before.Limit)
	return out
}

// finish commits the result of an intent if it has not been superseded.
func (s *Service) finish(ctx context.Context, token uint64, intent string, ok bool, message, fallback, successMsg string, onSuccess func(), fields map[string]interface{}) Outcome {
	var out Outcome
	committed := s.inflight.commit(token, func() {
		if ok {
			onSuccess()
			out = Outcome{Success: true, Message: successMsg}
			if message != "" {
				out.Message = message
			}
			return
		}

		if message == "" {
			message = fallback
		}
		s.store.Dispatch(userstate.SetError{Message: message})
		out = Outcome{Message: message}
	})

	if fields == nil {
		fields = map[string]interface{}{}
	}
	fields["intent"] = intent

	if !committed {
		s.logger.Warn(ctx, "intent superseded", fields)
		return Outcome{Message: MsgSuperseded}
	}
	if out.Success {
		s.logger.Info(ctx, intent+" succeeded", fields)
	} else {
		fields["message"] = out.Message
		s.logger.Warn(ctx, intent+" failed", fields)
	}
	return out
}

func (s *Service) rejected(ctx context.Context, intent string, errs user.FieldErrors) Outcome {
	s.logger.Debug(ctx, intent+" rejected by validation", map[string]interface{}{
		"fields": errs.Fields(),
	})
	return Outcome{Message: MsgValidationFailed, Errors: errs}
}
