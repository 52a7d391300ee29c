package operations

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hairizuan-noorazman/user-admin/apiclient"
	"github.com/hairizuan-noorazman/user-admin/user"
)

// fakeAPI is an in-memory stand-in for the users API that paginates like
// the real server and records every call.
type fakeAPI struct {
	mu     sync.Mutex
	users  []user.User
	nextID int
	calls  []string

	failList   bool
	failRemove bool
	failGet    bool
	message    string
	// listHook, when set, runs before List returns and may block.
	listHook func(ctx context.Context, page int) error
}

func newFakeAPI(n int) *fakeAPI {
	f := &fakeAPI{}
	for i := 0; i < n; i++ {
		f.add(user.CreateData{
			FirstName: fmt.Sprintf("First%d", i+1),
			LastName:  fmt.Sprintf("Last%d", i+1),
			Height:    170,
			Weight:    70,
			Gender:    user.GenderOther,
			Residence: "Somewhere",
			Photo:     "https://example.com/p.jpg",
		})
	}
	return f
}

func (f *fakeAPI) add(d user.CreateData) user.User {
	f.nextID++
	now := time.Now().UTC()
	u := user.User{
		ID:        fmt.Sprintf("u%d", f.nextID),
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Height:    d.Height,
		Weight:    d.Weight,
		Gender:    d.Gender,
		Residence: d.Residence,
		Photo:     d.Photo,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.users = append(f.users, u)
	return u
}

func (f *fakeAPI) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) List(ctx context.Context, page, limit int) apiclient.Result[user.PaginatedResponse[user.User]] {
	f.record(fmt.Sprintf("list %d %d", page, limit))
	if f.listHook != nil {
		if err := f.listHook(ctx, page); err != nil {
			return apiclient.Result[user.PaginatedResponse[user.User]]{Message: apiclient.MsgFetchUsersFailed}
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failList {
		return apiclient.Result[user.PaginatedResponse[user.User]]{Message: f.message}
	}

	total := len(f.users)
	totalPages := (total + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return apiclient.Result[user.PaginatedResponse[user.User]]{
		Success: true,
		Data: user.PaginatedResponse[user.User]{
			Data:       append([]user.User{}, f.users[start:end]...),
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: totalPages,
		},
	}
}

func (f *fakeAPI) GetByID(ctx context.Context, id string) apiclient.Result[user.User] {
	f.record("get " + id)
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.failGet {
		for _, u := range f.users {
			if u.ID == id {
				return apiclient.Result[user.User]{Success: true, Data: u}
			}
		}
	}
	return apiclient.Result[user.User]{Message: apiclient.MsgFetchUserFailed}
}

func (f *fakeAPI) Create(ctx context.Context, data user.CreateData) apiclient.Result[user.User] {
	f.record("create")
	f.mu.Lock()
	defer f.mu.Unlock()
	return apiclient.Result[user.User]{Success: true, Data: f.add(data)}
}

func (f *fakeAPI) Update(ctx context.Context, data user.UpdateData) apiclient.Result[user.User] {
	f.record("update " + data.ID)
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, u := range f.users {
		if u.ID == data.ID {
			updated := u
			updated.FirstName = data.FirstName
			updated.LastName = data.LastName
			updated.Height = data.Height
			updated.Weight = data.Weight
			updated.Gender = data.Gender
			updated.Residence = data.Residence
			updated.Photo = data.Photo
			updated.UpdatedAt = time.Now().UTC()
			f.users[i] = updated
			return apiclient.Result[user.User]{Success: true, Data: updated}
		}
	}
	return apiclient.Result[user.User]{Message: apiclient.MsgUpdateFailed}
}

func (f *fakeAPI) Remove(ctx context.Context, id string) apiclient.Result[struct{}] {
	f.record("remove " + id)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failRemove {
		return apiclient.Result[struct{}]{Message: apiclient.MsgDeleteFailed}
	}
	for i, u := range f.users {
		if u.ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return apiclient.Result[struct{}]{Success: true, Message: apiclient.MsgDeleted}
		}
	}
	return apiclient.Result[struct{}]{Message: apiclient.MsgDeleteFailed}
}
