package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/hairizuan-noorazman/user-admin/user"
	"gorm.io/gorm"
)

// NewUser returns a valid user numbered n. Creation times increase with n so
// list order is predictable.
func NewUser(n int) user.User {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(n) * time.Minute)
	return user.User{
		ID:        fmt.Sprintf("00000000-0000-0000-0000-%012d", n),
		FirstName: fmt.Sprintf("First%d", n),
		LastName:  fmt.Sprintf("Last%d", n),
		Height:    170,
		Weight:    70,
		Gender:    user.GenderOther,
		Residence: fmt.Sprintf("City %d", n),
		Photo:     fmt.Sprintf("https://example.com/photos/%d.jpg", n),
		CreatedAt: created,
		UpdatedAt: created,
	}
}

// CreateUsers inserts users 1..n directly into db and returns them.
func CreateUsers(t *testing.T, db *gorm.DB, n int) []user.User {
	t.Helper()

	users := make([]user.User, 0, n)
	for i := 1; i <= n; i++ {
		u := NewUser(i)
		if err := db.Create(&u).Error; err != nil {
			t.Fatalf("failed to create fixture: %v", err)
		}
		users = append(users, u)
	}
	return users
}
