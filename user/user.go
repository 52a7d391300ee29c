package user

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidGender is returned when a gender value is not one of the
// enumerated values.
var ErrInvalidGender = errors.New("gender must be one of male, female, other")

// Gender is the enumerated gender of a user record.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Genders lists the accepted gender values in display order.
var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

// Valid reports whether g is one of the enumerated values.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// ParseGender converts s, case-insensitively, into a Gender.
func ParseGender(s string) (Gender, error) {
	g := Gender(strings.ToLower(strings.TrimSpace(s)))
	if !g.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidGender, s)
	}
	return g, nil
}

// User is a user record as returned by the API. ID and the timestamps are
// assigned by the server and never changed by the client.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	FirstName string    `json:"firstName" gorm:"not null"`
	LastName  string    `json:"lastName" gorm:"not null"`
	Height    float64   `json:"height"`
	Weight    float64   `json:"weight"`
	Gender    Gender    `json:"gender" gorm:"size:16;not null"`
	Residence string    `json:"residence" gorm:"not null"`
	Photo     string    `json:"photo" gorm:"size:2048"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FullName returns "firstName lastName".
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Data returns the editable attributes of u.
func (u User) Data() CreateData {
	return CreateData{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Height:    u.Height,
		Weight:    u.Weight,
		Gender:    u.Gender,
		Residence: u.Residence,
		Photo:     u.Photo,
	}
}

// CreateData is the payload for creating a user.
type CreateData struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Height    float64 `json:"height"`
	Weight    float64 `json:"weight"`
	Gender    Gender  `json:"gender"`
	Residence string  `json:"residence"`
	Photo     string  `json:"photo"`
}

// WithID returns the full-replace update payload for the user with id.
func (d CreateData) WithID(id string) UpdateData {
	return UpdateData{ID: id, CreateData: d}
}

// UpdateData is the payload for a full-record update.
type UpdateData struct {
	ID string `json:"id"`
	CreateData
}

// PaginatedResponse is one page of a list query.
type PaginatedResponse[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}
