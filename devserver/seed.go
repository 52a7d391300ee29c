package devserver

import (
	"context"
	"fmt"

	"github.com/hairizuan-noorazman/user-admin/user"
)

// SampleUsers returns the records loaded by Seed.
func SampleUsers() []user.CreateData {
	return []user.CreateData{
		{FirstName: "John", LastName: "Doe", Height: 180, Weight: 75, Gender: user.GenderMale, Residence: "New York, USA",
			Photo: "https://images.pexels.com/photos/220453/pexels-photo-220453.jpeg?auto=compress&cs=tinysrgb&w=400"},
		{FirstName: "Jane", LastName: "Smith", Height: 165, Weight: 60, Gender: user.GenderFemale, Residence: "London, UK",
			Photo: "https://images.pexels.com/photos/415829/pexels-photo-415829.jpeg?auto=compress&cs=tinysrgb&w=400"},
		{FirstName: "Mike", LastName: "Johnson", Height: 175, Weight: 80, Gender: user.GenderMale, Residence: "Toronto, Canada",
			Photo: "https://images.pexels.com/photos/1222271/pexels-photo-1222271.jpeg?auto=compress&cs=tinysrgb&w=400"},
		{FirstName: "Sarah", LastName: "Wilson", Height: 170, Weight: 65, Gender: user.GenderFemale, Residence: "Sydney, Australia",
			Photo: "https://images.pexels.com/photos/774909/pexels-photo-774909.jpeg?auto=compress&cs=tinysrgb&w=400"},
		{FirstName: "David", LastName: "Brown", Height: 182, Weight: 85, Gender: user.GenderMale, Residence: "Berlin, Germany",
			Photo: "https://images.pexels.com/photos/697509/pexels-photo-697509.jpeg?auto=compress&cs=tinysrgb&w=400"},
	}
}

// Seed loads SampleUsers into an empty store. It returns how many records
// were created; a store that already has users is left alone.
func Seed(ctx context.Context, store Store) (int, error) {
	_, total, err := store.List(ctx, 1, 0)
	if err != nil {
		return 0, err
	}
	if total > 0 {
		return 0, nil
	}

	for i, d := range SampleUsers() {
		if _, err := store.Create(ctx, d); err != nil {
			return i, fmt.Errorf("failed to seed user %d: %w", i+1, err)
		}
	}
	return len(SampleUsers()), nil
}
