package user

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validData() CreateData {
	return CreateData{
		FirstName: "Sarah",
		LastName:  "Wilson",
		Height:    170,
		Weight:    65,
		Gender:    GenderFemale,
		Residence: "Sydney, Australia",
		Photo:     "https://x.com/p.jpg",
	}
}

func TestValidate_Valid(t *testing.T) {
	errs := Validate(validData())
	assert.True(t, errs.Valid())
	assert.NoError(t, errs.Err())
}

func TestValidate_Fields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CreateData)
		field   string
		message string
	}{
		{"first name too short", func(d *CreateData) { d.FirstName = "A" }, "firstName", "First name must be at least 2 characters"},
		{"first name blank", func(d *CreateData) { d.FirstName = "   " }, "firstName", "First name is required"},
		{"first name trimmed too short", func(d *CreateData) { d.FirstName = " A " }, "firstName", "First name must be at least 2 characters"},
		{"last name missing", func(d *CreateData) { d.LastName = "" }, "lastName", "Last name is required"},
		{"last name too short", func(d *CreateData) { d.LastName = "B" }, "lastName", "Last name must be at least 2 characters"},
		{"height zero", func(d *CreateData) { d.Height = 0 }, "height", "Height must be a positive number"},
		{"height negative", func(d *CreateData) { d.Height = -5 }, "height", "Height must be a positive number"},
		{"height NaN", func(d *CreateData) { d.Height = math.NaN() }, "height", "Height must be a positive number"},
		{"height too large", func(d *CreateData) { d.Height = 301 }, "height", "Height must be between 50 and 300 cm"},
		{"height too small", func(d *CreateData) { d.Height = 49.9 }, "height", "Height must be between 50 and 300 cm"},
		{"weight zero", func(d *CreateData) { d.Weight = 0 }, "weight", "Weight must be a positive number"},
		{"weight too large", func(d *CreateData) { d.Weight = 500.5 }, "weight", "Weight must be between 10 and 500 kg"},
		{"weight too small", func(d *CreateData) { d.Weight = 9 }, "weight", "Weight must be between 10 and 500 kg"},
		{"gender missing", func(d *CreateData) { d.Gender = "" }, "gender", "Gender is required"},
		{"gender unknown", func(d *CreateData) { d.Gender = "robot" }, "gender", "Gender is required"},
		{"residence missing", func(d *CreateData) { d.Residence = " " }, "residence", "Residence is required"},
		{"residence too short", func(d *CreateData) { d.Residence = "NY" }, "residence", "Residence must be at least 3 characters"},
		{"photo missing", func(d *CreateData) { d.Photo = "" }, "photo", "Photo URL is required"},
		{"photo not a url", func(d *CreateData) { d.Photo = "not-a-url" }, "photo", "Please enter a valid URL"},
		{"photo scheme only", func(d *CreateData) { d.Photo = "http://" }, "photo", "Please enter a valid URL"},
		{"photo bad escape", func(d *CreateData) { d.Photo = "http://x.com/%zz" }, "photo", "Please enter a valid URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validData()
			tt.mutate(&d)

			errs := Validate(d)
			assert.Len(t, errs, 1)
			assert.Equal(t, tt.message, errs[tt.field])
		})
	}
}

func TestValidate_BoundariesAccepted(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateData)
	}{
		{"first name two chars", func(d *CreateData) { d.FirstName = "Al" }},
		{"height 50", func(d *CreateData) { d.Height = 50 }},
		{"height 300", func(d *CreateData) { d.Height = 300 }},
		{"weight 10", func(d *CreateData) { d.Weight = 10 }},
		{"weight 500", func(d *CreateData) { d.Weight = 500 }},
		{"residence three chars", func(d *CreateData) { d.Residence = "Rome"[:3] }},
		{"multibyte name", func(d *CreateData) { d.FirstName = "Łó" }},
		{"file url", func(d *CreateData) { d.Photo = "file:///var/photos/a.jpg" }},
		{"photo with surrounding spaces", func(d *CreateData) { d.Photo = "  https://x.com/p.jpg " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validData()
			tt.mutate(&d)
			assert.Empty(t, Validate(d))
		})
	}
}

func TestValidate_EmptyRecordReportsEveryField(t *testing.T) {
	errs := Validate(CreateData{})
	assert.Equal(t, []string{"firstName", "gender", "height", "lastName", "photo", "residence", "weight"}, errs.Fields())
}

func TestFieldErrors_Error(t *testing.T) {
	errs := Validate(CreateData{FirstName: "A", LastName: "Doe", Height: 170, Weight: 70, Gender: GenderMale, Residence: "Paris", Photo: "nope"})
	err := errs.Err()

	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "validation failed: firstName: First name must be at least 2 characters; photo: Please enter a valid URL", err.Error())
}
