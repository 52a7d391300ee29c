package user

import (
	"errors"
	"math"
	"net/url"
	"sort"
	"strings"
	"unicode/utf8"
)

// ErrValidation matches any FieldErrors through errors.Is.
var ErrValidation = errors.New("validation failed")

// Height and weight bounds, inclusive.
const (
	MinHeight = 50
	MaxHeight = 300
	MinWeight = 10
	MaxWeight = 500
)

// FieldErrors maps a JSON field name to a human-readable message.
// An empty FieldErrors means the candidate is valid.
type FieldErrors map[string]string

// Valid reports whether there are no field errors.
func (e FieldErrors) Valid() bool {
	return len(e) == 0
}

// Fields returns the failing field names in sorted order.
func (e FieldErrors) Fields() []string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, f := range e.Fields() {
		parts = append(parts, f+": "+e[f])
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

// Is makes errors.Is(err, ErrValidation) true for FieldErrors.
func (e FieldErrors) Is(target error) bool {
	return target == ErrValidation
}

// Err returns e as an error, or nil when e is valid.
func (e FieldErrors) Err() error {
	if e.Valid() {
		return nil
	}
	return e
}

// Validate checks a candidate record and returns one message per failing field.
func Validate(d CreateData) FieldErrors {
	errs := FieldErrors{}

	checkName(errs, "firstName", "First name", d.FirstName)
	checkName(errs, "lastName", "Last name", d.LastName)

	if !positive(d.Height) {
		errs["height"] = "Height must be a positive number"
	} else if d.Height < MinHeight || d.Height > MaxHeight {
		errs["height"] = "Height must be between 50 and 300 cm"
	}

	if !positive(d.Weight) {
		errs["weight"] = "Weight must be a positive number"
	} else if d.Weight < MinWeight || d.Weight > MaxWeight {
		errs["weight"] = "Weight must be between 10 and 500 kg"
	}

	if !d.Gender.Valid() {
		errs["gender"] = "Gender is required"
	}

	residence := strings.TrimSpace(d.Residence)
	if residence == "" {
		errs["residence"] = "Residence is required"
	} else if utf8.RuneCountInString(residence) < 3 {
		errs["residence"] = "Residence must be at least 3 characters"
	}

	photo := strings.TrimSpace(d.Photo)
	if photo == "" {
		errs["photo"] = "Photo URL is required"
	} else if !IsAbsoluteURL(photo) {
		errs["photo"] = "Please enter a valid URL"
	}

	return errs
}

// IsAbsoluteURL reports whether s parses as a URL with a scheme and
// something after it.
func IsAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	if u.Scheme == "" {
		return false
	}
	return u.Host != "" || u.Opaque != "" || u.Path != ""
}

func checkName(errs FieldErrors, field, label, value string) {
	v := strings.TrimSpace(value)
	if v == "" {
		errs[field] = label + " is required"
	} else if utf8.RuneCountInString(v) < 2 {
		errs[field] = label + " must be at least 2 characters"
	}
}

func positive(f float64) bool {
	return !math.IsNaN(f) && f > 0
}
