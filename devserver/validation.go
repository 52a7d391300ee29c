package devserver

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hairizuan-noorazman/user-admin/user"
)

// userRequest is the request body of create and update calls. ID is only
// present on updates and must match the path when set.
type userRequest struct {
	ID        string  `json:"id,omitempty"`
	FirstName string  `json:"firstName" validate:"required,min=2"`
	LastName  string  `json:"lastName" validate:"required,min=2"`
	Height    float64 `json:"height" validate:"required,gte=50,lte=300"`
	Weight    float64 `json:"weight" validate:"required,gte=10,lte=500"`
	Gender    string  `json:"gender" validate:"required,oneof=male female other"`
	Residence string  `json:"residence" validate:"required,min=3"`
	Photo     string  `json:"photo" validate:"required,url"`
}

func (r *userRequest) normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Gender = strings.ToLower(strings.TrimSpace(r.Gender))
	r.Residence = strings.TrimSpace(r.Residence)
	r.Photo = strings.TrimSpace(r.Photo)
}

func (r userRequest) data() user.CreateData {
	return user.CreateData{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Height:    r.Height,
		Weight:    r.Weight,
		Gender:    user.Gender(r.Gender),
		Residence: r.Residence,
		Photo:     r.Photo,
	}
}

// requestValidator wraps go-playground validator and reports fields by their
// JSON names.
type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &requestValidator{validate: v}
}

// check returns nil, or an error whose message lists every failing field.
func (v *requestValidator) check(req userRequest) error {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, msgForTag(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func msgForTag(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	default:
		return fmt.Sprintf("%s failed validation for tag: %s", field, fe.Tag())
	}
}
