package httpapi

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// UserCreateRequest is the body of POST /users.
type UserCreateRequest struct {
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	Description *string `json:"description"`
}

func (r UserCreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(1, 50)),
		validation.Field(&r.Email, validation.Required, validation.Length(1, 100), is.Email),
	)
}

// UserUpdateRequest is the body of PUT /users/{id}. Only fields present in
// the body are applied (merge-patch).
type UserUpdateRequest struct {
	Username    *string `json:"username"`
	Email       *string `json:"email"`
	Description *string `json:"description"`
}

func (r UserUpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.NilOrNotEmpty, validation.Length(1, 50)),
		validation.Field(&r.Email, validation.NilOrNotEmpty, validation.Length(1, 100), is.Email),
	)
}
