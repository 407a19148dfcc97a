package domain

import "errors"

// Registration and login validation failures. Messages mirror what the API
// surfaces to clients, so handlers return err.Error() directly.
var (
	ErrMissingUsername = errors.New("please provide the username")
	ErrMissingEmail    = errors.New("please provide the email")
	ErrMissingPassword = errors.New("please provide the password")
	ErrInvalidEmail    = errors.New("invalid email")
)

// Registration conflicts. Regular registration hides which field collided;
// admin registration distinguishes them. Email is checked before username,
// so a request colliding on both reports the email conflict.
var (
	ErrAlreadyRegistered  = errors.New("you are already registered")
	ErrEmailRegistered    = errors.New("email is already registered")
	ErrUsernameRegistered = errors.New("username is already registered")
)

// Login and logout failures.
var (
	ErrUserNotFound        = errors.New("user does not exist, please register first")
	ErrIncorrectPassword   = errors.New("incorrect password")
	ErrRefreshTokenMissing = errors.New("refresh token not found")
)

var ErrGroupNotFound = errors.New("group does not exist")

// IsConflict reports whether err is any of the duplicate-registration
// failures.
func IsConflict(err error) bool {
	return errors.Is(err, ErrAlreadyRegistered) ||
		errors.Is(err, ErrEmailRegistered) ||
		errors.Is(err, ErrUsernameRegistered)
}

// IsValidation reports whether err is a locally detected request
// validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingUsername) ||
		errors.Is(err, ErrMissingEmail) ||
		errors.Is(err, ErrMissingPassword) ||
		errors.Is(err, ErrInvalidEmail)
}
