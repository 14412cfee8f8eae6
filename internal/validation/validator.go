package validation

import (
	"errors"
	"regexp"

	"github.com/mrlokans/onboard/internal/entities"
)

// Validation patterns
var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,64}$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

var (
	ErrUserRequired     = errors.New("user is required")
	ErrUsernameRequired = errors.New("username is required")
	ErrEmailRequired    = errors.New("email is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrUsernameInvalid  = errors.New("username must be 3-64 characters, alphanumeric and underscore/hyphen only")
	ErrEmailInvalid     = errors.New("invalid email format")
)

// UserValidator vets users before registration. Stateless.
type UserValidator struct{}

func NewUserValidator() *UserValidator {
	return &UserValidator{}
}

func (v *UserValidator) Validate(user *entities.User) error {
	if user == nil {
		return ErrUserRequired
	}
	if user.Username == "" {
		return ErrUsernameRequired
	}
	if user.Email == "" {
		return ErrEmailRequired
	}
	if user.PasswordHash == "" {
		return ErrPasswordRequired
	}

	if !usernamePattern.MatchString(user.Username) {
		return ErrUsernameInvalid
	}

	// RFC 5321 limit is 254
	if len(user.Email) > 254 || !emailPattern.MatchString(user.Email) {
		return ErrEmailInvalid
	}

	return nil
}
