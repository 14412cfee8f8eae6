package registration

import (
	"errors"
	"fmt"

	"github.com/mrlokans/onboard/internal/entities"
)

var (
	ErrMissingDependency = errors.New("missing required dependency")
	ErrValidationFailed  = errors.New("validation failed")
	ErrPersistenceFailed = errors.New("persistence failed")
)

// ActionRegister is the audit action recorded for a completed registration.
const ActionRegister = "user_register"

// Validator fully vets a user before any persistence is attempted.
type Validator interface {
	Validate(user *entities.User) error
}

// UserStore persists validated users. It is never called before
// validation succeeds.
type UserStore interface {
	Save(user *entities.User) error
}

// Notifier sends the post-registration notification. Failures are
// best-effort: reported as warnings, never fatal to the registration.
type Notifier interface {
	Notify(user *entities.User) error
}

// AuditLogger records the registration action. Best-effort: a logging
// failure never fails an otherwise successful registration.
type AuditLogger interface {
	Log(action string) error
}

// Step identifies a stage of the registration sequence.
type Step string

const (
	StepValidating Step = "validating"
	StepPersisting Step = "persisting"
	StepNotifying  Step = "notifying"
	StepLogging    Step = "logging"
)

// Warning reports a best-effort step that failed without failing the
// overall registration.
type Warning struct {
	Step Step  `json:"step"`
	Err  error `json:"-"`
}

func (w Warning) Error() string {
	return fmt.Sprintf("%s: %v", w.Step, w.Err)
}

func (w Warning) Unwrap() error {
	return w.Err
}

// Result is the outcome of a successful registration. Warnings carry
// best-effort step failures (notification, audit logging).
type Result struct {
	User     *entities.User
	Warnings []Warning
}

// Service sequences a registration across its collaborators without
// implementing any single step itself. All dependencies are injected at
// construction and immutable afterwards; the service holds no other
// state and is safe for concurrent use.
type Service struct {
	validator Validator
	store     UserStore
	notifier  Notifier
	logger    AuditLogger
}

// NewService creates a registration service. Every collaborator is
// required; a nil reference fails with ErrMissingDependency naming the
// missing capability.
func NewService(validator Validator, store UserStore, notifier Notifier, logger AuditLogger) (*Service, error) {
	if validator == nil {
		return nil, fmt.Errorf("%w: validator", ErrMissingDependency)
	}
	if store == nil {
		return nil, fmt.Errorf("%w: user store", ErrMissingDependency)
	}
	if notifier == nil {
		return nil, fmt.Errorf("%w: notifier", ErrMissingDependency)
	}
	if logger == nil {
		return nil, fmt.Errorf("%w: audit logger", ErrMissingDependency)
	}

	return &Service{
		validator: validator,
		store:     store,
		notifier:  notifier,
		logger:    logger,
	}, nil
}

// Register runs the fixed sequence validate → save → notify → log.
//
// Validation and persistence failures abort immediately: no later step
// runs and the error wraps ErrValidationFailed or ErrPersistenceFailed.
// Notifier and logger failures after a committed save are recorded as
// warnings on the result; a notify failure does not skip the log step.
func (s *Service) Register(user *entities.User) (*Result, error) {
	if err := s.validator.Validate(user); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	if err := s.store.Save(user); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
	}

	result := &Result{User: user}

	if err := s.notifier.Notify(user); err != nil {
		result.Warnings = append(result.Warnings, Warning{Step: StepNotifying, Err: err})
	}
	if err := s.logger.Log(ActionRegister); err != nil {
		result.Warnings = append(result.Warnings, Warning{Step: StepLogging, Err: err})
	}

	return result, nil
}
