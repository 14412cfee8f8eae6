package registration

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/onboard/internal/entities"
	"github.com/mrlokans/onboard/internal/validation"
)

// Mocks record calls against a shared sequence so step ordering can be asserted.

type mockValidator struct {
	calls    int
	err      error
	sequence *[]string
}

func (m *mockValidator) Validate(user *entities.User) error {
	m.calls++
	if m.sequence != nil {
		*m.sequence = append(*m.sequence, "validate")
	}
	return m.err
}

type mockStore struct {
	calls    int
	err      error
	saved    *entities.User
	sequence *[]string
}

func (m *mockStore) Save(user *entities.User) error {
	m.calls++
	if m.sequence != nil {
		*m.sequence = append(*m.sequence, "save")
	}
	if m.err != nil {
		return m.err
	}
	m.saved = user
	return nil
}

type mockNotifier struct {
	calls    int
	err      error
	sequence *[]string
}

func (m *mockNotifier) Notify(user *entities.User) error {
	m.calls++
	if m.sequence != nil {
		*m.sequence = append(*m.sequence, "notify")
	}
	return m.err
}

type mockLogger struct {
	calls    int
	err      error
	actions  []string
	sequence *[]string
}

func (m *mockLogger) Log(action string) error {
	m.calls++
	m.actions = append(m.actions, action)
	if m.sequence != nil {
		*m.sequence = append(*m.sequence, "log")
	}
	return m.err
}

func newTestService(t *testing.T, validator Validator, store UserStore, notifier Notifier, logger AuditLogger) *Service {
	t.Helper()
	service, err := NewService(validator, store, notifier, logger)
	require.NoError(t, err)
	return service
}

func testUser() *entities.User {
	return &entities.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$12$notsecret",
	}
}

func TestNewService_MissingDependency(t *testing.T) {
	validator := &mockValidator{}
	store := &mockStore{}
	notifier := &mockNotifier{}
	logger := &mockLogger{}

	tests := []struct {
		name      string
		validator Validator
		store     UserStore
		notifier  Notifier
		logger    AuditLogger
		want      string
	}{
		{"nil validator", nil, store, notifier, logger, "validator"},
		{"nil store", validator, nil, notifier, logger, "user store"},
		{"nil notifier", validator, store, nil, logger, "notifier"},
		{"nil logger", validator, store, notifier, nil, "audit logger"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, err := NewService(tt.validator, tt.store, tt.notifier, tt.logger)
			assert.Nil(t, service)
			assert.ErrorIs(t, err, ErrMissingDependency)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestService_Register_RunsStepsInOrder(t *testing.T) {
	var sequence []string
	validator := &mockValidator{sequence: &sequence}
	store := &mockStore{sequence: &sequence}
	notifier := &mockNotifier{sequence: &sequence}
	logger := &mockLogger{sequence: &sequence}
	service := newTestService(t, validator, store, notifier, logger)

	user := testUser()
	result, err := service.Register(user)

	require.NoError(t, err)
	assert.Equal(t, []string{"validate", "save", "notify", "log"}, sequence)
	assert.Empty(t, result.Warnings)
	assert.Same(t, user, result.User)
	assert.Equal(t, user, store.saved)
	assert.Equal(t, []string{ActionRegister}, logger.actions)
}

func TestService_Register_ValidationFailureSkipsEverything(t *testing.T) {
	validationErr := errors.New("email looks wrong")
	validator := &mockValidator{err: validationErr}
	store := &mockStore{}
	notifier := &mockNotifier{}
	logger := &mockLogger{}
	service := newTestService(t, validator, store, notifier, logger)

	result, err := service.Register(testUser())

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.ErrorIs(t, err, validationErr)
	assert.Equal(t, 0, store.calls)
	assert.Equal(t, 0, notifier.calls)
	assert.Equal(t, 0, logger.calls)
}

func TestService_Register_PersistenceFailureSkipsBestEffortSteps(t *testing.T) {
	storeErr := errors.New("disk full")
	validator := &mockValidator{}
	store := &mockStore{err: storeErr}
	notifier := &mockNotifier{}
	logger := &mockLogger{}
	service := newTestService(t, validator, store, notifier, logger)

	result, err := service.Register(testUser())

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrPersistenceFailed)
	assert.ErrorIs(t, err, storeErr)
	assert.Equal(t, 1, validator.calls)
	assert.Equal(t, 0, notifier.calls)
	assert.Equal(t, 0, logger.calls)
}

func TestService_Register_NotifyFailureIsWarningAndLogStillRuns(t *testing.T) {
	notifyErr := errors.New("outbox unavailable")
	validator := &mockValidator{}
	store := &mockStore{}
	notifier := &mockNotifier{err: notifyErr}
	logger := &mockLogger{}
	service := newTestService(t, validator, store, notifier, logger)

	result, err := service.Register(testUser())

	require.NoError(t, err)
	assert.Equal(t, 1, logger.calls)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, StepNotifying, result.Warnings[0].Step)
	assert.ErrorIs(t, result.Warnings[0], notifyErr)
}

func TestService_Register_LogFailureIsWarning(t *testing.T) {
	logErr := errors.New("audit table locked")
	service := newTestService(t, &mockValidator{}, &mockStore{}, &mockNotifier{}, &mockLogger{err: logErr})

	result, err := service.Register(testUser())

	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, StepLogging, result.Warnings[0].Step)
}

func TestService_Register_BothBestEffortStepsFail(t *testing.T) {
	service := newTestService(t,
		&mockValidator{},
		&mockStore{},
		&mockNotifier{err: errors.New("notify down")},
		&mockLogger{err: errors.New("log down")},
	)

	result, err := service.Register(testUser())

	require.NoError(t, err)
	require.Len(t, result.Warnings, 2)
	assert.Equal(t, StepNotifying, result.Warnings[0].Step)
	assert.Equal(t, StepLogging, result.Warnings[1].Step)
}

func TestService_Register_RealValidatorRejectsMissingEmail(t *testing.T) {
	store := &mockStore{}
	service := newTestService(t, validation.NewUserValidator(), store, &mockNotifier{}, &mockLogger{})

	_, err := service.Register(&entities.User{ID: 1, Username: "alice", PasswordHash: "hash"})

	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.ErrorIs(t, err, validation.ErrEmailRequired)
	assert.Equal(t, 0, store.calls)
}

func TestWarning_ErrorAndUnwrap(t *testing.T) {
	inner := errors.New("boom")
	warning := Warning{Step: StepNotifying, Err: inner}

	assert.Equal(t, "notifying: boom", warning.Error())
	assert.ErrorIs(t, warning, inner)
}
