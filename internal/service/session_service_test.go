package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"senti/internal/auth"
	"senti/internal/catalog"
	apperrors "senti/internal/errors"
	"senti/internal/model"
	"senti/internal/repository"
)

// MockCredentialRepository is a mock implementation of CredentialRepository.
type MockCredentialRepository struct {
	mock.Mock
}

func (m *MockCredentialRepository) Authenticate(ctx context.Context, email, password string) (*model.Identity, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Identity), args.Error(1)
}

func (m *MockCredentialRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockCredentialRepository) Add(ctx context.Context, identity *model.Identity, password string) error {
	args := m.Called(ctx, identity, password)
	return args.Error(0)
}

// countingSlot records how many writes and deletes reach the slot.
type countingSlot struct {
	auth.Slot
	saves, clears, loads int
	saveErr, clearErr    error
}

func newCountingSlot() *countingSlot {
	return &countingSlot{Slot: auth.NewMemorySlot()}
}

func (s *countingSlot) Load(ctx context.Context) ([]byte, error) {
	s.loads++
	return s.Slot.Load(ctx)
}

func (s *countingSlot) Save(ctx context.Context, data []byte) error {
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	return s.Slot.Save(ctx, data)
}

func (s *countingSlot) Clear(ctx context.Context) error {
	s.clears++
	if s.clearErr != nil {
		return s.clearErr
	}
	return s.Slot.Clear(ctx)
}

func demoCredentials(t *testing.T) repository.CredentialRepository {
	t.Helper()
	creds, err := catalog.Credentials()
	require.NoError(t, err)
	return repository.NewMemoryCredentialRepository(creds)
}

func newTestSession(t *testing.T, creds repository.CredentialRepository, slot auth.Slot) SessionService {
	t.Helper()
	return NewSessionService(context.Background(), creds, slot, auth.JSONCodec{}, zap.NewNop())
}

func TestSessionService_Login(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		expectedRole  model.Role
		expectedError error
	}{
		{"entrepreneur", "john@example.com", "password123", model.RoleEntrepreneur, nil},
		{"mentor", "jane@example.com", "password123", model.RoleMentor, nil},
		{"wrong password", "john@example.com", "wrong", "", apperrors.ErrInvalidCredentials},
		{"unknown email", "amina@example.com", "password123", "", apperrors.ErrInvalidCredentials},
		{"email case differs", "JOHN@example.com", "password123", "", apperrors.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot := newCountingSlot()
			session := newTestSession(t, demoCredentials(t), slot)

			identity, err := session.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, identity)
				assert.False(t, session.IsAuthenticated())
				assert.Nil(t, session.Current())
				assert.Zero(t, slot.saves)
				return
			}
			require.NoError(t, err)
			assert.True(t, session.IsAuthenticated())
			assert.Equal(t, tt.email, identity.Email)
			assert.Equal(t, tt.expectedRole, identity.Role)
			assert.Equal(t, identity, session.Current())
			assert.Equal(t, 1, slot.saves)
		})
	}
}

func TestSessionService_FailedLoginLeavesSessionUnchanged(t *testing.T) {
	ctx := context.Background()
	slot := newCountingSlot()
	session := newTestSession(t, demoCredentials(t), slot)

	_, err := session.Login(ctx, "jane@example.com", "password123")
	require.NoError(t, err)
	before := session.Current()
	persisted, err := slot.Slot.Load(ctx)
	require.NoError(t, err)

	for _, pair := range [][2]string{{"john@example.com", "wrong"}, {"", ""}, {"jane@example.com", "password1234"}} {
		_, err := session.Login(ctx, pair[0], pair[1])
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
		assert.Equal(t, before, session.Current())
	}

	after, err := slot.Slot.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, persisted, after)
	assert.Equal(t, 1, slot.saves)
}

func TestSessionService_LoginPersistFailure(t *testing.T) {
	slot := newCountingSlot()
	slot.saveErr = errors.New("disk full")
	session := newTestSession(t, demoCredentials(t), slot)

	identity, err := session.Login(context.Background(), "john@example.com", "password123")
	assert.ErrorIs(t, err, slot.saveErr)
	assert.Nil(t, identity)
	assert.False(t, session.IsAuthenticated())
}

func TestSessionService_Register(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		role          model.Role
		setupMock     func(*MockCredentialRepository)
		expectedError error
	}{
		{
			name:  "successful registration",
			email: "amina@example.com",
			role:  model.RoleInvestor,
			setupMock: func(m *MockCredentialRepository) {
				m.On("EmailExists", mock.Anything, "amina@example.com").Return(false, nil)
				m.On("Add", mock.Anything, mock.AnythingOfType("*model.Identity"), "pw").Return(nil)
			},
		},
		{
			name:  "email already in use",
			email: "john@example.com",
			role:  model.RoleMentor,
			setupMock: func(m *MockCredentialRepository) {
				m.On("EmailExists", mock.Anything, "john@example.com").Return(true, nil)
			},
			expectedError: apperrors.ErrEmailAlreadyInUse,
		},
		{
			name:  "lost race with another writer",
			email: "amina@example.com",
			role:  model.RoleMentor,
			setupMock: func(m *MockCredentialRepository) {
				m.On("EmailExists", mock.Anything, "amina@example.com").Return(false, nil)
				m.On("Add", mock.Anything, mock.Anything, "pw").Return(apperrors.ErrEmailAlreadyInUse)
			},
			expectedError: apperrors.ErrEmailAlreadyInUse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockCredentialRepository)
			tt.setupMock(mockRepo)
			slot := newCountingSlot()
			session := newTestSession(t, mockRepo, slot)

			identity, err := session.Register(context.Background(), tt.email, "pw", "Amina Hassan", tt.role)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, identity)
				assert.False(t, session.IsAuthenticated())
				assert.Zero(t, slot.saves)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, identity.ID)
				assert.Equal(t, tt.email, identity.Email)
				assert.Equal(t, "Amina Hassan", identity.Name)
				assert.Equal(t, tt.role, identity.Role)
				assert.Equal(t, identity, session.Current())
				assert.Equal(t, 1, slot.saves)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestSessionService_RegisterConflictsWithCatalog(t *testing.T) {
	session := newTestSession(t, demoCredentials(t), newCountingSlot())

	for _, role := range model.Roles {
		for _, password := range []string{"", "password123", "x"} {
			_, err := session.Register(context.Background(), "jane@example.com", password, "Someone Else", role)
			assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyInUse)
		}
	}
	for _, role := range []model.Role{"admin", ""} {
		_, err := session.Register(context.Background(), "john@example.com", "pw", "X", role)
		assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyInUse)
	}
	assert.False(t, session.IsAuthenticated())
}

func TestSessionService_RegisterAcceptsAnyPassword(t *testing.T) {
	ctx := context.Background()
	session := newTestSession(t, demoCredentials(t), newCountingSlot())

	identity, err := session.Register(ctx, "weak@example.com", "1", "Weak Password", model.RoleEntrepreneur)
	require.NoError(t, err)
	assert.Equal(t, "weak@example.com", identity.Email)

	_, err = session.Register(ctx, "weak@example.com", "a much stronger passphrase", "Again", model.RoleEntrepreneur)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyInUse)

	require.NoError(t, session.Logout(ctx))
	again, err := session.Login(ctx, "weak@example.com", "1")
	require.NoError(t, err)
	assert.Equal(t, identity.ID, again.ID)
}

func TestSessionService_RegisterRejectsUnknownRole(t *testing.T) {
	mockRepo := new(MockCredentialRepository)
	mockRepo.On("EmailExists", mock.Anything, "x@example.com").Return(false, nil)
	session := newTestSession(t, mockRepo, newCountingSlot())

	_, err := session.Register(context.Background(), "x@example.com", "pw", "X", model.Role("admin"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidRole)
	mockRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
}

func TestSessionService_RegisterRejectsUnrestorableIdentity(t *testing.T) {
	ctx := context.Background()
	slot := newCountingSlot()
	creds := demoCredentials(t)
	session := newTestSession(t, creds, slot)

	identity, err := session.Register(ctx, "", "", "", model.RoleMentor)
	assert.ErrorIs(t, err, apperrors.ErrInvalidIdentity)
	assert.Nil(t, identity)
	assert.False(t, session.IsAuthenticated())
	assert.Zero(t, slot.saves)

	exists, err := creds.EmailExists(ctx, "")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSessionService_RegisterMinimalFieldsRoundTrip(t *testing.T) {
	ctx := context.Background()
	slot := auth.NewMemorySlot()
	creds := demoCredentials(t)

	first := newTestSession(t, creds, slot)
	registered, err := first.Register(ctx, "a@b", "", "", model.RoleMentor)
	require.NoError(t, err)

	second := newTestSession(t, creds, slot)
	assert.Equal(t, registered, second.Current())
}

func TestSessionService_RegisterKeepsCredentialWhenSessionWriteFails(t *testing.T) {
	ctx := context.Background()
	slot := newCountingSlot()
	slot.saveErr = errors.New("disk full")
	session := newTestSession(t, demoCredentials(t), slot)

	_, err := session.Register(ctx, "amina@example.com", "pw", "Amina", model.RoleInvestor)
	assert.ErrorIs(t, err, slot.saveErr)
	assert.False(t, session.IsAuthenticated())

	_, err = session.Register(ctx, "amina@example.com", "pw", "Amina", model.RoleInvestor)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyInUse)

	slot.saveErr = nil
	identity, err := session.Login(ctx, "amina@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, model.RoleInvestor, identity.Role)
}

func TestSessionService_LogoutIsIdempotent(t *testing.T) {
	ctx := context.Background()
	slot := newCountingSlot()
	session := newTestSession(t, demoCredentials(t), slot)

	_, err := session.Login(ctx, "john@example.com", "password123")
	require.NoError(t, err)

	require.NoError(t, session.Logout(ctx))
	assert.False(t, session.IsAuthenticated())
	assert.Nil(t, session.Restore(ctx))

	require.NoError(t, session.Logout(ctx))
	assert.False(t, session.IsAuthenticated())
	assert.Nil(t, session.Current())
	assert.Nil(t, session.Restore(ctx))
	assert.Equal(t, 2, slot.clears)
	assert.Equal(t, 1, slot.saves)
}

func TestSessionService_LogoutClearFailureKeepsSession(t *testing.T) {
	ctx := context.Background()
	slot := newCountingSlot()
	session := newTestSession(t, demoCredentials(t), slot)
	_, err := session.Login(ctx, "john@example.com", "password123")
	require.NoError(t, err)

	slot.clearErr = errors.New("redis down")
	assert.ErrorIs(t, session.Logout(ctx), slot.clearErr)
	assert.True(t, session.IsAuthenticated())
}

func TestSessionService_RestoreRoundTrip(t *testing.T) {
	codecs := map[string]auth.IdentityCodec{
		"json":   auth.JSONCodec{},
		"signed": auth.NewSignedCodec("test-secret"),
	}

	for name, codec := range codecs {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			slot := auth.NewFileSlot(t.TempDir())
			creds := demoCredentials(t)

			first := NewSessionService(ctx, creds, slot, codec, zap.NewNop())
			loggedIn, err := first.Login(ctx, "john@example.com", "password123")
			require.NoError(t, err)

			second := NewSessionService(ctx, creds, slot, codec, zap.NewNop())
			assert.True(t, second.IsAuthenticated())
			assert.Equal(t, loggedIn, second.Current())

			registered, err := second.Register(ctx, "amina@example.com", "pw", "Amina", model.RoleInvestor)
			require.NoError(t, err)

			third := NewSessionService(ctx, creds, slot, codec, zap.NewNop())
			assert.Equal(t, registered, third.Current())

			require.NoError(t, third.Logout(ctx))
			fourth := NewSessionService(ctx, creds, slot, codec, zap.NewNop())
			assert.False(t, fourth.IsAuthenticated())
		})
	}
}

func TestSessionService_RestoreNeverWrites(t *testing.T) {
	ctx := context.Background()
	slot := newCountingSlot()
	require.NoError(t, slot.Slot.Save(ctx, []byte(`{"id":"1","name":"John Doe","email":"john@example.com","role":"entrepreneur"}`)))

	session := newTestSession(t, demoCredentials(t), slot)
	assert.True(t, session.IsAuthenticated())
	assert.Equal(t, "John Doe", session.Restore(ctx).Name)
	assert.Zero(t, slot.saves)
	assert.Zero(t, slot.clears)
	assert.Equal(t, 2, slot.loads)
}

func TestSessionService_RestoreAbsorbsBadRecords(t *testing.T) {
	tests := []struct {
		name   string
		record string
	}{
		{"truncated", `{"id":"1","name":"Jo`},
		{"unknown role", `{"id":"1","name":"John","email":"john@example.com","role":"superuser"}`},
		{"missing id", `{"name":"John","email":"john@example.com","role":"mentor"}`},
		{"binary", "\x00\x01\x02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			slot := auth.NewMemorySlot()
			require.NoError(t, slot.Save(ctx, []byte(tt.record)))

			session := newTestSession(t, demoCredentials(t), slot)
			assert.False(t, session.IsAuthenticated())
			assert.Nil(t, session.Restore(ctx))
		})
	}
}

func TestSessionService_RestoreAbsorbsSlotErrors(t *testing.T) {
	slot := new(failingSlot)
	session := newTestSession(t, demoCredentials(t), slot)
	assert.False(t, session.IsAuthenticated())
}

func TestSessionService_CurrentIsACopy(t *testing.T) {
	session := newTestSession(t, demoCredentials(t), newCountingSlot())
	_, err := session.Login(context.Background(), "john@example.com", "password123")
	require.NoError(t, err)

	session.Current().Name = "Mallory"
	assert.Equal(t, "John Doe", session.Current().Name)
}

type failingSlot struct{}

func (failingSlot) Load(context.Context) ([]byte, error) { return nil, errors.New("unreadable") }
func (failingSlot) Save(context.Context, []byte) error   { return errors.New("unwritable") }
func (failingSlot) Clear(context.Context) error          { return errors.New("unwritable") }
