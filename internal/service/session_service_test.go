package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "taskboard/internal/errors"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil && user.ID == "" {
		user.ID = "1"
	}
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

// MockSessionRepository is a mock implementation of SessionRepository.
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) CurrentUserID(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockSessionRepository) SetCurrentUserID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSessionRepository) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestSessionService_Register(t *testing.T) {
	tests := []struct {
		name          string
		userName      string
		email         string
		password      string
		setupMock     func(*MockUserRepository, *MockSessionRepository)
		expectedError error
	}{
		{
			name:     "successful registration",
			userName: "Ann",
			email:    "a@x.com",
			password: "p",
			setupMock: func(mUsers *MockUserRepository, mSessions *MockSessionRepository) {
				mUsers.On("FindByEmail", mock.Anything, "a@x.com").Return(nil, repository.ErrNotFound)
				mUsers.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
				mSessions.On("SetCurrentUserID", mock.Anything, "1").Return(nil)
			},
		},
		{
			name:     "input is trimmed",
			userName: "  Ann ",
			email:    " a@x.com ",
			password: " p ",
			setupMock: func(mUsers *MockUserRepository, mSessions *MockSessionRepository) {
				mUsers.On("FindByEmail", mock.Anything, "a@x.com").Return(nil, repository.ErrNotFound)
				mUsers.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
					return u.Name == "Ann" && u.Email == "a@x.com" && u.Password == "p"
				})).Return(nil)
				mSessions.On("SetCurrentUserID", mock.Anything, "1").Return(nil)
			},
		},
		{
			name:     "email already exists",
			userName: "Ann",
			email:    "a@x.com",
			password: "p",
			setupMock: func(mUsers *MockUserRepository, mSessions *MockSessionRepository) {
				mUsers.On("FindByEmail", mock.Anything, "a@x.com").Return(&model.User{ID: "7", Email: "a@x.com"}, nil)
			},
			expectedError: apperrors.ErrDuplicateEmail,
		},
		{
			name:          "missing name",
			userName:      "   ",
			email:         "a@x.com",
			password:      "p",
			setupMock:     func(*MockUserRepository, *MockSessionRepository) {},
			expectedError: apperrors.ErrValidationFailed,
		},
		{
			name:     "store failure is wrapped",
			userName: "Ann",
			email:    "a@x.com",
			password: "p",
			setupMock: func(mUsers *MockUserRepository, mSessions *MockSessionRepository) {
				mUsers.On("FindByEmail", mock.Anything, "a@x.com").Return(nil, errors.New("redis down"))
			},
			expectedError: errors.New("check user existence: redis down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mUsers := new(MockUserRepository)
			mSessions := new(MockSessionRepository)
			tt.setupMock(mUsers, mSessions)

			svc := NewSessionService(mUsers, mSessions, &sync.Mutex{})
			session, err := svc.Register(context.Background(), tt.userName, tt.email, tt.password)

			if tt.expectedError != nil {
				require.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
				assert.False(t, session.Authenticated())
			} else {
				require.NoError(t, err)
				require.True(t, session.Authenticated())
				assert.Equal(t, "a@x.com", session.User.Email)
				assert.Equal(t, "1", session.UserID())
			}

			mUsers.AssertExpectations(t)
			mSessions.AssertExpectations(t)
		})
	}
}

func TestSessionService_Login(t *testing.T) {
	ann := &model.User{ID: "1", Name: "Ann", Email: "a@x.com", Password: "p"}

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository, *MockSessionRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "a@x.com",
			password: "p",
			setupMock: func(mUsers *MockUserRepository, mSessions *MockSessionRepository) {
				mUsers.On("FindByEmail", mock.Anything, "a@x.com").Return(ann, nil)
				mSessions.On("SetCurrentUserID", mock.Anything, "1").Return(nil)
			},
		},
		{
			name:     "wrong password",
			email:    "a@x.com",
			password: "nope",
			setupMock: func(mUsers *MockUserRepository, mSessions *MockSessionRepository) {
				mUsers.On("FindByEmail", mock.Anything, "a@x.com").Return(ann, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "ghost@x.com",
			password: "p",
			setupMock: func(mUsers *MockUserRepository, mSessions *MockSessionRepository) {
				mUsers.On("FindByEmail", mock.Anything, "ghost@x.com").Return(nil, repository.ErrNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mUsers := new(MockUserRepository)
			mSessions := new(MockSessionRepository)
			tt.setupMock(mUsers, mSessions)

			svc := NewSessionService(mUsers, mSessions, &sync.Mutex{})
			session, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.False(t, session.Authenticated())
			} else {
				require.NoError(t, err)
				assert.Equal(t, ann, session.User)
			}

			mUsers.AssertExpectations(t)
			mSessions.AssertExpectations(t)
		})
	}
}

func TestSessionService_Current(t *testing.T) {
	t.Run("anonymous when nothing stored", func(t *testing.T) {
		mUsers := new(MockUserRepository)
		mSessions := new(MockSessionRepository)
		mSessions.On("CurrentUserID", mock.Anything).Return("", nil)

		session, err := NewSessionService(mUsers, mSessions, &sync.Mutex{}).Current(context.Background())
		require.NoError(t, err)
		assert.False(t, session.Authenticated())
		mUsers.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("dangling id is anonymous", func(t *testing.T) {
		mUsers := new(MockUserRepository)
		mSessions := new(MockSessionRepository)
		mSessions.On("CurrentUserID", mock.Anything).Return("9", nil)
		mUsers.On("FindByID", mock.Anything, "9").Return(nil, repository.ErrNotFound)

		session, err := NewSessionService(mUsers, mSessions, &sync.Mutex{}).Current(context.Background())
		require.NoError(t, err)
		assert.False(t, session.Authenticated())
	})

	t.Run("looks up the authoritative record", func(t *testing.T) {
		mUsers := new(MockUserRepository)
		mSessions := new(MockSessionRepository)
		mSessions.On("CurrentUserID", mock.Anything).Return("1", nil)
		mUsers.On("FindByID", mock.Anything, "1").Return(&model.User{ID: "1", Name: "Ann Lee"}, nil)

		session, err := NewSessionService(mUsers, mSessions, &sync.Mutex{}).Current(context.Background())
		require.NoError(t, err)
		require.True(t, session.Authenticated())
		assert.Equal(t, "Ann Lee", session.User.Name)
	})
}

func TestSessionService_Logout(t *testing.T) {
	mUsers := new(MockUserRepository)
	mSessions := new(MockSessionRepository)
	mSessions.On("Clear", mock.Anything).Return(nil)

	require.NoError(t, NewSessionService(mUsers, mSessions, &sync.Mutex{}).Logout(context.Background()))
	mSessions.AssertExpectations(t)
}
