package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/smartstores/cashbook/internal/domain"
	"github.com/smartstores/cashbook/internal/usecase"
	"github.com/smartstores/cashbook/internal/usecase/mocks"
)

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func newUserUseCase(userRepo usecase.UserRepository) *usecase.UserUseCase {
	return usecase.NewUserUseCase(
		userRepo,
		mocks.NewMockCounterRepository(
			&domain.Counter{Name: testCounter, Kind: domain.CounterSimple},
		),
		&mocks.MockIDGenerator{},
		&mocks.MockClock{},
		&mocks.MockTokenIssuer{},
	)
}

func TestUserUseCase_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	userRepo := mocks.NewMockUserRepository(ctrl)
	uc := newUserUseCase(userRepo)

	stored := &domain.User{
		ID:             "u1",
		Username:       "counter1",
		HashedPassword: hashFor(t, "1234"),
		Role:           domain.RoleCounter,
		CounterName:    testCounter,
		Active:         true,
	}

	userRepo.EXPECT().GetByUsername(gomock.Any(), "counter1").Return(stored, nil)

	result, err := uc.Login(adminCtx(), usecase.LoginInput{Username: "counter1", Password: "1234"})
	require.NoError(t, err)
	assert.Equal(t, "token-u1", result.Token)
	assert.Empty(t, result.User.HashedPassword)
}

func TestUserUseCase_Login_Failures(t *testing.T) {
	ctrl := gomock.NewController(t)
	userRepo := mocks.NewMockUserRepository(ctrl)
	uc := newUserUseCase(userRepo)

	hash := hashFor(t, "1234")

	tests := []struct {
		name  string
		setup func()
		input usecase.LoginInput
	}{
		{
			name: "unknown username",
			setup: func() {
				userRepo.EXPECT().GetByUsername(gomock.Any(), "ghost").Return(nil, domain.ErrUserNotFound)
			},
			input: usecase.LoginInput{Username: "ghost", Password: "1234"},
		},
		{
			name: "wrong password",
			setup: func() {
				userRepo.EXPECT().GetByUsername(gomock.Any(), "counter1").Return(&domain.User{
					ID: "u1", Username: "counter1", HashedPassword: hash, Active: true,
				}, nil)
			},
			input: usecase.LoginInput{Username: "counter1", Password: "9999"},
		},
		{
			name: "inactive user",
			setup: func() {
				userRepo.EXPECT().GetByUsername(gomock.Any(), "counter1").Return(&domain.User{
					ID: "u1", Username: "counter1", HashedPassword: hash, Active: false,
				}, nil)
			},
			input: usecase.LoginInput{Username: "counter1", Password: "1234"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			_, err := uc.Login(adminCtx(), tt.input)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}

func TestUserUseCase_CreateUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	userRepo := mocks.NewMockUserRepository(ctrl)
	uc := newUserUseCase(userRepo)

	userRepo.EXPECT().GetByUsername(gomock.Any(), "counter1").Return(nil, domain.ErrUserNotFound)
	userRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, user *domain.User) error {
			assert.NotEmpty(t, user.HashedPassword)
			assert.NotEqual(t, "1234", user.HashedPassword)
			assert.True(t, user.Active)
			return nil
		})

	user, err := uc.CreateUser(adminCtx(), usecase.CreateUserInput{
		Username:    "counter1",
		Password:    "1234",
		Role:        domain.RoleCounter,
		CounterName: testCounter,
	})
	require.NoError(t, err)
	assert.Empty(t, user.HashedPassword)
	assert.Equal(t, testCounter, user.CounterName)
}

func TestUserUseCase_CreateUser_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	userRepo := mocks.NewMockUserRepository(ctrl)
	uc := newUserUseCase(userRepo)

	// Counter users must reference a configured counter.
	_, err := uc.CreateUser(adminCtx(), usecase.CreateUserInput{
		Username: "x", Password: "1234",
		Role: domain.RoleCounter, CounterName: "Nonexistent",
	})
	assert.ErrorIs(t, err, domain.ErrCounterNotFound)

	// Admins carry no counter.
	_, err = uc.CreateUser(adminCtx(), usecase.CreateUserInput{
		Username: "x", Password: "1234",
		Role: domain.RoleAdmin, CounterName: testCounter,
	})
	assert.Error(t, err)

	// Short passwords are rejected.
	_, err = uc.CreateUser(adminCtx(), usecase.CreateUserInput{
		Username: "x", Password: "12",
		Role: domain.RoleCounter, CounterName: testCounter,
	})
	assert.ErrorIs(t, err, domain.ErrPasswordTooShort)

	// Only admins create users.
	_, err = uc.CreateUser(operatorCtx(testCounter), usecase.CreateUserInput{
		Username: "x", Password: "1234",
		Role: domain.RoleCounter, CounterName: testCounter,
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestUserUseCase_ChangePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	userRepo := mocks.NewMockUserRepository(ctrl)
	uc := newUserUseCase(userRepo)

	selfCtx := domain.WithIdentity(adminCtx(), domain.Identity{
		UserID: "u1", Username: "counter1", Role: domain.RoleCounter, CounterName: testCounter,
	})

	stored := &domain.User{
		ID:             "u1",
		Username:       "counter1",
		HashedPassword: hashFor(t, "old-pass"),
		Role:           domain.RoleCounter,
		Active:         true,
	}

	userRepo.EXPECT().GetByID(gomock.Any(), "u1").Return(stored, nil)
	userRepo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, user *domain.User) error {
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("new-pass")))
			return nil
		})

	err := uc.ChangePassword(selfCtx, usecase.ChangePasswordInput{
		UserID:      "u1",
		OldPassword: "old-pass",
		NewPassword: "new-pass",
	})
	require.NoError(t, err)

	// Wrong old password is rejected for self-service changes.
	userRepo.EXPECT().GetByID(gomock.Any(), "u1").Return(stored, nil)
	err = uc.ChangePassword(selfCtx, usecase.ChangePasswordInput{
		UserID:      "u1",
		OldPassword: "wrong",
		NewPassword: "new-pass",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// Another non-admin user cannot touch someone else's password.
	err = uc.ChangePassword(operatorCtx(testCounter), usecase.ChangePasswordInput{
		UserID:      "u1",
		NewPassword: "new-pass",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// Admins reset without the old password.
	userRepo.EXPECT().GetByID(gomock.Any(), "u1").Return(stored, nil)
	userRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
	err = uc.ChangePassword(adminCtx(), usecase.ChangePasswordInput{
		UserID:      "u1",
		NewPassword: "reset-pass",
	})
	require.NoError(t, err)
}

func TestUserUseCase_ListUsers(t *testing.T) {
	ctrl := gomock.NewController(t)
	userRepo := mocks.NewMockUserRepository(ctrl)
	uc := newUserUseCase(userRepo)

	userRepo.EXPECT().List(gomock.Any()).Return([]*domain.User{
		{ID: "u1", Username: "counter1", HashedPassword: "secret"},
	}, nil)

	users, err := uc.ListUsers(adminCtx())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Empty(t, users[0].HashedPassword)

	_, err = uc.ListUsers(supervisorCtx())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
