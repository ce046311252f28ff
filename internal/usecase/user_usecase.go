package usecase

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/smartstores/cashbook/internal/domain"
)

// UserUseCase handles user management and login.
type UserUseCase struct {
	userRepo    UserRepository
	counterRepo CounterRepository
	idGen       IDGenerator
	clock       Clock
	tokens      TokenIssuer
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(
	userRepo UserRepository,
	counterRepo CounterRepository,
	idGen IDGenerator,
	clock Clock,
	tokens TokenIssuer,
) *UserUseCase {
	return &UserUseCase{
		userRepo:    userRepo,
		counterRepo: counterRepo,
		idGen:       idGen,
		clock:       clock,
		tokens:      tokens,
	}
}

// LoginInput represents login credentials.
type LoginInput struct {
	Username string
	Password string
}

// LoginResult is a successful login.
type LoginResult struct {
	Token string
	User  *domain.User
}

// Login verifies credentials and issues a token. Every failure mode maps
// to ErrUnauthorized so callers cannot probe which usernames exist.
func (uc *UserUseCase) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := uc.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	if !user.Active {
		return nil, domain.ErrUnauthorized
	}

	if err := verifyPassword(user.HashedPassword, input.Password); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := uc.tokens.Generate(user)
	if err != nil {
		return nil, err
	}

	user.HashedPassword = ""
	return &LoginResult{Token: token, User: user}, nil
}

// CreateUserInput represents input for creating a user.
type CreateUserInput struct {
	Username    string
	Password    string
	Role        domain.Role
	CounterName string
}

// CreateUser creates a new login. Counter users must reference a
// configured counter; admin and supervisor logins carry none.
func (uc *UserUseCase) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	if input.Username == "" {
		return nil, errors.New("username cannot be empty")
	}

	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	if !input.Role.IsValid() {
		return nil, errors.New("invalid role")
	}

	if input.Role == domain.RoleCounter {
		if _, err := uc.counterRepo.GetByName(ctx, input.CounterName); err != nil {
			return nil, err
		}
	} else if input.CounterName != "" {
		return nil, errors.New("only counter users carry a counter name")
	}

	existing, err := uc.userRepo.GetByUsername(ctx, input.Username)
	if err == nil && existing != nil {
		return nil, errors.New("user with this username already exists")
	}

	hashedPassword, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	user := &domain.User{
		ID:             uc.idGen.Generate(),
		Username:       input.Username,
		HashedPassword: hashedPassword,
		Role:           input.Role,
		CounterName:    input.CounterName,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	user.HashedPassword = ""
	return user, nil
}

// ChangePasswordInput represents input for a password change.
type ChangePasswordInput struct {
	UserID      string
	OldPassword string
	NewPassword string
}

// ChangePassword lets a user rotate their own password. Admins may reset
// any user's password without the old one.
func (uc *UserUseCase) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	id, ok := domain.IdentityFromContext(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	self := id.UserID == input.UserID
	if !self && !id.CanAdminister() {
		return domain.ErrUnauthorized
	}

	if err := domain.ValidatePassword(input.NewPassword); err != nil {
		return err
	}

	user, err := uc.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return err
	}

	if self {
		if err := verifyPassword(user.HashedPassword, input.OldPassword); err != nil {
			return domain.ErrUnauthorized
		}
	}

	hashedPassword, err := hashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	user.HashedPassword = hashedPassword
	user.UpdatedAt = uc.clock.Now()

	return uc.userRepo.Update(ctx, user)
}

// SetActiveInput represents input for enabling or disabling a login.
type SetActiveInput struct {
	UserID string
	Active bool
}

// SetActive enables or disables a login.
func (uc *UserUseCase) SetActive(ctx context.Context, input SetActiveInput) (*domain.User, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	user.Active = input.Active
	user.UpdatedAt = uc.clock.Now()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	user.HashedPassword = ""
	return user, nil
}

// ListUsers lists all logins.
func (uc *UserUseCase) ListUsers(ctx context.Context) ([]*domain.User, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, user := range users {
		user.HashedPassword = ""
	}

	return users, nil
}

// hashPassword hashes a password using bcrypt
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// verifyPassword verifies a password against a hash
func verifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
