package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"sl-notes/internal/auth"
	"sl-notes/internal/domain"
	mailer "sl-notes/internal/mail"
	"sl-notes/internal/repository"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password;
	// callers must not be able to tell which half failed.
	ErrInvalidCredentials = errors.New("incorrect email or password")
	// ErrEmailTaken is returned when registering with an email already on file.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUserNotFound indicates the referenced user row does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidVerification indicates an unknown verification token.
	ErrInvalidVerification = errors.New("invalid verification link")
	// ErrSelfDelete guards admins from deleting their own account.
	ErrSelfDelete = errors.New("cannot delete yourself")
	// ErrValidation wraps request validation failures.
	ErrValidation = errors.New("validation failed")
)

// ProfileUpdate applies only the fields explicitly provided.
type ProfileUpdate struct {
	FullName *string
}

// UserFlagsUpdate applies only the fields explicitly provided.
type UserFlagsUpdate struct {
	IsVerified *bool
	IsAdmin    *bool
}

// UserService describes user lifecycle operations.
type UserService interface {
	Register(ctx context.Context, fullName, email, password string) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	VerifyEmail(ctx context.Context, token string) (alreadyVerified bool, err error)
	UpdateProfile(ctx context.Context, id int64, update ProfileUpdate) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateFlags(ctx context.Context, id int64, update UserFlagsUpdate) error
	DeleteUser(ctx context.Context, actorID, targetID int64) error
	EnsureAdmin(ctx context.Context, fullName, email, password string) error
}

type userService struct {
	users  repository.UserRepository
	hasher *auth.Hasher
	sender mailer.Sender
	logger *logrus.Logger
}

func NewUserService(users repository.UserRepository, hasher *auth.Hasher, sender mailer.Sender, logger *logrus.Logger) UserService {
	return &userService{
		users:  users,
		hasher: hasher,
		sender: sender,
		logger: logger,
	}
}

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

func (s *userService) Register(ctx context.Context, fullName, email, password string) (*domain.User, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.ToLower(strings.TrimSpace(email))

	if len(fullName) < 2 || len(fullName) > 100 {
		return nil, validationError("full name must be 2-100 characters")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, validationError("invalid email address")
	}
	if len(password) < 6 || len(password) > 100 {
		return nil, validationError("password must be 6-100 characters")
	}

	// best-effort guard; the UNIQUE constraint on email is authoritative
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		FullName:          fullName,
		Email:             email,
		PasswordHash:      hash,
		VerificationToken: uuid.NewString(),
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "already exists") {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if err := s.sender.SendVerification(ctx, user.Email, user.VerificationToken); err != nil {
		s.logger.WithError(err).WithField("email", user.Email).Warn("verification email failed")
	}

	return user, nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "not found") {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Check(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "not found") {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) VerifyEmail(ctx context.Context, token string) (bool, error) {
	user, err := s.users.GetByVerificationToken(ctx, token)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "not found") {
			return false, ErrInvalidVerification
		}
		return false, err
	}

	// re-presenting an already consumed link stays a success
	if user.IsVerified {
		return true, nil
	}

	user.IsVerified = true
	user.VerificationToken = ""
	if err := s.users.Update(ctx, user); err != nil {
		return false, err
	}
	return false, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id int64, update ProfileUpdate) (*domain.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.FullName != nil {
		name := strings.TrimSpace(*update.FullName)
		if len(name) < 2 || len(name) > 100 {
			return nil, validationError("full name must be 2-100 characters")
		}
		user.FullName = name
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *userService) UpdateFlags(ctx context.Context, id int64, update UserFlagsUpdate) error {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if update.IsVerified != nil {
		user.IsVerified = *update.IsVerified
	}
	if update.IsAdmin != nil {
		user.IsAdmin = *update.IsAdmin
	}

	return s.users.Update(ctx, user)
}

func (s *userService) DeleteUser(ctx context.Context, actorID, targetID int64) error {
	if actorID == targetID {
		return ErrSelfDelete
	}
	if _, err := s.GetByID(ctx, targetID); err != nil {
		return err
	}
	return s.users.Delete(ctx, targetID)
}

// EnsureAdmin creates the seed admin account or promotes an existing user
// with the same email.
func (s *userService) EnsureAdmin(ctx context.Context, fullName, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return validationError("admin email and password are required")
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		if existing.IsAdmin && existing.IsVerified {
			return nil
		}
		existing.IsAdmin = true
		existing.IsVerified = true
		existing.VerificationToken = ""
		return s.users.Update(ctx, existing)
	}
	if !strings.Contains(strings.ToLower(err.Error()), "not found") {
		return err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	admin := &domain.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: hash,
		IsVerified:   true,
		IsAdmin:      true,
	}
	_, err = s.users.Create(ctx, admin)
	return err
}
