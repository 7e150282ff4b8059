package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"salonhub-backend/models"
	"salonhub-backend/repository"
	"salonhub-backend/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const MinPasswordLength = 8

// ErrInvalidPassword is returned by Authenticate for a known email with the
// wrong password.
var ErrInvalidPassword = errors.New("invalid password")

type SignupInput struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateUserInput is the admin form; unlike signup it may pick a role.
type CreateUserInput struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role"`
	Position string `json:"position"`
	Phone    string `json:"phone"`
}

type UpdateUserInput struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	Position *string `json:"position"`
	Phone    *string `json:"phone"`
}

type UserService struct {
	store repository.UserStore
	log   logrus.FieldLogger
}

func NewUserService(store repository.UserStore, log logrus.FieldLogger) *UserService {
	return &UserService{store: store, log: log}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateAccount(errs fieldErrors, username, email, password string) {
	if strings.TrimSpace(username) == "" {
		errs.add("username", "is required")
	}
	if !utils.ValidateEmail(email) {
		errs.add("email", "must be a valid email address")
	}
	if len(password) < MinPasswordLength {
		errs.add("password", fmt.Sprintf("must be at least %d characters", MinPasswordLength))
	}
}

func validateRole(errs fieldErrors, role string) {
	if role != models.RoleCustomer && role != models.RoleAdmin {
		errs.add("role", "must be one of: customer, admin")
	}
}

func validateOptionalPhone(errs fieldErrors, phone string) {
	if phone != "" && !utils.ValidatePhone(phone) {
		errs.add("phone", "must be exactly 10 digits")
	}
}

func (s *UserService) create(ctx context.Context, user *models.User, password string) error {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.Password = hash
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return &ConflictError{Message: "Email already registered"}
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Register signs up a customer. The role is never taken from the request.
func (s *UserService) Register(ctx context.Context, in SignupInput) (*models.User, error) {
	errs := fieldErrors{}
	validateAccount(errs, in.Username, in.Email, in.Password)
	if err := errs.err(); err != nil {
		return nil, err
	}
	user := &models.User{
		Username: strings.TrimSpace(in.Username),
		Email:    normalizeEmail(in.Email),
		Role:     models.RoleCustomer,
	}
	if err := s.create(ctx, user, in.Password); err != nil {
		return nil, err
	}
	s.log.WithField("user_id", user.ID).Info("user registered")
	return user, nil
}

// Authenticate returns NotFoundError for an unknown email and
// ErrInvalidPassword for a bad password.
func (s *UserService) Authenticate(ctx context.Context, in LoginInput) (*models.User, error) {
	user, err := s.store.GetUserByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, notFound(err, "User")
	}
	if !utils.CheckPasswordHash(in.Password, user.Password) {
		s.log.WithField("user_id", user.ID).Warn("login rejected: wrong password")
		return nil, ErrInvalidPassword
	}
	return user, nil
}

// EnsureAdmin seeds an admin account unless the email is already registered.
func (s *UserService) EnsureAdmin(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil
	}
	_, err := s.store.GetUserByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("lookup admin: %w", err)
	}
	admin := &models.User{
		Username: strings.SplitN(email, "@", 2)[0],
		Email:    email,
		Role:     models.RoleAdmin,
	}
	if err := s.create(ctx, admin, password); err != nil {
		return err
	}
	s.log.WithField("email", email).Info("admin account seeded")
	return nil
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, notFound(err, "User")
	}
	return user, nil
}

// CurrentRole reports the stored role of the account behind a token subject.
func (s *UserService) CurrentRole(ctx context.Context, subject string) (string, error) {
	id, err := uuid.Parse(subject)
	if err != nil {
		return "", utils.ErrAccountNotFound
	}
	user, err := s.store.GetUser(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return "", utils.ErrAccountNotFound
	}
	if err != nil {
		return "", fmt.Errorf("lookup user: %w", err)
	}
	return user.Role, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.store.ListUsers(ctx)
}

func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*models.User, error) {
	role := strings.ToLower(strings.TrimSpace(in.Role))
	if role == "" {
		role = models.RoleCustomer
	}
	errs := fieldErrors{}
	validateAccount(errs, in.Username, in.Email, in.Password)
	validateRole(errs, role)
	validateOptionalPhone(errs, in.Phone)
	if err := errs.err(); err != nil {
		return nil, err
	}
	user := &models.User{
		Username: strings.TrimSpace(in.Username),
		Email:    normalizeEmail(in.Email),
		Role:     role,
		Position: strings.TrimSpace(in.Position),
		Phone:    in.Phone,
	}
	if err := s.create(ctx, user, in.Password); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"user_id": user.ID, "role": role}).Info("user created")
	return user, nil
}

// Update applies changes to an account. allowRole is false for profile
// edits so customers cannot promote themselves.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, in UpdateUserInput, allowRole bool) (*models.User, error) {
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, notFound(err, "User")
	}

	errs := fieldErrors{}
	if in.Username != nil && strings.TrimSpace(*in.Username) == "" {
		errs.add("username", "must not be empty")
	}
	if in.Email != nil && !utils.ValidateEmail(*in.Email) {
		errs.add("email", "must be a valid email address")
	}
	if in.Password != nil && len(*in.Password) < MinPasswordLength {
		errs.add("password", fmt.Sprintf("must be at least %d characters", MinPasswordLength))
	}
	if in.Role != nil {
		if !allowRole {
			errs.add("role", "cannot be changed")
		} else {
			validateRole(errs, strings.ToLower(strings.TrimSpace(*in.Role)))
		}
	}
	if in.Phone != nil {
		validateOptionalPhone(errs, *in.Phone)
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	if in.Username != nil {
		user.Username = strings.TrimSpace(*in.Username)
	}
	if in.Email != nil {
		user.Email = normalizeEmail(*in.Email)
	}
	if in.Password != nil {
		hash, err := utils.HashPassword(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.Password = hash
	}
	if in.Role != nil {
		user.Role = strings.ToLower(strings.TrimSpace(*in.Role))
	}
	if in.Position != nil {
		user.Position = strings.TrimSpace(*in.Position)
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if err := s.store.SaveUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, &ConflictError{Message: "Email already registered"}
		}
		return nil, fmt.Errorf("save user: %w", err)
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteUser(ctx, id); err != nil {
		return notFound(err, "User")
	}
	s.log.WithField("user_id", id).Info("user deleted")
	return nil
}
