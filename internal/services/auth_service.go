package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shiftmatch/staffing-api/internal/constants"
	"github.com/shiftmatch/staffing-api/internal/models"
	"github.com/shiftmatch/staffing-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrMissingFields        = errors.New("please fill in all required fields")
	ErrInvalidEmail         = errors.New("please enter a valid email address")
	ErrPasswordMismatch     = errors.New("passwords do not match")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrCompanyRequired      = errors.New("company or organization name is required")
	ErrLocationRequired     = errors.New("location is required")
	ErrEmailTaken           = errors.New("this email is already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrProfileFetchFailed   = errors.New("error fetching user profile")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// emailPattern accepts local@domain.tld; whitespace and bare domains are
// rejected before any backend call is made.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RoleMismatchError is returned when a login asserts a role other than the
// one the profile was registered with. The registered role is carried so the
// caller can name it in the message.
type RoleMismatchError struct {
	RegisteredRole models.UserRole
}

func (e *RoleMismatchError) Error() string {
	return fmt.Sprintf("this account is registered as %s", e.RegisteredRole)
}

// AuthService handles signup, login, and the role gate.
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// SignupInput represents the required information to create an account.
type SignupInput struct {
	Email           string
	Password        string
	ConfirmPassword string
	FullName        string
	Phone           string
	Company         string
	Location        string
	Role            models.UserRole
}

// Signup validates the input and creates the account with its profile in a
// single step. Validation failures are ordered: missing fields, email format,
// password confirmation, password length, then role-specific fields. The
// first violated precondition wins and no backend call is made.
func (s *AuthService) Signup(input SignupInput) (*models.User, error) {
	if strings.TrimSpace(input.Email) == "" ||
		input.Password == "" ||
		strings.TrimSpace(input.FullName) == "" ||
		strings.TrimSpace(input.Phone) == "" {
		return nil, ErrMissingFields
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}

	if input.Password != input.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if input.Role == models.RoleOrganizer && strings.TrimSpace(input.Company) == "" {
		return nil, ErrCompanyRequired
	}
	if strings.TrimSpace(input.Location) == "" {
		return nil, ErrLocationRequired
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	company := ""
	if input.Role == models.RoleOrganizer {
		company = input.Company
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         input.Role,
		FullName:     input.FullName,
		Phone:        input.Phone,
		Company:      company,
		Location:     input.Location,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// LoginInput holds the credentials and the role the caller is logging in as.
type LoginInput struct {
	Email        string
	Password     string
	AssertedRole models.UserRole
}

// Login verifies credentials and enforces the role gate: the role asserted
// at login must match the role the profile was registered with, otherwise a
// RoleMismatchError is returned and no session must be established.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, ErrMissingFields
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.Role != input.AssertedRole {
		return nil, &RoleMismatchError{RegisteredRole: user.Role}
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}
