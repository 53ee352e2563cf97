package services

import (
	"errors"
	"testing"

	"github.com/shiftmatch/staffing-api/internal/models"
	"github.com/shiftmatch/staffing-api/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthTestService(t *testing.T) *AuthService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return NewAuthService(repository.NewUserRepository(db))
}

func validSignup(role models.UserRole) SignupInput {
	input := SignupInput{
		Email:           "user@example.com",
		Password:        "abc123",
		ConfirmPassword: "abc123",
		FullName:        "Test User",
		Phone:           "+1 555 000 0000",
		Location:        "San Francisco, CA",
		Role:            role,
	}
	if role == models.RoleOrganizer {
		input.Company = "Test Events Co"
	}
	return input
}

func TestAuthService_SignupValidationOrder(t *testing.T) {
	svc := setupAuthTestService(t)

	t.Run("missing fields first", func(t *testing.T) {
		input := validSignup(models.RoleStaff)
		input.Phone = ""
		input.Email = "bad-email" // must not be reached
		_, err := svc.Signup(input)
		require.ErrorIs(t, err, ErrMissingFields)
	})

	t.Run("invalid email before password checks", func(t *testing.T) {
		input := validSignup(models.RoleStaff)
		input.Email = "bad-email"
		input.ConfirmPassword = "different"
		_, err := svc.Signup(input)
		require.ErrorIs(t, err, ErrInvalidEmail)
	})

	t.Run("password mismatch before length", func(t *testing.T) {
		input := validSignup(models.RoleStaff)
		input.Password = "abc12"
		input.ConfirmPassword = "abc1"
		_, err := svc.Signup(input)
		require.ErrorIs(t, err, ErrPasswordMismatch)
	})

	t.Run("five character password rejected", func(t *testing.T) {
		input := validSignup(models.RoleStaff)
		input.Password = "abc12"
		input.ConfirmPassword = "abc12"
		_, err := svc.Signup(input)
		require.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("six character password passes the gates", func(t *testing.T) {
		input := validSignup(models.RoleStaff)
		input.Password = "abc123"
		input.ConfirmPassword = "abc123"
		user, err := svc.Signup(input)
		require.NoError(t, err)
		require.Equal(t, models.RoleStaff, user.Role)
	})

	t.Run("organizer requires company", func(t *testing.T) {
		input := validSignup(models.RoleOrganizer)
		input.Email = "org@example.com"
		input.Company = ""
		_, err := svc.Signup(input)
		require.ErrorIs(t, err, ErrCompanyRequired)
	})

	t.Run("location required for both roles", func(t *testing.T) {
		input := validSignup(models.RoleOrganizer)
		input.Email = "org2@example.com"
		input.Location = ""
		_, err := svc.Signup(input)
		require.ErrorIs(t, err, ErrLocationRequired)
	})
}

func TestAuthService_SignupNormalizesEmail(t *testing.T) {
	svc := setupAuthTestService(t)

	input := validSignup(models.RoleStaff)
	input.Email = "  MixedCase@Example.COM "
	user, err := svc.Signup(input)
	require.NoError(t, err)
	require.Equal(t, "mixedcase@example.com", user.Email)

	// Same address differing only in case is a duplicate
	dup := validSignup(models.RoleStaff)
	dup.Email = "mixedcase@example.com"
	_, err = svc.Signup(dup)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_LoginRoleGate(t *testing.T) {
	svc := setupAuthTestService(t)

	_, err := svc.Signup(validSignup(models.RoleStaff))
	require.NoError(t, err)

	t.Run("matching role succeeds", func(t *testing.T) {
		user, err := svc.Login(LoginInput{
			Email:        "user@example.com",
			Password:     "abc123",
			AssertedRole: models.RoleStaff,
		})
		require.NoError(t, err)
		require.Equal(t, models.RoleStaff, user.Role)
	})

	t.Run("asserting organizer for a staff profile fails", func(t *testing.T) {
		_, err := svc.Login(LoginInput{
			Email:        "user@example.com",
			Password:     "abc123",
			AssertedRole: models.RoleOrganizer,
		})

		var mismatch *RoleMismatchError
		require.True(t, errors.As(err, &mismatch))
		require.Equal(t, models.RoleStaff, mismatch.RegisteredRole)
	})

	t.Run("bad password fails before the role gate", func(t *testing.T) {
		_, err := svc.Login(LoginInput{
			Email:        "user@example.com",
			Password:     "wrong-password",
			AssertedRole: models.RoleOrganizer,
		})
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(LoginInput{
			Email:        "nobody@example.com",
			Password:     "abc123",
			AssertedRole: models.RoleStaff,
		})
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
