package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/shiftmatch/staffing-api/internal/constants"
	"github.com/shiftmatch/staffing-api/internal/dto"
	apierrors "github.com/shiftmatch/staffing-api/internal/errors"
	"github.com/shiftmatch/staffing-api/internal/middleware"
	"github.com/shiftmatch/staffing-api/internal/models"
	"github.com/shiftmatch/staffing-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Signup registers a new account with its profile.
func (h *AuthHandler) Signup(c *gin.Context) {
	type SignupRequest struct {
		Email           string          `json:"email" binding:"required"`
		Password        string          `json:"password" binding:"required"`
		ConfirmPassword string          `json:"confirm_password" binding:"required"`
		FullName        string          `json:"full_name" binding:"required"`
		Phone           string          `json:"phone" binding:"required"`
		Company         string          `json:"company"`
		Location        string          `json:"location"`
		Role            models.UserRole `json:"role" binding:"required,oneof=organizer staff"`
	}

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Signup(services.SignupInput{
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		FullName:        req.FullName,
		Phone:           req.Phone,
		Company:         req.Company,
		Location:        req.Location,
		Role:            req.Role,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// Login authenticates a user as the asserted role and initializes the
// session. A role mismatch tears down any session state so no partially
// authenticated state persists.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string          `json:"email" binding:"required"`
		Password string          `json:"password" binding:"required"`
		Role     models.UserRole `json:"role" binding:"required,oneof=organizer staff"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Login(services.LoginInput{
		Email:        req.Email,
		Password:     req.Password,
		AssertedRole: req.Role,
	})
	if err != nil {
		var mismatch *services.RoleMismatchError
		if errors.As(err, &mismatch) {
			session := sessions.Default(c)
			session.Clear()
			_ = session.Save()

			article := "an Organizer"
			if mismatch.RegisteredRole == models.RoleStaff {
				article = "Staff"
			}
			apierrors.RoleMismatch(c, fmt.Sprintf("This account is registered as %s. Please select the correct role.", article))
			return
		}
		respondAuthError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMissingFields),
		errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrPasswordMismatch),
		errors.Is(err, services.ErrCompanyRequired),
		errors.Is(err, services.ErrLocationRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, "This email is already registered. Please try logging in instead.")
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrProfileFetchFailed),
		errors.Is(err, services.ErrFailedToHashPassword):
		apierrors.InternalError(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
