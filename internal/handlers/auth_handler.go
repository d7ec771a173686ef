package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "budgetdash/internal/errors"
	"budgetdash/internal/logger"
	"budgetdash/internal/middleware"
	"budgetdash/internal/services"
)

const (
	// LoginPath is where the browser is sent after signing out.
	LoginPath = "/Account/Login"
	homePath  = "/"
)

// AuthHandler handles sign-in, registration and sign-out.
type AuthHandler struct {
	identityService services.IdentityServicer
	issuer          *middleware.TokenIssuer
	auditService    services.AuditServicer
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(identityService services.IdentityServicer, issuer *middleware.TokenIssuer, auditService services.AuditServicer) *AuthHandler {
	return &AuthHandler{identityService: identityService, issuer: issuer, auditService: auditService}
}

// LoginForm represents the login form fields
type LoginForm struct {
	Email     string `form:"email" json:"email"`
	Password  string `form:"password" json:"password"`
	ReturnURL string `form:"returnUrl" json:"returnUrl"`
}

// RegisterForm represents the registration form fields
type RegisterForm struct {
	Email           string `form:"email" json:"email"`
	Password        string `form:"password" json:"password"`
	ConfirmPassword string `form:"confirmPassword" json:"confirmPassword"`
}

// AuthResult is the response of every identity endpoint.
type AuthResult struct {
	Success  bool   `json:"success"`
	Redirect string `json:"redirect,omitempty"`
	Error    string `json:"error,omitempty"`
}

// UserResponse represents the user data in the response
type UserResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// localRedirect returns returnURL when it is a path on this site and "/" otherwise.
func localRedirect(returnURL string) string {
	if !strings.HasPrefix(returnURL, "/") ||
		strings.HasPrefix(returnURL, "//") ||
		strings.HasPrefix(returnURL, "/\\") {
		return homePath
	}
	return returnURL
}

// respondAuthError writes {success:false, error:<code>} with the error's status.
func respondAuthError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		logger.Get().Errorw("unexpected error",
			"error", err.Error(),
			"path", c.Request.URL.Path,
			"request_id", middleware.RequestID(c),
		)
		appErr = apperrors.ErrInternalServer
	} else if appErr.Internal != nil {
		logger.Get().Errorw("app error",
			"code", appErr.Code,
			"internal", appErr.Internal.Error(),
			"path", c.Request.URL.Path,
			"request_id", middleware.RequestID(c),
		)
	}
	c.JSON(appErr.StatusCode, AuthResult{Success: false, Error: appErr.Code})
}

// Login handles sign-in
// @Summary     Sign in
// @Description Verify email and password and start a cookie session
// @Tags        auth
// @Accept      x-www-form-urlencoded
// @Produce     json
// @Param       email     formData string true  "Email"
// @Param       password  formData string true  "Password"
// @Param       returnUrl formData string false "Local path to return to"
// @Success     200 {object} AuthResult "Signed in"
// @Failure     400 {object} AuthResult "EmailAndPasswordRequired"
// @Failure     401 {object} AuthResult "InvalidCredentials"
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		respondAuthError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.identityService.SignIn(form.Email, form.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	if err := h.issuer.SetSessionCookie(c, user); err != nil {
		respondAuthError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	h.auditService.Log(user.ID, "LOGIN", "user", user.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, AuthResult{Success: true, Redirect: localRedirect(form.ReturnURL)})
}

// Register handles registration
// @Summary     Register
// @Description Create an account and sign it in
// @Tags        auth
// @Accept      x-www-form-urlencoded
// @Produce     json
// @Param       email           formData string true "Email"
// @Param       password        formData string true "Password, at least 6 characters"
// @Param       confirmPassword formData string true "Password confirmation"
// @Success     200 {object} AuthResult "Registered and signed in"
// @Failure     400 {object} AuthResult "EmailAndPasswordRequired, PasswordsDoNotMatch or PasswordTooShort"
// @Failure     409 {object} AuthResult "EmailAlreadyExists"
// @Router      /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var form RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		respondAuthError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.identityService.Register(form.Email, form.Password, form.ConfirmPassword)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	if err := h.issuer.SetSessionCookie(c, user); err != nil {
		respondAuthError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	h.auditService.Log(user.ID, "REGISTER", "user", user.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, AuthResult{Success: true, Redirect: homePath})
}

// Logout handles sign-out
// @Summary     Sign out
// @Description Clear the session cookie
// @Tags        auth
// @Produce     json
// @Success     200 {object} AuthResult "Signed out"
// @Router      /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.issuer.ClearSessionCookie(c)
	c.JSON(http.StatusOK, AuthResult{Success: true, Redirect: LoginPath})
}

// GetProfile returns the user's profile
// @Summary     Get user profile
// @Description Get the signed-in user's profile information
// @Tags        user
// @Produce     json
// @Security    SessionCookie
// @Success     200 {object} UserResponse "User profile"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.identityService.GetUserByID(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": UserResponse{
			ID:          user.ID,
			Email:       user.Email,
			LastLoginAt: user.LastLoginAt,
		},
	})
}
