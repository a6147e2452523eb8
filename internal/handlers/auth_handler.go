package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "assetledger/internal/errors"
	"assetledger/internal/logger"
	"assetledger/internal/middleware"
	"assetledger/internal/models"
	"assetledger/internal/services"
	"assetledger/internal/session"
)

// SessionConfig controls how session tokens are signed and delivered.
type SessionConfig struct {
	Secret       string
	TTL          time.Duration
	SecureCookie bool
}

// AuthHandler handles signup, login and logout.
type AuthHandler struct {
	userService services.UserServicer
	revoker     session.Revoker
	session     SessionConfig
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userService services.UserServicer, revoker session.Revoker, cfg SessionConfig) *AuthHandler {
	return &AuthHandler{userService: userService, revoker: revoker, session: cfg}
}

// SignupRequest represents the signup request payload
type SignupRequest struct {
	Email     string `json:"email" form:"email" binding:"required,email,max=255"`
	Password  string `json:"password" form:"password" binding:"required,min=8,max=128"`
	FirstName string `json:"first_name" form:"first_name" binding:"max=100"`
	LastName  string `json:"last_name" form:"last_name" binding:"max=100"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// UserResponse represents the user data in the response
type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// AuthResponse represents the authentication response with token
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// Signup handles user registration
// @Summary     Sign up
// @Description Register a new user and start a session
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body SignupRequest true "User registration data"
// @Success     201 {object} AuthResponse "User registered and session issued"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Email already registered"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /signup/ [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBind(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.startSession(c, http.StatusCreated, user)
}

// Login handles user login
// @Summary     Log in
// @Description Authenticate a user and start a session
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "User login credentials"
// @Success     200 {object} AuthResponse "User authenticated and session issued"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /login/ [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	user, err := h.userService.AttemptLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.startSession(c, http.StatusOK, user)
}

// Logout ends the current session
// @Summary     Log out
// @Description Revoke the current session and clear the session cookie
// @Tags        auth
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} MessageResponse "Logged out"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /logout/ [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID := c.GetString(middleware.ContextSessionID)
	if sessionID == "" {
		respondWithError(c, apperrors.ErrUnauthorized)
		return
	}

	ttl := time.Until(c.GetTime(middleware.ContextExpiresAt))
	if err := h.revoker.Revoke(c.Request.Context(), sessionID, ttl); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	h.setCookie(c, "", -1)
	logger.Get().Infow("session ended", "user_id", c.GetString(middleware.ContextUserID))
	c.JSON(http.StatusOK, MessageResponse{Message: "Logged out"})
}

func (h *AuthHandler) startSession(c *gin.Context, status int, user *models.User) {
	token, claims, err := middleware.GenerateSessionToken(user, h.session.Secret, h.session.TTL)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	h.setCookie(c, token, int(h.session.TTL.Seconds()))
	c.JSON(status, AuthResponse{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		User: UserResponse{
			ID:        user.ID,
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
		},
	})
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, value, maxAge, "/", "", h.session.SecureCookie, true)
}
