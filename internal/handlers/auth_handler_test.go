package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "assetledger/internal/errors"
	"assetledger/internal/middleware"
	"assetledger/internal/models"
	"assetledger/internal/validator"
)

const (
	testUserID  = "0190a0b0-0000-7000-8000-000000000001"
	testAssetID = "0190a0b0-0000-7000-8000-0000000000a1"
	testDocID   = "0190a0b0-0000-7000-8000-0000000000d1"
)

// --- mock services ---

type mockUserService struct {
	createUserFn     func(email, password, firstName, lastName string) (*models.User, error)
	getUserByEmailFn func(email string) (*models.User, error)
	getUserByIDFn    func(id string) (*models.User, error)
	verifyPasswordFn func(user *models.User, password string) bool
	attemptLoginFn   func(email, password string) (*models.User, error)
}

func (m *mockUserService) CreateUser(_ context.Context, email, password, firstName, lastName string) (*models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(email, password, firstName, lastName)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	if m.getUserByEmailFn != nil {
		return m.getUserByEmailFn(email)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByID(_ context.Context, id string) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(id)
	}
	return &models.User{}, nil
}

func (m *mockUserService) VerifyPassword(user *models.User, password string) bool {
	if m.verifyPasswordFn != nil {
		return m.verifyPasswordFn(user, password)
	}
	return true
}

func (m *mockUserService) AttemptLogin(_ context.Context, email, password string) (*models.User, error) {
	if m.attemptLoginFn != nil {
		return m.attemptLoginFn(email, password)
	}
	return &models.User{Base: models.Base{ID: testUserID}, Email: email}, nil
}

type recordingRevoker struct {
	revoked map[string]time.Duration
	err     error
}

func (r *recordingRevoker) Revoke(_ context.Context, sessionID string, ttl time.Duration) error {
	if r.err != nil {
		return r.err
	}
	if r.revoked == nil {
		r.revoked = map[string]time.Duration{}
	}
	r.revoked[sessionID] = ttl
	return nil
}

func (r *recordingRevoker) IsRevoked(_ context.Context, sessionID string) (bool, error) {
	_, ok := r.revoked[sessionID]
	return ok, r.err
}

// --- test helpers ---

var testSession = SessionConfig{Secret: "handler-test-secret", TTL: time.Hour}

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func setupAuthRouter(handler *AuthHandler) *gin.Engine {
	r := gin.New()
	r.POST("/signup/", handler.Signup)
	r.POST("/login/", handler.Login)
	r.POST("/logout/", injectSession(testUserID, "session-1", time.Now().Add(time.Hour)), handler.Logout)
	return r
}

func injectUserID(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, uid)
		c.Next()
	}
}

func injectSession(uid, sessionID string, expiresAt time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, uid)
		c.Set(middleware.ContextSessionID, sessionID)
		c.Set(middleware.ContextExpiresAt, expiresAt)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

func assertFieldError(t *testing.T, result map[string]interface{}, field string) {
	t.Helper()
	assertErrorCode(t, result, "VALIDATION_ERROR")
	errObj := result["error"].(map[string]interface{})
	fields, _ := errObj["fields"].(map[string]interface{})
	if _, ok := fields[field]; !ok {
		t.Errorf("expected field error for %q, got %v", field, errObj["fields"])
	}
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c
		}
	}
	return nil
}

// --- tests ---

func TestAuthHandler_Signup(t *testing.T) {
	t.Run("returns 201 with session", func(t *testing.T) {
		userSvc := &mockUserService{
			createUserFn: func(email, _, firstName, lastName string) (*models.User, error) {
				return &models.User{
					Base:      models.Base{ID: testUserID},
					Email:     email,
					FirstName: firstName,
					LastName:  lastName,
				}, nil
			},
		}
		r := setupAuthRouter(NewAuthHandler(userSvc, &recordingRevoker{}, testSession))

		rec := doRequest(r, "POST", "/signup/",
			`{"email":"test@example.com","password":"password123","first_name":"John","last_name":"Doe"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		token, _ := result["token"].(string)
		if token == "" {
			t.Fatal("expected non-empty token")
		}
		claims, err := middleware.ParseSessionToken(token, testSession.Secret)
		if err != nil || claims.UserID != testUserID {
			t.Errorf("expected a valid token for the new user, got %+v, %v", claims, err)
		}
		cookie := sessionCookie(rec)
		if cookie == nil || cookie.Value != token || !cookie.HttpOnly {
			t.Errorf("expected HttpOnly session cookie carrying the token, got %+v", cookie)
		}
		user := result["user"].(map[string]interface{})
		if user["email"] != "test@example.com" {
			t.Errorf("expected email test@example.com, got %v", user["email"])
		}
	})

	t.Run("returns 400 on missing email", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockUserService{}, &recordingRevoker{}, testSession))

		rec := doRequest(r, "POST", "/signup/", `{"password":"password123"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertFieldError(t, parseJSON(t, rec), "email")
	})

	t.Run("returns 400 on short password", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockUserService{}, &recordingRevoker{}, testSession))

		rec := doRequest(r, "POST", "/signup/", `{"email":"test@example.com","password":"short"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertFieldError(t, parseJSON(t, rec), "password")
	})

	t.Run("returns 400 on malformed body", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockUserService{}, &recordingRevoker{}, testSession))

		rec := doRequest(r, "POST", "/signup/", `{"email":`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 409 on duplicate email", func(t *testing.T) {
		userSvc := &mockUserService{
			createUserFn: func(_, _, _, _ string) (*models.User, error) {
				return nil, apperrors.ErrDuplicateEmail
			},
		}
		r := setupAuthRouter(NewAuthHandler(userSvc, &recordingRevoker{}, testSession))

		rec := doRequest(r, "POST", "/signup/", `{"email":"dup@example.com","password":"password123"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_EMAIL")
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("returns 200 with session", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockUserService{}, &recordingRevoker{}, testSession))

		rec := doRequest(r, "POST", "/login/", `{"email":"test@example.com","password":"password123"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if sessionCookie(rec) == nil {
			t.Error("expected session cookie")
		}
	})

	t.Run("returns 401 on invalid credentials", func(t *testing.T) {
		userSvc := &mockUserService{
			attemptLoginFn: func(_, _ string) (*models.User, error) {
				return nil, apperrors.ErrInvalidCredentials
			},
		}
		r := setupAuthRouter(NewAuthHandler(userSvc, &recordingRevoker{}, testSession))

		rec := doRequest(r, "POST", "/login/", `{"email":"test@example.com","password":"wrong"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_CREDENTIALS")
		if sessionCookie(rec) != nil {
			t.Error("no cookie expected on failed login")
		}
	})

	t.Run("returns 400 on missing password", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockUserService{}, &recordingRevoker{}, testSession))

		rec := doRequest(r, "POST", "/login/", `{"email":"test@example.com"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertFieldError(t, parseJSON(t, rec), "password")
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	t.Run("revokes session and clears cookie", func(t *testing.T) {
		revoker := &recordingRevoker{}
		r := setupAuthRouter(NewAuthHandler(&mockUserService{}, revoker, testSession))

		rec := doRequest(r, "POST", "/logout/", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		ttl, ok := revoker.revoked["session-1"]
		if !ok {
			t.Fatal("expected session to be revoked")
		}
		if ttl <= 0 || ttl > time.Hour {
			t.Errorf("expected ttl up to the token expiry, got %v", ttl)
		}
		cookie := sessionCookie(rec)
		if cookie == nil || cookie.MaxAge >= 0 {
			t.Errorf("expected cookie to be cleared, got %+v", cookie)
		}
	})

	t.Run("returns 500 when revocation fails", func(t *testing.T) {
		revoker := &recordingRevoker{err: context.DeadlineExceeded}
		r := setupAuthRouter(NewAuthHandler(&mockUserService{}, revoker, testSession))

		rec := doRequest(r, "POST", "/logout/", "")

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INTERNAL_ERROR")
	})
}
