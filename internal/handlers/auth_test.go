package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"dailydiet/internal/middleware"
	"dailydiet/internal/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
)

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestRegisterSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.
		ExpectQuery(regexp.QuoteMeta(`SELECT id, username FROM users`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}))
	mock.
		ExpectExec(regexp.QuoteMeta(`INSERT INTO users (id, username, password_hash) VALUES ($1, $2, $3)`)).
		WithArgs(sqlmock.AnyArg(), "demo_user", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	tokens := newTestTokenManager(t)
	router := gin.New()
	router.POST("/auth/register", Register(tokens))

	resp := postJSON(t, router, "/auth/register", map[string]string{
		"username": "demo_user",
		"password": "Secret123",
	})
	mustStatus(t, resp.Code, http.StatusCreated)

	var out map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	userID, _ := out["id"].(string)
	if userID == "" {
		t.Fatalf("expected non-empty user id")
	}

	token := sessionCookieValue(t, resp.Result())
	claims, err := tokens.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("expected token for user %q, got %q", userID, claims.UserID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestRegisterSetsHTTPOnlyCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.
		ExpectQuery(regexp.QuoteMeta(`SELECT id, username FROM users`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}))
	mock.
		ExpectExec(regexp.QuoteMeta(`INSERT INTO users (id, username, password_hash) VALUES ($1, $2, $3)`)).
		WithArgs(sqlmock.AnyArg(), "demo_user", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	router := gin.New()
	router.POST("/auth/register", Register(newTestTokenManager(t)))

	resp := postJSON(t, router, "/auth/register", map[string]string{
		"username": "demo_user",
		"password": "Secret123",
	})
	mustStatus(t, resp.Code, http.StatusCreated)

	for _, cookie := range resp.Result().Cookies() {
		if cookie.Name != middleware.SessionCookieName {
			continue
		}
		if !cookie.HttpOnly {
			t.Fatalf("expected session cookie to be HTTP-only")
		}
		if cookie.Path != "/" {
			t.Fatalf("expected session cookie path %q, got %q", "/", cookie.Path)
		}
		return
	}
	t.Fatalf("expected a session cookie")
}

func TestRegisterDuplicateUsernameCaseInsensitive(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.
		ExpectQuery(regexp.QuoteMeta(`SELECT id, username FROM users`)).
		WillReturnRows(
			sqlmock.NewRows([]string{"id", "username"}).
				AddRow("user-1", "Demo_User"),
		)

	router := gin.New()
	router.POST("/auth/register", Register(newTestTokenManager(t)))

	resp := postJSON(t, router, "/auth/register", map[string]string{
		"username": "demo_user",
		"password": "Secret123",
	})
	mustStatus(t, resp.Code, http.StatusBadRequest)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestRegisterFailsWhenUserScanBreaks(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, mock, cleanup := setupMockDB(t)
	defer cleanup()

	// The stream dies before the duplicate row is reached. A truncated
	// scan must not pass for proof of uniqueness: no insert, 500.
	mock.
		ExpectQuery(regexp.QuoteMeta(`SELECT id, username FROM users`)).
		WillReturnRows(
			sqlmock.NewRows([]string{"id", "username"}).
				AddRow("user-1", "someone_else").
				AddRow("user-2", "demo_user").
				RowError(0, errors.New("connection reset")),
		)

	router := gin.New()
	router.POST("/auth/register", Register(newTestTokenManager(t)))

	resp := postJSON(t, router, "/auth/register", map[string]string{
		"username": "demo_user",
		"password": "Secret123",
	})
	mustStatus(t, resp.Code, http.StatusInternalServerError)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, _, cleanup := setupMockDB(t)
	defer cleanup()

	router := gin.New()
	router.POST("/auth/register", Register(newTestTokenManager(t)))

	resp := postJSON(t, router, "/auth/register", map[string]string{
		"username": "   ",
		"password": "",
	})
	mustStatus(t, resp.Code, http.StatusBadRequest)
}

func TestLoginSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, mock, cleanup := setupMockDB(t)
	defer cleanup()

	hashed, err := utils.HashPassword("Secret123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	mock.
		ExpectQuery(regexp.QuoteMeta(`SELECT id, username, password_hash FROM users WHERE username = $1`)).
		WithArgs("demo_user").
		WillReturnRows(
			sqlmock.NewRows([]string{"id", "username", "password_hash"}).
				AddRow("user-1", "demo_user", hashed),
		)

	tokens := newTestTokenManager(t)
	router := gin.New()
	router.POST("/auth/login", Login(tokens))

	resp := postJSON(t, router, "/auth/login", map[string]string{
		"username": "demo_user",
		"password": "Secret123",
	})
	mustStatus(t, resp.Code, http.StatusOK)

	token := sessionCookieValue(t, resp.Result())
	claims, err := tokens.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Fatalf("expected token for user-1, got %q", claims.UserID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, mock, cleanup := setupMockDB(t)
	defer cleanup()

	hashed, err := utils.HashPassword("SomethingElse")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	mock.
		ExpectQuery(regexp.QuoteMeta(`SELECT id, username, password_hash FROM users WHERE username = $1`)).
		WithArgs("demo_user").
		WillReturnRows(
			sqlmock.NewRows([]string{"id", "username", "password_hash"}).
				AddRow("user-1", "demo_user", hashed),
		)

	router := gin.New()
	router.POST("/auth/login", Login(newTestTokenManager(t)))

	resp := postJSON(t, router, "/auth/login", map[string]string{
		"username": "demo_user",
		"password": "Secret123",
	})
	mustStatus(t, resp.Code, http.StatusUnauthorized)
}

func TestLoginUnknownUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.
		ExpectQuery(regexp.QuoteMeta(`SELECT id, username, password_hash FROM users WHERE username = $1`)).
		WithArgs("nobody").
		WillReturnError(sql.ErrNoRows)

	router := gin.New()
	router.POST("/auth/login", Login(newTestTokenManager(t)))

	resp := postJSON(t, router, "/auth/login", map[string]string{
		"username": "nobody",
		"password": "Secret123",
	})
	mustStatus(t, resp.Code, http.StatusUnauthorized)
}
