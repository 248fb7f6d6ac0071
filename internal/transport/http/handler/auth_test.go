package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/ErlanBelekov/tasklist-api/internal/domain"
	"github.com/ErlanBelekov/tasklist-api/internal/transport/http/handler"
	"github.com/ErlanBelekov/tasklist-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// fakeAuthUsecase implements the unexported authUsecaser interface via method
// matching.
type fakeAuthUsecase struct {
	signUp func(ctx context.Context, input usecase.SignUpInput) (*usecase.AuthResult, error)
	signIn func(ctx context.Context, email, password string) (*usecase.AuthResult, error)
}

func (f *fakeAuthUsecase) SignUp(ctx context.Context, input usecase.SignUpInput) (*usecase.AuthResult, error) {
	return f.signUp(ctx, input)
}

func (f *fakeAuthUsecase) SignIn(ctx context.Context, email, password string) (*usecase.AuthResult, error) {
	return f.signIn(ctx, email, password)
}

func newAuthEngine(uc *fakeAuthUsecase) *gin.Engine {
	h := handler.NewAuthHandler(uc, testLogger())
	r := gin.New()
	r.POST("/auth/signup", h.SignUp)
	r.POST("/auth/signin", h.SignIn)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

var testResult = &usecase.AuthResult{
	User:  &domain.User{ID: "user-1", Email: "alice@x.com", Name: "Alice"},
	Token: "header.payload.signature",
}

// ---- SignUp ----

func TestSignUp_InvalidJSON_Returns400(t *testing.T) {
	w := postJSON(t, newAuthEngine(&fakeAuthUsecase{}), "/auth/signup", `{bad json}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestSignUp_InvalidEmail_Returns400(t *testing.T) {
	w := postJSON(t, newAuthEngine(&fakeAuthUsecase{}), "/auth/signup",
		`{"email":"not-an-email","password":"pw","name":"Alice"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestSignUp_MissingName_Returns400(t *testing.T) {
	w := postJSON(t, newAuthEngine(&fakeAuthUsecase{}), "/auth/signup",
		`{"email":"alice@x.com","password":"pw"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestSignUp_DuplicateEmail_Returns409(t *testing.T) {
	uc := &fakeAuthUsecase{
		signUp: func(_ context.Context, _ usecase.SignUpInput) (*usecase.AuthResult, error) {
			return nil, domain.ErrEmailTaken
		},
	}
	w := postJSON(t, newAuthEngine(uc), "/auth/signup",
		`{"email":"alice@x.com","password":"pw","name":"Alice"}`)
	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
}

func TestSignUp_UsecaseError_Returns500(t *testing.T) {
	uc := &fakeAuthUsecase{
		signUp: func(_ context.Context, _ usecase.SignUpInput) (*usecase.AuthResult, error) {
			return nil, errors.New("db down")
		},
	}
	w := postJSON(t, newAuthEngine(uc), "/auth/signup",
		`{"email":"alice@x.com","password":"pw","name":"Alice"}`)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

func TestSignUp_Success_Returns201WithToken(t *testing.T) {
	var got usecase.SignUpInput
	uc := &fakeAuthUsecase{
		signUp: func(_ context.Context, input usecase.SignUpInput) (*usecase.AuthResult, error) {
			got = input
			return testResult, nil
		},
	}
	w := postJSON(t, newAuthEngine(uc), "/auth/signup",
		`{"email":"alice@x.com","password":"pw","name":"Alice"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	if got.Email != "alice@x.com" || got.Password != "pw" || got.Name != "Alice" {
		t.Errorf("usecase input = %+v", got)
	}

	var resp struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token != testResult.Token {
		t.Errorf("token = %q, want %q", resp.Token, testResult.Token)
	}
	if resp.User.ID != testResult.User.ID {
		t.Errorf("user.id = %q, want %q", resp.User.ID, testResult.User.ID)
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Error("response leaks a password field")
	}
}

// ---- SignIn ----

func TestSignIn_InvalidCredentials_Returns401(t *testing.T) {
	uc := &fakeAuthUsecase{
		signIn: func(_ context.Context, _, _ string) (*usecase.AuthResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	w := postJSON(t, newAuthEngine(uc), "/auth/signin",
		`{"email":"alice@x.com","password":"wrong"}`)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestSignIn_UsecaseError_Returns500(t *testing.T) {
	uc := &fakeAuthUsecase{
		signIn: func(_ context.Context, _, _ string) (*usecase.AuthResult, error) {
			return nil, errors.New("db down")
		},
	}
	w := postJSON(t, newAuthEngine(uc), "/auth/signin",
		`{"email":"alice@x.com","password":"pw"}`)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

func TestSignIn_Success_Returns200WithToken(t *testing.T) {
	uc := &fakeAuthUsecase{
		signIn: func(_ context.Context, email, password string) (*usecase.AuthResult, error) {
			if email != "alice@x.com" || password != "pw" {
				t.Errorf("sign in called with %q/%q", email, password)
			}
			return testResult, nil
		},
	}
	w := postJSON(t, newAuthEngine(uc), "/auth/signin",
		`{"email":"alice@x.com","password":"pw"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), testResult.Token) {
		t.Errorf("body %q does not contain the token", w.Body.String())
	}
}
