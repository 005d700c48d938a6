package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/tuneup/accounts-api/internal/core/domain"
)

type stubAccountService struct {
	registerFn     func(ctx context.Context, candidate *domain.User) domain.AuthResult
	authenticateFn func(ctx context.Context, email, password string) domain.AuthResult
	findByIDFn     func(ctx context.Context, id int) (*domain.User, error)
	findByEmailFn  func(ctx context.Context, email string) (*domain.User, error)
}

func (s *stubAccountService) Register(ctx context.Context, candidate *domain.User) domain.AuthResult {
	return s.registerFn(ctx, candidate)
}

func (s *stubAccountService) Authenticate(ctx context.Context, email, password string) domain.AuthResult {
	return s.authenticateFn(ctx, email, password)
}

func (s *stubAccountService) FindByID(ctx context.Context, id int) (*domain.User, error) {
	return s.findByIDFn(ctx, id)
}

func (s *stubAccountService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.findByEmailFn(ctx, email)
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestSignup_Success(t *testing.T) {
	stub := &stubAccountService{
		registerFn: func(_ context.Context, candidate *domain.User) domain.AuthResult {
			if candidate.Email != "a@x.com" || candidate.Username != "alice" || candidate.Role != "admin" {
				t.Fatalf("unexpected candidate: %+v", candidate)
			}
			saved := *candidate
			saved.ID = 1
			saved.Role = "ADMIN"
			return domain.AuthSuccess("tok123", &saved, "User created successfully")
		},
	}
	h := NewAccountHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/user/signup",
		`{"email":"a@x.com","username":"alice","password":"p1","role":"admin"}`)
	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["status"] != "success" {
		t.Fatalf("unexpected status: %v", resp["status"])
	}
	if resp["token"] != "tok123" {
		t.Fatalf("unexpected token: %v", resp["token"])
	}
	if resp["expiresIn"] != float64(3600) {
		t.Fatalf("unexpected expiresIn: %v", resp["expiresIn"])
	}
	if resp["message"] != "User created successfully" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["id"] != float64(1) || user["role"] != "ADMIN" {
		t.Fatalf("unexpected user payload: %v", resp["user"])
	}
	if _, leaked := user["password"]; leaked {
		t.Fatalf("password leaked in response")
	}
}

func TestSignup_EmptyBody(t *testing.T) {
	h := NewAccountHandler(&stubAccountService{
		registerFn: func(context.Context, *domain.User) domain.AuthResult {
			t.Fatalf("service should not be reached")
			return domain.AuthResult{}
		},
	})

	c, rec := newTestContext(t, http.MethodPost, "/user/signup", "")
	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["message"] != "User data is required" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

func TestSignup_NullBody(t *testing.T) {
	h := NewAccountHandler(&stubAccountService{
		registerFn: func(context.Context, *domain.User) domain.AuthResult {
			t.Fatalf("service should not be reached")
			return domain.AuthResult{}
		},
	})

	// A JSON-literal null decodes without a bind error but carries no user
	// data; it is rejected like a missing body.
	c, rec := newTestContext(t, http.MethodPost, "/user/signup", "null")
	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["message"] != "User data is required" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

func TestSignup_MissingFields(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		message string
	}{
		{"no email", `{"username":"alice","password":"p1"}`, "Email is required"},
		{"no password", `{"email":"a@x.com","username":"alice"}`, "Password is required"},
		{"no username", `{"email":"a@x.com","password":"p1"}`, "Username is required"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewAccountHandler(&stubAccountService{
				registerFn: func(context.Context, *domain.User) domain.AuthResult {
					t.Fatalf("service should not be reached")
					return domain.AuthResult{}
				},
			})

			c, rec := newTestContext(t, http.MethodPost, "/user/signup", tc.body)
			if err := h.Signup(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			resp := decodeBody(t, rec)
			if resp["message"] != tc.message {
				t.Fatalf("expected %q, got %v", tc.message, resp["message"])
			}
		})
	}
}

func TestSignup_MalformedBody(t *testing.T) {
	h := NewAccountHandler(&stubAccountService{
		registerFn: func(context.Context, *domain.User) domain.AuthResult {
			t.Fatalf("service should not be reached")
			return domain.AuthResult{}
		},
	})

	c, rec := newTestContext(t, http.MethodPost, "/user/signup", `{"email": not-json`)
	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	msg, _ := resp["message"].(string)
	if !strings.HasPrefix(msg, "An unexpected error occurred:") {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestSignup_ServiceRejection(t *testing.T) {
	h := NewAccountHandler(&stubAccountService{
		registerFn: func(context.Context, *domain.User) domain.AuthResult {
			return domain.AuthError("User with this email already exists")
		},
	})

	c, rec := newTestContext(t, http.MethodPost, "/user/signup",
		`{"email":"a@x.com","username":"alice","password":"p1"}`)
	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["status"] != "error" || resp["message"] != "User with this email already exists" {
		t.Fatalf("unexpected response: %v", resp)
	}
}

func TestSignin_Success(t *testing.T) {
	h := NewAccountHandler(&stubAccountService{
		authenticateFn: func(_ context.Context, email, password string) domain.AuthResult {
			if email != "a@x.com" || password != "p1" {
				t.Fatalf("unexpected credentials: %s %s", email, password)
			}
			return domain.AuthSuccess("tok456", &domain.User{ID: 1, Email: email, Username: "alice", Role: "USER"}, "")
		},
	})

	c, rec := newTestContext(t, http.MethodPost, "/user/signin", `{"email":"a@x.com","password":"p1"}`)
	if err := h.Signin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["token"] != "tok456" || resp["expiresIn"] != float64(3600) {
		t.Fatalf("unexpected response: %v", resp)
	}
}

func TestSignin_InvalidCredentials(t *testing.T) {
	h := NewAccountHandler(&stubAccountService{
		authenticateFn: func(context.Context, string, string) domain.AuthResult {
			return domain.AuthError("Invalid Credentials")
		},
	})

	c, rec := newTestContext(t, http.MethodPost, "/user/signin", `{"email":"a@x.com","password":"wrong"}`)
	if err := h.Signin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["message"] != "Invalid Credentials" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

func TestGetByID_Found(t *testing.T) {
	h := NewAccountHandler(&stubAccountService{
		findByIDFn: func(_ context.Context, id int) (*domain.User, error) {
			if id != 7 {
				t.Fatalf("unexpected id: %d", id)
			}
			return &domain.User{ID: 7, Email: "a@x.com", Username: "alice", Role: "USER"}, nil
		},
	})

	c, rec := newTestContext(t, http.MethodGet, "/user/7", "")
	c.SetParamNames("id")
	c.SetParamValues("7")
	if err := h.GetByID(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["id"] != float64(7) || resp["email"] != "a@x.com" {
		t.Fatalf("unexpected response: %v", resp)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	h := NewAccountHandler(&stubAccountService{
		findByIDFn: func(context.Context, int) (*domain.User, error) {
			return nil, nil
		},
	})

	c, rec := newTestContext(t, http.MethodGet, "/user/99", "")
	c.SetParamNames("id")
	c.SetParamValues("99")
	if err := h.GetByID(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["status"] != "error" || resp["message"] != "user not found" {
		t.Fatalf("unexpected response: %v", resp)
	}
}

func TestGetByID_InvalidID(t *testing.T) {
	h := NewAccountHandler(&stubAccountService{
		findByIDFn: func(context.Context, int) (*domain.User, error) {
			t.Fatalf("service should not be reached")
			return nil, nil
		},
	})

	c, rec := newTestContext(t, http.MethodGet, "/user/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")
	if err := h.GetByID(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestMe_ReturnsCaller(t *testing.T) {
	h := NewAccountHandler(&stubAccountService{
		findByEmailFn: func(_ context.Context, email string) (*domain.User, error) {
			if email != "a@x.com" {
				t.Fatalf("unexpected email: %s", email)
			}
			return &domain.User{ID: 1, Email: email, Username: "alice", Role: "USER"}, nil
		},
	})

	c, rec := newTestContext(t, http.MethodGet, "/user/me", "")
	c.Set("email", "a@x.com")
	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestMe_MissingClaims(t *testing.T) {
	h := NewAccountHandler(&stubAccountService{})

	c, _ := newTestContext(t, http.MethodGet, "/user/me", "")
	err := h.Me(c)
	if err == nil {
		t.Fatalf("expected error")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
