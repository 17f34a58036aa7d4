package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/teamtracker/teamtracker-api/internal"
	"github.com/teamtracker/teamtracker-api/internal/auth"
	"github.com/teamtracker/teamtracker-api/internal/identity"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// StubAuthService implements auth.ServiceAPI with canned responses
type StubAuthService struct {
	authenticateUser *auth.User
	authenticateErr  error
	loginSession     *identity.Session
	loginErr         error
}

func (s *StubAuthService) Register(_ context.Context, dto auth.RegisterDTO) (*identity.User, error) {
	return &identity.User{ID: "uid-1", Email: dto.Email}, nil
}

func (s *StubAuthService) Login(_ context.Context, dto auth.LoginDTO) (*identity.Session, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.loginSession, nil
}

func (s *StubAuthService) ForgotPassword(_ context.Context, dto auth.ForgotPasswordDTO) error {
	return nil
}

func (s *StubAuthService) ResetPassword(_ context.Context, dto auth.ResetPasswordDTO) error {
	return nil
}

func (s *StubAuthService) ChangePassword(_ context.Context, user *auth.User, dto auth.ChangePasswordDTO) error {
	return nil
}

func (s *StubAuthService) Authenticate(_ context.Context, token string) (*auth.User, error) {
	if s.authenticateErr != nil {
		return nil, s.authenticateErr
	}
	return s.authenticateUser, nil
}

var _ = Describe("Auth Handler", func() {
	var (
		stub    *StubAuthService
		handler *auth.Handler
	)

	BeforeEach(func() {
		stub = &StubAuthService{
			authenticateUser: &auth.User{ID: "uid-1", Email: "someone@example.com"},
		}
		handler = auth.NewHandler(stub)
	})

	Describe("AuthMiddleware", func() {
		var (
			rec   *httptest.ResponseRecorder
			inner http.Handler
			seen  *auth.User
		)

		BeforeEach(func() {
			rec = httptest.NewRecorder()
			seen = nil
			inner = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = auth.UserFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})
		})

		Context("without an Authorization header", func() {
			It("should reject with 401 before the handler runs", func() {
				req := httptest.NewRequest(http.MethodGet, "/api/employees", nil)
				handler.AuthMiddleware(inner).ServeHTTP(rec, req)

				Expect(rec.Code).To(Equal(http.StatusUnauthorized))
				var body internal.ErrorResponse
				Expect(json.NewDecoder(rec.Body).Decode(&body)).To(Succeed())
				Expect(body.Error).To(Equal("No token provided"))
				Expect(seen).To(BeNil())
			})
		})

		Context("with a malformed Authorization header", func() {
			It("should treat it as a missing token", func() {
				req := httptest.NewRequest(http.MethodGet, "/api/employees", nil)
				req.Header.Set("Authorization", "Token abc123")
				handler.AuthMiddleware(inner).ServeHTTP(rec, req)

				Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			})
		})

		Context("with an unresolvable token", func() {
			BeforeEach(func() {
				stub.authenticateErr = internal.ErrInvalidToken
			})

			It("should reject with 403", func() {
				req := httptest.NewRequest(http.MethodGet, "/api/employees", nil)
				req.Header.Set("Authorization", "Bearer stale")
				handler.AuthMiddleware(inner).ServeHTTP(rec, req)

				Expect(rec.Code).To(Equal(http.StatusForbidden))
				var body internal.ErrorResponse
				Expect(json.NewDecoder(rec.Body).Decode(&body)).To(Succeed())
				Expect(body.Error).To(Equal("Invalid or expired token"))
			})
		})

		Context("with a valid token", func() {
			It("should attach the identity to the request context", func() {
				req := httptest.NewRequest(http.MethodGet, "/api/employees", nil)
				req.Header.Set("Authorization", "Bearer good")
				handler.AuthMiddleware(inner).ServeHTTP(rec, req)

				Expect(rec.Code).To(Equal(http.StatusOK))
				Expect(seen).NotTo(BeNil())
				Expect(seen.ID).To(Equal("uid-1"))
			})
		})
	})

	Describe("Login", func() {
		Context("on success", func() {
			BeforeEach(func() {
				stub.loginSession = &identity.Session{
					AccessToken: "access-token",
					User:        identity.User{ID: "uid-1", Email: "someone@example.com"},
				}
			})

			It("should return the token and user", func() {
				req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
					strings.NewReader(`{"email":"someone@example.com","password":"secretpass"}`))
				rec := httptest.NewRecorder()
				handler.Login(rec, req)

				Expect(rec.Code).To(Equal(http.StatusOK))
				var body map[string]interface{}
				Expect(json.NewDecoder(rec.Body).Decode(&body)).To(Succeed())
				Expect(body["message"]).To(Equal("Login successful"))
				Expect(body["token"]).To(Equal("access-token"))
			})
		})

		Context("on credential failure", func() {
			BeforeEach(func() {
				stub.loginErr = internal.ErrInvalidCredentials
			})

			It("should return 400 with the generic message", func() {
				req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
					strings.NewReader(`{"email":"someone@example.com","password":"wrong"}`))
				rec := httptest.NewRecorder()
				handler.Login(rec, req)

				Expect(rec.Code).To(Equal(http.StatusBadRequest))
				var body internal.ErrorResponse
				Expect(json.NewDecoder(rec.Body).Decode(&body)).To(Succeed())
				Expect(body.Error).To(Equal("Invalid email or password"))
			})
		})

		Context("with a malformed body", func() {
			It("should return 400", func() {
				req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
					strings.NewReader(`{not json`))
				rec := httptest.NewRecorder()
				handler.Login(rec, req)

				Expect(rec.Code).To(Equal(http.StatusBadRequest))
			})
		})
	})
})
