package identity_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/teamtracker/teamtracker-api/internal/identity"
	"github.com/golang-jwt/jwt/v5"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestIdentityClient(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Identity Client Suite")
}

// signedToken builds an unverified-parseable JWT with the given expiry.
func signedToken(exp time.Time) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "uid-1",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	Expect(err).NotTo(HaveOccurred())
	return signed
}

var _ = Describe("Identity Client", func() {
	var (
		server  *httptest.Server
		client  *identity.Client
		mux     *http.ServeMux
		ctx     context.Context
		lastReq *http.Request
	)

	newClient := func(serviceKey string) *identity.Client {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		return identity.NewClient(identity.Config{
			BaseURL:    server.URL,
			AnonKey:    "anon-key",
			ServiceKey: serviceKey,
		}, logger)
	}

	BeforeEach(func() {
		mux = http.NewServeMux()
		wrapped := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lastReq = r
			mux.ServeHTTP(w, r)
		})
		server = httptest.NewServer(wrapped)
		client = newClient("service-key")
		ctx = context.Background()
	})

	AfterEach(func() {
		server.Close()
	})

	Describe("SignUp", func() {
		It("should return the created user", func() {
			mux.HandleFunc("/auth/v1/signup", func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]string{
					"id":    "uid-1",
					"email": "new@example.com",
				})
			})

			user, err := client.SignUp(ctx, "new@example.com", "longenough")
			Expect(err).NotTo(HaveOccurred())
			Expect(user.ID).To(Equal("uid-1"))
			Expect(lastReq.Header.Get("apikey")).To(Equal("anon-key"))
		})

		It("should map a registered-email rejection to ErrEmailTaken", func() {
			mux.HandleFunc("/auth/v1/signup", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(map[string]string{
					"msg": "User already registered",
				})
			})

			_, err := client.SignUp(ctx, "taken@example.com", "longenough")
			Expect(err).To(MatchError(identity.ErrEmailTaken))
		})
	})

	Describe("SignInWithPassword", func() {
		It("should return the session on success", func() {
			mux.HandleFunc("/auth/v1/token", func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Query().Get("grant_type")).To(Equal("password"))
				json.NewEncoder(w).Encode(map[string]interface{}{
					"access_token": "access-token",
					"token_type":   "bearer",
					"expires_in":   3600,
					"user":         map[string]string{"id": "uid-1", "email": "someone@example.com"},
				})
			})

			session, err := client.SignInWithPassword(ctx, "someone@example.com", "secretpass")
			Expect(err).NotTo(HaveOccurred())
			Expect(session.AccessToken).To(Equal("access-token"))
			Expect(session.User.ID).To(Equal("uid-1"))
		})

		It("should map any credential rejection to ErrInvalidCredentials", func() {
			mux.HandleFunc("/auth/v1/token", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(map[string]string{
					"error_description": "Invalid login credentials",
				})
			})

			_, err := client.SignInWithPassword(ctx, "someone@example.com", "wrong")
			Expect(err).To(MatchError(identity.ErrInvalidCredentials))
		})
	})

	Describe("UserFromToken", func() {
		It("should resolve the token through the provider", func() {
			token := signedToken(time.Now().Add(time.Hour))
			mux.HandleFunc("/auth/v1/user", func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Header.Get("Authorization")).To(Equal("Bearer " + token))
				json.NewEncoder(w).Encode(map[string]string{
					"id":    "uid-1",
					"email": "someone@example.com",
				})
			})

			user, err := client.UserFromToken(ctx, token)
			Expect(err).NotTo(HaveOccurred())
			Expect(user.ID).To(Equal("uid-1"))
		})

		It("should short-circuit an expired token without a network call", func() {
			called := false
			mux.HandleFunc("/auth/v1/user", func(w http.ResponseWriter, r *http.Request) {
				called = true
			})

			_, err := client.UserFromToken(ctx, signedToken(time.Now().Add(-time.Hour)))
			Expect(err).To(MatchError(identity.ErrTokenExpired))
			Expect(called).To(BeFalse())
		})

		It("should map a provider rejection to ErrInvalidToken", func() {
			mux.HandleFunc("/auth/v1/user", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"msg": "invalid JWT"})
			})

			_, err := client.UserFromToken(ctx, signedToken(time.Now().Add(time.Hour)))
			Expect(err).To(MatchError(identity.ErrInvalidToken))
		})

		It("should treat an opaque non-JWT token as provider-resolvable", func() {
			mux.HandleFunc("/auth/v1/user", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
			})

			_, err := client.UserFromToken(ctx, "not-a-jwt")
			Expect(err).To(MatchError(identity.ErrInvalidToken))
		})
	})

	Describe("admin operations", func() {
		It("should refuse admin calls without a service key", func() {
			client = newClient("")

			_, err := client.AdminUpdateEmail(ctx, "uid-1", "new@example.com")
			Expect(err).To(MatchError(identity.ErrAdminKeyMissing))

			err = client.AdminDeleteUser(ctx, "uid-1")
			Expect(err).To(MatchError(identity.ErrAdminKeyMissing))
		})

		It("should authenticate admin calls with the service key", func() {
			mux.HandleFunc("/auth/v1/admin/users/uid-1", func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Header.Get("apikey")).To(Equal("service-key"))
				switch r.Method {
				case http.MethodPut:
					json.NewEncoder(w).Encode(map[string]string{
						"id":    "uid-1",
						"email": "new@example.com",
					})
				case http.MethodDelete:
					w.WriteHeader(http.StatusOK)
				}
			})

			user, err := client.AdminUpdateEmail(ctx, "uid-1", "new@example.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(user.Email).To(Equal("new@example.com"))

			Expect(client.AdminDeleteUser(ctx, "uid-1")).To(Succeed())
		})

		It("should tolerate deleting an already-absent identity", func() {
			mux.HandleFunc("/auth/v1/admin/users/uid-gone", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			})

			Expect(client.AdminDeleteUser(ctx, "uid-gone")).To(Succeed())
		})
	})
})
