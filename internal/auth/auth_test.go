package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/models"
	"storefront/internal/repository/memory"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newService(t *testing.T) (*Service, *memory.UserStore) {
	t.Helper()
	users := memory.New().Users
	return NewService(users, "test-secret", time.Hour), users
}

func signup(t *testing.T, s *Service, email string) *models.User {
	t.Helper()
	u, err := s.Signup(context.Background(), SignupInput{Name: "Sara", Email: email, Phone: "0100", Password: "secret1"})
	require.NoError(t, err)
	return u
}

func TestSignup(t *testing.T) {
	s, users := newService(t)

	u := signup(t, s, "  Sara@Example.COM ")
	assert.Equal(t, "sara@example.com", u.Email)
	assert.Equal(t, models.RoleUser, u.Role)
	assert.Empty(t, u.Password)

	_, err := s.Signup(context.Background(), SignupInput{Name: "Other", Email: "sara@example.com", Phone: "1", Password: "secret1"})
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Equal(t, 1, users.Len())
}

func TestSignupValidation(t *testing.T) {
	tests := []struct {
		name string
		in   SignupInput
		want string
	}{
		{"missing", SignupInput{Email: "a@b.co", Password: "secret1"}, "Please provide all required fields: name, email, phone, password"},
		{"email", SignupInput{Name: "A", Email: "not-an-email", Phone: "1", Password: "secret1"}, "Please provide a valid email address"},
		{"short password", SignupInput{Name: "A", Email: "a@b.co", Phone: "1", Password: "12345"}, "Password must be at least 6 characters long"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, users := newService(t)
			_, err := s.Signup(context.Background(), tt.in)
			var ierr *InputError
			require.ErrorAs(t, err, &ierr)
			assert.Equal(t, tt.want, ierr.Message)
			assert.Zero(t, users.Len())
		})
	}
}

func TestAuthenticate(t *testing.T) {
	s, _ := newService(t)
	u := signup(t, s, "sara@example.com")
	ctx := context.Background()

	p, err := s.Authenticate(ctx, Credentials{Email: "SARA@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, u.ID.Hex(), p.UserID)
	assert.Equal(t, "Sara", p.Name)

	_, err = s.Authenticate(ctx, Credentials{Email: "sara@example.com", Password: "wrong!"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.Authenticate(ctx, Credentials{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.Authenticate(ctx, Credentials{Email: "sara@example.com"})
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestAuthorize(t *testing.T) {
	s, _ := newService(t)
	admin := &Principal{UserID: "1", Role: models.RoleAdmin}
	user := &Principal{UserID: "2", Role: models.RoleUser}

	assert.True(t, s.Authorize(nil, ResourceCatalogRead))
	assert.True(t, s.Authorize(nil, ResourceInquiryCreate))
	assert.False(t, s.Authorize(nil, ResourceProfile))
	assert.True(t, s.Authorize(user, ResourceProfile))
	for _, r := range []Resource{ResourceCatalogWrite, ResourceInquiryRead, ResourceDashboard} {
		assert.False(t, s.Authorize(nil, r))
		assert.False(t, s.Authorize(user, r))
		assert.True(t, s.Authorize(admin, r))
	}
}

func TestTokenRoundTrip(t *testing.T) {
	s, _ := newService(t)
	p := &Principal{UserID: primitive.NewObjectID().Hex(), Email: "a@b.co", Role: models.RoleAdmin}

	token, err := s.IssueToken(p)
	require.NoError(t, err)
	got, err := s.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, p.UserID, got.UserID)
	assert.Equal(t, models.RoleAdmin, got.Role)

	other := NewService(nil, "other-secret", time.Hour)
	_, err = other.ParseToken(token)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	expired := NewService(nil, "test-secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.IssueToken(p)
	require.NoError(t, err)
	_, err = s.ParseToken(old)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestEnsureAdmin(t *testing.T) {
	s, users := newService(t)
	ctx := context.Background()

	u, created, err := s.EnsureAdmin(ctx, AdminSeed{Email: "Admin@Shop.com", Password: "admin123"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.RoleAdmin, u.Role)

	signup(t, s, "promote@shop.com")
	_, created, err = s.EnsureAdmin(ctx, AdminSeed{Email: "promote@shop.com", Password: "newpass1"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 2, users.Len())

	p, err := s.Authenticate(ctx, Credentials{Email: "promote@shop.com", Password: "newpass1"})
	require.NoError(t, err)
	assert.True(t, p.IsAdmin())

	_, _, err = s.EnsureAdmin(ctx, AdminSeed{Email: "x@shop.com", Password: "123"})
	assert.Error(t, err)
}

func TestSafeCallback(t *testing.T) {
	assert.Equal(t, "/dashboard", SafeCallback("", "/dashboard"))
	assert.Equal(t, "/dashboard/stats?x=1", SafeCallback("/dashboard/stats?x=1", "/"))
	assert.Equal(t, "/", SafeCallback("https://evil.example/", "/"))
	assert.Equal(t, "/", SafeCallback("//evil.example", "/"))
	assert.Equal(t, "/", SafeCallback("dashboard", "/"))
}

func gatedRouter(g *Gate) *gin.Engine {
	r := gin.New()
	r.Use(g.Identify())
	r.GET("/api/admin", g.RequireAPI(ResourceCatalogWrite), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/dashboard", g.RequirePage(ResourceDashboard), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.POST("/login", func(c *gin.Context) {
		p, err := g.svc.Authenticate(c.Request.Context(), Credentials{Email: c.Query("email"), Password: c.Query("password")})
		if err != nil {
			c.Status(http.StatusUnauthorized)
			return
		}
		_ = g.sessions.Login(c.Writer, c.Request, p)
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestGateAPI(t *testing.T) {
	s, _ := newService(t)
	g := NewGate(s, NewSessions(s, "session-secret", 3600, false))
	r := gatedRouter(g)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	userToken, err := s.IssueToken(&Principal{UserID: primitive.NewObjectID().Hex(), Role: models.RoleUser})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/admin", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	adminToken, err := s.IssueToken(&Principal{UserID: primitive.NewObjectID().Hex(), Role: models.RoleAdmin})
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/api/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/admin", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGatePageWithSession(t *testing.T) {
	s, users := newService(t)
	g := NewGate(s, NewSessions(s, "session-secret", 3600, false))
	r := gatedRouter(g)
	ctx := context.Background()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard?tab=1", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/signin?callbackUrl=%2Fdashboard%3Ftab%3D1", w.Header().Get("Location"))

	admin, _, err := s.EnsureAdmin(ctx, AdminSeed{Email: "admin@shop.com", Password: "admin123"})
	require.NoError(t, err)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login?email=admin@shop.com&password=admin123", nil))
	require.Equal(t, http.StatusNoContent, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// la degradación de rol se aplica sin volver a iniciar sesión
	require.NoError(t, users.SetCredentials(ctx, admin.ID, "", models.RoleUser))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}
