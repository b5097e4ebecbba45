package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/auth"
	"storefront/internal/catalog"
	"storefront/internal/repository/memory"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router     *gin.Engine
	store      *memory.Store
	adminToken string
	userToken  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memory.New()
	cat := catalog.New(catalog.Stores{
		Categories: store.Categories,
		Products:   store.Products,
		Programs:   store.Programs,
		Services:   store.Services,
		Inquiries:  store.Inquiries,
	})
	svc := auth.NewService(store.Users, "test-secret", time.Hour)
	router, err := NewRouter(Deps{
		Catalog:        cat,
		Auth:           svc,
		Sessions:       auth.NewSessions(svc, "session-secret", 3600, false),
		RequestTimeout: 5 * time.Second,
	})
	require.NoError(t, err)

	ctx := context.Background()
	admin, _, err := svc.EnsureAdmin(ctx, auth.AdminSeed{Email: "admin@shop.com", Password: "admin123"})
	require.NoError(t, err)
	adminToken, err := svc.IssueToken(auth.NewPrincipal(admin))
	require.NoError(t, err)
	user, err := svc.Signup(ctx, auth.SignupInput{Name: "U", Email: "user@shop.com", Phone: "1", Password: "user123"})
	require.NoError(t, err)
	userToken, err := svc.IssueToken(auth.NewPrincipal(user))
	require.NoError(t, err)

	return &testServer{router: router, store: store, adminToken: adminToken, userToken: userToken}
}

func (s *testServer) do(t *testing.T, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (s *testServer) createCategory(t *testing.T, id int, slug string) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/categories", s.adminToken, gin.H{
		"categories": []gin.H{{"id": id, "name": "Category " + slug, "slug": slug}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)["created"].([]any)
	return created[0].(map[string]any)["_id"].(string)
}

func product(model string, price float64, categoryID string) gin.H {
	return gin.H{
		"modelNumber":  model,
		"productImage": "/img/p.png",
		"productSpecs": []string{"spec"},
		"quantity":     5,
		"price":        price,
		"categoryId":   categoryID,
	}
}

func TestWriteRoutesRequireAdmin(t *testing.T) {
	s := newTestServer(t)
	body := gin.H{"categories": []gin.H{{"id": 1, "name": "A", "slug": "a"}}}

	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodPost, "/api/categories", "", body).Code)
	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodPost, "/api/categories", s.userToken, body).Code)
	assert.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/categories", s.adminToken, body).Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/categories", "", nil).Code)
}

func TestBulkCreateCategories(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/categories", s.adminToken, gin.H{"categories": []gin.H{
		{"id": 3, "name": "A", "slug": "a"},
		{"id": 3, "name": "B", "slug": "b"},
	}})
	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, map[string]any{"total": 2.0, "successful": 1.0, "failed": 1.0}, body["summary"])
	failed := body["failed"].([]any)[0].(map[string]any)
	assert.Equal(t, "Category with id 3 already exists", failed["error"])
	assert.Equal(t, "b", failed["category"].(map[string]any)["slug"])

	w = s.do(t, http.MethodPost, "/api/categories", s.adminToken, []gin.H{{"id": 3, "name": "C", "slug": "c"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 1.0, decode(t, w)["summary"].(map[string]any)["failed"])

	w = s.do(t, http.MethodPost, "/api/categories", s.adminToken, gin.H{"categories": []gin.H{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please provide an array of categories", decode(t, w)["error"])

	w = s.do(t, http.MethodGet, "/api/categories?limit=1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode(t, w)["pagination"].(map[string]any)
	assert.Equal(t, map[string]any{"total": 1.0, "page": 1.0, "limit": 1.0, "totalPages": 1.0}, page)
}

func TestBulkCreateMixedDecodeFailures(t *testing.T) {
	s := newTestServer(t)
	catID := s.createCategory(t, 1, "access")

	w := s.do(t, http.MethodPost, "/api/categories", s.adminToken, gin.H{"categories": []any{
		gin.H{"id": 2, "name": "Good", "slug": "good"},
		gin.H{"id": "oops", "name": "Bad", "slug": "bad"},
		gin.H{"id": 3, "name": "Also good", "slug": "also-good"},
	}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, map[string]any{"total": 3.0, "successful": 2.0, "failed": 1.0}, body["summary"])
	failed := body["failed"].([]any)[0].(map[string]any)
	assert.Equal(t, "Invalid category data", failed["error"])
	assert.Equal(t, "oops", failed["category"].(map[string]any)["id"])

	bad := product("BAD-1", 10, catID)
	bad["categoryId"] = 123
	w = s.do(t, http.MethodPost, "/api/products", s.adminToken, []any{bad, product("OK-1", 10, catID)})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body = decode(t, w)
	assert.Len(t, body["created"], 1)
	failed = body["failed"].([]any)[0].(map[string]any)
	assert.Equal(t, "Invalid product data", failed["error"])
	assert.Equal(t, "BAD-1", failed["product"].(map[string]any)["modelNumber"])

	w = s.do(t, http.MethodPost, "/api/services", s.adminToken, []any{gin.H{"id": "x"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 1.0, decode(t, w)["summary"].(map[string]any)["failed"])
}

func TestListPageBeyondRange(t *testing.T) {
	s := newTestServer(t)
	s.createCategory(t, 1, "access")

	w := s.do(t, http.MethodGet, "/api/categories?page=9223372036854775807&limit=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Empty(t, body["categories"])
	assert.Equal(t, 1.0, body["pagination"].(map[string]any)["total"])

	w = s.do(t, http.MethodGet, "/api/products?page=9223372036854775807", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Empty(t, decode(t, w)["products"])
}

func TestProductRoutes(t *testing.T) {
	s := newTestServer(t)
	catID := s.createCategory(t, 1, "access")

	w := s.do(t, http.MethodPost, "/api/products", s.adminToken, gin.H{"products": []gin.H{
		product("P-5", 5, catID),
		product("P-10", 10, catID),
		product("P-50", 50, catID),
		product("P-60", 60, catID),
	}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)["created"].([]any)
	first := created[0].(map[string]any)["_id"].(string)
	second := created[1].(map[string]any)["_id"].(string)

	w = s.do(t, http.MethodGet, "/api/products?minPrice=10&maxPrice=50", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := decode(t, w)["products"].([]any)
	require.Len(t, items, 2)
	for _, it := range items {
		price := it.(map[string]any)["price"].(float64)
		assert.True(t, price >= 10 && price <= 50)
	}

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/products?minPrice=abc", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/products?categoryId=zzz", "", nil).Code)

	w = s.do(t, http.MethodGet, "/api/products/not-hex", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid product ID", decode(t, w)["error"])

	w = s.do(t, http.MethodDelete, "/api/products/"+primitive.NewObjectID().Hex(), s.adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product not found", decode(t, w)["error"])

	w = s.do(t, http.MethodPut, "/api/products/"+second, s.adminToken, gin.H{"modelNumber": "P-5"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = s.do(t, http.MethodGet, "/api/products/"+second, "", nil)
	assert.Equal(t, "P-10", decode(t, w)["modelNumber"])

	w = s.do(t, http.MethodPut, "/api/products/"+second, s.adminToken, gin.H{})
	assert.Equal(t, "No valid fields to update", decode(t, w)["error"])

	w = s.do(t, http.MethodDelete, "/api/products/"+first, s.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"message": "Product deleted successfully", "productId": first}, decode(t, w))
}

func TestCategoryDeleteRestricted(t *testing.T) {
	s := newTestServer(t)
	catID := s.createCategory(t, 1, "access")
	w := s.do(t, http.MethodPost, "/api/products", s.adminToken, gin.H{"products": []gin.H{product("P-1", 1, catID)}})
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodDelete, "/api/categories/"+catID, s.adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Category is still referenced by 1 products and 0 programs", decode(t, w)["error"])
}

func TestServiceRoutes(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodPost, "/api/services", s.adminToken, gin.H{"services": []gin.H{
		{"id": 7, "name": "Install", "image": "/i.png", "slug": "install"},
	}})
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodGet, "/api/services/7", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "install", decode(t, w)["slug"])

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/services/abc", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/services/8", "", nil).Code)

	w = s.do(t, http.MethodDelete, "/api/services/7", s.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "7", decode(t, w)["serviceId"])
}

func TestInquiryRoutes(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/inquiries", "", gin.H{"name": "Ali", "phone": "0100", "message": "Price?"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Price?", decode(t, w)["message"])

	w = s.do(t, http.MethodPost, "/api/inquiries", "", gin.H{"name": "Ali"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/inquiries", "", nil).Code)
	w = s.do(t, http.MethodGet, "/api/inquiries", s.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["inquiries"].([]any), 1)
}

func TestAuthRoutes(t *testing.T) {
	s := newTestServer(t)

	before := s.store.Users.Len()
	w := s.do(t, http.MethodPost, "/api/auth/signup", "", gin.H{"name": "N", "email": "n@shop.com", "phone": "1", "password": "12345"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, before, s.store.Users.Len())

	w = s.do(t, http.MethodPost, "/api/auth/signup", "", gin.H{"name": "N", "email": "n@shop.com", "phone": "1", "password": "123456", "role": "admin"})
	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, "user", body["user"].(map[string]any)["role"])
	assert.NotContains(t, w.Body.String(), "password")

	w = s.do(t, http.MethodPost, "/api/auth/signup", "", gin.H{"name": "N", "email": "N@shop.com", "phone": "1", "password": "123456"})
	assert.Equal(t, "User with this email already exists", decode(t, w)["error"])

	w = s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "n@shop.com", "password": "wrong!"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", decode(t, w)["error"])

	w = s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "n@shop.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "n@shop.com", "password": "123456"})
	require.Equal(t, http.StatusOK, w.Code)
	token := decode(t, w)["token"].(string)

	w = s.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "n@shop.com", decode(t, w)["user"].(map[string]any)["email"])
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/auth/me", "", nil).Code)
}

func TestDashboardStats(t *testing.T) {
	s := newTestServer(t)
	catID := s.createCategory(t, 1, "access")
	s.do(t, http.MethodPost, "/api/products", s.adminToken, gin.H{"products": []gin.H{product("P-1", 1, catID), product("P-2", 2, catID)}})

	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, "/api/dashboard/stats", s.userToken, nil).Code)
	w := s.do(t, http.MethodGet, "/api/dashboard/stats", s.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	total, err := s.store.Products.Count(context.Background(), time.Time{})
	require.NoError(t, err)
	products := decode(t, w)["products"].(map[string]any)
	assert.Equal(t, float64(total), products["total"])
	assert.Equal(t, 2.0, products["lowStock"])
}

func TestDashboardPageSession(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/signin?callbackUrl=%2Fdashboard", w.Header().Get("Location"))

	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/signin?callbackUrl=%2Fdashboard", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="callbackUrl" value="/dashboard"`)

	form := url.Values{"email": {"admin@shop.com"}, "password": {"wrong"}, "callbackUrl": {"/dashboard"}}
	req := httptest.NewRequest(http.MethodPost, "/auth/signin", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")

	form.Set("password", "admin123")
	form.Set("callbackUrl", "https://evil.example/")
	req = httptest.NewRequest(http.MethodPost, "/auth/signin", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	req = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin@shop.com")

	// la cookie también autentica la API
	req = httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// un usuario sin rol admin vuelve a la portada
	userReq := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	userReq.Header.Set("Authorization", "Bearer "+s.userToken)
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, userReq)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}
