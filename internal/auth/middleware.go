package auth

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const principalKey = "auth.principal"

// Gate enlaza el Service con gin: Identify resuelve el principal de la
// petición y RequireAPI/RequirePage lo exigen.
type Gate struct {
	svc      *Service
	sessions *Sessions
}

func NewGate(svc *Service, sessions *Sessions) *Gate {
	return &Gate{svc: svc, sessions: sessions}
}

// Identify prueba primero "Authorization: Bearer" y después la cookie.
// Sin credenciales válidas la petición sigue como anónima.
func (g *Gate) Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		if p := g.resolve(c); p != nil {
			c.Set(principalKey, p)
		}
		c.Next()
	}
}

func (g *Gate) resolve(c *gin.Context) *Principal {
	if h := c.GetHeader("Authorization"); h != "" {
		token, ok := strings.CutPrefix(h, "Bearer ")
		if !ok {
			return nil
		}
		p, err := g.svc.ParseToken(strings.TrimSpace(token))
		if err != nil {
			return nil
		}
		return p
	}
	if g.sessions == nil {
		return nil
	}
	p, err := g.sessions.Principal(c.Request.Context(), c.Request)
	if err != nil {
		if !errors.Is(err, ErrUnauthenticated) {
			zap.S().Warnw("session lookup failed", "error", err)
		}
		return nil
	}
	return p
}

// PrincipalFrom devuelve el principal que dejó Identify
func PrincipalFrom(c *gin.Context) (*Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*Principal)
	return p, ok && p != nil
}

// RequireAPI responde 401 sin principal y 403 si el rol no alcanza
func (g *Gate) RequireAPI(r Resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, _ := PrincipalFrom(c)
		if g.svc.Authorize(p, r) {
			c.Next()
			return
		}
		if p == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
	}
}

// RequirePage redirige a /auth/signin?callbackUrl=... sin sesión y a / si
// el usuario no es admin.
func (g *Gate) RequirePage(r Resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, _ := PrincipalFrom(c)
		if g.svc.Authorize(p, r) {
			c.Next()
			return
		}
		if p == nil {
			c.Redirect(http.StatusFound, "/auth/signin?callbackUrl="+url.QueryEscape(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Redirect(http.StatusFound, "/")
		c.Abort()
	}
}

// SafeCallback acepta solo rutas locales ("/dashboard"), nunca "//host" ni URLs absolutas
func SafeCallback(raw, fallback string) string {
	if raw == "" {
		return fallback
	}
	u, err := url.Parse(raw)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(raw, "//") || strings.Contains(raw, "\\") {
		return fallback
	}
	return u.RequestURI()
}
