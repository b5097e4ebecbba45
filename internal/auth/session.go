package auth

import (
	"context"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/pkg/errors"
)

const (
	sessionName = "storefront_session"
	userIDKey   = "uid"
)

// Sessions guarda el id del usuario en una cookie firmada
type Sessions struct {
	store *sessions.CookieStore
	svc   *Service
}

func NewSessions(svc *Service, secret string, maxAge int, secure bool) *Sessions {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Sessions{store: store, svc: svc}
}

func (s *Sessions) Login(w http.ResponseWriter, r *http.Request, p *Principal) error {
	sess, _ := s.store.Get(r, sessionName)
	sess.Values[userIDKey] = p.UserID
	return errors.Wrap(sess.Save(r, w), "save session")
}

func (s *Sessions) Logout(w http.ResponseWriter, r *http.Request) error {
	sess, _ := s.store.Get(r, sessionName)
	sess.Values = map[any]any{}
	sess.Options.MaxAge = -1
	return errors.Wrap(sess.Save(r, w), "clear session")
}

// Principal resuelve la cookie de r; ErrUnauthenticated si no hay sesión válida
func (s *Sessions) Principal(ctx context.Context, r *http.Request) (*Principal, error) {
	sess, err := s.store.Get(r, sessionName)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	uid, ok := sess.Values[userIDKey].(string)
	if !ok || uid == "" {
		return nil, ErrUnauthenticated
	}
	return s.svc.Lookup(ctx, uid)
}
