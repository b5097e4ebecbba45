// Package auth resuelve quién hace la petición (Authenticate) y qué puede
// hacer (Authorize). El token bearer y la cookie de sesión son dos formas
// de transportar el mismo Principal.
package auth

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"storefront/internal/models"
	"storefront/internal/repository"
)

var (
	// ErrInvalidCredentials no distingue email desconocido de contraseña errónea
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingCredentials = errors.New("missing credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrEmailTaken         = errors.New("email already registered")
)

type UserStore interface {
	Insert(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string, withPassword bool) (*models.User, error)
	SetCredentials(ctx context.Context, id primitive.ObjectID, passwordHash string, role models.Role) error
}

// Principal es la identidad autenticada de una petición
type Principal struct {
	UserID string      `json:"userId"`
	Email  string      `json:"email"`
	Name   string      `json:"name,omitempty"`
	Role   models.Role `json:"role"`
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == models.RoleAdmin
}

// NewPrincipal construye el principal de una cuenta
func NewPrincipal(u *models.User) *Principal {
	return &Principal{UserID: u.ID.Hex(), Email: u.Email, Name: u.Name, Role: u.Role}
}

type Credentials struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// Resource es lo que protege una ruta
type Resource int

const (
	ResourceCatalogRead Resource = iota
	ResourceCatalogWrite
	ResourceInquiryCreate
	ResourceInquiryRead
	ResourceDashboard
	ResourceProfile
)

type Service struct {
	users  UserStore
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewService(users UserStore, secret string, ttl time.Duration) *Service {
	return &Service{users: users, secret: []byte(secret), ttl: ttl, now: time.Now}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Authenticate comprueba email y contraseña
func (s *Service) Authenticate(ctx context.Context, cred Credentials) (*Principal, error) {
	email := normalizeEmail(cred.Email)
	if email == "" || cred.Password == "" {
		return nil, ErrMissingCredentials
	}
	u, err := s.users.FindByEmail(ctx, email, true)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, "find user")
	}
	if !CheckPassword(u.Password, cred.Password) {
		return nil, ErrInvalidCredentials
	}
	return NewPrincipal(u), nil
}

// Authorize decide si p puede acceder a r. p nil es un visitante anónimo.
func (s *Service) Authorize(p *Principal, r Resource) bool {
	switch r {
	case ResourceCatalogRead, ResourceInquiryCreate:
		return true
	case ResourceProfile:
		return p != nil
	default:
		return p.IsAdmin()
	}
}

// Lookup recarga el principal desde el almacén; los cambios de rol y los
// borrados se aplican en la siguiente petición.
func (s *Service) Lookup(ctx context.Context, userID string) (*Principal, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	u, err := s.users.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, errors.Wrap(err, "load principal")
	}
	return NewPrincipal(u), nil
}

// User devuelve la cuenta del principal, sin contraseña
func (s *Service) User(ctx context.Context, p *Principal) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(p.UserID)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	u, err := s.users.FindByID(ctx, oid)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUnauthenticated
	}
	return u, err
}

// AdminSeed son los datos de la cuenta de administración inicial
type AdminSeed struct {
	Email    string
	Password string
	Name     string
	Phone    string
}

// EnsureAdmin crea la cuenta o, si el email ya existe, la promueve a admin
// y fija la contraseña indicada.
func (s *Service) EnsureAdmin(ctx context.Context, seed AdminSeed) (*models.User, bool, error) {
	email := normalizeEmail(seed.Email)
	if email == "" || len(seed.Password) < MinPasswordLength {
		return nil, false, errors.Errorf("admin seed needs an email and a password of at least %d characters", MinPasswordLength)
	}
	hash, err := HashPassword(seed.Password)
	if err != nil {
		return nil, false, err
	}

	existing, err := s.users.FindByEmail(ctx, email, false)
	switch {
	case err == nil:
		if err := s.users.SetCredentials(ctx, existing.ID, hash, models.RoleAdmin); err != nil {
			return nil, false, errors.Wrap(err, "promote admin")
		}
		existing.Role = models.RoleAdmin
		zap.S().Infow("admin account updated", "email", email)
		return existing, false, nil
	case !errors.Is(err, repository.ErrNotFound):
		return nil, false, errors.Wrap(err, "find admin")
	}

	name := seed.Name
	if name == "" {
		name = "Administrator"
	}
	u := &models.User{Name: name, Email: email, Phone: seed.Phone, Role: models.RoleAdmin, Password: hash}
	if err := s.users.Insert(ctx, u); err != nil {
		return nil, false, errors.Wrap(err, "create admin")
	}
	u.Password = ""
	zap.S().Infow("admin account created", "email", email)
	return u, true, nil
}
