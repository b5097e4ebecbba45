package auth

import (
	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"

	"storefront/internal/models"
)

type claims struct {
	UserID string      `json:"userId"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken firma un JWT HS256 para p
func (s *Service) IssueToken(p *Principal) (string, error) {
	now := s.now()
	c := claims{
		UserID: p.UserID,
		Email:  p.Email,
		Role:   p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}
	return signed, nil
}

// ParseToken valida firma y caducidad y devuelve el principal del token
func (s *Service) ParseToken(raw string) (*Principal, error) {
	var c claims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := parser.ParseWithClaims(raw, &c, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil || c.UserID == "" {
		return nil, ErrUnauthenticated
	}
	return &Principal{UserID: c.UserID, Email: c.Email, Role: c.Role}, nil
}
