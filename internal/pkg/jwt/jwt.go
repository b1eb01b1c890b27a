package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// clockSkew tolerates drift between this service and the identity service.
const clockSkew = 30 * time.Second

// Claims carries the caller identity. Older identity tokens only set "sub",
// so UserID falls back to the subject when user_id is absent.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) resolveUserID() error {
	if c.UserID != uuid.Nil {
		return nil
	}
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return ErrInvalidToken
	}
	c.UserID = id
	return nil
}

// Service validates HS256 tokens issued by the identity service. Issue exists
// for tooling and tests that need a signed token.
type Service struct {
	secretKey []byte
	issuer    string
	parser    *jwt.Parser
}

func NewService(secretKey, issuer string) *Service {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(clockSkew),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	return &Service{
		secretKey: []byte(secretKey),
		issuer:    issuer,
		parser:    jwt.NewParser(opts...),
	}
}

func (s *Service) GenerateToken(userID uuid.UUID, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
}

func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := s.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.secretKey, nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case err != nil:
		return nil, ErrInvalidToken
	}

	if err := claims.resolveUserID(); err != nil {
		return nil, err
	}
	return claims, nil
}
