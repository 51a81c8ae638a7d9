package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// UserMetadata is the profile the identity provider stores next to the account
type UserMetadata struct {
	Role     string `json:"role,omitempty"`
	FullName string `json:"full_name,omitempty"`
	Company  string `json:"company,omitempty"`
}

// Claims represents the identity provider session claims
type Claims struct {
	Email        string       `json:"email"`
	Role         string       `json:"role,omitempty"`
	UserMetadata UserMetadata `json:"user_metadata"`
	jwt.RegisteredClaims
}

// UserID parses the subject as the user id
func (c *Claims) UserID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return id, nil
}

// KeySet resolves asymmetric verification keys by key id
type KeySet interface {
	Key(ctx context.Context, kid string) (interface{}, error)
}

// Option configures a JWTService
type Option func(*JWTService)

// WithIssuer requires tokens to carry iss
func WithIssuer(issuer string) Option {
	return func(s *JWTService) { s.issuer = issuer }
}

// WithKeySet enables ES256/RS256 tokens verified against ks
func WithKeySet(ks KeySet) Option {
	return func(s *JWTService) { s.keys = ks }
}

// JWTService handles JWT operations
type JWTService struct {
	secret []byte
	issuer string
	keys   KeySet
}

var signJWTToken = func(token *jwt.Token, secret []byte) (string, error) {
	return token.SignedString(secret)
}

// NewJWTService creates a new JWT service
func NewJWTService(secret string, opts ...Option) *JWTService {
	s := &JWTService{secret: []byte(secret)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateToken signs an HS256 session token, used by local tooling and tests
func (s *JWTService) GenerateToken(userID uuid.UUID, email, role, fullName string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email:        email,
		Role:         "authenticated",
		UserMetadata: UserMetadata{Role: role, FullName: fullName},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    s.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return signJWTToken(token, s.secret)
}

// ValidateToken validates a JWT token and returns the claims
func (s *JWTService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithExpirationRequired()}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		switch token.Method.(type) {
		case *jwt.SigningMethodHMAC:
			if len(s.secret) == 0 {
				return nil, ErrInvalidToken
			}
			return s.secret, nil
		case *jwt.SigningMethodECDSA, *jwt.SigningMethodRSA:
			if s.keys == nil {
				return nil, ErrInvalidToken
			}
			kid, _ := token.Header["kid"].(string)
			return s.keys.Key(ctx, kid)
		default:
			return nil, ErrInvalidToken
		}
	}, opts...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if _, err := claims.UserID(); err != nil {
		return nil, err
	}
	return claims, nil
}
