package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"startup-directory.backend/internal/domain/entities"
	domainerrors "startup-directory.backend/internal/domain/errors"
	"startup-directory.backend/internal/interfaces/http/response"
	"startup-directory.backend/pkg/jwt"
	"startup-directory.backend/pkg/logger"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// AuthContextKey is the context key for the verified caller
	AuthContextKey = "authContext"
	// AccessTokenKey is the context key for the raw session token
	AccessTokenKey = "accessToken"
)

// TokenValidator verifies identity provider session tokens
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*jwt.Claims, error)
}

// AuthMiddleware requires a valid bearer session
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return authenticate(validator, true)
}

// OptionalAuth verifies a bearer session when one is sent and otherwise
// continues as an anonymous caller. A bad token is still rejected.
func OptionalAuth(validator TokenValidator) gin.HandlerFunc {
	return authenticate(validator, false)
}

func authenticate(validator TokenValidator, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			if required {
				response.Abort(c, domainerrors.Unauthorized("authorization header is required"))
				return
			}
			c.Set(AuthContextKey, entities.Anonymous())
			c.Next()
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			response.Abort(c, domainerrors.Unauthorized("invalid authorization format, use: Bearer <token>"))
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerPrefix))
		claims, err := validator.ValidateToken(c.Request.Context(), token)
		if err != nil {
			logger.Warn(c.Request.Context(), "Session token rejected", zap.String("path", c.Request.URL.Path), zap.Error(err))
			if errors.Is(err, jwt.ErrExpiredToken) {
				response.Abort(c, domainerrors.Unauthorized("token has expired"))
				return
			}
			response.Abort(c, domainerrors.Unauthorized("invalid token"))
			return
		}

		auth, err := authContextFromClaims(claims)
		if err != nil {
			response.Abort(c, domainerrors.Unauthorized("invalid token"))
			return
		}

		c.Set(AuthContextKey, auth)
		c.Set(AccessTokenKey, token)
		ctx := context.WithValue(c.Request.Context(), logger.UserIDKey, auth.UserID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// authContextFromClaims reads the directory role from the user metadata.
// Accounts without a known role are treated as entrepreneurs.
func authContextFromClaims(claims *jwt.Claims) (*entities.AuthContext, error) {
	userID, err := claims.UserID()
	if err != nil {
		return nil, err
	}
	role := entities.UserRole(claims.UserMetadata.Role)
	if !role.Valid() {
		role = entities.UserRoleEntrepreneur
	}
	return &entities.AuthContext{
		UserID:        userID,
		Email:         claims.Email,
		Role:          role,
		FullName:      claims.UserMetadata.FullName,
		Authenticated: true,
	}, nil
}

// GetAuthContext returns the caller, anonymous when no session was verified
func GetAuthContext(c *gin.Context) *entities.AuthContext {
	if v, ok := c.Get(AuthContextKey); ok {
		if auth, ok := v.(*entities.AuthContext); ok && auth != nil {
			return auth
		}
	}
	return entities.Anonymous()
}

// GetAccessToken returns the raw bearer token of the request
func GetAccessToken(c *gin.Context) string {
	return c.GetString(AccessTokenKey)
}

// RequireRole creates a middleware that requires one of roles
func RequireRole(roles ...entities.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := GetAuthContext(c)
		if !auth.Authenticated {
			response.Abort(c, domainerrors.Unauthorized("authentication required"))
			return
		}
		if !auth.HasRole(roles...) {
			response.Abort(c, domainerrors.Forbidden("insufficient permissions"))
			return
		}
		c.Next()
	}
}

// RequireAdmin creates a middleware that requires admin role
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(entities.UserRoleAdmin)
}
