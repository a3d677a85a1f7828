package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go-interview-portal/config"
	"go-interview-portal/internal/delivery/http/response"
	"go-interview-portal/internal/domain"
	"go-interview-portal/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// bearerToken extracts the JWT from the Authorization header or, failing
// that, the auth_token cookie.
func bearerToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if cookie, err := c.Cookie("auth_token"); err == nil && cookie != "" {
		return cookie
	}
	return ""
}

func keyFunc(jwksProvider *auth.Provider, cfg *config.Config) jwt.Keyfunc {
	return func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); ok {
			// HS256 - shared secret with the identity provider
			if cfg.JWTSecret == "" {
				return nil, fmt.Errorf("HS256 token received but JWT_SECRET is not configured")
			}
			return []byte(cfg.JWTSecret), nil
		}

		if _, ok := token.Method.(*jwt.SigningMethodRSA); ok {
			// RS256 - resolve the public key from the JWKS endpoint
			return jwksProvider.KeyFunc(token)
		}

		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
}

// validateToken parses the JWT and resolves the local user. We do NOT trust
// the role claim in the token: the local record is the source of truth.
func validateToken(c *gin.Context, tokenString string, jwksProvider *auth.Provider, cfg *config.Config, authUC domain.AuthUsecase) (*domain.User, string, string, error) {
	token, err := jwt.Parse(tokenString, keyFunc(jwksProvider, cfg))
	if err != nil || !token.Valid {
		return nil, "", "", fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, "", "", fmt.Errorf("invalid claims")
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)

	// Sync the user on first sight so the roster sees every authenticated
	// candidate, then fetch the fresh role.
	if err := authUC.EnsureUserExists(c.Request.Context(), &domain.User{ID: sub, Email: email}); err != nil {
		return nil, "", "", fmt.Errorf("failed to sync user: %w", err)
	}
	user, err := authUC.GetCurrentUser(c.Request.Context(), sub)
	if err != nil {
		return nil, "", "", fmt.Errorf("user not found")
	}
	return user, sub, email, nil
}

func setIdentity(c *gin.Context, user *domain.User, sub, email string) {
	role := user.Role
	if role == "" {
		role = "candidate" // Fallback
	}
	c.Set(string(domain.KeyUserID), sub)
	c.Set(string(domain.KeyUserEmail), email)
	c.Set(string(domain.KeyUserRole), role)

	// Usecases read the typed keys off a plain context.Context, so the
	// request context must carry them too.
	ctx := context.WithValue(c.Request.Context(), domain.KeyUserID, sub)
	ctx = context.WithValue(ctx, domain.KeyUserEmail, email)
	ctx = context.WithValue(ctx, domain.KeyUserRole, role)
	c.Request = c.Request.WithContext(ctx)
}

// AuthMiddleware rejects requests without a valid token.
func AuthMiddleware(jwksProvider *auth.Provider, cfg *config.Config, authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
			c.Abort()
			return
		}

		user, sub, email, err := validateToken(c, tokenString, jwksProvider, cfg, authUC)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid token", err.Error())
			c.Abort()
			return
		}

		setIdentity(c, user, sub, email)
		c.Next()
	}
}

// OptionalAuthMiddleware sets identity keys when a valid token is present but
// lets anonymous requests through. The interview routes use it: token-invited
// candidates arrive with an invitation token instead of a JWT, and the
// identity resolver decides downstream.
func OptionalAuthMiddleware(jwksProvider *auth.Provider, cfg *config.Config, authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.Next()
			return
		}

		user, sub, email, err := validateToken(c, tokenString, jwksProvider, cfg, authUC)
		if err != nil {
			// A present-but-broken token is still an auth failure; silently
			// downgrading to anonymous would mask expiry bugs.
			response.Error(c, http.StatusUnauthorized, "Invalid token", err.Error())
			c.Abort()
			return
		}

		setIdentity(c, user, sub, email)
		c.Next()
	}
}

// RequireRole gates a route group on the role resolved by AuthMiddleware.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(string(domain.KeyUserRole)) != role {
			response.Error(c, http.StatusForbidden, "Insufficient permissions", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
