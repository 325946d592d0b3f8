package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go-healthcare-portal/internal/authz"
	"go-healthcare-portal/internal/domain/entity"
	"go-healthcare-portal/pkg/jwt"
	"go-healthcare-portal/pkg/response"

	"github.com/redis/go-redis/v9"
)

type contextKey string

const tokenIDKey contextKey = "token_id"

// AuthMiddleware resolves the session credential to a principal. The resolved
// {id, role} pair rides the request context explicitly; downstream code never
// consults a process-wide "current user".
type AuthMiddleware struct {
	jwtService  *jwt.JWTService
	redisClient *redis.Client
}

func NewAuthMiddleware(jwtService *jwt.JWTService, redisClient *redis.Client) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:  jwtService,
		redisClient: redisClient,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		if claims.TokenType != jwt.AccessToken {
			response.Unauthorized(w, "Invalid token type")
			return
		}

		// Revocation check: tokens live in Redis until logout or expiry.
		tokenKey := fmt.Sprintf("access_token:%s:%s", claims.UserID.String(), claims.TokenID)
		exists, err := m.redisClient.Exists(r.Context(), tokenKey).Result()
		if err != nil {
			response.InternalServerError(w, "Failed to validate token")
			return
		}
		if exists == 0 {
			response.Unauthorized(w, "Token has been revoked")
			return
		}

		role, ok := entity.RoleFromID(claims.RoleID)
		if !ok {
			response.Unauthorized(w, "Unknown role")
			return
		}

		ctx := authz.WithPrincipal(r.Context(), authz.Principal{
			ID:   claims.UserID,
			Role: role,
		})
		ctx = context.WithValue(ctx, tokenIDKey, claims.TokenID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetTokenIDFromContext extracts the access token id for logout.
func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(tokenIDKey).(string)
	return tokenID, ok
}
