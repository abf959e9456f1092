package middleware

import (
	"context"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// SessionValidator reports whether the session behind a token is still
// live, letting logout revoke tokens before JWT expiry.
type SessionValidator interface {
	ValidateSession(ctx context.Context, sessionID string) error
}

// JWTAuth verifies the bearer token, checks the embedded session against
// the revocation store, and injects X-User-ID and X-Session-ID for the
// downstream handlers. Any failure short-circuits with 401.
func JWTAuth(secret string, sessions SessionValidator, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			tokenString := extractToken(ctx)
			if tokenString == "" {
				reject(ctx)
				return
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				logger.Warn("invalid jwt token", zap.Error(err))
				reject(ctx)
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				reject(ctx)
				return
			}
			userID, _ := claims["id"].(string)
			sessionID, _ := claims["sid"].(string)
			if userID == "" || sessionID == "" {
				reject(ctx)
				return
			}

			if sessions != nil {
				if err := sessions.ValidateSession(ctx, sessionID); err != nil {
					reject(ctx)
					return
				}
			}

			ctx.Request.Header.Set("X-User-ID", userID)
			ctx.Request.Header.Set("X-Session-ID", sessionID)
			next(ctx)
		}
	}
}

func reject(ctx *fasthttp.RequestCtx) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(fasthttp.StatusUnauthorized)
	ctx.SetBodyString(`{"success":false,"message":"Unauthorized"}`)
}

func extractToken(ctx *fasthttp.RequestCtx) string {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if header == "" {
		return ""
	}
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return header
}
