package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	ContextWorkspaceIDKey = "workspace_id"
	workspaceCookie       = "freewen_workspace"
	cookieMaxAge          = 30 * 24 * time.Hour
)

type workspaceClaims struct {
	WorkspaceID string `json:"wid"`
	jwt.RegisteredClaims
}

// Workspace scopes every request to a per-browser workspace. A signed
// cookie carries the workspace id; a missing or invalid cookie mints a
// fresh workspace rather than failing the request, since there are no
// accounts to authenticate against.
func Workspace(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, err := c.Cookie(workspaceCookie); err == nil && raw != "" {
			if id, ok := parseWorkspaceToken(secret, raw); ok {
				c.Set(ContextWorkspaceIDKey, id)
				c.Next()
				return
			}
		}

		id := uuid.NewString()
		token, err := mintWorkspaceToken(secret, id)
		if err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.SetCookie(workspaceCookie, token, int(cookieMaxAge.Seconds()), "/", "", false, true)
		c.Set(ContextWorkspaceIDKey, id)
		c.Next()
	}
}

func mintWorkspaceToken(secret, workspaceID string) (string, error) {
	claims := workspaceClaims{
		WorkspaceID: workspaceID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(cookieMaxAge)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func parseWorkspaceToken(secret, raw string) (string, bool) {
	var claims workspaceClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid || claims.WorkspaceID == "" {
		return "", false
	}
	return claims.WorkspaceID, true
}

// WorkspaceID reads the id the middleware stored on the request context.
func WorkspaceID(c *gin.Context) (string, bool) {
	idAny, exists := c.Get(ContextWorkspaceIDKey)
	if !exists {
		return "", false
	}
	id, ok := idAny.(string)
	return id, ok && id != ""
}
