// middleware/jwt_middleware.go
package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"

	"github.com/huawei-ekit/catalog_backend/models"
)

// AdminClaims mirrors the token payload the admin dashboard issues.
// Token issuance lives with the dashboard; this middleware only
// validates.
type AdminClaims struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
	jwt.StandardClaims
}

// GetJWTSecret returns the JWT secret from environment variables
func GetJWTSecret() string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		panic("JWT_SECRET environment variable is required")
	}
	return secret
}

// AdminJWTMiddleware guards the admin route group. It accepts a bearer
// token signed with the shared secret whose claims carry isAdmin.
func AdminJWTMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, "Bearer ") {
				return unauthorized(c, "Missing or malformed token")
			}
			tokenString := strings.TrimPrefix(header, "Bearer ")

			claims := &AdminClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(GetJWTSecret()), nil
			})
			if err != nil || !token.Valid {
				return unauthorized(c, "Invalid or expired token")
			}
			if !claims.IsAdmin || claims.Username == "" {
				return unauthorized(c, "Admin access required")
			}

			c.Set("adminUsername", claims.Username)
			return next(c)
		}
	}
}

func unauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, models.Response{
		Status:  http.StatusUnauthorized,
		Message: message,
	})
}
