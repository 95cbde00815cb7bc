package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/simplecrm/crm-system/internal/core/ports"
)

// Auth validates the JWT and injects claims into context. When stamps is
// non-nil, tokens issued before the account's last password change are
// rejected even though their signature is still valid. A failed stamp lookup
// fails open (the request proceeds) but is logged so a degraded store is
// visible.
func Auth(jwtSecret string, stamps ports.CredentialStamps, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			userID, _ := claims["sub"].(string)
			if userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing subject")
			}

			if stamps != nil {
				issuedAt, _ := claims["iat"].(float64)
				changedAt, err := stamps.PasswordChangedAt(c.Request().Context(), userID)
				if err != nil {
					log.Warn().Err(err).Str("user_id", userID).Msg("credential stamp lookup failed")
				} else if !changedAt.IsZero() && int64(issuedAt) < changedAt.Unix() {
					return echo.NewHTTPError(http.StatusUnauthorized, "token no longer valid")
				}
			}

			c.Set("user_id", userID)
			c.Set("email", claims["email"])
			c.Set("role", claims["role"])

			return next(c)
		}
	}
}
