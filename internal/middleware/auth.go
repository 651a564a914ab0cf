package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Eursukkul/helper-marketplace/internal/dto"
	"github.com/Eursukkul/helper-marketplace/internal/models"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const actorKey = "actor"

// Claims is the identity provider's access token payload.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticate verifies the HS256 bearer token and stores the caller's Actor
// on the context.
func Authenticate(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				return unauthorized("missing_token", "authorization bearer token is required")
			}

			actor, err := parseActor(strings.TrimSpace(token), secret)
			if err != nil {
				return unauthorized("invalid_token", err.Error())
			}

			c.Set(actorKey, actor)
			return next(c)
		}
	}
}

func parseActor(tokenStr, secret string) (models.Actor, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return models.Actor{}, err
	}
	claims, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return models.Actor{}, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return models.Actor{}, errors.New("token has no subject")
	}
	role, ok := models.ParseRole(claims.Role)
	if !ok {
		return models.Actor{}, errors.New("token has an unknown role")
	}
	return models.Actor{ID: claims.Subject, Role: role}, nil
}

// ActorFrom returns the caller stored by Authenticate.
func ActorFrom(c echo.Context) (models.Actor, bool) {
	actor, ok := c.Get(actorKey).(models.Actor)
	return actor, ok
}

// SetActor stores actor on the context the way Authenticate does.
func SetActor(c echo.Context, actor models.Actor) {
	c.Set(actorKey, actor)
}

func unauthorized(code, msg string) error {
	return echo.NewHTTPError(http.StatusUnauthorized, dto.ErrorResponse{Error: code, Message: msg})
}
