package http

import (
	"fmt"
	"net/http"
	"strings"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
)

const actorContextKey = "actor"

// Actor is the authenticated caller resolved from the JWT.
// DispensaryID is set only for owners; it scopes every payout review
// operation to the owner's own store.
type Actor struct {
	ID           kernel.UUID
	Role         string
	DispensaryID *kernel.UUID
}

const (
	RoleDriver = "driver"
	RoleOwner  = "owner"
)

// ActorMiddleware parses the Bearer token and stores the resolved Actor in
// the echo context. Requests without a valid token are rejected before any
// handler runs.
func ActorMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, errorBody("missing bearer token"))
			}

			token, err := jwt.Parse(strings.TrimPrefix(header, "Bearer "), func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, errorBody("invalid token"))
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorBody("invalid claims"))
			}

			actor, err := actorFromClaims(claims)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorBody(err.Error()))
			}

			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

func actorFromClaims(claims jwt.MapClaims) (Actor, error) {
	sub, ok := claims["sub"].(string)
	if !ok {
		return Actor{}, fmt.Errorf("subject claim is missing")
	}
	id, err := kernel.UUIDFromString(sub)
	if err != nil {
		return Actor{}, fmt.Errorf("subject claim is not a UUID")
	}

	role, ok := claims["role"].(string)
	if !ok || (role != RoleDriver && role != RoleOwner) {
		return Actor{}, fmt.Errorf("role claim is missing or unknown")
	}

	actor := Actor{ID: id, Role: role}

	if role == RoleOwner {
		raw, ok := claims["dispensary_id"].(string)
		if !ok {
			return Actor{}, fmt.Errorf("owner token is missing dispensary_id")
		}
		dispensaryID, err := kernel.UUIDFromString(raw)
		if err != nil {
			return Actor{}, fmt.Errorf("dispensary_id claim is not a UUID")
		}
		actor.DispensaryID = &dispensaryID
	}

	return actor, nil
}

// ActorFrom retrieves the authenticated actor stored by ActorMiddleware.
func ActorFrom(c echo.Context) (Actor, bool) {
	actor, ok := c.Get(actorContextKey).(Actor)
	return actor, ok
}

// requireRole rejects callers whose role does not match.
func requireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := ActorFrom(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorBody("not authenticated"))
			}
			if actor.Role != role {
				return c.JSON(http.StatusForbidden, errorBody("wrong role for this operation"))
			}
			return next(c)
		}
	}
}
