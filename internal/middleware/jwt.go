package middleware

import (
	"context"
	"fmt"
	"net/http"

	"kasirhub/internal/caching"
	"kasirhub/internal/common"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// JWTCustomClaims carries the session identity: who is logged in, which
// partner (and branch, for branch admins) they belong to, and their role.
type JWTCustomClaims struct {
	UserID    string  `json:"user_id"`
	PartnerID *string `json:"partner_id,omitempty"`
	BranchID  *string `json:"branch_id,omitempty"`
	Role      string  `json:"role"`
	TokenID   string  `json:"token_id"`
	jwt.RegisteredClaims
}

// NewJWTConfig builds the echo-jwt config for protected routes. Revoked
// tokens (logout) are rejected via the Redis deny-list before the request
// context is populated.
func NewJWTConfig(jwtSecret string, cacheSvc caching.CacheService) echojwt.Config {
	secret := []byte(jwtSecret)
	return echojwt.Config{
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			token, err := parseToken(auth, secret)
			if err != nil {
				return nil, err
			}
			claims, ok := token.Claims.(*JWTCustomClaims)
			if !ok {
				return nil, fmt.Errorf("unexpected claims type")
			}
			if err := attachClaims(c, claims, cacheSvc); err != nil {
				return nil, err
			}
			return token, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		},
	}
}

func parseToken(auth string, secret []byte) (*jwt.Token, error) {
	token, err := jwt.ParseWithClaims(auth, &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return token, nil
}

func attachClaims(c echo.Context, claims *JWTCustomClaims, cacheSvc caching.CacheService) error {
	ctx := c.Request().Context()

	if claims.TokenID != "" && cacheSvc != nil {
		denyKey := fmt.Sprintf("token_denylist:%s", claims.TokenID)
		if revoked, err := cacheSvc.GetString(ctx, denyKey); err == nil && revoked != "" {
			return fmt.Errorf("token revoked")
		}
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return fmt.Errorf("invalid user_id in token")
	}

	ctx = context.WithValue(ctx, common.UserIDKey, userID)
	ctx = context.WithValue(ctx, common.RoleKey, claims.Role)

	if claims.PartnerID != nil {
		partnerID, err := uuid.Parse(*claims.PartnerID)
		if err != nil {
			return fmt.Errorf("invalid partner_id in token")
		}
		ctx = context.WithValue(ctx, common.PartnerIDKey, partnerID)
	}

	if claims.BranchID != nil {
		branchID, err := uuid.Parse(*claims.BranchID)
		if err != nil {
			return fmt.Errorf("invalid branch_id in token")
		}
		ctx = context.WithValue(ctx, common.BranchIDKey, branchID)
	}

	c.SetRequest(c.Request().WithContext(ctx))
	return nil
}
