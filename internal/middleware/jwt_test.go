package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kasirhub/internal/common"
	"kasirhub/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

// fakeCache backs the deny-list lookup in tests. Keys present in the
// entries map count as revoked.
type fakeCache struct {
	entries map[string]string
}

func (f *fakeCache) GetString(ctx context.Context, key string) (string, error) {
	return f.entries[key], nil
}

func (f *fakeCache) SetString(ctx context.Context, key, value string, ttl time.Duration) error {
	f.entries[key] = value
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	delete(f.entries, key)
	return nil
}

func (f *fakeCache) GetSalesReport(ctx context.Context, key string) (*models.SalesReport, error) {
	return nil, nil
}

func (f *fakeCache) SetSalesReport(ctx context.Context, key string, report *models.SalesReport, ttl time.Duration) error {
	return nil
}

func (f *fakeCache) GetPartnerLicenses(ctx context.Context, partnerID uuid.UUID) ([]*models.License, error) {
	return nil, nil
}

func (f *fakeCache) SetPartnerLicenses(ctx context.Context, partnerID uuid.UUID, licenses []*models.License, ttl time.Duration) error {
	return nil
}

func (f *fakeCache) InvalidatePartnerLicenses(ctx context.Context, partnerID uuid.UUID) error {
	return nil
}

func (f *fakeCache) InvalidatePartnerCache(ctx context.Context, partnerID uuid.UUID) error {
	return nil
}

func (f *fakeCache) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	return false, nil
}

func signTestToken(t *testing.T, claims *JWTCustomClaims) string {
	t.Helper()
	if claims.ExpiresAt == nil {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func protectedRequest(cache *fakeCache, authHeader string, handler echo.HandlerFunc) *httptest.ResponseRecorder {
	e := echo.New()
	e.GET("/protected", handler, echojwt.WithConfig(NewJWTConfig(testSecret, cache)))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTConfigPopulatesRequestContext(t *testing.T) {
	userID := uuid.New()
	partnerID := uuid.New()
	branchID := uuid.New()
	partnerStr := partnerID.String()
	branchStr := branchID.String()

	tokenString := signTestToken(t, &JWTCustomClaims{
		UserID:    userID.String(),
		PartnerID: &partnerStr,
		BranchID:  &branchStr,
		Role:      models.RoleBranchAdmin,
		TokenID:   uuid.NewString(),
	})

	var gotUser, gotPartner, gotBranch uuid.UUID
	var gotRole string
	handler := func(c echo.Context) error {
		ctx := c.Request().Context()
		gotUser, _ = common.GetUserIDFromContext(ctx)
		gotPartner, _ = common.GetPartnerIDFromContext(ctx)
		gotBranch, _ = common.GetBranchIDFromContext(ctx)
		gotRole, _ = common.GetRoleFromContext(ctx)
		return c.NoContent(http.StatusOK)
	}

	cache := &fakeCache{entries: map[string]string{}}
	rec := protectedRequest(cache, "Bearer "+tokenString, handler)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, gotUser)
	assert.Equal(t, partnerID, gotPartner)
	assert.Equal(t, branchID, gotBranch)
	assert.Equal(t, models.RoleBranchAdmin, gotRole)
}

func TestJWTConfigRejectsRevokedToken(t *testing.T) {
	tokenID := uuid.NewString()
	tokenString := signTestToken(t, &JWTCustomClaims{
		UserID:  uuid.NewString(),
		Role:    models.RoleSuperAdmin,
		TokenID: tokenID,
	})

	cache := &fakeCache{entries: map[string]string{
		fmt.Sprintf("token_denylist:%s", tokenID): "revoked",
	}}
	rec := protectedRequest(cache, "Bearer "+tokenString, func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTConfigRejectsBadSignature(t *testing.T) {
	claims := &JWTCustomClaims{
		UserID: uuid.NewString(),
		Role:   models.RoleSuperAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	cache := &fakeCache{entries: map[string]string{}}
	rec := protectedRequest(cache, "Bearer "+tokenString, func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTConfigRejectsMissingToken(t *testing.T) {
	cache := &fakeCache{entries: map[string]string{}}
	rec := protectedRequest(cache, "", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
