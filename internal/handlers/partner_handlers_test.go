package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"kasirhub/internal/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPartnerRepo satisfies repositories.PartnerRepository with no-op
// writes so handler side effects can be observed in isolation.
type stubPartnerRepo struct{}

func (s *stubPartnerRepo) Create(ctx context.Context, partner *models.Partner) error { return nil }

func (s *stubPartnerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Partner, error) {
	return &models.Partner{ID: id}, nil
}

func (s *stubPartnerRepo) GetByEmail(ctx context.Context, email string) (*models.Partner, error) {
	return nil, nil
}

func (s *stubPartnerRepo) Update(ctx context.Context, partner *models.Partner) error { return nil }

func (s *stubPartnerRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return nil
}

func (s *stubPartnerRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (s *stubPartnerRepo) List(ctx context.Context, limit, offset int) ([]*models.Partner, error) {
	return nil, nil
}

func partnerContext(method, body string, partnerID uuid.UUID) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(partnerID.String())
	return c, rec
}

func TestSetPartnerStatus_InvalidatesPartnerCache(t *testing.T) {
	partnerID := uuid.New()
	cache := &stubCache{}
	h := NewPartnerHandlers(&stubPartnerRepo{}, cache)

	c, rec := partnerContext(http.MethodPatch, `{"status":"suspended"}`, partnerID)
	require.NoError(t, h.SetPartnerStatus(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []uuid.UUID{partnerID}, cache.invalidated)
}

func TestSetPartnerStatus_RejectsUnknownStatus(t *testing.T) {
	cache := &stubCache{}
	h := NewPartnerHandlers(&stubPartnerRepo{}, cache)

	c, _ := partnerContext(http.MethodPatch, `{"status":"archived"}`, uuid.New())
	err := h.SetPartnerStatus(c)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	assert.Empty(t, cache.invalidated)
}

func TestDeletePartner_InvalidatesPartnerCache(t *testing.T) {
	partnerID := uuid.New()
	cache := &stubCache{}
	h := NewPartnerHandlers(&stubPartnerRepo{}, cache)

	c, rec := partnerContext(http.MethodDelete, "", partnerID)
	require.NoError(t, h.DeletePartner(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []uuid.UUID{partnerID}, cache.invalidated)
}
