package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/medscan-io/medscan-engine/pkg/apperrors"
	"github.com/medscan-io/medscan-engine/pkg/models"
)

func newProfileMux(profiles *mockProfileService) *http.ServeMux {
	mux := http.NewServeMux()
	NewProfileHandler(profiles, zap.NewNop()).RegisterRoutes(mux)
	return mux
}

func TestProfileCreate_Returns201(t *testing.T) {
	mux := newProfileMux(&mockProfileService{})

	body := bytes.NewBufferString(`{"display_name": "Dana", "bio": "allergic to penicillin"}`)
	req := httptest.NewRequest(http.MethodPost, "/profiles", body)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var got models.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, "Dana", got.DisplayName)
}

func TestProfileCreate_InvalidBodyRejected(t *testing.T) {
	mux := newProfileMux(&mockProfileService{})

	req := httptest.NewRequest(http.MethodPost, "/profiles", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProfileCreate_ValidationErrorReturns400(t *testing.T) {
	mux := newProfileMux(&mockProfileService{
		createErr: fmt.Errorf("%w: display name is required", apperrors.ErrValidation),
	})

	req := httptest.NewRequest(http.MethodPost, "/profiles", bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProfileGet_NotFoundReturns404(t *testing.T) {
	mux := newProfileMux(&mockProfileService{})

	req := httptest.NewRequest(http.MethodGet, "/profiles/"+uuid.New().String(), nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProfileGet_ReturnsProfile(t *testing.T) {
	profile := &models.Profile{ID: uuid.New(), DisplayName: "Dana"}
	mux := newProfileMux(&mockProfileService{profile: profile})

	req := httptest.NewRequest(http.MethodGet, "/profiles/"+profile.ID.String(), nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got models.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, profile.ID, got.ID)
}

func TestProfileDelete_Returns204(t *testing.T) {
	mux := newProfileMux(&mockProfileService{})

	req := httptest.NewRequest(http.MethodDelete, "/profiles/"+uuid.New().String(), nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestProfileDelete_NotFoundReturns404(t *testing.T) {
	mux := newProfileMux(&mockProfileService{deleteErr: apperrors.ErrNotFound})

	req := httptest.NewRequest(http.MethodDelete, "/profiles/"+uuid.New().String(), nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProfileRoutes_MalformedIDRejected(t *testing.T) {
	mux := newProfileMux(&mockProfileService{})

	req := httptest.NewRequest(http.MethodGet, "/profiles/not-a-uuid", nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
