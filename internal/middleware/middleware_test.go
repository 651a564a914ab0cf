package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Eursukkul/helper-marketplace/internal/dto"
	"github.com/Eursukkul/helper-marketplace/internal/models"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, sub, role string, ttl time.Duration) string {
	t.Helper()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func serveAuthenticated(t *testing.T, header string) (*httptest.ResponseRecorder, *models.Actor) {
	t.Helper()
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler

	var seen *models.Actor
	e.GET("/whoami", func(c echo.Context) error {
		actor, ok := ActorFrom(c)
		if ok {
			seen = &actor
		}
		return c.NoContent(http.StatusNoContent)
	}, Authenticate(testSecret))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec, seen
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAuthenticate_ValidToken(t *testing.T) {
	rec, actor := serveAuthenticated(t, "Bearer "+signToken(t, testSecret, "u-1", "helper", time.Hour))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, actor)
	assert.Equal(t, models.Worker("u-1"), *actor)
}

func TestAuthenticate_Member(t *testing.T) {
	_, actor := serveAuthenticated(t, "Bearer "+signToken(t, testSecret, "m-1", "member", time.Hour))

	require.NotNil(t, actor)
	assert.Equal(t, models.RoleMember, actor.Role)
}

func TestAuthenticate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		header string
		code   string
	}{
		{"no header", "", "missing_token"},
		{"not bearer", "Basic abc", "missing_token"},
		{"garbage", "Bearer not-a-jwt", "invalid_token"},
		{"wrong secret", "Bearer " + signToken(t, "other", "u-1", "member", time.Hour), "invalid_token"},
		{"expired", "Bearer " + signToken(t, testSecret, "u-1", "member", -time.Minute), "invalid_token"},
		{"unknown role", "Bearer " + signToken(t, testSecret, "u-1", "admin", time.Hour), "invalid_token"},
		{"no subject", "Bearer " + signToken(t, testSecret, "", "member", time.Hour), "invalid_token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, actor := serveAuthenticated(t, tt.header)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Nil(t, actor)
			assert.Equal(t, tt.code, decodeError(t, rec).Error)
		})
	}
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody dto.ErrorResponse
	}{
		{
			name:     "structured http error",
			err:      echo.NewHTTPError(http.StatusConflict, dto.ErrorResponse{Error: "schedule_conflict", Message: "busy"}),
			wantCode: http.StatusConflict,
			wantBody: dto.ErrorResponse{Error: "schedule_conflict", Message: "busy"},
		},
		{
			name:     "string http error",
			err:      echo.NewHTTPError(http.StatusBadRequest, "invalid booking id"),
			wantCode: http.StatusBadRequest,
			wantBody: dto.ErrorResponse{Error: "bad_request", Message: "invalid booking id"},
		},
		{
			name:     "plain error hides details",
			err:      errors.New("pq: connection refused"),
			wantCode: http.StatusInternalServerError,
			wantBody: dto.ErrorResponse{Error: "server_error", Message: "internal server error"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			ErrorHandler(tt.err, c)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantBody, decodeError(t, rec))
		})
	}
}

func TestValidator(t *testing.T) {
	v := NewValidator()
	long := make([]byte, 201)
	for i := range long {
		long[i] = 'a'
	}

	assert.NoError(t, v.Validate(&dto.CreateBookingRequest{CustomTitle: "Laundry"}))

	err := v.Validate(&dto.CreateBookingRequest{CustomTitle: string(long)})
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
	body, ok := he.Message.(dto.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, "validation_failed", body.Error)
	assert.Contains(t, body.Message, "CustomTitle")

	assert.Error(t, v.Validate(&dto.ConfirmPaymentRequest{Provider: "pay pal"}))
}
