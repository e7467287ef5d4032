package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gdugdh24/opportunity-matcher/internal/delivery/http/handler"
	"github.com/gdugdh24/opportunity-matcher/internal/delivery/http/middleware"
	"github.com/gdugdh24/opportunity-matcher/internal/usecase/matching"
)

const secret = "0123456789abcdef0123456789abcdef"

type okService struct{}

func (okService) Run(context.Context, matching.RunRequest) (*matching.RunResponse, error) {
	return &matching.RunResponse{Success: true}, nil
}

func (okService) CheckCompletion(_ context.Context, id string) (*matching.CompletionResponse, error) {
	return &matching.CompletionResponse{StudentID: id}, nil
}

func (okService) ListMatches(_ context.Context, id string, _ int) (*matching.ListMatchesResponse, error) {
	return &matching.ListMatchesResponse{StudentID: id}, nil
}

func setup(authSecret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(
		handler.NewMatchingHandler(okService{}),
		middleware.NewAuthMiddleware(authSecret),
		zap.NewNop(),
	).Setup()
}

func TestHealth(t *testing.T) {
	r := setup(secret)

	for _, method := range []string{http.MethodGet, http.MethodHead} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(method, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code, method)
	}
}

func TestAPIRequiresTokenWhenSecretSet(t *testing.T) {
	r := setup(secret)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/matching/run", strings.NewReader(`{"studentId":"s-1"}`)))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "portal",
		"exp": time.Now().Add(time.Minute).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/matching/run", strings.NewReader(`{"studentId":"s-1"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoutesWithoutAuth(t *testing.T) {
	r := setup("")

	for _, path := range []string{"/api/v1/matching/s-1/matches", "/api/v1/matching/s-1/completion"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Body.String(), `"studentId":"s-1"`)
	}
}
