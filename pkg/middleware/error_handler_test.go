package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"sweet-shop/internal/domain"
	apperrors "sweet-shop/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupErrorRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := zap.NewNop()
	router.Use(RecoveryHandler(logger))
	router.Use(ErrorHandler(logger))
	router.Use(CORSMiddleware())
	router.GET("/missing", func(c *gin.Context) {
		_ = c.Error(&domain.NotFoundError{ID: "abc"})
	})
	router.GET("/broken", func(c *gin.Context) {
		_ = c.Error(errors.New("disk on fire"))
	})
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	router.GET("/written", func(c *gin.Context) {
		_ = c.Error(errors.New("logged only"))
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) apperrors.StandardError {
	t.Helper()
	var body apperrors.StandardError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestErrorHandler_DomainError(t *testing.T) {
	w := httptest.NewRecorder()
	setupErrorRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperrors.CodeSweetNotFound, decodeError(t, w).Code)
}

func TestErrorHandler_UnknownError(t *testing.T) {
	w := httptest.NewRecorder()
	setupErrorRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/broken", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, apperrors.CodeInternal, body.Code)
	assert.NotContains(t, w.Body.String(), "disk on fire")
}

func TestErrorHandler_KeepsWrittenResponse(t *testing.T) {
	w := httptest.NewRecorder()
	setupErrorRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/written", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}

func TestRecoveryHandler(t *testing.T) {
	w := httptest.NewRecorder()
	setupErrorRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, apperrors.CodeInternal, decodeError(t, w).Code)
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	w := httptest.NewRecorder()
	setupErrorRouter().ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/missing", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
