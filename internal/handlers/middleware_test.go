package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Kiranpjk/RapidGigs-sub001/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testJwtKey = []byte("test-secret")

func authRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", MustAuthenticateMiddleware(testJwtKey), func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"user_id": authenticatedUserID(ctx)})
	})
	return router
}

func TestMustAuthenticateAcceptsValidToken(t *testing.T) {
	router := authRouter(t)
	token, err := utils.CreateJwtToken(42, "dana@example.com", "Dana", "Smith", testJwtKey, time.Now().Add(time.Hour))
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/protected", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"user_id":42`)
}

func TestMustAuthenticateRejectsMissingToken(t *testing.T) {
	router := authRouter(t)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestMustAuthenticateRejectsExpiredToken(t *testing.T) {
	router := authRouter(t)
	token, err := utils.CreateJwtToken(42, "dana@example.com", "Dana", "Smith", testJwtKey, time.Now().Add(-time.Hour))
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/protected", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestMustAuthenticateRejectsWrongKey(t *testing.T) {
	router := authRouter(t)
	token, err := utils.CreateJwtToken(42, "dana@example.com", "Dana", "Smith", []byte("another-secret"), time.Now().Add(time.Hour))
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/protected", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
