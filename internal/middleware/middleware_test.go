package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trackitnow/trackitnow-backend/internal/config"
	"github.com/trackitnow/trackitnow-backend/internal/database"
	"github.com/trackitnow/trackitnow-backend/internal/models"
	"github.com/trackitnow/trackitnow-backend/pkg/errors"
	"github.com/trackitnow/trackitnow-backend/pkg/utils"
	"golang.org/x/time/rate"
)

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandlerMiddleware())
	r.GET("/x/:id", handlers...)
	return r
}

func serve(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestErrorHandler_RendersAppErrors(t *testing.T) {
	r := newEngine(func(c *gin.Context) {
		_ = c.Error(fmt.Errorf("wrapped: %w", errors.ErrDuplicateRelationship))
	})
	w := serve(r, "/x/1", "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"Friend request already exists","kind":"DUPLICATE_RELATIONSHIP"}`, w.Body.String())
}

func TestErrorHandler_HidesInternalErrors(t *testing.T) {
	r := newEngine(func(c *gin.Context) {
		_ = c.Error(fmt.Errorf("pq: connection refused"))
	})
	w := serve(r, "/x/1", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestErrorHandler_RecoversPanics(t *testing.T) {
	r := newEngine(func(c *gin.Context) { panic("boom") })
	w := serve(r, "/x/1", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequireUUIDParam(t *testing.T) {
	r := newEngine(RequireUUIDParam("id"), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	assert.Equal(t, http.StatusNotFound, serve(r, "/x/not-a-uuid", "").Code)
	assert.Equal(t, http.StatusNoContent, serve(r, "/x/"+uuid.NewString(), "").Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(0.001), 2)
	r := newEngine(RateLimitMiddleware(limiter), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	assert.Equal(t, http.StatusNoContent, serve(r, "/x/1", "").Code)
	assert.Equal(t, http.StatusNoContent, serve(r, "/x/1", "").Code)
	w := serve(r, "/x/1", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "RATE_LIMITED")
}

func TestAuthMiddleware(t *testing.T) {
	config.AppConfig = &config.Config{JWTSecret: "middleware-test-secret"}
	db, err := database.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db, &models.User{}))
	database.DB = db
	database.Redis = nil

	user := models.User{Email: "m@example.com", Username: "mid", DisplayName: "mid", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	r := newEngine(AuthMiddleware(), func(c *gin.Context) {
		c.String(http.StatusOK, CurrentUserID(c))
	})

	token, err := utils.GenerateToken(user.ID)
	require.NoError(t, err)
	w := serve(r, "/x/1", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, user.ID, w.Body.String())

	w = serve(r, "/x/1", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))

	stranger, err := utils.GenerateToken(uuid.NewString())
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, serve(r, "/x/1", stranger).Code)

	req, _ := http.NewRequest(http.MethodGet, "/x/1", nil)
	req.Header.Set("Authorization", "Token "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
