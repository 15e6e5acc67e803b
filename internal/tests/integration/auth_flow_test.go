package integration

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthFlow_SignupSigninProfile(t *testing.T) {
	setupTestDB(t)
	r := setupRouter()

	signup := map[string]string{"email": "sam@test.com", "username": "sam", "password": "password123"}
	w := performRequest(r, "POST", "/api/auth/signup", signup, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var user map[string]interface{}
	decode(t, w, &user)
	assert.Equal(t, "sam", user["displayName"])
	assert.NotContains(t, user, "password")

	w = performRequest(r, "POST", "/api/auth/signup", signup, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CONFLICT", errorKind(t, w))

	w = performRequest(r, "POST", "/api/auth/signin", map[string]string{"email": "sam@test.com", "password": "nope-nope"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))

	w = performRequest(r, "POST", "/api/auth/signin", map[string]string{"email": "sam@test.com", "password": "password123"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	var signin struct {
		AccessToken string `json:"accessToken"`
		TokenType   string `json:"tokenType"`
	}
	decode(t, w, &signin)
	require.NotEmpty(t, signin.AccessToken)
	assert.Equal(t, "bearer", signin.TokenType)

	w = performRequest(r, "GET", "/api/user/profile", nil, signin.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)
	var profile map[string]interface{}
	decode(t, w, &profile)
	assert.Equal(t, "sam", profile["username"])
	assert.EqualValues(t, 0, profile["totalPoints"])
	assert.EqualValues(t, 0, profile["streak"])
	assert.EqualValues(t, 1, profile["rank"])

	w = performRequest(r, "PUT", "/api/user/profile", map[string]string{"bio": "Hello"}, signin.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &profile)
	assert.Equal(t, "Hello", profile["bio"])

	w = performRequest(r, "POST", "/api/auth/signout", nil, signin.AccessToken)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuth_RejectsMissingAndInvalidTokens(t *testing.T) {
	setupTestDB(t)
	r := setupRouter()

	w := performRequest(r, "GET", "/api/tasks", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", errorKind(t, w))

	w = performRequest(r, "GET", "/api/tasks", nil, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// A token for an account that no longer exists
	user := createTestUser(t, "ghost")
	w = performRequest(r, "DELETE", "/api/user/account", nil, user.Token)
	require.Equal(t, http.StatusOK, w.Code)
	w = performRequest(r, "GET", "/api/user/profile", nil, user.Token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUploadProfilePhoto(t *testing.T) {
	setupTestDB(t)
	r := setupRouter()
	user := createTestUser(t, "pic")

	upload := func(contentType string) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="file"; filename="me.jpg"`)
		h.Set("Content-Type", contentType)
		part, _ := mw.CreatePart(h)
		_, _ = part.Write([]byte("fake image bytes"))
		mw.Close()

		req, _ := http.NewRequest("POST", "/api/user/profile/photo", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+user.Token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := upload("image/jpeg")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp map[string]string
	decode(t, w, &resp)
	assert.Equal(t, "https://media.test/trackitnow/profiles/user_"+user.ID+".jpg", resp["avatarUrl"])

	w = upload("text/plain")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", errorKind(t, w))
}

func TestHealth(t *testing.T) {
	setupTestDB(t)
	r := setupRouter()

	w := performRequest(r, "GET", "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	w = performRequest(r, "GET", "/", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}
