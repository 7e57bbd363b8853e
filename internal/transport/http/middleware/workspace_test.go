package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newWorkspaceRouter(t *testing.T, secret string, seen *[]string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Workspace(secret))
	router.GET("/whoami", func(c *gin.Context) {
		id, ok := WorkspaceID(c)
		require.True(t, ok)
		*seen = append(*seen, id)
		c.String(http.StatusOK, id)
	})
	return router
}

func TestWorkspace_MintsCookieForNewVisitor(t *testing.T) {
	var seen []string
	router := newWorkspaceRouter(t, testSecret, &seen)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	require.Len(t, seen, 1)
	assert.NotEmpty(t, seen[0])

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "freewen_workspace", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
}

func TestWorkspace_ReusesValidCookie(t *testing.T) {
	var seen []string
	router := newWorkspaceRouter(t, testSecret, &seen)

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	cookie := first.Result().Cookies()[0]

	second := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(cookie)
	router.ServeHTTP(second, req)

	require.Len(t, seen, 2)
	assert.Equal(t, seen[0], seen[1], "same cookie, same workspace")
	assert.Empty(t, second.Result().Cookies(), "no new cookie for a returning visitor")
}

func TestWorkspace_RejectsTamperedCookie(t *testing.T) {
	var seen []string
	router := newWorkspaceRouter(t, testSecret, &seen)

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	cookie := first.Result().Cookies()[0]

	// Token signed with a different secret is discarded and a fresh
	// workspace is minted.
	forged, err := mintWorkspaceToken("other-secret", "stolen-id")
	require.NoError(t, err)

	second := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: cookie.Name, Value: forged})
	router.ServeHTTP(second, req)

	require.Len(t, seen, 2)
	assert.NotEqual(t, "stolen-id", seen[1])
	assert.Len(t, second.Result().Cookies(), 1, "a replacement cookie is set")
}

func TestWorkspaceTokenRoundTrip(t *testing.T) {
	token, err := mintWorkspaceToken(testSecret, "ws-42")
	require.NoError(t, err)

	id, ok := parseWorkspaceToken(testSecret, token)
	assert.True(t, ok)
	assert.Equal(t, "ws-42", id)

	_, ok = parseWorkspaceToken("wrong-secret", token)
	assert.False(t, ok)

	_, ok = parseWorkspaceToken(testSecret, "garbage")
	assert.False(t, ok)
}
