package middleware

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberdev/barberdev-web/internal/domain/user"
	"github.com/barberdev/barberdev-web/internal/session"
)

func token(t *testing.T, claims map[string]any) string {
	t.Helper()
	header, _ := json.Marshal(map[string]any{"alg": "HS256", "typ": "JWT"})
	payload, err := json.Marshal(claims)
	require.NoError(t, err)
	enc := base64.RawURLEncoding
	return enc.EncodeToString(header) + "." + enc.EncodeToString(payload) + ".sig"
}

func gatedEngine(store *session.Store, allowed ...user.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RoleGate(store, allowed...), func(c *gin.Context) {
		sess := SessionFrom(c)
		c.JSON(http.StatusOK, gin.H{"id": sess.Identity.ID})
	})
	return r
}

func request(r *gin.Engine, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: cookie})
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRoleGateRedirectsAnonymousToLogin(t *testing.T) {
	store := session.NewStore(nil, "token", false, nil)
	rec := request(gatedEngine(store), "")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRoleGateMalformedCredentialIsAnonymous(t *testing.T) {
	store := session.NewStore(nil, "token", false, nil)
	rec := request(gatedEngine(store), "broken.token")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRoleGateAllowsListedRole(t *testing.T) {
	store := session.NewStore(nil, "token", false, nil)
	tok := token(t, map[string]any{"nameid": "7", "role": 2})

	rec := request(gatedEngine(store, user.RoleBarber, user.RoleAdmin), tok)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":7}`, rec.Body.String())
}

func TestRoleGateForbiddenRoleGoesToOwnLanding(t *testing.T) {
	store := session.NewStore(nil, "token", false, nil)
	clientTok := token(t, map[string]any{"nameid": "7", "role": 1})

	rec := request(gatedEngine(store, user.RoleAdmin), clientTok)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/appointments", rec.Header().Get("Location"))
}

func TestRoleGateEmptyAllowListAdmitsAnyRole(t *testing.T) {
	store := session.NewStore(nil, "token", false, nil)
	tok := token(t, map[string]any{"nameid": "3", "role": 3})

	rec := request(gatedEngine(store), tok)
	assert.Equal(t, http.StatusOK, rec.Code)
}
