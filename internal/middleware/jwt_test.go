package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/stay-booking/internal/utils"
)

const testSecret = "mw-test-secret"

func runJWT(t *testing.T, authHeader string) (*httptest.ResponseRecorder, interface{}) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seenUserID interface{}
	h := JWTAuth(testSecret)(func(c echo.Context) error {
		seenUserID = c.Get("user_id")
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, seenUserID
}

func TestJWTAuthMissingHeader(t *testing.T) {
	rec, _ := runJWT(t, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthMalformedToken(t *testing.T) {
	rec, _ := runJWT(t, "Bearer not-a-jwt")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthWrongSecret(t *testing.T) {
	at, err := utils.NewAccessToken("some-other-secret", 7, 15)
	require.NoError(t, err)
	rec, _ := runJWT(t, "Bearer "+at.Token)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthValidToken(t *testing.T) {
	at, err := utils.NewAccessToken(testSecret, 7, 15)
	require.NoError(t, err)
	rec, uid := runJWT(t, "Bearer "+at.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	// numeric claims decode as float64
	require.Equal(t, float64(7), uid)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	at, err := utils.NewAccessToken(testSecret, 7, -1)
	require.NoError(t, err)
	rec, _ := runJWT(t, "Bearer "+at.Token)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
