package service_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/mkrishnan-dev/quickbasket/internal/service"
)

func newTokenService(t *testing.T) *service.TokenService {
	t.Helper()
	return &service.TokenService{
		DB:            newTestDB(t),
		JWTSecret:     []byte("access-secret"),
		RefreshSecret: []byte("refresh-secret"),
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTokenService(t)

	raw, err := service.SignAccessToken(7, "vendor", svc.JWTSecret)
	require.NoError(t, err)

	token, err := jwt.Parse(raw, func(*jwt.Token) (interface{}, error) { return svc.JWTSecret, nil })
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	require.Equal(t, float64(7), claims["sub"])
	require.Equal(t, "vendor", claims["role"])
}

func TestValidateRefreshRejectsAccessToken(t *testing.T) {
	svc := newTokenService(t)

	// An access token signed with the refresh secret still lacks typ=refresh.
	raw, err := service.SignAccessToken(7, "user", svc.RefreshSecret)
	require.NoError(t, err)

	_, err = service.ValidateRefresh(raw, svc.RefreshSecret, svc.DB)
	require.Error(t, err)
}

func TestRotateTokenRevokesOld(t *testing.T) {
	svc := newTokenService(t)

	refresh, err := service.SignRefreshToken(7, "user", svc.RefreshSecret)
	require.NoError(t, err)
	require.NoError(t, service.SaveRefreshToken(svc.DB, refresh, 7))

	access, newRefresh, err := svc.RotateToken(refresh)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEqual(t, refresh, newRefresh)

	// The old token is single-use.
	_, _, err = svc.RotateToken(refresh)
	require.Error(t, err)

	// The new one works.
	_, _, err = svc.RotateToken(newRefresh)
	require.NoError(t, err)
}

func TestRevokeRefresh(t *testing.T) {
	svc := newTokenService(t)

	refresh, err := service.SignRefreshToken(3, "user", svc.RefreshSecret)
	require.NoError(t, err)
	require.NoError(t, service.SaveRefreshToken(svc.DB, refresh, 3))
	require.NoError(t, svc.RevokeRefresh(refresh))

	_, err = service.ValidateRefresh(refresh, svc.RefreshSecret, svc.DB)
	require.Error(t, err)
}

func TestAutoRefreshMiddleware(t *testing.T) {
	svc := newTokenService(t)
	e := echo.New()

	var gotUserID uint
	handler := svc.AutoRefreshMiddleware(func(c echo.Context) error {
		id, err := service.UserID(c)
		if err != nil {
			return err
		}
		gotUserID = id
		return c.NoContent(http.StatusOK)
	})

	// No cookies at all: unauthorized.
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	rec := httptest.NewRecorder()
	err := handler(e.NewContext(req, rec))
	requireHTTPCode(t, err, http.StatusUnauthorized)

	// Valid access cookie passes straight through.
	access, err := service.SignAccessToken(9, "user", svc.JWTSecret)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: access})
	rec = httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))
	require.Equal(t, uint(9), gotUserID)

	// Missing access cookie but a valid refresh cookie rotates and proceeds.
	refresh, err := service.SignRefreshToken(9, "user", svc.RefreshSecret)
	require.NoError(t, err)
	require.NoError(t, service.SaveRefreshToken(svc.DB, refresh, 9))

	req = httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: "refreshToken", Value: refresh})
	rec = httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))
	require.Equal(t, uint(9), gotUserID)
	require.NotEmpty(t, rec.Result().Cookies())
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	handler := service.RequireRole("admin")(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/vendors/pending", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.Set("role", "user")
	requireHTTPCode(t, handler(c), http.StatusForbidden)

	c = e.NewContext(req, httptest.NewRecorder())
	c.Set("role", "admin")
	require.NoError(t, handler(c))
}

func requireHTTPCode(t *testing.T, err error, want int) {
	t.Helper()
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, want, he.Code)
}
