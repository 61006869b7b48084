package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boutik/internal/domain/entity"
	"boutik/internal/domain/service"
)

type stubTokenService struct {
	claims *service.TokenClaims
	err    error
}

func (s *stubTokenService) GenerateToken(userID uuid.UUID, role entity.Role) (string, error) {
	return "stub-token", nil
}

func (s *stubTokenService) ValidateToken(token string) (*service.TokenClaims, error) {
	return s.claims, s.err
}

func newAuthTestContext(t *testing.T, authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/shops/list", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	m := NewAuthMiddleware(&stubTokenService{})
	c, rec := newAuthTestContext(t, "")

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := m.Authenticate(next)(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "MISSING_TOKEN")
}

func TestAuthenticate_NotBearer(t *testing.T) {
	m := NewAuthMiddleware(&stubTokenService{})
	c, rec := newAuthTestContext(t, "Basic abcdef")

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := m.Authenticate(next)(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_TOKEN")
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	m := NewAuthMiddleware(&stubTokenService{err: assert.AnError})
	c, rec := newAuthTestContext(t, "Bearer bad-token")

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := m.Authenticate(next)(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_ValidTokenSetsIdentity(t *testing.T) {
	userID := uuid.New()
	m := NewAuthMiddleware(&stubTokenService{claims: &service.TokenClaims{
		UserID: userID,
		Role:   entity.RoleAdmin,
	}})
	c, rec := newAuthTestContext(t, "Bearer good-token")

	var gotUserID uuid.UUID
	var gotRole entity.Role
	next := func(c echo.Context) error {
		gotUserID = c.Get(ContextKeyUserID).(uuid.UUID)
		gotRole = c.Get(ContextKeyRole).(entity.Role)

		return c.NoContent(http.StatusOK)
	}

	err := m.Authenticate(next)(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, gotUserID)
	assert.Equal(t, entity.RoleAdmin, gotRole)
}

func TestRequireRole_AllowsListedRole(t *testing.T) {
	m := NewAuthMiddleware(&stubTokenService{})
	c, rec := newAuthTestContext(t, "")
	c.Set(ContextKeyRole, entity.RoleAdmin)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := m.RequireRole(entity.RoleAdmin)(next)(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole_RejectsOtherRole(t *testing.T) {
	m := NewAuthMiddleware(&stubTokenService{})
	c, rec := newAuthTestContext(t, "")
	c.Set(ContextKeyRole, entity.RoleClient)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := m.RequireRole(entity.RoleAdmin)(next)(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "FORBIDDEN")
}

func TestRequireRole_MissingRoleInfo(t *testing.T) {
	m := NewAuthMiddleware(&stubTokenService{})
	c, rec := newAuthTestContext(t, "")

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := m.RequireRole(entity.RoleAdmin)(next)(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
