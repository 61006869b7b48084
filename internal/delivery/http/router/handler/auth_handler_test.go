package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"boutik/internal/delivery/http/validator"
	"boutik/internal/domain/entity"
	"boutik/internal/usecase"
)

type authUsecaseMock struct {
	mock.Mock
}

func (m *authUsecaseMock) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.AuthOutput, error) {
	args := m.Called(ctx, input)
	output, _ := args.Get(0).(*usecase.AuthOutput)

	return output, args.Error(1)
}

func (m *authUsecaseMock) Login(ctx context.Context, input usecase.LoginInput) (*usecase.AuthOutput, error) {
	args := m.Called(ctx, input)
	output, _ := args.Get(0).(*usecase.AuthOutput)

	return output, args.Error(1)
}

func (m *authUsecaseMock) CurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newAuthHandlerContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_UnknownCredentials(t *testing.T) {
	uc := new(authUsecaseMock)
	uc.On("Login", mock.Anything, usecase.LoginInput{
		Email:    "ghost@example.com",
		Password: "wrong-password",
	}).Return((*usecase.AuthOutput)(nil), nil)

	h := NewAuthHandler(uc, discardLogger())
	c, rec := newAuthHandlerContext(t, `{"email":"ghost@example.com","password":"wrong-password"}`)

	err := h.Login(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_CREDENTIALS")
	uc.AssertExpectations(t)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Email: "admin@example.com", Role: entity.RoleAdmin, Active: true}
	uc := new(authUsecaseMock)
	uc.On("Login", mock.Anything, mock.Anything).Return(&usecase.AuthOutput{User: user, Token: "jwt-token"}, nil)

	h := NewAuthHandler(uc, discardLogger())
	c, rec := newAuthHandlerContext(t, `{"email":"admin@example.com","password":"secret-password"}`)

	err := h.Login(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "jwt-token")
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestAuthHandler_Login_RejectsMalformedEmail(t *testing.T) {
	uc := new(authUsecaseMock)

	h := NewAuthHandler(uc, discardLogger())
	c, _ := newAuthHandlerContext(t, `{"email":"not-an-email","password":"secret-password"}`)

	err := h.Login(c)

	require.Error(t, err)
	uc.AssertNotCalled(t, "Login")
}

func TestAuthHandler_Register_Client(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Email: "client@example.com", Role: entity.RoleClient, Active: true}
	uc := new(authUsecaseMock)
	uc.On("Register", mock.Anything, mock.MatchedBy(func(input usecase.RegisterInput) bool {
		return input.Email == "client@example.com" &&
			input.Role == entity.RoleClient &&
			input.Address != nil &&
			input.Address.PostalCode == "75001"
	})).Return(&usecase.AuthOutput{User: user, Token: "jwt-token"}, nil)

	h := NewAuthHandler(uc, discardLogger())
	body := `{
		"name": "Chloé",
		"email": "client@example.com",
		"password": "secret-password",
		"role": "client",
		"address": {"street": "1 rue de Rivoli", "city": "Paris", "postalCode": "75001"}
	}`
	c, rec := newAuthHandlerContext(t, body)

	err := h.Register(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	uc.AssertExpectations(t)
}

func TestAuthHandler_Me_ReturnsProfile(t *testing.T) {
	userID := uuid.New()
	user := &entity.User{ID: userID, Email: "admin@example.com", Role: entity.RoleAdmin, Active: true}
	uc := new(authUsecaseMock)
	uc.On("CurrentUser", mock.Anything, userID).Return(user, nil)

	h := NewAuthHandler(uc, discardLogger())
	c, rec := newAuthHandlerContext(t, "")
	c.Set("userID", userID)

	err := h.Me(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), userID.String())
}
