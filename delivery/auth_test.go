package delivery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/andres-gutierrezri/kitty-project/domain"
	"github.com/andres-gutierrezri/kitty-project/utils"
)

// stubAuthUseCase returns canned results so handler behavior can be tested
// without the service wiring.
type stubAuthUseCase struct {
	registerViolations []domain.PasswordViolation
	tokens             *utils.JWTManager
}

func (s *stubAuthUseCase) GetAccessTokenManager() *utils.JWTManager  { return s.tokens }
func (s *stubAuthUseCase) GetRefreshTokenManager() *utils.JWTManager { return s.tokens }

func (s *stubAuthUseCase) Register(_ context.Context, _, _, _, _, _ string) ([]domain.PasswordViolation, error) {
	return s.registerViolations, nil
}

func (s *stubAuthUseCase) VerifyEmail(context.Context, string) error        { return nil }
func (s *stubAuthUseCase) ResendVerification(context.Context, string) error { return nil }

func (s *stubAuthUseCase) Login(_ context.Context, _, _, _, _ string) (*domain.LoginResult, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubAuthUseCase) Me(context.Context, string) (*domain.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubAuthUseCase) ChangePassword(_ context.Context, _, _, _ string) ([]domain.PasswordViolation, error) {
	return nil, nil
}

func (s *stubAuthUseCase) ForgotPassword(context.Context, string) error { return nil }

func (s *stubAuthUseCase) ResetPassword(_ context.Context, _, _ string) ([]domain.PasswordViolation, error) {
	return nil, nil
}

func registerWith(t *testing.T, lang string, violations []domain.PasswordViolation) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	stub := &stubAuthUseCase{
		registerViolations: violations,
		tokens:             utils.NewJWTManager("0123456789abcdef0123456789abcdef", time.Hour),
	}
	NewAuthHandler(r, stub, nil, lang)

	body := `{"username":"dora","email":"dora@mail.com","password":"corta"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_RegisterViolationsInConfiguredLanguage(t *testing.T) {
	violations := []domain.PasswordViolation{domain.ViolationTooShort}

	// The language is injected at construction, not read per request.
	w := registerWith(t, "ES", violations)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "La contraseña debe tener al menos 8 caracteres")

	w = registerWith(t, "", violations)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Password must be at least 8 characters long")
}

func TestAuthHandler_RegisterSuccess(t *testing.T) {
	w := registerWith(t, "EN", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
}
