package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Sarab71/fossnflories/internal/domain"
	"github.com/Sarab71/fossnflories/internal/repository"
	"github.com/Sarab71/fossnflories/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authServiceMock struct {
	user  *domain.User
	token string
	err   error
}

func (a authServiceMock) Signup(context.Context, string, string, string) (*domain.User, error) {
	if a.err != nil {
		return nil, a.err
	}
	return a.user, nil
}

func (a authServiceMock) Login(context.Context, string, string) (string, *domain.User, error) {
	if a.err != nil {
		return "", nil, a.err
	}
	return a.token, a.user, nil
}

func (a authServiceMock) ForgotPassword(context.Context, string) error {
	return a.err
}

func (a authServiceMock) ResetPassword(context.Context, string, string) error {
	return a.err
}

func TestSignup_Success(t *testing.T) {
	handler := NewAuthHandler(authServiceMock{user: &domain.User{ID: "u1", Name: "Sarab", Email: "sarab@example.com"}}, 5*time.Second)

	body, _ := json.Marshal(SignupRequestDTO{Name: "Sarab", Email: "sarab@example.com", Password: "secret123"})
	recorder := httptest.NewRecorder()
	handler.Signup(recorder, httptest.NewRequest("POST", "/api/signup", bytes.NewReader(body)))

	require.Equal(t, http.StatusCreated, recorder.Code)

	var user domain.User
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&user))
	assert.Equal(t, "sarab@example.com", user.Email)
}

func TestSignup_MissingFields(t *testing.T) {
	handler := NewAuthHandler(authServiceMock{}, 5*time.Second)

	body, _ := json.Marshal(SignupRequestDTO{Email: "sarab@example.com"})
	recorder := httptest.NewRecorder()
	handler.Signup(recorder, httptest.NewRequest("POST", "/api/signup", bytes.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	handler := NewAuthHandler(authServiceMock{err: repository.ErrDuplicateEmail}, 5*time.Second)

	body, _ := json.Marshal(SignupRequestDTO{Name: "Sarab", Email: "sarab@example.com", Password: "secret123"})
	recorder := httptest.NewRecorder()
	handler.Signup(recorder, httptest.NewRequest("POST", "/api/signup", bytes.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestLogin_ReturnsToken(t *testing.T) {
	handler := NewAuthHandler(authServiceMock{
		user:  &domain.User{ID: "u1", Email: "sarab@example.com"},
		token: "signed-token",
	}, 5*time.Second)

	body, _ := json.Marshal(LoginRequestDTO{Email: "sarab@example.com", Password: "secret123"})
	recorder := httptest.NewRecorder()
	handler.Login(recorder, httptest.NewRequest("POST", "/api/login", bytes.NewReader(body)))

	require.Equal(t, http.StatusOK, recorder.Code)

	var resp LoginResponseDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "signed-token", resp.Token)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	handler := NewAuthHandler(authServiceMock{err: service.ErrInvalidCredentials}, 5*time.Second)

	body, _ := json.Marshal(LoginRequestDTO{Email: "sarab@example.com", Password: "wrong"})
	recorder := httptest.NewRecorder()
	handler.Login(recorder, httptest.NewRequest("POST", "/api/login", bytes.NewReader(body)))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestForgotPassword_UnknownEmail(t *testing.T) {
	handler := NewAuthHandler(authServiceMock{err: repository.ErrUserNotFound}, 5*time.Second)

	body, _ := json.Marshal(ForgotPasswordRequestDTO{Email: "nobody@example.com"})
	recorder := httptest.NewRecorder()
	handler.ForgotPassword(recorder, httptest.NewRequest("POST", "/api/forgot-password", bytes.NewReader(body)))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestResetPassword_InvalidToken(t *testing.T) {
	handler := NewAuthHandler(authServiceMock{err: service.ErrInvalidResetToken}, 5*time.Second)

	body, _ := json.Marshal(ResetPasswordRequestDTO{Token: "bogus", NewPassword: "newpass"})
	recorder := httptest.NewRecorder()
	handler.ResetPassword(recorder, httptest.NewRequest("POST", "/api/reset-password", bytes.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestResetPassword_Success(t *testing.T) {
	handler := NewAuthHandler(authServiceMock{}, 5*time.Second)

	body, _ := json.Marshal(ResetPasswordRequestDTO{Token: "tok", NewPassword: "newpass"})
	recorder := httptest.NewRecorder()
	handler.ResetPassword(recorder, httptest.NewRequest("POST", "/api/reset-password", bytes.NewReader(body)))

	assert.Equal(t, http.StatusOK, recorder.Code)
}
