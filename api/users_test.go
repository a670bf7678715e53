package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/galaxium/travels-booking/internal/domain"
	"github.com/galaxium/travels-booking/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) Register(ctx context.Context, name, email string) (*domain.User, error) {
	args := m.Called(ctx, name, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUseCase) FindByNameAndEmail(ctx context.Context, name, email string) (*domain.User, error) {
	args := m.Called(ctx, name, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUseCase) ResetUsers(ctx context.Context) (repository.ResetResult, error) {
	args := m.Called(ctx)
	return args.Get(0).(repository.ResetResult), args.Error(1)
}

func TestUserHandler_register(t *testing.T) {
	mockService := &MockUserUseCase{}
	handler := NewUserHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(registerRequest{Name: "Judy", Email: "judy@pluto.com"})
	c.Request = httptest.NewRequest("POST", "/register", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	user := &domain.User{UserID: 11, Name: "Judy", Email: "judy@pluto.com"}

	mockService.On("Register", c.Request.Context(), "Judy", "judy@pluto.com").Return(user, nil)

	handler.register(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response userResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, int64(11), response.UserID)

	mockService.AssertExpectations(t)
}

func TestUserHandler_register_DuplicateEmail(t *testing.T) {
	mockService := &MockUserUseCase{}
	handler := NewUserHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(registerRequest{Name: "Judy", Email: "judy@pluto.com"})
	c.Request = httptest.NewRequest("POST", "/register", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Register", c.Request.Context(), "Judy", "judy@pluto.com").Return(nil, domain.ErrEmailAlreadyRegistered)

	handler.register(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUserHandler_register_MissingFields(t *testing.T) {
	mockService := &MockUserUseCase{}
	handler := NewUserHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("POST", "/register", bytes.NewReader([]byte(`{"name": "Judy"}`)))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Register")
}

func TestUserHandler_lookup(t *testing.T) {
	mockService := &MockUserUseCase{}
	handler := NewUserHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("GET", "/user_id?name=Alice&email=alice%40example.com", nil)

	user := &domain.User{UserID: 1, Name: "Alice", Email: "alice@example.com"}

	mockService.On("FindByNameAndEmail", c.Request.Context(), "Alice", "alice@example.com").Return(user, nil)

	handler.lookup(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response userResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), response.UserID)

	mockService.AssertExpectations(t)
}

func TestUserHandler_lookup_NotFound(t *testing.T) {
	mockService := &MockUserUseCase{}
	handler := NewUserHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("GET", "/user_id?name=Alice&email=wrong%40example.com", nil)

	mockService.On("FindByNameAndEmail", c.Request.Context(), "Alice", "wrong@example.com").Return(nil, domain.ErrUserNotFound)

	handler.lookup(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserHandler_lookup_MissingParams(t *testing.T) {
	mockService := &MockUserUseCase{}
	handler := NewUserHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("GET", "/user_id?name=Alice", nil)

	handler.lookup(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "FindByNameAndEmail")
}

func TestUserHandler_reset(t *testing.T) {
	mockService := &MockUserUseCase{}
	handler := NewUserHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("DELETE", "/reset_users", nil)

	mockService.On("ResetUsers", c.Request.Context()).Return(repository.ResetResult{UsersDeleted: 10, BookingsDeleted: 20}, nil)

	handler.reset(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"users_deleted": 10, "bookings_deleted": 20}`, w.Body.String())

	mockService.AssertExpectations(t)
}

func TestUserHandler_reset_Failure(t *testing.T) {
	mockService := &MockUserUseCase{}
	handler := NewUserHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("DELETE", "/reset_users", nil)

	mockService.On("ResetUsers", c.Request.Context()).Return(repository.ResetResult{}, assert.AnError)

	handler.reset(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
