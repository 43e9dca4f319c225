package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	identityapp "github.com/recipebox/backend/internal/application/identity"
	"github.com/recipebox/backend/internal/domain/shared"
	"github.com/recipebox/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newUserRouter(userRepo *MockUserRepository, authedUser uuid.UUID) *gin.Engine {
	jwtService := newHandlerJWTService()
	userService := identityapp.NewUserService(userRepo, zap.NewNop())
	h := NewUserHandler(userService)

	router := gin.New()
	router.POST("/api/v1/users", h.Register)

	authed := router.Group("", withClaims(jwtService, authedUser, "cook@example.com"))
	authed.GET("/api/v1/users/me", h.GetMe)
	authed.PATCH("/api/v1/users/me", h.UpdateMe)
	authed.POST("/api/v1/users/me/deactivate", h.DeactivateMe)
	authed.GET("/api/v1/users/stats/count", h.Count)
	return router
}

func TestUserHandler_Register(t *testing.T) {
	t.Run("creates a user and returns 201", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		router := newUserRouter(userRepo, uuid.New())

		userRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		w := performJSON(t, router, http.MethodPost, "/api/v1/users", RegisterUserRequest{
			Email:    "new@example.com",
			Password: "secret123",
			Name:     "New Cook",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		resp := decodeResponse(t, w)
		assert.True(t, resp.Success)

		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "new@example.com", data["email"])
		assert.Equal(t, "New Cook", data["name"])
		assert.Equal(t, true, data["is_active"])
		userRepo.AssertExpectations(t)
	})

	t.Run("duplicate email returns 400", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		router := newUserRouter(userRepo, uuid.New())

		userRepo.On("Create", mock.Anything, mock.Anything).Return(shared.ErrAlreadyExists)

		w := performJSON(t, router, http.MethodPost, "/api/v1/users", RegisterUserRequest{
			Email:    "taken@example.com",
			Password: "secret123",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	})

	t.Run("short password is rejected by binding", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		router := newUserRouter(userRepo, uuid.New())

		w := performJSON(t, router, http.MethodPost, "/api/v1/users", RegisterUserRequest{
			Email:    "new@example.com",
			Password: "pw",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("invalid email is rejected by binding", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		router := newUserRouter(userRepo, uuid.New())

		w := performJSON(t, router, http.MethodPost, "/api/v1/users", RegisterUserRequest{
			Email:    "not-an-email",
			Password: "secret123",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUserHandler_GetMe(t *testing.T) {
	t.Run("returns the authenticated user's profile", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		user := newTestUser(t, "cook@example.com", "secret123")
		router := newUserRouter(userRepo, user.ID)

		userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		w := performJSON(t, router, http.MethodGet, "/api/v1/users/me", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, user.ID.String(), data["id"])
		assert.Equal(t, "cook@example.com", data["email"])
	})

	t.Run("missing user returns 404", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userID := uuid.New()
		router := newUserRouter(userRepo, userID)

		userRepo.On("FindByID", mock.Anything, userID).Return(nil, shared.ErrNotFound)

		w := performJSON(t, router, http.MethodGet, "/api/v1/users/me", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUserHandler_UpdateMe(t *testing.T) {
	t.Run("updates only the provided fields", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		user := newTestUser(t, "cook@example.com", "secret123")
		router := newUserRouter(userRepo, user.ID)

		userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
		userRepo.On("Update", mock.Anything, user).Return(nil)

		w := performJSON(t, router, http.MethodPatch, "/api/v1/users/me", gin.H{
			"name": "Renamed Cook",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Renamed Cook", user.Name)
		assert.Equal(t, "cook@example.com", user.Email)
	})

	t.Run("changes email after availability check", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		user := newTestUser(t, "cook@example.com", "secret123")
		router := newUserRouter(userRepo, user.ID)

		userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
		userRepo.On("ExistsByEmail", mock.Anything, "fresh@example.com").Return(false, nil)
		userRepo.On("Update", mock.Anything, user).Return(nil)

		w := performJSON(t, router, http.MethodPatch, "/api/v1/users/me", gin.H{
			"email": "fresh@example.com",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "fresh@example.com", user.Email)
	})

	t.Run("taken email returns 400", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		user := newTestUser(t, "cook@example.com", "secret123")
		router := newUserRouter(userRepo, user.ID)

		userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
		userRepo.On("ExistsByEmail", mock.Anything, "taken@example.com").Return(true, nil)

		w := performJSON(t, router, http.MethodPatch, "/api/v1/users/me", gin.H{
			"email": "taken@example.com",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "cook@example.com", user.Email)
	})

	t.Run("updates password", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		user := newTestUser(t, "cook@example.com", "secret123")
		router := newUserRouter(userRepo, user.ID)

		userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
		userRepo.On("Update", mock.Anything, user).Return(nil)

		w := performJSON(t, router, http.MethodPatch, "/api/v1/users/me", gin.H{
			"password": "newsecret",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, user.VerifyPassword("newsecret"))
	})
}

func TestUserHandler_DeactivateMe(t *testing.T) {
	userRepo := new(MockUserRepository)
	user := newTestUser(t, "cook@example.com", "secret123")
	router := newUserRouter(userRepo, user.ID)

	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	userRepo.On("Update", mock.Anything, user).Return(nil)

	w := performJSON(t, router, http.MethodPost, "/api/v1/users/me/deactivate", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, user.IsActive)

	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, false, data["is_active"])
}

func TestUserHandler_Count(t *testing.T) {
	userRepo := new(MockUserRepository)
	router := newUserRouter(userRepo, uuid.New())

	userRepo.On("Count", mock.Anything).Return(int64(7), nil)

	w := performJSON(t, router, http.MethodGet, "/api/v1/users/stats/count", nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(7), data["count"])
}
