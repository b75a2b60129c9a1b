package services_test

import (
	"fmt"
	"testing"

	"scoops/internal/models"
	"scoops/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "test_jwt_secret")

	newUser := &models.User{Name: "Asha Rao", Email: "asha@example.com", Password: "secret123"}

	mockRepo.On("GetByEmail", "asha@example.com").Return(nil, fmt.Errorf("user with email asha@example.com not found")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	err := service.RegisterUser(newUser)

	assert.NoError(t, err)
	// Password is stored hashed.
	assert.NotEqual(t, "secret123", newUser.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(newUser.Password), []byte("secret123")))
	// Self-registration never yields an admin.
	assert.Equal(t, models.RoleUser, newUser.Role)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterUser_CannotSelfAssignAdmin(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "test_jwt_secret")

	user := &models.User{Name: "Mallory", Email: "mallory@example.com", Password: "secret123", Role: models.RoleAdmin}

	mockRepo.On("GetByEmail", "mallory@example.com").Return(nil, fmt.Errorf("not found")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	assert.NoError(t, service.RegisterUser(user))
	assert.Equal(t, models.RoleUser, user.Role)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterUser_DuplicateEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "test_jwt_secret")

	existing := &models.User{ID: "user-1", Email: "asha@example.com"}
	mockRepo.On("GetByEmail", "asha@example.com").Return(existing, nil).Once()

	err := service.RegisterUser(&models.User{Name: "Asha Rao", Email: "asha@example.com", Password: "secret123"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_LoginAndValidate(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "test_jwt_secret")

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	assert.NoError(t, err)
	stored := &models.User{ID: "user-1", Email: "asha@example.com", Password: string(hashed), Role: models.RoleAdmin}

	mockRepo.On("GetByEmail", "asha@example.com").Return(stored, nil).Twice()

	// Wrong password.
	token, err := service.LoginUser("asha@example.com", "wrong")
	assert.Error(t, err)
	assert.Empty(t, token)

	// Correct password yields a token carrying identity and role.
	token, err = service.LoginUser("asha@example.com", "secret123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "admin", claims["role"])
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken_WrongSecret(t *testing.T) {
	mockRepo := new(MockUserRepository)
	issuer := services.NewAuthService(mockRepo, "secret_a")
	verifier := services.NewAuthService(mockRepo, "secret_b")

	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	stored := &models.User{ID: "user-1", Email: "asha@example.com", Password: string(hashed)}
	mockRepo.On("GetByEmail", "asha@example.com").Return(stored, nil).Once()

	token, err := issuer.LoginUser("asha@example.com", "secret123")
	assert.NoError(t, err)

	claims, err := verifier.ValidateToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestAuthService_LoginUser_UnknownEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, "test_jwt_secret")

	mockRepo.On("GetByEmail", "ghost@example.com").Return(nil, fmt.Errorf("not found")).Once()

	token, err := service.LoginUser("ghost@example.com", "whatever")
	assert.Error(t, err)
	assert.Empty(t, token)
	// The error does not reveal whether the account exists.
	assert.Equal(t, "invalid credentials", err.Error())
}
