// file: service/auth_service_test.go

package service

import (
	"errors"
	"go-auth-api/model"
	"go-auth-api/repository"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(user *model.User, roleID int) error {
	args := m.Called(user, roleID)
	return args.Error(0)
}
func (m *mockUserRepo) GetByID(userID int) (*model.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
func (m *mockUserRepo) GetByUsernameOrEmail(usernameOrEmail string) (*model.User, error) {
	args := m.Called(usernameOrEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
func (m *mockUserRepo) ExistsByUsername(username string) (bool, error) {
	args := m.Called(username)
	return args.Bool(0), args.Error(1)
}
func (m *mockUserRepo) ExistsByEmail(email string) (bool, error) {
	args := m.Called(email)
	return args.Bool(0), args.Error(1)
}
func (m *mockUserRepo) GetRolesByUserID(userID int) ([]string, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type mockRoleRepo struct{ mock.Mock }

func (m *mockRoleRepo) GetByName(name model.RoleName) (*model.Role, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Role), args.Error(1)
}

type mockTokenRepo struct{ mock.Mock }

func (m *mockTokenRepo) Create(token *model.RefreshToken) error {
	args := m.Called(token)
	return args.Error(0)
}
func (m *mockTokenRepo) GetByToken(token string) (*model.RefreshToken, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RefreshToken), args.Error(1)
}
func (m *mockTokenRepo) DeleteByUserID(userID int) error {
	args := m.Called(userID)
	return args.Error(0)
}

type mockHasher struct{ mock.Mock }

func (m *mockHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}
func (m *mockHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)
	return args.Bool(0)
}

// newTestAuthService wires an AuthService with fresh mocks and a real token
// service, so tests can decode the tokens it mints.
func newTestAuthService() (*AuthService, *mockUserRepo, *mockRoleRepo, *mockTokenRepo, *mockHasher, *TokenService) {
	userRepo := new(mockUserRepo)
	roleRepo := new(mockRoleRepo)
	tokenRepo := new(mockTokenRepo)
	hasher := new(mockHasher)
	tokenService := NewTokenService(testSecret, 1*time.Hour)

	authService := NewAuthService(userRepo, roleRepo, tokenRepo, tokenService, hasher, 360*24*time.Hour)
	return authService, userRepo, roleRepo, tokenRepo, hasher, tokenService
}

func TestAuthService_SignIn(t *testing.T) {
	user := &model.User{ID: 5, Name: "Alice", Username: "alice", Email: "alice@x.com", Password: "hashed-pw"}

	t.Run("success", func(t *testing.T) {
		authService, userRepo, _, tokenRepo, hasher, tokenService := newTestAuthService()

		userRepo.On("GetByUsernameOrEmail", "alice").Return(user, nil).Once()
		hasher.On("Check", "pw1", "hashed-pw").Return(true).Once()
		userRepo.On("GetRolesByUserID", 5).Return([]string{"ROLE_USER"}, nil).Once()
		tokenRepo.On("Create", mock.MatchedBy(func(rt *model.RefreshToken) bool {
			return rt.UserID == 5 && rt.Token != "" && rt.ExpiresAt.After(time.Now().Add(359*24*time.Hour))
		})).Return(nil).Once()

		pair, appErr := authService.SignIn("alice", "pw1")

		assert.Nil(t, appErr)
		assert.Equal(t, "Bearer", pair.TokenType)
		assert.Equal(t, int64(3600000), pair.ExpiresInMs)
		assert.NotEmpty(t, pair.RefreshToken)

		// The minted access token must decode back to the same subject.
		claims, err := tokenService.ValidateAccessToken(pair.AccessToken)
		assert.NoError(t, err)
		assert.Equal(t, 5, claims.UserID)
		assert.Equal(t, []string{"ROLE_USER"}, claims.Roles)

		userRepo.AssertExpectations(t)
		tokenRepo.AssertExpectations(t)
	})

	t.Run("unknown user and wrong password are indistinguishable", func(t *testing.T) {
		authService, userRepo, _, _, hasher, _ := newTestAuthService()

		userRepo.On("GetByUsernameOrEmail", "nobody").Return(nil, repository.ErrUserNotFound).Once()
		_, unknownErr := authService.SignIn("nobody", "pw1")

		userRepo.On("GetByUsernameOrEmail", "alice").Return(user, nil).Once()
		hasher.On("Check", "wrong", "hashed-pw").Return(false).Once()
		_, wrongPwErr := authService.SignIn("alice", "wrong")

		assert.NotNil(t, unknownErr)
		assert.NotNil(t, wrongPwErr)
		assert.Equal(t, http.StatusUnauthorized, unknownErr.Code)
		assert.Equal(t, unknownErr.Code, wrongPwErr.Code)
		assert.Equal(t, unknownErr.Message, wrongPwErr.Message)
	})

	t.Run("refresh token persistence failure fails the sign-in", func(t *testing.T) {
		authService, userRepo, _, tokenRepo, hasher, _ := newTestAuthService()

		userRepo.On("GetByUsernameOrEmail", "alice").Return(user, nil).Once()
		hasher.On("Check", "pw1", "hashed-pw").Return(true).Once()
		userRepo.On("GetRolesByUserID", 5).Return([]string{"ROLE_USER"}, nil).Once()
		tokenRepo.On("Create", mock.Anything).Return(repository.ErrDuplicateToken).Once()

		_, appErr := authService.SignIn("alice", "pw1")

		assert.NotNil(t, appErr)
		assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	t.Run("unknown token", func(t *testing.T) {
		authService, _, _, tokenRepo, _, _ := newTestAuthService()

		tokenRepo.On("GetByToken", "unknown").Return(nil, repository.ErrTokenNotFound).Once()

		_, appErr := authService.Refresh("unknown")

		assert.NotNil(t, appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
		assert.Equal(t, "Invalid Refresh Token", appErr.Message)
	})

	t.Run("expired token gets the same external error", func(t *testing.T) {
		authService, _, _, tokenRepo, _, _ := newTestAuthService()

		record := &model.RefreshToken{Token: "stale", UserID: 5, ExpiresAt: time.Now().Add(-1 * time.Hour)}
		tokenRepo.On("GetByToken", "stale").Return(record, nil).Once()

		_, appErr := authService.Refresh("stale")

		assert.NotNil(t, appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
		assert.Equal(t, "Invalid Refresh Token", appErr.Message)
	})

	t.Run("success returns the same refresh token", func(t *testing.T) {
		authService, userRepo, _, tokenRepo, _, tokenService := newTestAuthService()

		record := &model.RefreshToken{Token: "valid-token", UserID: 5, ExpiresAt: time.Now().Add(24 * time.Hour)}
		tokenRepo.On("GetByToken", "valid-token").Return(record, nil).Once()
		userRepo.On("GetRolesByUserID", 5).Return([]string{"ROLE_USER"}, nil).Once()

		pair, appErr := authService.Refresh("valid-token")

		assert.Nil(t, appErr)
		// No rotation: the refresh token comes back unchanged.
		assert.Equal(t, "valid-token", pair.RefreshToken)
		assert.Equal(t, "Bearer", pair.TokenType)

		claims, err := tokenService.ValidateAccessToken(pair.AccessToken)
		assert.NoError(t, err)
		assert.Equal(t, 5, claims.UserID)

		tokenRepo.AssertExpectations(t)
	})
}

func TestAuthService_SignUp(t *testing.T) {
	req := &model.SignUpRequest{Name: "Alice", Username: "alice", Email: "alice@x.com", Password: "pw1secret"}

	t.Run("success", func(t *testing.T) {
		authService, userRepo, roleRepo, _, hasher, _ := newTestAuthService()

		userRepo.On("ExistsByUsername", "alice").Return(false, nil).Once()
		userRepo.On("ExistsByEmail", "alice@x.com").Return(false, nil).Once()
		hasher.On("Hash", "pw1secret").Return("hashed-pw", nil).Once()
		roleRepo.On("GetByName", model.RoleUser).Return(&model.Role{ID: 1, Name: model.RoleUser}, nil).Once()
		userRepo.On("CreateUser", mock.MatchedBy(func(u *model.User) bool {
			return u.Username == "alice" && u.Password == "hashed-pw"
		}), 1).Return(nil).Once()

		username, appErr := authService.SignUp(req)

		assert.Nil(t, appErr)
		assert.Equal(t, "alice", username)
		userRepo.AssertExpectations(t)
	})

	t.Run("username taken", func(t *testing.T) {
		authService, userRepo, _, _, _, _ := newTestAuthService()

		userRepo.On("ExistsByUsername", "alice").Return(true, nil).Once()

		_, appErr := authService.SignUp(req)

		assert.NotNil(t, appErr)
		assert.Equal(t, http.StatusConflict, appErr.Code)
		assert.Equal(t, "Username is already taken!", appErr.Message)
		userRepo.AssertNotCalled(t, "CreateUser")
	})

	t.Run("email in use", func(t *testing.T) {
		authService, userRepo, _, _, _, _ := newTestAuthService()

		userRepo.On("ExistsByUsername", "alice").Return(false, nil).Once()
		userRepo.On("ExistsByEmail", "alice@x.com").Return(true, nil).Once()

		_, appErr := authService.SignUp(req)

		assert.NotNil(t, appErr)
		assert.Equal(t, http.StatusConflict, appErr.Code)
		assert.Equal(t, "Email Address already in use!", appErr.Message)
		userRepo.AssertNotCalled(t, "CreateUser")
	})

	t.Run("missing default role is a configuration error with no partial user", func(t *testing.T) {
		authService, userRepo, roleRepo, _, hasher, _ := newTestAuthService()

		userRepo.On("ExistsByUsername", "alice").Return(false, nil).Once()
		userRepo.On("ExistsByEmail", "alice@x.com").Return(false, nil).Once()
		hasher.On("Hash", "pw1secret").Return("hashed-pw", nil).Once()
		roleRepo.On("GetByName", model.RoleUser).Return(nil, repository.ErrRoleNotFound).Once()

		_, appErr := authService.SignUp(req)

		assert.NotNil(t, appErr)
		assert.Equal(t, http.StatusInternalServerError, appErr.Code)
		assert.Equal(t, "User Role not set.", appErr.Message)
		userRepo.AssertNotCalled(t, "CreateUser")
	})

	t.Run("concurrent duplicate surfaces as conflict", func(t *testing.T) {
		// The up-front existence checks passed, but another sign-up with the
		// same username committed first; the unique constraint wins the race.
		authService, userRepo, roleRepo, _, hasher, _ := newTestAuthService()

		userRepo.On("ExistsByUsername", "alice").Return(false, nil).Once()
		userRepo.On("ExistsByEmail", "alice@x.com").Return(false, nil).Once()
		hasher.On("Hash", "pw1secret").Return("hashed-pw", nil).Once()
		roleRepo.On("GetByName", model.RoleUser).Return(&model.Role{ID: 1, Name: model.RoleUser}, nil).Once()
		userRepo.On("CreateUser", mock.Anything, 1).Return(repository.ErrDuplicateUsername).Once()

		_, appErr := authService.SignUp(req)

		assert.NotNil(t, appErr)
		assert.Equal(t, http.StatusConflict, appErr.Code)
		assert.Equal(t, "Username is already taken!", appErr.Message)
	})
}

func TestAuthService_SignOut(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		authService, _, _, tokenRepo, _, _ := newTestAuthService()

		tokenRepo.On("DeleteByUserID", 5).Return(nil).Once()

		appErr := authService.SignOut(5)

		assert.Nil(t, appErr)
		tokenRepo.AssertExpectations(t)
	})

	t.Run("repository error", func(t *testing.T) {
		authService, _, _, tokenRepo, _, _ := newTestAuthService()

		tokenRepo.On("DeleteByUserID", 5).Return(errors.New("db down")).Once()

		appErr := authService.SignOut(5)

		assert.NotNil(t, appErr)
		assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	})
}

func TestAuthService_GetUserByID(t *testing.T) {
	authService, userRepo, _, _, _, _ := newTestAuthService()

	user := &model.User{ID: 5, Name: "Alice", Username: "alice", Email: "alice@x.com"}
	userRepo.On("GetByID", 5).Return(user, nil).Once()
	userRepo.On("GetRolesByUserID", 5).Return([]string{"ROLE_USER"}, nil).Once()

	got, appErr := authService.GetUserByID(5)

	assert.Nil(t, appErr)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, []string{"ROLE_USER"}, got.Roles)
}
