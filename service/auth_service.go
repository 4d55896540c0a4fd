package service

import (
	"errors"
	"go-auth-api/common"
	"go-auth-api/logger"
	"go-auth-api/model"
	"go-auth-api/repository"
	"time"
)

const tokenTypeBearer = "Bearer"

// IAuthService defines the credential lifecycle operations exposed to the
// HTTP layer. Every method translates storage errors into the AppError
// taxonomy; raw repository errors never cross this boundary.
type IAuthService interface {
	SignIn(usernameOrEmail, password string) (*model.TokenPair, *common.AppError)
	Refresh(refreshToken string) (*model.TokenPair, *common.AppError)
	SignUp(req *model.SignUpRequest) (string, *common.AppError)
	SignOut(userID int) *common.AppError
	GetUserByID(userID int) (*model.User, *common.AppError)
}

// AuthService orchestrates sign-in, sign-up and token refresh. It holds no
// mutable state of its own; all state lives in the stores and the token
// service's signing key.
type AuthService struct {
	userRepo   repository.IUserRepository
	roleRepo   repository.IRoleRepository
	tokenRepo  repository.ITokenRepository
	tokens     ITokenService
	hasher     IPasswordHasher
	refreshTTL time.Duration
}

func NewAuthService(
	userRepo repository.IUserRepository,
	roleRepo repository.IRoleRepository,
	tokenRepo repository.ITokenRepository,
	tokens ITokenService,
	hasher IPasswordHasher,
	refreshTTL time.Duration,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		roleRepo:   roleRepo,
		tokenRepo:  tokenRepo,
		tokens:     tokens,
		hasher:     hasher,
		refreshTTL: refreshTTL,
	}
}

// SignIn authenticates a username/password pair and, on success, mints an
// access token and persists a fresh refresh token. An unknown account and a
// wrong password produce the same error, so a caller cannot enumerate users.
func (s *AuthService) SignIn(usernameOrEmail, password string) (*model.TokenPair, *common.AppError) {
	user, err := s.userRepo.GetByUsernameOrEmail(usernameOrEmail)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, common.NewInvalidCredentialsError(err)
		}
		return nil, common.NewInternalError("Could not sign in", err)
	}

	if !s.hasher.Check(password, user.Password) {
		return nil, common.NewInvalidCredentialsError(nil)
	}

	roles, err := s.userRepo.GetRolesByUserID(user.ID)
	if err != nil {
		return nil, common.NewInternalError("Could not sign in", err)
	}

	accessToken, err := s.tokens.GenerateAccessToken(user.ID, roles)
	if err != nil {
		return nil, common.NewInternalError("Could not sign in", err)
	}

	refreshToken, err := s.tokens.NewRefreshTokenString()
	if err != nil {
		return nil, common.NewInternalError("Could not sign in", err)
	}

	record := &model.RefreshToken{
		Token:     refreshToken,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.refreshTTL),
	}
	if err := s.tokenRepo.Create(record); err != nil {
		// Includes the astronomically unlikely duplicate token string; a
		// defined failure either way.
		return nil, common.NewInternalError("Could not sign in", err)
	}

	logger.Log.WithField("user_id", user.ID).Info("User signed in")

	return &model.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    tokenTypeBearer,
		ExpiresInMs:  s.tokens.AccessTokenTTL().Milliseconds(),
	}, nil
}

// Refresh exchanges a stored refresh token for a new access token. The same
// refresh token string is returned unchanged; tokens are not rotated. An
// unknown and an expired token produce the same external error so the caller
// learns nothing about stored state, but the real reason is logged.
func (s *AuthService) Refresh(refreshToken string) (*model.TokenPair, *common.AppError) {
	record, err := s.tokenRepo.GetByToken(refreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return nil, common.NewBadRequestError("Invalid Refresh Token", nil)
		}
		return nil, common.NewInternalError("Could not refresh token", err)
	}

	if time.Now().After(record.ExpiresAt) {
		logger.Log.WithField("user_id", record.UserID).Warn("Rejected expired refresh token")
		return nil, common.NewBadRequestError("Invalid Refresh Token", nil)
	}

	roles, err := s.userRepo.GetRolesByUserID(record.UserID)
	if err != nil {
		return nil, common.NewInternalError("Could not refresh token", err)
	}

	accessToken, err := s.tokens.GenerateAccessToken(record.UserID, roles)
	if err != nil {
		return nil, common.NewInternalError("Could not refresh token", err)
	}

	logger.Log.WithField("user_id", record.UserID).Info("Access token refreshed")

	return &model.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: record.Token,
		TokenType:    tokenTypeBearer,
		ExpiresInMs:  s.tokens.AccessTokenTTL().Milliseconds(),
	}, nil
}

// SignUp registers a new account with the default role and returns the new
// username. The default role is resolved before anything is persisted, so a
// missing role seed leaves no partial user record. Duplicate checks run
// up-front for friendly errors, and the database unique constraints catch the
// concurrent race the checks cannot.
func (s *AuthService) SignUp(req *model.SignUpRequest) (string, *common.AppError) {
	exists, err := s.userRepo.ExistsByUsername(req.Username)
	if err != nil {
		return "", common.NewInternalError("Could not sign up", err)
	}
	if exists {
		return "", common.NewConflictError("Username is already taken!")
	}

	exists, err = s.userRepo.ExistsByEmail(req.Email)
	if err != nil {
		return "", common.NewInternalError("Could not sign up", err)
	}
	if exists {
		return "", common.NewConflictError("Email Address already in use!")
	}

	hashedPassword, err := s.hasher.Hash(req.Password)
	if err != nil {
		return "", common.NewInternalError("Could not sign up", err)
	}

	role, err := s.roleRepo.GetByName(model.RoleUser)
	if err != nil {
		if errors.Is(err, repository.ErrRoleNotFound) {
			return "", common.NewConfigurationError("User Role not set.", err)
		}
		return "", common.NewInternalError("Could not sign up", err)
	}

	user := &model.User{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: hashedPassword,
	}
	if err := s.userRepo.CreateUser(user, role.ID); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateUsername):
			return "", common.NewConflictError("Username is already taken!")
		case errors.Is(err, repository.ErrDuplicateEmail):
			return "", common.NewConflictError("Email Address already in use!")
		}
		return "", common.NewInternalError("Could not sign up", err)
	}

	logger.Log.WithField("user_id", user.ID).Info("User registered")
	return user.Username, nil
}

// SignOut revokes every refresh token belonging to the user, logging the user
// out of all sessions. Outstanding access tokens remain valid until expiry.
func (s *AuthService) SignOut(userID int) *common.AppError {
	if err := s.tokenRepo.DeleteByUserID(userID); err != nil {
		return common.NewInternalError("Could not sign out", err)
	}
	logger.Log.WithField("user_id", userID).Info("User signed out of all sessions")
	return nil
}

// GetUserByID loads the user record plus role names for the given principal.
func (s *AuthService) GetUserByID(userID int) (*model.User, *common.AppError) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, common.NewBadRequestError("User not found", err)
		}
		return nil, common.NewInternalError("Could not load user", err)
	}

	roles, err := s.userRepo.GetRolesByUserID(userID)
	if err != nil {
		return nil, common.NewInternalError("Could not load user", err)
	}
	user.Roles = roles

	return user, nil
}
