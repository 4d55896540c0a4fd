package handler

import (
	"encoding/json"
	"go-auth-api/common"
	"go-auth-api/logger"
	"go-auth-api/model"
	"go-auth-api/service"
	"net/http"
)

type AuthHandler struct {
	service service.IAuthService
}

func NewAuthHandler(service service.IAuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// SignIn godoc
// @Summary      Authenticate a user
// @Description  Verifies a username/email and password pair and returns an access token plus a refresh token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      model.SignInRequest  true  "Credentials"
// @Success      200      {object}  model.TokenPair
// @Failure      401      {object}  common.AppError
// @Router       /api/auth/signin [post]
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.SignInRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	logger.Log.WithField("username_or_email", req.UsernameOrEmail).Info("Sign-in request received")

	tokenPair, appErr := h.service.SignIn(req.UsernameOrEmail, req.Password)
	if appErr != nil {
		return appErr
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(tokenPair)

	return nil
}

// RefreshToken godoc
// @Summary      Exchange a refresh token
// @Description  Returns a new access token for a known refresh token. The refresh token itself is returned unchanged.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      model.RefreshTokenRequest  true  "Refresh token"
// @Success      200      {object}  model.TokenPair
// @Failure      400      {object}  common.AppError
// @Router       /api/auth/refreshToken [post]
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.RefreshTokenRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	tokenPair, appErr := h.service.Refresh(req.RefreshToken)
	if appErr != nil {
		return appErr
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(tokenPair)

	return nil
}

// SignUp godoc
// @Summary      Register a new user
// @Description  Creates an account with the default role and returns the location of the new resource.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      model.SignUpRequest  true  "New account"
// @Success      201      {object}  model.ApiResponse
// @Failure      409      {object}  common.AppError
// @Router       /api/auth/signup [post]
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.SignUpRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	logger.Log.WithField("username", req.Username).Info("Sign-up request received")

	username, appErr := h.service.SignUp(&req)
	if appErr != nil {
		return appErr
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Location", "/api/users/"+username)
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(model.ApiResponse{
		Success: true,
		Message: "User registered successfully",
	})

	return nil
}

// SignOut godoc
// @Summary      Sign out of all sessions
// @Description  Revokes every refresh token of the authenticated user.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  model.ApiResponse
// @Failure      401  {object}  common.AppError
// @Router       /api/auth/signout [post]
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid user ID in token", nil)
	}

	if appErr := h.service.SignOut(userID); appErr != nil {
		return appErr
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(model.ApiResponse{
		Success: true,
		Message: "Signed out of all sessions",
	})

	return nil
}
