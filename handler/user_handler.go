package handler

import (
	"encoding/json"
	"go-auth-api/common"
	"go-auth-api/service"
	"net/http"
)

type UserHandler struct {
	service service.IAuthService
}

func NewUserHandler(service service.IAuthService) *UserHandler {
	return &UserHandler{service: service}
}

// Me godoc
// @Summary      Get the current user
// @Description  Returns the profile and roles of the authenticated principal.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  model.User
// @Failure      401  {object}  common.AppError
// @Router       /api/users/me [get]
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid user ID in token", nil)
	}

	user, appErr := h.service.GetUserByID(userID)
	if appErr != nil {
		return appErr
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(user)

	return nil
}
