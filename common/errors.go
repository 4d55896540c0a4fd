package common

import (
	"encoding/json"
	"go-auth-api/logger"
	"net/http"

	"github.com/sirupsen/logrus"
)

type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewInvalidCredentialsError is returned for every sign-in failure. The
// message never reveals whether the account exists or the password was wrong.
func NewInvalidCredentialsError(err error) *AppError {
	return NewAppError(http.StatusUnauthorized, "Invalid username/email or password", err)
}

// NewBadRequestError covers malformed input, including unknown refresh tokens.
func NewBadRequestError(message string, err error) *AppError {
	return NewAppError(http.StatusBadRequest, message, err)
}

// NewConflictError covers duplicate username/email at sign-up.
func NewConflictError(message string) *AppError {
	return NewAppError(http.StatusConflict, message, nil)
}

// NewConfigurationError signals an operator mistake (e.g. a missing seeded
// role), not a user error. It is always logged so that it can alert operators.
func NewConfigurationError(message string, err error) *AppError {
	logger.Log.WithError(err).WithField("configuration_error", message).Error("Configuration error encountered")
	return NewAppError(http.StatusInternalServerError, message, err)
}

func NewInternalError(message string, err error) *AppError {
	return NewAppError(http.StatusInternalServerError, message, err)
}

func (e *AppError) Send(w http.ResponseWriter) {
	if e.Err != nil {
		logger.Log.WithFields(logrus.Fields{
			"status_code":    e.Code,
			"internal_error": e.Err.Error(),
		}).Error(e.Message)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(e.Code)
	json.NewEncoder(w).Encode(e)
}
