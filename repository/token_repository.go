// file: repository/token_repository.go

package repository

import (
	"database/sql"
	"go-auth-api/logger"
	"go-auth-api/model"

	"github.com/sirupsen/logrus"
)

// ITokenRepository defines the contract for refresh token database operations.
type ITokenRepository interface {
	Create(token *model.RefreshToken) error
	GetByToken(token string) (*model.RefreshToken, error)
	DeleteByUserID(userID int) error
}

// TokenRepository implements ITokenRepository.
type TokenRepository struct {
	DB *sql.DB
}

// NewTokenRepository creates a new TokenRepository.
func NewTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{DB: db}
}

// Create inserts a new refresh token record. The token string is the primary
// key; a collision (which randomness makes all but impossible) surfaces as
// ErrDuplicateToken rather than a raw driver error.
func (r *TokenRepository) Create(token *model.RefreshToken) error {
	log := logger.Log.WithFields(logrus.Fields{
		"user_id":    token.UserID,
		"expires_at": token.ExpiresAt,
	})
	log.Info("Executing query to create a new refresh token")

	query := `INSERT INTO refresh_tokens (user_id, token, expires_at) VALUES ($1, $2, $3) RETURNING created_at`
	err := r.DB.QueryRow(query, token.UserID, token.Token, token.ExpiresAt).Scan(&token.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "refresh_tokens_pkey") {
			return ErrDuplicateToken
		}
		log.WithError(err).Error("Failed to execute create refresh token query")
		return err
	}
	return nil
}

// GetByToken retrieves a refresh token record by its opaque token string.
// Returns ErrTokenNotFound when no record exists. The token value itself is
// never logged.
func (r *TokenRepository) GetByToken(tokenString string) (*model.RefreshToken, error) {
	token := &model.RefreshToken{}
	query := `SELECT token, user_id, expires_at, created_at FROM refresh_tokens WHERE token = $1`
	err := r.DB.QueryRow(query, tokenString).Scan(&token.Token, &token.UserID, &token.ExpiresAt, &token.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrTokenNotFound
		}
		logger.Log.WithError(err).Error("Failed to execute get refresh token query")
		return nil, err
	}
	return token, nil
}

// DeleteByUserID deletes all refresh tokens for a specific user.
// This is used for logging out from all sessions.
func (r *TokenRepository) DeleteByUserID(userID int) error {
	log := logger.Log.WithField("user_id", userID)
	log.Info("Executing query to delete all refresh tokens for a user")

	query := `DELETE FROM refresh_tokens WHERE user_id = $1`
	_, err := r.DB.Exec(query, userID)
	if err != nil {
		log.WithError(err).Error("Failed to execute delete refresh tokens query")
		return err
	}
	return nil
}
