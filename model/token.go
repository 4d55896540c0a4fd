// file: model/token.go

package model

import "time"

// RefreshToken holds the data for a refresh token in the database. The opaque
// token string itself is the primary key; there is no surrogate id.
type RefreshToken struct {
	Token     string    `json:"-"` // The token value is not exposed in JSON responses.
	UserID    int       `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
