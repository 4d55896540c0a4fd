// file: model/response.go

package model

// TokenPair is the response body of a successful sign-in or token refresh:
// the short-lived access token (JWT) plus the opaque refresh token.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"` // always "Bearer"
	ExpiresInMs  int64  `json:"expiresInMs"`
}

// ApiResponse is a generic success/failure envelope for operations that do
// not return a resource body, such as sign-up.
type ApiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
