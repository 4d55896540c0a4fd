// file: model/request.go

package model

// SignUpRequest defines the payload for creating a new account.
// It includes validation tags to ensure data integrity at the entry point.
type SignUpRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=40"`
	Username string `json:"username" validate:"required,min=3,max=15"`
	Email    string `json:"email" validate:"required,email,max=40"`
	Password string `json:"password" validate:"required,min=6,max=20"`
}

// SignInRequest defines the payload for user authentication. The first field
// accepts either a username or an email address.
type SignInRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail" validate:"required,min=3,max=40"`
	Password        string `json:"password" validate:"required,min=6,max=20"`
}

// RefreshTokenRequest defines the payload for exchanging a refresh token for
// a new access token.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}
