package model

import "github.com/golang-jwt/jwt/v5"

type AppClaims struct {
	UserID int      `json:"user_id"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}
