package transfer

import "github.com/golang-jwt/jwt/v5"

type CustomClaims struct {
	ConsultantID string `json:"consultant_id"`
	jwt.RegisteredClaims
}

type GoogleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}
