package utils

import (
	"errors"
	"strconv"
	"time"

	"teamchat-client/config"

	"github.com/golang-jwt/jwt/v5"
)

// Tokens is an access/refresh pair.
type Tokens struct {
	Access  string
	Refresh string
}

// TokenMetadata is the claim set carried in every JWT: the user id, whether
// a 2FA step is still outstanding, and the expiry.
type TokenMetadata struct {
	Id  string
	Otp bool
	Exp int64
}

// GenerateTokens mints a new access and refresh token pair for a user.
func GenerateTokens(id string, otp bool) (*Tokens, error) {
	access, err := generateToken(id, otp, "JWT_ACCESS_EXPIRE", "JWT_ACCESS_KEY")
	if err != nil {
		return nil, err
	}
	refresh, err := generateToken(id, otp, "JWT_REFRESH_EXPIRE", "JWT_REFRESH_KEY")
	if err != nil {
		return nil, err
	}
	return &Tokens{Access: access, Refresh: refresh}, nil
}

func generateToken(id string, otp bool, expire string, key string) (string, error) {
	minutes, _ := strconv.Atoi(config.Config(expire))

	claims := jwt.MapClaims{
		"id":  id,
		"otp": otp,
		"exp": time.Now().Add(time.Minute * time.Duration(minutes)).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return token.SignedString([]byte(config.Config(key)))
}

// CheckAndExtractTokenMetadata validates a token against the named signing
// key and returns its claims.
func CheckAndExtractTokenMetadata(token string, key string) (*TokenMetadata, error) {
	t, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.Config(key)), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok || !t.Valid {
		return nil, errors.New("invalid token")
	}

	id, ok := claims["id"].(string)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	otp, _ := claims["otp"].(bool)
	exp, _ := claims["exp"].(float64)

	return &TokenMetadata{Id: id, Otp: otp, Exp: int64(exp)}, nil
}
