package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service issues and verifies the access tokens the API uses to identify
// the requesting user. Session management (refresh, revocation, login
// flows) is handled by the separate identity service, not here.
type Service interface {
	GenerateAccessToken(userID string, email string, roleID *string) (token string, expiresAt int64, err error)
	GenerateSSEToken(userID string) (token string, expiresIn int64, err error)
	ValidateSSEToken(token string) (userID string, err error)
	JWTAuth() *jwtauth.JWTAuth
}

// sseTokenTTL bounds the lifetime of stream tokens, which travel in query
// strings and may end up in access logs.
const sseTokenTTL = 5 * time.Minute

type JWTService struct {
	secretKey                 string
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                 secretKey,
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(userID string, email string, roleID *string) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"user_id": userID,
		"email":   email,
		"role_id": returnValueOrNil(roleID),
		"type":    "access",
		"exp":     expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) GenerateSSEToken(userID string) (string, int64, error) {
	claims := map[string]interface{}{
		"user_id": userID,
		"type":    "sse",
		"exp":     time.Now().Add(sseTokenTTL).Unix(),
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, int64(sseTokenTTL.Seconds()), err
}

func (j *JWTService) ValidateSSEToken(tokenStr string) (string, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenStr)
	if err != nil {
		return "", err
	}

	claims, err := token.AsMap(context.Background())
	if err != nil {
		return "", err
	}
	if tokenType, _ := claims["type"].(string); tokenType != "sse" {
		return "", errors.New("not an sse token")
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return "", errors.New("missing user_id claim")
	}
	return userID, nil
}

func returnValueOrNil(value *string) interface{} {
	if value == nil {
		return nil
	}
	return *value
}
