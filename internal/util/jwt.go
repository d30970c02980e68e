package util

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/ferdian3456/postreaction/internal/constant"
	"github.com/ferdian3456/postreaction/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"time"
)

var (
	BearerPrefix            = "Bearer "
	TokenIssuer             = "github.com/ferdian3456/postreaction"
	AccessTokenDuration     = 15 * time.Minute
	RefreshTokenDuration    = 7 * 24 * time.Hour
	ErrInvalidSigningMethod = errors.New("invalid token signing method")
	ErrMissingSecretKey     = errors.New("jwt secret key is not configured")
)

// HashToken hashes a token using SHA256 for secure storage
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

func GenerateAccessToken(userId uuid.UUID, username string, jwtSecretKey string) (string, error) {
	if jwtSecretKey == "" {
		return "", ErrMissingSecretKey
	}

	now := time.Now().UTC()
	claims := &model.Claims{
		UserId:   userId,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    TokenIssuer,
			Subject:   fmt.Sprintf("user:%s", userId.String()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(jwtSecretKey))
	if err != nil {
		return "", err
	}

	return signedToken, nil
}

func GenerateRefreshToken() string {
	return uuid.New().String()
}

// GenerateTokenPair creates both access and refresh tokens for a user
func GenerateTokenPair(userId uuid.UUID, username string, jwtSecretKey string) (model.TokenResponse, error) {
	accessToken, err := GenerateAccessToken(userId, username, jwtSecretKey)
	if err != nil {
		return model.TokenResponse{}, err
	}

	refreshToken := GenerateRefreshToken()

	return model.TokenResponse{
		AccessToken:           accessToken,
		AccessTokenExpiresIn:  int(AccessTokenDuration.Seconds()),
		RefreshToken:          refreshToken,
		RefreshTokenExpiresIn: int(RefreshTokenDuration.Seconds()),
		TokenType:             "Bearer",
	}, nil
}

// ValidateAccessToken validates a "Bearer <jwt>" header and returns the raw token and user id.
func ValidateAccessToken(authHeader string, log *zap.Logger, jwtSecretKey string) (string, uuid.UUID, error) {
	if jwtSecretKey == "" {
		return "", uuid.Nil, ErrMissingSecretKey
	}

	tokenString, err := extractBearerToken(authHeader)
	if err != nil {
		return "", uuid.Nil, err
	}

	token, err := jwt.ParseWithClaims(tokenString, &model.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSigningMethod
		}
		return []byte(jwtSecretKey), nil
	}, jwt.WithIssuer(TokenIssuer))

	if err != nil {
		log.Debug("access token rejected", zap.Error(err))
		return "", uuid.Nil, handleParseError(err)
	}

	claims, ok := token.Claims.(*model.Claims)
	if !ok || !token.Valid || claims.UserId == uuid.Nil {
		return "", uuid.Nil, unauthorized("Authentication token is invalid")
	}

	return tokenString, claims.UserId, nil
}

func extractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", unauthorized("No authentication token is provided")
	}

	if !strings.HasPrefix(authHeader, BearerPrefix) {
		return "", unauthorized("Authentication token format is not match")
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerPrefix))
	if token == "" {
		return "", unauthorized("Authentication token is empty")
	}

	return token, nil
}

func unauthorized(message string) *model.ValidationError {
	return &model.ValidationError{
		Code:    constant.ERR_UNATHORIZED_ERROR,
		Message: message,
		Param:   "accessToken",
	}
}

func handleParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return unauthorized("Authentication token is malformed")
	case errors.Is(err, jwt.ErrTokenExpired):
		return unauthorized("Authentication token is expired")
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return unauthorized("Authentication token is not valid yet")
	case errors.Is(err, ErrInvalidSigningMethod):
		return unauthorized("Authentication token has invalid signing method")
	default:
		return unauthorized("Authentication token is invalid")
	}
}
