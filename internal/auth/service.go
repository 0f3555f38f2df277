package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Clients are anonymous devices, not accounts: a token carries a generated
// client ID under which favorites, filter state and position are stored.
const clientTokenTTL = 180 * 24 * time.Hour

type Service struct {
	secret []byte
}

type Claims struct {
	ClientID string `json:"client_id"`
	jwt.RegisteredClaims
}

type TokenResponse struct {
	Token     string `json:"token"`
	ClientID  string `json:"client_id"`
	TokenType string `json:"token_type"`
	ExpiresIn int64  `json:"expires_in"`
}

func NewService(secret string) *Service {
	return &Service{secret: []byte(secret)}
}

// IssueClientToken mints a token for a fresh client identity.
func (s *Service) IssueClientToken() (TokenResponse, error) {
	clientID := uuid.NewString()
	token, err := s.signToken(clientID, clientTokenTTL)
	if err != nil {
		return TokenResponse{}, err
	}
	return TokenResponse{
		Token:     token,
		ClientID:  clientID,
		TokenType: "Bearer",
		ExpiresIn: int64(clientTokenTTL.Seconds()),
	}, nil
}

// ValidateToken returns the client ID of a valid token.
func (s *Service) ValidateToken(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(_ *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.ClientID == "" {
		return "", errors.New("token invalid")
	}
	return claims.ClientID, nil
}

func (s *Service) signToken(clientID string, ttl time.Duration) (string, error) {
	claims := Claims{
		ClientID: clientID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
