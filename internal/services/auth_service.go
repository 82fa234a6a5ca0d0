// Path: internal/services/auth_service.go
package services

import (
	"bank-core/internal/models"
	"bank-core/pkg/utils"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// AuthService issues and checks the tokens that carry a session between
// HTTP requests.
type AuthService interface {
	IssueToken(user *models.User) (string, error)
	ValidateToken(token string) (*models.Claims, error)
	RevokeToken(claims *models.Claims)
}

type authService struct {
	jwtKey string
	ttl    time.Duration

	mu      sync.Mutex
	revoked map[string]time.Time // jti -> expiry
}

// NewAuthService creates a new AuthService.
func NewAuthService(jwtSecret string, ttl time.Duration) AuthService {
	return &authService{
		jwtKey:  jwtSecret,
		ttl:     ttl,
		revoked: make(map[string]time.Time),
	}
}

// IssueToken creates a signed JWT for user.
func (s *authService) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &models.Claims{
		UserID: user.ID(),
		Role:   user.Role(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        utils.GenerateTokenID(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "bank-core",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtKey))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken validates a JWT and returns the claims.
func (s *authService) ValidateToken(tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(s.jwtKey), nil
	})

	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) {
			if ve.Errors&jwt.ValidationErrorMalformed != 0 {
				return nil, fmt.Errorf("%w: malformed token", ErrInvalidToken)
			} else if ve.Errors&(jwt.ValidationErrorExpired|jwt.ValidationErrorNotValidYet) != 0 {
				return nil, fmt.Errorf("%w: token expired or not yet valid", ErrInvalidToken)
			}
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("%w: token is not valid", ErrInvalidToken)
	}

	s.mu.Lock()
	_, revoked := s.revoked[claims.ID]
	s.mu.Unlock()
	if revoked {
		return nil, ErrTokenRevoked
	}

	return claims, nil
}

// RevokeToken blocks the token until it would have expired anyway.
func (s *authService) RevokeToken(claims *models.Claims) {
	if claims == nil || claims.ID == "" {
		return
	}

	expiry := time.Now().Add(s.ttl)
	if claims.ExpiresAt != nil {
		expiry = claims.ExpiresAt.Time
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, exp := range s.revoked {
		if now.After(exp) {
			delete(s.revoked, id)
		}
	}
	s.revoked[claims.ID] = expiry
}
