package auth

import (
	"errors"
	"time"

	"github.com/fliamecomm/storefront/internal/domain/identity"
	"github.com/fliamecomm/storefront/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrMissingUserID    = errors.New("missing user_id in claims")
	ErrTokenBlacklisted = errors.New("token has been revoked")
)

// SessionClaims is the payload of the signed session cookie
type SessionClaims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	IsStaff  bool   `json:"is_staff"`
}

// SessionToken is a freshly signed session
type SessionToken struct {
	Value     string
	ID        string
	ExpiresAt time.Time
}

// IssueInput contains the identity a session is issued for
type IssueInput struct {
	UserID   uuid.UUID
	Username string
	IsStaff  bool
}

// SessionService signs and validates HS256 session tokens
type SessionService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// NewSessionService creates a new session token service
func NewSessionService(cfg config.SessionConfig) *SessionService {
	return &SessionService{
		secret: []byte(cfg.Secret),
		ttl:    cfg.TTL,
		issuer: cfg.Issuer,
		now:    time.Now,
	}
}

// TTL returns how long issued sessions stay valid
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a new session token for the given user
func (s *SessionService) Issue(input IssueInput) (*SessionToken, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)
	jti := uuid.New().String()

	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Issuer:    s.issuer,
			Subject:   input.UserID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:   input.UserID.String(),
		Username: input.Username,
		IsStaff:  input.IsStaff,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	return &SessionToken{Value: signed, ID: jti, ExpiresAt: expiresAt}, nil
}

// Validate parses a session token and returns its claims
func (s *SessionService) Validate(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithIssuer(s.issuer))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, ErrTokenNotYetValid
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}
	if claims.UserID == "" {
		return nil, ErrMissingUserID
	}
	if _, err := uuid.Parse(claims.UserID); err != nil {
		return nil, ErrInvalidClaims
	}

	return claims, nil
}

// Identity converts validated claims into a request identity
func (c *SessionClaims) Identity() identity.Identity {
	id, err := uuid.Parse(c.UserID)
	if err != nil {
		return identity.Anonymous
	}
	return identity.NewUserIdentity(id, c.Username, c.IsStaff)
}

// GetRemainingTTL returns the remaining time until the token expires
func (c *SessionClaims) GetRemainingTTL() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	remaining := time.Until(c.ExpiresAt.Time)
	if remaining < 0 {
		return 0
	}
	return remaining
}
