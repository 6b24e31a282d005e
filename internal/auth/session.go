package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidSession is returned for missing, expired, or tampered tokens.
var ErrInvalidSession = errors.New("invalid session")

// Session identifies the logged-in user for the lifetime of a browser session.
// It is passed explicitly to every authenticated handler.
type Session struct {
	UserID   string
	Username string
}

type sessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// SessionManager issues and verifies HS256-signed session tokens.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionManager creates a SessionManager. Tokens expire after ttl.
func NewSessionManager(secret string, ttl time.Duration) *SessionManager {
	return &SessionManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL returns how long issued tokens stay valid.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a token for sess.
func (m *SessionManager) Issue(sess Session) (string, error) {
	if sess.UserID == "" {
		return "", fmt.Errorf("%w: missing user ID", ErrInvalidSession)
	}

	now := m.now()
	claims := &sessionClaims{
		Username: sess.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sess.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}
	return signed, nil
}

// Parse verifies a token and returns the session it carries.
func (m *SessionManager) Parse(tokenString string) (*Session, error) {
	if tokenString == "" {
		return nil, ErrInvalidSession
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidSession
	}

	return &Session{UserID: claims.Subject, Username: claims.Username}, nil
}
