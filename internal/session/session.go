// Package session issues and validates the signed session marker that
// gates identity for the data core. Tokens are HS256 JWTs with a
// configurable validity window, persisted alongside the collections so a
// profile reload can resume an unexpired session.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"vyvoxa/internal/models"
	"vyvoxa/internal/storage"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// KeySession is the storage key holding the persisted session marker.
const KeySession = "vyvoxa_session"

const issuer = "vyvoxa"

// Session is the persisted marker for the authenticated user.
type Session struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Manager signs, persists, and validates sessions.
type Manager struct {
	secret []byte
	ttl    time.Duration
	kv     storage.Store
	now    func() time.Time
}

// NewManager returns a Manager signing with secret and issuing tokens
// valid for ttl.
func NewManager(secret string, ttl time.Duration, kv storage.Store) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		kv:     kv,
		now:    time.Now,
	}
}

// WithClock pins the clock. Used by tests.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// Issue signs a session token for the user.
func (m *Manager) Issue(user *models.User) (*Session, error) {
	now := m.now()
	expiry := now.Add(m.ttl)
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"iss":   issuer,
		"iat":   now.Unix(),
		"nbf":   now.Unix(),
		"exp":   expiry.Unix(),
		"jti":   fmt.Sprintf("%d-%s", now.Unix(), uuid.NewString()[:8]),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &Session{
		UserID:    user.ID,
		Email:     user.Email,
		Token:     signed,
		IssuedAt:  now,
		ExpiresAt: expiry,
	}, nil
}

// Validate parses a raw token and returns the subject and email claims.
func (m *Manager) Validate(raw string) (userID, email string, err error) {
	parsed, err := jwt.Parse(raw,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return m.secret, nil
		},
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return "", "", models.NewInvalidCredentialError()
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", models.NewInvalidCredentialError()
	}
	sub, _ := claims["sub"].(string)
	mail, _ := claims["email"].(string)
	if sub == "" {
		return "", "", models.NewInvalidCredentialError()
	}
	return sub, mail, nil
}

// Save persists the session marker.
func (m *Manager) Save(ctx context.Context, sess *Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return models.NewPersistenceError(KeySession, err)
	}
	if err := m.kv.Save(ctx, KeySession, raw); err != nil {
		return models.NewPersistenceError(KeySession, err)
	}
	return nil
}

// Load returns the persisted session if it exists and has not expired.
// An expired or invalid marker is cleared and (nil, nil) is returned.
func (m *Manager) Load(ctx context.Context) (*Session, error) {
	raw, err := m.kv.Load(ctx, KeySession)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, models.NewPersistenceError(KeySession, err)
	}

	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		_ = m.kv.Delete(ctx, KeySession)
		return nil, nil
	}
	if _, _, err := m.Validate(sess.Token); err != nil {
		_ = m.kv.Delete(ctx, KeySession)
		return nil, nil
	}
	return &sess, nil
}

// Clear removes the persisted session marker.
func (m *Manager) Clear(ctx context.Context) error {
	return m.kv.Delete(ctx, KeySession)
}
