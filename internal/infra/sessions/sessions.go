// Package sessions provides the per-chat-session credential store:
// session id → bearer token. In production this could be backed by
// Redis; for a single instance an in-memory map with TTL is enough.
package sessions

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type entry struct {
	token     string
	expiresAt time.Time
}

// Store is a thread-safe session → token store with TTL.
//
// The entry TTL is derived from the token itself when possible: the
// backend issues JWTs, and decoding the unverified exp claim lets the
// store drop a session at the same moment the token stops working.
// Signature validation stays with the auth collaborator — the store
// only reads the expiry, it never trusts any other claim.
type Store struct {
	mu         sync.RWMutex
	items      map[string]entry
	defaultTTL time.Duration
}

// New creates a session store. defaultTTL applies to tokens whose
// expiry cannot be decoded.
func New(defaultTTL time.Duration) *Store {
	s := &Store{
		items:      make(map[string]entry),
		defaultTTL: defaultTTL,
	}
	// Background cleanup goroutine
	go s.cleanup()
	return s
}

// Get returns the token for a session. Returns false if the session
// has no token or it expired.
func (s *Store) Get(sessionID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.items[sessionID]
	if !ok || time.Now().After(e.expiresAt) {
		return "", false
	}
	return e.token, true
}

// Set stores the token for a session, expiring it at the token's own
// exp claim when decodable, or after the default TTL otherwise.
func (s *Store) Set(sessionID, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[sessionID] = entry{
		token:     token,
		expiresAt: tokenExpiry(token, s.defaultTTL),
	}
}

// Delete removes a session (logout).
func (s *Store) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, sessionID)
}

// tokenExpiry reads the unverified exp claim from a JWT. Opaque or
// claim-less tokens fall back to now+defaultTTL.
func tokenExpiry(token string, defaultTTL time.Duration) time.Time {
	fallback := time.Now().Add(defaultTTL)

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return fallback
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return fallback
	}
	return exp.Time
}

// cleanup periodically removes expired sessions.
func (s *Store) cleanup() {
	ticker := time.NewTicker(s.defaultTTL)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		now := time.Now()
		for k, e := range s.items {
			if now.After(e.expiresAt) {
				delete(s.items, k)
			}
		}
		s.mu.Unlock()
	}
}
